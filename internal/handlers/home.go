package handlers

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// HomeFile is the export form served at the root path.
const HomeFile = "web/static/index.html"

// HomeHandler serves the export form.
func HomeHandler(webFS fs.FS, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		page, err := fs.ReadFile(webFS, HomeFile)
		if err != nil {
			logger.Error("failed to read export form", "error", err)
			http.Error(w, "export form unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page) // nolint:errcheck
	}
}
