package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gi8lino/jiraarchiver/internal/export"
	"github.com/gi8lino/jiraarchiver/internal/jira"
)

// maxRequestBody caps the size of an export request body.
const maxRequestBody = 1 << 20

// Exporter produces archives for export requests.
type Exporter interface {
	Export(ctx context.Context, req export.Request) (export.Result, error)
}

// ExportHandler handles POST /api/export and responds with the archive.
func ExportHandler(e Exporter, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req export.Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
			logger.Warn("invalid export request body", "error", err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		res, err := e.Export(r.Context(), req)
		if err != nil {
			status, msg := errorResponse(err)
			http.Error(w, msg, status)
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
		w.Header().Set("X-Export-Degraded", strconv.Itoa(len(res.Degraded())))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(res.Data); err != nil {
			logger.Error("failed to write archive", "error", err)
		}
	}
}

// errorResponse maps an export error to a status code and a client message.
func errorResponse(err error) (int, string) {
	var ue *jira.UpstreamError
	switch {
	case errors.Is(err, export.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, export.ErrNoResults):
		return http.StatusNotFound, export.ErrNoResults.Error()
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "export canceled"
	case errors.As(err, &ue):
		return http.StatusInternalServerError, ue.Error()
	default:
		return http.StatusInternalServerError, "export failed: " + err.Error()
	}
}
