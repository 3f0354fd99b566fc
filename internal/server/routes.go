package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gi8lino/jiraarchiver/internal/handlers"
	"github.com/gi8lino/jiraarchiver/internal/middleware"
)

// NewRouter creates a new HTTP router.
func NewRouter(
	webFS fs.FS,
	exporter handlers.Exporter,
	metrics http.Handler,
	logger *slog.Logger,
	debug bool,
	routePrefix string,
) http.Handler {
	root := http.NewServeMux()

	// Serve embedded static files
	staticContent, _ := fs.Sub(webFS, "web/static")
	fileServer := http.FileServer(http.FS(staticContent))
	root.Handle("GET /static/", http.StripPrefix("/static/", fileServer))

	// Health checks and metrics (no logging)
	root.Handle("GET /healthz", handlers.Healthz())
	root.Handle("POST /healthz", handlers.Healthz())
	if metrics != nil {
		root.Handle("GET /metrics", metrics)
	}

	var homeHandler http.Handler = handlers.HomeHandler(webFS, logger)
	var exportHandler http.Handler = handlers.ExportHandler(exporter, logger)
	if debug {
		homeHandler = middleware.Chain(homeHandler, middleware.LoggingMiddleware(logger))
		exportHandler = middleware.Chain(exportHandler, middleware.LoggingMiddleware(logger))
	}
	root.Handle("GET /{$}", homeHandler)
	root.Handle("POST /api/export", exportHandler)

	return mountUnderPrefix(root, routePrefix)
}
