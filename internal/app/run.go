package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gi8lino/jiraarchiver/internal/config"
	"github.com/gi8lino/jiraarchiver/internal/export"
	"github.com/gi8lino/jiraarchiver/internal/flag"
	"github.com/gi8lino/jiraarchiver/internal/jira"
	"github.com/gi8lino/jiraarchiver/internal/logging"
	"github.com/gi8lino/jiraarchiver/internal/metrics"
	"github.com/gi8lino/jiraarchiver/internal/render"
	"github.com/gi8lino/jiraarchiver/internal/server"

	"github.com/containeroo/tinyflags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the jira-archiver application.
func Run(ctx context.Context, webFS fs.FS, version, commit string, args []string, w io.Writer, getEnv func(string) string) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Parse command-line flags
	flags, err := flag.ParseArgs(version, args, w, getEnv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(w, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}

	// Setup logger
	logger := logging.SetupLogger(flags.LogFormat, flags.Debug, w)

	logger.Info("Starting jira-archiver",
		"version", version,
		"commit", commit,
	)

	// Load config
	cfg, err := config.LoadConfig(flags.Config)
	if err != nil {
		return fmt.Errorf("loading config error: %w", err)
	}
	if err := config.ValidateConfig(&cfg); err != nil {
		return fmt.Errorf("validating config error: %w", err)
	}

	renderer, err := render.New(webFS, render.WithBodyFormat(render.BodyFormat(cfg.BodyFormat)))
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := export.New(export.Options{
		Renderer:    renderer,
		NewClient:   newClientFactory(cfg, logger),
		ArchiveName: cfg.ArchiveName,
		Logger:      logger,
		Metrics:     metrics.New(reg),
	})
	if err != nil {
		return fmt.Errorf("exporter setup error: %w", err)
	}

	if flags.OneShot() {
		return runOnce(ctx, exporter, cfg, flags, logger)
	}

	// Setup Server and run forever
	router := server.NewRouter(
		webFS,
		exporter,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		logger,
		flags.Debug,
		flags.RoutePrefix,
	)
	err = server.RunHTTPServer(ctx, router, flags.ListenAddr, logger)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server exited with error", "error", err)
	}

	return err
}

// newClientFactory returns a factory building one Jira client per export.
// All clients share one HTTP client and thereby its connection pool.
func newClientFactory(cfg config.Config, logger *slog.Logger) export.ClientFactory {
	hc := jira.NewHTTPClient(cfg.SkipTLSVerify, cfg.RequestTimeout)
	return func(baseURL, cookie string) (jira.Searcher, error) {
		c, err := jira.NewClient(baseURL, jira.NewCookieAuth(cookie),
			jira.WithHTTPClient(hc),
			jira.WithLogger(logger),
			jira.WithMaxResults(cfg.MaxResults),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// runOnce exports the preset selected on the command line and writes the archive to disk.
func runOnce(ctx context.Context, exporter *export.Exporter, cfg config.Config, flags flag.Config, logger *slog.Logger) error {
	req, err := cfg.ResolvePreset(flags.Export)
	if err != nil {
		return fmt.Errorf("preset error: %w", err)
	}

	res, err := exporter.Export(ctx, req)
	if err != nil {
		return fmt.Errorf("export error: %w", err)
	}

	out := flags.Output
	if out == "" {
		out = res.FileName
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	for _, it := range res.Degraded() {
		logger.Warn("issue not exported in full", "issue", it.Key, "status", it.Status, "error", it.Reason)
	}
	logger.Info("archive written", "path", out, "issues", res.Exported(), "bytes", len(res.Data))
	return nil
}
