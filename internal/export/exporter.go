package export

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"time"

	"github.com/gi8lino/jiraarchiver/internal/archive"
	"github.com/gi8lino/jiraarchiver/internal/jira"
	"github.com/gi8lino/jiraarchiver/internal/metrics"
	"github.com/gi8lino/jiraarchiver/internal/render"
	"github.com/gi8lino/jiraarchiver/internal/utils"

	"github.com/google/uuid"
)

// DefaultArchiveName is the suggested file name of every archive.
const DefaultArchiveName = "jira-export.zip"

// ClientFactory builds a fresh Jira client for one export.
type ClientFactory func(baseURL, cookie string) (jira.Searcher, error)

// Renderer turns issues into archive documents.
type Renderer interface {
	RenderIssue(issue jira.Issue, comments []jira.Comment) ([]byte, error)
	RenderIndex(issues []jira.Issue) ([]byte, error)
}

// Options configures an Exporter.
type Options struct {
	Renderer    Renderer
	NewClient   ClientFactory
	ArchiveName string           // defaults to DefaultArchiveName
	Logger      *slog.Logger     // defaults to a discarding logger
	Metrics     *metrics.Metrics // optional
	Now         func() time.Time // archive entry timestamps; defaults to time.Now
}

// Exporter runs exports. It keeps no state between calls and is safe for concurrent use.
type Exporter struct {
	renderer    Renderer
	newClient   ClientFactory
	archiveName string
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// New returns an Exporter.
func New(opts Options) (*Exporter, error) {
	if opts.Renderer == nil {
		return nil, errors.New("missing renderer")
	}
	if opts.NewClient == nil {
		return nil, errors.New("missing client factory")
	}
	e := &Exporter{
		renderer:    opts.Renderer,
		newClient:   opts.NewClient,
		archiveName: opts.ArchiveName,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		now:         opts.Now,
	}
	if e.archiveName == "" {
		e.archiveName = DefaultArchiveName
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// Export fetches the issues matching req.JQL and packages them as an archive.
//
// Only invalid input, a failed search or an empty result abort the export.
// Failures scoped to one issue are recorded in Result.Items instead.
func (e *Exporter) Export(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	logger := e.logger.With("export_id", uuid.NewString())

	res, err := e.export(ctx, req, logger)
	e.metrics.ObserveExport(outcome(err), time.Since(start))
	if err != nil {
		logger.Warn("export failed", "error", err, "duration", time.Since(start))
		return Result{}, err
	}

	degraded := len(res.Degraded())
	e.metrics.AddIssues(res.Exported(), degraded)
	logger.Info("export finished",
		"issues", res.Exported(),
		"degraded", degraded,
		"bytes", len(res.Data),
		"duration", time.Since(start),
	)
	return res, nil
}

// export implements the pipeline; logging and metrics are left to Export.
func (e *Exporter) export(ctx context.Context, req Request, logger *slog.Logger) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	req = req.normalized()

	client, err := e.newClient(req.JiraURL, req.JiraCookie)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	logger.Info("export started", "jira_url", req.JiraURL, "jql", req.JQL)
	logger.Debug("export credentials", "cookie", utils.ObfuscateCookie(req.JiraCookie))

	found, err := client.Search(ctx, req.JQL)
	if err != nil {
		return Result{}, err
	}
	if len(found.Issues) == 0 {
		return Result{}, ErrNoResults
	}

	issues, skips := selectIssues(found.Issues)
	if len(issues) == 0 {
		return Result{}, ErrNoResults
	}

	index, err := e.renderer.RenderIndex(issues)
	if err != nil {
		return Result{}, fmt.Errorf("render index: %w", err)
	}

	aw := archive.New(e.now())
	if err := aw.Add(render.IndexFileName, index); err != nil {
		return Result{}, err
	}

	items := make([]ItemResult, 0, len(found.Issues))
	for i, issue := range found.Issues {
		if reason, skip := skips[i]; skip {
			logger.Warn("skipping issue", "position", i, "issue", issue.Key, "error", reason)
			items = append(items, ItemResult{Key: issue.Key, Status: StatusSkipped, Reason: reason})
			continue
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		doc, item := e.exportIssue(ctx, client, issue, logger)
		if err := aw.Add(render.IssueFileName(issue.Key), doc); err != nil {
			return Result{}, err
		}
		items = append(items, item)
	}

	data, err := aw.Close()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:     data,
		FileName: e.archiveName,
		Entries:  aw.Names(),
		Items:    items,
	}, nil
}

// exportIssue fetches comments and renders one issue, degrading instead of failing.
func (e *Exporter) exportIssue(ctx context.Context, client jira.Searcher, issue jira.Issue, logger *slog.Logger) ([]byte, ItemResult) {
	item := ItemResult{Key: issue.Key, Status: StatusOK}

	comments, err := client.GetComments(ctx, issue.Key)
	if err != nil {
		item.Status = StatusDegraded
		item.Reason = err
	}

	doc, err := e.renderer.RenderIssue(issue, comments)
	if err == nil {
		item.Comments = len(comments)
		return doc, item
	}

	logger.Error("failed to render issue, retrying without comments", "issue", issue.Key, "error", err)
	item.Status = StatusDegraded
	item.Reason = err

	doc, err = e.renderer.RenderIssue(issue, nil)
	if err == nil {
		return doc, item
	}

	logger.Error("failed to render issue", "issue", issue.Key, "error", err)
	item.Reason = errors.Join(item.Reason, err)
	return fallbackDocument(issue.Key), item
}

// selectIssues keeps issues whose key can name a document, dropping repeats.
// skips maps the position of every dropped issue to the reason.
func selectIssues(all []jira.Issue) (kept []jira.Issue, skips map[int]error) {
	skips = make(map[int]error)
	seen := make(map[string]struct{}, len(all))
	for i, issue := range all {
		if err := render.ValidateKey(issue.Key); err != nil {
			skips[i] = err
			continue
		}
		if _, dup := seen[issue.Key]; dup {
			skips[i] = fmt.Errorf("duplicate issue key %q", issue.Key)
			continue
		}
		seen[issue.Key] = struct{}{}
		kept = append(kept, issue)
	}
	return kept, skips
}

// fallbackDocument is written when an issue cannot be rendered at all.
func fallbackDocument(key string) []byte {
	k := template.HTMLEscapeString(key)
	return []byte(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>` + k + `</title></head>
<body><h1>` + k + `</h1><p>This issue could not be rendered.</p><p><a href="` + render.IndexFileName + `">Back to index</a></p></body>
</html>
`)
}

// outcome maps an export error to a metrics label.
func outcome(err error) string {
	var ue *jira.UpstreamError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidRequest):
		return metrics.OutcomeInvalidRequest
	case errors.Is(err, ErrNoResults):
		return metrics.OutcomeNoResults
	case errors.As(err, &ue):
		return metrics.OutcomeUpstreamError
	default:
		return metrics.OutcomeError
	}
}
