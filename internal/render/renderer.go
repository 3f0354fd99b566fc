package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"regexp"
	"strings"

	"github.com/gi8lino/jiraarchiver/internal/jira"
	"github.com/gi8lino/jiraarchiver/internal/templates"
)

// IndexFileName is the archive entry name of the index page.
const IndexFileName = "index.html"

var (
	// ErrMissingKey is returned when an issue has no usable key.
	ErrMissingKey = errors.New("missing issue key")
	// ErrInvalidKey is returned when a key cannot be used as a file name.
	ErrInvalidKey = errors.New("invalid issue key")
)

// keyPattern restricts keys to names that are safe archive entries.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// IssueFileName returns the archive entry name for an issue key.
func IssueFileName(key string) string {
	return key + ".html"
}

// ValidateKey reports whether key can name an archive document.
func ValidateKey(key string) error {
	if key == "" {
		return ErrMissingKey
	}
	if !keyPattern.MatchString(key) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Renderer turns issues into standalone HTML documents.
// It holds no mutable state and is safe for concurrent use.
type Renderer struct {
	tmpl   *template.Template
	format BodyFormat
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBodyFormat selects how descriptions and comment bodies are rendered.
func WithBodyFormat(f BodyFormat) Option {
	return func(r *Renderer) {
		r.format = f
	}
}

// New parses the archive templates from webFS.
func New(webFS fs.FS, opts ...Option) (*Renderer, error) {
	r := &Renderer{format: BodyText}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.format.Validate(); err != nil {
		return nil, err
	}

	funcMap := templates.TemplateFuncMap()
	funcMap["issueFile"] = IssueFileName
	funcMap["indexFile"] = func() string { return IndexFileName }
	funcMap["body"] = r.body

	tmpl, err := templates.ParseArchiveTemplates(webFS, funcMap)
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl
	return r, nil
}

// issuePage is the data passed to the issue template.
type issuePage struct {
	Key      string
	Fields   jira.Fields
	Comments []jira.Comment
}

// indexPage is the data passed to the index template.
type indexPage struct {
	Issues []jira.Issue
}

// RenderIssue renders one issue and its comments as a complete HTML document.
// Only a missing or unusable key is an error.
func (r *Renderer) RenderIssue(issue jira.Issue, comments []jira.Comment) ([]byte, error) {
	if err := ValidateKey(issue.Key); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err := r.tmpl.ExecuteTemplate(&buf, templates.IssueTemplate, issuePage{
		Key:      issue.Key,
		Fields:   issue.Fields,
		Comments: comments,
	})
	if err != nil {
		return nil, fmt.Errorf("render issue %s: %w", issue.Key, err)
	}
	return buf.Bytes(), nil
}

// RenderIndex renders the index page listing issues in the given order.
func (r *Renderer) RenderIndex(issues []jira.Issue) ([]byte, error) {
	for i := range issues {
		if err := ValidateKey(issues[i].Key); err != nil {
			return nil, fmt.Errorf("issue %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, templates.IndexTemplate, indexPage{Issues: issues}); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	return buf.Bytes(), nil
}
