package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultMaxResults is the result ceiling sent with every search.
const DefaultMaxResults = 1000

// apiRoot is resolved below the caller supplied base URL.
const apiRoot = "rest/api/2/"

// Searcher is the subset of the Jira API used by an export.
type Searcher interface {
	Search(ctx context.Context, jql string) (SearchResult, error)
	GetIssue(ctx context.Context, key string) (Issue, error)
	GetComments(ctx context.Context, key string) ([]Comment, error)
}

// Client handles communication with the Jira REST API.
type Client struct {
	APIURL     *url.URL     // Base API URL (ends with /rest/api/2/)
	Client     *http.Client // Underlying HTTP client
	auth       AuthFunc
	logger     *slog.Logger
	maxResults int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.Client = hc
		}
	}
}

// WithLogger sets the logger used for best-effort warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxResults overrides the search result ceiling.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// NewClient returns a Jira client for the given base service URL.
// The REST API root is resolved below baseURL.
func NewClient(baseURL string, auth AuthFunc, opts ...Option) (*Client, error) {
	apiURL, err := apiURLFromBase(baseURL)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		auth = func(*http.Request) {}
	}

	c := &Client{
		APIURL:     apiURL,
		Client:     http.DefaultClient,
		auth:       auth,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// apiURLFromBase parses an absolute base URL and appends the API root.
func apiURLFromBase(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("missing base URL")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", raw)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: unsupported scheme %q", raw, base.Scheme)
	}
	base.RawQuery = ""
	base.Fragment = ""
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(&url.URL{Path: apiRoot}), nil
}

// Search performs a JQL search with all fields and the configured result ceiling.
func (c *Client) Search(ctx context.Context, jql string) (SearchResult, error) {
	var res SearchResult
	if strings.TrimSpace(jql) == "" {
		return res, &UpstreamError{Op: "search", Err: fmt.Errorf("missing JQL query")}
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("fields", "*all")

	err := c.getJSON(ctx, "search", "search?"+params.Encode(), &res)
	return res, err
}

// GetIssue fetches a single issue with all fields.
func (c *Client) GetIssue(ctx context.Context, key string) (Issue, error) {
	var issue Issue
	op := "get issue " + key
	if strings.TrimSpace(key) == "" {
		return issue, &UpstreamError{Op: op, Err: fmt.Errorf("missing issue key")}
	}

	params := url.Values{}
	params.Set("fields", "*all")

	err := c.getJSON(ctx, op, "issue/"+url.PathEscape(key)+"?"+params.Encode(), &issue)
	return issue, err
}

// GetComments fetches the comments of an issue.
//
// The returned slice is always usable. Comments are best-effort: on failure
// a warning is logged and an empty slice is returned together with an error
// wrapping ErrEnrichmentDegraded, which callers are free to ignore.
func (c *Client) GetComments(ctx context.Context, key string) ([]Comment, error) {
	op := "get comments " + key
	if strings.TrimSpace(key) == "" {
		return []Comment{}, fmt.Errorf("%w: %w", ErrEnrichmentDegraded, &UpstreamError{Op: op, Err: fmt.Errorf("missing issue key")})
	}

	var page commentPage
	if err := c.getJSON(ctx, op, "issue/"+url.PathEscape(key)+"/comment", &page); err != nil {
		c.logger.Warn("failed to get comments", "issue", key, "error", err)
		return []Comment{}, fmt.Errorf("%w: %w", ErrEnrichmentDegraded, err)
	}
	if page.Comments == nil {
		return []Comment{}, nil
	}
	return page.Comments, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	body, status, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return &UpstreamError{Op: op, StatusCode: status, Status: statusText(status), Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{Op: op, StatusCode: status, Status: statusText(status), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// doRequest performs an authenticated HTTP request and returns response body, status, and error.
// A zero status means no response was received.
func (c *Client) doRequest(ctx context.Context, method, path string) (response []byte, statusCode int, err error) {
	relURL, err := url.Parse(path)
	if err != nil {
		return nil, 0, fmt.Errorf("parse path: %w", err)
	}
	fullURL := c.APIURL.ResolveReference(relURL).String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	c.auth(req) // apply authentication

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, resp.StatusCode, fmt.Errorf("jira error: %s", string(trim(respBody, 512)))
	}
	return respBody, resp.StatusCode, nil
}

// statusText formats a status code as "404 Not Found", or "" for 0.
func statusText(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code) + " " + http.StatusText(code)
}

// trim returns at most n bytes from b.
func trim(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
