package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gi8lino/jiraarchiver/internal/jira"
)

// MustWriteFile writes data to a file or fails the test, creating parent directories if needed.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %q: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file %q: %v", path, err)
	}
}

// MockSearcher implements jira.Searcher with pluggable functions.
// Unset functions return zero values.
type MockSearcher struct {
	SearchFn      func(ctx context.Context, jql string) (jira.SearchResult, error)
	GetIssueFn    func(ctx context.Context, key string) (jira.Issue, error)
	GetCommentsFn func(ctx context.Context, key string) ([]jira.Comment, error)
}

func (m *MockSearcher) Search(ctx context.Context, jql string) (jira.SearchResult, error) {
	if m.SearchFn == nil {
		return jira.SearchResult{}, nil
	}
	return m.SearchFn(ctx, jql)
}

func (m *MockSearcher) GetIssue(ctx context.Context, key string) (jira.Issue, error) {
	if m.GetIssueFn == nil {
		return jira.Issue{}, nil
	}
	return m.GetIssueFn(ctx, key)
}

func (m *MockSearcher) GetComments(ctx context.Context, key string) ([]jira.Comment, error) {
	if m.GetCommentsFn == nil {
		return []jira.Comment{}, nil
	}
	return m.GetCommentsFn(ctx, key)
}
