package jira

import (
	"errors"
	"fmt"
)

// ErrEnrichmentDegraded marks a best-effort call that failed without aborting the caller.
var ErrEnrichmentDegraded = errors.New("enrichment degraded")

// UpstreamError reports a failed call to the Jira API.
// StatusCode is 0 when the request never produced a response.
type UpstreamError struct {
	Op         string // e.g. "search", "get issue PROJ-1"
	StatusCode int
	Status     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("jira %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("jira %s: upstream %s: %v", e.Op, e.Status, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
