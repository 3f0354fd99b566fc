package export

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest is returned when required input is missing.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNoResults is returned when the query matched no exportable issue.
	ErrNoResults = errors.New("no issues found for the given JQL")
)

// Request carries the connection parameters and query of one export.
type Request struct {
	JiraURL    string `json:"jiraUrl"`
	JiraCookie string `json:"jiraCookie"`
	JQL        string `json:"jql"`
}

// normalized returns a copy with surrounding whitespace removed.
func (r Request) normalized() Request {
	return Request{
		JiraURL:    strings.TrimSpace(r.JiraURL),
		JiraCookie: strings.TrimSpace(r.JiraCookie),
		JQL:        strings.TrimSpace(r.JQL),
	}
}

// Validate reports every missing parameter in one error wrapping ErrInvalidRequest.
func (r Request) Validate() error {
	n := r.normalized()

	var missing []string
	if n.JiraURL == "" {
		missing = append(missing, "jiraUrl")
	}
	if n.JiraCookie == "" {
		missing = append(missing, "jiraCookie")
	}
	if n.JQL == "" {
		missing = append(missing, "jql")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required parameters: %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}
