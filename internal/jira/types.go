package jira

// SearchResult represents the top-level structure from the JIRA search API.
// Issues keep the order returned by the server.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Issue represents a single issue in the search result.
type Issue struct {
	ID     string `json:"id,omitempty"`
	Key    string `json:"key"`
	Self   string `json:"self,omitempty"`
	Fields Fields `json:"fields"`
}

// commentPage is the envelope returned by the comment sub-resource.
type commentPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Comments   []Comment `json:"comments"`
}

// Comment represents a single comment on an issue.
type Comment struct {
	ID      string `json:"id,omitempty"`
	Author  *User  `json:"author"` // nullable
	Body    string `json:"body"`
	Created string `json:"created"`
	Updated string `json:"updated,omitempty"`
}

// AuthorName returns the author's display name or "" when unknown.
func (c Comment) AuthorName() string {
	if c.Author == nil {
		return ""
	}
	return c.Author.DisplayName
}

// User represents the author, assignee or reporter of an issue.
type User struct {
	DisplayName string `json:"displayName"`
}
