package jira

import (
	"net/http"
	"strings"
)

// AuthFunc mutates an outgoing request to carry credentials.
type AuthFunc func(r *http.Request)

// NewCookieAuth returns an AuthFunc that sends the raw session cookie on every request.
func NewCookieAuth(cookie string) AuthFunc {
	cookie = strings.TrimSpace(cookie)
	return func(r *http.Request) {
		r.Header.Set("Cookie", cookie)
	}
}
