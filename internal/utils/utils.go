package utils

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gi8lino/jiraarchiver/internal/jira"
)

// ObfuscateCookie masks every cookie value, keeping the cookie names,
// the first 2 and last 2 characters of each value and its original length.
// Example: "JSESSIONID=ab******yz; seraph=****"
func ObfuscateCookie(cookie string) string {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return ""
	}

	parts := strings.Split(cookie, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			out = append(out, maskValue(part))
			continue
		}
		out = append(out, name+"="+maskValue(value))
	}
	return strings.Join(out, "; ")
}

// maskValue replaces all but the first and last two characters with '*'.
func maskValue(v string) string {
	n := len(v)
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	return v[:2] + strings.Repeat("*", n-4) + v[n-2:]
}

// GetCookieHeader returns the "Cookie" header value that would be set
// by the provided AuthFunc on a dummy HTTP request.
func GetCookieHeader(authFunc jira.AuthFunc) string {
	req, _ := http.NewRequest(http.MethodGet, "https://dummy", nil)
	authFunc(req)
	return req.Header.Get("Cookie")
}

// NormalizeRoutePrefix returns "" or "/prefix" from input, accepting raw paths or full URLs.
func NormalizeRoutePrefix(input string) string {
	s := strings.TrimSpace(input)
	if s == "" || s == "/" {
		return ""
	}
	// If someone passes a full URL, keep only the .Path.
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	if s == "/" {
		return ""
	}
	return s
}
