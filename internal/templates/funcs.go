package templates

import (
	"html/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/gi8lino/jiraarchiver/internal/jira"
)

// jiraTimeLayouts are tried in order when parsing Jira timestamps.
var jiraTimeLayouts = []string{
	"2006-01-02T15:04:05.000Z0700", // 2024-01-15T10:30:00.000Z, 2024-01-15T10:30:00.000+0100
	time.RFC3339Nano,               // 2024-01-15T10:30:00Z, 2024-01-15T10:30:00.5+01:00
}

// TemplateFuncMap returns all helper functions for templates.
func TemplateFuncMap() template.FuncMap {
	fm := sprig.HtmlFuncMap()
	fm["formatJiraDate"] = formatJiraDate
	fm["field"] = field
	return fm
}

// field returns the string at path in the issue fields, or "" when absent.
func field(f jira.Fields, path ...string) string {
	return f.String(path...)
}

// ParseJiraTime parses a Jira wire timestamp, keeping the offset it carries.
func ParseJiraTime(input string) (time.Time, bool) {
	for _, layout := range jiraTimeLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatJiraDate parses a Jira timestamp and returns it formatted using the provided layout.
// If parsing fails, the original string is returned.
func formatJiraDate(input, layout string) string {
	parsed, ok := ParseJiraTime(input)
	if !ok {
		return input
	}
	return parsed.Format(layout)
}
