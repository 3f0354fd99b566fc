package templates

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/gi8lino/jiraarchiver/internal/jira"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateFuncMap(t *testing.T) {
	t.Parallel()

	t.Run("contains required helper functions", func(t *testing.T) {
		t.Parallel()

		funcs := TemplateFuncMap()

		assert.Contains(t, funcs, "formatJiraDate")
		assert.Contains(t, funcs, "field")

		assert.IsType(t, func(string, string) string { return "" }, funcs["formatJiraDate"])
		assert.IsType(t, func(jira.Fields, ...string) string { return "" }, funcs["field"])
	})

	t.Run("includes sprig helpers", func(t *testing.T) {
		t.Parallel()

		funcs := TemplateFuncMap()
		assert.Contains(t, funcs, "default")
		assert.Contains(t, funcs, "upper")
	})

	t.Run("field with default yields placeholder", func(t *testing.T) {
		t.Parallel()

		tmpl := template.Must(template.New("t").Funcs(TemplateFuncMap()).
			Parse(`{{ field . "assignee" "displayName" | default "Unassigned" }}`))

		var sb strings.Builder
		require.NoError(t, tmpl.Execute(&sb, jira.Fields{"assignee": nil}))
		assert.Equal(t, "Unassigned", sb.String())
	})
}

func TestFormatJiraDate(t *testing.T) {
	t.Parallel()

	t.Run("formats Z timestamp", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2024-01-15 10:30:00", formatJiraDate("2024-01-15T10:30:00.000Z", "2006-01-02 15:04:05"))
		assert.Equal(t, "2024-01-15", formatJiraDate("2024-01-15T10:30:00.000Z", "2006-01-02"))
	})

	t.Run("formats numeric offset timestamp in its own offset", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2023-08-01 14:30", formatJiraDate("2023-08-01T14:30:00.000+0200", "2006-01-02 15:04"))
	})

	t.Run("formats RFC3339 timestamp", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2024-02-29 23:59:59", formatJiraDate("2024-02-29T23:59:59Z", "2006-01-02 15:04:05"))
	})

	t.Run("returns input on invalid timestamp", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "invalid-date", formatJiraDate("invalid-date", time.RFC822))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", formatJiraDate("", "2006-01-02"))
	})
}

func TestParseJiraTime(t *testing.T) {
	t.Parallel()

	t.Run("keeps UTC instant", func(t *testing.T) {
		t.Parallel()
		got, ok := ParseJiraTime("2024-01-15T10:30:00.000Z")
		require.True(t, ok)
		assert.True(t, got.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		_, ok := ParseJiraTime("yesterday")
		assert.False(t, ok)
	})
}
