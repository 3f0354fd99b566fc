package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsLookup(t *testing.T) {
	t.Parallel()

	var f Fields
	require.NoError(t, json.Unmarshal([]byte(`{
		"summary": "Fix login",
		"status": {"name": "Open"},
		"assignee": null,
		"priority": {"name": 3},
		"labels": ["a", "b"]
	}`), &f))

	t.Run("top level string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Fix login", f.String("summary"))
	})

	t.Run("nested string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Open", f.String("status", "name"))
	})

	t.Run("null intermediate", func(t *testing.T) {
		t.Parallel()
		_, ok := f.Lookup("assignee", "displayName")
		assert.False(t, ok)
		assert.Equal(t, "", f.String("assignee", "displayName"))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		_, ok := f.Lookup("reporter", "displayName")
		assert.False(t, ok)
	})

	t.Run("non-string leaf", func(t *testing.T) {
		t.Parallel()
		v, ok := f.Lookup("priority", "name")
		assert.True(t, ok)
		assert.EqualValues(t, 3, v)
		assert.Equal(t, "", f.String("priority", "name"))
	})

	t.Run("walking through a non-object", func(t *testing.T) {
		t.Parallel()
		_, ok := f.Lookup("summary", "name")
		assert.False(t, ok)
		_, ok = f.Lookup("labels", "0")
		assert.False(t, ok)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		_, ok := f.Lookup()
		assert.False(t, ok)
	})

	t.Run("nil fields", func(t *testing.T) {
		t.Parallel()
		var empty Fields
		assert.Equal(t, "", empty.String("status", "name"))
	})
}

func TestCommentAuthorName(t *testing.T) {
	t.Parallel()

	t.Run("nil author", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", Comment{}.AuthorName())
	})

	t.Run("author set", func(t *testing.T) {
		t.Parallel()
		c := Comment{Author: &User{DisplayName: "Jane"}}
		assert.Equal(t, "Jane", c.AuthorName())
	})
}
