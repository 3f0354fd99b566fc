package jira

// Fields is the open, partially populated field bag of an issue.
// Every key may be absent or null.
type Fields map[string]any

// Lookup walks nested objects along path and returns the value found.
// It reports false when any step is missing, null or not an object.
func (f Fields) Lookup(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var cur any = map[string]any(f)
	for _, key := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[key]
		if !ok || v == nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// String returns the string at path, or "" when it is absent or not a string.
func (f Fields) String(path ...string) string {
	v, ok := f.Lookup(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// asMap accepts both map[string]any and the Fields alias.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Fields:
		return m, true
	}
	return nil, false
}
