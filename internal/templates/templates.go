package templates

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
)

// Archive template names every parsed set must define.
const (
	IssueTemplate = "issue"
	IndexTemplate = "index"
)

// ParseArchiveTemplates parses the issue and index page templates from webFS.
func ParseArchiveTemplates(webFS fs.FS, funcMap template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New("archive").
		Funcs(funcMap).
		ParseFS(webFS, path.Join("web/templates", "*.gohtml"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	for _, name := range []string{IssueTemplate, IndexTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q not defined", name)
		}
	}
	return tmpl, nil
}
