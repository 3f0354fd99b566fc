package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/gi8lino/jiraarchiver/internal/export"
	"github.com/gi8lino/jiraarchiver/internal/jira"
	"github.com/gi8lino/jiraarchiver/internal/render"

	"github.com/containeroo/resolver"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MaxResults:  jira.DefaultMaxResults,
		ArchiveName: export.DefaultArchiveName,
		BodyFormat:  string(render.BodyText),
	}
}

// LoadConfig loads the configuration from path. An empty path yields Default().
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks the config and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.MaxResults <= 0 {
		errs = append(errs, "maxResults must be > 0")
	}
	if cfg.RequestTimeout < 0 {
		errs = append(errs, "requestTimeout must be >= 0")
	}
	if err := render.BodyFormat(cfg.BodyFormat).Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("bodyFormat: %v", err))
	}

	switch name := cfg.ArchiveName; {
	case name == "":
		errs = append(errs, "archiveName is required")
	case path.Base(name) != name || strings.ContainsAny(name, `\"`):
		errs = append(errs, fmt.Sprintf("archiveName %q must be a plain file name", name))
	case !strings.HasSuffix(name, ".zip"):
		errs = append(errs, fmt.Sprintf(`archiveName %q must end with ".zip"`, name))
	}

	seen := make(map[string]bool, len(cfg.Presets))
	for i, p := range cfg.Presets {
		label := fmt.Sprintf("presets[%d]", i)
		if p.Name != "" {
			label += fmt.Sprintf(" (%s)", p.Name)
		}

		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required", label))
		} else if seen[p.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate name", label))
		}
		seen[p.Name] = true

		if p.JiraURL == "" {
			errs = append(errs, fmt.Sprintf("%s: jiraUrl is required", label))
		}
		if p.JiraCookie == "" {
			errs = append(errs, fmt.Sprintf("%s: jiraCookie is required", label))
		}
		if p.JQL == "" {
			errs = append(errs, fmt.Sprintf("%s: jql is required", label))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ResolvePreset turns the named preset into an export request, resolving value references.
func (c Config) ResolvePreset(name string) (export.Request, error) {
	p, ok := c.GetPreset(name)
	if !ok {
		return export.Request{}, fmt.Errorf("preset %q not found", name)
	}

	var req export.Request
	for _, f := range []struct {
		field string
		value string
		dst   *string
	}{
		{"jiraUrl", p.JiraURL, &req.JiraURL},
		{"jiraCookie", p.JiraCookie, &req.JiraCookie},
		{"jql", p.JQL, &req.JQL},
	} {
		v, err := resolver.ResolveVariable(f.value)
		if err != nil {
			return export.Request{}, fmt.Errorf("preset %q: resolve %s: %w", name, f.field, err)
		}
		*f.dst = v
	}
	return req, nil
}
