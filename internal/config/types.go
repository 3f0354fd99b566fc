package config

import "time"

// Config is the optional YAML configuration file.
type Config struct {
	MaxResults     int           `yaml:"maxResults"`     // search page size
	ArchiveName    string        `yaml:"archiveName"`    // download name of every archive
	BodyFormat     string        `yaml:"bodyFormat"`     // "text" or "markdown"
	SkipTLSVerify  bool          `yaml:"skipTLSVerify"`  // accept self-signed Jira certificates
	RequestTimeout time.Duration `yaml:"requestTimeout"` // per Jira call; 0 = none
	Presets        []Preset      `yaml:"presets"`
}

// Preset is a named export that can be run from the command line.
// Values may be resolver references such as "env:JIRA_COOKIE" or "file:/run/secrets/cookie".
type Preset struct {
	Name       string `yaml:"name"`
	JiraURL    string `yaml:"jiraUrl"`
	JiraCookie string `yaml:"jiraCookie"`
	JQL        string `yaml:"jql"`
}

// GetPreset returns the preset with the given name.
func (c Config) GetPreset(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
