package flag

import (
	"errors"
	"io"
	"net"

	"github.com/containeroo/tinyflags"
	"github.com/gi8lino/jiraarchiver/internal/logging"
	"github.com/gi8lino/jiraarchiver/internal/utils"
)

// Config aggregates CLI flags after parsing.
type Config struct {
	ListenAddr  string            // HTTP bind address (e.g. ":8080")
	RoutePrefix string            // Canonical path prefix ("" or "/archiver")
	Config      string            // Path to config file; empty = defaults
	Debug       bool              // Enables debug logging
	LogFormat   logging.LogFormat // Log output format (text or json)
	Export      string            // Preset to export once instead of serving
	Output      string            // Archive path for --export
}

// OneShot reports whether a single export was requested.
func (c Config) OneShot() bool { return c.Export != "" }

// ParseArgs parses CLI args into Config, handling version/help flags.
func ParseArgs(version string, args []string, out io.Writer, getEnv func(string) string) (Config, error) {
	var cfg Config
	tf := tinyflags.NewFlagSet("jira-archiver", tinyflags.ContinueOnError)
	tf.Version(version)
	tf.SetGetEnvFn(getEnv)
	tf.EnvPrefix("JIRA_ARCHIVER")
	tf.SetOutput(out)

	// Server
	tf.StringVar(&cfg.Config, "config", "", "Path to config file").
		Placeholder("FILE").
		Value()

	route := tf.String("route-prefix", "", "Path prefix to mount the app (e.g., /archiver). Empty = root.").
		Finalize(func(input string) string {
			return utils.NormalizeRoutePrefix(input) // canonical "" or "/archiver"
		}).
		Placeholder("PATH").
		Value()

	listenAddr := tf.TCPAddr("listen-address", &net.TCPAddr{IP: nil, Port: 8080}, "HTTP server listen address").
		Placeholder("ADDR:PORT").
		Value()

	// One-shot export
	tf.StringVar(&cfg.Export, "export", "", "Run the named config preset once and exit").
		Placeholder("PRESET").
		Value()
	tf.StringVar(&cfg.Output, "output", "", "Archive path for --export (default: archiveName from config)").
		Short("o").
		Placeholder("FILE").
		Value()

	// Logging
	tf.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging").Value()
	logFormat := tf.String("log-format", "text", "Log format").Choices("text", "json").Short("l").Value()

	// Parse
	if err := tf.Parse(args); err != nil {
		return Config{}, err
	}

	// Post-parse
	cfg.LogFormat = logging.LogFormat(*logFormat)
	cfg.ListenAddr = (*listenAddr).String()
	cfg.RoutePrefix = *route

	if cfg.Output != "" && cfg.Export == "" {
		return Config{}, errors.New("--output requires --export")
	}
	if cfg.Export != "" && cfg.Config == "" {
		return Config{}, errors.New("--export requires --config")
	}

	return cfg, nil
}
