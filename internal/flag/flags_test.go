package flag_test

import (
	"strings"
	"testing"

	"github.com/gi8lino/jiraarchiver/internal/flag"

	"github.com/containeroo/tinyflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGetEnv keeps the caller's environment out of the tests.
func mockGetEnv(key string) string {
	return ""
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cfg, err := flag.ParseArgs("v1.2.3", nil, &out, mockGetEnv)
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, "", cfg.RoutePrefix)
		assert.Equal(t, "", cfg.Config)
		assert.Equal(t, "text", string(cfg.LogFormat))
		assert.False(t, cfg.Debug)
		assert.False(t, cfg.OneShot())
	})

	t.Run("override listen address", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cfg, err := flag.ParseArgs("1.0.0", []string{"--listen-address=127.0.0.1:9090"}, &out, mockGetEnv)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr)
	})

	t.Run("route prefix is normalized", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cfg, err := flag.ParseArgs("1.0.0", []string{"--route-prefix=archiver/"}, &out, mockGetEnv)
		require.NoError(t, err)
		assert.Equal(t, "/archiver", cfg.RoutePrefix)
	})

	t.Run("logging flags", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cfg, err := flag.ParseArgs("1.0.0", []string{"--debug", "--log-format=json"}, &out, mockGetEnv)
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "json", string(cfg.LogFormat))
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := flag.ParseArgs("1.0.0", []string{"--log-format=xml"}, &out, mockGetEnv)
		require.Error(t, err)
	})

	t.Run("one-shot export", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cfg, err := flag.ParseArgs("1.0.0", []string{"--config=config.yaml", "--export=nightly", "--output=/tmp/out.zip"}, &out, mockGetEnv)
		require.NoError(t, err)
		assert.True(t, cfg.OneShot())
		assert.Equal(t, "nightly", cfg.Export)
		assert.Equal(t, "/tmp/out.zip", cfg.Output)
	})

	t.Run("output without export", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := flag.ParseArgs("1.0.0", []string{"--output=out.zip"}, &out, mockGetEnv)
		assert.EqualError(t, err, "--output requires --export")
	})

	t.Run("export without config", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := flag.ParseArgs("1.0.0", []string{"--export=nightly"}, &out, mockGetEnv)
		assert.EqualError(t, err, "--export requires --config")
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := flag.ParseArgs("v9.9.9", []string{"--version"}, &out, mockGetEnv)
		require.Error(t, err)
		assert.True(t, tinyflags.IsVersionRequested(err))
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := flag.ParseArgs("v9.9.9", []string{"--help"}, &out, mockGetEnv)
		require.Error(t, err)
		assert.True(t, tinyflags.IsHelpRequested(err))
	})
}
