package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets all STASHMCP_ variables a test might inherit.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STASHMCP_LOG_LEVEL",
		"STASHMCP_LOG_FORMAT",
		"STASHMCP_DIFF_MAX_LINES",
		"STASHMCP_DIFF_MAX_FILES",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.Equal(t, DefaultLogFormat, cfg.LogFormat)
	require.Equal(t, DefaultDiffMaxLines, cfg.DiffMaxLines)
	require.Equal(t, DefaultDiffMaxFiles, cfg.DiffMaxFiles)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STASHMCP_LOG_LEVEL", "DEBUG")
	t.Setenv("STASHMCP_LOG_FORMAT", "json")
	t.Setenv("STASHMCP_DIFF_MAX_LINES", "500")
	t.Setenv("STASHMCP_DIFF_MAX_FILES", "10")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 500, cfg.DiffMaxLines)
	require.Equal(t, 10, cfg.DiffMaxFiles)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STASHMCP_DIFF_MAX_LINES=123\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 123, cfg.DiffMaxLines)
}

func TestLoad_EnvironmentBeatsDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STASHMCP_DIFF_MAX_LINES", "77")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STASHMCP_DIFF_MAX_LINES=123\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 77, cfg.DiffMaxLines)
}

func TestValidate_Rejections(t *testing.T) {
	base := Config{
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		DiffMaxLines: DefaultDiffMaxLines,
		DiffMaxFiles: DefaultDiffMaxFiles,
	}

	cfg := base
	cfg.LogLevel = "LOUD"
	require.ErrorContains(t, cfg.Validate(), "invalid log level")

	cfg = base
	cfg.LogFormat = "xml"
	require.ErrorContains(t, cfg.Validate(), "invalid log format")

	cfg = base
	cfg.DiffMaxLines = 0
	require.ErrorContains(t, cfg.Validate(), "diff max lines")

	cfg = base
	cfg.DiffMaxFiles = -5
	require.ErrorContains(t, cfg.Validate(), "diff max files")
}

func TestValidate_CaseInsensitive(t *testing.T) {
	cfg := Config{
		LogLevel:     "debug",
		LogFormat:    "JSON",
		DiffMaxLines: 1,
		DiffMaxFiles: 1,
	}
	require.NoError(t, cfg.Validate())
}
