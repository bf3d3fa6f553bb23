package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate moves the test into an empty working directory and home so no real
// config file or environment leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	chdirForTest(t, dir)
	for _, key := range []string{
		"EXPENSE_TRACKER_LOG_LEVEL",
		"EXPENSE_TRACKER_LOG_FORMAT",
		"EXPENSE_TRACKER_DATA_DIRECTORY",
		"EXPENSE_TRACKER_DATA_ATTACHMENTS_ROOT",
		"EXPENSE_TRACKER_EXPORT_FORMAT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "data", config.Data.Directory)
	assert.Equal(t, "", config.Data.AttachmentsRoot)
	assert.Equal(t, "data", config.AttachmentsDir())
	assert.Equal(t, "json", config.Export.Format)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	t.Setenv("EXPENSE_TRACKER_LOG_LEVEL", "debug")
	t.Setenv("EXPENSE_TRACKER_LOG_FORMAT", "json")
	t.Setenv("EXPENSE_TRACKER_DATA_DIRECTORY", "/srv/ledger")
	t.Setenv("EXPENSE_TRACKER_DATA_ATTACHMENTS_ROOT", "/srv/files")
	t.Setenv("EXPENSE_TRACKER_EXPORT_FORMAT", "csv")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/srv/ledger", config.Data.Directory)
	assert.Equal(t, "/srv/files", config.AttachmentsDir())
	assert.Equal(t, "csv", config.Export.Format)
}

func TestInitializeConfig_ConfigFileAndPrecedence(t *testing.T) {
	dir := isolate(t)

	content := `
log:
  level: "warn"
  format: "json"
data:
  directory: "ledger"
export:
  format: "yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Setenv("EXPENSE_TRACKER_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "ledger", config.Data.Directory)
	assert.Equal(t, "yaml", config.Export.Format)
}

func TestInitializeConfig_BrokenConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0o600))

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestFromViper_BoundValueWins(t *testing.T) {
	isolate(t)

	v := NewViper()
	v.Set("data.directory", "from-flag")

	config, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", config.Data.Directory)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "loud" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "empty data directory",
			modifyConfig: func(c *Config) { c.Data.Directory = "  " },
			expectError:  "data.directory cannot be empty",
		},
		{
			name:         "invalid export format",
			modifyConfig: func(c *Config) { c.Export.Format = "toml" },
			expectError:  "invalid export format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			config.Log.Level = "info"
			config.Log.Format = "text"
			config.Data.Directory = "data"
			config.Export.Format = "json"
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}
