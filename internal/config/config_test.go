package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BASECAMP_ACCOUNT_ID", "BASECAMP_ACCESS_TOKEN",
		"VISUAL", "EDITOR",
		"TENZING_LOG_LEVEL", "TENZING_LOG_FILE", "TENZING_LOG_CONSOLE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Empty(t, cfg.ProjectIDs)
	require.Empty(t, cfg.AccountID)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "vim", cfg.Editor)
}

func TestLoadFrom(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
project_ids = ["12345", "67890"]
user_id = "7"
editor = "nano"
account_id = "999"
access_token = "secret"
log_level = "debug"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, []string{"12345", "67890"}, cfg.ProjectIDs)
	require.Equal(t, "7", cfg.UserID)
	require.Equal(t, "nano", cfg.Editor)
	require.Equal(t, "999", cfg.AccountID)
	require.Equal(t, "secret", cfg.AccessToken)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFromInvalidTOML(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `project_ids = [unclosed`)
	_, err := LoadFrom(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverridesCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASECAMP_ACCOUNT_ID", "env-account")
	t.Setenv("BASECAMP_ACCESS_TOKEN", "env-token")

	path := writeConfig(t, `
account_id = "file-account"
access_token = "file-token"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, "env-account", cfg.AccountID)
	require.Equal(t, "env-token", cfg.AccessToken)
}

func TestEditorFallbackChain(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDITOR", "emacs")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, "emacs", cfg.Editor)

	t.Setenv("VISUAL", "code")
	cfg, err = LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, "code", cfg.Editor)
}

func TestFileEditorWinsOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDITOR", "emacs")

	path := writeConfig(t, `editor = "nano"`)
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, "nano", cfg.Editor)
}
