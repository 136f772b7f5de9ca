package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every bound variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "master", cfg.MainBranch)
	assert.Equal(t, 300*time.Second, cfg.Timeout)
	assert.Equal(t, "https://tracker.yandex.ru", cfg.Tracker.WebURL)
	assert.Equal(t, "https://api.tracker.yandex.net", cfg.Tracker.APIURL)
	assert.Empty(t, cfg.Token)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("GITHUB_REPOSITORY", "acme/shop")
	t.Setenv("INPUT_MAIN_BRANCH", "main")
	t.Setenv("TRACKER_ORG_ID", "42")
	t.Setenv("TRACKER_OAUTH_TOKEN", "oauth")

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/event.json", cfg.EventPath)
	assert.Equal(t, "gh-token", cfg.Token)
	assert.Equal(t, "acme/shop", cfg.Repository)
	assert.Equal(t, "main", cfg.MainBranch)
	assert.Equal(t, "42", cfg.Tracker.OrgID)
	assert.Equal(t, "oauth", cfg.Tracker.OAuthToken)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InputTokenWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_TOKEN", "action-input")
	t.Setenv("GITHUB_TOKEN", "gh-token")

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "action-input", cfg.Token)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
repository: acme/from-file
main_branch: trunk
timeout: 30s
tracker:
  org_id: "7"
  web_url: https://tracker.example
`)
	t.Setenv("INPUT_MAIN_BRANCH", "main")

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "acme/from-file", cfg.Repository)
	assert.Equal(t, "main", cfg.MainBranch)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "7", cfg.Tracker.OrgID)
	assert.Equal(t, "https://tracker.example", cfg.Tracker.WebURL)
	assert.Equal(t, "https://iam.api.cloud.yandex.net/iam/v1/tokens", cfg.Tracker.IAMURL)
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repository: acme/explicit\n"), 0o644))

	cfg, err := Load(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, "acme/explicit", cfg.Repository)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)

	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "repository: [unterminated\n")

	_, err := Load(dir, "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Token:      "t",
		Repository: "acme/shop",
		MainBranch: "master",
		Timeout:    time.Minute,
		Tracker:    Tracker{OrgID: "1", OAuthToken: "o"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Token = "" }, wantErr: "token"},
		{name: "missing repository", mutate: func(c *Config) { c.Repository = "" }, wantErr: "repository"},
		{name: "non-positive timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: "invalid timeout"},
		{name: "missing tracker org", mutate: func(c *Config) { c.Tracker.OrgID = "" }, wantErr: "tracker.org_id"},
		{name: "missing tracker token", mutate: func(c *Config) { c.Tracker.OAuthToken = "" }, wantErr: "tracker.oauth_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
