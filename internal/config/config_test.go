package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/naka-gawa/activity-box/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activity-box.yaml")
	content := `
username: octocat
gist_id: abc123
max_length: 60
emoji: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, "abc123", cfg.GistID)
	assert.Equal(t, 60, cfg.MaxLength)
	assert.Equal(t, 5, cfg.MaxLines, "unset fields keep their defaults")
	assert.True(t, cfg.Emoji)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Token)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Username = "from-file"
	cfg.GistID = "file-gist"

	cfg.ApplyEnv(envMap(map[string]string{
		EnvUsername: "octocat",
		EnvToken:    "ghp_secret",
	}))

	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, "file-gist", cfg.GistID, "empty variables do not clear values")
	assert.Equal(t, "ghp_secret", cfg.Token)
	assert.Empty(t, cfg.APIURL)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name          string
		modify        func(*Config)
		render        bool
		expectError   bool
		expectMissing []string
	}{
		{
			name:   "complete configuration",
			modify: func(c *Config) {},
		},
		{
			name:          "everything missing",
			modify:        func(c *Config) { c.Username, c.GistID, c.Token = "", "", "" },
			expectError:   true,
			expectMissing: []string{EnvUsername, EnvGistID, EnvToken},
		},
		{
			name:          "token missing",
			modify:        func(c *Config) { c.Token = "" },
			expectError:   true,
			expectMissing: []string{EnvToken},
		},
		{
			name:   "dry run needs neither gist nor token",
			modify: func(c *Config) { c.GistID, c.Token = "", "" },
			render: true,
		},
		{
			name:          "dry run still needs a username",
			modify:        func(c *Config) { c.Username = "" },
			render:        true,
			expectError:   true,
			expectMissing: []string{EnvUsername},
		},
		{
			name:        "line budget too small",
			modify:      func(c *Config) { c.MaxLines = 0 },
			expectError: true,
		},
		{
			name:        "line width too small",
			modify:      func(c *Config) { c.MaxLength = 3 },
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Username, cfg.GistID, cfg.Token = "octocat", "abc123", "ghp_secret"
			tc.modify(cfg)

			var err error
			if tc.render {
				err = cfg.ValidateRender()
			} else {
				err = cfg.Validate()
			}

			if !tc.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, len(tc.expectMissing) > 0, goerr.HasTag(err, domain.ErrTagConfigMissing))
			for _, name := range tc.expectMissing {
				assert.Contains(t, err.Error(), name)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ACTIVITY_BOX_TEST_GIST=from-dotenv\n"), 0o600))
	t.Setenv("ACTIVITY_BOX_TEST_GIST", "")
	os.Unsetenv("ACTIVITY_BOX_TEST_GIST")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("ACTIVITY_BOX_TEST_GIST"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLogConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", JSON: true}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"msg":"shown"`)
}
