// Package config provides configuration loading for activity-box.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/activity-box/internal/domain"
	"github.com/naka-gawa/activity-box/internal/usecase"
)

// Environment variables read by ApplyEnv.
const (
	EnvUsername = "GH_USERNAME"
	EnvGistID   = "GIST_ID"
	EnvToken    = "GH_PAT"
	EnvAPIURL   = "GITHUB_API_URL"
)

// Config is the process-wide, read-only configuration of a run.
type Config struct {
	// Username is the GitHub user whose public activity is summarized.
	Username string `yaml:"username"`
	// GistID identifies the gist that receives the summary.
	GistID string `yaml:"gist_id"`
	// Token is a personal access token with the gist scope. It is never
	// read from the YAML file.
	Token string `yaml:"-"`
	// APIURL is a GitHub Enterprise Server base URL (empty = github.com).
	APIURL string `yaml:"api_url"`

	MaxLines      int  `yaml:"max_lines"`
	MaxLength     int  `yaml:"max_length"`
	Emoji         bool `yaml:"emoji"`
	WaitRateLimit bool `yaml:"wait_rate_limit"`

	Log LogConfig `yaml:"log"`
}

// DefaultConfig returns a Config with the pinned-gist defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxLines:  usecase.DefaultMaxLines,
		MaxLength: usecase.DefaultMaxLength,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return cfg, nil
}

// LoadDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set win, and a missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}

// ApplyEnv overrides fields with the non-empty environment variables
// returned by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvUsername); v != "" {
		c.Username = v
	}
	if v := getenv(EnvGistID); v != "" {
		c.GistID = v
	}
	if v := getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
}

// Validate checks everything an update run needs and reports every missing
// required setting at once.
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateRender checks what a dry run needs: a username and a sane layout.
// The token is optional there because public events can be read anonymously.
func (c *Config) ValidateRender() error {
	return c.validate(false)
}

func (c *Config) validate(publish bool) error {
	var missing []string
	if c.Username == "" {
		missing = append(missing, EnvUsername)
	}
	if publish && c.GistID == "" {
		missing = append(missing, EnvGistID)
	}
	if publish && c.Token == "" {
		missing = append(missing, EnvToken)
	}
	if len(missing) > 0 {
		return goerr.New("required settings are missing: "+strings.Join(missing, ", "),
			goerr.T(domain.ErrTagConfigMissing),
			goerr.V("missing", missing))
	}

	if c.MaxLines < 1 {
		return goerr.New("max_lines must be at least 1", goerr.V("max_lines", c.MaxLines))
	}
	if c.MaxLength < 4 {
		return goerr.New("max_length must be at least 4", goerr.V("max_length", c.MaxLength))
	}
	return nil
}
