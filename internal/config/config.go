// Package config loads releasebot settings from defaults, an optional YAML
// file and the environment (in increasing order of precedence).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bjulian5/releasebot/internal/tracker"
)

// DefaultFileName is the config file looked up in the working directory
const DefaultFileName = ".releasebot"

const (
	defaultMainBranch = "master"
	defaultTimeout    = 300 * time.Second
)

// Config holds everything a releasebot run needs
type Config struct {
	EventPath    string        `mapstructure:"event_path"`
	Token        string        `mapstructure:"token"`
	Repository   string        `mapstructure:"repository"`
	GitHubAPIURL string        `mapstructure:"github_api_url"`
	MainBranch   string        `mapstructure:"main_branch"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Tracker      Tracker       `mapstructure:"tracker"`
}

// Tracker holds the issue tracker settings
type Tracker struct {
	OrgID      string `mapstructure:"org_id"`
	OAuthToken string `mapstructure:"oauth_token"`
	APIURL     string `mapstructure:"api_url"`
	IAMURL     string `mapstructure:"iam_url"`
	WebURL     string `mapstructure:"web_url"`
}

// envBindings maps config keys to the environment variables that set them.
// When several variables are listed the first one that is set wins.
var envBindings = map[string][]string{
	"event_path":          {"GITHUB_EVENT_PATH"},
	"token":               {"INPUT_TOKEN", "GITHUB_TOKEN"},
	"repository":          {"GITHUB_REPOSITORY"},
	"github_api_url":      {"GITHUB_API_URL"},
	"main_branch":         {"INPUT_MAIN_BRANCH"},
	"timeout":             {"RELEASEBOT_TIMEOUT"},
	"tracker.org_id":      {"TRACKER_ORG_ID"},
	"tracker.oauth_token": {"TRACKER_OAUTH_TOKEN"},
	"tracker.api_url":     {"TRACKER_API_URL"},
	"tracker.iam_url":     {"TRACKER_IAM_URL"},
	"tracker.web_url":     {"TRACKER_WEB_URL"},
}

// Load reads the configuration. configFile overrides the lookup of
// .releasebot.yaml in dir; a missing default file is not an error.
func Load(dir, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("main_branch", defaultMainBranch)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("tracker.api_url", tracker.DefaultAPIURL)
	v.SetDefault("tracker.iam_url", tracker.DefaultIAMURL)
	v.SetDefault("tracker.web_url", tracker.DefaultWebURL)

	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.MainBranch = strings.TrimSpace(cfg.MainBranch)
	return &cfg, nil
}

// ValidateGitHub checks the settings needed to talk to GitHub
func (c *Config) ValidateGitHub() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "token (INPUT_TOKEN or GITHUB_TOKEN)")
	}
	if c.Repository == "" {
		missing = append(missing, "repository (GITHUB_REPOSITORY)")
	}
	if c.MainBranch == "" {
		missing = append(missing, "main_branch (INPUT_MAIN_BRANCH)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	return nil
}

// ValidateTracker checks the settings needed to talk to the issue tracker
func (c *Config) ValidateTracker() error {
	var missing []string
	if c.Tracker.OrgID == "" {
		missing = append(missing, "tracker.org_id (TRACKER_ORG_ID)")
	}
	if c.Tracker.OAuthToken == "" {
		missing = append(missing, "tracker.oauth_token (TRACKER_OAUTH_TOKEN)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks everything a full run needs
func (c *Config) Validate() error {
	if err := c.ValidateGitHub(); err != nil {
		return err
	}
	return c.ValidateTracker()
}
