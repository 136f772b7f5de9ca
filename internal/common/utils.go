package common

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bjulian5/releasebot/internal/changelog"
	"github.com/bjulian5/releasebot/internal/config"
	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/tracker"
	"github.com/bjulian5/releasebot/internal/ui"
)

// ConfigFlag is the persistent root flag naming an explicit config file
const ConfigFlag = "config"

// ConfigFile returns the value of the --config flag, empty when unset
func ConfigFile(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString(ConfigFlag)
	return path
}

// GenerateRunID generates a 16-character hex ID identifying one bot run
func GenerateRunID() string {
	u := uuid.New()
	hexStr := strings.ReplaceAll(u.String(), "-", "")
	return hexStr[:16]
}

// Clients bundles everything a command needs to talk to GitHub and the tracker
type Clients struct {
	RunID     string
	GH        *gh.Client
	Tracker   *tracker.Client
	Changelog *changelog.Service
}

// LoadConfig loads the configuration from the working directory or configFile
func LoadConfig(configFile string) (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Load(dir, configFile)
	if err != nil {
		ui.Error("Could not load configuration")
		return nil, err
	}
	return cfg, nil
}

// InitGitHub initializes the GitHub client only
func InitGitHub(cfg *config.Config) (*gh.Client, error) {
	if err := cfg.ValidateGitHub(); err != nil {
		return nil, err
	}
	client, err := gh.NewClient(gh.Options{
		Token:      cfg.Token,
		Repository: cfg.Repository,
		APIURL:     cfg.GitHubAPIURL,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("github client initialization failed: %w", err)
	}
	return client, nil
}

// InitClients initializes GitHub, tracker and changelog clients
// Returns an error that is suitable for use in PreRunE hooks
func InitClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ghClient, err := InitGitHub(cfg)
	if err != nil {
		return nil, err
	}

	runID := GenerateRunID()
	ui.Infof("Run %s", runID)

	trackerClient, err := tracker.NewClient(ctx, tracker.Options{
		OrgID:      cfg.Tracker.OrgID,
		OAuthToken: cfg.Tracker.OAuthToken,
		APIURL:     cfg.Tracker.APIURL,
		IAMURL:     cfg.Tracker.IAMURL,
		Timeout:    cfg.Timeout,
		RequestID:  runID,
	})
	if err != nil {
		ui.Error("Could not authenticate with the tracker")
		return nil, fmt.Errorf("tracker client initialization failed: %w", err)
	}

	return &Clients{
		RunID:     runID,
		GH:        ghClient,
		Tracker:   trackerClient,
		Changelog: changelog.NewService(ghClient, trackerClient, cfg.Tracker.WebURL),
	}, nil
}

// ResolvePullRequestNumber returns the explicit number if set, otherwise the
// number from the webhook payload at eventPath
func ResolvePullRequestNumber(explicit int, eventPath string) (int, error) {
	if explicit > 0 {
		return explicit, nil
	}
	if eventPath == "" {
		return 0, fmt.Errorf("no pull request given: set --pr or GITHUB_EVENT_PATH")
	}
	number, err := gh.LoadPullRequestNumber(eventPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read pull request event: %w", err)
	}
	return number, nil
}
