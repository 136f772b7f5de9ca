package run

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/releasebot/internal/changelog"
	"github.com/bjulian5/releasebot/internal/common"
	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/release"
	"github.com/bjulian5/releasebot/internal/ui"
)

// GitHub is the subset of the GitHub client a run needs
type GitHub interface {
	GetPullRequest(ctx context.Context, number int) (*gh.PullRequest, error)
	changelog.BodyEditor
	release.ReleaseAPI
}

// DescriptionUpdater rewrites the description of a pull request
type DescriptionUpdater interface {
	UpdateDescription(ctx context.Context, editor changelog.BodyEditor, main *gh.PullRequest) (string, error)
}

// Command runs the full pipeline for the pull request that triggered the event
type Command struct {
	// Flags
	PRNumber int

	// Settings
	EventPath  string
	MainBranch string

	// Clients (can be mocked in tests)
	GH        GitHub
	Changelog DescriptionUpdater
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "run",
		Short: "Update the pull request changelog and draft release",
		Long: `Rewrite the description of the triggering pull request as a changelog
grouped by epic. When the pull request merges a release/ or hotfix/ branch
into the main line branch, create or update the draft release of the next
version with the same changelog.

The pull request is read from the event payload at GITHUB_EVENT_PATH.

Example:
  releasebot run
  releasebot run --pr 42`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig(common.ConfigFile(cobraCmd))
			if err != nil {
				return err
			}
			clients, err := common.InitClients(cobraCmd.Context(), cfg)
			if err != nil {
				return err
			}
			c.EventPath = cfg.EventPath
			c.MainBranch = cfg.MainBranch
			c.GH = clients.GH
			c.Changelog = clients.Changelog
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().IntVar(&c.PRNumber, "pr", 0, "Pull request number (defaults to the event payload)")

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	number, err := common.ResolvePullRequestNumber(c.PRNumber, c.EventPath)
	if err != nil {
		return err
	}

	pr, err := c.GH.GetPullRequest(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	ui.Infof("Processing pull request #%d (%s → %s)", pr.Number, pr.Head, pr.Base)

	body, err := c.Changelog.UpdateDescription(ctx, c.GH, pr)
	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}
	ui.Successf("Updated description of pull request #%d", pr.Number)

	kind, ok := release.Classify(pr.Head, pr.Base, c.MainBranch)
	if !ok {
		if release.KindOf(pr.Head) != release.None {
			ui.Warningf("%s targets %s, not %s: skipping draft release", pr.Head, pr.Base, c.MainBranch)
			return nil
		}
		ui.Info("Not a release pull request, skipping draft release")
		return nil
	}

	result, err := release.NewVersioner(c.GH, c.MainBranch).Publish(ctx, kind, body)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", kind, err)
	}

	if result.Created {
		ui.Successf("Created draft release %s", result.TagName)
	} else {
		ui.Successf("Updated release %s", result.TagName)
	}
	return nil
}
