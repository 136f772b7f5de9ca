package nextversion

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/releasebot/internal/common"
	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/release"
	"github.com/bjulian5/releasebot/internal/ui"
)

// GitHub is the subset of the GitHub client next-version needs
type GitHub interface {
	GetPullRequest(ctx context.Context, number int) (*gh.PullRequest, error)
	release.ReleaseAPI
}

// Command prints the version a run would publish
type Command struct {
	// Flags
	Kind     string
	PRNumber int

	// Settings
	EventPath  string
	MainBranch string

	// Clients (can be mocked in tests)
	GH GitHub
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "next-version",
		Short: "Print the next release version",
		Long: `Print the version the draft release of a run would carry.

Without --kind the kind comes from the triggering pull request: release/
and hotfix/ branches into the main line branch bump the minor and patch
components, anything else keeps the latest version.

Example:
  releasebot next-version --kind release
  releasebot next-version --pr 42`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig(common.ConfigFile(cobraCmd))
			if err != nil {
				return err
			}
			ghClient, err := common.InitGitHub(cfg)
			if err != nil {
				return err
			}
			c.EventPath = cfg.EventPath
			c.MainBranch = cfg.MainBranch
			c.GH = ghClient
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().StringVar(&c.Kind, "kind", "", "Release kind: release or hotfix (defaults to the pull request's)")
	command.Flags().IntVar(&c.PRNumber, "pr", 0, "Pull request number (defaults to the event payload)")

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	kind, err := c.resolveKind(ctx)
	if err != nil {
		return err
	}

	version, err := release.NewVersioner(c.GH, c.MainBranch).ComputeVersion(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to compute version: %w", err)
	}
	ui.Print(version)
	return nil
}

func (c *Command) resolveKind(ctx context.Context) (release.Kind, error) {
	switch release.Kind(c.Kind) {
	case release.Release, release.Hotfix:
		return release.Kind(c.Kind), nil
	case release.None:
	default:
		return release.None, fmt.Errorf("unknown kind %q: expected release or hotfix", c.Kind)
	}

	number, err := common.ResolvePullRequestNumber(c.PRNumber, c.EventPath)
	if err != nil {
		return release.None, err
	}
	pr, err := c.GH.GetPullRequest(ctx, number)
	if err != nil {
		return release.None, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	kind, _ := release.Classify(pr.Head, pr.Base, c.MainBranch)
	return kind, nil
}
