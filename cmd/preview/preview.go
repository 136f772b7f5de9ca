package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bjulian5/releasebot/internal/changelog"
	"github.com/bjulian5/releasebot/internal/common"
	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/model"
	"github.com/bjulian5/releasebot/internal/ui"
)

// Output formats
const (
	OutputMarkdown = "markdown"
	OutputTree     = "tree"
	OutputTable    = "table"
	OutputYAML     = "yaml"
)

// PullRequests is the subset of the GitHub client a preview needs
type PullRequests interface {
	GetPullRequest(ctx context.Context, number int) (*gh.PullRequest, error)
	ListOpenPulls(ctx context.Context, base string) ([]gh.PullRequest, error)
}

// Previewer collects and renders a changelog without writing it
type Previewer interface {
	Collect(ctx context.Context, main *gh.PullRequest) (*changelog.Changelog, error)
	Render(ctx context.Context, tasks []model.Task, epicKeys map[string]bool) ([]string, error)
}

// Command prints the changelog of a pull request without touching it
type Command struct {
	// Flags
	PRNumber int
	Output   string

	// Settings
	EventPath  string
	MainBranch string

	// Clients (can be mocked in tests)
	GH        PullRequests
	Changelog Previewer

	// Picker used when no pull request is given on a terminal
	Interactive func() bool
	Select      func(pulls []gh.PullRequest) (*gh.PullRequest, error)
}

func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "preview",
		Short: "Print the changelog of a pull request",
		Long: `Collect the tasks of a pull request and print the changelog that
"releasebot run" would write, without editing anything.

The pull request comes from --pr, then the event payload at
GITHUB_EVENT_PATH. On a terminal with neither, pick one of the open pull
requests into the main line branch.

Output formats:
  markdown  the pull request body (needs tracker credentials)
  tree      collected tasks grouped by epic
  table     one row per task
  yaml      the collected task model

Example:
  releasebot preview --pr 42
  releasebot preview --output tree`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig(common.ConfigFile(cobraCmd))
			if err != nil {
				return err
			}
			c.EventPath = cfg.EventPath
			c.MainBranch = cfg.MainBranch

			// Only markdown output resolves keys, so the tracker is optional
			if c.Output != OutputMarkdown {
				ghClient, err := common.InitGitHub(cfg)
				if err != nil {
					return err
				}
				c.GH = ghClient
				c.Changelog = changelog.NewService(ghClient, nil, cfg.Tracker.WebURL)
				return nil
			}

			clients, err := common.InitClients(cobraCmd.Context(), cfg)
			if err != nil {
				return err
			}
			c.GH = clients.GH
			c.Changelog = clients.Changelog
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().IntVar(&c.PRNumber, "pr", 0, "Pull request number")
	command.Flags().StringVarP(&c.Output, "output", "o", OutputMarkdown, "Output format: markdown, tree, table or yaml")

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	switch c.Output {
	case OutputMarkdown, OutputTree, OutputTable, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q: expected markdown, tree, table or yaml", c.Output)
	}

	pr, err := c.pullRequest(ctx)
	if err != nil {
		return err
	}
	if pr == nil {
		ui.Info("No pull request selected")
		return nil
	}

	cl, err := c.Changelog.Collect(ctx, pr)
	if err != nil {
		return fmt.Errorf("failed to collect tasks of #%d: %w", pr.Number, err)
	}

	switch c.Output {
	case OutputTree:
		ui.Print(ui.RenderTaskTree(fmt.Sprintf("Changelog for #%d", pr.Number), cl.Tasks, cl.EpicKeys))
	case OutputTable:
		ui.Print(ui.RenderTaskTable(cl.Tasks, cl.EpicKeys))
	case OutputYAML:
		out, err := yaml.Marshal(cl)
		if err != nil {
			return fmt.Errorf("failed to encode changelog: %w", err)
		}
		ui.Print(strings.TrimSuffix(string(out), "\n"))
	default:
		parts, err := c.Changelog.Render(ctx, cl.Tasks, cl.EpicKeys)
		if err != nil {
			return fmt.Errorf("failed to render changelog: %w", err)
		}
		ui.Print(strings.Join(parts, changelog.LineSeparator))
	}
	return nil
}

// pullRequest resolves the pull request to preview. Returns nil when the
// user cancelled the picker.
func (c *Command) pullRequest(ctx context.Context) (*gh.PullRequest, error) {
	if c.PRNumber == 0 && c.EventPath == "" && c.interactive() {
		pulls, err := c.GH.ListOpenPulls(ctx, c.MainBranch)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}
		selected, err := c.selectPull(pulls)
		if err != nil || selected == nil {
			return nil, err
		}
		c.PRNumber = selected.Number
	}

	number, err := common.ResolvePullRequestNumber(c.PRNumber, c.EventPath)
	if err != nil {
		return nil, err
	}
	pr, err := c.GH.GetPullRequest(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	return pr, nil
}

func (c *Command) interactive() bool {
	if c.Interactive != nil {
		return c.Interactive()
	}
	return ui.IsInteractive()
}

func (c *Command) selectPull(pulls []gh.PullRequest) (*gh.PullRequest, error) {
	if c.Select != nil {
		return c.Select(pulls)
	}
	return ui.SelectPullRequest(pulls)
}
