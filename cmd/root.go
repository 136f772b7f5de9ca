package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/bjulian5/releasebot/cmd/nextversion"
	"github.com/bjulian5/releasebot/cmd/preview"
	"github.com/bjulian5/releasebot/cmd/run"
	"github.com/bjulian5/releasebot/internal/common"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "releasebot",
	Short: "Pull request changelog and draft release bot",
	Long: `Releasebot turns the history of a pull request into a changelog of
tracker tasks grouped by epic.

It runs as a GitHub Actions step on pull request events: the description of
the pull request is rewritten, and release/ or hotfix/ pull requests into
the main line branch get a draft release for the next version.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().String(common.ConfigFlag, "", "Config file (default .releasebot.yaml in the working directory)")

	// Register all commands
	commands := []Command{
		&run.Command{},
		&preview.Command{},
		&nextversion.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
