package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/bjulian5/releasebot/internal/gh"
)

func init() {
	// Force lipgloss to initialize and detect terminal before fuzzy finder starts
	// This prevents ANSI escape sequences from leaking into the finder input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// SelectPullRequest presents a fuzzy finder to select a pull request.
// Returns nil if the user cancelled the selection.
func SelectPullRequest(pulls []gh.PullRequest) (*gh.PullRequest, error) {
	if len(pulls) == 0 {
		return nil, fmt.Errorf("no open pull requests to choose from")
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		pulls,
		func(i int) string {
			return FormatPullFinderLine(pulls[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return FormatPullPreview(pulls[i])
		}),
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return nil, nil
	}

	return &pulls[idx], nil
}

// FormatPullFinderLine formats a pull request as a single finder line
func FormatPullFinderLine(pr gh.PullRequest) string {
	return fmt.Sprintf("#%d %s (%s)", pr.Number, pr.Title, pr.Head)
}

// FormatPullPreview formats the preview pane for a pull request
func FormatPullPreview(pr gh.PullRequest) string {
	return fmt.Sprintf("#%d %s\n\nAuthor: @%s\nBranch: %s → %s\n%s",
		pr.Number, pr.Title, pr.Author, pr.Head, pr.Base, pr.URL)
}
