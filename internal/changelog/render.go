package changelog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bjulian5/releasebot/internal/model"
	"github.com/bjulian5/releasebot/internal/ui"
)

// Description title names
const (
	MainTitle = "## What's Changed \n"
	EpicTitle = "### Epic"
)

// Render turns the task model into description blocks: the title, one line
// per standalone task, then one block per epic. Tasks whose key belongs to
// an epic are listed only inside that epic.
func (s *Service) Render(ctx context.Context, tasks []model.Task, epicKeys map[string]bool) ([]string, error) {
	parts := []string{MainTitle}

	for _, task := range tasks {
		if task.IsEpic || (task.HasKey() && epicKeys[task.TaskKey]) {
			continue
		}
		line, ok, err := s.formatLine(ctx, task.Record)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		parts = append(parts, "* "+line)
	}

	for _, task := range tasks {
		if !task.IsEpic {
			continue
		}
		block, err := s.renderEpic(ctx, task)
		if err != nil {
			return nil, err
		}
		parts = append(parts, block)
	}

	return parts, nil
}

// renderEpic renders the epic header followed by its sub-tasks
func (s *Service) renderEpic(ctx context.Context, epic model.Task) (string, error) {
	header := epic.Record
	header.Author = ""

	line, ok, err := s.formatLine(ctx, header)
	if err != nil {
		return "", err
	}
	if !ok {
		line = epic.TaskKey
	}

	lines := []string{fmt.Sprintf("\n %s: %s", EpicTitle, line)}
	for _, sub := range epic.Tasks {
		subLine, ok, err := s.formatLine(ctx, sub)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		lines = append(lines, "* "+subLine)
	}
	return strings.Join(lines, "\n"), nil
}

// formatLine renders one record as
// "[[KEY](tracker/KEY)] title by @author in [#N](url), ...".
// ok is false when the tracker does not know the key; the line is dropped.
func (s *Service) formatLine(ctx context.Context, r model.Record) (line string, ok bool, err error) {
	var b strings.Builder

	title := r.Message
	if r.HasKey() {
		summary, found, err := s.resolver.GetIssueSummary(ctx, r.TaskKey)
		if err != nil {
			return "", false, err
		}
		if !found {
			ui.Infof("Skipping %s: issue not found in tracker", r.TaskKey)
			return "", false, nil
		}
		title = summary
		fmt.Fprintf(&b, "[[%s](%s/%s)] ", r.TaskKey, s.trackerURL, r.TaskKey)
	}

	b.WriteString(title)
	if r.Author != "" {
		fmt.Fprintf(&b, " by @%s", r.Author)
	}
	b.WriteString(" in ")
	b.WriteString(formatPullLinks(r.Numbers, r.Links))

	return b.String(), true, nil
}

// formatPullLinks renders "[#N](url)" for each number/link pair
func formatPullLinks(numbers []int, links []string) string {
	parts := make([]string, 0, len(numbers))
	for i, n := range numbers {
		link := ""
		if i < len(links) {
			link = links[i]
		}
		parts = append(parts, fmt.Sprintf("[#%d](%s)", n, link))
	}
	return strings.Join(parts, ", ")
}
