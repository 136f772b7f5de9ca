// Package changelog turns the commit and pull request history of a pull
// request into a changelog grouped by epic.
package changelog

import (
	"context"
	"strings"

	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/model"
	"github.com/bjulian5/releasebot/internal/release"
)

// LineSeparator joins description blocks into the pull request body
const LineSeparator = "\r\n"

// PullRequestSource defines the GitHub read operations needed by the Service
type PullRequestSource interface {
	GetPullRequest(ctx context.Context, number int) (*gh.PullRequest, error)
	GetCommits(ctx context.Context, number int) ([]gh.Commit, error)
	GetAssociatedPulls(ctx context.Context, sha string) ([]gh.PullRequest, error)
}

// IssueResolver maps a task key to its tracker summary.
// found is false when the tracker does not know the key.
type IssueResolver interface {
	GetIssueSummary(ctx context.Context, key string) (summary string, found bool, err error)
}

// Service collects and renders the changelog of a pull request
type Service struct {
	source     PullRequestSource
	resolver   IssueResolver
	trackerURL string
}

// NewService creates a new changelog service.
// trackerURL is the web URL issue links point to.
func NewService(source PullRequestSource, resolver IssueResolver, trackerURL string) *Service {
	return &Service{
		source:     source,
		resolver:   resolver,
		trackerURL: strings.TrimSuffix(trackerURL, "/"),
	}
}

// Changelog is the collected task model of one pull request
type Changelog struct {
	Tasks    []model.Task    `json:"tasks" yaml:"tasks"`
	EpicKeys map[string]bool `json:"epic_keys" yaml:"epic_keys"`
}

// Collect gathers the task model of a pull request.
// Hotfix branches are collected from their own commits; everything else
// walks the pull requests behind each commit.
func (s *Service) Collect(ctx context.Context, main *gh.PullRequest) (*Changelog, error) {
	commits, err := s.source.GetCommits(ctx, main.Number)
	if err != nil {
		return nil, err
	}

	if release.KindOf(main.Head) == release.Hotfix {
		return &Changelog{
			Tasks:    CollectHotfixTasks(main, commits),
			EpicKeys: map[string]bool{},
		}, nil
	}

	tasks, epicKeys, err := s.CollectTasks(ctx, main, commits)
	if err != nil {
		return nil, err
	}
	return &Changelog{Tasks: tasks, EpicKeys: epicKeys}, nil
}

// BuildDescription collects and renders the pull request body
func (s *Service) BuildDescription(ctx context.Context, main *gh.PullRequest) (string, error) {
	cl, err := s.Collect(ctx, main)
	if err != nil {
		return "", err
	}

	parts, err := s.Render(ctx, cl.Tasks, cl.EpicKeys)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, LineSeparator), nil
}

// BodyEditor writes the pull request description
type BodyEditor interface {
	EditPullRequestBody(ctx context.Context, number int, body string) error
}

// UpdateDescription builds the description and writes it to the pull request.
// Nothing is written when collection or rendering fails.
func (s *Service) UpdateDescription(ctx context.Context, editor BodyEditor, main *gh.PullRequest) (string, error) {
	body, err := s.BuildDescription(ctx, main)
	if err != nil {
		return "", err
	}
	if err := editor.EditPullRequestBody(ctx, main.Number, body); err != nil {
		return "", err
	}
	return body, nil
}
