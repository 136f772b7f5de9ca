package changelog

import (
	"context"
	"sort"

	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/model"
)

// expandEpic builds the sub-tasks of an epic pull request from the merge
// commits of its own history. Non-merge commits are ignored: work lands in an
// epic branch through pull requests.
func (s *Service) expandEpic(ctx context.Context, epic gh.PullRequest) ([]model.Record, error) {
	commits, err := s.source.GetCommits(ctx, epic.Number)
	if err != nil {
		return nil, err
	}

	var tasks []model.Record
	for _, commit := range commits {
		if !isMergeCommit(commit.Message) {
			continue
		}

		pullNumber := epic.Number
		link := epic.URL
		author := epic.Author

		// The merge commit names the pull request that did the work
		if merged := parseMergedPullNumber(commit.Message); merged != 0 {
			pr, err := s.source.GetPullRequest(ctx, merged)
			if err != nil {
				return nil, err
			}
			pullNumber = pr.Number
			link = pr.URL
		}

		pulls, err := s.source.GetAssociatedPulls(ctx, commit.SHA)
		if err != nil {
			return nil, err
		}
		for _, pull := range pulls {
			if pull.Number == epic.Number {
				author = pull.Author
				break
			}
		}

		keys := ExtractTaskKeys(commit.Message)
		if len(keys) == 0 {
			tasks = append(tasks, model.NewRecord("", commit.Message, author, pullNumber, link))
			continue
		}
		for _, key := range keys {
			tasks = append(tasks, model.NewRecord(key, "", author, pullNumber, link))
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return model.Less(tasks[i], tasks[j])
	})
	return tasks, nil
}

// mergeEpicTasks appends the discovered sub-tasks that are not already
// present, comparing by task key and message
func mergeEpicTasks(current, discovered []model.Record) []model.Record {
	for _, task := range discovered {
		exists := false
		for _, existing := range current {
			if existing.SameEntry(task) {
				exists = true
				break
			}
		}
		if !exists {
			current = append(current, task)
		}
	}
	return current
}
