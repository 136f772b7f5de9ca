package changelog

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/model"
)

const epicBranchPrefix = "epic"

// collector holds the state of one aggregation pass
type collector struct {
	svc      *Service
	main     *gh.PullRequest
	tasks    []model.Task
	epicKeys map[string]bool
}

// CollectTasks walks the commits of the main pull request and aggregates the
// pull requests behind them into a deduplicated, sorted task list.
// Also returns the keys of every task that belongs to an epic.
func (s *Service) CollectTasks(ctx context.Context, main *gh.PullRequest, commits []gh.Commit) ([]model.Task, map[string]bool, error) {
	c := &collector{
		svc:      s,
		main:     main,
		epicKeys: make(map[string]bool),
	}

	for _, commit := range commits {
		if isMergeCommit(commit.Message) {
			continue
		}

		pulls, err := s.source.GetAssociatedPulls(ctx, commit.SHA)
		if err != nil {
			return nil, nil, err
		}

		for _, pull := range pulls {
			if pull.Number == main.Number || pull.Mergeable {
				continue
			}
			if err := c.processPull(ctx, pull, commit.Message); err != nil {
				return nil, nil, err
			}
		}
	}

	sortTasks(c.tasks)
	return c.tasks, c.epicKeys, nil
}

// processPull adds the tasks of one associated pull request
func (c *collector) processPull(ctx context.Context, pull gh.PullRequest, commitMessage string) error {
	if epicKey, ok := EpicKey(pull.Head); ok {
		if c.epicClaims(pull.Number) {
			return nil
		}

		epicTasks, err := c.svc.expandEpic(ctx, pull)
		if err != nil {
			return err
		}
		for _, t := range epicTasks {
			if t.HasKey() {
				c.epicKeys[t.TaskKey] = true
			}
		}
		c.updateOrCreate(pull, epicKey, true, epicTasks)
		return nil
	}

	keys := ExtractTaskKeys(commitMessage)
	if len(keys) == 0 {
		c.tasks = append(c.tasks, newTask(pull, "", false, nil))
		return nil
	}
	for _, key := range keys {
		c.updateOrCreate(pull, key, false, nil)
	}
	return nil
}

// epicClaims reports whether an epic task already covers the pull request
func (c *collector) epicClaims(number int) bool {
	return slices.ContainsFunc(c.tasks, func(t model.Task) bool {
		return t.IsEpic && t.HasNumber(number)
	})
}

// updateOrCreate merges the pull request into every task with the same key
// and author, or appends a new task when there is none
func (c *collector) updateOrCreate(pull gh.PullRequest, taskKey string, isEpic bool, epicTasks []model.Record) {
	matched := false
	for i := range c.tasks {
		task := &c.tasks[i]
		if task.TaskKey != taskKey || task.Author != pull.Author {
			continue
		}
		matched = true
		task.AddPull(pull.Number, pull.URL)
		if isEpic {
			task.Tasks = mergeEpicTasks(task.Tasks, epicTasks)
		}
	}

	if !matched {
		c.tasks = append(c.tasks, newTask(pull, taskKey, isEpic, epicTasks))
	}
}

// newTask builds a task for a single pull request; untracked tasks show the PR title
func newTask(pull gh.PullRequest, taskKey string, isEpic bool, epicTasks []model.Record) model.Task {
	task := model.Task{
		Record: model.NewRecord(taskKey, pull.Title, pull.Author, pull.Number, pull.URL),
		IsEpic: isEpic,
	}
	if isEpic {
		task.Tasks = append([]model.Record{}, epicTasks...)
	}
	return task
}

// EpicKey returns the epic slug of an "epic/<slug>/..." head branch
func EpicKey(head string) (string, bool) {
	parts := strings.Split(head, "/")
	if len(parts) < 2 || parts[0] != epicBranchPrefix {
		return "", false
	}
	return parts[1], true
}

func sortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return model.TaskLess(tasks[i], tasks[j])
	})
}
