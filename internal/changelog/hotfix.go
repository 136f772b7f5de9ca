package changelog

import (
	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/model"
)

// CollectHotfixTasks builds tasks straight from the commits of a hotfix pull
// request. Hotfix branches are committed to directly, so every task points
// at the hotfix pull request itself and is attributed to the commit author.
func CollectHotfixTasks(main *gh.PullRequest, commits []gh.Commit) []model.Task {
	var tasks []model.Task
	for _, commit := range commits {
		if isMergeCommit(commit.Message) {
			continue
		}

		keys := ExtractTaskKeys(commit.Message)
		if len(keys) == 0 {
			tasks = append(tasks, model.Task{
				Record: model.NewRecord("", commit.Message, commit.Author, main.Number, main.URL),
			})
			continue
		}
		for _, key := range keys {
			tasks = append(tasks, model.Task{
				Record: model.NewRecord(key, "", commit.Author, main.Number, main.URL),
			})
		}
	}

	sortTasks(tasks)
	return tasks
}
