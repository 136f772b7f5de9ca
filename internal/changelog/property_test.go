package changelog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/model"
)

var (
	propertyKeys    = []string{"ERP-1", "ERP-2", "ERP-3", "OPS-4"}
	propertyAuthors = []string{"alice", "bob"}
	propertySlugs   = []string{"pay", "ship"}
)

// genHistory draws a main pull request history over a small pool of keys,
// authors and epic pull requests so that collisions are frequent
func genHistory(rt *rapid.T) (*fakeSource, []gh.Commit) {
	source := newFakeSource()

	epicNumbers := []int{100, 101, 102}
	for i, number := range epicNumbers {
		slug := rapid.SampledFrom(propertySlugs).Draw(rt, fmt.Sprintf("slug%d", i))
		author := rapid.SampledFrom(propertyAuthors).Draw(rt, fmt.Sprintf("epicAuthor%d", i))
		source.pulls[number] = gh.PullRequest{
			Number: number,
			Head:   fmt.Sprintf("epic/%s/%d", slug, number),
			Author: author,
			URL:    fmt.Sprintf("https://pr/%d", number),
		}
		merged := 200 + i
		source.pulls[merged] = gh.PullRequest{Number: merged, URL: fmt.Sprintf("https://pr/%d", merged)}
		key := rapid.SampledFrom(propertyKeys).Draw(rt, fmt.Sprintf("epicKey%d", i))
		source.commits[number] = []gh.Commit{
			{SHA: fmt.Sprintf("e%d", number), Message: fmt.Sprintf("Merge pull request #%d\n\n[%s] work", merged, key)},
		}
	}

	n := rapid.IntRange(0, 12).Draw(rt, "commits")
	commits := make([]gh.Commit, 0, n)
	for i := range n {
		sha := fmt.Sprintf("c%d", i)
		var message string
		if rapid.Bool().Draw(rt, fmt.Sprintf("keyed%d", i)) {
			message = fmt.Sprintf("[%s] change", rapid.SampledFrom(propertyKeys).Draw(rt, fmt.Sprintf("key%d", i)))
		} else {
			message = "Support: change"
		}
		commits = append(commits, gh.Commit{SHA: sha, Message: message})

		if rapid.IntRange(0, 3).Draw(rt, fmt.Sprintf("epic%d", i)) == 0 {
			number := rapid.SampledFrom(epicNumbers).Draw(rt, fmt.Sprintf("epicPull%d", i))
			source.associated[sha] = []gh.PullRequest{source.pulls[number]}
			continue
		}
		number := rapid.IntRange(2, 20).Draw(rt, fmt.Sprintf("pull%d", i))
		source.associated[sha] = []gh.PullRequest{{
			Number: number,
			Head:   fmt.Sprintf("feature/%d", number),
			Title:  "change",
			Author: rapid.SampledFrom(propertyAuthors).Draw(rt, fmt.Sprintf("author%d", i)),
			URL:    fmt.Sprintf("https://pr/%d", number),
		}}
	}
	return source, commits
}

func checkPaired(rt *rapid.T, r model.Record) {
	if len(r.Numbers) != len(r.Links) {
		rt.Fatalf("record %+v has %d numbers and %d links", r, len(r.Numbers), len(r.Links))
	}
	for i, n := range r.Numbers {
		if want := fmt.Sprintf("https://pr/%d", n); r.Links[i] != want {
			rt.Fatalf("record %+v pairs #%d with %s", r, n, r.Links[i])
		}
	}
}

// Property: numbers and links stay paired, keyed identities are unique and
// every epic pull request is represented by at most one epic task
func TestProperty_CollectTasksInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		source, commits := genHistory(rt)
		svc := NewService(source, &erpResolver{}, "https://tracker.yandex.ru")

		tasks, _, err := svc.CollectTasks(context.Background(), &gh.PullRequest{Number: 1}, commits)
		require.NoError(rt, err)

		type identity struct{ key, author string }
		seen := make(map[identity]bool)
		epicPulls := make(map[int]bool)
		for _, task := range tasks {
			checkPaired(rt, task.Record)
			for _, sub := range task.Tasks {
				checkPaired(rt, sub)
			}

			if task.HasKey() {
				id := identity{task.TaskKey, task.Author}
				if seen[id] {
					rt.Fatalf("duplicate task %v in %+v", id, tasks)
				}
				seen[id] = true
			}

			if task.IsEpic {
				for _, n := range task.Numbers {
					if epicPulls[n] {
						rt.Fatalf("epic pull request #%d collected twice", n)
					}
					epicPulls[n] = true
				}
			}
		}

		for i := 1; i < len(tasks); i++ {
			if model.TaskLess(tasks[i], tasks[i-1]) {
				rt.Fatalf("tasks out of order at %d: %+v", i, tasks)
			}
		}
	})
}

// Property: distinct keys collected in any commit order render identically
func TestProperty_SortIsOrderIndependent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(rt, "n")
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z]{2,4}-[0-9]{1,3}`), n, n, rapid.ID[string]).Draw(rt, "keys")

		source := newFakeSource()
		commits := make([]gh.Commit, 0, n)
		for i, key := range keys {
			sha := fmt.Sprintf("c%d", i)
			commits = append(commits, gh.Commit{SHA: sha, Message: fmt.Sprintf("[%s] change", key)})
			source.associated[sha] = []gh.PullRequest{{Number: i + 2, Author: "user", URL: fmt.Sprintf("https://pr/%d", i+2)}}
		}
		shuffled := rapid.Permutation(commits).Draw(rt, "shuffled")

		svc := NewService(source, &erpResolver{}, "https://tracker.yandex.ru")
		first, _, err := svc.CollectTasks(context.Background(), &gh.PullRequest{Number: 1}, commits)
		require.NoError(rt, err)
		second, _, err := svc.CollectTasks(context.Background(), &gh.PullRequest{Number: 1}, shuffled)
		require.NoError(rt, err)

		require.Equal(rt, first, second)
	})
}
