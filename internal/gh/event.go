package gh

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v72/github"
)

// LoadPullRequestNumber reads a webhook payload file and returns the number
// of the pull request that triggered the event
func LoadPullRequestNumber(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read event payload: %w", err)
	}

	var event github.PullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return 0, fmt.Errorf("failed to parse event payload: %w", err)
	}

	number := event.GetPullRequest().GetNumber()
	if number == 0 {
		number = event.GetNumber()
	}
	if number == 0 {
		return 0, fmt.Errorf("event payload %s has no pull request", path)
	}
	return number, nil
}
