package gh

// PullRequest contains the pull request fields the bot reads
type PullRequest struct {
	Number    int    // PR number
	Title     string // PR title
	Author    string // login of the PR author
	URL       string // html URL
	Head      string // head branch name
	Base      string // base branch name
	State     string // "open" or "closed"
	Mergeable bool   // GitHub's computed mergeable flag; false when unknown
}

// Commit is a commit of a pull request
type Commit struct {
	SHA     string
	Message string
	Author  string // GitHub login of the commit author, empty when unlinked
}

// Release is a repository release (published or draft)
type Release struct {
	ID         int64
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}

// ReleaseSpec defines all parameters for creating/updating a release
type ReleaseSpec struct {
	TagName    string // only used on create
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
	Target     string // target branch, only used on create
}
