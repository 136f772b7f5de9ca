package gh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v72/github"
)

// ErrNotFound is returned when GitHub answers 404
var ErrNotFound = errors.New("not found")

const perPage = 100

// Client provides GitHub operations for a single repository via the REST API
type Client struct {
	api   *github.Client
	owner string
	repo  string
}

// Options configures a Client
type Options struct {
	Token      string        // bearer token
	Repository string        // "owner/name"
	APIURL     string        // GitHub Enterprise API URL, empty for github.com
	Timeout    time.Duration // per-request timeout
}

// NewClient creates a new GitHub client for the repository in opts
func NewClient(opts Options) (*Client, error) {
	owner, repo, err := SplitRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	api := github.NewClient(&http.Client{Timeout: opts.Timeout}).WithAuthToken(opts.Token)
	if opts.APIURL != "" && opts.APIURL != "https://api.github.com" {
		api, err = api.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub API URL: %w", err)
		}
	}

	return newClientWithAPI(api, owner, repo), nil
}

func newClientWithAPI(api *github.Client, owner, repo string) *Client {
	return &Client{api: api, owner: owner, repo: repo}
}

// SplitRepository splits "owner/name" into its parts
func SplitRepository(repository string) (owner string, repo string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", repository)
	}
	return parts[0], parts[1], nil
}

// GetPullRequest fetches a pull request by number
func (c *Client) GetPullRequest(ctx context.Context, number int) (*PullRequest, error) {
	pr, _, err := c.api.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, wrapError(err, "failed to fetch PR #%d", number)
	}
	result := toPullRequest(pr)
	return &result, nil
}

// GetCommits returns all commits of a pull request in API order
func (c *Client) GetCommits(ctx context.Context, number int) ([]Commit, error) {
	var commits []Commit
	opts := &github.ListOptions{PerPage: perPage}
	for {
		page, resp, err := c.api.PullRequests.ListCommits(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, wrapError(err, "failed to list commits of PR #%d", number)
		}
		for _, rc := range page {
			commits = append(commits, toCommit(rc))
		}
		if resp.NextPage == 0 {
			return commits, nil
		}
		opts.Page = resp.NextPage
	}
}

// GetAssociatedPulls returns the pull requests that contain a commit.
// The list endpoint never fills in mergeable, so open pull requests are
// re-fetched individually.
func (c *Client) GetAssociatedPulls(ctx context.Context, sha string) ([]PullRequest, error) {
	var pulls []PullRequest
	opts := &github.ListOptions{PerPage: perPage}
	for {
		page, resp, err := c.api.PullRequests.ListPullRequestsWithCommit(ctx, c.owner, c.repo, sha, opts)
		if err != nil {
			return nil, wrapError(err, "failed to list pull requests of commit %s", sha)
		}
		for _, pr := range page {
			if pr.GetState() == "open" && pr.Mergeable == nil {
				full, _, err := c.api.PullRequests.Get(ctx, c.owner, c.repo, pr.GetNumber())
				if err != nil {
					return nil, wrapError(err, "failed to fetch PR #%d", pr.GetNumber())
				}
				pr = full
			}
			pulls = append(pulls, toPullRequest(pr))
		}
		if resp.NextPage == 0 {
			return pulls, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListOpenPulls lists open pull requests targeting base
func (c *Client) ListOpenPulls(ctx context.Context, base string) ([]PullRequest, error) {
	var pulls []PullRequest
	opts := &github.PullRequestListOptions{
		State:       "open",
		Base:        base,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	for {
		page, resp, err := c.api.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, wrapError(err, "failed to list open pull requests")
		}
		for _, pr := range page {
			pulls = append(pulls, toPullRequest(pr))
		}
		if resp.NextPage == 0 {
			return pulls, nil
		}
		opts.Page = resp.NextPage
	}
}

// EditPullRequestBody replaces the description of a pull request
func (c *Client) EditPullRequestBody(ctx context.Context, number int, body string) error {
	_, _, err := c.api.PullRequests.Edit(ctx, c.owner, c.repo, number, &github.PullRequest{
		Body: github.Ptr(body),
	})
	if err != nil {
		return wrapError(err, "failed to update body of PR #%d", number)
	}
	return nil
}

// GetLatestRelease returns the latest published release.
// Returns ErrNotFound when the repository has no releases yet.
func (c *Client) GetLatestRelease(ctx context.Context) (*Release, error) {
	rel, _, err := c.api.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, wrapError(err, "failed to fetch latest release")
	}
	result := toRelease(rel)
	return &result, nil
}

// ListReleases returns all releases, drafts included, in API order
func (c *Client) ListReleases(ctx context.Context) ([]Release, error) {
	var releases []Release
	opts := &github.ListOptions{PerPage: perPage}
	for {
		page, resp, err := c.api.Repositories.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, wrapError(err, "failed to list releases")
		}
		for _, rel := range page {
			releases = append(releases, toRelease(rel))
		}
		if resp.NextPage == 0 {
			return releases, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateRelease creates a new release
func (c *Client) CreateRelease(ctx context.Context, spec ReleaseSpec) error {
	_, _, err := c.api.Repositories.CreateRelease(ctx, c.owner, c.repo, &github.RepositoryRelease{
		TagName:         github.Ptr(spec.TagName),
		TargetCommitish: github.Ptr(spec.Target),
		Name:            github.Ptr(spec.Name),
		Body:            github.Ptr(spec.Body),
		Draft:           github.Ptr(spec.Draft),
		Prerelease:      github.Ptr(spec.Prerelease),
	})
	if err != nil {
		return wrapError(err, "failed to create release %s", spec.TagName)
	}
	return nil
}

// UpdateRelease edits name, body and flags of an existing release
func (c *Client) UpdateRelease(ctx context.Context, id int64, spec ReleaseSpec) error {
	_, _, err := c.api.Repositories.EditRelease(ctx, c.owner, c.repo, id, &github.RepositoryRelease{
		Name:       github.Ptr(spec.Name),
		Body:       github.Ptr(spec.Body),
		Draft:      github.Ptr(spec.Draft),
		Prerelease: github.Ptr(spec.Prerelease),
	})
	if err != nil {
		return wrapError(err, "failed to update release %d", id)
	}
	return nil
}

// wrapError adds context to a GitHub API error and maps 404 to ErrNotFound
func wrapError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func toPullRequest(pr *github.PullRequest) PullRequest {
	return PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Author:    pr.GetUser().GetLogin(),
		URL:       pr.GetHTMLURL(),
		Head:      pr.GetHead().GetRef(),
		Base:      pr.GetBase().GetRef(),
		State:     pr.GetState(),
		Mergeable: pr.GetMergeable(),
	}
}

func toCommit(rc *github.RepositoryCommit) Commit {
	return Commit{
		SHA:     rc.GetSHA(),
		Message: rc.GetCommit().GetMessage(),
		Author:  rc.GetAuthor().GetLogin(),
	}
}

func toRelease(rel *github.RepositoryRelease) Release {
	return Release{
		ID:         rel.GetID(),
		TagName:    rel.GetTagName(),
		Name:       rel.GetName(),
		Body:       rel.GetBody(),
		Draft:      rel.GetDraft(),
		Prerelease: rel.GetPrerelease(),
	}
}
