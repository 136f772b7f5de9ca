package changelog

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/bjulian5/releasebot/internal/gh"
)

type MockSource struct {
	mock.Mock
}

// GetPullRequest implements PullRequestSource.
func (m *MockSource) GetPullRequest(ctx context.Context, number int) (*gh.PullRequest, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gh.PullRequest), args.Error(1)
}

// GetCommits implements PullRequestSource.
func (m *MockSource) GetCommits(ctx context.Context, number int) ([]gh.Commit, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gh.Commit), args.Error(1)
}

// GetAssociatedPulls implements PullRequestSource.
func (m *MockSource) GetAssociatedPulls(ctx context.Context, sha string) ([]gh.PullRequest, error) {
	args := m.Called(ctx, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gh.PullRequest), args.Error(1)
}

type MockEditor struct {
	mock.Mock
}

// EditPullRequestBody implements BodyEditor.
func (m *MockEditor) EditPullRequestBody(ctx context.Context, number int, body string) error {
	args := m.Called(ctx, number, body)
	return args.Error(0)
}

// erpResolver resolves every key containing "ERP" to itself and nothing else
type erpResolver struct {
	err   error
	calls []string
}

// GetIssueSummary implements IssueResolver.
func (r *erpResolver) GetIssueSummary(ctx context.Context, key string) (string, bool, error) {
	r.calls = append(r.calls, key)
	if r.err != nil {
		return "", false, r.err
	}
	if strings.Contains(key, "ERP") {
		return key, true, nil
	}
	return "", false, nil
}

// fakeSource is a map-backed PullRequestSource for property tests
type fakeSource struct {
	pulls      map[int]gh.PullRequest
	commits    map[int][]gh.Commit
	associated map[string][]gh.PullRequest
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pulls:      make(map[int]gh.PullRequest),
		commits:    make(map[int][]gh.Commit),
		associated: make(map[string][]gh.PullRequest),
	}
}

func (f *fakeSource) GetPullRequest(ctx context.Context, number int) (*gh.PullRequest, error) {
	pr := f.pulls[number]
	return &pr, nil
}

func (f *fakeSource) GetCommits(ctx context.Context, number int) ([]gh.Commit, error) {
	return f.commits[number], nil
}

func (f *fakeSource) GetAssociatedPulls(ctx context.Context, sha string) ([]gh.PullRequest, error) {
	return f.associated[sha], nil
}
