package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bjulian5/releasebot/internal/gh"
	"github.com/bjulian5/releasebot/internal/ui"
)

// BaselineVersion is used when the repository has no releases yet
const BaselineVersion = "1.0.0"

// ReleaseAPI defines the GitHub release operations needed by the Versioner
type ReleaseAPI interface {
	GetLatestRelease(ctx context.Context) (*gh.Release, error)
	ListReleases(ctx context.Context) ([]gh.Release, error)
	CreateRelease(ctx context.Context, spec gh.ReleaseSpec) error
	UpdateRelease(ctx context.Context, id int64, spec gh.ReleaseSpec) error
}

// Versioner finds or creates the draft release for the next version
type Versioner struct {
	api        ReleaseAPI
	mainBranch string
}

// NewVersioner creates a new Versioner targeting mainBranch
func NewVersioner(api ReleaseAPI, mainBranch string) *Versioner {
	return &Versioner{api: api, mainBranch: mainBranch}
}

// PublishResult describes what Publish did
type PublishResult struct {
	Version string
	TagName string
	Created bool // false when an existing draft was updated
}

// LatestVersion returns the version of the latest published release,
// or BaselineVersion when there is none
func (v *Versioner) LatestVersion(ctx context.Context) (string, error) {
	latest, err := v.api.GetLatestRelease(ctx)
	if err != nil {
		if errors.Is(err, gh.ErrNotFound) {
			ui.Info("No releases yet")
			return BaselineVersion, nil
		}
		return "", err
	}
	return normalizeTag(latest.TagName), nil
}

// ComputeVersion returns the version the next release of kind will carry
func (v *Versioner) ComputeVersion(ctx context.Context, kind Kind) (string, error) {
	last, err := v.LatestVersion(ctx)
	if err != nil {
		return "", err
	}
	ui.Infof("Latest release version: %s", last)
	return NextVersion(last, kind)
}

// FindDraft returns the first release whose tag contains version, or nil
func (v *Versioner) FindDraft(ctx context.Context, version string) (*gh.Release, error) {
	releases, err := v.api.ListReleases(ctx)
	if err != nil {
		return nil, err
	}
	for _, rel := range releases {
		if strings.Contains(rel.TagName, version) {
			return &rel, nil
		}
	}
	return nil, nil
}

// Publish updates the draft release of the next version with body, creating
// it when it does not exist yet
func (v *Versioner) Publish(ctx context.Context, kind Kind, body string) (*PublishResult, error) {
	version, err := v.ComputeVersion(ctx, kind)
	if err != nil {
		return nil, err
	}

	existing, err := v.FindDraft(ctx, version)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		err := v.api.UpdateRelease(ctx, existing.ID, gh.ReleaseSpec{
			Name:       existing.Name,
			Body:       body,
			Draft:      existing.Draft,
			Prerelease: existing.Prerelease,
		})
		if err != nil {
			return nil, err
		}
		return &PublishResult{Version: version, TagName: existing.TagName}, nil
	}

	tag := "v" + version
	err = v.api.CreateRelease(ctx, gh.ReleaseSpec{
		TagName:    tag,
		Name:       releaseTitle(kind, version),
		Body:       body,
		Draft:      true,
		Prerelease: true,
		Target:     v.mainBranch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create draft release: %w", err)
	}
	return &PublishResult{Version: version, TagName: tag, Created: true}, nil
}

func releaseTitle(kind Kind, version string) string {
	if kind == Release {
		return "Release " + version
	}
	return "Hotfix release " + version
}
