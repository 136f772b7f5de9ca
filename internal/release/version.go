// Package release classifies release branches, computes the next semantic
// version and maintains the draft release for it.
package release

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the release flow a head branch belongs to
type Kind string

const (
	None    Kind = ""
	Release Kind = "release"
	Hotfix  Kind = "hotfix"
)

// KindOf returns the release flow named by the first segment of a head branch
func KindOf(head string) Kind {
	prefix, _, _ := strings.Cut(strings.ToLower(head), "/")
	switch Kind(prefix) {
	case Release:
		return Release
	case Hotfix:
		return Hotfix
	default:
		return None
	}
}

// Classify reports whether a pull request from head into base is a release
// or hotfix. Only pull requests into the main line branch qualify.
func Classify(head, base, mainBranch string) (Kind, bool) {
	kind := KindOf(head)
	if kind == None || base != mainBranch {
		return None, false
	}
	return kind, true
}

// Version is a major.minor.patch version
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses "major.minor.patch". Anything other than exactly three
// integer components is an error.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Next returns the version a release of the given kind publishes.
// A release bumps minor and resets patch, a hotfix bumps patch.
func (v Version) Next(kind Kind) Version {
	switch kind {
	case Release:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case Hotfix:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// NextVersion parses last and returns the next version string for kind
func NextVersion(last string, kind Kind) (string, error) {
	v, err := ParseVersion(last)
	if err != nil {
		return "", err
	}
	return v.Next(kind).String(), nil
}

// normalizeTag strips whitespace and the "v" marker from a release tag
func normalizeTag(tag string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(tag), "v", ""))
}
