package changelog

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// MergeMarker identifies the synthetic commits GitHub creates when merging a pull request
const MergeMarker = "Merge pull request"

var mergePullPattern = regexp.MustCompile(`Merge pull request #(\d+)`)

// ExtractTaskKeys returns the distinct, sorted task keys referenced in
// bracket groups of text. Every "[...]" group is scanned independently, so
// "[ERP-3][Backend] feature" yields both keys. A group runs from the first
// '[' to the next ']' and may itself contain '['. Group content is split on
// commas and trimmed; empty pieces are dropped. An unterminated group ends
// the scan.
func ExtractTaskKeys(text string) []string {
	seen := make(map[string]bool)
	var keys []string

	pos := 0
	for pos < len(text) {
		open := strings.IndexByte(text[pos:], '[')
		if open < 0 {
			break
		}
		open += pos

		closing := strings.IndexByte(text[open+1:], ']')
		if closing < 0 {
			break
		}
		closing += open + 1

		for _, piece := range strings.Split(text[open+1:closing], ",") {
			key := strings.TrimSpace(piece)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
		pos = closing + 1
	}

	slices.Sort(keys)
	return keys
}

// isMergeCommit reports whether a commit message is a GitHub merge commit
func isMergeCommit(message string) bool {
	return strings.Contains(message, MergeMarker)
}

// parseMergedPullNumber extracts N from "Merge pull request #N".
// Returns 0 when the message names no pull request.
func parseMergedPullNumber(message string) int {
	match := mergePullPattern.FindStringSubmatch(message)
	if len(match) < 2 {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}
