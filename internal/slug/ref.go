// Package slug reproduces GitLab's slugification of branch and environment
// names. Both algorithms match what a GitLab runner computes character for
// character, quirks included, so values derived here line up with the
// CI_COMMIT_REF_SLUG and CI_ENVIRONMENT_SLUG a pipeline would see.
package slug

import (
	"regexp"
	"strings"
)

// RefMaxLength is the longest commit ref slug GitLab produces.
const RefMaxLength = 63

var (
	refInvalidRuns = regexp.MustCompile(`[^a-z0-9-]+`)
	refOuterDashes = regexp.MustCompile(`^-*([a-z0-9-]+[a-z0-9])-*$`)
)

// Ref converts a branch or tag name into CI_COMMIT_REF_SLUG: lowercased,
// truncated to 63 characters, each run of characters outside [a-z0-9-]
// squashed to a single dash, and the outermost dashes stripped. The result
// is safe for DNS labels and URL path segments.
//
// The strip step is not a plain trim: its capture group must span at least
// two characters and end in an alphanumeric, so inputs like "a-", "-a" or
// "----" pass through unchanged. Truncation happens before the dash
// squashing, against the lowercased name.
func Ref(branch string) string {
	s := strings.ToLower(branch)
	if runes := []rune(s); len(runes) > RefMaxLength {
		s = string(runes[:RefMaxLength])
	}
	s = refInvalidRuns.ReplaceAllString(s, "-")
	return refOuterDashes.ReplaceAllString(s, "${1}")
}
