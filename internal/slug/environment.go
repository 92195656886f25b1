package slug

import (
	"crypto/sha256"
	"regexp"
	"strings"
)

// EnvironmentMaxLength is the longest environment slug GitLab produces.
const EnvironmentMaxLength = 24

const (
	environmentPrefixLength = 17
	environmentSuffixLength = 6
)

var dashRuns = regexp.MustCompile(`-+`)

// Environment converts an environment name into CI_ENVIRONMENT_SLUG. Names
// that already are short DNS-safe labels pass through with only trailing
// dashes removed; anything else is normalized, truncated to 17 characters
// and joined with a 6-character base-36 suffix of the name's SHA-256.
//
// The suffix hashes the original name, not the normalized one, so distinct
// names that normalize to the same prefix still get distinct slugs. The
// fast path also compares against the original name: a name that needed any
// normalization at all takes the hashed path even when it is short enough.
func Environment(name string) string {
	slug := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}, strings.ToLower(name))

	// Slugs must start with a letter. The check runs before the dash
	// collapse, on the normalized name; the empty name gets the prefix too.
	if slug == "" || slug[0] < 'a' || slug[0] > 'z' {
		slug = "env-" + slug
	}
	slug = dashRuns.ReplaceAllString(slug, "-")

	if len(slug) <= EnvironmentMaxLength && slug == name {
		return strings.TrimRight(slug, "-")
	}

	if len(slug) > environmentPrefixLength {
		slug = slug[:environmentPrefixLength]
	}
	if !strings.HasSuffix(slug, "-") {
		slug += "-"
	}

	sum := sha256.Sum256([]byte(name))
	suffix := Base36(sum[:])
	if len(suffix) > environmentSuffixLength {
		suffix = suffix[len(suffix)-environmentSuffixLength:]
	}
	return slug + suffix
}
