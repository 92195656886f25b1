// Package predefined assembles the predefined environment variables a
// GitLab runner would publish for a branch and environment, without talking
// to a GitLab.
package predefined

import (
	"github.com/steinuil/gitlab-ci-env/internal/interpolate"
	"github.com/steinuil/gitlab-ci-env/internal/slug"
)

// Names of the variables this tool reproduces.
const (
	CommitRefName   = "CI_COMMIT_REF_NAME"
	CommitRefSlug   = "CI_COMMIT_REF_SLUG"
	EnvironmentName = "CI_ENVIRONMENT_NAME"
	EnvironmentSlug = "CI_ENVIRONMENT_SLUG"
	EnvironmentURL  = "CI_ENVIRONMENT_URL"
)

// Variables holds the generated values. EnvironmentURL is nil when no URL
// template was given; its JSON key is omitted rather than emitted as null.
type Variables struct {
	CommitRefName   string  `json:"CI_COMMIT_REF_NAME"`
	CommitRefSlug   string  `json:"CI_COMMIT_REF_SLUG"`
	EnvironmentName string  `json:"CI_ENVIRONMENT_NAME"`
	EnvironmentSlug string  `json:"CI_ENVIRONMENT_SLUG"`
	EnvironmentURL  *string `json:"CI_ENVIRONMENT_URL,omitempty"`
}

// Input carries the raw values Generate derives the variables from.
type Input struct {
	// Branch is the branch or tag name, kept verbatim as CI_COMMIT_REF_NAME.
	Branch string

	// EnvironmentName is the environment name template. References to
	// CI_COMMIT_REF_NAME and CI_COMMIT_REF_SLUG are resolved.
	EnvironmentName string

	// EnvironmentURL is the URL template; empty means no URL at all.
	EnvironmentURL string

	// Env holds extra variables visible to URL interpolation, in
	// substitution order. May be nil. Generate never modifies it.
	Env *interpolate.Mapping
}

// Generate derives the predefined variables from input in a fixed sequence:
// the ref slug from the branch, the environment name by expanding its
// template with the two ref values, the environment slug from the expanded
// name, and finally, when a URL template is present, the URL by expanding it
// with the caller's extras plus the four values above. Extras keep their
// place at the front of the substitution order; on a name collision the
// derived value wins but the extras' position is preserved.
func Generate(input Input) Variables {
	refSlug := slug.Ref(input.Branch)

	refVars := interpolate.NewMapping(
		interpolate.Pair{Name: CommitRefName, Value: input.Branch},
		interpolate.Pair{Name: CommitRefSlug, Value: refSlug},
	)
	envName := interpolate.Expand(input.EnvironmentName, refVars)

	vars := Variables{
		CommitRefName:   input.Branch,
		CommitRefSlug:   refSlug,
		EnvironmentName: envName,
		EnvironmentSlug: slug.Environment(envName),
	}

	if input.EnvironmentURL != "" {
		urlVars := input.Env.Clone()
		urlVars.Set(CommitRefName, vars.CommitRefName)
		urlVars.Set(CommitRefSlug, vars.CommitRefSlug)
		urlVars.Set(EnvironmentName, vars.EnvironmentName)
		urlVars.Set(EnvironmentSlug, vars.EnvironmentSlug)

		url := interpolate.Expand(input.EnvironmentURL, urlVars)
		vars.EnvironmentURL = &url
	}

	return vars
}

// Pairs returns the variables as ordered name/value pairs, in the order a
// runner exports them. The URL pair is omitted when absent.
func (v Variables) Pairs() []interpolate.Pair {
	pairs := []interpolate.Pair{
		{Name: CommitRefName, Value: v.CommitRefName},
		{Name: CommitRefSlug, Value: v.CommitRefSlug},
		{Name: EnvironmentName, Value: v.EnvironmentName},
		{Name: EnvironmentSlug, Value: v.EnvironmentSlug},
	}
	if v.EnvironmentURL != nil {
		pairs = append(pairs, interpolate.Pair{Name: EnvironmentURL, Value: *v.EnvironmentURL})
	}
	return pairs
}
