package commands

import (
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/steinuil/gitlab-ci-env/internal/di"
	"github.com/steinuil/gitlab-ci-env/internal/interpolate"
	"github.com/steinuil/gitlab-ci-env/internal/output"
	"github.com/steinuil/gitlab-ci-env/internal/predefined"
)

// GenerateCommand returns the generate command for deriving the full
// variable set from explicit inputs
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Derive the predefined CI variables from a branch and environment template",
		Description: `Derive CI_COMMIT_REF_SLUG, CI_ENVIRONMENT_NAME, CI_ENVIRONMENT_SLUG and
optionally CI_ENVIRONMENT_URL from a branch name and an environment name template.

The environment name template may reference $CI_COMMIT_REF_NAME and
$CI_COMMIT_REF_SLUG. The URL template may additionally reference
$CI_ENVIRONMENT_NAME, $CI_ENVIRONMENT_SLUG and any --var assignment.

Examples:
  # Review app for a feature branch
  gitlab-ci-env generate --branch "feature/My Feature" \
    --environment-name 'review/$CI_COMMIT_REF_SLUG'

  # With a URL template and an extra variable
  gitlab-ci-env generate --branch main \
    --environment-name production \
    --environment-url 'https://$CI_ENVIRONMENT_SLUG.example.com/$VERSION' \
    --var VERSION=1.2.3

  # Emit shell exports instead of JSON
  gitlab-ci-env generate --branch main --environment-name production --format export`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "branch",
				Aliases:  []string{"b"},
				Usage:    "Branch or tag name (becomes CI_COMMIT_REF_NAME verbatim)",
				Required: true,
				EnvVars:  []string{"BRANCH"},
			},
			&cli.StringFlag{
				Name:     "environment-name",
				Aliases:  []string{"e"},
				Usage:    "Environment name template, may reference the ref name and slug",
				Required: true,
				EnvVars:  []string{"ENVIRONMENT_NAME"},
			},
			&cli.StringFlag{
				Name:    "environment-url",
				Aliases: []string{"u"},
				Usage:   "Environment URL template; omit to skip CI_ENVIRONMENT_URL",
				EnvVars: []string{"ENVIRONMENT_URL"},
			},
			&cli.StringSliceFlag{
				Name:    "var",
				Aliases: []string{"v"},
				Usage:   "Extra KEY=VALUE variable for URL interpolation (repeatable)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, dotenv or export",
				Value:   output.FormatJSON,
				EnvVars: []string{"FORMAT"},
			},
		},
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	logger := zerolog.Ctx(c.Context)

	extras, err := interpolate.ParseAssignments(c.StringSlice("var"))
	if err != nil {
		return err
	}

	container, err := di.New(c.String("format"))
	if err != nil {
		return err
	}

	vars := predefined.Generate(predefined.Input{
		Branch:          c.String("branch"),
		EnvironmentName: c.String("environment-name"),
		EnvironmentURL:  c.String("environment-url"),
		Env:             extras,
	})

	logger.Debug().
		Str("branch", vars.CommitRefName).
		Str("ref_slug", vars.CommitRefSlug).
		Str("environment", vars.EnvironmentName).
		Str("environment_slug", vars.EnvironmentSlug).
		Msg("Generated predefined variables")

	return container.Invoke(func(encoder output.Encoder, w di.Output) error {
		return encoder.Encode(w, vars)
	})
}
