package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/steinuil/gitlab-ci-env/internal/slug"
)

// SlugCommand returns the slug command exposing the two slug algorithms
// individually for use in shell pipelines
func SlugCommand() *cli.Command {
	return &cli.Command{
		Name:  "slug",
		Usage: "Print a single slug",
		Description: `Print the slugified form of a branch or environment name, nothing else.

Examples:
  # DNS-safe form of the current branch
  gitlab-ci-env slug ref "$(git branch --show-current)"

  # Environment slug for a review app
  gitlab-ci-env slug environment "review/feature-x"`,
		Subcommands: []*cli.Command{
			{
				Name:      "ref",
				Usage:     "Slugify a branch or tag name (CI_COMMIT_REF_SLUG)",
				ArgsUsage: "BRANCH",
				Action:    refSlugAction,
			},
			{
				Name:      "environment",
				Aliases:   []string{"env"},
				Usage:     "Slugify an environment name (CI_ENVIRONMENT_SLUG)",
				ArgsUsage: "NAME",
				Action:    environmentSlugAction,
			},
		},
	}
}

func refSlugAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one branch name, got %d arguments", c.NArg())
	}
	_, err := fmt.Fprintln(c.App.Writer, slug.Ref(c.Args().First()))
	return err
}

func environmentSlugAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one environment name, got %d arguments", c.NArg())
	}
	_, err := fmt.Fprintln(c.App.Writer, slug.Environment(c.Args().First()))
	return err
}
