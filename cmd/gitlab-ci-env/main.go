package main

import (
	"context"
	"os"

	"github.com/steinuil/gitlab-ci-env/cmd/gitlab-ci-env/commands"
	"github.com/steinuil/gitlab-ci-env/internal/di"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := di.ProvideLogger()
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "gitlab-ci-env",
		Usage: "Compute GitLab CI predefined variables without a GitLab",
		Description: `Derives the predefined environment variables a GitLab runner would publish
for a branch and environment, using the same slug algorithms GitLab uses.

This tool provides commands for:
  - Generating the full variable set from a branch and environment template
  - Printing a single ref or environment slug for use in shell pipelines
  - Resolving a job's environment straight from a .gitlab-ci.yml file`,
		Commands: []*cli.Command{
			commands.GenerateCommand(),
			commands.SlugCommand(),
			commands.FromCICommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
