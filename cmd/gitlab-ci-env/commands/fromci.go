package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/steinuil/gitlab-ci-env/internal/ciconfig"
	"github.com/steinuil/gitlab-ci-env/internal/di"
	"github.com/steinuil/gitlab-ci-env/internal/interpolate"
	"github.com/steinuil/gitlab-ci-env/internal/output"
	"github.com/steinuil/gitlab-ci-env/internal/predefined"
)

type fromCIHandler struct {
	encoder output.Encoder
	out     io.Writer
}

func newFromCIHandler(encoder output.Encoder, out di.Output) *fromCIHandler {
	return &fromCIHandler{
		encoder: encoder,
		out:     out,
	}
}

// FromCICommand returns the from-ci command which resolves a job's
// environment straight from a .gitlab-ci.yml file
func FromCICommand() *cli.Command {
	return &cli.Command{
		Name:  "from-ci",
		Usage: "Derive the predefined variables for a job in a .gitlab-ci.yml file",
		Description: `Read a job's environment name and URL templates from a CI configuration
file and derive the predefined variables for it.

Top-level variables, the job's own variables and --var assignments all feed
URL interpolation, later sources overriding earlier ones.

Examples:
  # Variables the deploy-review job would see on this branch
  gitlab-ci-env from-ci --job deploy-review --branch "feature/My Feature"

  # A different file, emitted as dotenv
  gitlab-ci-env from-ci --job deploy --branch main \
    --file ci/pipeline.yml --format dotenv`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "job",
				Aliases:  []string{"j"},
				Usage:    "Job name in the CI configuration",
				Required: true,
				EnvVars:  []string{"JOB"},
			},
			&cli.StringFlag{
				Name:     "branch",
				Aliases:  []string{"b"},
				Usage:    "Branch or tag name (becomes CI_COMMIT_REF_NAME verbatim)",
				Required: true,
				EnvVars:  []string{"BRANCH"},
			},
			&cli.StringFlag{
				Name:    "file",
				Usage:   "Path to the CI configuration file",
				Value:   ".gitlab-ci.yml",
				EnvVars: []string{"CI_CONFIG_PATH"},
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
		Action: fromCIAction,
	}
}

func fromCIAction(c *cli.Context) error {
	extras, err := interpolate.ParseAssignments(c.StringSlice("var"))
	if err != nil {
		return err
	}

	container, err := di.New(c.String("format"),
		di.WithProviders(
			newFromCIHandler,
		),
	)
	if err != nil {
		return err
	}

	return container.Invoke(func(handler *fromCIHandler) error {
		return handler.run(c.Context, c.String("file"), c.String("job"), c.String("branch"), extras)
	})
}

func (h *fromCIHandler) run(ctx context.Context, file, jobName, branch string, extras *interpolate.Mapping) error {
	logger := zerolog.Ctx(ctx)

	config, err := ciconfig.Load(file)
	if err != nil {
		return err
	}

	job, err := config.Job(jobName)
	if err != nil {
		return err
	}

	// CLI assignments override the file's variables in place.
	env := job.Variables.Clone()
	for _, p := range extras.Pairs() {
		env.Set(p.Name, p.Value)
	}

	vars := predefined.Generate(predefined.Input{
		Branch:          branch,
		EnvironmentName: job.EnvironmentName,
		EnvironmentURL:  job.EnvironmentURL,
		Env:             env,
	})

	logger.Info().
		Str("file", file).
		Str("job", job.Name).
		Str("environment", vars.EnvironmentName).
		Str("environment_slug", vars.EnvironmentSlug).
		Msg("Resolved job environment")

	return h.encoder.Encode(h.out, vars)
}
