// Package output renders a generated variable set to a writer. Three
// formats are supported: indented JSON, dotenv KEY=VALUE lines, and
// shell export statements.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/savaki/gox/slicex"

	"github.com/steinuil/gitlab-ci-env/internal/errors"
	"github.com/steinuil/gitlab-ci-env/internal/interpolate"
	"github.com/steinuil/gitlab-ci-env/internal/predefined"
)

// Format names accepted by New.
const (
	FormatJSON   = "json"
	FormatDotenv = "dotenv"
	FormatExport = "export"
)

// Encoder writes a variable set to w in a specific output format.
type Encoder interface {
	Encode(w io.Writer, vars predefined.Variables) error
}

// New returns the Encoder for the given format name, or
// errors.ErrUnknownFormat when the name matches none.
func New(format string) (Encoder, error) {
	switch format {
	case FormatJSON:
		return jsonEncoder{}, nil
	case FormatDotenv:
		return dotenvEncoder{}, nil
	case FormatExport:
		return exportEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q, expected one of: %s, %s, %s",
			errors.ErrUnknownFormat, format, FormatJSON, FormatDotenv, FormatExport)
	}
}

type jsonEncoder struct{}

func (jsonEncoder) Encode(w io.Writer, vars predefined.Variables) error {
	data, err := json.MarshalIndent(vars, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal variables: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

type dotenvEncoder struct{}

func (dotenvEncoder) Encode(w io.Writer, vars predefined.Variables) error {
	lines := slicex.Map(vars.Pairs(), func(p interpolate.Pair) string {
		return p.Name + "=" + p.Value
	})
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

type exportEncoder struct{}

func (exportEncoder) Encode(w io.Writer, vars predefined.Variables) error {
	lines := slicex.Map(vars.Pairs(), func(p interpolate.Pair) string {
		return "export " + p.Name + "=" + shellQuote(p.Value)
	})
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// shellQuote wraps s in single quotes, escaping embedded single quotes
// with the '\'' idiom so the result is safe to eval in a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
