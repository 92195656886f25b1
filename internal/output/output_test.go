package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steinuil/gitlab-ci-env/internal/errors"
	"github.com/steinuil/gitlab-ci-env/internal/predefined"
)

func sampleVars(t *testing.T, url string) predefined.Variables {
	t.Helper()
	return predefined.Generate(predefined.Input{
		Branch:          "TEST-branch",
		EnvironmentName: "deployment-$CI_COMMIT_REF_SLUG",
		EnvironmentURL:  url,
	})
}

func TestNew(t *testing.T) {
	t.Run("known formats", func(t *testing.T) {
		for _, format := range []string{FormatJSON, FormatDotenv, FormatExport} {
			encoder, err := New(format)
			assert.NoError(t, err, format)
			assert.NotNil(t, encoder, format)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New("xml")
		assert.ErrorIs(t, err, errors.ErrUnknownFormat)
		assert.Contains(t, err.Error(), "xml")
	})
}

func TestJSONEncoder(t *testing.T) {
	t.Run("two space indent with trailing newline", func(t *testing.T) {
		encoder, err := New(FormatJSON)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, encoder.Encode(&buf, sampleVars(t, "")))

		want := `{
  "CI_COMMIT_REF_NAME": "TEST-branch",
  "CI_COMMIT_REF_SLUG": "test-branch",
  "CI_ENVIRONMENT_NAME": "deployment-test-branch",
  "CI_ENVIRONMENT_SLUG": "deployment-test-branch"
}
`
		assert.Equal(t, want, buf.String())
	})

	t.Run("round trips through a flat string map", func(t *testing.T) {
		encoder, err := New(FormatJSON)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, encoder.Encode(&buf, sampleVars(t, "https://example.com")))

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, map[string]string{
			"CI_COMMIT_REF_NAME":  "TEST-branch",
			"CI_COMMIT_REF_SLUG":  "test-branch",
			"CI_ENVIRONMENT_NAME": "deployment-test-branch",
			"CI_ENVIRONMENT_SLUG": "deployment-test-branch",
			"CI_ENVIRONMENT_URL":  "https://example.com",
		}, decoded)
	})
}

func TestDotenvEncoder(t *testing.T) {
	encoder, err := New(FormatDotenv)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encoder.Encode(&buf, sampleVars(t, "https://example.com")))

	want := `CI_COMMIT_REF_NAME=TEST-branch
CI_COMMIT_REF_SLUG=test-branch
CI_ENVIRONMENT_NAME=deployment-test-branch
CI_ENVIRONMENT_SLUG=deployment-test-branch
CI_ENVIRONMENT_URL=https://example.com
`
	assert.Equal(t, want, buf.String())
}

func TestExportEncoder(t *testing.T) {
	t.Run("export lines", func(t *testing.T) {
		encoder, err := New(FormatExport)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, encoder.Encode(&buf, sampleVars(t, "")))

		want := `export CI_COMMIT_REF_NAME='TEST-branch'
export CI_COMMIT_REF_SLUG='test-branch'
export CI_ENVIRONMENT_NAME='deployment-test-branch'
export CI_ENVIRONMENT_SLUG='deployment-test-branch'
`
		assert.Equal(t, want, buf.String())
	})

	t.Run("single quotes in values are escaped", func(t *testing.T) {
		vars := predefined.Generate(predefined.Input{
			Branch:          "main",
			EnvironmentName: "it's production",
		})

		encoder, err := New(FormatExport)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, encoder.Encode(&buf, vars))
		assert.Contains(t, buf.String(), `export CI_ENVIRONMENT_NAME='it'\''s production'`)
	})
}

func TestEncoders_URLOmittedWhenAbsent(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatDotenv, FormatExport} {
		t.Run(format, func(t *testing.T) {
			encoder, err := New(format)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, encoder.Encode(&buf, sampleVars(t, "")))
			assert.NotContains(t, buf.String(), "CI_ENVIRONMENT_URL")
		})
	}
}
