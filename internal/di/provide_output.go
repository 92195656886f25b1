package di

import (
	"github.com/steinuil/gitlab-ci-env/internal/output"
)

// ProvideEncoder resolves the registered format string into an Encoder.
func ProvideEncoder(format string) (output.Encoder, error) {
	return output.New(format)
}
