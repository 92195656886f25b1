package errors

import "errors"

var (
	ErrJobNotFound       = errors.New("job not found in CI configuration")
	ErrNoEnvironment     = errors.New("job does not define an environment")
	ErrInvalidAssignment = errors.New("invalid variable assignment")
	ErrUnknownFormat     = errors.New("unknown output format")
)
