package domain

import (
	"errors"
	"fmt"
)

// Validation errors: the caller sent something structurally unusable.
// Recoverable by the caller, never retried internally.
var (
	ErrEmptyPosting  = errors.New("posting has no title and no description")
	ErrInputTooShort = errors.New("job text too short to analyze")
)

// ConfigError is fatal at load time: a model artifact is missing or the
// artifacts disagree on feature dimensions. It blocks serving; it is
// never raised per-call.
type ConfigError struct {
	Artifact string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("model configuration: %s: %s", e.Artifact, e.Reason)
}

// IsConfigError reports whether err (or anything it wraps) is a fatal
// configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
