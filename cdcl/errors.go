package cdcl

import "fmt"

// ConfigError reports an invalid solver configuration detected before
// search begins (e.g. a non-positive time budget or an unrecognized policy).
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cdcl: config error: %s", e.Msg)
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// InternalInvariantViolation is raised when the solver detects it has
// violated one of its own invariants (removing an original clause, popping a
// free clause-id slot twice, conflict analysis producing a non-asserting
// clause, ...). It is always a bug in the solver itself, never in the input.
type InternalInvariantViolation struct {
	Msg string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("cdcl: internal invariant violated: %s", e.Msg)
}

func invariantViolationf(format string, args ...any) error {
	return &InternalInvariantViolation{Msg: fmt.Sprintf(format, args...)}
}
