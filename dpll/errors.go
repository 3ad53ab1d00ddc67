package dpll

import "fmt"

// ConfigError reports an invalid solver configuration detected before
// search begins.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dpll: config error: %s", e.Msg)
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// InternalInvariantViolation is raised when the engine detects it has
// violated one of its own invariants (a unit clause with no free literal, an
// active-literal counter that went negative, ...). Always a bug in the
// engine, never in the input.
type InternalInvariantViolation struct {
	Msg string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("dpll: internal invariant violated: %s", e.Msg)
}

func invariantViolationf(format string, args ...any) error {
	return &InternalInvariantViolation{Msg: fmt.Sprintf(format, args...)}
}
