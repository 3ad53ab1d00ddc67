package dpll

import (
	"io"
	"time"
)

// Options configures a Solver. Only Brancher is required; the rest mirror
// the ambient timeout/progress knobs cdcl.Options exposes so both engines
// can be driven identically by a CLI or benchmark harness.
type Options struct {
	Brancher Brancher
	Progress io.Writer
	Timeout  time.Duration
}

// Validate rejects configurations that cannot possibly search correctly.
func (o *Options) Validate() error {
	if o.Brancher == nil {
		return configErrorf("Brancher must be set")
	}
	if o.Timeout < 0 {
		return configErrorf("Timeout must be >= 0, got %s", o.Timeout)
	}
	return nil
}
