package cdcl

import (
	"io"
	"time"
)

// Options configures a Solver. Brancher, Restart and Deletion are
// constructed by the caller (typically via a small factory function) so
// that each solve owns an independent set of policy instances, per spec.md
// §5 ("policies are constructed by factories at solve entry").
type Options struct {
	Brancher       Brancher
	Restart        RestartPolicy
	Deletion       DeletionPolicy
	ProofTrace     io.Writer // optional DRUP-style trace sink, nil disables it
	Progress       io.Writer // optional search-progress sink, nil disables it
	ProgressPeriod int       // iterations between progress lines when Progress != nil
	MaxConflicts   int64     // <0 disables the conflict budget
	Timeout        time.Duration
}

// Validate rejects configurations that cannot possibly search correctly.
func (o *Options) Validate() error {
	if o.Brancher == nil {
		return configErrorf("Brancher must be set")
	}
	if o.Restart == nil {
		return configErrorf("Restart must be set")
	}
	if o.Deletion == nil {
		return configErrorf("Deletion must be set")
	}
	if o.Timeout < 0 {
		return configErrorf("Timeout must be >= 0, got %s", o.Timeout)
	}
	return nil
}
