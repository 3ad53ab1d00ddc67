// Package restart provides the restart policies of spec component C8. All
// of them count conflicts and report when a threshold is crossed; OnRestart
// resets the counter and advances whatever schedule produces the next
// threshold.
package restart

import "github.com/satkit/cdcl/cdcl"

// Never never triggers a restart.
type Never struct{}

var _ cdcl.RestartPolicy = Never{}

func (Never) OnConflict() bool { return false }
func (Never) OnRestart()       {}

// Fixed triggers every N conflicts.
type Fixed struct {
	N       int
	current int
}

var _ cdcl.RestartPolicy = (*Fixed)(nil)

// NewFixed returns a Fixed restart policy triggering every n conflicts.
func NewFixed(n int) *Fixed {
	return &Fixed{N: n}
}

func (f *Fixed) OnConflict() bool {
	f.current++
	return f.current >= f.N
}

func (f *Fixed) OnRestart() {
	f.current = 0
}

// Geometric triggers after rate conflicts, then scales rate by factorPct/100
// after every trigger. The rate is kept as a float and is not rounded.
type Geometric struct {
	rate      float64
	factorPct int
	current   int
}

// NewGeometric returns a Geometric restart policy with the given starting
// rate and per-trigger growth factor, expressed as a percentage (e.g. 150
// means the rate is multiplied by 1.5 after each restart).
func NewGeometric(rate int, factorPct int) *Geometric {
	return &Geometric{rate: float64(rate), factorPct: factorPct}
}

var _ cdcl.RestartPolicy = (*Geometric)(nil)

func (g *Geometric) OnConflict() bool {
	g.current++
	return float64(g.current) >= g.rate
}

func (g *Geometric) OnRestart() {
	g.current = 0
	g.rate = g.rate * float64(g.factorPct) / 100
}

// Luby triggers according to the Luby sequence, scaled by k: the driver
// restarts once the conflict count since the last restart reaches k times
// the current sequence value. The sequence is generated by the recurrence
// over the triple (u, v, w) starting at (1, 1, 1): if u == w, then either
// (u+1, 1, 2w) when u == v, or (u, v+1, w) otherwise; if u != w, (u+1, v,
// w). Each state's v is the emitted value before advancing to the next
// state.
type Luby struct {
	k       int
	u, v, w int
	current int
}

// NewLuby returns a Luby restart policy with multiplier k.
func NewLuby(k int) *Luby {
	return &Luby{k: k, u: 1, v: 1, w: 1}
}

var _ cdcl.RestartPolicy = (*Luby)(nil)

func (l *Luby) OnConflict() bool {
	l.current++
	return l.current >= l.k*l.v
}

func (l *Luby) OnRestart() {
	l.current = 0
	switch {
	case l.u == l.w && l.u == l.v:
		l.u, l.v, l.w = l.u+1, 1, 2*l.w
	case l.u == l.w:
		l.v++
	default:
		l.u++
	}
}
