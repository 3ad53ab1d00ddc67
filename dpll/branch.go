// Package dpll implements the counter-based DPLL engine of spec component
// C12: a simpler reference/baseline alongside the CDCL core, sharing its
// literal and clause value types (cnf) but none of its watched-literal or
// learning machinery.
package dpll

import "github.com/satkit/cdcl/cnf"

// Brancher selects the next free variable to branch on. Unlike cdcl.Brancher
// it carries no lifecycle hooks: every DPLL heuristic in spec.md §4.7
// (Naive, DLIS, DLCS, MOM, Jeroslaw-Wang) is a static function of the
// current variable/clause state, recomputed on every call.
type Brancher interface {
	// Pick returns the next decision literal, or ok=false if every variable
	// is already assigned.
	Pick(vars *VarStore, clauses []*Clause) (lit cnf.Literal, ok bool)
}

// Naive picks the first free variable in id order and always branches it
// positive, mirroring cdcl/branch.Naive.
type Naive struct{}

var _ Brancher = Naive{}

func (Naive) Pick(vars *VarStore, clauses []*Clause) (cnf.Literal, bool) {
	for v := 0; v < vars.NumVars(); v++ {
		if vars.Value(v) == Free {
			return cnf.PositiveLiteral(v), true
		}
	}
	return 0, false
}
