// Package branch provides the branching policies of spec component C7:
// Naive first-unassigned-variable selection and VSIDS.
package branch

import (
	"github.com/satkit/cdcl/cdcl"
	"github.com/satkit/cdcl/cnf"
)

// Naive picks the first unassigned variable in id order and always branches
// it positive. It exists for testing; the DPLL engine has its own
// counterpart, dpll.Naive.
type Naive struct{}

var _ cdcl.Brancher = Naive{}

// Pick returns the lowest-id unassigned variable's positive literal.
func (Naive) Pick(db *cdcl.ClauseDB, vars *cdcl.VarStore) (cnf.Literal, bool) {
	for v := 0; v < vars.NumVars(); v++ {
		if vars.VarValue(v) == cnf.Unknown {
			return cnf.PositiveLiteral(v), true
		}
	}
	return 0, false
}

// OnAssign is a no-op: Naive carries no per-literal state.
func (Naive) OnAssign(cnf.Literal) {}

// OnUnassign is a no-op: Naive carries no per-literal state.
func (Naive) OnUnassign(cnf.Literal) {}

// OnLearn is a no-op: Naive carries no per-literal state.
func (Naive) OnLearn([]cnf.Literal) {}
