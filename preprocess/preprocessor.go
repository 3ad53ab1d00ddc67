// Package preprocess provides the CNF simplifiers of spec component C10:
// tautology removal, self-subsuming resolution, and non-increasing variable
// elimination by resolution (NiVER), composable via List.
package preprocess

import (
	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// Preprocessor rewrites a formula before it reaches a solver and maps the
// resulting solution back to the original variable space. Restore must be
// the identity on Unsatisfiable and Unknown solutions.
type Preprocessor interface {
	Preprocess(f *cnf.CNF) (*cnf.CNF, error)
	Restore(s solution.Solution) solution.Solution
}

func evalClauseWithOverride(c cnf.Clause, assignment []bool, overrideVar int, overrideVal bool) bool {
	for _, l := range c {
		v := l.VarID()
		val := overrideVal
		if v != overrideVar {
			val = assignment[v]
		}
		if l.IsPositive() == val {
			return true
		}
	}
	return false
}
