package preprocess

import (
	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// RemoveTautology drops every clause containing both polarities of some
// variable. It never touches variables, so Restore is the identity.
type RemoveTautology struct{}

var _ Preprocessor = RemoveTautology{}

func (RemoveTautology) Preprocess(f *cnf.CNF) (*cnf.CNF, error) {
	out := cnf.New(f.NumVars)
	for _, c := range f.Clauses {
		if !c.IsTautology() {
			out.Clauses = append(out.Clauses, c.Clone())
		}
	}
	return out, nil
}

func (RemoveTautology) Restore(s solution.Solution) solution.Solution {
	return s
}
