package bench

import (
	"sync/atomic"

	"github.com/satkit/cdcl/cdcl"
	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/dpll"
	"github.com/satkit/cdcl/solution"
)

// cdclAdapter binds a *cdcl.Solver to the formula it was built for, so it
// satisfies Solver without exposing the extra Solve(f) argument to Run.
type cdclAdapter struct {
	s *cdcl.Solver
	f *cnf.CNF
}

func (a cdclAdapter) SolveInterruptible(cancel *atomic.Bool) (solution.Solution, error) {
	return a.s.SolveInterruptible(a.f, cancel)
}

// NewCDCLSolverFunc returns a NewSolverFunc that builds a fresh cdcl.Solver
// per instance from optsFor(f), the construction discipline spec.md §5
// requires ("policies are constructed by factories at solve entry").
func NewCDCLSolverFunc(optsFor func(f *cnf.CNF) cdcl.Options) NewSolverFunc {
	return func(f *cnf.CNF) (Solver, error) {
		s, err := cdcl.NewSolver(f.NumVars, optsFor(f))
		if err != nil {
			return nil, err
		}
		for _, c := range f.Clauses {
			s.AddClause(c)
		}
		return cdclAdapter{s: s, f: f}, nil
	}
}

// NewDPLLSolverFunc returns a NewSolverFunc backed by the DPLL engine.
func NewDPLLSolverFunc(optsFor func(f *cnf.CNF) dpll.Options) NewSolverFunc {
	return func(f *cnf.CNF) (Solver, error) {
		return dpll.NewSolver(f, optsFor(f))
	}
}
