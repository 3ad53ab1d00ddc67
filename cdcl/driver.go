package cdcl

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// Solver wires the clause database, variable store, propagation engine and
// conflict analyzer (C3-C6) together with the pluggable branching, restart
// and deletion policies (C7-C9) into the CDCL search loop (C11).
type Solver struct {
	opts Options

	prop     *Propagator
	analyzer *Analyzer

	forceUnsat bool // set by AddClause when a clause collapses to empty

	startTime time.Time
	iteration int64

	TotalConflicts int64
	TotalRestarts  int64
}

// NewSolver returns a solver for a formula with numVars variables, wired
// against opts. Clauses are added afterwards with AddClause.
func NewSolver(numVars int, opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	db := NewClauseDB(opts.ProofTrace)
	vars := NewVarStore(numVars)
	return &Solver{
		opts:     opts,
		prop:     NewPropagator(db, vars),
		analyzer: NewAnalyzer(db, vars),
	}, nil
}

// AddClause adds an original clause. A clause that collapses to empty, or a
// unit clause contradicting an earlier unit clause (either making the
// formula immediately unsatisfiable), is recorded and surfaced
// through Solve's return value, not as an error (spec.md §7).
func (s *Solver) AddClause(literals []cnf.Literal) {
	if _, ok := s.prop.AddOriginalClause(literals); !ok {
		s.forceUnsat = true
	}
}

// Solve runs the CDCL search without a cancel flag and returns the resulting
// solution. It returns solution.Unknown only when the MaxConflicts or
// Timeout budget of the options is exhausted.
func (s *Solver) Solve(f *cnf.CNF) (solution.Solution, error) {
	return s.solve(f, nil)
}

// SolveInterruptible runs the CDCL search, checking cancel at the top of the
// main loop and after every propagation/backtracking round (spec.md §4.11,
// §5). If cancel is observed set before completion, it returns
// solution.Unknown. On any other exit path it sets cancel itself so external
// waiters can observe completion.
func (s *Solver) SolveInterruptible(f *cnf.CNF, cancel *atomic.Bool) (solution.Solution, error) {
	sol, err := s.solve(f, cancel)
	if cancel != nil {
		cancel.Store(true)
	}
	return sol, err
}

func (s *Solver) solve(f *cnf.CNF, cancel *atomic.Bool) (solution.Solution, error) {
	s.startTime = time.Now()
	vars := s.prop.Vars()

	if vars.NumVars() != f.NumVars {
		return solution.Solution{}, configErrorf("solver was built for %d variables, got a formula with %d", vars.NumVars(), f.NumVars)
	}
	if s.forceUnsat {
		return solution.Unsat(), nil
	}
	if conflict := s.prop.InitialPropagation(); conflict != noClause {
		return solution.Unsat(), nil
	}
	for _, l := range vars.Trail() {
		s.opts.Brancher.OnAssign(l)
	}

	for {
		if s.cancelled(cancel) || s.shouldStop() {
			return solution.UnknownSolution(), nil
		}

		lit, ok := s.opts.Brancher.Pick(s.prop.DB(), vars)
		if !ok {
			return solution.Sat(s.collectAssignment()), nil
		}

		conflict := s.prop.Decide(lit)
		s.notifyAssignedSince(lit)

		if s.cancelled(cancel) {
			return solution.UnknownSolution(), nil
		}

		restartRequested := false
		for conflict != noClause {
			s.TotalConflicts++
			s.opts.Deletion.OnConflict(conflict, s.prop.DB().IsLearned(conflict))

			if vars.DecisionLevel() == 0 {
				return solution.Unsat(), nil
			}

			learned, backjumpLevel, ok := s.analyzer.Analyze(conflict)
			if !ok {
				return solution.Unsat(), nil
			}
			if backjumpLevel >= vars.DecisionLevel() {
				return solution.Solution{}, invariantViolationf(
					"analysis returned backjump level %d not below current depth %d", backjumpLevel, vars.DecisionLevel())
			}

			s.prop.CancelUntil(backjumpLevel, s.opts.Brancher.OnUnassign)
			s.prop.AddLearnedClause(learned)
			s.opts.Brancher.OnLearn(learned)

			if s.opts.Restart.OnConflict() {
				restartRequested = true
			}

			mark := len(vars.Trail())
			conflict = s.prop.Propagate()
			for _, l := range vars.Trail()[mark:] {
				s.opts.Brancher.OnAssign(l)
			}

			if s.cancelled(cancel) {
				return solution.UnknownSolution(), nil
			}
		}

		if restartRequested {
			s.restart(vars)
		}

		if dels := s.opts.Deletion.SelectForDeletion(s.prop.DB(), vars); len(dels) > 0 {
			for _, id := range dels {
				if err := s.prop.DetachClause(id); err != nil {
					return solution.Solution{}, err
				}
			}
		}

		s.iteration++
		s.logProgress()
	}
}

// notifyAssignedSince calls Brancher.OnAssign for the decision literal and
// every literal forced by the propagation sweep that followed it, in trail
// order. This keeps activity-based branchers in sync without the
// propagator needing to know about the brancher interface.
func (s *Solver) notifyAssignedSince(decisionLit cnf.Literal) {
	trail := s.prop.Vars().Trail()
	for i := len(trail) - 1; i >= 0; i-- {
		if trail[i] != decisionLit {
			continue
		}
		for j := i; j < len(trail); j++ {
			s.opts.Brancher.OnAssign(trail[j])
		}
		return
	}
}

func (s *Solver) restart(vars *VarStore) {
	s.TotalRestarts++
	s.prop.CancelUntil(0, s.opts.Brancher.OnUnassign)
	s.opts.Restart.OnRestart()
}

func (s *Solver) cancelled(cancel *atomic.Bool) bool {
	return cancel != nil && cancel.Load()
}

func (s *Solver) shouldStop() bool {
	if s.opts.MaxConflicts >= 0 && s.TotalConflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout > 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

func (s *Solver) collectAssignment() []bool {
	vars := s.prop.Vars()
	out := make([]bool, vars.NumVars())
	for v := range out {
		out[v] = vars.VarValue(v) == cnf.True
	}
	return out
}

func (s *Solver) logProgress() {
	if s.opts.Progress == nil || s.opts.ProgressPeriod <= 0 {
		return
	}
	if s.iteration%int64(s.opts.ProgressPeriod) != 0 {
		return
	}
	fmt.Fprintf(s.opts.Progress, "c %14.3fs %14d conflicts %14d restarts %14d learnts\n",
		time.Since(s.startTime).Seconds(), s.TotalConflicts, s.TotalRestarts, s.prop.DB().Len()-s.prop.DB().LenOriginal())
}
