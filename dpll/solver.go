package dpll

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// Solver is the counter-based DPLL engine of spec component C12: unit
// propagation decrements an active-literal counter per clause instead of
// moving watched literals, pure-literal elimination runs between
// propagation and branching, and backtracking flips the most recent
// decision before giving up on it (spec.md §4.12).
type Solver struct {
	opts    Options
	vars    *VarStore
	clauses []*Clause
	pending *unitQueue

	forceUnsat bool

	startTime time.Time
	iteration int64
}

// NewSolver builds a DPLL solver for formula f. Unlike cdcl.Solver it is not
// incremental: all of f's clauses are loaded at construction.
func NewSolver(f *cnf.CNF, opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	clauses := make([]*Clause, len(f.Clauses))
	forceUnsat := false
	for i, c := range f.Clauses {
		clauses[i] = newClause(append([]cnf.Literal(nil), c...))
		if len(c) == 0 {
			forceUnsat = true
		}
	}
	return &Solver{
		opts:       opts,
		vars:       newVarStore(f.NumVars, clauses),
		clauses:    clauses,
		pending:    newUnitQueue(),
		forceUnsat: forceUnsat,
	}, nil
}

// Solve runs the DPLL search without a cancel flag. It returns
// solution.Unknown only when the Timeout of the options expires.
func (s *Solver) Solve() (solution.Solution, error) {
	return s.solve(nil)
}

// SolveInterruptible mirrors cdcl.Solver.SolveInterruptible: it checks
// cancel at the top of the main loop and sets it itself before returning on
// any other path.
func (s *Solver) SolveInterruptible(cancel *atomic.Bool) (solution.Solution, error) {
	sol, err := s.solve(cancel)
	if cancel != nil {
		cancel.Store(true)
	}
	return sol, err
}

func (s *Solver) solve(cancel *atomic.Bool) (solution.Solution, error) {
	s.startTime = time.Now()

	if s.forceUnsat {
		return solution.Unsat(), nil
	}
	ok, err := s.initialUnitPropagation()
	if err != nil {
		return solution.Solution{}, err
	}
	if !ok {
		return solution.Unsat(), nil
	}

	for {
		if s.cancelled(cancel) || s.shouldStop() {
			return solution.UnknownSolution(), nil
		}

		lit, ok := s.opts.Brancher.Pick(s.vars, s.clauses)
		if !ok {
			return solution.Sat(s.collectAssignment()), nil
		}

		conflict, err := s.setVariable(lit, kindBranching)
		if err != nil {
			return solution.Solution{}, err
		}
		if !conflict {
			propagated, err := s.unitPropagation()
			if err != nil {
				return solution.Solution{}, err
			}
			conflict = !propagated
		}
		if !conflict {
			eliminated, err := s.pureLiteralElimination()
			if err != nil {
				return solution.Solution{}, err
			}
			conflict = !eliminated
		}

		if conflict {
			recovered, err := s.backtrack()
			if err != nil {
				return solution.Solution{}, err
			}
			if !recovered {
				return solution.Unsat(), nil
			}
		}

		s.iteration++
		s.logProgress()
	}
}

// initialUnitPropagation seeds the queue with every clause that is already
// unit before the first decision, per spec.md §4.5's initial-propagation
// rule generalized to the counter scheme.
func (s *Solver) initialUnitPropagation() (bool, error) {
	for i, c := range s.clauses {
		if c.activeLits == 1 {
			l, err := s.findFreeLiteral(i)
			if err != nil {
				return false, err
			}
			s.pending.push(l)
		}
	}
	return s.unitPropagation()
}

// setVariable assigns lit (recording kind for backtracking), updates every
// clause watching its variable, and reports whether the assignment produced
// a conflict. It always applies the full counter update described in
// spec.md §4.12 even past the first conflicting clause in its occurrence
// list, exactly mirroring the data each backtrack() undo must reverse.
func (s *Solver) setVariable(lit cnf.Literal, kind assignKind) (bool, error) {
	s.vars.push(lit, kind)

	satOcc, negOcc := s.vars.occurrencesFor(lit)

	for _, ci := range satOcc {
		c := s.clauses[ci]
		if !c.IsSatisfied() {
			c.satisfiedBy = lit.VarID()
		}
	}

	conflict := false
	for _, ci := range negOcc {
		c := s.clauses[ci]
		c.activeLits--
		if c.IsSatisfied() {
			continue
		}
		switch {
		case c.activeLits == 1:
			l, err := s.findFreeLiteral(ci)
			if err != nil {
				return false, err
			}
			s.pending.push(l)
		case c.activeLits <= 0:
			conflict = true
		}
	}
	return conflict, nil
}

// undoVariable reverses exactly the counter updates setVariable made for
// lit, without touching the unit queue (the caller clears that separately).
func (s *Solver) undoVariable(lit cnf.Literal) {
	satOcc, negOcc := s.vars.occurrencesFor(lit)
	for _, ci := range negOcc {
		s.clauses[ci].activeLits++
	}
	for _, ci := range satOcc {
		c := s.clauses[ci]
		if c.satisfiedBy == lit.VarID() {
			c.satisfiedBy = -1
		}
	}
}

func (s *Solver) unitPropagation() (bool, error) {
	for {
		lit, ok := s.pending.pop()
		if !ok {
			return true, nil
		}
		// A stale entry: its variable was already assigned by the time this
		// literal reached the front of the queue (its opposite-polarity
		// counterpart, also once unit, was applied first). Applying it again
		// would corrupt the assignment, so it is simply dropped: the clause
		// that produced it still has its counters in a consistent state and
		// will surface any real conflict through the assignment that beat it
		// to the queue.
		if s.vars.Value(lit.VarID()) != Free {
			continue
		}
		conflict, err := s.setVariable(lit, kindForced)
		if err != nil {
			return false, err
		}
		if conflict {
			return false, nil
		}
	}
}

// pureLiteralElimination assigns every free variable that occurs with only
// one polarity across the whole formula (spec.md §4.12). The occurrence
// lists it consults are the static ones built at construction, so this only
// ever catches variables pure in the original formula, not ones that become
// pure as other clauses get satisfied during search — a safe
// under-approximation, never an unsound one, since a variable absent from
// one polarity everywhere can never be harmed by fixing the other.
func (s *Solver) pureLiteralElimination() (bool, error) {
	for v := 0; v < s.vars.NumVars(); v++ {
		if s.vars.Value(v) != Free {
			continue
		}
		hasPos := len(s.vars.PosOccurrences(v)) > 0
		hasNeg := len(s.vars.NegOccurrences(v)) > 0

		var lit cnf.Literal
		switch {
		case hasNeg && !hasPos:
			lit = cnf.NegativeLiteral(v)
		case hasPos && !hasNeg:
			lit = cnf.PositiveLiteral(v)
		default:
			continue
		}
		conflict, err := s.setVariable(lit, kindBranching)
		if err != nil {
			return false, err
		}
		if conflict {
			return false, nil
		}
	}
	return true, nil
}

// backtrack unwinds the trail until a branching assignment can be flipped
// to a value that propagates without conflict, or the trail empties (the
// formula is unsatisfiable). Unlike the DPLL reference this is modeled on,
// a flip whose own propagation fails is itself fully undone before the
// search keeps backtracking further — silently accepting a conflicted flip
// would leave the clause database inconsistent for every decision above it.
func (s *Solver) backtrack() (bool, error) {
	for {
		entry, ok := s.vars.popTrail()
		if !ok {
			return false, nil
		}
		s.undoVariable(entry.lit)
		s.pending.clear()

		if entry.kind != kindBranching {
			continue
		}

		mark := s.vars.trailLen()
		conflict, err := s.setVariable(entry.lit.Opposite(), kindForced)
		if err != nil {
			return false, err
		}
		if !conflict {
			propagated, err := s.unitPropagation()
			if err != nil {
				return false, err
			}
			if propagated {
				return true, nil
			}
		}

		for s.vars.trailLen() > mark {
			e, _ := s.vars.popTrail()
			s.undoVariable(e.lit)
		}
		s.pending.clear()
	}
}

// findFreeLiteral returns the sole literal of clause ci whose variable is
// still free. Only ever called when activeLits == 1, so a free literal must
// exist; its absence is an InternalInvariantViolation, not a panic.
func (s *Solver) findFreeLiteral(ci int) (cnf.Literal, error) {
	for _, l := range s.clauses[ci].literals {
		if s.vars.Value(l.VarID()) == Free {
			return l, nil
		}
	}
	return 0, invariantViolationf("clause %d has activeLits=%d but no free literal", ci, s.clauses[ci].activeLits)
}

func (s *Solver) cancelled(cancel *atomic.Bool) bool {
	return cancel != nil && cancel.Load()
}

func (s *Solver) shouldStop() bool {
	return s.opts.Timeout > 0 && time.Since(s.startTime) >= s.opts.Timeout
}

func (s *Solver) collectAssignment() []bool {
	out := make([]bool, s.vars.NumVars())
	for v := range out {
		out[v] = s.vars.Value(v) == Pos
	}
	return out
}

func (s *Solver) logProgress() {
	if s.opts.Progress == nil {
		return
	}
	fmt.Fprintf(s.opts.Progress, "c %14.3fs %14d decisions\n",
		time.Since(s.startTime).Seconds(), s.iteration)
}
