package dpll

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

func solveDIMACS(t *testing.T, dimacs string, b Brancher) solution.Solution {
	t.Helper()
	f, err := cnf.ParseDIMACS(strings.NewReader(dimacs))
	if err != nil {
		t.Fatalf("ParseDIMACS: %s", err)
	}
	s, err := NewSolver(f, Options{Brancher: b})
	if err != nil {
		t.Fatalf("NewSolver: %s", err)
	}
	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	return sol
}

// satisfiesOriginal checks spec.md §8 universal invariant 1: every
// Satisfiable answer must satisfy the original formula.
func satisfiesOriginal(f *cnf.CNF, assignment []bool) bool {
	for _, c := range f.Clauses {
		ok := false
		for _, l := range c {
			if l.IsPositive() == assignment[l.VarID()] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func TestSolve_singlePositiveUnit(t *testing.T) {
	sol := solveDIMACS(t, "p cnf 1 1\n1 0\n", Naive{})
	if sol.Kind != solution.Satisfiable {
		t.Fatalf("Kind = %v, want Satisfiable", sol.Kind)
	}
	if len(sol.Assignment) != 1 || !sol.Assignment[0] {
		t.Errorf("Assignment = %v, want [true]", sol.Assignment)
	}
}

func TestSolve_immediateContradiction(t *testing.T) {
	sol := solveDIMACS(t, "p cnf 1 2\n1 0\n-1 0\n", Naive{})
	if sol.Kind != solution.Unsatisfiable {
		t.Fatalf("Kind = %v, want Unsatisfiable", sol.Kind)
	}
}

func TestSolve_twoLiteralChain(t *testing.T) {
	sol := solveDIMACS(t, "p cnf 3 3\n1 0\n-1 2 0\n-2 3 0\n", Naive{})
	if sol.Kind != solution.Satisfiable {
		t.Fatalf("Kind = %v, want Satisfiable", sol.Kind)
	}
	want := []bool{true, true, true}
	for i, v := range want {
		if sol.Assignment[i] != v {
			t.Errorf("Assignment[%d] = %v, want %v", i, sol.Assignment[i], v)
		}
	}
}

func TestSolve_pigeonholeTwoIntoOne(t *testing.T) {
	sol := solveDIMACS(t, "p cnf 2 4\n1 2 0\n-1 -2 0\n1 -2 0\n-1 2 0\n", Naive{})
	if sol.Kind != solution.Unsatisfiable {
		t.Fatalf("Kind = %v, want Unsatisfiable", sol.Kind)
	}
}

func TestSolve_emptyClauseIsUnsat(t *testing.T) {
	f := &cnf.CNF{NumVars: 1, Clauses: []cnf.Clause{{}}}
	s, err := NewSolver(f, Options{Brancher: Naive{}})
	if err != nil {
		t.Fatalf("NewSolver: %s", err)
	}
	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if sol.Kind != solution.Unsatisfiable {
		t.Errorf("Kind = %v, want Unsatisfiable", sol.Kind)
	}
}

func TestSolve_pureLiteralIsEliminated(t *testing.T) {
	// Variable 2 only ever occurs positively: pure-literal elimination must
	// fix it true without branching, and the formula remains satisfiable.
	sol := solveDIMACS(t, "p cnf 2 2\n1 2 0\n-1 2 0\n", Naive{})
	if sol.Kind != solution.Satisfiable {
		t.Fatalf("Kind = %v, want Satisfiable", sol.Kind)
	}
	if !sol.Assignment[1] {
		t.Errorf("Assignment[1] = %v, want true (pure positive literal)", sol.Assignment[1])
	}
}

func TestSolve_satisfiesOriginalFormula(t *testing.T) {
	dimacs := "p cnf 4 5\n1 2 -3 0\n-1 3 0\n2 -4 0\n3 4 0\n-2 -3 4 0\n"
	f, err := cnf.ParseDIMACS(strings.NewReader(dimacs))
	if err != nil {
		t.Fatalf("ParseDIMACS: %s", err)
	}
	s, err := NewSolver(f, Options{Brancher: Naive{}})
	if err != nil {
		t.Fatalf("NewSolver: %s", err)
	}
	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if sol.Kind != solution.Satisfiable {
		t.Fatalf("Kind = %v, want Satisfiable", sol.Kind)
	}
	if !satisfiesOriginal(f, sol.Assignment) {
		t.Errorf("assignment %v does not satisfy the original formula", sol.Assignment)
	}
}

func TestSolve_allBranchersAgreeUnsat(t *testing.T) {
	dimacs := "p cnf 2 4\n1 2 0\n-1 -2 0\n1 -2 0\n-1 2 0\n"
	branchers := map[string]Brancher{
		"naive":        Naive{},
		"dlis":         DLIS{},
		"dlcs":         DLCS{},
		"jeroslawWang": JeroslawWang{},
		"mom":          MOM{},
	}
	for name, b := range branchers {
		sol := solveDIMACS(t, dimacs, b)
		if sol.Kind != solution.Unsatisfiable {
			t.Errorf("%s: Kind = %v, want Unsatisfiable", name, sol.Kind)
		}
	}
}

func TestSolve_allBranchersAgreeSatAndSound(t *testing.T) {
	dimacs := "p cnf 4 5\n1 2 -3 0\n-1 3 0\n2 -4 0\n3 4 0\n-2 -3 4 0\n"
	f, err := cnf.ParseDIMACS(strings.NewReader(dimacs))
	if err != nil {
		t.Fatalf("ParseDIMACS: %s", err)
	}
	branchers := map[string]Brancher{
		"naive":        Naive{},
		"dlis":         DLIS{},
		"dlcs":         DLCS{},
		"jeroslawWang": JeroslawWang{},
		"mom":          MOM{},
	}
	for name, b := range branchers {
		s, err := NewSolver(f, Options{Brancher: b})
		if err != nil {
			t.Fatalf("%s: NewSolver: %s", name, err)
		}
		sol, err := s.Solve()
		if err != nil {
			t.Fatalf("%s: Solve: %s", name, err)
		}
		if sol.Kind != solution.Satisfiable {
			t.Errorf("%s: Kind = %v, want Satisfiable", name, sol.Kind)
			continue
		}
		if !satisfiesOriginal(f, sol.Assignment) {
			t.Errorf("%s: assignment %v does not satisfy the original formula", name, sol.Assignment)
		}
	}
}

func TestSolveInterruptible_cancelledBeforeStart(t *testing.T) {
	f, err := cnf.ParseDIMACS(strings.NewReader("p cnf 1 1\n1 0\n"))
	if err != nil {
		t.Fatalf("ParseDIMACS: %s", err)
	}
	s, err := NewSolver(f, Options{Brancher: Naive{}})
	if err != nil {
		t.Fatalf("NewSolver: %s", err)
	}
	var cancel atomic.Bool
	cancel.Store(true)
	sol, err := s.SolveInterruptible(&cancel)
	if err != nil {
		t.Fatalf("SolveInterruptible: %s", err)
	}
	if sol.Kind != solution.Unknown {
		t.Errorf("Kind = %v, want Unknown", sol.Kind)
	}
}

func TestSolve_timeoutReturnsUnknownOrFinished(t *testing.T) {
	f, err := cnf.ParseDIMACS(strings.NewReader("p cnf 1 1\n1 0\n"))
	if err != nil {
		t.Fatalf("ParseDIMACS: %s", err)
	}
	s, err := NewSolver(f, Options{Brancher: Naive{}, Timeout: time.Nanosecond})
	if err != nil {
		t.Fatalf("NewSolver: %s", err)
	}
	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if sol.Kind != solution.Unknown && sol.Kind != solution.Satisfiable {
		t.Errorf("Kind = %v, want Unknown or Satisfiable", sol.Kind)
	}
}

func TestNewSolver_rejectsBadConfig(t *testing.T) {
	f, err := cnf.ParseDIMACS(strings.NewReader("p cnf 1 1\n1 0\n"))
	if err != nil {
		t.Fatalf("ParseDIMACS: %s", err)
	}
	if _, err := NewSolver(f, Options{}); err == nil {
		t.Error("NewSolver with nil Brancher: want error, got none")
	}
	if _, err := NewSolver(f, Options{Brancher: Naive{}, Timeout: -1}); err == nil {
		t.Error("NewSolver with negative Timeout: want error, got none")
	}
}
