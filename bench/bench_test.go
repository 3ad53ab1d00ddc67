package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/satkit/cdcl/cdcl"
	"github.com/satkit/cdcl/cdcl/branch"
	"github.com/satkit/cdcl/cdcl/deletion"
	"github.com/satkit/cdcl/cdcl/restart"
	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

func writeInstance(t *testing.T, dir, name, dimacs string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(dimacs), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
}

func TestLoadDir_parsesOnlyCNFFiles(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "sat.cnf", "p cnf 1 1\n1 0\n")
	writeInstance(t, dir, "unsat.cnf", "p cnf 1 2\n1 0\n-1 0\n")
	writeInstance(t, dir, "notes.txt", "ignored")

	instances, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %s", err)
	}
	if len(instances) != 2 {
		t.Fatalf("LoadDir: got %d instances, want 2", len(instances))
	}
	if _, ok := instances["sat.cnf"]; !ok {
		t.Error("sat.cnf missing from loaded instances")
	}
	if _, ok := instances["notes.txt"]; ok {
		t.Error("notes.txt should have been skipped")
	}
}

func TestRun_recordsOutcomePerInstance(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "sat.cnf", "p cnf 1 1\n1 0\n")
	writeInstance(t, dir, "unsat.cnf", "p cnf 1 2\n1 0\n-1 0\n")

	instances, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %s", err)
	}

	newSolver := NewCDCLSolverFunc(func(f *cnf.CNF) cdcl.Options {
		return cdcl.Options{
			Brancher:     branch.Naive{},
			Restart:      restart.Never{},
			Deletion:     deletion.NoDeletion{},
			MaxConflicts: -1,
		}
	})

	results := Run(instances, newSolver, time.Second)
	if len(results) != 2 {
		t.Fatalf("Run: got %d results, want 2", len(results))
	}

	byName := make(map[string]Result, len(results))
	for _, r := range results {
		byName[r.Instance] = r
	}
	if got := byName["sat.cnf"].Outcome; got != solution.Satisfiable {
		t.Errorf("sat.cnf: Outcome = %v, want Satisfiable", got)
	}
	if got := byName["unsat.cnf"].Outcome; got != solution.Unsatisfiable {
		t.Errorf("unsat.cnf: Outcome = %v, want Unsatisfiable", got)
	}
}

func TestRun_zeroBudgetYieldsUnknownOrSatisfiable(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "sat.cnf", "p cnf 1 1\n1 0\n")

	instances, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %s", err)
	}

	newSolver := NewCDCLSolverFunc(func(f *cnf.CNF) cdcl.Options {
		return cdcl.Options{
			Brancher:     branch.Naive{},
			Restart:      restart.Never{},
			Deletion:     deletion.NoDeletion{},
			MaxConflicts: -1,
		}
	})

	results := Run(instances, newSolver, 0)
	if len(results) != 1 {
		t.Fatalf("Run: got %d results, want 1", len(results))
	}
	if results[0].Outcome != solution.Unknown && results[0].Outcome != solution.Satisfiable {
		t.Errorf("Outcome = %v, want Unknown or Satisfiable with a zero budget", results[0].Outcome)
	}
}

func TestCountSolvedWithin(t *testing.T) {
	results := []Result{
		{Instance: "a", Outcome: solution.Satisfiable, Elapsed: 10 * time.Millisecond},
		{Instance: "b", Outcome: solution.Unsatisfiable, Elapsed: 2 * time.Second},
		{Instance: "c", Outcome: solution.Unknown, Elapsed: time.Millisecond},
	}
	if got := CountSolvedWithin(results, time.Second); got != 1 {
		t.Errorf("CountSolvedWithin = %d, want 1", got)
	}
}
