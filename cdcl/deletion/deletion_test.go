package deletion

import (
	"testing"

	"github.com/satkit/cdcl/cdcl"
	"github.com/satkit/cdcl/cnf"
)

func watchedPairClause(size int) []cnf.Literal {
	lits := make([]cnf.Literal, size)
	lits[0] = cnf.PositiveLiteral(0)
	lits[1] = cnf.NegativeLiteral(1)
	for i := 2; i < size; i++ {
		lits[i] = cnf.PositiveLiteral(i + 1) // distinct, never assigned, padding literals
	}
	return lits
}

func newTestDB(numVars int, sizes []int) (*cdcl.ClauseDB, *cdcl.VarStore, []cdcl.ClauseID) {
	db := cdcl.NewClauseDB(nil)
	vars := cdcl.NewVarStore(numVars)
	ids := make([]cdcl.ClauseID, len(sizes))
	for i, size := range sizes {
		ids[i] = db.PushLearned(watchedPairClause(size))
	}
	return db, vars, ids
}

func TestNoDeletion(t *testing.T) {
	db, vars, _ := newTestDB(10, []int{50, 50, 50})
	var nd NoDeletion
	nd.OnConflict(0, true)
	if got := nd.SelectForDeletion(db, vars); got != nil {
		t.Errorf("SelectForDeletion() = %v, want nil", got)
	}
}

func TestBerkMin_youngOversizedLowActivityDeleted(t *testing.T) {
	sizes := make([]int, 16) // pct = 16/16 = 1: only clause 0 is young
	sizes[0] = 60
	for i := 1; i < 16; i++ {
		sizes[i] = 2
	}
	db, vars, ids := newTestDB(200, sizes)

	b := NewBerkMin()
	got := b.SelectForDeletion(db, vars)
	if len(got) != 1 || got[0] != ids[0] {
		t.Errorf("SelectForDeletion() = %v, want [%v]", got, ids[0])
	}
}

func TestBerkMin_youngAtSizeLimitSurvives(t *testing.T) {
	sizes := make([]int, 16)
	sizes[0] = 42 // exactly at the limit: "more than 42" must not match
	for i := 1; i < 16; i++ {
		sizes[i] = 2
	}
	db, vars, _ := newTestDB(200, sizes)

	b := NewBerkMin()
	if got := b.SelectForDeletion(db, vars); len(got) != 0 {
		t.Errorf("SelectForDeletion() = %v, want none deleted", got)
	}
}

func TestBerkMin_oldOversizedLowActivityDeleted(t *testing.T) {
	sizes := []int{10, 2, 2, 2, 2} // pct = 5/16 = 0: every clause is "old"
	db, vars, ids := newTestDB(200, sizes)

	b := NewBerkMin()
	got := b.SelectForDeletion(db, vars)
	if len(got) != 1 || got[0] != ids[0] {
		t.Errorf("SelectForDeletion() = %v, want [%v]", got, ids[0])
	}
}

func TestBerkMin_oldHighActivitySurvives(t *testing.T) {
	sizes := []int{10, 2, 2, 2, 2}
	db, vars, ids := newTestDB(200, sizes)

	b := NewBerkMin()
	for i := 0; i < 60; i++ {
		b.OnConflict(ids[0], true)
	}
	if got := b.SelectForDeletion(db, vars); len(got) != 0 {
		t.Errorf("SelectForDeletion() = %v, want none deleted, activity should be at threshold", got)
	}
}

func TestBerkMin_assignedWatchNeverDeleted(t *testing.T) {
	sizes := []int{10, 2, 2, 2, 2}
	db, vars, _ := newTestDB(200, sizes)
	prop := cdcl.NewPropagator(db, vars)
	prop.Decide(cnf.PositiveLiteral(0)) // assigns the watched-pair variable

	b := NewBerkMin()
	if got := b.SelectForDeletion(db, vars); len(got) != 0 {
		t.Errorf("SelectForDeletion() = %v, want none: watch is assigned", got)
	}
}

func TestBerkMin_ageThresholdAdvancesPerCall(t *testing.T) {
	db, vars, _ := newTestDB(10, nil)
	b := NewBerkMin()
	for i := 0; i < 5; i++ {
		b.SelectForDeletion(db, vars)
	}
	if b.ageThreshold != 65 {
		t.Errorf("ageThreshold = %d, want 65 after 5 calls starting at 60", b.ageThreshold)
	}
}
