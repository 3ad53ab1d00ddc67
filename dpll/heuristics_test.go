package dpll

import (
	"testing"

	"github.com/satkit/cdcl/cnf"
)

func newTestClauses(lits [][]cnf.Literal) ([]*Clause, *VarStore) {
	clauses := make([]*Clause, len(lits))
	numVars := 0
	for i, ls := range lits {
		clauses[i] = newClause(append([]cnf.Literal(nil), ls...))
		for _, l := range ls {
			if v := l.VarID() + 1; v > numVars {
				numVars = v
			}
		}
	}
	return clauses, newVarStore(numVars, clauses)
}

func TestDLIS_picksMostFrequentPolarity(t *testing.T) {
	// Variable 0 appears positively in two clauses, variable 1 in one.
	clauses, vars := newTestClauses([][]cnf.Literal{
		{cnf.PositiveLiteral(0), cnf.PositiveLiteral(1)},
		{cnf.PositiveLiteral(0)},
	})
	lit, ok := DLIS{}.Pick(vars, clauses)
	if !ok {
		t.Fatal("Pick: want ok=true")
	}
	if lit.VarID() != 0 || !lit.IsPositive() {
		t.Errorf("Pick = %v, want positive literal of variable 0", lit)
	}
}

func TestDLCS_combinesBothPolarities(t *testing.T) {
	// Variable 0: one positive, one negative occurrence (combined 2).
	// Variable 1: one positive occurrence only (combined 1).
	clauses, vars := newTestClauses([][]cnf.Literal{
		{cnf.PositiveLiteral(0), cnf.PositiveLiteral(1)},
		{cnf.NegativeLiteral(0)},
	})
	lit, ok := DLCS{}.Pick(vars, clauses)
	if !ok {
		t.Fatal("Pick: want ok=true")
	}
	if lit.VarID() != 0 {
		t.Errorf("Pick = %v, want a literal of variable 0", lit)
	}
}

func TestJeroslawWang_favorsShorterClauses(t *testing.T) {
	// Variable 0 occurs in a unit clause (weight 1/2); variable 1 only in a
	// 3-literal clause (weight 1/8). JW must prefer variable 0.
	clauses, vars := newTestClauses([][]cnf.Literal{
		{cnf.PositiveLiteral(0)},
		{cnf.PositiveLiteral(1), cnf.PositiveLiteral(2), cnf.PositiveLiteral(3)},
	})
	lit, ok := JeroslawWang{}.Pick(vars, clauses)
	if !ok {
		t.Fatal("Pick: want ok=true")
	}
	if lit.VarID() != 0 {
		t.Errorf("Pick = %v, want a literal of variable 0", lit)
	}
}

func TestMOM_restrictsToMinimumWidthClauses(t *testing.T) {
	// Variable 0 occurs only in the 2-literal clause (minimum active width);
	// variable 2 occurs only in the 3-literal clause. MOM must prefer
	// variable 0 or 1, which both sit in the minimal-width clause.
	clauses, vars := newTestClauses([][]cnf.Literal{
		{cnf.PositiveLiteral(0), cnf.PositiveLiteral(1)},
		{cnf.PositiveLiteral(2), cnf.PositiveLiteral(3), cnf.PositiveLiteral(4)},
	})
	lit, ok := MOM{}.Pick(vars, clauses)
	if !ok {
		t.Fatal("Pick: want ok=true")
	}
	if lit.VarID() != 0 && lit.VarID() != 1 {
		t.Errorf("Pick = %v, want a variable from the minimal-width clause", lit)
	}
}

func TestBranchers_skipAssignedVariables(t *testing.T) {
	clauses, vars := newTestClauses([][]cnf.Literal{
		{cnf.PositiveLiteral(0), cnf.PositiveLiteral(1)},
	})
	vars.push(cnf.PositiveLiteral(0), kindBranching)

	for name, b := range map[string]Brancher{
		"naive":        Naive{},
		"dlis":         DLIS{},
		"dlcs":         DLCS{},
		"jeroslawWang": JeroslawWang{},
		"mom":          MOM{},
	} {
		lit, ok := b.Pick(vars, clauses)
		if !ok {
			t.Errorf("%s: Pick: want ok=true (variable 1 is still free)", name)
			continue
		}
		if lit.VarID() != 1 {
			t.Errorf("%s: Pick = %v, want a literal of variable 1", name, lit)
		}
	}
}

func TestBranchers_noFreeVariablesReturnsFalse(t *testing.T) {
	clauses, vars := newTestClauses([][]cnf.Literal{
		{cnf.PositiveLiteral(0)},
	})
	vars.push(cnf.PositiveLiteral(0), kindBranching)

	for name, b := range map[string]Brancher{
		"naive":        Naive{},
		"dlis":         DLIS{},
		"dlcs":         DLCS{},
		"jeroslawWang": JeroslawWang{},
		"mom":          MOM{},
	} {
		if _, ok := b.Pick(vars, clauses); ok {
			t.Errorf("%s: Pick: want ok=false with no free variables", name)
		}
	}
}
