package preprocess

import (
	"testing"

	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// countingPreprocessor records the order it is invoked in, for checking
// List's fold direction.
type countingPreprocessor struct {
	name  string
	order *[]string
}

func (c countingPreprocessor) Preprocess(f *cnf.CNF) (*cnf.CNF, error) {
	*c.order = append(*c.order, "pre:"+c.name)
	return f, nil
}

func (c countingPreprocessor) Restore(s solution.Solution) solution.Solution {
	*c.order = append(*c.order, "post:"+c.name)
	return s
}

func TestList_foldsPreprocessLeftRestoreRight(t *testing.T) {
	var order []string
	l := List{
		countingPreprocessor{"a", &order},
		countingPreprocessor{"b", &order},
		countingPreprocessor{"c", &order},
	}

	if _, err := l.Preprocess(cnf.New(1)); err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	l.Restore(solution.Sat([]bool{true}))

	want := []string{"pre:a", "pre:b", "pre:c", "post:c", "post:b", "post:a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i, v := range want {
		if order[i] != v {
			t.Errorf("order[%d] = %q, want %q", i, order[i], v)
		}
	}
}

func TestList_composesRemoveTautologyAndSelfSubsumption(t *testing.T) {
	f := cnf.New(2)
	f.AddClause([]cnf.Literal{cnf.PositiveLiteral(0), cnf.NegativeLiteral(0)}) // tautology
	f.AddClause([]cnf.Literal{cnf.PositiveLiteral(0)})
	f.AddClause([]cnf.Literal{cnf.NegativeLiteral(0), cnf.PositiveLiteral(1)})

	l := List{RemoveTautology{}, SelfSubsumption{}}
	out, err := l.Preprocess(f)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	if len(out.Clauses) != 2 {
		t.Fatalf("Preprocess() = %v, want 2 clauses after tautology removal", out.Clauses)
	}
	for _, c := range out.Clauses {
		if hasLiteral(c, cnf.NegativeLiteral(0)) {
			t.Errorf("clause %v still has the redundant literal -x0", c)
		}
	}
}
