package preprocess

import (
	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// List composes a sequence of preprocessors: Preprocess folds left to
// right, each stage consuming the previous stage's output; Restore folds
// right to left, mirroring the preprocessing order.
type List []Preprocessor

var _ Preprocessor = List(nil)

func (l List) Preprocess(f *cnf.CNF) (*cnf.CNF, error) {
	cur := f
	for _, p := range l {
		next, err := p.Preprocess(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (l List) Restore(s solution.Solution) solution.Solution {
	for i := len(l) - 1; i >= 0; i-- {
		s = l[i].Restore(s)
	}
	return s
}
