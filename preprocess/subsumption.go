package preprocess

import (
	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// SelfSubsumption runs self-subsuming resolution to a fixed point: for
// every variable x and every pair of clauses C (containing x) and D
// (containing ¬x), if C\{x} is a subset of D\{¬x}, ¬x is redundant in D and
// is dropped from it (symmetrically for x in C). A 64-bit occurrence
// signature per remainder set rules out most non-subset pairs before the
// exact membership check runs. No variable is removed, so Restore is the
// identity.
type SelfSubsumption struct{}

var _ Preprocessor = SelfSubsumption{}

func (SelfSubsumption) Preprocess(f *cnf.CNF) (*cnf.CNF, error) {
	out := f.Clone()
	for {
		if !selfSubsumePass(out) {
			break
		}
	}
	return out, nil
}

func (SelfSubsumption) Restore(s solution.Solution) solution.Solution {
	return s
}

func signature(c cnf.Clause, exclude cnf.Literal) uint64 {
	var sig uint64
	for _, l := range c {
		if l == exclude {
			continue
		}
		sig |= 1 << (uint(l.VarID()) % 64)
	}
	return sig
}

func containsLiteral(c cnf.Clause, l cnf.Literal) bool {
	for _, q := range c {
		if q == l {
			return true
		}
	}
	return false
}

// isRemainderSubset reports whether c\{exclude} ⊆ d\{excludeD}.
func isRemainderSubset(c cnf.Clause, exclude cnf.Literal, d cnf.Clause, excludeD cnf.Literal) bool {
	sigC := signature(c, exclude)
	sigD := signature(d, excludeD)
	if sigC&^sigD != 0 {
		return false // fast reject: some bit in c's remainder is absent from d's
	}
	for _, l := range c {
		if l == exclude {
			continue
		}
		if l == excludeD {
			return false
		}
		if !containsLiteral(d, l) {
			return false
		}
	}
	return true
}

// dropLiteral returns a clause equal to c with l removed, or c itself
// (same backing identity irrelevant, equal contents) if l was absent.
func dropLiteral(c cnf.Clause, l cnf.Literal) cnf.Clause {
	out := make(cnf.Clause, 0, len(c))
	for _, q := range c {
		if q != l {
			out = append(out, q)
		}
	}
	return out
}

func selfSubsumePass(f *cnf.CNF) bool {
	changed := false

	for x := 0; x < f.NumVars; x++ {
		pos := cnf.PositiveLiteral(x)
		neg := cnf.NegativeLiteral(x)

		var posIdx, negIdx []int
		for i, c := range f.Clauses {
			if containsLiteral(c, pos) {
				posIdx = append(posIdx, i)
			}
			if containsLiteral(c, neg) {
				negIdx = append(negIdx, i)
			}
		}

		for _, ci := range posIdx {
			for _, di := range negIdx {
				C := f.Clauses[ci]
				D := f.Clauses[di]

				if isRemainderSubset(C, pos, D, neg) {
					newD := dropLiteral(D, neg)
					if len(newD) != len(D) {
						f.Clauses[di] = newD
						changed = true
						D = newD
					}
				}
				if isRemainderSubset(D, neg, C, pos) {
					newC := dropLiteral(C, pos)
					if len(newC) != len(C) {
						f.Clauses[ci] = newC
						changed = true
					}
				}
			}
		}
	}

	return changed
}
