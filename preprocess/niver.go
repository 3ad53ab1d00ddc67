package preprocess

import (
	"sort"
	"strconv"
	"strings"

	"github.com/satkit/cdcl/cnf"
	"github.com/satkit/cdcl/solution"
)

// eliminationRecord remembers, for one eliminated variable, the original
// clauses that mentioned it so Restore can reconstruct its value.
type eliminationRecord struct {
	varID   int
	removed []cnf.Clause
}

// NiVER eliminates variables by resolution (non-increasing variable
// elimination): while some variable occurs with both polarities and the set
// of non-tautological binary resolvents over it is strictly smaller than its
// occurrence count, every clause mentioning the variable is replaced by
// those resolvents. Restore walks the elimination stack in reverse,
// reconstructing each eliminated variable's value by testing true then
// false against the clauses it was removed from.
type NiVER struct {
	stack []eliminationRecord
}

// NewNiVER returns an empty NiVER preprocessor, ready for one Preprocess
// call.
func NewNiVER() *NiVER {
	return &NiVER{}
}

var _ Preprocessor = (*NiVER)(nil)

func (n *NiVER) Preprocess(f *cnf.CNF) (*cnf.CNF, error) {
	out := f.Clone()
	for {
		eliminated := false
		for x := 0; x < out.NumVars; x++ {
			if n.tryEliminate(out, x) {
				eliminated = true
			}
		}
		if !eliminated {
			break
		}
	}
	return out, nil
}

func (n *NiVER) tryEliminate(f *cnf.CNF, x int) bool {
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
	if len(posIdx) == 0 || len(negIdx) == 0 {
		return false
	}

	resolvents := map[string]cnf.Clause{}
	for _, ci := range posIdx {
		for _, di := range negIdx {
			r := resolve(f.Clauses[ci], pos, f.Clauses[di], neg)
			if r == nil {
				continue // tautology
			}
			resolvents[clauseKey(r)] = r
		}
	}

	occurrences := len(posIdx) + len(negIdx)
	if len(resolvents) >= occurrences {
		return false
	}

	removed := make([]cnf.Clause, 0, occurrences)
	removedSet := make(map[int]bool, occurrences)
	for _, i := range posIdx {
		removed = append(removed, f.Clauses[i])
		removedSet[i] = true
	}
	for _, i := range negIdx {
		removed = append(removed, f.Clauses[i])
		removedSet[i] = true
	}

	kept := make([]cnf.Clause, 0, len(f.Clauses)-occurrences+len(resolvents))
	for i, c := range f.Clauses {
		if !removedSet[i] {
			kept = append(kept, c)
		}
	}
	for _, r := range resolvents {
		kept = append(kept, r)
	}
	f.Clauses = kept

	n.stack = append(n.stack, eliminationRecord{varID: x, removed: removed})
	return true
}

// resolve returns the binary resolvent of c (on lit) and d (on excludeD),
// deduplicated, or nil if it is a tautology.
func resolve(c cnf.Clause, lit cnf.Literal, d cnf.Clause, excludeD cnf.Literal) cnf.Clause {
	merged := make([]cnf.Literal, 0, len(c)+len(d))
	for _, l := range c {
		if l != lit {
			merged = append(merged, l)
		}
	}
	for _, l := range d {
		if l != excludeD {
			merged = append(merged, l)
		}
	}
	r := cnf.NewClause(merged)
	if r.IsTautology() {
		return nil
	}
	return r
}

func clauseKey(c cnf.Clause) string {
	ints := make([]int, len(c))
	for i, l := range c {
		ints[i] = int(l)
	}
	sort.Ints(ints)
	parts := make([]string, len(ints))
	for i, v := range ints {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (n *NiVER) Restore(s solution.Solution) solution.Solution {
	if s.Kind != solution.Satisfiable {
		return s
	}
	assignment := make([]bool, len(s.Assignment))
	copy(assignment, s.Assignment)

	for i := len(n.stack) - 1; i >= 0; i-- {
		rec := n.stack[i]
		if satisfiesAllWithOverride(rec.removed, assignment, rec.varID, true) {
			assignment[rec.varID] = true
			continue
		}
		if satisfiesAllWithOverride(rec.removed, assignment, rec.varID, false) {
			assignment[rec.varID] = false
			continue
		}
		return solution.Unsat()
	}
	return solution.Sat(assignment)
}

func satisfiesAllWithOverride(clauses []cnf.Clause, assignment []bool, v int, val bool) bool {
	for _, c := range clauses {
		if !evalClauseWithOverride(c, assignment, v, val) {
			return false
		}
	}
	return true
}
