package dpll

import "github.com/satkit/cdcl/cnf"

// countActive returns how many of the clauses in ids are not yet satisfied.
func countActive(vars *VarStore, clauses []*Clause, ids []int) int {
	n := 0
	for _, id := range ids {
		if !clauses[id].IsSatisfied() {
			n++
		}
	}
	return n
}

// DLIS (dynamic largest individual sum) branches on the literal appearing
// in the most currently-unsatisfied clauses, one polarity at a time.
type DLIS struct{}

var _ Brancher = DLIS{}

func (DLIS) Pick(vars *VarStore, clauses []*Clause) (cnf.Literal, bool) {
	best := -1
	var bestLit cnf.Literal
	found := false
	for v := 0; v < vars.NumVars(); v++ {
		if vars.Value(v) != Free {
			continue
		}
		pos := countActive(vars, clauses, vars.PosOccurrences(v))
		neg := countActive(vars, clauses, vars.NegOccurrences(v))
		sign, score := true, pos
		if neg > pos {
			sign, score = false, neg
		}
		if score > best {
			best = score
			bestLit = literalOf(v, sign)
			found = true
		}
	}
	return bestLit, found
}

// DLCS (dynamic largest combined sum) branches on the variable with the
// most currently-unsatisfied occurrences summed over both polarities,
// taking the majority polarity.
type DLCS struct{}

var _ Brancher = DLCS{}

func (DLCS) Pick(vars *VarStore, clauses []*Clause) (cnf.Literal, bool) {
	best := -1
	var bestLit cnf.Literal
	found := false
	for v := 0; v < vars.NumVars(); v++ {
		if vars.Value(v) != Free {
			continue
		}
		pos := countActive(vars, clauses, vars.PosOccurrences(v))
		neg := countActive(vars, clauses, vars.NegOccurrences(v))
		score := pos + neg
		if score > best {
			best = score
			bestLit = literalOf(v, pos > neg)
			found = true
		}
	}
	return bestLit, found
}

// JeroslawWang weighs each occurrence of a literal in an unsatisfied clause
// by 2^-|clause|, favoring literals that appear in many short clauses.
type JeroslawWang struct{}

var _ Brancher = JeroslawWang{}

func jwMeasure(width int) float64 {
	if width <= 0 {
		return 1
	}
	m := 1.0
	for i := 0; i < width; i++ {
		m /= 2
	}
	return m
}

func jwScore(clauses []*Clause, ids []int, weights []float64) float64 {
	sum := 0.0
	for _, id := range ids {
		sum += weights[id]
	}
	return sum
}

func (JeroslawWang) Pick(vars *VarStore, clauses []*Clause) (cnf.Literal, bool) {
	weights := make([]float64, len(clauses))
	for i, c := range clauses {
		if !c.IsSatisfied() {
			weights[i] = jwMeasure(c.ActiveLits())
		}
	}

	best := -1.0
	var bestLit cnf.Literal
	found := false
	for v := 0; v < vars.NumVars(); v++ {
		if vars.Value(v) != Free {
			continue
		}
		pos := jwScore(clauses, vars.PosOccurrences(v), weights)
		neg := jwScore(clauses, vars.NegOccurrences(v), weights)
		sign, score := true, pos
		if neg > pos {
			sign, score = false, neg
		}
		if !found || score > best {
			best = score
			bestLit = literalOf(v, sign)
			found = true
		}
	}
	return bestLit, found
}

// MOM (maximum occurrences in clauses of minimum size) restricts attention
// to the currently-unsatisfied clauses of smallest active width (at least
// 2) and scores each free variable by (h+ + h-)*K + h+*h-, where h+/h- are
// its occurrence counts among those minimal clauses. Spec.md §9 notes the
// original source's multiplier reads as a bitwise XOR of the clause count
// with itself rather than a square; this implementation uses the clearly
// intended K = (number of clauses)^2.
type MOM struct{}

var _ Brancher = MOM{}

func (MOM) Pick(vars *VarStore, clauses []*Clause) (cnf.Literal, bool) {
	minWidth := -1
	for _, c := range clauses {
		if c.IsSatisfied() {
			continue
		}
		w := c.ActiveLits()
		if minWidth < 0 || w < minWidth {
			minWidth = w
		}
	}
	if minWidth < 0 {
		return 0, false
	}
	if minWidth < 2 {
		minWidth = 2
	}

	k := float64(len(clauses)) * float64(len(clauses))

	best := -1.0
	var bestVar int
	found := false
	for v := 0; v < vars.NumVars(); v++ {
		if vars.Value(v) != Free {
			continue
		}
		hp := countAtWidth(clauses, vars.PosOccurrences(v), minWidth)
		hn := countAtWidth(clauses, vars.NegOccurrences(v), minWidth)
		score := float64(hp+hn)*k + float64(hp*hn)
		if !found || score > best {
			best = score
			bestVar = v
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return cnf.PositiveLiteral(bestVar), true
}

func countAtWidth(clauses []*Clause, ids []int, width int) int {
	n := 0
	for _, id := range ids {
		c := clauses[id]
		if !c.IsSatisfied() && c.ActiveLits() == width {
			n++
		}
	}
	return n
}

func literalOf(v int, positive bool) cnf.Literal {
	if positive {
		return cnf.PositiveLiteral(v)
	}
	return cnf.NegativeLiteral(v)
}
