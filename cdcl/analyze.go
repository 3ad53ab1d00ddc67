package cdcl

import "github.com/satkit/cdcl/cnf"

// Analyzer implements RelSAT-style first-UIP conflict analysis (spec
// component C6): a walk of the implication graph backward along the trail,
// restricted to the current decision level, that produces an asserting learned clause
// and the level to backjump to. The implication graph is never
// materialized: the walk follows each assigned variable's Reason field.
type Analyzer struct {
	db   *ClauseDB
	vars *VarStore

	seen []bool
	buf  []cnf.Literal // scratch buffer returned by explain
	out  []cnf.Literal // scratch buffer accumulating the learned clause
}

// NewAnalyzer returns an analyzer over the given database and variable
// store.
func NewAnalyzer(db *ClauseDB, vars *VarStore) *Analyzer {
	return &Analyzer{db: db, vars: vars}
}

func (a *Analyzer) ensureSeenCapacity() {
	if n := a.vars.NumVars(); len(a.seen) != n {
		a.seen = make([]bool, n)
	}
	for i := range a.seen {
		a.seen[i] = false
	}
}

// explain returns the antecedent literals of reasonClause, negated, ready to
// be folded into the learned clause or walked further. When l is the
// sentinel literal -1, reasonClause is the conflict clause itself and every
// one of its literals is an antecedent. Otherwise reasonClause is the clause
// that forced l, whose literals[0] is l itself: only literals[1:] are
// antecedents.
func (a *Analyzer) explain(reasonClause ClauseID, l cnf.Literal) []cnf.Literal {
	a.buf = a.buf[:0]
	lits := a.db.Literals(reasonClause)
	start := 0
	if l != -1 {
		start = 1
	}
	for _, q := range lits[start:] {
		a.buf = append(a.buf, q.Opposite())
	}
	return a.buf
}

// Analyze walks the implication graph backward from the conflict clause and
// returns the learned clause (asserting literal first) and the backjump
// level. ok is false when the current depth is zero, meaning the conflict
// is unconditional and the formula is unsatisfiable.
func (a *Analyzer) Analyze(conflict ClauseID) (learned []cnf.Literal, backjumpLevel int, ok bool) {
	depth := a.vars.DecisionLevel()
	if depth == 0 {
		return nil, 0, false
	}
	a.ensureSeenCapacity()

	a.out = append(a.out[:0], -1) // placeholder for the asserting literal
	nImplicationPoints := 0
	trail := a.vars.Trail()
	nextLiteral := len(trail) - 1

	confl := conflict
	l := cnf.Literal(-1)

	for {
		for _, q := range a.explain(confl, l) {
			v := q.VarID()
			if a.seen[v] {
				continue
			}
			a.seen[v] = true

			if a.vars.Level(v) == depth {
				nImplicationPoints++
				continue
			}

			a.out = append(a.out, q.Opposite())
			if lvl := a.vars.Level(v); lvl > backjumpLevel {
				backjumpLevel = lvl
			}
		}

		for {
			if nextLiteral < 0 {
				return nil, 0, false
			}
			l = trail[nextLiteral]
			nextLiteral--
			if a.seen[l.VarID()] {
				break
			}
		}
		_, confl = a.vars.ReasonOf(l.VarID())

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	a.out[0] = l.Opposite()
	learned = make([]cnf.Literal, len(a.out))
	copy(learned, a.out)
	return learned, backjumpLevel, true
}
