package cdcl

import "github.com/satkit/cdcl/cnf"

// ClauseID identifies a clause in a ClauseDB. Ids in [0, LenOriginal) denote
// original (input) clauses and are stable for the whole run. Ids beyond that
// denote learned clauses in a slot arena: a learned clause keeps its id for
// its entire life but the id may be reused by a later clause once freed.
type ClauseID int

// clause is the database's internal representation of a clause. Watched
// literals always sit at positions 0 and 1 of literals; a clause with a
// single literal watches that literal at both positions.
type clause struct {
	literals []cnf.Literal
	learned  bool
	activity float64
	lbd      int
	protect  bool
	deleted  bool
}

func newClause(literals []cnf.Literal, learned bool) *clause {
	lits := make([]cnf.Literal, len(literals))
	copy(lits, literals)
	return &clause{literals: lits, learned: learned}
}

// watched returns the clause's two watched literals. For a unit clause both
// watches point at the same (sole) literal.
func (c *clause) watched() (cnf.Literal, cnf.Literal) {
	if len(c.literals) == 1 {
		return c.literals[0], c.literals[0]
	}
	return c.literals[0], c.literals[1]
}
