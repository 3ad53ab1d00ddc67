package dpll

import "github.com/satkit/cdcl/cnf"

// Clause is a DPLL clause: a literal list plus the two counters the
// counter-based propagation scheme needs (spec.md §4.12). ActiveLits counts
// literals not yet falsified; satisfiedBy holds the id of the variable that
// first satisfied the clause, or -1 if it is not currently satisfied.
type Clause struct {
	literals    []cnf.Literal
	activeLits  int
	satisfiedBy int
}

func newClause(literals []cnf.Literal) *Clause {
	return &Clause{
		literals:    literals,
		activeLits:  len(literals),
		satisfiedBy: -1,
	}
}

// Literals returns the clause's literals, in input order.
func (c *Clause) Literals() []cnf.Literal {
	return c.literals
}

// ActiveLits returns the number of literals not yet falsified.
func (c *Clause) ActiveLits() int {
	return c.activeLits
}

// IsSatisfied reports whether the clause is currently satisfied by some
// assigned literal.
func (c *Clause) IsSatisfied() bool {
	return c.satisfiedBy >= 0
}
