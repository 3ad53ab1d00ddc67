package dpll

import "github.com/satkit/cdcl/cnf"

// trailEntry records one assignment for undo-on-backtrack, together with
// the kind of assignment it was (spec.md §4.12: "Backtracking undoes
// counter changes in reverse trail order").
type trailEntry struct {
	lit  cnf.Literal
	kind assignKind
}

// VarStore owns the per-variable value and its static occurrence lists:
// posOcc[v] / negOcc[v] are the ids of clauses containing the positive /
// negative literal of v, built once from the input formula and never
// mutated afterwards (the counter scheme only ever changes Clause.activeLits
// and Clause.satisfiedBy, never the occurrence lists themselves).
type VarStore struct {
	values []VarValue
	posOcc [][]int
	negOcc [][]int
	trail  []trailEntry
}

func newVarStore(numVars int, clauses []*Clause) *VarStore {
	vs := &VarStore{
		values: make([]VarValue, numVars),
		posOcc: make([][]int, numVars),
		negOcc: make([][]int, numVars),
	}
	for ci, c := range clauses {
		for _, l := range c.literals {
			v := l.VarID()
			if l.IsPositive() {
				vs.posOcc[v] = append(vs.posOcc[v], ci)
			} else {
				vs.negOcc[v] = append(vs.negOcc[v], ci)
			}
		}
	}
	// A variable absent from every clause can never conflict or help; fix
	// it to false up front so it never blocks a brancher looking for a free
	// variable to decide on.
	for v := range vs.values {
		if len(vs.posOcc[v]) == 0 && len(vs.negOcc[v]) == 0 {
			vs.values[v] = Neg
		}
	}
	return vs
}

// NumVars returns the number of variables in the store.
func (vs *VarStore) NumVars() int {
	return len(vs.values)
}

// Value returns the current value of variable v.
func (vs *VarStore) Value(v int) VarValue {
	return vs.values[v]
}

// PosOccurrences returns the ids of clauses containing the positive literal
// of v. The slice must not be mutated by callers.
func (vs *VarStore) PosOccurrences(v int) []int {
	return vs.posOcc[v]
}

// NegOccurrences returns the ids of clauses containing the negative literal
// of v. The slice must not be mutated by callers.
func (vs *VarStore) NegOccurrences(v int) []int {
	return vs.negOcc[v]
}

// occurrencesFor returns the "satisfying" and "falsifying" occurrence lists
// for literal l: clauses that become satisfied when l is assigned true, and
// clauses that lose an active literal.
func (vs *VarStore) occurrencesFor(l cnf.Literal) (satOcc, negOcc []int) {
	v := l.VarID()
	if l.IsPositive() {
		return vs.posOcc[v], vs.negOcc[v]
	}
	return vs.negOcc[v], vs.posOcc[v]
}

func (vs *VarStore) push(lit cnf.Literal, kind assignKind) {
	vs.values[lit.VarID()] = valueOf(lit)
	vs.trail = append(vs.trail, trailEntry{lit: lit, kind: kind})
}

func (vs *VarStore) popTrail() (trailEntry, bool) {
	n := len(vs.trail)
	if n == 0 {
		return trailEntry{}, false
	}
	e := vs.trail[n-1]
	vs.trail = vs.trail[:n-1]
	vs.values[e.lit.VarID()] = Free
	return e, true
}

func (vs *VarStore) trailLen() int {
	return len(vs.trail)
}
