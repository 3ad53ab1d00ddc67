package dpll

import "github.com/satkit/cdcl/cnf"

// unitQueue is the DPLL engine's propagation work list: literals discovered
// unit (spec.md §4.12) and not yet applied. It dedupes same-sign duplicates
// (a clause going unit twice for the same literal is common once several
// clauses share falsified literals) but deliberately allows both polarities
// of the same variable to be queued at once: the contradiction they
// represent is caught when the first one is applied (the clause needing the
// other polarity necessarily loses its last active literal then), exactly
// as the reference DPLL this engine is modeled on relies on.
type unitQueue struct {
	lits   []cnf.Literal
	queued map[cnf.Literal]struct{}
}

func newUnitQueue() *unitQueue {
	return &unitQueue{queued: make(map[cnf.Literal]struct{})}
}

func (q *unitQueue) push(l cnf.Literal) {
	if _, ok := q.queued[l]; ok {
		return
	}
	q.queued[l] = struct{}{}
	q.lits = append(q.lits, l)
}

func (q *unitQueue) pop() (cnf.Literal, bool) {
	if len(q.lits) == 0 {
		return 0, false
	}
	l := q.lits[0]
	q.lits = q.lits[1:]
	delete(q.queued, l)
	return l, true
}

func (q *unitQueue) clear() {
	q.lits = q.lits[:0]
	for k := range q.queued {
		delete(q.queued, k)
	}
}
