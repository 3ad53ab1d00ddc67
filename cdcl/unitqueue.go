package cdcl

import "github.com/satkit/cdcl/cnf"

// pendingFact is a unit fact waiting to be applied to the variable store.
type pendingFact struct {
	sign   cnf.LBool
	kind   ReasonKind
	reason ClauseID
}

// unitQueue is the propagation engine's work queue: variables that have been
// forced to a value by unit propagation but not yet assigned and scanned.
// It preserves insertion order (FIFO), supports O(1) membership testing, and
// detects contradictions: re-enqueuing a variable already pending with the
// opposite sign signals an immediate conflict rather than silently
// overwriting the pending fact.
type unitQueue struct {
	order   []int // variable ids, in insertion (= propagation) order
	pending map[int]pendingFact
}

func newUnitQueue() *unitQueue {
	return &unitQueue{pending: make(map[int]pendingFact)}
}

// conflictFact is returned by Push when the enqueued fact contradicts one
// already pending for the same variable: it carries the already-pending
// fact, which the caller records as the second assignment before reporting
// the conflict.
type conflictFact struct {
	varID int
	fact  pendingFact
}

// Push enqueues variable v to be assigned to sign for the given reason. If v
// is already pending with the same sign, this is a no-op. If v is already
// pending with the opposite sign, Push returns the previously pending fact
// and ok=true so the caller can treat it as a conflict.
func (q *unitQueue) Push(v int, sign cnf.LBool, kind ReasonKind, reason ClauseID) (conflictFact, bool) {
	if existing, ok := q.pending[v]; ok {
		if existing.sign == sign {
			return conflictFact{}, false
		}
		return conflictFact{varID: v, fact: existing}, true
	}
	q.order = append(q.order, v)
	q.pending[v] = pendingFact{sign: sign, kind: kind, reason: reason}
	return conflictFact{}, false
}

// Len returns the number of facts currently queued.
func (q *unitQueue) Len() int {
	return len(q.order)
}

// Pop removes and returns the oldest pending fact.
func (q *unitQueue) Pop() (int, pendingFact) {
	v := q.order[0]
	q.order = q.order[1:]
	fact := q.pending[v]
	delete(q.pending, v)
	return v, fact
}

// Clear empties the queue.
func (q *unitQueue) Clear() {
	q.order = q.order[:0]
	for k := range q.pending {
		delete(q.pending, k)
	}
}
