package branch

import (
	"github.com/rhartert/yagh"
	"github.com/satkit/cdcl/cdcl"
	"github.com/satkit/cdcl/cnf"
)

// DefaultResortPeriod is the number of branchings between VSIDS rescale
// passes when none is given to NewVSIDS.
const DefaultResortPeriod = 255

// VSIDS implements variable-state-independent decaying sum branching over
// per-literal scores (literal index 2*var+sign, so the heap already encodes
// polarity: no separate phase table is needed). Initial scores are the
// literal's occurrence count in the clauses present at the first Pick call.
// On every learned clause, every literal it contains has its counter
// bumped; every resort period the scores decay (score/2 + counter) and the
// heap is rebuilt from scratch.
type VSIDS struct {
	order  *yagh.IntMap[float64]
	scores []float64
	counts []float64

	resortPeriod int
	branches     int

	initialized bool
}

var _ cdcl.Brancher = (*VSIDS)(nil)

// NewVSIDS returns an uninitialized VSIDS brancher. resortPeriod <= 0 is
// replaced by DefaultResortPeriod. Scores are seeded from the clause
// database's contents the first time Pick is called, so VSIDS can be
// constructed before the formula is loaded.
func NewVSIDS(resortPeriod int) *VSIDS {
	if resortPeriod <= 0 {
		resortPeriod = DefaultResortPeriod
	}
	return &VSIDS{resortPeriod: resortPeriod}
}

func (b *VSIDS) ensureInit(db *cdcl.ClauseDB, vars *cdcl.VarStore) {
	if b.initialized {
		return
	}
	b.initialized = true

	n := vars.NumVars() * 2
	b.scores = make([]float64, n)
	b.counts = make([]float64, n)
	b.order = yagh.New[float64](n)

	db.Iter(func(id cdcl.ClauseID) bool {
		for _, l := range db.Literals(id) {
			b.scores[l]++
		}
		return true
	})
	for lit := 0; lit < n; lit++ {
		b.order.Put(lit, -b.scores[lit])
	}
}

// Pick pops literals in decreasing score order until it finds one whose
// variable is still unassigned.
func (b *VSIDS) Pick(db *cdcl.ClauseDB, vars *cdcl.VarStore) (cnf.Literal, bool) {
	b.ensureInit(db, vars)

	for {
		next, ok := b.order.Pop()
		if !ok {
			return 0, false
		}
		lit := cnf.Literal(next.Elem)
		if vars.VarValue(lit.VarID()) != cnf.Unknown {
			continue
		}

		b.branches++
		if b.branches%b.resortPeriod == 0 {
			b.rescale()
		}
		return lit, true
	}
}

// OnAssign carries no per-literal bookkeeping for VSIDS: scores only change
// on learning, and the heap only needs entries back on unassignment.
func (b *VSIDS) OnAssign(cnf.Literal) {}

// OnUnassign reinserts l into the heap with its current score. Only l
// itself (not its negation) comes back: the negation's heap entry, if it
// was never popped, is still there; if it was already popped and dropped
// as stale, it stays gone. In practice this makes the heap settle on
// whichever polarity a variable was last assigned, a phase-caching side
// effect rather than a deliberate mechanism.
func (b *VSIDS) OnUnassign(l cnf.Literal) {
	if b.initialized {
		b.order.Put(int(l), -b.scores[l])
	}
}

// OnLearn bumps the counter of every literal in a newly learned clause.
func (b *VSIDS) OnLearn(literals []cnf.Literal) {
	if !b.initialized {
		return
	}
	for _, l := range literals {
		b.counts[l]++
	}
}

func (b *VSIDS) rescale() {
	for lit := range b.scores {
		b.scores[lit] = b.scores[lit]/2 + b.counts[lit]
		b.counts[lit] = 0
	}
	b.order = yagh.New[float64](len(b.scores))
	for lit, s := range b.scores {
		b.order.Put(lit, -s)
	}
}
