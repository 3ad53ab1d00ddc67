package cdcl

import "github.com/satkit/cdcl/cnf"

// Propagator owns the clause database, variable store and unit queue, and
// implements two-watched-literal unit propagation (spec component C5) plus
// clause construction/attachment (component C3/C4 glue).
type Propagator struct {
	db    *ClauseDB
	vars  *VarStore
	queue *unitQueue

	// scratch buffers reused across calls to avoid per-conflict allocation.
	scanBuf []ClauseID
}

// NewPropagator returns a propagator over the given database and variable
// store.
func NewPropagator(db *ClauseDB, vars *VarStore) *Propagator {
	return &Propagator{db: db, vars: vars, queue: newUnitQueue()}
}

func (p *Propagator) watch(id ClauseID, l cnf.Literal) {
	p.vars.Watch(l.Opposite(), id)
}

func (p *Propagator) unwatch(id ClauseID, l cnf.Literal) {
	p.vars.Unwatch(l.Opposite(), id)
}

// AddOriginalClause simplifies and attaches an original (input) clause. It
// returns the new clause's id (or -1 if the clause was trivially satisfied
// or became a root-level unit fact) and false if the formula is immediately
// unsatisfiable: the clause is empty after simplification, or it is a unit
// whose literal contradicts a unit fact already pending.
func (p *Propagator) AddOriginalClause(literals []cnf.Literal) (ClauseID, bool) {
	tmp := make([]cnf.Literal, len(literals))
	copy(tmp, literals)
	size := len(tmp)

	seen := make(map[cnf.Literal]struct{}, size)
	for i := size - 1; i >= 0; i-- {
		if _, ok := seen[tmp[i].Opposite()]; ok {
			return noClause, true // tautology: always true, drop it
		}
		if _, ok := seen[tmp[i]]; ok {
			size--
			tmp[i], tmp[size] = tmp[size], tmp[i]
			continue
		}
		seen[tmp[i]] = struct{}{}

		switch p.vars.LitValue(tmp[i]) {
		case cnf.True:
			return noClause, true
		case cnf.False:
			size--
			tmp[i], tmp[size] = tmp[size], tmp[i]
		}
	}
	tmp = tmp[:size]

	switch size {
	case 0:
		return noClause, false
	case 1:
		if _, isConflict := p.enqueueUnit(tmp[0], Known, noClause); isConflict {
			return noClause, false
		}
		return noClause, true
	default:
		id := p.db.PushOriginal(tmp)
		w0, w1 := p.db.clauseAt(id).watched()
		p.watch(id, w0)
		p.watch(id, w1)
		return id, true
	}
}

// AddLearnedClause attaches a clause produced by conflict analysis. The
// first literal must be the asserting literal; for clauses of two or more
// literals, the watches are placed on the asserting literal and the literal
// assigned at the highest level among the rest (so the clause becomes unit
// again immediately after backjump). A unit learned clause has nothing to
// watch (there is no second literal to pair it with) and is never added to
// a watch list.
//
// Either way, the clause is unit right now: backjump already unassigned the
// asserting literal while every other literal is still falsified at or
// below the new decision level. Mirroring the teacher's
// record-then-enqueue(clause[0], c) (internal/sat/solver.go), the asserting
// literal is pushed onto the unit queue as a forced fact with this clause as
// its reason, so the Propagate call the driver makes right after actually
// enforces it instead of silently doing nothing.
func (p *Propagator) AddLearnedClause(literals []cnf.Literal) ClauseID {
	id := p.db.PushLearned(literals)
	c := p.db.clauseAt(id)

	if len(c.literals) > 1 {
		maxLevel, wl := -1, 1
		for i := 1; i < len(c.literals); i++ {
			if lvl := p.vars.Level(c.literals[i].VarID()); lvl > maxLevel {
				maxLevel, wl = lvl, i
			}
		}
		c.literals[1], c.literals[wl] = c.literals[wl], c.literals[1]

		w0, w1 := c.watched()
		p.watch(id, w0)
		p.watch(id, w1)
	}

	p.enqueueUnit(c.literals[0], Forced, id)
	return id
}

// DetachClause removes a learned clause from the watch lists and the
// database, returning an error if it is not a live learned clause.
func (p *Propagator) DetachClause(id ClauseID) error {
	w0, w1, err := p.db.RemoveLearned(id)
	if err != nil {
		return err
	}
	p.unwatch(id, w0)
	if w1 != w0 {
		p.unwatch(id, w1)
	}
	return nil
}

// enqueueUnit pushes a forced fact onto the unit queue. It returns the
// ClauseID of a conflict if the fact contradicts one already pending.
func (p *Propagator) enqueueUnit(l cnf.Literal, kind ReasonKind, reason ClauseID) (ClauseID, bool) {
	switch p.vars.LitValue(l) {
	case cnf.True:
		return noClause, false // already satisfied
	case cnf.False:
		return reason, true // already falsified: the forcing clause is in conflict
	}
	sign := cnf.Lift(l.IsPositive())
	conflict, isConflict := p.queue.Push(l.VarID(), sign, kind, reason)
	if !isConflict {
		return noClause, false
	}

	// The same variable was already pending with the opposite sign: record
	// the second (contradictory) assignment using the earlier-recorded
	// reason (so the earlier reason clause stays consistent), push it onto
	// the trail, clear the queue, and report the conflict via the new
	// clause, which now has every literal falsified.
	p.vars.assign(l.Opposite(), conflict.fact.kind, conflict.fact.reason)
	p.queue.Clear()
	return reason, true
}

// InitialPropagation drains the unit queue that AddOriginalClause filled
// with the formula's singleton (already-unit) clauses. It corresponds to the
// propagation sweep the driver performs right after loading the formula.
func (p *Propagator) InitialPropagation() ClauseID {
	return p.Propagate()
}

// Decide assigns l as a branching decision at a new decision level and
// returns the conflict (if any) produced by scanning l's watchers.
func (p *Propagator) Decide(l cnf.Literal) ClauseID {
	p.vars.PushDecisionLevel()
	p.vars.assign(l, Branching, noClause)
	if conflict := p.scan(l); conflict != noClause {
		return conflict
	}
	return p.Propagate()
}

// Propagate drains the unit queue, assigning each pending fact and scanning
// its watchers, until the queue empties or a clause is found in conflict.
func (p *Propagator) Propagate() ClauseID {
	for p.queue.Len() > 0 {
		v, fact := p.queue.Pop()
		var l cnf.Literal
		if fact.sign == cnf.True {
			l = cnf.PositiveLiteral(v)
		} else {
			l = cnf.NegativeLiteral(v)
		}
		p.vars.assign(l, fact.kind, fact.reason)

		if conflict := p.scan(l); conflict != noClause {
			p.queue.Clear()
			return conflict
		}
	}
	return noClause
}

// scan examines every clause watching the literal that just became false
// (i.e. watching l.Opposite(), woken up because l was assigned true) and
// either finds each a new literal to watch, enqueues a forced unit, or
// reports a conflict.
func (p *Propagator) scan(l cnf.Literal) ClauseID {
	watchers := p.vars.WatchersOf(l)
	p.scanBuf = p.scanBuf[:0]
	p.scanBuf = append(p.scanBuf, watchers...)
	p.vars.SetWatchersOf(l, watchers[:0])

	for i, id := range p.scanBuf {
		if conflict := p.propagateOne(id, l); conflict != noClause {
			// Restore remaining, not-yet-examined watchers before bailing.
			rest := p.vars.WatchersOf(l)
			rest = append(rest, p.scanBuf[i+1:]...)
			p.vars.SetWatchersOf(l, rest)
			return conflict
		}
	}
	return noClause
}

// propagateOne processes a single clause id whose watch on l.Opposite() was
// just woken up by l becoming true. It returns a conflict id if the clause
// is now falsified, or noClause otherwise (having re-attached its watch
// somewhere, possibly unchanged).
func (p *Propagator) propagateOne(id ClauseID, l cnf.Literal) ClauseID {
	c := p.db.clauseAt(id)
	lits := c.literals
	opp := l.Opposite()

	// A unit clause is never placed on a watch list (AddOriginalClause and
	// AddLearnedClause both enqueue it directly instead), but guard here too
	// rather than index lits[1] on a length-1 slice if one is ever scanned.
	if len(lits) == 1 {
		if p.vars.LitValue(lits[0]) == cnf.False {
			return id
		}
		return noClause
	}

	// Normalize so that lits[1] is the literal that just became false; the
	// rest of this function treats lits[0] as the literal to keep watching
	// or to (re)assign if every other literal is false.
	if lits[0] == opp {
		lits[0], lits[1] = lits[1], lits[0]
	}

	if p.vars.LitValue(lits[0]) == cnf.True {
		p.watch(id, lits[1]) // clause already satisfied, keep the same watch
		return noClause
	}

	for i := 2; i < len(lits); i++ {
		if p.vars.LitValue(lits[i]) != cnf.False {
			lits[1], lits[i] = lits[i], lits[1]
			p.watch(id, lits[1])
			return noClause
		}
	}

	// No replacement found: lits[0] is unit, or the clause is falsified.
	p.watch(id, lits[1])
	if p.vars.LitValue(lits[0]) == cnf.False {
		return id
	}
	if conflict, isConflict := p.enqueueUnit(lits[0], Forced, id); isConflict {
		return conflict
	}
	return noClause
}

// CancelUntil backjumps the variable store to the given level, clearing the
// unit queue and calling onUnassign for every literal undone.
func (p *Propagator) CancelUntil(level int, onUnassign func(cnf.Literal)) {
	p.queue.Clear()
	p.vars.CancelUntil(level, onUnassign)
}

// DB returns the underlying clause database.
func (p *Propagator) DB() *ClauseDB { return p.db }

// Vars returns the underlying variable store.
func (p *Propagator) Vars() *VarStore { return p.vars }
