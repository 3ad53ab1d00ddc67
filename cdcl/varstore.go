package cdcl

import "github.com/satkit/cdcl/cnf"

// assignment records the current value given to a variable.
type assignment struct {
	assigned bool
	sign     cnf.LBool // True or False, meaningless if !assigned
	level    int
	kind     ReasonKind
	reason   ClauseID
}

// VarStore owns the per-variable assignment state and the watch lists keyed
// by literal. watchedBy[l] lists the ids of clauses currently watching
// l's negation: they wake up when l is assigned true.
type VarStore struct {
	assigns   []assignment
	watchedBy [][]ClauseID
	trail     []cnf.Literal
	trailLim  []int // trail length at the start of each decision level
}

// NewVarStore returns a store with numVars variables, all unassigned.
func NewVarStore(numVars int) *VarStore {
	vs := &VarStore{
		assigns:   make([]assignment, numVars),
		watchedBy: make([][]ClauseID, numVars*2),
	}
	for i := range vs.assigns {
		vs.assigns[i].reason = noClause
	}
	return vs
}

// NumVars returns the number of variables in the store.
func (vs *VarStore) NumVars() int {
	return len(vs.assigns)
}

// Watch registers clause id to be examined whenever literal l is assigned.
func (vs *VarStore) Watch(l cnf.Literal, id ClauseID) {
	vs.watchedBy[l] = append(vs.watchedBy[l], id)
}

// Unwatch removes clause id from literal l's watch list.
func (vs *VarStore) Unwatch(l cnf.Literal, id ClauseID) {
	list := vs.watchedBy[l]
	for i, w := range list {
		if w == id {
			list[i] = list[len(list)-1]
			vs.watchedBy[l] = list[:len(list)-1]
			return
		}
	}
}

// WatchersOf returns the (mutable) watch list for literal l.
func (vs *VarStore) WatchersOf(l cnf.Literal) []ClauseID {
	return vs.watchedBy[l]
}

// SetWatchersOf replaces the watch list for literal l.
func (vs *VarStore) SetWatchersOf(l cnf.Literal, ids []ClauseID) {
	vs.watchedBy[l] = ids
}

// VarValue returns the current value of variable v's positive literal.
func (vs *VarStore) VarValue(v int) cnf.LBool {
	a := vs.assigns[v]
	if !a.assigned {
		return cnf.Unknown
	}
	return a.sign
}

// LitValue returns the current value of literal l.
func (vs *VarStore) LitValue(l cnf.Literal) cnf.LBool {
	v := vs.VarValue(l.VarID())
	if !l.IsPositive() {
		return v.Opposite()
	}
	return v
}

// Level returns the branching depth at which v was assigned, or -1 if
// unassigned.
func (vs *VarStore) Level(v int) int {
	if !vs.assigns[v].assigned {
		return -1
	}
	return vs.assigns[v].level
}

// ReasonOf returns the kind of reason and (for Forced) the propagating
// clause id for variable v's current assignment.
func (vs *VarStore) ReasonOf(v int) (ReasonKind, ClauseID) {
	a := vs.assigns[v]
	return a.kind, a.reason
}

// Trail returns the assignment trail in chronological order. The returned
// slice must not be mutated by callers.
func (vs *VarStore) Trail() []cnf.Literal {
	return vs.trail
}

// DecisionLevel returns the current branching depth (0 at the root).
func (vs *VarStore) DecisionLevel() int {
	return len(vs.trailLim)
}

// PushDecisionLevel opens a new branching level.
func (vs *VarStore) PushDecisionLevel() {
	vs.trailLim = append(vs.trailLim, len(vs.trail))
}

// assign records l as true at the current decision level with the given
// reason, and appends it to the trail. It does not touch watch lists.
func (vs *VarStore) assign(l cnf.Literal, kind ReasonKind, reason ClauseID) {
	v := l.VarID()
	vs.assigns[v] = assignment{
		assigned: true,
		sign:     cnf.Lift(l.IsPositive()),
		level:    vs.DecisionLevel(),
		kind:     kind,
		reason:   reason,
	}
	vs.trail = append(vs.trail, l)
}

// unassignLast pops and unassigns the most recently assigned variable,
// returning the literal that had been assigned true.
func (vs *VarStore) unassignLast() cnf.Literal {
	l := vs.trail[len(vs.trail)-1]
	vs.trail = vs.trail[:len(vs.trail)-1]
	vs.assigns[l.VarID()] = assignment{reason: noClause}
	return l
}

// CancelUntil pops the trail back to the given decision level, calling
// onUnassign for each literal that is undone (in reverse trail order) before
// it is actually unassigned.
func (vs *VarStore) CancelUntil(level int, onUnassign func(cnf.Literal)) {
	for vs.DecisionLevel() > level {
		target := vs.trailLim[len(vs.trailLim)-1]
		for len(vs.trail) > target {
			l := vs.trail[len(vs.trail)-1]
			if onUnassign != nil {
				onUnassign(l)
			}
			vs.unassignLast()
		}
		vs.trailLim = vs.trailLim[:len(vs.trailLim)-1]
	}
}
