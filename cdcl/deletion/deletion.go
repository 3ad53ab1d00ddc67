// Package deletion provides the clause-deletion policies of spec component
// C9: NoDeletion and BerkMin-style age/activity purging.
package deletion

import (
	"github.com/satkit/cdcl/cdcl"
	"github.com/satkit/cdcl/cnf"
)

// NoDeletion never removes a learned clause.
type NoDeletion struct{}

var _ cdcl.DeletionPolicy = NoDeletion{}

func (NoDeletion) OnConflict(cdcl.ClauseID, bool)                     {}
func (NoDeletion) SelectForDeletion(*cdcl.ClauseDB, *cdcl.VarStore) []cdcl.ClauseID { return nil }

// BerkMin tracks per-learned-clause activity (bumped whenever the clause is
// the one found in conflict) and purges learned clauses whose watches are
// both currently unassigned, split into a "young" fraction (by insertion
// order, approximated here by increasing clause id; ids follow push order
// only until freed slots are reused, lowest id first) and an "old" remainder, each
// with its own size/activity deletion threshold.
type BerkMin struct {
	activity     map[cdcl.ClauseID]float64
	ageThreshold int
}

var _ cdcl.DeletionPolicy = (*BerkMin)(nil)

// NewBerkMin returns a BerkMin deletion policy with its initial age
// threshold (60, per spec).
func NewBerkMin() *BerkMin {
	return &BerkMin{activity: make(map[cdcl.ClauseID]float64), ageThreshold: 60}
}

// OnConflict bumps the activity of the clause that caused the conflict, if
// it is a learned clause.
func (b *BerkMin) OnConflict(conflicting cdcl.ClauseID, isLearned bool) {
	if isLearned {
		b.activity[conflicting]++
	}
}

// SelectForDeletion returns the learned clauses to purge on this call.
func (b *BerkMin) SelectForDeletion(db *cdcl.ClauseDB, vars *cdcl.VarStore) []cdcl.ClauseID {
	threshold := b.ageThreshold
	b.ageThreshold++

	var unassignedWatched []cdcl.ClauseID
	db.Iter(func(id cdcl.ClauseID) bool {
		if !db.IsLearned(id) {
			return true
		}
		lits := db.Literals(id)
		if len(lits) < 2 {
			return true // unit learned clause: never a deletion candidate
		}
		if vars.LitValue(lits[0]) == cnf.Unknown && vars.LitValue(lits[1]) == cnf.Unknown {
			unassignedWatched = append(unassignedWatched, id)
		}
		return true
	})

	pct := db.Len() / 16

	var toDelete []cdcl.ClauseID
	for i, id := range unassignedWatched {
		size := len(db.Literals(id))
		act := b.activity[id]
		if i < pct {
			if size > 42 && act < 7 {
				toDelete = append(toDelete, id)
			}
		} else {
			if size > 8 && act < float64(threshold) {
				toDelete = append(toDelete, id)
			}
		}
	}

	for _, id := range toDelete {
		delete(b.activity, id)
	}
	return toDelete
}
