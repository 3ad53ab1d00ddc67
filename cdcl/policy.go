package cdcl

import "github.com/satkit/cdcl/cnf"

// Brancher selects the next decision literal (spec component C7) and
// receives the driver's lifecycle notifications so it can keep whatever
// per-literal bookkeeping it needs (occurrence counts, VSIDS scores, ...) in
// sync with the search.
type Brancher interface {
	// Pick returns the next literal to branch on, or ok=false if every
	// variable is already assigned (the formula is satisfied).
	Pick(db *ClauseDB, vars *VarStore) (lit cnf.Literal, ok bool)

	// OnAssign is called whenever a variable becomes assigned, for any
	// reason (decision, propagation, or restore after backjump skips it).
	OnAssign(l cnf.Literal)

	// OnUnassign is called for every literal undone by a backjump or
	// restart, in reverse trail order.
	OnUnassign(l cnf.Literal)

	// OnLearn is called once per learned clause, with its literals.
	OnLearn(literals []cnf.Literal)
}

// RestartPolicy decides when the driver should abandon the current search
// trajectory (spec component C8). All implementations count conflicts.
type RestartPolicy interface {
	// OnConflict records a conflict and reports whether a restart should
	// happen now.
	OnConflict() bool

	// OnRestart notifies the policy that a restart just occurred, so it can
	// advance its schedule (e.g. scale up the next threshold).
	OnRestart()
}

// DeletionPolicy decides which learned clauses to discard (spec component
// C9).
type DeletionPolicy interface {
	// OnConflict is called once per conflict with the id of the clause that
	// was in conflict (the id is only meaningful when the conflicting
	// clause is itself learned).
	OnConflict(conflicting ClauseID, isLearned bool)

	// SelectForDeletion returns the ids of learned clauses to remove. The
	// driver detaches and removes exactly the returned ids; it never
	// removes an original clause.
	SelectForDeletion(db *ClauseDB, vars *VarStore) []ClauseID
}
