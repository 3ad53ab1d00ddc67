package dpll

import "github.com/satkit/cdcl/cnf"

// VarValue is the three-valued assignment state of a DPLL variable: it is
// kept separate from cnf.LBool because the DPLL engine never needs an
// "unassigned negation" distinction, only Pos/Neg/Free (spec.md §4.12).
type VarValue int8

const (
	// Free means the variable has not yet been assigned.
	Free VarValue = iota
	// Pos means the variable is currently assigned true.
	Pos
	// Neg means the variable is currently assigned false.
	Neg
)

func (v VarValue) String() string {
	switch v {
	case Pos:
		return "pos"
	case Neg:
		return "neg"
	default:
		return "free"
	}
}

// valueOf returns the VarValue a literal assigns to its variable when made
// true.
func valueOf(l cnf.Literal) VarValue {
	if l.IsPositive() {
		return Pos
	}
	return Neg
}

// assignKind classifies why a variable holds its current value, the same
// distinction the CDCL driver makes between decisions and forced
// assignments (cdcl.ReasonKind), but reduced to the two cases the DPLL loop
// needs: whether backtracking should try the opposite value before giving
// up on it.
type assignKind int8

const (
	kindBranching assignKind = iota
	kindForced
)
