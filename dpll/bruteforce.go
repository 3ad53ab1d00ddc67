package dpll

import "github.com/satkit/cdcl/cnf"

// BruteForce exhaustively enumerates every valuation of f's variables and
// returns the first one that satisfies every clause, or false if none does.
// It is not a solving strategy: it exists as a trivial third oracle for
// differential testing against the CDCL and DPLL engines on small
// instances, ported from the original source's reference brute-forcer.
func BruteForce(f *cnf.CNF) ([]bool, bool) {
	assignment := make([]bool, f.NumVars)
	if guess(f, 0, assignment) {
		return assignment, true
	}
	return nil, false
}

func guess(f *cnf.CNF, i int, assignment []bool) bool {
	if i == len(assignment) {
		return satisfies(f, assignment)
	}
	assignment[i] = false
	if guess(f, i+1, assignment) {
		return true
	}
	assignment[i] = true
	if guess(f, i+1, assignment) {
		return true
	}
	assignment[i] = false
	return false
}

func satisfies(f *cnf.CNF, assignment []bool) bool {
	for _, c := range f.Clauses {
		ok := false
		for _, l := range c {
			if l.IsPositive() == assignment[l.VarID()] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
