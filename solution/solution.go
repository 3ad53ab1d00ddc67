// Package solution defines the solver's answer type and its DIMACS
// serialization.
package solution

import (
	"bufio"
	"fmt"
	"io"
)

// Kind is the outcome of a solve attempt.
type Kind int

const (
	// Unknown means the search was interrupted (cancellation or a resource
	// budget) before reaching a verdict.
	Unknown Kind = iota
	// Satisfiable means a satisfying assignment was found; Assignment holds it.
	Satisfiable
	// Unsatisfiable means the formula has no satisfying assignment.
	Unsatisfiable
)

func (k Kind) String() string {
	switch k {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Solution is the result of a solve call: a Kind and, when Satisfiable, a
// dense assignment indexed by variable id (Assignment[i] is the value given
// to variable i).
type Solution struct {
	Kind       Kind
	Assignment []bool
}

// Sat returns a Satisfiable solution carrying the given assignment.
func Sat(assignment []bool) Solution {
	return Solution{Kind: Satisfiable, Assignment: assignment}
}

// Unsat returns the Unsatisfiable solution.
func Unsat() Solution {
	return Solution{Kind: Unsatisfiable}
}

// UnknownSolution returns the Unknown solution.
func UnknownSolution() Solution {
	return Solution{Kind: Unknown}
}

// litsPerLine is the maximum number of signed literals per "v" line, per the
// DIMACS solution convention this package follows.
const litsPerLine = 8

// WriteDIMACS writes s in DIMACS solution format: a single "s ..." status
// line, followed for Satisfiable solutions by one or more "v" lines of up to
// 8 signed literals each, the last one terminated by " 0".
func WriteDIMACS(w io.Writer, s Solution) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "s %s\n", s.Kind); err != nil {
		return err
	}
	if s.Kind != Satisfiable {
		return bw.Flush()
	}

	line := make([]int, 0, litsPerLine)
	flushLine := func(terminate bool) error {
		if len(line) == 0 && !terminate {
			return nil
		}
		if _, err := bw.WriteString("v"); err != nil {
			return err
		}
		for _, lit := range line {
			if _, err := fmt.Fprintf(bw, " %d", lit); err != nil {
				return err
			}
		}
		if terminate {
			if _, err := bw.WriteString(" 0"); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		line = line[:0]
		return nil
	}

	for i, v := range s.Assignment {
		lit := i + 1
		if !v {
			lit = -lit
		}
		line = append(line, lit)
		if len(line) == litsPerLine && i != len(s.Assignment)-1 {
			if err := flushLine(false); err != nil {
				return err
			}
		}
	}
	if err := flushLine(true); err != nil {
		return err
	}
	return bw.Flush()
}
