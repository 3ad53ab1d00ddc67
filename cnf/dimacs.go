package cnf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"
)

// ParseDIMACS reads a DIMACS CNF instance from r. Only "cnf" problem lines
// are accepted; anything else is a ParseError. Comment lines ("c ...") are
// tolerated and ignored.
func ParseDIMACS(r io.Reader) (*CNF, error) {
	b := &cnfBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, wrapParseError("malformed DIMACS instance", err)
	}
	if b.err != nil {
		return nil, b.err
	}
	return &b.cnf, nil
}

// ParseDIMACSFile opens path and parses it as a DIMACS CNF instance.
func ParseDIMACSFile(path string) (*CNF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapParseError(fmt.Sprintf("could not open %q", path), err)
	}
	defer f.Close()
	return ParseDIMACS(f)
}

// cnfBuilder adapts CNF to the dimacs.Builder interface expected by
// github.com/rhartert/dimacs.
type cnfBuilder struct {
	cnf CNF
	err error
}

func (b *cnfBuilder) Problem(nVars int, nClauses int) {
	b.cnf.NumVars = nVars
	b.cnf.Clauses = make([]Clause, 0, nClauses)
}

func (b *cnfBuilder) Clause(tmpClause []int) {
	lits := make([]Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l == 0 {
			b.err = parseErrorf("unexpected 0 inside clause literals")
			return
		}
		if l < 0 {
			lits[i] = NegativeLiteral(-l - 1)
		} else {
			lits[i] = PositiveLiteral(l - 1)
		}
	}
	b.cnf.Clauses = append(b.cnf.Clauses, NewClause(lits))
}

func (b *cnfBuilder) Comment(line string) {}

// WriteDIMACS writes f to w as a DIMACS CNF instance: a "p cnf" header line
// followed by one line per clause, each terminated by " 0".
func WriteDIMACS(w io.Writer, f *CNF) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", f.NumVars, len(f.Clauses)); err != nil {
		return err
	}
	for _, c := range f.Clauses {
		parts := make([]string, 0, len(c)+1)
		for _, l := range c {
			if l.IsPositive() {
				parts = append(parts, fmt.Sprintf("%d", l.VarID()+1))
			} else {
				parts = append(parts, fmt.Sprintf("-%d", l.VarID()+1))
			}
		}
		parts = append(parts, "0")
		if _, err := fmt.Fprintln(bw, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
