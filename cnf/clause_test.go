package cnf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewClause_dedup(t *testing.T) {
	got := NewClause([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(0)})
	want := Clause{PositiveLiteral(0), PositiveLiteral(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewClause() mismatch (-want +got):\n%s", diff)
	}
}

func TestClause_IsTautology(t *testing.T) {
	tests := []struct {
		name string
		c    Clause
		want bool
	}{
		{"tautology", Clause{PositiveLiteral(0), NegativeLiteral(0)}, true},
		{"not a tautology", Clause{PositiveLiteral(0), PositiveLiteral(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsTautology(); got != tt.want {
				t.Errorf("IsTautology() = %v, want %v", got, tt.want)
			}
		})
	}
}
