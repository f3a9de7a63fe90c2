package mutate

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryComposition(t *testing.T) {
	cases := []struct {
		name string
		reg  Registry
		want []Operator
	}{
		{"generic", Generic(), []Operator{DeleteChar, InsertChar, FlipChar}},
		{"sql", SQLAware(), []Operator{ReplaceToken, DuplicateClause, ShuffleTokens}},
		{"combined", Combined(), []Operator{DeleteChar, InsertChar, FlipChar, ReplaceToken, DuplicateClause, ShuffleTokens}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.reg.Operators()); diff != "" {
				t.Errorf("registry operators mismatch (-want +got):\n%s", diff)
			}
			if tc.reg.Len() != len(tc.want) {
				t.Errorf("Len() = %d, want %d", tc.reg.Len(), len(tc.want))
			}
		})
	}
}

func TestRegistryPickCoversAllOperators(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	reg := Combined()

	seen := make(map[Operator]int)
	for i := 0; i < 1000; i++ {
		seen[reg.Pick(rng)]++
	}
	for _, op := range reg.Operators() {
		if seen[op] == 0 {
			t.Errorf("operator %s never drawn in 1000 picks", op)
		}
	}
}

func TestOperatorStrings(t *testing.T) {
	cases := map[Operator]string{
		DeleteChar:      "delete_char",
		InsertChar:      "insert_char",
		FlipChar:        "flip_char",
		ReplaceToken:    "replace_token",
		DuplicateClause: "duplicate_clause",
		ShuffleTokens:   "shuffle_tokens",
	}

	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("Operator(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestUnknownOperatorIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	if got := Operator(99).Apply(rng, "SELECT 1"); got != "SELECT 1" {
		t.Errorf("unknown operator mutated input: %q", got)
	}
}
