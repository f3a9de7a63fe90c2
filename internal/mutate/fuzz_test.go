package mutate

import (
	"math/rand"
	"testing"
)

// FuzzOperators drives every operator over arbitrary inputs. Operators are
// total: they must never panic, whatever bytes they are handed.
func FuzzOperators(f *testing.F) {
	f.Add("SELECT * FROM users WHERE id = 1;", int64(1))
	f.Add("INSERT INTO t VALUES ('a b', 2147483647)", int64(2))
	f.Add("'unterminated", int64(3))
	f.Add("", int64(4))
	f.Add("\xff\xfe invalid utf8", int64(5))

	f.Fuzz(func(t *testing.T, input string, seed int64) {
		rng := rand.New(rand.NewSource(seed))
		for _, op := range Combined().Operators() {
			out := op.Apply(rng, input)
			switch op {
			case DeleteChar:
				want := len(input) - 1
				if input == "" {
					want = 0
				}
				if len(out) != want {
					t.Errorf("%s(%q) = %q, want length %d", op, input, out, want)
				}
			case InsertChar:
				if len(out) != len(input)+1 {
					t.Errorf("%s(%q) = %q, want length %d", op, input, out, len(input)+1)
				}
			case FlipChar:
				if len(out) != len(input) {
					t.Errorf("%s(%q) = %q, length changed", op, input, out)
				}
			}
		}
	})
}
