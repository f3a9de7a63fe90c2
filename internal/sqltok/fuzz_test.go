package sqltok

import (
	"testing"
)

// FuzzRoundTrip checks the round-trip invariant on arbitrary inputs.
func FuzzRoundTrip(f *testing.F) {
	f.Add("SELECT * FROM users WHERE id = 1;")
	f.Add("INSERT INTO t VALUES ('a b', 2)")
	f.Add("'unterminated")
	f.Add("  \t\n ")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		tokens := Tokenize(input)
		if got := Join(tokens); got != input {
			t.Errorf("Join(Tokenize(%q)) = %q", input, got)
		}
		for _, tok := range tokens {
			if tok.Text == "" {
				t.Errorf("Tokenize(%q) produced an empty token", input)
			}
		}
	})
}
