package mutate

import (
	"math/rand"
	"testing"
)

func TestDeleteCharLengthLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inputs := []string{"a", "SELECT 1", "hello world", "  spaces  "}

	for _, input := range inputs {
		for i := 0; i < 50; i++ {
			got := DeleteChar.Apply(rng, input)
			if len(got) != len(input)-1 {
				t.Fatalf("DeleteChar(%q) = %q, want length %d", input, got, len(input)-1)
			}
		}
	}
}

func TestDeleteCharEmptyIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := DeleteChar.Apply(rng, ""); got != "" {
		t.Fatalf("DeleteChar(\"\") = %q, want \"\"", got)
	}
}

func TestInsertCharLengthLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	inputs := []string{"", "a", "SELECT 1"}

	for _, input := range inputs {
		for i := 0; i < 50; i++ {
			got := InsertChar.Apply(rng, input)
			if len(got) != len(input)+1 {
				t.Fatalf("InsertChar(%q) = %q, want length %d", input, got, len(input)+1)
			}
		}
	}
}

func TestInsertCharDrawsPrintableASCII(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		got := InsertChar.Apply(rng, "")
		if len(got) != 1 {
			t.Fatalf("InsertChar(\"\") = %q, want single byte", got)
		}
		if got[0] < MinPrintable || got[0] > MaxPrintable {
			t.Fatalf("InsertChar produced %q outside printable range [%d, %d]", got, MinPrintable, MaxPrintable)
		}
	}
}

func TestFlipCharLengthAndBitDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	input := "SELECT 1 FROM t"
	validMasks := map[byte]bool{1: true, 2: true, 4: true, 8: true, 16: true, 32: true, 64: true}

	for i := 0; i < 200; i++ {
		got := FlipChar.Apply(rng, input)
		if len(got) != len(input) {
			t.Fatalf("FlipChar(%q) = %q, length changed", input, got)
		}

		diffs := 0
		for j := 0; j < len(input); j++ {
			if input[j] != got[j] {
				diffs++
				if mask := input[j] ^ got[j]; !validMasks[mask] {
					t.Fatalf("FlipChar changed %#x to %#x, not a single bit in 0..%d", input[j], got[j], MaxFlipBit)
				}
			}
		}
		if diffs != 1 {
			t.Fatalf("FlipChar(%q) = %q, want exactly one differing byte, got %d", input, got, diffs)
		}
	}
}

func TestFlipCharEmptyIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	if got := FlipChar.Apply(rng, ""); got != "" {
		t.Fatalf("FlipChar(\"\") = %q, want \"\"", got)
	}
}

func TestGenericOperatorsPreserveArbitraryBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	input := "\xff\xfeab"

	// Deletion removes exactly one byte; every other byte survives verbatim,
	// invalid UTF-8 included.
	deletions := map[string]bool{}
	for pos := 0; pos < len(input); pos++ {
		deletions[input[:pos]+input[pos+1:]] = true
	}
	for i := 0; i < 100; i++ {
		got := DeleteChar.Apply(rng, input)
		if !deletions[got] {
			t.Fatalf("DeleteChar(%q) = %q, not a single-byte deletion", input, got)
		}
	}

	for i := 0; i < 100; i++ {
		got := FlipChar.Apply(rng, input)
		if len(got) != len(input) {
			t.Fatalf("FlipChar(%q) = %q, length changed", input, got)
		}
		diffs := 0
		for j := 0; j < len(input); j++ {
			if input[j] != got[j] {
				diffs++
			}
		}
		if diffs != 1 {
			t.Fatalf("FlipChar(%q) = %q, want exactly one differing byte", input, got)
		}
	}

	for i := 0; i < 100; i++ {
		got := InsertChar.Apply(rng, input)
		if len(got) != len(input)+1 {
			t.Fatalf("InsertChar(%q) = %q, want length %d", input, got, len(input)+1)
		}
		// Removing the inserted byte must reproduce the input exactly.
		restored := false
		for pos := 0; pos < len(got) && !restored; pos++ {
			restored = got[:pos]+got[pos+1:] == input
		}
		if !restored {
			t.Fatalf("InsertChar(%q) = %q, original bytes not preserved", input, got)
		}
	}
}
