package mutate

import (
	"math/rand"
)

// Tuning constants exposed for tests and callers.
const (
	// MinPrintable and MaxPrintable bound the printable ASCII range that
	// InsertChar draws from, inclusive.
	MinPrintable = 32
	MaxPrintable = 126
	// MaxFlipBit is the highest bit position FlipChar may flip. Flipping
	// within bits 0-6 keeps mutations inside a single byte but can still
	// produce control characters, which is the point.
	MaxFlipBit = 6
)

// The generic operators treat strings as byte sequences. Seeds are loaded
// verbatim and may carry arbitrary bytes; bytes the operator did not select
// must pass through untouched.

// deleteRandomChar removes one byte at a uniform index. Empty input is
// returned unchanged.
func deleteRandomChar(rng *rand.Rand, s string) string {
	if s == "" {
		return s
	}
	pos := rng.Intn(len(s))
	return s[:pos] + s[pos+1:]
}

// insertRandomChar inserts one printable ASCII byte at a uniform index in
// [0, len], growing the string by exactly one byte.
func insertRandomChar(rng *rand.Rand, s string) string {
	pos := rng.Intn(len(s) + 1)
	ch := byte(MinPrintable + rng.Intn(MaxPrintable-MinPrintable+1))
	return s[:pos] + string(ch) + s[pos:]
}

// flipRandomChar XORs one byte with a single bit drawn from positions
// 0..MaxFlipBit. Empty input is returned unchanged. Length is preserved.
func flipRandomChar(rng *rand.Rand, s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	pos := rng.Intn(len(b))
	b[pos] ^= byte(1) << rng.Intn(MaxFlipBit+1)
	return string(b)
}
