// Package mutate implements the mutation operators: generic character-level
// corruption and SQL-aware token-level rewrites. Every operator is a total
// function over strings; inputs with no eligible mutation site are returned
// unchanged. Randomness always comes from the caller's *rand.Rand so runs
// can be replayed deterministically.
package mutate

import (
	"math/rand"
	"strconv"
)

// Operator identifies one mutation strategy.
type Operator int

const (
	// DeleteChar removes one random byte.
	DeleteChar Operator = iota
	// InsertChar inserts one random printable ASCII byte.
	InsertChar
	// FlipChar XORs one random byte with a low-order bit.
	FlipChar
	// ReplaceToken rewrites one random SQL content token by its kind.
	ReplaceToken
	// DuplicateClause duplicates a random keyword token elsewhere in the string.
	DuplicateClause
	// ShuffleTokens permutes a contiguous span of content tokens.
	ShuffleTokens
)

// Apply runs the operator on s using rng for every random draw.
func (op Operator) Apply(rng *rand.Rand, s string) string {
	switch op {
	case DeleteChar:
		return deleteRandomChar(rng, s)
	case InsertChar:
		return insertRandomChar(rng, s)
	case FlipChar:
		return flipRandomChar(rng, s)
	case ReplaceToken:
		return replaceToken(rng, s)
	case DuplicateClause:
		return duplicateClause(rng, s)
	case ShuffleTokens:
		return shuffleTokens(rng, s)
	default:
		return s
	}
}

func (op Operator) String() string {
	switch op {
	case DeleteChar:
		return "delete_char"
	case InsertChar:
		return "insert_char"
	case FlipChar:
		return "flip_char"
	case ReplaceToken:
		return "replace_token"
	case DuplicateClause:
		return "duplicate_clause"
	case ShuffleTokens:
		return "shuffle_tokens"
	default:
		return "operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Registry is an ordered set of operators the engine draws from uniformly.
type Registry struct {
	ops []Operator
}

// NewRegistry builds a registry from an explicit operator list.
func NewRegistry(ops ...Operator) Registry {
	return Registry{ops: append([]Operator(nil), ops...)}
}

// Generic returns the character-level registry: delete, insert, bit flip.
func Generic() Registry {
	return NewRegistry(DeleteChar, InsertChar, FlipChar)
}

// SQLAware returns the token-level registry.
func SQLAware() Registry {
	return NewRegistry(ReplaceToken, DuplicateClause, ShuffleTokens)
}

// Combined returns the union of Generic and SQLAware.
func Combined() Registry {
	return NewRegistry(DeleteChar, InsertChar, FlipChar, ReplaceToken, DuplicateClause, ShuffleTokens)
}

// Pick draws one operator uniformly. It panics on an empty registry; the
// engine rejects empty registries at construction so this cannot trigger
// through the public API.
func (r Registry) Pick(rng *rand.Rand) Operator {
	return r.ops[rng.Intn(len(r.ops))]
}

// Len reports the number of operators in the registry.
func (r Registry) Len() int {
	return len(r.ops)
}

// Operators returns a copy of the operator list.
func (r Registry) Operators() []Operator {
	return append([]Operator(nil), r.ops...)
}
