// Package fuzzer implements the mutation engine: a seed-backed population of
// candidate strings and the state machine that dispenses seeds first, then
// mutated candidates forever after.
package fuzzer

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/electwix/sqlfuzz/internal/logging"
	"github.com/electwix/sqlfuzz/internal/mutate"
)

// Default bounds for the per-candidate mutation count.
const (
	DefaultMinMutations = 2
	DefaultMaxMutations = 10
)

// ErrInvalidConfig reports a construction-time configuration error.
var ErrInvalidConfig = errors.New("fuzzer: invalid configuration")

// Fuzzer produces fuzz candidates from a seed corpus. It dispenses each
// original seed once, in order, then switches permanently to mutating random
// population members. A Fuzzer is owned by a single goroutine; callers that
// share one must serialize access themselves.
type Fuzzer struct {
	seeds      []string
	population []string
	seedIndex  int
	minMut     int
	maxMut     int
	rng        *rand.Rand
	registry   mutate.Registry
	logger     logging.Logger
}

// Option configures a Fuzzer using the functional options pattern.
type Option func(*Fuzzer)

// WithMutationRange sets the inclusive bounds for the number of operator
// applications per candidate.
func WithMutationRange(minMut, maxMut int) Option {
	return func(f *Fuzzer) {
		f.minMut = minMut
		f.maxMut = maxMut
	}
}

// WithRegistry selects the operator registry the engine draws from.
func WithRegistry(reg mutate.Registry) Option {
	return func(f *Fuzzer) {
		f.registry = reg
	}
}

// WithRand injects the random source, making runs reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(f *Fuzzer) {
		f.rng = rng
	}
}

// WithLogger injects a logger for mutation tracing and seed promotion notices.
func WithLogger(logger logging.Logger) Option {
	return func(f *Fuzzer) {
		f.logger = logger
	}
}

// New creates a Fuzzer over the provided seed list. The seed list must be
// non-empty and the mutation range well formed; violations are rejected here
// with an error wrapping ErrInvalidConfig rather than surfacing later as a
// runtime fault.
func New(seeds []string, opts ...Option) (*Fuzzer, error) {
	f := &Fuzzer{
		seeds:    append([]string(nil), seeds...),
		minMut:   DefaultMinMutations,
		maxMut:   DefaultMaxMutations,
		registry: mutate.Generic(),
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if len(f.seeds) == 0 {
		return nil, fmt.Errorf("%w: seed list is empty", ErrInvalidConfig)
	}
	if f.minMut < 0 {
		return nil, fmt.Errorf("%w: min_mutations %d is negative", ErrInvalidConfig, f.minMut)
	}
	if f.maxMut < f.minMut {
		return nil, fmt.Errorf("%w: max_mutations %d < min_mutations %d", ErrInvalidConfig, f.maxMut, f.minMut)
	}
	if f.registry.Len() == 0 {
		return nil, fmt.Errorf("%w: operator registry is empty", ErrInvalidConfig)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f.Reset()
	return f, nil
}

// Reset restores the population to the original seed list and rewinds the
// seeding cursor, returning the engine to the Seeding state.
func (f *Fuzzer) Reset() {
	f.population = append([]string(nil), f.seeds...)
	f.seedIndex = 0
}

// Next returns the next fuzz candidate. While seeds remain it returns the
// seed at the cursor and advances; once the seed list is exhausted it
// switches to CreateCandidate permanently.
func (f *Fuzzer) Next() string {
	if f.seedIndex < len(f.seeds) {
		out := f.seeds[f.seedIndex]
		f.seedIndex++
		return out
	}
	return f.CreateCandidate()
}

// CreateCandidate picks a uniform population member and applies a uniform
// number of operator applications in [min, max], each drawn uniformly from
// the active registry, feeding each output into the next application.
func (f *Fuzzer) CreateCandidate() string {
	candidate := f.population[f.rng.Intn(len(f.population))]
	trials := f.minMut + f.rng.Intn(f.maxMut-f.minMut+1)
	for i := 0; i < trials; i++ {
		op := f.registry.Pick(f.rng)
		candidate = op.Apply(f.rng, candidate)
		f.logger.Debug("applied mutation", "operator", op.String(), "trial", i+1, "of", trials)
	}
	return candidate
}

// AddSeed appends a candidate to the population, making it immediately
// eligible for mutation. The original seed list is untouched; the population
// only ever grows. No deduplication, no validation.
func (f *Fuzzer) AddSeed(candidate string) {
	f.population = append(f.population, candidate)
	f.logger.Info("candidate promoted into population", "population_size", len(f.population))
}

// Seeding reports whether original seeds are still being dispensed.
func (f *Fuzzer) Seeding() bool {
	return f.seedIndex < len(f.seeds)
}

// Population returns a copy of the current population.
func (f *Fuzzer) Population() []string {
	return append([]string(nil), f.population...)
}
