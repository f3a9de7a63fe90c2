// Package harness feeds fuzz candidates into an in-process SQLite instance
// and promotes candidates that provoke novel failures back into the engine's
// population. It is the feedback collaborator around the mutation engine,
// not part of the engine itself.
package harness

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/electwix/sqlfuzz/internal/fuzzer"
	"github.com/electwix/sqlfuzz/internal/logging"
)

const sqliteInMem = ":memory:"

// Outcome classifies a single candidate execution.
type Outcome string

const (
	// OutcomeOK means the statement executed without error.
	OutcomeOK Outcome = "ok"
	// OutcomeError means SQLite rejected or failed the statement.
	OutcomeError Outcome = "error"
	// OutcomePanic means execution panicked and was recovered.
	OutcomePanic Outcome = "panic"
)

// Runner drives a Fuzzer against an in-memory SQLite database.
type Runner struct {
	db     *sql.DB
	fz     *fuzzer.Fuzzer
	logger logging.Logger
	seen   map[string]struct{}
}

// NewRunner opens an in-memory SQLite database for the given engine.
func NewRunner(fz *fuzzer.Fuzzer, logger logging.Logger) (*Runner, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	db, err := sql.Open("sqlite", sqliteInMem)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &Runner{
		db:     db,
		fz:     fz,
		logger: logger,
		seen:   make(map[string]struct{}),
	}, nil
}

// Close releases the underlying database.
func (r *Runner) Close() error {
	return r.db.Close()
}

// Run executes iterations candidates and returns the aggregated report.
// A candidate whose failure shape has not been seen before is promoted into
// the engine's population via AddSeed. Run stops early when ctx is done,
// returning the partial report alongside the context error.
func (r *Runner) Run(ctx context.Context, iterations int) (*Report, error) {
	report := NewReport()
	defer report.finish()

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("harness run cancelled: %w", err)
		}

		candidate := r.fz.Next()
		outcome, shape := r.execute(ctx, candidate)
		report.record(outcome)

		if outcome == OutcomeOK || shape == "" {
			continue
		}
		if _, dup := r.seen[shape]; dup {
			continue
		}
		r.seen[shape] = struct{}{}
		r.fz.AddSeed(candidate)
		report.promote(candidate, shape)
		r.logger.Info("novel failure shape", "outcome", string(outcome), "shape", shape)
	}

	return report, nil
}

// execute runs one candidate, converting panics in the driver or the
// candidate's execution path into an outcome instead of crashing the run.
func (r *Runner) execute(ctx context.Context, candidate string) (outcome Outcome, shape string) {
	defer func() {
		if p := recover(); p != nil {
			outcome = OutcomePanic
			shape = normalizeShape(fmt.Sprint(p))
			r.logger.Error("candidate execution panicked", "panic", fmt.Sprint(p))
		}
	}()

	if _, err := r.db.ExecContext(ctx, candidate); err != nil {
		return OutcomeError, normalizeShape(err.Error())
	}
	return OutcomeOK, ""
}
