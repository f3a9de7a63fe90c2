package harness

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electwix/sqlfuzz/internal/fuzzer"
	"github.com/electwix/sqlfuzz/internal/logging"
)

func newEngine(t *testing.T, seeds []string) *fuzzer.Fuzzer {
	t.Helper()
	// Zero mutations keeps candidates identical to population members, so
	// harness behavior is fully deterministic.
	f, err := fuzzer.New(seeds,
		fuzzer.WithRand(rand.New(rand.NewSource(1))),
		fuzzer.WithMutationRange(0, 0))
	require.NoError(t, err)
	return f
}

func TestRunCountsOutcomes(t *testing.T) {
	r, err := NewRunner(newEngine(t, []string{"SELECT 1"}), logging.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()

	report, err := r.Run(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Executed)
	assert.Equal(t, 5, report.Outcomes[OutcomeOK])
	assert.Empty(t, report.Promoted)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestRunPromotesNovelFailuresOnce(t *testing.T) {
	r, err := NewRunner(newEngine(t, []string{"DEFINITELY NOT SQL"}), logging.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()

	report, err := r.Run(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Outcomes[OutcomeError])
	// Same statement, same failure shape: promoted exactly once.
	require.Len(t, report.Promoted, 1)
	assert.Equal(t, "DEFINITELY NOT SQL", report.Promoted[0].Candidate)
	assert.NotEmpty(t, report.Promoted[0].Shape)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	r, err := NewRunner(newEngine(t, []string{"SELECT 1"}), logging.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := r.Run(ctx, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Executed)
}

func TestNormalizeShapeBucketsVaryingDetails(t *testing.T) {
	a := normalizeShape(`near "xyz123": syntax error at offset 17`)
	b := normalizeShape(`near "q9": syntax error at offset 4`)
	assert.Equal(t, a, b, "shapes differing only in literals and offsets must collapse")

	c := normalizeShape("no such table: users")
	assert.NotEqual(t, a, c)
}

func TestReportWriteYAML(t *testing.T) {
	report := NewReport()
	report.record(OutcomeOK)
	report.record(OutcomeError)
	report.promote("DROP", "near ?: syntax error")
	report.finish()

	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf))

	out := buf.String()
	assert.Contains(t, out, report.ID)
	assert.Contains(t, out, "executed: 2")
	assert.Contains(t, out, "candidate: DROP")
}
