package harness

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"
)

// Promotion records a candidate that was fed back into the population and
// the failure shape that earned it the slot.
type Promotion struct {
	Candidate string `yaml:"candidate"`
	Shape     string `yaml:"shape"`
}

// Report aggregates one harness run.
type Report struct {
	ID         string          `yaml:"id"`
	StartedAt  time.Time       `yaml:"started_at"`
	FinishedAt time.Time       `yaml:"finished_at"`
	Executed   int             `yaml:"executed"`
	Outcomes   map[Outcome]int `yaml:"outcomes"`
	Promoted   []Promotion     `yaml:"promoted,omitempty"`
}

// NewReport creates an empty report with a fresh run ID.
func NewReport() *Report {
	return &Report{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Outcomes:  make(map[Outcome]int),
	}
}

func (r *Report) record(outcome Outcome) {
	r.Executed++
	r.Outcomes[outcome]++
}

func (r *Report) promote(candidate, shape string) {
	r.Promoted = append(r.Promoted, Promotion{Candidate: candidate, Shape: shape})
}

func (r *Report) finish() {
	r.FinishedAt = time.Now().UTC()
}

// WriteYAML serializes the report.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

var (
	shapeNumbers = regexp.MustCompile(`\d+`)
	shapeQuoted  = regexp.MustCompile(`"[^"]*"|'[^']*'`)
)

// normalizeShape collapses an error message into a bucket key: quoted
// fragments and digit runs vary per candidate, the rest of the message is
// the failure's shape.
func normalizeShape(msg string) string {
	msg = shapeQuoted.ReplaceAllString(msg, "?")
	msg = shapeNumbers.ReplaceAllString(msg, "#")
	const maxShape = 120
	if len(msg) > maxShape {
		msg = msg[:maxShape]
	}
	return msg
}
