// Package stats accumulates per-message outcomes for a batch run.
package stats

import "sync"

// Outcome classifies what happened to one message of an mbox archive.
type Outcome string

const (
	OutcomeConverted   Outcome = "converted"
	OutcomePassthrough Outcome = "passthrough"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeFailed      Outcome = "failed"
)

// Summary holds the counters of one batch run.
type Summary struct {
	Scanned     int
	Converted   int
	Passthrough int
	Skipped     int
	Failed      int
	LastError   error
}

// LogAttrs renders the summary as slog key/value pairs.
func (s Summary) LogAttrs() []any {
	attrs := []any{
		"scanned", s.Scanned,
		"converted", s.Converted,
		"passthrough", s.Passthrough,
		"skipped", s.Skipped,
		"failed", s.Failed,
	}
	if s.LastError != nil {
		attrs = append(attrs, "lastError", s.LastError.Error())
	}
	return attrs
}

// Collector aggregates outcomes. Safe for concurrent use, though the batch
// runner feeds it sequentially.
type Collector struct {
	mu      sync.Mutex
	summary Summary
}

func NewCollector() *Collector {
	return &Collector{}
}

// Record adds one message outcome.
func (c *Collector) Record(outcome Outcome, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary.Scanned++
	switch outcome {
	case OutcomeConverted:
		c.summary.Converted++
	case OutcomePassthrough:
		c.summary.Passthrough++
	case OutcomeSkipped:
		c.summary.Skipped++
	case OutcomeFailed:
		c.summary.Failed++
		if err != nil {
			c.summary.LastError = err
		}
	}
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Summary {
	c.mu.Lock()
	summary := c.summary
	c.mu.Unlock()
	return summary
}
