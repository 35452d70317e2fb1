package usage

import (
	"sort"
	"sync"
	"time"
)

// Call describes one model call.
type Call struct {
	Operation        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Failed           bool
}

// OperationStats aggregates the calls of one operation.
type OperationStats struct {
	Operation        string `json:"operation"`
	Calls            int64  `json:"calls"`
	Failures         int64  `json:"failures"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
}

// Report is a point-in-time view of the tracker. It never holds request content.
type Report struct {
	Model      string           `json:"model"`
	Since      time.Time        `json:"since"`
	Until      time.Time        `json:"until"`
	Operations []OperationStats `json:"operations"`
}

// TotalCalls sums calls across operations.
func (r Report) TotalCalls() int64 {
	var total int64
	for _, op := range r.Operations {
		total += op.Calls
	}
	return total
}

// Tracker aggregates model usage in memory. Safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	model string
	since time.Time
	ops   map[string]*OperationStats
	now   func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	t := &Tracker{now: time.Now}
	t.reset()
	return t
}

// Record adds one call.
func (t *Tracker) Record(call Call) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if call.Model != "" {
		t.model = call.Model
	}

	stats, ok := t.ops[call.Operation]
	if !ok {
		stats = &OperationStats{Operation: call.Operation}
		t.ops[call.Operation] = stats
	}
	stats.Calls++
	if call.Failed {
		stats.Failures++
	}
	stats.PromptTokens += int64(call.PromptTokens)
	stats.CompletionTokens += int64(call.CompletionTokens)
}

// Snapshot returns the current counters sorted by operation name.
func (t *Tracker) Snapshot() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// Flush returns the current counters and starts a new period.
func (t *Tracker) Flush() Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	report := t.snapshot()
	t.reset()
	return report
}

func (t *Tracker) snapshot() Report {
	report := Report{
		Model:      t.model,
		Since:      t.since,
		Until:      t.now(),
		Operations: make([]OperationStats, 0, len(t.ops)),
	}
	for _, stats := range t.ops {
		report.Operations = append(report.Operations, *stats)
	}
	sort.Slice(report.Operations, func(i, j int) bool {
		return report.Operations[i].Operation < report.Operations[j].Operation
	})
	return report
}

func (t *Tracker) reset() {
	t.ops = make(map[string]*OperationStats)
	t.since = t.now()
}
