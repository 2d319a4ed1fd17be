package state

import (
	"fmt"
	"sync"
)

// Stage identifies one step of the article pipeline.
type Stage string

const (
	StageSearch  Stage = "search"
	StageDraft   Stage = "draft"
	StageImprove Stage = "improve"
)

// Stages in pipeline order.
var Stages = []Stage{StageSearch, StageDraft, StageImprove}

// StageStatus reports what happened to a stage during a run.
type StageStatus string

const (
	StageSucceeded StageStatus = "succeeded"
	StageSkipped   StageStatus = "skipped"
	StageFailed    StageStatus = "failed"
)

// StageResult is the outcome of a single stage.
type StageResult struct {
	Stage  Stage       `json:"stage"`
	Status StageStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// StageTracker records stage outcomes as tools report them, so the final
// aggregator can say which stages actually ran instead of guessing from
// field emptiness.
type StageTracker struct {
	mu       sync.Mutex
	outcomes map[Stage]StageResult
}

// NewStageTracker creates an empty tracker.
func NewStageTracker() *StageTracker {
	return &StageTracker{outcomes: make(map[Stage]StageResult, len(Stages))}
}

// MarkSucceeded records a successful stage.
func (t *StageTracker) MarkSucceeded(stage Stage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes[stage] = StageResult{Stage: stage, Status: StageSucceeded}
}

// MarkFailed records a failed stage with a reason.
func (t *StageTracker) MarkFailed(stage Stage, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes[stage] = StageResult{Stage: stage, Status: StageFailed, Reason: reason}
}

// Report returns all stage results in pipeline order. Stages with no
// recorded outcome are reported as skipped.
func (t *StageTracker) Report() []StageResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	report := make([]StageResult, 0, len(Stages))
	for _, stage := range Stages {
		if result, ok := t.outcomes[stage]; ok {
			report = append(report, result)
		} else {
			report = append(report, StageResult{Stage: stage, Status: StageSkipped})
		}
	}
	return report
}

// Degraded reports whether output came from an earlier stage because a later
// stage did not succeed.
func (t *StageTracker) Degraded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	sawGap := false
	for i := len(Stages) - 1; i >= 0; i-- {
		result, ok := t.outcomes[Stages[i]]
		succeeded := ok && result.Status == StageSucceeded
		if succeeded && sawGap {
			return true
		}
		if !succeeded {
			sawGap = true
		}
	}
	return false
}

func (r StageResult) String() string {
	if r.Reason != "" {
		return fmt.Sprintf("%s=%s (%s)", r.Stage, r.Status, r.Reason)
	}
	return fmt.Sprintf("%s=%s", r.Stage, r.Status)
}
