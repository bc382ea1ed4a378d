package pipeline

import (
	"sync"

	"github.com/rotisserie/eris"

	"github.com/instalily/leadgen/internal/model"
)

// ErrRunInProgress is returned by Begin when a run is already active.
var ErrRunInProgress = eris.New("pipeline: a run is already in progress")

// Tracker holds the state of the current (or most recent) pipeline run.
// All methods are safe for concurrent use; the status endpoint serves
// Snapshot while a run mutates the state from its own goroutine.
type Tracker struct {
	mu    sync.Mutex
	state model.RunState
}

// NewTracker returns a Tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{state: model.RunState{Status: model.RunStatusIdle}}
}

// Begin transitions the tracker to running. Only one run may be active at a
// time: a second Begin before Complete or Fail returns ErrRunInProgress.
func (t *Tracker) Begin(task string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Status == model.RunStatusRunning {
		return ErrRunInProgress
	}
	t.state = model.RunState{
		CurrentTask: task,
		Status:      model.RunStatusRunning,
	}
	return nil
}

// Progress records the current stage of an active run.
func (t *Tracker) Progress(task string, progress int, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.CurrentTask = task
	t.state.Progress = progress
	t.state.Message = message
}

// Complete marks the run finished and attaches its results.
func (t *Tracker) Complete(results model.RunResults) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = model.RunState{
		CurrentTask: "Lead generation complete",
		Status:      model.RunStatusCompleted,
		Progress:    100,
		Results:     &results,
	}
}

// Fail marks the run as errored with a human-readable message.
func (t *Tracker) Fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Status = model.RunStatusError
	t.state.Message = message
}

// Reset returns the tracker to idle, discarding any previous results.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = model.RunState{Status: model.RunStatusIdle}
}

// Snapshot returns a copy of the current run state.
func (t *Tracker) Snapshot() model.RunState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
