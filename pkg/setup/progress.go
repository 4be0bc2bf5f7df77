package setup

import "time"

// Stage represents a setup task stage.
type Stage string

const (
	StageValidating Stage = "validating"
	StageRunning    Stage = "running"
	StageComplete   Stage = "complete"
	StageError      Stage = "error"
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// ProgressEvent represents a setup progress update.
type ProgressEvent struct {
	Stage     Stage     // Current stage
	Message   string    // Human-readable message
	Command   string    // Command being executed, if any
	IsError   bool      // True if this is an error message
	Timestamp time.Time // When this event occurred
}

// ProgressCallback is called with progress updates during a task.
type ProgressCallback func(ProgressEvent)

// NoOpProgress is a progress callback that does nothing.
func NoOpProgress(_ ProgressEvent) {}

// ProgressTracker collects progress events for later review.
type ProgressTracker struct {
	events []ProgressEvent
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{events: make([]ProgressEvent, 0)}
}

// Callback returns a ProgressCallback that records events.
func (t *ProgressTracker) Callback() ProgressCallback {
	return func(e ProgressEvent) {
		t.events = append(t.events, e)
	}
}

// Events returns all recorded events.
func (t *ProgressTracker) Events() []ProgressEvent {
	return t.events
}

// HasErrors returns true if any error events were recorded.
func (t *ProgressTracker) HasErrors() bool {
	for _, e := range t.events {
		if e.IsError {
			return true
		}
	}
	return false
}
