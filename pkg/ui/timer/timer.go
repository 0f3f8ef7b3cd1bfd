// Package timer tracks wall-clock durations for command activities.
package timer

import "time"

// Timer measures the total runtime of a command and the runtime of the
// current activity stage.
type Timer interface {
	// Start begins (or restarts) overall timing.
	Start()
	// NewStage marks the beginning of a new activity stage.
	NewStage()
	// GetTiming returns the elapsed total and current-stage durations.
	GetTiming() (total, stage time.Duration)
}

type clockTimer struct {
	start      time.Time
	stageStart time.Time
}

// New returns a started Timer backed by the wall clock.
func New() Timer {
	now := time.Now()

	return &clockTimer{start: now, stageStart: now}
}

func (t *clockTimer) Start() {
	now := time.Now()
	t.start = now
	t.stageStart = now
}

func (t *clockTimer) NewStage() {
	t.stageStart = time.Now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	now := time.Now()

	return now.Sub(t.start), now.Sub(t.stageStart)
}
