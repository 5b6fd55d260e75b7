package core

import (
	"sync"
	"time"
)

// Timer is the process-wide single-timer coordinator: at most one task has
// an active timer, and the last Start always wins. It is the only mutable
// state shared across requests, so it carries its own lock. Elapsed time is
// display-only; the authoritative duration of a completion is whatever the
// user confirms.
type Timer struct {
	mu        sync.Mutex
	taskID    string
	startedAt time.Time
	now       func() time.Time
}

// NewTimer returns an idle timer.
func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Start begins timing a task, unconditionally replacing any running timer.
func (t *Timer) Start(taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.taskID = taskID
	t.startedAt = t.now()
}

// Stop clears the timer.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.taskID = ""
	t.startedAt = time.Time{}
}

// IsActive reports whether the timer is currently tracking taskID.
func (t *Timer) IsActive(taskID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.taskID != "" && t.taskID == taskID
}

// Active returns the tracked task ID, or "" and false when idle.
func (t *Timer) Active() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.taskID, t.taskID != ""
}

// ElapsedSeconds returns whole seconds since the timer started, 0 when idle.
func (t *Timer) ElapsedSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.startedAt.IsZero() {
		return 0
	}
	return int(t.now().Sub(t.startedAt) / time.Second)
}
