package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jyang234/dayplan/internal/todoist"
)

// Board holds the local copy of the task list that the kanban view renders.
// Category moves apply optimistically here first, then sync to the remote
// API; a failed sync applies the recorded inverse so the local copy reverts
// to exactly its pre-move labels.
type Board struct {
	mu      sync.Mutex
	tasks   []todoist.Task
	gateway TaskGateway
}

// ErrTaskNotFound marks a drop or label update naming a task that is not
// on the board.
var ErrTaskNotFound = errors.New("task not on board")

// NewBoard creates a board syncing through the given gateway.
func NewBoard(gateway TaskGateway) *Board {
	return &Board{gateway: gateway}
}

// SetTasks replaces the board's task list.
func (b *Board) SetTasks(tasks []todoist.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = make([]todoist.Task, len(tasks))
	copy(b.tasks, tasks)
}

// Tasks returns a copy of the board's current task list.
func (b *Board) Tasks() []todoist.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]todoist.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Task returns a copy of one board task by ID.
func (b *Board) Task(taskID string) (todoist.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx := b.indexOf(taskID); idx >= 0 {
		return b.tasks[idx], true
	}
	return todoist.Task{}, false
}

// labelChange is one tentative label rewrite and its inverse.
type labelChange struct {
	taskID string
	prev   []string
	next   []string
}

// MoveToColumn handles a drop onto a category column: strip the old
// category labels, add the new one, apply locally, then sync. On remote
// failure the local labels revert and the upstream error returns to the
// caller; there is no automatic retry.
func (b *Board) MoveToColumn(ctx context.Context, taskID string, cat Category) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q", cat)
	}

	b.mu.Lock()
	idx := b.indexOf(taskID)
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	next := ApplyCategory(b.tasks[idx].Labels, cat)
	b.mu.Unlock()

	return b.UpdateLabels(ctx, taskID, next)
}

// UpdateLabels applies an explicit label set as a two-phase operation:
// tentative local rewrite, remote sync, inverse rewrite on failure.
func (b *Board) UpdateLabels(ctx context.Context, taskID string, labels []string) error {
	b.mu.Lock()
	idx := b.indexOf(taskID)
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}

	change := labelChange{
		taskID: taskID,
		prev:   b.tasks[idx].Labels,
		next:   labels,
	}
	b.tasks[idx].Labels = change.next
	b.mu.Unlock()

	if _, err := b.gateway.UpdateTask(ctx, taskID, todoist.UpdateTaskRequest{Labels: &labels}); err != nil {
		b.revert(change)
		return err
	}
	return nil
}

// revert applies the inverse of a tentative label change.
func (b *Board) revert(change labelChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx := b.indexOf(change.taskID); idx >= 0 {
		b.tasks[idx].Labels = change.prev
	}
}

// Reorder handles a drop onto another task in the same column: remove the
// source and insert it at the target's index. Purely local and ephemeral —
// never synced or persisted. Dropping a task onto itself or onto an unknown
// target is a no-op.
func (b *Board) Reorder(activeID, overID string) {
	if activeID == overID {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	oldIdx := b.indexOf(activeID)
	newIdx := b.indexOf(overID)
	if oldIdx < 0 || newIdx < 0 {
		return
	}

	task := b.tasks[oldIdx]
	b.tasks = append(b.tasks[:oldIdx], b.tasks[oldIdx+1:]...)
	b.tasks = append(b.tasks[:newIdx], append([]todoist.Task{task}, b.tasks[newIdx:]...)...)
}

// HandleDrop dispatches a drag-end event. over identifies the drop target
// (a task ID, empty when released outside any target); column is set when
// the drop landed on a category column rather than a task.
func (b *Board) HandleDrop(ctx context.Context, activeID, overID string, column Category) error {
	if column != "" {
		return b.MoveToColumn(ctx, activeID, column)
	}
	if overID == "" {
		return nil
	}
	b.Reorder(activeID, overID)
	return nil
}

// caller must hold b.mu
func (b *Board) indexOf(taskID string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}
