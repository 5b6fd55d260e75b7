package core

import (
	"context"

	"github.com/jyang234/dayplan/internal/storage"
	"github.com/jyang234/dayplan/internal/todoist"
)

// TaskGateway is the slice of the remote task API the planner uses.
// *todoist.Client satisfies it; tests substitute mocks.
type TaskGateway interface {
	ListProjects(ctx context.Context) ([]todoist.Project, error)
	ListTasks(ctx context.Context, filter todoist.TaskFilter) ([]todoist.Task, error)
	ListLabels(ctx context.Context) ([]todoist.Label, error)
	CreateTask(ctx context.Context, req todoist.CreateTaskRequest) (*todoist.Task, error)
	UpdateTask(ctx context.Context, taskID string, req todoist.UpdateTaskRequest) (*todoist.Task, error)
	CloseTask(ctx context.Context, taskID string) error
	CreateComment(ctx context.Context, req todoist.CreateCommentRequest) (*todoist.Comment, error)
}

// AllocationStorage is the persistence boundary for allocations and time
// entries. *storage.Store satisfies it.
type AllocationStorage interface {
	UpsertAllocation(rec *storage.AllocationRecord) (*storage.AllocationRecord, error)
	GetAllocation(userID, date string) (*storage.AllocationRecord, error)
	InsertTimeEntry(rec *storage.TimeEntryRecord) error
	ListTimeEntries(userID, date string) ([]storage.TimeEntryRecord, error)
}
