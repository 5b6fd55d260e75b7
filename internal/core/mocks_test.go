package core

import (
	"context"
	"errors"

	"github.com/jyang234/dayplan/internal/storage"
	"github.com/jyang234/dayplan/internal/todoist"
)

// Test errors
var (
	ErrMockList   = errors.New("list error")
	ErrMockUpdate = errors.New("update error")
	ErrMockClose  = errors.New("close error")
	ErrMockInsert = errors.New("insert error")
)

// MockGateway implements TaskGateway for testing
type MockGateway struct {
	ListProjectsFunc  func(ctx context.Context) ([]todoist.Project, error)
	ListTasksFunc     func(ctx context.Context, filter todoist.TaskFilter) ([]todoist.Task, error)
	ListLabelsFunc    func(ctx context.Context) ([]todoist.Label, error)
	CreateTaskFunc    func(ctx context.Context, req todoist.CreateTaskRequest) (*todoist.Task, error)
	UpdateTaskFunc    func(ctx context.Context, taskID string, req todoist.UpdateTaskRequest) (*todoist.Task, error)
	CloseTaskFunc     func(ctx context.Context, taskID string) error
	CreateCommentFunc func(ctx context.Context, req todoist.CreateCommentRequest) (*todoist.Comment, error)

	ListTasksCalls     int
	UpdateTaskCalls    int
	CloseTaskCalls     int
	CreateCommentCalls int
}

func (m *MockGateway) ListProjects(ctx context.Context) ([]todoist.Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return nil, nil
}

func (m *MockGateway) ListTasks(ctx context.Context, filter todoist.TaskFilter) ([]todoist.Task, error) {
	m.ListTasksCalls++
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockGateway) ListLabels(ctx context.Context) ([]todoist.Label, error) {
	if m.ListLabelsFunc != nil {
		return m.ListLabelsFunc(ctx)
	}
	return nil, nil
}

func (m *MockGateway) CreateTask(ctx context.Context, req todoist.CreateTaskRequest) (*todoist.Task, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, req)
	}
	return &todoist.Task{ID: "created"}, nil
}

func (m *MockGateway) UpdateTask(ctx context.Context, taskID string, req todoist.UpdateTaskRequest) (*todoist.Task, error) {
	m.UpdateTaskCalls++
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, taskID, req)
	}
	return &todoist.Task{ID: taskID}, nil
}

func (m *MockGateway) CloseTask(ctx context.Context, taskID string) error {
	m.CloseTaskCalls++
	if m.CloseTaskFunc != nil {
		return m.CloseTaskFunc(ctx, taskID)
	}
	return nil
}

func (m *MockGateway) CreateComment(ctx context.Context, req todoist.CreateCommentRequest) (*todoist.Comment, error) {
	m.CreateCommentCalls++
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, req)
	}
	return &todoist.Comment{ID: "comment"}, nil
}

// MockStore implements AllocationStorage in memory for testing
type MockStore struct {
	UpsertAllocationFunc func(rec *storage.AllocationRecord) (*storage.AllocationRecord, error)
	GetAllocationFunc    func(userID, date string) (*storage.AllocationRecord, error)
	InsertTimeEntryFunc  func(rec *storage.TimeEntryRecord) error
	ListTimeEntriesFunc  func(userID, date string) ([]storage.TimeEntryRecord, error)

	Inserted []*storage.TimeEntryRecord
	Upserted []*storage.AllocationRecord
}

func (m *MockStore) UpsertAllocation(rec *storage.AllocationRecord) (*storage.AllocationRecord, error) {
	m.Upserted = append(m.Upserted, rec)
	if m.UpsertAllocationFunc != nil {
		return m.UpsertAllocationFunc(rec)
	}
	out := *rec
	if out.ID == "" {
		out.ID = "alloc-1"
	}
	return &out, nil
}

func (m *MockStore) GetAllocation(userID, date string) (*storage.AllocationRecord, error) {
	if m.GetAllocationFunc != nil {
		return m.GetAllocationFunc(userID, date)
	}
	return nil, nil
}

func (m *MockStore) InsertTimeEntry(rec *storage.TimeEntryRecord) error {
	if m.InsertTimeEntryFunc != nil {
		if err := m.InsertTimeEntryFunc(rec); err != nil {
			return err
		}
	}
	m.Inserted = append(m.Inserted, rec)
	return nil
}

func (m *MockStore) ListTimeEntries(userID, date string) ([]storage.TimeEntryRecord, error) {
	if m.ListTimeEntriesFunc != nil {
		return m.ListTimeEntriesFunc(userID, date)
	}
	return nil, nil
}

// newTestPlanner builds a planner over fresh mocks.
func newTestPlanner() (*Planner, *MockGateway, *MockStore) {
	gateway := &MockGateway{}
	store := &MockStore{}
	p := NewPlannerWithDeps(PlannerDeps{
		Config:  Config{},
		Gateway: gateway,
		Store:   store,
	})
	return p, gateway, store
}
