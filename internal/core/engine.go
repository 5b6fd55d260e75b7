package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jyang234/dayplan/internal/storage"
	"github.com/jyang234/dayplan/internal/todoist"
)

const defaultTaskCacheTTL = 5 * time.Minute

// Planner orchestrates the dashboard: the remote task gateway, the
// allocation/time-entry store, the kanban board and the timer.
type Planner struct {
	config  Config
	gateway TaskGateway
	store   AllocationStorage
	board   *Board
	timer   *Timer
	palette *todoist.Palette

	cacheMu   sync.Mutex
	fetchedAt time.Time
}

// PlannerDeps holds dependencies for constructing a Planner.
type PlannerDeps struct {
	Config  Config
	Gateway TaskGateway
	Store   AllocationStorage
}

// NewPlanner creates a planner wired to the real remote API and SQLite
// store. A missing API credential is a fatal configuration error.
func NewPlanner(config Config) (*Planner, error) {
	gateway, err := todoist.NewClient(config.TodoistToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create todoist client: %w", err)
	}

	store, err := storage.NewStore(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	p := newPlanner(config, gateway, store)
	return p, nil
}

// NewPlannerWithDeps creates a planner with explicit dependencies (for testing).
func NewPlannerWithDeps(deps PlannerDeps) *Planner {
	return newPlanner(deps.Config, deps.Gateway, deps.Store)
}

func newPlanner(config Config, gateway TaskGateway, store AllocationStorage) *Planner {
	if config.TaskCacheTTL <= 0 {
		config.TaskCacheTTL = defaultTaskCacheTTL
	}
	return &Planner{
		config:  config,
		gateway: gateway,
		store:   store,
		board:   NewBoard(gateway),
		timer:   NewTimer(),
		palette: todoist.NewPalette(config.ColorOverrides),
	}
}

// Close releases the store when it owns one.
func (p *Planner) Close() error {
	if closer, ok := p.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Board returns the kanban board over the cached task list.
func (p *Planner) Board() *Board {
	return p.board
}

// Timer returns the process-wide timer coordinator.
func (p *Planner) Timer() *Timer {
	return p.timer
}

// Palette returns the color palette with local overrides applied.
func (p *Planner) Palette() *todoist.Palette {
	return p.palette
}

// ==================== Remote reads ====================

// Projects lists the remote projects.
func (p *Planner) Projects(ctx context.Context) ([]todoist.Project, error) {
	return p.gateway.ListProjects(ctx)
}

// Labels lists the remote labels.
func (p *Planner) Labels(ctx context.Context) ([]todoist.Label, error) {
	return p.gateway.ListLabels(ctx)
}

// Tasks returns the task list. The unfiltered list is served from the
// board cache within the staleness window; filtered queries always pass
// through to the gateway.
func (p *Planner) Tasks(ctx context.Context, filter todoist.TaskFilter) ([]todoist.Task, error) {
	if filter != (todoist.TaskFilter{}) {
		return p.gateway.ListTasks(ctx, filter)
	}

	p.cacheMu.Lock()
	fresh := !p.fetchedAt.IsZero() && time.Since(p.fetchedAt) < p.config.TaskCacheTTL
	p.cacheMu.Unlock()

	if fresh {
		return p.board.Tasks(), nil
	}
	return p.RefreshTasks(ctx)
}

// RefreshTasks fetches the full task list and resets the board cache.
func (p *Planner) RefreshTasks(ctx context.Context) ([]todoist.Task, error) {
	tasks, err := p.gateway.ListTasks(ctx, todoist.TaskFilter{})
	if err != nil {
		return nil, err
	}

	p.board.SetTasks(tasks)
	p.cacheMu.Lock()
	p.fetchedAt = time.Now()
	p.cacheMu.Unlock()
	return p.board.Tasks(), nil
}

// InvalidateTasks forces the next Tasks call through to the gateway.
func (p *Planner) InvalidateTasks() {
	p.cacheMu.Lock()
	p.fetchedAt = time.Time{}
	p.cacheMu.Unlock()
}

// StartAutoRefresh schedules a periodic cache refresh. The returned cron
// keeps running until stopped by the caller.
func (p *Planner) StartAutoRefresh(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := p.RefreshTasks(context.Background()); err != nil {
			log.Printf("task cache refresh failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}

// ==================== Remote writes ====================

// CreateTask creates a task remotely and invalidates the cache.
func (p *Planner) CreateTask(ctx context.Context, req todoist.CreateTaskRequest) (*todoist.Task, error) {
	task, err := p.gateway.CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}
	p.InvalidateTasks()
	return task, nil
}

// UpdateTask applies a partial update remotely and invalidates the cache.
func (p *Planner) UpdateTask(ctx context.Context, taskID string, req todoist.UpdateTaskRequest) (*todoist.Task, error) {
	task, err := p.gateway.UpdateTask(ctx, taskID, req)
	if err != nil {
		return nil, err
	}
	p.InvalidateTasks()
	return task, nil
}

// UpdateLabels rewrites a task's label set through the board's optimistic
// two-phase path: local rewrite first, rollback on remote failure.
func (p *Planner) UpdateLabels(ctx context.Context, taskID string, labels []string) error {
	return p.board.UpdateLabels(ctx, taskID, labels)
}

// ==================== Allocations ====================

// SaveAllocation validates and upserts a day's allocation. Percentages
// must sum to 100 over 1 to 6 projects; hours are recomputed server-side
// so persisted values always match the stored percentages.
func (p *Planner) SaveAllocation(alloc *DailyAllocation) (*DailyAllocation, error) {
	if alloc.Date == "" {
		return nil, fmt.Errorf("%w: allocation date is required", ErrValidation)
	}
	if alloc.TotalWorkHours <= 0 {
		return nil, fmt.Errorf("%w: total work hours must be positive", ErrValidation)
	}
	if err := ValidateAllocations(alloc.ProjectAllocations); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if alloc.UserID == "" {
		alloc.UserID = DefaultUserID
	}
	for i := range alloc.ProjectAllocations {
		a := &alloc.ProjectAllocations[i]
		a.Hours = round2(float64(a.Percentage) / 100 * alloc.TotalWorkHours)
	}

	allocationsJSON, err := json.Marshal(alloc.ProjectAllocations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal allocations: %w", err)
	}

	saved, err := p.store.UpsertAllocation(&storage.AllocationRecord{
		ID:                 alloc.ID,
		UserID:             alloc.UserID,
		Date:               alloc.Date,
		TotalWorkHours:     alloc.TotalWorkHours,
		ProjectAllocations: allocationsJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save allocation: %w", err)
	}
	return allocationFromRecord(saved)
}

// Allocation returns the allocation for a date, nil when none exists.
func (p *Planner) Allocation(userID, date string) (*DailyAllocation, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	rec, err := p.store.GetAllocation(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocation: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return allocationFromRecord(rec)
}

func allocationFromRecord(rec *storage.AllocationRecord) (*DailyAllocation, error) {
	var allocations []ProjectAllocation
	if len(rec.ProjectAllocations) > 0 {
		if err := json.Unmarshal(rec.ProjectAllocations, &allocations); err != nil {
			return nil, fmt.Errorf("corrupt allocation row %s: %w", rec.ID, err)
		}
	}
	return &DailyAllocation{
		ID:                 rec.ID,
		UserID:             rec.UserID,
		Date:               rec.Date,
		TotalWorkHours:     rec.TotalWorkHours,
		ProjectAllocations: allocations,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}, nil
}

// ==================== Time entries ====================

// RecordTimeEntry validates and appends a time entry.
func (p *Planner) RecordTimeEntry(entry *TimeEntry) error {
	if entry.Date == "" || entry.TaskID == "" || entry.TaskName == "" {
		return fmt.Errorf("%w: date, task_id and task_name are required", ErrValidation)
	}
	if entry.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration_minutes must be positive", ErrValidation)
	}
	if entry.UserID == "" {
		entry.UserID = DefaultUserID
	}

	if err := p.store.InsertTimeEntry(timeEntryToRecord(entry)); err != nil {
		return fmt.Errorf("failed to save time entry: %w", err)
	}
	return nil
}

// TimeEntries lists a user's time entries, optionally scoped to one date.
func (p *Planner) TimeEntries(userID, date string) ([]TimeEntry, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	records, err := p.store.ListTimeEntries(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	entries := make([]TimeEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, TimeEntry{
			ID:              rec.ID,
			UserID:          rec.UserID,
			Date:            rec.Date,
			TaskID:          rec.TaskID,
			ProjectID:       rec.ProjectID,
			ProjectName:     rec.ProjectName,
			TaskName:        rec.TaskName,
			DurationMinutes: rec.DurationMinutes,
			Category:        Category(rec.Category),
			Notes:           rec.Notes,
			CreatedAt:       rec.CreatedAt,
		})
	}
	return entries, nil
}

func timeEntryToRecord(entry *TimeEntry) *storage.TimeEntryRecord {
	return &storage.TimeEntryRecord{
		ID:              entry.ID,
		UserID:          entry.UserID,
		Date:            entry.Date,
		TaskID:          entry.TaskID,
		ProjectID:       entry.ProjectID,
		ProjectName:     entry.ProjectName,
		TaskName:        entry.TaskName,
		DurationMinutes: entry.DurationMinutes,
		Category:        string(entry.Category),
		Notes:           entry.Notes,
	}
}

// ==================== Completion workflow ====================

// CompleteTask runs the completion workflow: close the task remotely,
// append the time entry, stop the timer if it was tracking this task, and
// invalidate the task cache. The remote close runs first so a failed close
// never leaves a time entry for a task that stayed open. There is no
// compensating transaction: a failed local write after a successful close
// is surfaced as an error the user must reconcile.
func (p *Planner) CompleteTask(ctx context.Context, req CompletionRequest) error {
	if req.TaskID == "" {
		return fmt.Errorf("%w: task_id is required", ErrValidation)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration_minutes must be positive", ErrValidation)
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	entry := &TimeEntry{
		UserID:          DefaultUserID,
		Date:            req.Date,
		TaskID:          req.TaskID,
		TaskName:        req.TaskID,
		DurationMinutes: req.DurationMinutes,
		Category:        CategoryTimely,
		Notes:           req.Notes,
	}
	if task, ok := p.board.Task(req.TaskID); ok {
		entry.TaskName = task.Content
		entry.ProjectID = task.ProjectID
		entry.Category = Categorize(task.Labels)
	}

	// Notes also go to the remote side as a task comment, so they survive
	// outside the local database. A failed comment never blocks completion.
	if req.Notes != "" {
		if _, err := p.gateway.CreateComment(ctx, todoist.CreateCommentRequest{
			TaskID:  req.TaskID,
			Content: req.Notes,
		}); err != nil {
			log.Printf("completion comment for task %s failed: %v", req.TaskID, err)
		}
	}

	if err := p.gateway.CloseTask(ctx, req.TaskID); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	if err := p.store.InsertTimeEntry(timeEntryToRecord(entry)); err != nil {
		return fmt.Errorf("task closed but time entry not recorded: %w", err)
	}

	if p.timer.IsActive(req.TaskID) {
		p.timer.Stop()
	}
	p.InvalidateTasks()
	return nil
}
