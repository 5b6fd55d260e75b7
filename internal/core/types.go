package core

import (
	"errors"
	"time"
)

// ErrValidation marks request errors the caller can fix, as opposed to
// gateway or storage failures.
var ErrValidation = errors.New("invalid request")

// Category is one of the three kanban columns, derived from task labels.
// It is never stored remotely as its own field; the labels are the only
// source of truth.
type Category string

const (
	CategoryPuttingOff Category = "putting-off"
	CategoryStrategy   Category = "strategy"
	CategoryTimely     Category = "timely"
)

// CategoryLabels are the reserved labels encoding a task's category.
var CategoryLabels = []string{"@putting-off", "@strategy", "@timely"}

// Label returns the reserved label encoding this category.
func (c Category) Label() string {
	return "@" + string(c)
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPuttingOff, CategoryStrategy, CategoryTimely:
		return true
	}
	return false
}

// DefaultUserID is the fixed single-user identity used until real accounts
// exist.
const DefaultUserID = "demo-user"

// ProjectAllocation is one project's share of a day.
type ProjectAllocation struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Percentage  int     `json:"percentage"`
	Hours       float64 `json:"hours"`
}

// DailyAllocation is a day's percentage split across selected projects.
// At most one exists per user per day.
type DailyAllocation struct {
	ID                 string              `json:"id"`
	UserID             string              `json:"user_id"`
	Date               string              `json:"date"`
	TotalWorkHours     float64             `json:"total_work_hours"`
	ProjectAllocations []ProjectAllocation `json:"project_allocations"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// TimeEntry is an append-only record created once per completion event.
type TimeEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            string    `json:"date"`
	TaskID          string    `json:"task_id"`
	ProjectID       string    `json:"project_id,omitempty"`
	ProjectName     string    `json:"project_name,omitempty"`
	TaskName        string    `json:"task_name"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        Category  `json:"category,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CompletionRequest carries the user-confirmed fields of the completion
// workflow. DurationMinutes is pre-filled client-side from the timer but
// free-form overridable.
type CompletionRequest struct {
	TaskID          string `json:"task_id"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes,omitempty"`
}

// Config holds planner configuration.
type Config struct {
	TodoistToken string
	DBPath       string

	// TaskCacheTTL bounds the staleness window of the local task list.
	// Zero means the default of 5 minutes.
	TaskCacheTTL time.Duration

	// DefaultWorkHours pre-fills the total-hours field of a new allocation.
	DefaultWorkHours float64

	// ColorOverrides remaps remote color names to hex values.
	ColorOverrides map[string]string
}
