package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jyang234/dayplan/internal/auth"
	"github.com/jyang234/dayplan/internal/core"
	"github.com/jyang234/dayplan/internal/todoist"
)

// PlannerService is the slice of the planning engine the handlers need.
// *core.Planner satisfies it.
type PlannerService interface {
	Projects(ctx context.Context) ([]todoist.Project, error)
	Labels(ctx context.Context) ([]todoist.Label, error)
	Tasks(ctx context.Context, filter todoist.TaskFilter) ([]todoist.Task, error)
	CreateTask(ctx context.Context, req todoist.CreateTaskRequest) (*todoist.Task, error)
	UpdateTask(ctx context.Context, taskID string, req todoist.UpdateTaskRequest) (*todoist.Task, error)
	UpdateLabels(ctx context.Context, taskID string, labels []string) error
	CompleteTask(ctx context.Context, req core.CompletionRequest) error
	SaveAllocation(alloc *core.DailyAllocation) (*core.DailyAllocation, error)
	Allocation(userID, date string) (*core.DailyAllocation, error)
	RecordTimeEntry(entry *core.TimeEntry) error
	TimeEntries(userID, date string) ([]core.TimeEntry, error)
	Timer() *core.Timer
	Palette() *todoist.Palette
}

// Server is the dayplan web server
type Server struct {
	planner  PlannerService
	sessions *auth.Sessions
	router   *gin.Engine
}

// NewServer creates a new web server
func NewServer(planner PlannerService, sessions *auth.Sessions) *Server {
	router := gin.Default()

	s := &Server{
		planner:  planner,
		sessions: sessions,
		router:   router,
	}

	s.registerRoutes(router)
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/login", s.handleLoginPage)
	router.POST("/auth/login", s.handleLogin)

	api := router.Group("/api", s.requireSession())
	{
		api.GET("/allocations", s.handleGetAllocation)
		api.POST("/allocations", s.handleSaveAllocation)

		api.GET("/time-entries", s.handleListTimeEntries)
		api.POST("/time-entries", s.handleRecordTimeEntry)

		api.GET("/todoist/projects", s.handleProjects)
		api.GET("/todoist/tasks", s.handleTasks)
		api.GET("/todoist/labels", s.handleLabels)
		api.POST("/todoist/create-task", s.handleCreateTask)
		api.POST("/todoist/update-task", s.handleUpdateTask)
		api.POST("/todoist/update-labels", s.handleUpdateLabels)
		api.POST("/todoist/complete", s.handleCompleteTask)

		api.GET("/timer", s.handleTimerStatus)
		api.POST("/timer/start", s.handleTimerStart)
		api.POST("/timer/stop", s.handleTimerStop)
	}
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
