package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jyang234/dayplan/internal/auth"
	"github.com/jyang234/dayplan/internal/core"
	"github.com/jyang234/dayplan/internal/todoist"
)

const loginPage = `<!DOCTYPE html>
<html>
<head><title>dayplan</title></head>
<body>
<form method="post" action="/auth/login">
  <input type="password" name="password" placeholder="password" autofocus>
  <button type="submit">Sign in</button>
</form>
</body>
</html>`

// statusFor maps an engine error to an HTTP status. Upstream Todoist
// failures keep their original status code.
func statusFor(err error) int {
	var apiErr *todoist.APIError
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// Auth handlers

func (s *Server) handleLoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if !s.sessions.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "invalid password",
		})
		return
	}

	marker := s.sessions.Issue()
	c.SetCookie(auth.CookieName, marker, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Allocation handlers

func (s *Server) handleGetAllocation(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "date parameter required",
		})
		return
	}

	alloc, err := s.planner.Allocation(c.Query("user_id"), date)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    alloc,
	})
}

func (s *Server) handleSaveAllocation(c *gin.Context) {
	var alloc core.DailyAllocation
	if err := c.BindJSON(&alloc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	saved, err := s.planner.SaveAllocation(&alloc)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    saved,
	})
}

// Time entry handlers

func (s *Server) handleListTimeEntries(c *gin.Context) {
	entries, err := s.planner.TimeEntries(c.Query("user_id"), c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleRecordTimeEntry(c *gin.Context) {
	var entry core.TimeEntry
	if err := c.BindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := s.planner.RecordTimeEntry(&entry); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      entry.ID,
	})
}

// Todoist handlers

// projectView augments a remote project with the resolved hex color so
// the dashboard never needs the color-name table client-side.
type projectView struct {
	todoist.Project
	ColorHex string `json:"color_hex"`
}

func (s *Server) handleProjects(c *gin.Context) {
	projects, err := s.planner.Projects(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	palette := s.planner.Palette()
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView{
			Project:  p,
			ColorHex: palette.Hex(p.Color),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": views,
		"count":    len(views),
	})
}

func (s *Server) handleTasks(c *gin.Context) {
	filter := todoist.TaskFilter{
		ProjectID: c.Query("project_id"),
		SectionID: c.Query("section_id"),
		Label:     c.Query("label"),
		Filter:    c.Query("filter"),
	}

	tasks, err := s.planner.Tasks(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleLabels(c *gin.Context) {
	labels, err := s.planner.Labels(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"labels":  labels,
		"count":   len(labels),
	})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req todoist.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "content is required",
		})
		return
	}

	task, err := s.planner.CreateTask(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"task":    task,
	})
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req struct {
		TaskID string `json:"task_id"`
		todoist.UpdateTaskRequest
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "task_id is required",
		})
		return
	}

	task, err := s.planner.UpdateTask(c.Request.Context(), req.TaskID, req.UpdateTaskRequest)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    task,
	})
}

func (s *Server) handleUpdateLabels(c *gin.Context) {
	var req struct {
		TaskID string   `json:"task_id"`
		Labels []string `json:"labels"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "task_id is required",
		})
		return
	}

	if err := s.planner.UpdateLabels(c.Request.Context(), req.TaskID, req.Labels); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	var req core.CompletionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := s.planner.CompleteTask(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Timer handlers

func (s *Server) handleTimerStart(c *gin.Context) {
	var req struct {
		TaskID string `json:"task_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "task_id is required",
		})
		return
	}

	s.planner.Timer().Start(req.TaskID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task_id": req.TaskID,
	})
}

func (s *Server) handleTimerStop(c *gin.Context) {
	s.planner.Timer().Stop()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleTimerStatus(c *gin.Context) {
	timer := s.planner.Timer()
	taskID, active := timer.Active()

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"active":          active,
		"task_id":         taskID,
		"elapsed_seconds": timer.ElapsedSeconds(),
	})
}
