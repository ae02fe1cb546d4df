package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// TaskHandler serves task CRUD and lifecycle decisions
type TaskHandler struct {
	tasks  service.TaskService
	logger *zap.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

type createTaskRequest struct {
	ProjectID     int64    `json:"project_id" binding:"required"`
	EmployeeID    int64    `json:"employee_id"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	ExpectedHours *float64 `json:"expected_hours" binding:"required"`
	ActualHours   *float64 `json:"actual_hours" binding:"required"`
}

// Create handles POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id, name, expected_hours and actual_hours are required"})
		return
	}

	session, _ := auth.SessionFrom(c)
	task, err := h.tasks.Create(c.Request.Context(), session, service.CreateTaskInput{
		ProjectID:     req.ProjectID,
		EmployeeID:    req.EmployeeID,
		Name:          req.Name,
		Description:   req.Description,
		ExpectedHours: *req.ExpectedHours,
		ActualHours:   *req.ActualHours,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// List handles GET /tasks?project_id=&status=&employee_id=
func (h *TaskHandler) List(c *gin.Context) {
	var filter entity.TaskFilter

	if v := c.Query("project_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id filter"})
			return
		}
		filter.ProjectID = &id
	}
	if v := c.Query("employee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee_id filter"})
			return
		}
		filter.EmployeeID = &id
	}
	if v := c.Query("status"); v != "" {
		status := lifecycle.Status(v)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		filter.Status = &status
	}

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Get handles GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

type updateTaskRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	ExpectedHours *float64 `json:"expected_hours"`
	ActualHours   *float64 `json:"actual_hours"`
}

// Update handles PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	session, _ := auth.SessionFrom(c)
	task, err := h.tasks.Update(c.Request.Context(), id, session, service.UpdateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		ExpectedHours: req.ExpectedHours,
		ActualHours:   req.ActualHours,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Delete handles DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	session, _ := auth.SessionFrom(c)
	if err := h.tasks.Delete(c.Request.Context(), id, session); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Approve handles POST /tasks/:id/approve
func (h *TaskHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	session, _ := auth.SessionFrom(c)
	task, err := h.tasks.Approve(c.Request.Context(), id, session)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

type rejectTaskRequest struct {
	Reason string `json:"reason"`
}

// Reject handles POST /tasks/:id/reject
func (h *TaskHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req rejectTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	session, _ := auth.SessionFrom(c)
	task, err := h.tasks.Reject(c.Request.Context(), id, session, req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// SetStatus handles PUT /tasks/:id/status, the administrator override
func (h *TaskHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	session, _ := auth.SessionFrom(c)
	task, err := h.tasks.SetStatus(c.Request.Context(), id, session, lifecycle.Status(req.Status), req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
