package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/domain/authz"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
	"go.uber.org/zap"
)

// TaskService gates every mutating task operation behind identity and
// lifecycle checks before touching the store.
type TaskService interface {
	Create(ctx context.Context, caller authz.Session, in CreateTaskInput) (*entity.Task, error)
	Get(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	Update(ctx context.Context, id int64, caller authz.Session, in UpdateTaskInput) (*entity.Task, error)
	Delete(ctx context.Context, id int64, caller authz.Session) error
	SetStatus(ctx context.Context, id int64, caller authz.Session, to lifecycle.Status, reason string) (*entity.Task, error)
	Approve(ctx context.Context, id int64, caller authz.Session) (*entity.Task, error)
	Reject(ctx context.Context, id int64, caller authz.Session, reason string) (*entity.Task, error)
}

// CreateTaskInput carries the fields for logging a new task.
// EmployeeID may be zero, in which case the task belongs to the caller;
// only administrators may log tasks for someone else.
type CreateTaskInput struct {
	ProjectID     int64
	EmployeeID    int64
	Name          string
	Description   string
	ExpectedHours float64
	ActualHours   float64
}

// UpdateTaskInput carries optional field changes; nil means unchanged
type UpdateTaskInput struct {
	Name          *string
	Description   *string
	ExpectedHours *float64
	ActualHours   *float64
}

type taskService struct {
	tasks    TaskRepository
	projects ProjectRepository
	logger   *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks TaskRepository, projects ProjectRepository, logger *zap.Logger) TaskService {
	return &taskService{tasks: tasks, projects: projects, logger: logger}
}

func validHours(h float64) bool {
	return !math.IsNaN(h) && !math.IsInf(h, 0) && h >= 0
}

// Create validates and persists a new pending task
func (s *taskService) Create(ctx context.Context, caller authz.Session, in CreateTaskInput) (*entity.Task, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("task name must not be empty")
	}
	if !validHours(in.ExpectedHours) || !validHours(in.ActualHours) {
		return nil, apperr.Validation("expected and actual hours must be non-negative numbers")
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.Validation("project %d does not exist", in.ProjectID)
	}
	if !project.Active {
		return nil, apperr.Validation("project %q is no longer active", project.Name)
	}

	employeeID := in.EmployeeID
	if employeeID == 0 {
		employeeID = caller.UserID
	}
	if employeeID != caller.UserID && !caller.IsAdmin() {
		return nil, apperr.Forbidden("only administrators may log tasks for other employees")
	}

	now := time.Now()
	task := &entity.Task{
		ProjectID:     in.ProjectID,
		EmployeeID:    employeeID,
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		ExpectedHours: in.ExpectedHours,
		ActualHours:   in.ActualHours,
		Status:        lifecycle.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Task created",
		zap.Int64("id", task.ID),
		zap.Int64("project_id", task.ProjectID),
		zap.Int64("employee_id", task.EmployeeID))
	return s.tasks.GetByID(ctx, task.ID)
}

// Get retrieves a single task
func (s *taskService) Get(ctx context.Context, id int64) (*entity.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task %d not found", id)
	}
	return task, nil
}

// List returns tasks matching the filter; any authenticated caller may
// list tasks
func (s *taskService) List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	return s.tasks.List(ctx, filter)
}

// Update edits a task's fields. Non-admins may only edit their own
// tasks while still pending.
func (s *taskService) Update(ctx context.Context, id int64, caller authz.Session, in UpdateTaskInput) (*entity.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task %d not found", id)
	}

	if !authz.CanMutateTask(caller, task.EmployeeID, task.Status) {
		if caller.UserID == task.EmployeeID {
			return nil, apperr.Forbidden("task is already %s and can no longer be edited", task.Status)
		}
		return nil, apperr.Forbidden("you may only edit your own tasks")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("task name must not be empty")
		}
		task.Name = name
	}
	if in.Description != nil {
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.ExpectedHours != nil {
		if !validHours(*in.ExpectedHours) {
			return nil, apperr.Validation("expected hours must be a non-negative number")
		}
		task.ExpectedHours = *in.ExpectedHours
	}
	if in.ActualHours != nil {
		if !validHours(*in.ActualHours) {
			return nil, apperr.Validation("actual hours must be a non-negative number")
		}
		task.ActualHours = *in.ActualHours
	}
	task.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Task updated", zap.Int64("id", task.ID), zap.Int64("caller", caller.UserID))
	return s.tasks.GetByID(ctx, task.ID)
}

// Delete removes a task under the same gate as Update: admins always,
// owners only while the task is pending.
func (s *taskService) Delete(ctx context.Context, id int64, caller authz.Session) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return apperr.NotFound("task %d not found", id)
	}

	if !authz.CanMutateTask(caller, task.EmployeeID, task.Status) {
		if caller.UserID == task.EmployeeID {
			return apperr.Forbidden("task is already %s and can no longer be deleted", task.Status)
		}
		return apperr.Forbidden("you may only delete your own tasks")
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Task deleted", zap.Int64("id", id), zap.Int64("caller", caller.UserID))
	return nil
}

// SetStatus moves a task through the lifecycle. Only administrators
// decide tasks; the admin override permits any valid target status,
// including back to pending.
func (s *taskService) SetStatus(ctx context.Context, id int64, caller authz.Session, to lifecycle.Status, reason string) (*entity.Task, error) {
	if !to.IsValid() {
		return nil, apperr.Validation("unknown task status %q", to)
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task %d not found", id)
	}

	if !authz.CanDecideTask(caller) {
		return nil, apperr.Forbidden("only administrators may approve or reject tasks")
	}
	if !lifecycle.CanTransition(task.Status, to, caller.IsAdmin()) {
		return nil, apperr.Validation("task cannot move from %s to %s", task.Status, to)
	}

	// approved_by/approved_at record the deciding administrator for
	// either outcome; both clear when a task returns to pending
	var decidedBy *int64
	var decidedAt *time.Time
	if to.IsDecided() {
		now := time.Now()
		decidedBy = &caller.UserID
		decidedAt = &now
	}
	if to != lifecycle.StatusRejected {
		reason = ""
	}

	if err := s.tasks.UpdateStatus(ctx, id, to, decidedBy, decidedAt, reason); err != nil {
		return nil, err
	}

	s.logger.Info("Task status changed",
		zap.Int64("id", id),
		zap.String("from", task.Status.String()),
		zap.String("to", to.String()),
		zap.Int64("decided_by", caller.UserID))
	return s.tasks.GetByID(ctx, id)
}

// Approve marks a task approved
func (s *taskService) Approve(ctx context.Context, id int64, caller authz.Session) (*entity.Task, error) {
	return s.SetStatus(ctx, id, caller, lifecycle.StatusApproved, "")
}

// Reject marks a task rejected with an optional reason
func (s *taskService) Reject(ctx context.Context, id int64, caller authz.Session, reason string) (*entity.Task, error) {
	return s.SetStatus(ctx, id, caller, lifecycle.StatusRejected, strings.TrimSpace(reason))
}
