package service

import (
	"context"
	"strings"
	"time"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/domain/authz"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/summary"
	"go.uber.org/zap"
)

// ProjectService manages projects and serves their derived summaries.
// Summaries are recomputed from the task list on every read; nothing
// is cached or incrementally maintained.
type ProjectService interface {
	Create(ctx context.Context, caller authz.Session, in ProjectInput) (*entity.Project, error)
	Get(ctx context.Context, id int64) (*entity.Project, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Project, error)
	Update(ctx context.Context, id int64, caller authz.Session, in ProjectInput) (*entity.Project, error)
	Deactivate(ctx context.Context, id int64, caller authz.Session) error
	Summary(ctx context.Context, id int64) (*ProjectReport, error)
}

// ProjectInput carries project create/update fields
type ProjectInput struct {
	Name        string
	Description string
}

// ProjectReport pairs a project with its derived hour summaries
type ProjectReport struct {
	Project   *entity.Project           `json:"project"`
	Summary   summary.ProjectSummary    `json:"summary"`
	Employees []summary.EmployeeSummary `json:"employees"`
}

type projectService struct {
	projects ProjectRepository
	tasks    TaskRepository
	logger   *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects ProjectRepository, tasks TaskRepository, logger *zap.Logger) ProjectService {
	return &projectService{projects: projects, tasks: tasks, logger: logger}
}

func validateProjectInput(in ProjectInput) (ProjectInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if len(in.Name) < entity.ProjectNameMinLen || len(in.Name) > entity.ProjectNameMaxLen {
		return in, apperr.Validation("project name must be %d to %d characters",
			entity.ProjectNameMinLen, entity.ProjectNameMaxLen)
	}
	if len(in.Description) > entity.ProjectDescriptionMaxLen {
		return in, apperr.Validation("project description must not exceed %d characters",
			entity.ProjectDescriptionMaxLen)
	}
	return in, nil
}

// Create persists a new active project owned by the calling admin
func (s *projectService) Create(ctx context.Context, caller authz.Session, in ProjectInput) (*entity.Project, error) {
	if !authz.CanManageProjects(caller) {
		return nil, apperr.Forbidden("only administrators may create projects")
	}
	in, err := validateProjectInput(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project := &entity.Project{
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   caller.UserID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project created", zap.Int64("id", project.ID), zap.String("name", project.Name))
	return project, nil
}

// Get retrieves one project
func (s *projectService) Get(ctx context.Context, id int64) (*entity.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project %d not found", id)
	}
	return project, nil
}

// List returns projects, optionally only active ones
func (s *projectService) List(ctx context.Context, activeOnly bool) ([]entity.Project, error) {
	return s.projects.List(ctx, activeOnly)
}

// Update edits name and description; the creator is immutable
func (s *projectService) Update(ctx context.Context, id int64, caller authz.Session, in ProjectInput) (*entity.Project, error) {
	if !authz.CanManageProjects(caller) {
		return nil, apperr.Forbidden("only administrators may edit projects")
	}
	in, err := validateProjectInput(in)
	if err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = in.Name
	project.Description = in.Description
	project.UpdatedAt = time.Now()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project updated", zap.Int64("id", id))
	return project, nil
}

// Deactivate soft-disables a project; its tasks and history remain
func (s *projectService) Deactivate(ctx context.Context, id int64, caller authz.Session) error {
	if !authz.CanManageProjects(caller) {
		return apperr.Forbidden("only administrators may deactivate projects")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.projects.SetActive(ctx, id, false); err != nil {
		return err
	}

	s.logger.Info("Project deactivated", zap.Int64("id", id))
	return nil
}

// Summary loads the project's tasks and reduces them into the hour
// report
func (s *projectService) Summary(ctx context.Context, id int64) (*ProjectReport, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	projectID := id
	tasks, err := s.tasks.List(ctx, entity.TaskFilter{ProjectID: &projectID})
	if err != nil {
		return nil, err
	}

	report := summary.Aggregate(tasks)
	return &ProjectReport{
		Project:   project,
		Summary:   report.Project,
		Employees: report.Employees,
	}, nil
}
