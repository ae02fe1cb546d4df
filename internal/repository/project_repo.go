package repository

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// ProjectRepository implements service.ProjectRepository over SQLite
type ProjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, logger *zap.Logger) service.ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (name, description, created_by, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description, project.CreatedBy, project.Active,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create project", zap.String("name", project.Name), zap.Error(err))
		return apperr.Store("create project", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperr.Store("create project", err)
	}
	project.ID = id
	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	query := `
		SELECT id, name, description, created_by, active, created_at, updated_at
		FROM projects WHERE id = ?
	`
	var p entity.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project", zap.Int64("id", id), zap.Error(err))
		return nil, apperr.Store("get project", err)
	}
	return &p, nil
}

// Update persists name, description and updatedAt. The creator and the
// active flag are managed elsewhere.
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description, project.UpdatedAt, project.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int64("id", project.ID), zap.Error(err))
		return apperr.Store("update project", err)
	}
	return nil
}

// SetActive flips the soft-disable flag
func (r *ProjectRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE projects SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		r.logger.Error("Failed to set project active flag",
			zap.Int64("id", id), zap.Bool("active", active), zap.Error(err))
		return apperr.Store("set project active", err)
	}
	return nil
}

// List returns projects ordered by creation time descending
func (r *ProjectRepository) List(ctx context.Context, activeOnly bool) ([]entity.Project, error) {
	query := `
		SELECT id, name, description, created_by, active, created_at, updated_at
		FROM projects
	`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, apperr.Store("list projects", err)
	}
	defer rows.Close()

	var projects []entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.Active,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, apperr.Store("list projects", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list projects", err)
	}
	return projects, nil
}

// Verify interface compliance
var _ service.ProjectRepository = (*ProjectRepository)(nil)
