package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// TaskRepository implements service.TaskRepository over SQLite.
// Reads left-join project and employee display fields; a missing join
// degrades to empty strings rather than failing the read.
type TaskRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB, logger *zap.Logger) service.TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

const taskSelect = `
	SELECT t.id, t.project_id, t.employee_id, t.name, t.description,
		t.expected_hours, t.actual_hours, t.status,
		t.approved_by, t.approved_at, t.rejection_reason,
		t.created_at, t.updated_at,
		COALESCE(p.name, ''), COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM tasks t
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.id = t.employee_id
`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (
			project_id, employee_id, name, description,
			expected_hours, actual_hours, status, rejection_reason,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		task.ProjectID, task.EmployeeID, task.Name, task.Description,
		task.ExpectedHours, task.ActualHours, task.Status.String(), task.RejectionReason,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create task",
			zap.Int64("project_id", task.ProjectID),
			zap.Int64("employee_id", task.EmployeeID),
			zap.Error(err))
		return apperr.Store("create task", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperr.Store("create task", err)
	}
	task.ID = id
	return nil
}

// GetByID retrieves a task with display fields joined
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get task", zap.Int64("id", id), zap.Error(err))
		return nil, apperr.Store("get task", err)
	}
	return task, nil
}

// List returns tasks matching the conjunctive filter, newest first
func (r *TaskRepository) List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.ProjectID != nil {
		conditions = append(conditions, "t.project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "t.status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, "t.employee_id = ?")
		args = append(args, *filter.EmployeeID)
	}

	query := taskSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, apperr.Store("list tasks", err)
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, apperr.Store("list tasks", fmt.Errorf("scan task: %w", err))
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list tasks", err)
	}
	return tasks, nil
}

// Update persists the mutable fields of a task
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	query := `
		UPDATE tasks
		SET name = ?, description = ?, expected_hours = ?, actual_hours = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		task.Name, task.Description, task.ExpectedHours, task.ActualHours,
		task.UpdatedAt, task.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Int64("id", task.ID), zap.Error(err))
		return apperr.Store("update task", err)
	}
	return nil
}

// UpdateStatus moves a task through its lifecycle in one statement.
// Approver, approval time and rejection reason always travel with the
// status so a decision is never half-recorded.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status lifecycle.Status, approvedBy *int64, approvedAt *time.Time, reason string) error {
	query := `
		UPDATE tasks
		SET status = ?, approved_by = ?, approved_at = ?, rejection_reason = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	var by sql.NullInt64
	if approvedBy != nil {
		by = sql.NullInt64{Int64: *approvedBy, Valid: true}
	}
	var at sql.NullTime
	if approvedAt != nil {
		at = sql.NullTime{Time: *approvedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query, status.String(), by, at, reason, id)
	if err != nil {
		r.logger.Error("Failed to update task status",
			zap.Int64("id", id),
			zap.String("status", status.String()),
			zap.Error(err))
		return apperr.Store("update task status", err)
	}
	return nil
}

// Delete removes a task; reviews cascade at the schema level
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete task", zap.Int64("id", id), zap.Error(err))
		return apperr.Store("delete task", err)
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (*entity.Task, error) {
	var task entity.Task
	var status string
	var approvedBy sql.NullInt64
	var approvedAt sql.NullTime

	err := row.Scan(
		&task.ID, &task.ProjectID, &task.EmployeeID, &task.Name, &task.Description,
		&task.ExpectedHours, &task.ActualHours, &status,
		&approvedBy, &approvedAt, &task.RejectionReason,
		&task.CreatedAt, &task.UpdatedAt,
		&task.ProjectName, &task.EmployeeName, &task.EmployeeEmail,
	)
	if err != nil {
		return nil, err
	}

	task.Status = lifecycle.Status(status)
	if approvedBy.Valid {
		task.ApprovedBy = &approvedBy.Int64
	}
	if approvedAt.Valid {
		task.ApprovedAt = &approvedAt.Time
	}
	return &task, nil
}

// Verify interface compliance
var _ service.TaskRepository = (*TaskRepository)(nil)
