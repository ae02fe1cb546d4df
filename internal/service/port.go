package service

import (
	"context"
	"time"

	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
)

// Repository ports consumed by the services. Implementations live in
// internal/repository; lookups return (nil, nil) when no row matches.

// UserRepository persists user accounts
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

// ProjectRepository persists projects
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, activeOnly bool) ([]entity.Project, error)
}

// TaskRepository persists tasks; reads join project and employee
// display fields
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	UpdateStatus(ctx context.Context, id int64, status lifecycle.Status, approvedBy *int64, approvedAt *time.Time, reason string) error
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository persists reviews and their replies
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id int64) (*entity.Review, error)
	GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID int64) (*entity.Review, error)
	ListByTask(ctx context.Context, taskID int64) ([]entity.Review, error)
	Update(ctx context.Context, id int64, rating int, feedback string) error
	Delete(ctx context.Context, id int64) error
	SetReply(ctx context.Context, id int64, reply string, repliedAt time.Time) error
	ClearReply(ctx context.Context, id int64) error
}
