package service

import (
	"context"
	"time"

	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
)

// Mock repositories in the func-field style: tests override only the
// calls they care about.

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user *entity.User) error
	getByIDFunc     func(ctx context.Context, id int64) (*entity.User, error)
	getByEmailFunc  func(ctx context.Context, email string) (*entity.User, error)
	countByRoleFunc func(ctx context.Context, role string) (int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	if m.countByRoleFunc != nil {
		return m.countByRoleFunc(ctx, role)
	}
	return 0, nil
}

type mockProjectRepo struct {
	createFunc    func(ctx context.Context, project *entity.Project) error
	getByIDFunc   func(ctx context.Context, id int64) (*entity.Project, error)
	updateFunc    func(ctx context.Context, project *entity.Project) error
	setActiveFunc func(ctx context.Context, id int64, active bool) error
	listFunc      func(ctx context.Context, activeOnly bool) ([]entity.Project, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	project.ID = 1
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Project{ID: id, Name: "Dashboard", Active: true}, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) SetActive(ctx context.Context, id int64, active bool) error {
	if m.setActiveFunc != nil {
		return m.setActiveFunc(ctx, id, active)
	}
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context, activeOnly bool) ([]entity.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, activeOnly)
	}
	return []entity.Project{}, nil
}

type mockTaskRepo struct {
	createFunc       func(ctx context.Context, task *entity.Task) error
	getByIDFunc      func(ctx context.Context, id int64) (*entity.Task, error)
	listFunc         func(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	updateFunc       func(ctx context.Context, task *entity.Task) error
	updateStatusFunc func(ctx context.Context, id int64, status lifecycle.Status, approvedBy *int64, approvedAt *time.Time, reason string) error
	deleteFunc       func(ctx context.Context, id int64) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	task.ID = 1
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskRepo) List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []entity.Task{}, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id int64, status lifecycle.Status, approvedBy *int64, approvedAt *time.Time, reason string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, approvedBy, approvedAt, reason)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockReviewRepo struct {
	createFunc               func(ctx context.Context, review *entity.Review) error
	getByIDFunc              func(ctx context.Context, id int64) (*entity.Review, error)
	getByTaskAndReviewerFunc func(ctx context.Context, taskID, reviewerID int64) (*entity.Review, error)
	listByTaskFunc           func(ctx context.Context, taskID int64) ([]entity.Review, error)
	updateFunc               func(ctx context.Context, id int64, rating int, feedback string) error
	deleteFunc               func(ctx context.Context, id int64) error
	setReplyFunc             func(ctx context.Context, id int64, reply string, repliedAt time.Time) error
	clearReplyFunc           func(ctx context.Context, id int64) error
}

func (m *mockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, review)
	}
	review.ID = 1
	return nil
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockReviewRepo) GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID int64) (*entity.Review, error) {
	if m.getByTaskAndReviewerFunc != nil {
		return m.getByTaskAndReviewerFunc(ctx, taskID, reviewerID)
	}
	return nil, nil
}

func (m *mockReviewRepo) ListByTask(ctx context.Context, taskID int64) ([]entity.Review, error) {
	if m.listByTaskFunc != nil {
		return m.listByTaskFunc(ctx, taskID)
	}
	return []entity.Review{}, nil
}

func (m *mockReviewRepo) Update(ctx context.Context, id int64, rating int, feedback string) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, rating, feedback)
	}
	return nil
}

func (m *mockReviewRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockReviewRepo) SetReply(ctx context.Context, id int64, reply string, repliedAt time.Time) error {
	if m.setReplyFunc != nil {
		return m.setReplyFunc(ctx, id, reply, repliedAt)
	}
	return nil
}

func (m *mockReviewRepo) ClearReply(ctx context.Context, id int64) error {
	if m.clearReplyFunc != nil {
		return m.clearReplyFunc(ctx, id)
	}
	return nil
}
