package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
	"github.com/taskboard/taskboard/pkg/database"
	"go.uber.org/zap"
)

// testDB opens a throwaway database with the real migrations applied
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, zap.NewNop())
	require.NoError(t, migrator.RunMigrations("../../migrations"))
	return db
}

func seedUser(t *testing.T, db *database.DB, name, email, role string) *entity.User {
	t.Helper()
	users := NewUserRepository(db.DB, zap.NewNop())
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func seedProject(t *testing.T, db *database.DB, createdBy int64) *entity.Project {
	t.Helper()
	projects := NewProjectRepository(db.DB, zap.NewNop())
	project := &entity.Project{
		Name:      "Dashboard",
		CreatedBy: createdBy,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, projects.Create(context.Background(), project))
	return project
}

func TestTaskRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	admin := seedUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	alice := seedUser(t, db, "Alice", "alice@example.com", entity.RoleEmployee)
	project := seedProject(t, db, admin.ID)

	tasks := NewTaskRepository(db.DB, zap.NewNop())

	task := &entity.Task{
		ProjectID:     project.ID,
		EmployeeID:    alice.ID,
		Name:          "Implement login",
		ExpectedHours: 8,
		ActualHours:   10,
		Status:        lifecycle.StatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, tasks.Create(ctx, task))
	require.NotZero(t, task.ID)

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Implement login", got.Name)
	assert.Equal(t, lifecycle.StatusPending, got.Status)
	// Display fields come from the joins
	assert.Equal(t, "Dashboard", got.ProjectName)
	assert.Equal(t, "Alice", got.EmployeeName)
	assert.Equal(t, "alice@example.com", got.EmployeeEmail)
	assert.Nil(t, got.ApprovedBy)

	missing, err := tasks.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTaskRepositoryStatusAndFilters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	admin := seedUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	alice := seedUser(t, db, "Alice", "alice@example.com", entity.RoleEmployee)
	bob := seedUser(t, db, "Bob", "bob@example.com", entity.RoleEmployee)
	project := seedProject(t, db, admin.ID)

	tasks := NewTaskRepository(db.DB, zap.NewNop())
	for _, owner := range []int64{alice.ID, bob.ID} {
		require.NoError(t, tasks.Create(ctx, &entity.Task{
			ProjectID:  project.ID,
			EmployeeID: owner,
			Name:       "Task",
			Status:     lifecycle.StatusPending,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}))
	}

	all, err := tasks.List(ctx, entity.TaskFilter{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)

	byEmployee, err := tasks.List(ctx, entity.TaskFilter{EmployeeID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, byEmployee, 1)
	taskID := byEmployee[0].ID

	now := time.Now()
	require.NoError(t, tasks.UpdateStatus(ctx, taskID, lifecycle.StatusApproved, &admin.ID, &now, ""))

	approved := lifecycle.StatusApproved
	decided, err := tasks.List(ctx, entity.TaskFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, decided, 1)
	require.NotNil(t, decided[0].ApprovedBy)
	assert.Equal(t, admin.ID, *decided[0].ApprovedBy)
	assert.NotNil(t, decided[0].ApprovedAt)

	// Back to pending wipes the decision record
	require.NoError(t, tasks.UpdateStatus(ctx, taskID, lifecycle.StatusPending, nil, nil, ""))
	got, err := tasks.GetByID(ctx, taskID)
	require.NoError(t, err)
	assert.Nil(t, got.ApprovedBy)
	assert.Nil(t, got.ApprovedAt)
}

func TestReviewRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	admin := seedUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	alice := seedUser(t, db, "Alice", "alice@example.com", entity.RoleEmployee)
	project := seedProject(t, db, admin.ID)

	tasks := NewTaskRepository(db.DB, zap.NewNop())
	task := &entity.Task{
		ProjectID:  project.ID,
		EmployeeID: alice.ID,
		Name:       "Task",
		Status:     lifecycle.StatusApproved,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, tasks.Create(ctx, task))

	reviews := NewReviewRepository(db.DB, zap.NewNop())
	review := &entity.Review{
		TaskID:       task.ID,
		ReviewerID:   admin.ID,
		ReviewerType: "admin",
		Rating:       4,
		Feedback:     "solid work",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, reviews.Create(ctx, review))

	got, err := reviews.GetByTaskAndReviewer(ctx, task.ID, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "Root", got.ReviewerName)
	assert.Empty(t, got.Reply)
	assert.Nil(t, got.RepliedAt)

	// The unique index keeps a reviewer to one review per task
	dup := &entity.Review{
		TaskID:       task.ID,
		ReviewerID:   admin.ID,
		ReviewerType: "admin",
		Rating:       2,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	assert.Error(t, reviews.Create(ctx, dup))

	require.NoError(t, reviews.SetReply(ctx, review.ID, "thanks", time.Now()))
	got, err = reviews.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "thanks", got.Reply)
	assert.NotNil(t, got.RepliedAt)

	require.NoError(t, reviews.ClearReply(ctx, review.ID))
	got, err = reviews.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Reply)
	assert.Nil(t, got.RepliedAt)
}

func TestReviewsCascadeWithTask(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	admin := seedUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	alice := seedUser(t, db, "Alice", "alice@example.com", entity.RoleEmployee)
	project := seedProject(t, db, admin.ID)

	tasks := NewTaskRepository(db.DB, zap.NewNop())
	task := &entity.Task{
		ProjectID:  project.ID,
		EmployeeID: alice.ID,
		Name:       "Task",
		Status:     lifecycle.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, tasks.Create(ctx, task))

	reviews := NewReviewRepository(db.DB, zap.NewNop())
	require.NoError(t, reviews.Create(ctx, &entity.Review{
		TaskID:       task.ID,
		ReviewerID:   admin.ID,
		ReviewerType: "admin",
		Rating:       3,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}))

	require.NoError(t, tasks.Delete(ctx, task.ID))

	left, err := reviews.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestUserRepository(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	users := NewUserRepository(db.DB, zap.NewNop())
	seedUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	seedUser(t, db, "Alice", "alice@example.com", entity.RoleEmployee)

	got, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)

	none, err := users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)

	admins, err := users.CountByRole(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, admins)
}

func TestProjectRepository(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	admin := seedUser(t, db, "Root", "root@example.com", entity.RoleAdmin)
	projects := NewProjectRepository(db.DB, zap.NewNop())

	a := seedProject(t, db, admin.ID)
	require.NoError(t, projects.SetActive(ctx, a.ID, false))

	b := &entity.Project{
		Name:      "Second",
		CreatedBy: admin.ID,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, projects.Create(ctx, b))

	all, err := projects.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := projects.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Second", active[0].Name)

	got, err := projects.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Active)
}
