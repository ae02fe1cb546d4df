package repository

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// UserRepository implements service.UserRepository over SQLite
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) service.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return apperr.Store("create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperr.Store("create user", err)
	}
	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = ?
	`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Int64("id", id), zap.Error(err))
		return nil, apperr.Store("get user", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = ?
	`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, apperr.Store("get user", err)
	}
	return user, nil
}

// CountByRole counts users holding the given role
func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count users by role", zap.String("role", role), zap.Error(err))
		return 0, apperr.Store("count users", err)
	}
	return count, nil
}

func scanUser(row *sql.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify interface compliance
var _ service.UserRepository = (*UserRepository)(nil)
