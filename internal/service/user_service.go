package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/domain/authz"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned by Authenticate for a wrong email
// or password; the transport layer maps it to 401 rather than 400/403
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService manages accounts and credential checks
type UserService interface {
	Register(ctx context.Context, caller *authz.Session, in RegisterInput) (*entity.User, error)
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

// RegisterInput carries the fields for a new account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type userService struct {
	users  UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users UserRepository, logger *zap.Logger) UserService {
	return &userService{users: users, logger: logger}
}

// Register creates an account. Open registration always yields an
// employee; only an authenticated administrator may assign roles.
func (s *userService) Register(ctx context.Context, caller *authz.Session, in RegisterInput) (*entity.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" {
		return nil, apperr.Validation("name must not be empty")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, apperr.Validation("a valid email address is required")
	}
	if len(in.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	role := entity.RoleEmployee
	if in.Role != "" && in.Role != entity.RoleEmployee {
		if in.Role != entity.RoleAdmin {
			return nil, apperr.Validation("unknown role %q", in.Role)
		}
		if caller == nil || !caller.IsAdmin() {
			return nil, apperr.Forbidden("only administrators may create administrator accounts")
		}
		role = entity.RoleAdmin
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("an account with this email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Store("hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return user, nil
}

// Authenticate verifies credentials and returns the account
func (s *userService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get retrieves an account by ID
func (s *userService) Get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator on first start when
// no admin account exists yet
func (s *userService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	count, err := s.users.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := authz.Session{Role: entity.RoleAdmin}
	_, err = s.Register(ctx, &admin, RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return err
	}

	s.logger.Info("Bootstrap administrator created", zap.String("email", email))
	return nil
}
