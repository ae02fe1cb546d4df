package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"go.uber.org/zap"
)

func newUserService(users *mockUserRepo) UserService {
	return NewUserService(users, zap.NewNop())
}

func TestRegisterOpen(t *testing.T) {
	var stored *entity.User
	users := &mockUserRepo{
		createFunc: func(ctx context.Context, user *entity.User) error {
			user.ID = 2
			stored = user
			return nil
		},
	}
	svc := newUserService(users)

	user, err := svc.Register(context.Background(), nil, RegisterInput{
		Name:     "Alice",
		Email:    " Alice@Example.COM ",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, entity.RoleEmployee, user.Role)
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, RegisterInput{Name: "", Email: "a@b.c", Password: "supersecret"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Register(ctx, nil, RegisterInput{Name: "Alice", Email: "not-an-email", Password: "supersecret"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Register(ctx, nil, RegisterInput{Name: "Alice", Email: "a@b.c", Password: "short"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestRegisterAdminRole(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	ctx := context.Background()

	in := RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "supersecret", Role: entity.RoleAdmin}

	// Anonymous and employee callers cannot mint admins
	_, err := svc.Register(ctx, nil, in)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.Register(ctx, &employeeSession, in)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	user, err := svc.Register(ctx, &adminSession, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: 1, Email: email}, nil
		},
	}
	svc := newUserService(users)

	_, err := svc.Register(context.Background(), nil, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestAuthenticate(t *testing.T) {
	hash, err := auth.HashPassword("supersecret")
	require.NoError(t, err)

	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "alice@example.com" {
				return &entity.User{ID: 2, Email: email, PasswordHash: hash, Role: entity.RoleEmployee}, nil
			}
			return nil, nil
		},
	}
	svc := newUserService(users)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, " ALICE@example.com ", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts answer the same way as wrong passwords
	_, err = svc.Authenticate(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdmin(t *testing.T) {
	created := false
	users := &mockUserRepo{
		createFunc: func(ctx context.Context, user *entity.User) error {
			user.ID = 1
			created = true
			return nil
		},
	}
	svc := newUserService(users)

	err := svc.EnsureAdmin(context.Background(), "Administrator", "admin@example.com", "supersecret")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestEnsureAdminAlreadyExists(t *testing.T) {
	created := false
	users := &mockUserRepo{
		countByRoleFunc: func(ctx context.Context, role string) (int, error) {
			return 1, nil
		},
		createFunc: func(ctx context.Context, user *entity.User) error {
			created = true
			return nil
		},
	}
	svc := newUserService(users)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "Administrator", "admin@example.com", "supersecret"))
	assert.False(t, created)
}
