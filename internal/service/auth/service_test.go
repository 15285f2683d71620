package auth

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository/mocks"
	"github.com/medicare-platform/admin-api/pkg/auth"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/security"
)

func newTestService(users *mocks.UserRepository) Service {
	return NewService(users, security.NewBcryptHasher(bcrypt.MinCost), auth.NewJWTService("test-secret", 0))
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)
	return hash
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc := newTestService(new(mocks.UserRepository))
	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "longenough",
		Role:     "root",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "dup@example.com").Return(&model.User{}, nil)

	svc := newTestService(users)
	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Dup",
		Email:    "dup@example.com",
		Password: "longenough",
		Role:     model.RoleDonor,
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestRegisterCreatesActiveUser(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, sql.ErrNoRows)

	var created *model.User
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*model.User)
	}).Return(nil)

	svc := newTestService(users)
	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "New",
		Email:    "new@example.com",
		Password: "longenough",
		Role:     model.RoleDonor,
	})
	require.NoError(t, err)

	assert.Equal(t, model.UserStatusActive, user.Status)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "longenough", created.PasswordHash)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

	svc := newTestService(users)
	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})

	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(&model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        "a@example.com",
		PasswordHash: hashOf(t, "rightpassword"),
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	}, nil)

	svc := newTestService(users)
	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "a@example.com", Password: "wrongpassword"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthenticated))
}

func TestLoginSuspendedAccount(t *testing.T) {
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "s@example.com").Return(&model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        "s@example.com",
		PasswordHash: hashOf(t, "rightpassword"),
		Role:         model.RoleDonor,
		Status:       model.UserStatusSuspended,
	}, nil)

	svc := newTestService(users)
	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "s@example.com", Password: "rightpassword"})

	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "suspended")
}

func TestLoginIssuesValidToken(t *testing.T) {
	userID := uuid.New()
	users := new(mocks.UserRepository)
	users.On("GetByEmail", mock.Anything, "ok@example.com").Return(&model.User{
		Base:         model.Base{ID: userID},
		Email:        "ok@example.com",
		PasswordHash: hashOf(t, "rightpassword"),
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	}, nil)

	svc := newTestService(users)
	resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ok@example.com", Password: "rightpassword"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}
