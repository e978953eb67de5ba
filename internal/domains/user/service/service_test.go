package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"marketplace-backend/internal/domains/user/model"
	"marketplace-backend/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error) {
	args := m.Called(ctx, id, passwordHash)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo *mockUserRepo) (ServiceInterface, *jwt.Manager) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewUserService(repo, tokens, bcrypt.MinCost), tokens
}

func storedUser(t *testing.T, password, status string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: string(hash),
		Status:       status,
		Role:         model.RoleUser,
	}
}

func TestRegister(t *testing.T) {
	req := model.RegisterRequest{Name: "Alice", Email: "Alice@Example.com", Username: "alice", Password: "correct-horse"}

	t.Run("creates active user with hashed password", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)

		var stored *model.User
		repo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*model.User) }).
			Return(nil)

		got, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, model.StatusActive, got.Status)
		assert.Equal(t, "alice@example.com", got.Email)
		require.NotNil(t, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
	})

	t.Run("username taken", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, model.ErrUsernameTaken)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("ExistsByUsername", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrUsernameTaken)

		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, model.ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns a token for the user", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, tokens := newTestService(repo)
		repo.On("GetByUsername", mock.Anything, "alice").Return(storedUser(t, "correct-horse", model.StatusActive), nil)

		got, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "correct-horse"})
		require.NoError(t, err)

		claims, err := tokens.ValidateAccessToken(got.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "alice", got.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("GetByUsername", mock.Anything, "alice").Return(storedUser(t, "correct-horse", model.StatusActive), nil)

		_, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("GetByUsername", mock.Anything, "bob").Return(nil, nil)

		_, err := svc.Login(context.Background(), model.LoginRequest{Username: "bob", Password: "whatever"})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("GetByUsername", mock.Anything, "alice").Return(storedUser(t, "correct-horse", model.StatusInactive), nil)

		_, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "correct-horse"})
		assert.ErrorIs(t, err, model.ErrUserInactive)
		assert.Equal(t, "you're no longer an active user", err.Error())
	})
}

func TestGetProfile(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)
	repo.On("GetByID", mock.Anything, "user-1").Return(storedUser(t, "pw-12345678", model.StatusActive), nil)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	got, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	repo := new(mockUserRepo)
	svc, _ := newTestService(repo)
	repo.On("List", mock.Anything).Return([]*model.User{storedUser(t, "pw-123456", model.StatusActive)}, nil)

	got, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "alice", got.Users[0].Username)
}

func TestUpdateUserStatus(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)

		_, err := svc.UpdateUserStatus(context.Background(), "user-1", "banned")
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		_, err := svc.UpdateUserStatus(context.Background(), "ghost", model.StatusInactive)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("same status is not a modification", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("GetByID", mock.Anything, "user-1").Return(storedUser(t, "pw-123456", model.StatusActive), nil)
		repo.On("UpdateStatus", mock.Anything, "user-1", model.StatusActive).Return(false, nil)

		got, err := svc.UpdateUserStatus(context.Background(), "user-1", model.StatusActive)
		require.NoError(t, err)
		assert.False(t, got.Modified)
	})

	t.Run("deactivated user can no longer log in", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		u := storedUser(t, "pw-123456", model.StatusActive)
		repo.On("GetByID", mock.Anything, "user-1").Return(u, nil)
		repo.On("UpdateStatus", mock.Anything, "user-1", model.StatusInactive).
			Run(func(args mock.Arguments) { u.Status = args.String(2) }).
			Return(true, nil)
		repo.On("GetByUsername", mock.Anything, "alice").Return(u, nil)

		got, err := svc.UpdateUserStatus(context.Background(), "user-1", model.StatusInactive)
		require.NoError(t, err)
		assert.True(t, got.Modified)

		_, err = svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "pw-123456"})
		assert.ErrorIs(t, err, model.ErrUserInactive)
	})
}

func TestChangePassword(t *testing.T) {
	req := model.ChangePasswordRequest{OldPassword: "pw-123456", NewPassword: "new-password"}

	t.Run("only the account owner", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)

		err := svc.ChangePassword(context.Background(), "user-2", "user-1", req)
		assert.ErrorIs(t, err, model.ErrNotAccountOwner)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("wrong old password", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("GetByID", mock.Anything, "user-1").Return(storedUser(t, "something-else", model.StatusActive), nil)

		err := svc.ChangePassword(context.Background(), "user-1", "user-1", req)
		assert.ErrorIs(t, err, model.ErrWrongPassword)
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores new hash", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("GetByID", mock.Anything, "user-1").Return(storedUser(t, "pw-123456", model.StatusActive), nil)

		var newHash string
		repo.On("UpdatePassword", mock.Anything, "user-1", mock.Anything).
			Run(func(args mock.Arguments) { newHash = args.String(2) }).
			Return(true, nil)

		require.NoError(t, svc.ChangePassword(context.Background(), "user-1", "user-1", req))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-password")))
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("Delete", mock.Anything, "ghost").Return(false, nil)

		assert.ErrorIs(t, svc.DeleteUser(context.Background(), "ghost"), model.ErrUserNotFound)
	})

	t.Run("owner of listings", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("Delete", mock.Anything, "user-1").Return(false, model.ErrUserHasListings)

		assert.ErrorIs(t, svc.DeleteUser(context.Background(), "user-1"), model.ErrUserHasListings)
	})

	t.Run("deleted", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc, _ := newTestService(repo)
		repo.On("Delete", mock.Anything, "user-1").Return(true, nil)

		assert.NoError(t, svc.DeleteUser(context.Background(), "user-1"))
	})
}
