package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"marketplace-backend/internal/domains/user/model"
	"marketplace-backend/internal/domains/user/repository"
	"marketplace-backend/internal/shared/apperror"
	"marketplace-backend/pkg/logger"
)

// ServiceInterface account operations
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, id string) (*model.UserDTO, error)
	ChangePassword(ctx context.Context, actorID, userID string, req model.ChangePasswordRequest) error

	// Administration
	ListUsers(ctx context.Context) (*model.UserListResponse, error)
	UpdateUserStatus(ctx context.Context, id, status string) (*model.UpdateStatusResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

// TokenIssuer signs access tokens for logged in users
type TokenIssuer interface {
	GenerateAccessToken(userID, username, role string) (string, time.Time, error)
}

type userService struct {
	repo       repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer, bcryptCost int) ServiceInterface {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	// 1. Uniqueness
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Wrap("failed to check email", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	exists, err = s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Wrap("failed to check username", err)
	}
	if exists {
		return nil, model.ErrUsernameTaken
	}

	// 2. Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.Infrastructure("failed to hash password", err)
	}

	// 3. Persist; unique indexes catch a concurrent registration
	u := &model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Username:     username,
		PasswordHash: string(passwordHash),
		Status:       model.StatusActive,
		Role:         model.RoleUser,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apperror.Wrap("failed to create user", err)
	}

	logger.Info("user registered", map[string]interface{}{"user_id": u.ID})

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	// 1. Find user; an unknown username looks the same as a wrong password
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, apperror.Wrap("failed to get user", err)
	}
	if u == nil {
		return nil, model.ErrInvalidCredentials
	}

	// 2. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, apperror.Infrastructure("failed to verify password", err)
	}

	// 3. Status
	if !u.IsActive() {
		return nil, model.ErrUserInactive
	}

	// 4. Token
	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, apperror.Infrastructure("failed to generate access token", err)
	}

	return &model.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        u.ToDTO(),
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, id string) (*model.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("failed to get user", err)
	}
	if u == nil {
		return nil, model.ErrUserNotFound
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) ChangePassword(ctx context.Context, actorID, userID string, req model.ChangePasswordRequest) error {
	if actorID != userID {
		return model.ErrNotAccountOwner
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperror.Wrap("failed to get user", err)
	}
	if u == nil {
		return model.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return model.ErrWrongPassword
		}
		return apperror.Infrastructure("failed to verify password", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return apperror.Infrastructure("failed to hash password", err)
	}

	updated, err := s.repo.UpdatePassword(ctx, userID, string(passwordHash))
	if err != nil {
		return apperror.Wrap("failed to update password", err)
	}
	if !updated {
		return model.ErrUserNotFound
	}

	logger.Info("password changed", map[string]interface{}{"user_id": userID})
	return nil
}

// ========================================
// ADMINISTRATION
// ========================================

func (s *userService) ListUsers(ctx context.Context) (*model.UserListResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap("failed to list users", err)
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	return &model.UserListResponse{Users: dtos, Total: len(dtos)}, nil
}

// UpdateUserStatus reports Modified=false when the user already had status.
// Inactive users keep their data but can no longer log in.
func (s *userService) UpdateUserStatus(ctx context.Context, id, status string) (*model.UpdateStatusResponse, error) {
	if !model.IsValidStatus(status) {
		return nil, model.ErrInvalidStatus
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("failed to get user", err)
	}
	if u == nil {
		return nil, model.ErrUserNotFound
	}

	modified, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperror.Wrap("failed to update user status", err)
	}

	if modified {
		logger.Info("user status changed", map[string]interface{}{
			"user_id": id,
			"from":    u.Status,
			"to":      status,
		})
	}

	return &model.UpdateStatusResponse{UserID: id, Status: status, Modified: modified}, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Wrap("failed to delete user", err)
	}
	if !deleted {
		return model.ErrUserNotFound
	}

	logger.Info("user deleted", map[string]interface{}{"user_id": id})
	return nil
}
