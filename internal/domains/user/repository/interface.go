package repository

import (
	"context"

	"marketplace-backend/internal/domains/user/model"
)

// UserRepository account storage. Lookups return (nil, nil) when absent.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*model.User, error)

	// UpdateStatus reports false when the user is missing or already has status
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error)

	// Delete returns ErrUserHasListings when the backend keeps listings
	// referencing the user
	Delete(ctx context.Context, id string) (bool, error)
}
