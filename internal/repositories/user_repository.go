package repositories

import (
	"context"

	"github.com/cliptube/backend/internal/models"
)

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	// FindByLogin matches the identifier against username or email.
	FindByLogin(ctx context.Context, identifier string) (models.User, error)
	UpdateProfile(ctx context.Context, id, fullName, email string) (models.User, error)
	UpdateAvatar(ctx context.Context, id, url, key string) (models.User, error)
	UpdateCoverImage(ctx context.Context, id, url, key string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetRefreshToken atomically replaces the stored refresh credential.
	// An empty token clears it.
	SetRefreshToken(ctx context.Context, id, token string) error
}
