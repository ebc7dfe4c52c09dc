package repositories

import (
	"context"

	"github.com/cliptube/backend/internal/models"
)

// LikeRepository defines the data access contract for like toggles.
type LikeRepository interface {
	// Toggle atomically creates the like when absent or deletes it when
	// present, reporting whether the like now exists.
	Toggle(ctx context.Context, like models.Like) (bool, error)
	ListLikedVideos(ctx context.Context, ownerID string) ([]models.Video, error)
}
