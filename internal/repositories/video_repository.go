package repositories

import (
	"context"

	"github.com/cliptube/backend/internal/models"
)

// VideoListParams describes pagination, filtering, and ordering for listings.
type VideoListParams struct {
	Page    int
	Limit   int
	Query   string
	SortBy  string
	SortAsc bool
	OwnerID string
}

// VideoRepository defines the data access contract for videos.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	FindWithOwner(ctx context.Context, id string) (models.Video, models.VideoOwner, error)
	List(ctx context.Context, params VideoListParams) ([]models.Video, int64, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	// TogglePublished flips the publish flag and returns the new value.
	TogglePublished(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
}
