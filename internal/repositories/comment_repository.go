package repositories

import (
	"context"

	"github.com/cliptube/backend/internal/models"
)

// CommentRepository defines the data access contract for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]models.Comment, int64, error)
	UpdateContent(ctx context.Context, id, content string) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}
