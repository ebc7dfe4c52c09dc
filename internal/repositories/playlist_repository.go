package repositories

import (
	"context"

	"github.com/cliptube/backend/internal/models"
)

// PlaylistRepository defines the data access contract for playlists and their
// ordered video membership.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error)
	UpdateDetails(ctx context.Context, id, name, description string) (models.Playlist, error)
	Delete(ctx context.Context, id string) error
	// AddVideo appends the video at the end of the playlist; ErrConflict when
	// the video is already a member.
	AddVideo(ctx context.Context, playlistID, videoID string) error
	// RemoveVideo deletes the membership; ErrNotFound when absent. The
	// relative order of the remaining videos is preserved.
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}
