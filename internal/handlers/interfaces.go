package handlers

import (
	"context"
	"io"

	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
	"github.com/cliptube/backend/internal/storage"
)

// UserStore captures the persistence operations required by the user handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByLogin(ctx context.Context, identifier string) (models.User, error)
	UpdateProfile(ctx context.Context, id, fullName, email string) (models.User, error)
	UpdateAvatar(ctx context.Context, id, url, key string) (models.User, error)
	UpdateCoverImage(ctx context.Context, id, url, key string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetRefreshToken(ctx context.Context, id, token string) error
}

// TokenManager issues and verifies the signed session credentials.
type TokenManager interface {
	Issue(userID string) (models.TokenPair, error)
	VerifyAccess(token string) (string, error)
	VerifyRefresh(token string) (string, error)
}

// MediaStore forwards staged uploads to the external object store.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (storage.UploadResult, error)
}

// AssetCleaner schedules best-effort deletion of superseded remote assets.
type AssetCleaner interface {
	Enqueue(ctx context.Context, key string) error
}

// VideoStore captures persistence for video publishing and listing.
type VideoStore interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	FindWithOwner(ctx context.Context, id string) (models.Video, models.VideoOwner, error)
	List(ctx context.Context, params repositories.VideoListParams) ([]models.Video, int64, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	TogglePublished(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
}

// CommentStore captures persistence for video comments.
type CommentStore interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]models.Comment, int64, error)
	UpdateContent(ctx context.Context, id, content string) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// LikeStore captures persistence for like toggles.
type LikeStore interface {
	Toggle(ctx context.Context, like models.Like) (bool, error)
	ListLikedVideos(ctx context.Context, ownerID string) ([]models.Video, error)
}

// PlaylistStore captures persistence for playlists and their membership.
type PlaylistStore interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error)
	UpdateDetails(ctx context.Context, id, name, description string) (models.Playlist, error)
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}

// SubscriptionStore captures persistence for the subscriber/channel relationship.
type SubscriptionStore interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]models.ChannelProfile, error)
	ListChannels(ctx context.Context, subscriberID string) ([]models.ChannelProfile, error)
}
