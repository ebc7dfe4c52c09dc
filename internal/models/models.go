package models

import (
	"errors"
	"time"
)

// User represents an account within the ClipTube platform.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	Password      string    `json:"-"`
	AvatarURL     string    `json:"avatar"`
	AvatarKey     string    `json:"-"`
	CoverImageURL string    `json:"coverImage"`
	CoverImageKey string    `json:"-"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Video is a published video owned by a single user. The owner never changes
// after creation.
type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoFile"`
	AssetKey     string    `json:"-"`
	ThumbnailURL string    `json:"thumbnail"`
	ThumbnailKey string    `json:"-"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	Published    bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VideoOwner carries the public fields of a video's owner for read responses.
type VideoOwner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// Comment is a user-authored comment attached to a video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video"`
	OwnerID   string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikeKind identifies the type of entity a like points at.
type LikeKind string

const (
	LikeKindVideo   LikeKind = "video"
	LikeKindComment LikeKind = "comment"
	LikeKindTweet   LikeKind = "tweet"
)

// ErrInvalidLikeTarget indicates a like target with an unknown kind or blank id.
var ErrInvalidLikeTarget = errors.New("invalid like target")

// LikeTarget is a tagged reference to exactly one likeable entity.
type LikeTarget struct {
	Kind LikeKind `json:"kind"`
	ID   string   `json:"id"`
}

// NewLikeTarget validates the kind/id pair at construction.
func NewLikeTarget(kind LikeKind, id string) (LikeTarget, error) {
	switch kind {
	case LikeKindVideo, LikeKindComment, LikeKindTweet:
	default:
		return LikeTarget{}, ErrInvalidLikeTarget
	}
	if id == "" {
		return LikeTarget{}, ErrInvalidLikeTarget
	}
	return LikeTarget{Kind: kind, ID: id}, nil
}

// Like records that a user liked a single target entity. At most one like may
// exist per (owner, target) pair.
type Like struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"likedBy"`
	Target    LikeTarget `json:"target"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Playlist is a named, ordered collection of video references without duplicates.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoIDs    []string  `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Subscription links a subscriber to a channel. Both read views (a channel's
// subscribers and a user's subscribed channels) derive from the same rows, so
// the relationship stays symmetric by construction.
type Subscription struct {
	SubscriberID string    `json:"subscriber"`
	ChannelID    string    `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelProfile is the public slice of a user exposed in subscription listings.
type ChannelProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

// Pagination carries listing metadata alongside a page of results.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// TokenPair groups the bearer credentials issued to authenticated users.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
