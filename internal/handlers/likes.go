package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/models"
)

// LikeHandler serves like toggles for videos, comments, and tweets.
type LikeHandler struct {
	Likes LikeStore
}

// ToggleVideo flips the caller's like on a video.
func (h LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeKindVideo, "videoId")
}

// ToggleComment flips the caller's like on a comment.
func (h LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeKindComment, "commentId")
}

// ToggleTweet flips the caller's like on a tweet.
func (h LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeKindTweet, "tweetId")
}

func (h LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind models.LikeKind, param string) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	target, err := models.NewLikeTarget(kind, chi.URLParam(r, param))
	if err != nil {
		respondError(ctx, w, apierr.Validation("invalid like target").WithCause(err))
		return
	}

	like := models.Like{
		ID:        uuid.NewString(),
		OwnerID:   user.ID,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}

	added, err := h.Likes.Toggle(ctx, like)
	if err != nil {
		if errors.Is(err, models.ErrInvalidLikeTarget) {
			respondError(ctx, w, apierr.Validation("invalid like target"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	if added {
		respond(ctx, w, http.StatusCreated, map[string]any{"liked": true}, "liked successfully")
		return
	}
	respond(ctx, w, http.StatusOK, map[string]any{"liked": false}, "like removed successfully")
}

// LikedVideos lists every video the caller has liked.
func (h LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	videos, err := h.Likes.ListLikedVideos(ctx, user.ID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, videos, "liked videos fetched successfully")
}
