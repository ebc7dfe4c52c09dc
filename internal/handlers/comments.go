package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
)

// CommentHandler serves comment CRUD scoped to a video.
type CommentHandler struct {
	Comments CommentStore
	Videos   VideoStore
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Create attaches a new comment to the routed video.
func (h CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	videoID := chi.URLParam(r, "videoId")
	if _, err := h.Videos.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, apierr.NotFound("video not found"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		OwnerID:   user.ID,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Comments.Create(ctx, comment); err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusCreated, comment, "comment added successfully")
}

// ListByVideo returns a page of comments for a video, newest first.
func (h CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID := chi.URLParam(r, "videoId")
	page, limit := parsePageParams(r)

	comments, total, err := h.Comments.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, map[string]any{
		"comments":   comments,
		"pagination": paginationMeta(total, page, limit),
	}, "comments fetched successfully")
}

// Update rewrites a comment's content. Only the author may edit.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	comment, err := h.ownedComment(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	updated, err := h.Comments.UpdateContent(ctx, comment.ID, strings.TrimSpace(req.Content))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, updated, "comment updated successfully")
}

// Delete removes a comment. Only the author may delete.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	comment, err := h.ownedComment(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := h.Comments.Delete(ctx, comment.ID); err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, nil, "comment deleted successfully")
}

func (h CommentHandler) ownedComment(r *http.Request) (models.Comment, error) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		return models.Comment{}, apierr.Auth("unauthorized request")
	}

	comment, err := h.Comments.FindByID(ctx, chi.URLParam(r, "commentId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Comment{}, apierr.NotFound("comment not found")
		}
		return models.Comment{}, err
	}
	if comment.OwnerID != user.ID {
		return models.Comment{}, apierr.Forbidden("only the author can modify this comment")
	}
	return comment, nil
}
