package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// VideoHandler serves publishing, listing, and lifecycle endpoints for videos.
type VideoHandler struct {
	Videos  VideoStore
	Media   MediaStore
	Cleaner AssetCleaner
}

// parsePageParams reads page/limit query values with sane bounds.
func parsePageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func paginationMeta(total int64, page, limit int) models.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return models.Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// List returns a filtered, sorted page of videos with pagination metadata.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page, limit := parsePageParams(r)
	params := repositories.VideoListParams{
		Page:    page,
		Limit:   limit,
		Query:   strings.TrimSpace(query.Get("query")),
		SortBy:  query.Get("sortBy"),
		SortAsc: strings.EqualFold(query.Get("sortType"), "asc"),
		OwnerID: query.Get("userId"),
	}

	videos, total, err := h.Videos.List(ctx, params)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, map[string]any{
		"videos":     videos,
		"pagination": paginationMeta(total, page, limit),
	}, "videos fetched successfully")
}

type publishVideoRequest struct {
	Title       string `validate:"required"`
	Description string
}

// Publish uploads the video file and thumbnail, then records the video. The
// authenticated user becomes the immutable owner.
func (h VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(ctx, w, apierr.Validation("invalid multipart form").WithCause(err))
		return
	}

	req := publishVideoRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if err := validateStruct(req); err != nil {
		respondError(ctx, w, err)
		return
	}

	asset, err := uploadFormFile(r, h.Media, "videoFile", "videos", true)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	thumbnail, err := uploadFormFile(r, h.Media, "thumbnail", "thumbnails", true)
	if err != nil {
		h.Cleaner.Enqueue(ctx, asset.Key)
		respondError(ctx, w, err)
		return
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)
	if duration < 0 {
		duration = 0
	}

	now := time.Now().UTC()
	video := models.Video{
		ID:           uuid.NewString(),
		OwnerID:      user.ID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     asset.URL,
		AssetKey:     asset.Key,
		ThumbnailURL: thumbnail.URL,
		ThumbnailKey: thumbnail.Key,
		Duration:     duration,
		Published:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.Videos.Create(ctx, video); err != nil {
		h.Cleaner.Enqueue(ctx, asset.Key)
		h.Cleaner.Enqueue(ctx, thumbnail.Key)
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusCreated, video, "video published successfully")
}

// Get returns a single video with its owner's public profile and counts the view.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videoID := chi.URLParam(r, "videoId")

	video, owner, err := h.Videos.FindWithOwner(ctx, videoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, apierr.NotFound("video not found"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	if err := h.Videos.IncrementViews(ctx, videoID); err != nil {
		respondError(ctx, w, err)
		return
	}
	video.Views++

	respond(ctx, w, http.StatusOK, map[string]any{
		"video": video,
		"owner": owner,
	}, "video fetched successfully")
}

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Update edits the title, description, and optionally the thumbnail. Only the
// owner may edit, and the owner itself never changes.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, _, err := h.ownedVideo(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req updateVideoRequest
	var newThumbnail bool
	oldThumbnailKey := video.ThumbnailKey

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			respondError(ctx, w, apierr.Validation("invalid multipart form").WithCause(err))
			return
		}
		req.Title = strings.TrimSpace(r.FormValue("title"))
		req.Description = strings.TrimSpace(r.FormValue("description"))

		uploaded, err := uploadFormFile(r, h.Media, "thumbnail", "thumbnails", false)
		if err != nil {
			respondError(ctx, w, err)
			return
		}
		if uploaded.Key != "" {
			video.ThumbnailURL = uploaded.URL
			video.ThumbnailKey = uploaded.Key
			newThumbnail = true
		}
	} else if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	if req.Title != "" {
		video.Title = req.Title
	}
	if req.Description != "" {
		video.Description = req.Description
	}
	video.UpdatedAt = time.Now().UTC()

	if err := h.Videos.Update(ctx, video); err != nil {
		if newThumbnail {
			h.Cleaner.Enqueue(ctx, video.ThumbnailKey)
		}
		respondError(ctx, w, err)
		return
	}
	if newThumbnail {
		h.Cleaner.Enqueue(ctx, oldThumbnailKey)
	}

	respond(ctx, w, http.StatusOK, video, "video updated successfully")
}

// Delete removes the video row, then schedules deletion of its remote assets.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, _, err := h.ownedVideo(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := h.Videos.Delete(ctx, video.ID); err != nil {
		respondError(ctx, w, err)
		return
	}

	h.Cleaner.Enqueue(ctx, video.AssetKey)
	h.Cleaner.Enqueue(ctx, video.ThumbnailKey)

	respond(ctx, w, http.StatusOK, nil, "video deleted successfully")
}

// TogglePublish flips the published flag and reports the new state.
func (h VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, _, err := h.ownedVideo(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	published, err := h.Videos.TogglePublished(ctx, video.ID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, map[string]any{"isPublished": published}, "publish status toggled")
}

// ownedVideo loads the routed video and enforces that the caller owns it.
func (h VideoHandler) ownedVideo(r *http.Request) (models.Video, models.User, error) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		return models.Video{}, models.User{}, apierr.Auth("unauthorized request")
	}

	video, err := h.Videos.FindByID(ctx, chi.URLParam(r, "videoId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Video{}, models.User{}, apierr.NotFound("video not found")
		}
		return models.Video{}, models.User{}, err
	}
	if video.OwnerID != user.ID {
		return models.Video{}, models.User{}, apierr.Forbidden("only the owner can modify this video")
	}
	return video, user, nil
}
