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

// PlaylistHandler serves playlist CRUD and membership management.
type PlaylistHandler struct {
	Playlists PlaylistStore
	Videos    VideoStore
}

type playlistRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// decodePlaylistRequest trims the fields before validating, so a
// whitespace-only name cannot slip past the required check.
func decodePlaylistRequest(r *http.Request) (playlistRequest, error) {
	var req playlistRequest
	if err := decodeBody(r, &req); err != nil {
		return playlistRequest{}, err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateStruct(req); err != nil {
		return playlistRequest{}, err
	}
	return req, nil
}

// Create starts an empty playlist owned by the caller.
func (h PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	req, err := decodePlaylistRequest(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	now := time.Now().UTC()
	playlist := models.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		VideoIDs:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Playlists.Create(ctx, playlist); err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusCreated, playlist, "playlist created successfully")
}

// ListByUser returns every playlist owned by the routed user.
func (h PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlists, err := h.Playlists.ListByOwner(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, playlists, "playlists fetched successfully")
}

// Get returns a playlist with its member videos resolved in order.
func (h PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, err := h.Playlists.FindByID(ctx, chi.URLParam(r, "playlistId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, apierr.NotFound("playlist not found"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	videos := make([]models.Video, 0, len(playlist.VideoIDs))
	for _, id := range playlist.VideoIDs {
		video, err := h.Videos.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			respondError(ctx, w, err)
			return
		}
		videos = append(videos, video)
	}

	respond(ctx, w, http.StatusOK, map[string]any{
		"playlist": playlist,
		"videos":   videos,
	}, "playlist fetched successfully")
}

// Update changes the playlist's name and description. Only the owner may edit.
func (h PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, err := h.ownedPlaylist(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	req, err := decodePlaylistRequest(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	updated, err := h.Playlists.UpdateDetails(ctx, playlist.ID, req.Name, req.Description)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, updated, "playlist updated successfully")
}

// Delete removes the playlist and its membership rows.
func (h PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, err := h.ownedPlaylist(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := h.Playlists.Delete(ctx, playlist.ID); err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, nil, "playlist deleted successfully")
}

// AddVideo appends a video to the playlist. Duplicates are rejected.
func (h PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, err := h.ownedPlaylist(r)
	if err != nil {
		respondError(ctx, w, err)
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

	if err := h.Playlists.AddVideo(ctx, playlist.ID, videoID); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, apierr.Conflict("video already in playlist"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, nil, "video added to playlist")
}

// RemoveVideo drops a video from the playlist.
func (h PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlist, err := h.ownedPlaylist(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if err := h.Playlists.RemoveVideo(ctx, playlist.ID, chi.URLParam(r, "videoId")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, apierr.NotFound("video not in playlist"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, nil, "video removed from playlist")
}

func (h PlaylistHandler) ownedPlaylist(r *http.Request) (models.Playlist, error) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		return models.Playlist{}, apierr.Auth("unauthorized request")
	}

	playlist, err := h.Playlists.FindByID(ctx, chi.URLParam(r, "playlistId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Playlist{}, apierr.NotFound("playlist not found")
		}
		return models.Playlist{}, err
	}
	if playlist.OwnerID != user.ID {
		return models.Playlist{}, apierr.Forbidden("only the owner can modify this playlist")
	}
	return playlist, nil
}
