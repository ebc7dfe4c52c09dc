package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func toggleVideoLike(t *testing.T, handler LikeHandler, userID, videoID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/v/"+videoID, nil)
	req = req.WithContext(withUser(req.Context(), models.User{ID: userID}))
	req = withChiParam(req, "videoId", videoID)
	rec := httptest.NewRecorder()

	handler.ToggleVideo(rec, req)
	return rec
}

func TestLikeHandlerTogglePair(t *testing.T) {
	store := newFakeLikeStore()
	handler := LikeHandler{Likes: store}

	first := toggleVideoLike(t, handler, "user-1", "video-1")
	if first.Code != http.StatusCreated {
		t.Fatalf("expected first toggle to create with %d got %d: %s", http.StatusCreated, first.Code, first.Body.String())
	}
	if len(store.likes) != 1 {
		t.Fatalf("expected one stored like, got %d", len(store.likes))
	}

	second := toggleVideoLike(t, handler, "user-1", "video-1")
	if second.Code != http.StatusOK {
		t.Fatalf("expected second toggle to remove with %d got %d", http.StatusOK, second.Code)
	}
	if len(store.likes) != 0 {
		t.Fatalf("expected like to be removed, got %d stored", len(store.likes))
	}
}

func TestLikeHandlerDistinctUsers(t *testing.T) {
	store := newFakeLikeStore()
	handler := LikeHandler{Likes: store}

	toggleVideoLike(t, handler, "user-1", "video-1")
	toggleVideoLike(t, handler, "user-2", "video-1")

	if len(store.likes) != 2 {
		t.Fatalf("expected one like per user, got %d", len(store.likes))
	}
}

func TestLikeHandlerRejectsBlankTarget(t *testing.T) {
	handler := LikeHandler{Likes: newFakeLikeStore()}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/v/", nil)
	req = req.WithContext(withUser(req.Context(), models.User{ID: "user-1"}))
	req = withChiParam(req, "videoId", "")
	rec := httptest.NewRecorder()

	handler.ToggleVideo(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}
