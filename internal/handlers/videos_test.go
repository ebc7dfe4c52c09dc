package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func TestVideoHandlerListPagination(t *testing.T) {
	store := newFakeVideoStore()
	handler := VideoHandler{Videos: store}

	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("video-%02d", i)
		store.videos[id] = models.Video{ID: id, OwnerID: "user-1", Title: "clip", Published: true}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp envelope
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var data struct {
		Videos     []models.Video    `json:"videos"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if len(data.Videos) != 5 {
		t.Fatalf("expected 5 videos on page 2, got %d", len(data.Videos))
	}
	if data.Pagination.Total != 12 || data.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination metadata: %+v", data.Pagination)
	}
	if data.Pagination.Page != 2 || data.Pagination.Limit != 5 {
		t.Fatalf("expected echoed page params, got %+v", data.Pagination)
	}
}

func TestVideoHandlerGetCountsView(t *testing.T) {
	store := newFakeVideoStore()
	handler := VideoHandler{Videos: store}

	store.videos["video-1"] = models.Video{ID: "video-1", OwnerID: "user-1", Title: "clip", Views: 7}
	store.owners["user-1"] = models.VideoOwner{ID: "user-1", Username: "tester"}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/video-1", nil)
	req = withChiParam(req, "videoId", "video-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp envelope
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var data struct {
		Video models.Video      `json:"video"`
		Owner models.VideoOwner `json:"owner"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Video.Views != 8 {
		t.Fatalf("expected view count 8 in response, got %d", data.Video.Views)
	}
	if data.Owner.Username != "tester" {
		t.Fatalf("expected owner profile, got %+v", data.Owner)
	}

	stored := store.videos["video-1"]
	if stored.Views != 8 {
		t.Fatalf("expected stored view count 8, got %d", stored.Views)
	}
}

func TestVideoHandlerGetMissing(t *testing.T) {
	handler := VideoHandler{Videos: newFakeVideoStore()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/nope", nil)
	req = withChiParam(req, "videoId", "nope")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}
}

func TestVideoHandlerPublish(t *testing.T) {
	store := newFakeVideoStore()
	media := &fakeMediaStore{}
	handler := VideoHandler{Videos: store, Media: media, Cleaner: &fakeCleaner{}}

	body, contentType := registerForm(t, map[string]string{
		"title":       "My clip",
		"description": "Testing",
		"duration":    "12.5",
	}, map[string]string{"videoFile": "clip.mp4", "thumbnail": "thumb.png"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(withUser(req.Context(), models.User{ID: "user-1"}))
	rec := httptest.NewRecorder()

	handler.Publish(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if len(media.uploads) != 2 {
		t.Fatalf("expected video and thumbnail uploads, got %v", media.uploads)
	}
	if len(store.videos) != 1 {
		t.Fatalf("expected one stored video, got %d", len(store.videos))
	}
	for _, video := range store.videos {
		if video.OwnerID != "user-1" || video.Title != "My clip" || video.Duration != 12.5 {
			t.Fatalf("unexpected stored video: %+v", video)
		}
		if !video.Published {
			t.Fatal("expected new video to start published")
		}
	}
}

func TestVideoHandlerPublishRequiresTitle(t *testing.T) {
	handler := VideoHandler{Videos: newFakeVideoStore(), Media: &fakeMediaStore{}, Cleaner: &fakeCleaner{}}

	body, contentType := registerForm(t, nil, map[string]string{"videoFile": "clip.mp4"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(withUser(req.Context(), models.User{ID: "user-1"}))
	rec := httptest.NewRecorder()

	handler.Publish(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestVideoHandlerDeleteRequiresOwner(t *testing.T) {
	store := newFakeVideoStore()
	cleaner := &fakeCleaner{}
	handler := VideoHandler{Videos: store, Cleaner: cleaner}

	store.videos["video-1"] = models.Video{ID: "video-1", OwnerID: "user-1", AssetKey: "videos/k1", ThumbnailKey: "thumbnails/k1"}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/videos/video-1", nil)
	req = req.WithContext(withUser(req.Context(), models.User{ID: "intruder"}))
	req = withChiParam(req, "videoId", "video-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d got %d", http.StatusForbidden, rec.Code)
	}
	if _, ok := store.videos["video-1"]; !ok {
		t.Fatal("expected video to survive a forbidden delete")
	}

	owned := httptest.NewRequest(http.MethodDelete, "/api/v1/videos/video-1", nil)
	owned = owned.WithContext(withUser(owned.Context(), models.User{ID: "user-1"}))
	owned = withChiParam(owned, "videoId", "video-1")
	ownedRec := httptest.NewRecorder()

	handler.Delete(ownedRec, owned)

	if ownedRec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, ownedRec.Code, ownedRec.Body.String())
	}
	if len(cleaner.keys) != 2 {
		t.Fatalf("expected both remote assets scheduled for deletion, got %v", cleaner.keys)
	}
}

func TestVideoHandlerTogglePublish(t *testing.T) {
	store := newFakeVideoStore()
	handler := VideoHandler{Videos: store}

	store.videos["video-1"] = models.Video{ID: "video-1", OwnerID: "user-1", Published: true}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/videos/toggle/publish/video-1", nil)
	req = req.WithContext(withUser(req.Context(), models.User{ID: "user-1"}))
	req = withChiParam(req, "videoId", "video-1")
	rec := httptest.NewRecorder()

	handler.TogglePublish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp envelope
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var data struct {
		IsPublished bool `json:"isPublished"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.IsPublished {
		t.Fatal("expected publish flag to flip to false")
	}
}
