package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func TestCommentHandlerCreate(t *testing.T) {
	comments := newFakeCommentStore()
	videos := newFakeVideoStore()
	videos.videos["video-1"] = models.Video{ID: "video-1", OwnerID: "user-2"}
	handler := CommentHandler{Comments: comments, Videos: videos}

	body, _ := json.Marshal(commentRequest{Content: "great clip"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments/video-1", bytes.NewReader(body))
	req = req.WithContext(withUser(req.Context(), models.User{ID: "user-1"}))
	req = withChiParam(req, "videoId", "video-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if len(comments.comments) != 1 {
		t.Fatalf("expected one stored comment, got %d", len(comments.comments))
	}
	for _, comment := range comments.comments {
		if comment.VideoID != "video-1" || comment.OwnerID != "user-1" || comment.Content != "great clip" {
			t.Fatalf("unexpected stored comment: %+v", comment)
		}
	}
}

func TestCommentHandlerCreateMissingVideo(t *testing.T) {
	handler := CommentHandler{Comments: newFakeCommentStore(), Videos: newFakeVideoStore()}

	body, _ := json.Marshal(commentRequest{Content: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments/ghost", bytes.NewReader(body))
	req = req.WithContext(withUser(req.Context(), models.User{ID: "user-1"}))
	req = withChiParam(req, "videoId", "ghost")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}
}

func TestCommentHandlerUpdateRequiresAuthor(t *testing.T) {
	comments := newFakeCommentStore()
	comments.comments["comment-1"] = models.Comment{ID: "comment-1", VideoID: "video-1", OwnerID: "user-1", Content: "original"}
	handler := CommentHandler{Comments: comments, Videos: newFakeVideoStore()}

	body, _ := json.Marshal(commentRequest{Content: "vandalized"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/comments/c/comment-1", bytes.NewReader(body))
	req = req.WithContext(withUser(req.Context(), models.User{ID: "intruder"}))
	req = withChiParam(req, "commentId", "comment-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d got %d", http.StatusForbidden, rec.Code)
	}
	if comments.comments["comment-1"].Content != "original" {
		t.Fatal("expected comment to be untouched")
	}
}

func TestCommentHandlerDelete(t *testing.T) {
	comments := newFakeCommentStore()
	comments.comments["comment-1"] = models.Comment{ID: "comment-1", VideoID: "video-1", OwnerID: "user-1"}
	handler := CommentHandler{Comments: comments, Videos: newFakeVideoStore()}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/c/comment-1", nil)
	req = req.WithContext(withUser(req.Context(), models.User{ID: "user-1"}))
	req = withChiParam(req, "commentId", "comment-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if len(comments.comments) != 0 {
		t.Fatal("expected comment to be deleted")
	}
}
