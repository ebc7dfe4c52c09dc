package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func TestRequireAuthAcceptsCookieAndHeader(t *testing.T) {
	store := newFakeUserStore()
	manager := newTokenManager()
	store.users["user-1"] = models.User{ID: "user-1", Username: "tester"}

	pair, err := manager.Issue("user-1")
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	middleware := AuthMiddleware{Users: store, Tokens: manager}

	var seen models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = currentUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	cookieReq := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	cookieReq.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: pair.AccessToken})
	cookieRec := httptest.NewRecorder()
	middleware.RequireAuth(next).ServeHTTP(cookieRec, cookieReq)
	if cookieRec.Code != http.StatusNoContent || seen.ID != "user-1" {
		t.Fatalf("expected cookie auth to pass, got status %d user %+v", cookieRec.Code, seen)
	}

	seen = models.User{}
	headerReq := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	headerReq.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	headerRec := httptest.NewRecorder()
	middleware.RequireAuth(next).ServeHTTP(headerRec, headerReq)
	if headerRec.Code != http.StatusNoContent || seen.ID != "user-1" {
		t.Fatalf("expected header auth to pass, got status %d user %+v", headerRec.Code, seen)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	store := newFakeUserStore()
	manager := newTokenManager()
	middleware := AuthMiddleware{Users: store, Tokens: manager}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without valid credentials")
	})

	noToken := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	noTokenRec := httptest.NewRecorder()
	middleware.RequireAuth(next).ServeHTTP(noTokenRec, noToken)
	if noTokenRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected missing token to fail with %d got %d", http.StatusUnauthorized, noTokenRec.Code)
	}

	badToken := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	badToken.Header.Set("Authorization", "Bearer garbage")
	badTokenRec := httptest.NewRecorder()
	middleware.RequireAuth(next).ServeHTTP(badTokenRec, badToken)
	if badTokenRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected invalid token to fail with %d got %d", http.StatusUnauthorized, badTokenRec.Code)
	}

	// A verified token referencing a deleted account is also rejected.
	pair, err := manager.Issue("ghost")
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}
	ghost := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	ghost.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	ghostRec := httptest.NewRecorder()
	middleware.RequireAuth(next).ServeHTTP(ghostRec, ghost)
	if ghostRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected deleted account to fail with %d got %d", http.StatusUnauthorized, ghostRec.Code)
	}
}
