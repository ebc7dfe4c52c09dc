package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/models"
)

type ctxKey string

const userContextKey ctxKey = "currentUser"

// AuthMiddleware gates protected route groups behind a verified bearer
// credential and attaches the authenticated user to the request context.
type AuthMiddleware struct {
	Users  UserStore
	Tokens TokenManager
}

// RequireAuth verifies the access token from the accessToken cookie or the
// Authorization header and loads the referenced user.
func (m AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := bearerToken(r)
		if token == "" {
			respondError(ctx, w, apierr.Auth("unauthorized request"))
			return
		}

		userID, err := m.Tokens.VerifyAccess(token)
		if err != nil {
			respondError(ctx, w, apierr.Auth("invalid access token").WithCause(err))
			return
		}

		user, err := m.Users.FindByID(ctx, userID)
		if err != nil {
			respondError(ctx, w, apierr.Auth("invalid access token").WithCause(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userContextKey, user)))
	})
}

// currentUser returns the user attached by RequireAuth.
func currentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}
