package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
)

// UserHandler serves registration, session, and profile management endpoints.
type UserHandler struct {
	Users   UserStore
	Tokens  TokenManager
	Media   MediaStore
	Cleaner AssetCleaner
}

type registerRequest struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=8"`
}

// Register creates an account from a multipart form carrying the profile
// fields plus a required avatar image and an optional cover image.
func (h UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(ctx, w, apierr.Validation("invalid multipart form").WithCause(err))
		return
	}

	req := registerRequest{
		FullName: strings.TrimSpace(r.FormValue("fullName")),
		Email:    strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Username: strings.TrimSpace(strings.ToLower(r.FormValue("username"))),
		Password: r.FormValue("password"),
	}
	if err := validateStruct(req); err != nil {
		respondError(ctx, w, err)
		return
	}

	avatar, err := uploadFormFile(r, h.Media, "avatar", "avatars", true)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	cover, err := uploadFormFile(r, h.Media, "coverImage", "covers", false)
	if err != nil {
		h.Cleaner.Enqueue(ctx, avatar.Key)
		respondError(ctx, w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(ctx, w, apierr.Internal("could not hash password").WithCause(err))
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:            uuid.NewString(),
		Username:      req.Username,
		Email:         req.Email,
		FullName:      req.FullName,
		Password:      string(hash),
		AvatarURL:     avatar.URL,
		AvatarKey:     avatar.Key,
		CoverImageURL: cover.URL,
		CoverImageKey: cover.Key,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.Users.Create(ctx, user); err != nil {
		h.Cleaner.Enqueue(ctx, avatar.Key)
		h.Cleaner.Enqueue(ctx, cover.Key)
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, apierr.Conflict("user with email or username already exists"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusCreated, user, "user registered successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials by username or email, issues a fresh token pair,
// and persists the refresh token for later rotation checks.
func (h UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	identifier := strings.TrimSpace(strings.ToLower(req.Username))
	if identifier == "" {
		identifier = strings.TrimSpace(strings.ToLower(req.Email))
	}
	if identifier == "" {
		respondError(ctx, w, apierr.Validation("username or email is required"))
		return
	}

	user, err := h.Users.FindByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, apierr.NotFound("user does not exist"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(ctx, w, apierr.Auth("invalid user credentials"))
		return
	}

	pair, err := h.issueSession(r, user.ID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	setAuthCookies(w, pair)
	respond(ctx, w, http.StatusOK, map[string]any{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout invalidates the stored refresh token and clears session cookies.
func (h UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	if err := h.Users.SetRefreshToken(ctx, user.ID, ""); err != nil {
		respondError(ctx, w, err)
		return
	}

	clearAuthCookies(w)
	respond(ctx, w, http.StatusOK, nil, "user logged out successfully")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates the token pair. The incoming token must verify and must
// match the one stored for the user, so a stolen or already rotated token is
// rejected.
func (h UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	incoming := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		incoming = cookie.Value
	}
	if incoming == "" {
		var req refreshRequest
		if err := decodeJSON(r, &req); err == nil {
			incoming = req.RefreshToken
		}
	}
	if incoming == "" {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	userID, err := h.Tokens.VerifyRefresh(incoming)
	if err != nil {
		respondError(ctx, w, apierr.Auth("invalid refresh token").WithCause(err))
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondError(ctx, w, apierr.Auth("invalid refresh token").WithCause(err))
		return
	}
	if user.RefreshToken == "" || user.RefreshToken != incoming {
		respondError(ctx, w, apierr.Auth("refresh token is expired or already used"))
		return
	}

	pair, err := h.issueSession(r, user.ID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	setAuthCookies(w, pair)
	respond(ctx, w, http.StatusOK, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "access token refreshed")
}

func (h UserHandler) issueSession(r *http.Request, userID string) (models.TokenPair, error) {
	pair, err := h.Tokens.Issue(userID)
	if err != nil {
		return models.TokenPair{}, apierr.Internal("could not issue tokens").WithCause(err)
	}
	if err := h.Users.SetRefreshToken(r.Context(), userID, pair.RefreshToken); err != nil {
		return models.TokenPair{}, err
	}
	return pair, nil
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword verifies the current password before storing a new hash.
func (h UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		respondError(ctx, w, apierr.Auth("invalid old password"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(ctx, w, apierr.Internal("could not hash password").WithCause(err))
		return
	}
	if err := h.Users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, nil, "password changed successfully")
}

// CurrentUser returns the authenticated user's profile.
func (h UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}
	respond(ctx, w, http.StatusOK, user, "current user fetched successfully")
}

type updateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateAccount changes the mutable profile fields and returns the saved user.
func (h UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	updated, err := h.Users.UpdateProfile(ctx, user.ID, strings.TrimSpace(req.FullName), strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, apierr.Conflict("email already in use"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, updated, "account details updated successfully")
}

// UpdateAvatar replaces the avatar image and schedules deletion of the old one.
func (h UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", "avatars", h.Users.UpdateAvatar, func(u models.User) string { return u.AvatarKey })
}

// UpdateCoverImage replaces the cover image and schedules deletion of the old one.
func (h UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", "covers", h.Users.UpdateCoverImage, func(u models.User) string { return u.CoverImageKey })
}

func (h UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field, prefix string,
	persist func(ctx context.Context, id, url, key string) (models.User, error),
	oldKey func(models.User) string,
) {
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

	uploaded, err := uploadFormFile(r, h.Media, field, prefix, true)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	updated, err := persist(ctx, user.ID, uploaded.URL, uploaded.Key)
	if err != nil {
		h.Cleaner.Enqueue(ctx, uploaded.Key)
		respondError(ctx, w, err)
		return
	}

	h.Cleaner.Enqueue(ctx, oldKey(user))
	respond(ctx, w, http.StatusOK, updated, field+" updated successfully")
}
