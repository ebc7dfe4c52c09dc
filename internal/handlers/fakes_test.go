package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
	"github.com/cliptube/backend/internal/storage"
)

// envelope mirrors apiResponse for decoding test responses.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

// withChiParam injects a URL parameter the way the router would. It reuses
// an existing route context so repeated calls accumulate parameters.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repositories.ErrConflict
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByLogin(_ context.Context, identifier string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id, fullName, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	user.FullName = fullName
	user.Email = email
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) UpdateAvatar(_ context.Context, id, url, key string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	user.AvatarURL = url
	user.AvatarKey = key
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) UpdateCoverImage(_ context.Context, id, url, key string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	user.CoverImageURL = url
	user.CoverImageKey = key
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Password = passwordHash
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) SetRefreshToken(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.RefreshToken = token
	s.users[id] = user
	return nil
}

type fakeVideoStore struct {
	mu     sync.Mutex
	videos map[string]models.Video
	owners map[string]models.VideoOwner
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{
		videos: make(map[string]models.Video),
		owners: make(map[string]models.VideoOwner),
	}
}

func (s *fakeVideoStore) Create(_ context.Context, video models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos[video.ID] = video
	return nil
}

func (s *fakeVideoStore) FindByID(_ context.Context, id string) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (s *fakeVideoStore) FindWithOwner(_ context.Context, id string) (models.Video, models.VideoOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, models.VideoOwner{}, repositories.ErrNotFound
	}
	return video, s.owners[video.OwnerID], nil
}

func (s *fakeVideoStore) List(_ context.Context, params repositories.VideoListParams) ([]models.Video, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Video
	for _, video := range s.videos {
		if params.OwnerID != "" && video.OwnerID != params.OwnerID {
			continue
		}
		all = append(all, video)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (params.Page - 1) * params.Limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *fakeVideoStore) Update(_ context.Context, video models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[video.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.videos[video.ID] = video
	return nil
}

func (s *fakeVideoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.videos, id)
	return nil
}

func (s *fakeVideoStore) TogglePublished(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	video.Published = !video.Published
	s.videos[id] = video
	return video.Published, nil
}

func (s *fakeVideoStore) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[id]
	if !ok {
		return repositories.ErrNotFound
	}
	video.Views++
	s.videos[id] = video
	return nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	comments map[string]models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[string]models.Comment)}
}

func (s *fakeCommentStore) Create(_ context.Context, comment models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeCommentStore) FindByID(_ context.Context, id string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, repositories.ErrNotFound
	}
	return comment, nil
}

func (s *fakeCommentStore) ListByVideo(_ context.Context, videoID string, page, limit int) ([]models.Comment, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Comment
	for _, comment := range s.comments {
		if comment.VideoID == videoID {
			all = append(all, comment)
		}
	}
	return all, int64(len(all)), nil
}

func (s *fakeCommentStore) UpdateContent(_ context.Context, id, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, repositories.ErrNotFound
	}
	comment.Content = content
	s.comments[id] = comment
	return comment, nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

type fakeLikeStore struct {
	mu    sync.Mutex
	likes map[string]models.Like
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[string]models.Like)}
}

func likeKey(ownerID string, target models.LikeTarget) string {
	return fmt.Sprintf("%s|%s|%s", ownerID, target.Kind, target.ID)
}

func (s *fakeLikeStore) Toggle(_ context.Context, like models.Like) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := likeKey(like.OwnerID, like.Target)
	if _, ok := s.likes[key]; ok {
		delete(s.likes, key)
		return false, nil
	}
	s.likes[key] = like
	return true, nil
}

func (s *fakeLikeStore) ListLikedVideos(_ context.Context, ownerID string) ([]models.Video, error) {
	return nil, nil
}

type fakePlaylistStore struct {
	mu        sync.Mutex
	playlists map[string]models.Playlist
}

func newFakePlaylistStore() *fakePlaylistStore {
	return &fakePlaylistStore{playlists: make(map[string]models.Playlist)}
}

func (s *fakePlaylistStore) Create(_ context.Context, playlist models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists[playlist.ID] = playlist
	return nil
}

func (s *fakePlaylistStore) FindByID(_ context.Context, id string) (models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	playlist, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	return playlist, nil
}

func (s *fakePlaylistStore) ListByOwner(_ context.Context, ownerID string) ([]models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Playlist
	for _, playlist := range s.playlists {
		if playlist.OwnerID == ownerID {
			all = append(all, playlist)
		}
	}
	return all, nil
}

func (s *fakePlaylistStore) UpdateDetails(_ context.Context, id, name, description string) (models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	playlist, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	playlist.Name = name
	playlist.Description = description
	s.playlists[id] = playlist
	return playlist, nil
}

func (s *fakePlaylistStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.playlists, id)
	return nil
}

func (s *fakePlaylistStore) AddVideo(_ context.Context, playlistID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	playlist, ok := s.playlists[playlistID]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, id := range playlist.VideoIDs {
		if id == videoID {
			return repositories.ErrConflict
		}
	}
	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	s.playlists[playlistID] = playlist
	return nil
}

func (s *fakePlaylistStore) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	playlist, ok := s.playlists[playlistID]
	if !ok {
		return repositories.ErrNotFound
	}
	for i, id := range playlist.VideoIDs {
		if id == videoID {
			playlist.VideoIDs = append(playlist.VideoIDs[:i], playlist.VideoIDs[i+1:]...)
			s.playlists[playlistID] = playlist
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeSubscriptionStore struct {
	mu    sync.Mutex
	pairs map[string]struct{}
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{pairs: make(map[string]struct{})}
}

func (s *fakeSubscriptionStore) Toggle(_ context.Context, subscriberID, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := subscriberID + "|" + channelID
	if _, ok := s.pairs[key]; ok {
		delete(s.pairs, key)
		return false, nil
	}
	s.pairs[key] = struct{}{}
	return true, nil
}

func (s *fakeSubscriptionStore) ListSubscribers(_ context.Context, channelID string) ([]models.ChannelProfile, error) {
	return nil, nil
}

func (s *fakeSubscriptionStore) ListChannels(_ context.Context, subscriberID string) ([]models.ChannelProfile, error) {
	return nil, nil
}

type fakeMediaStore struct {
	mu      sync.Mutex
	uploads []string
}

func (s *fakeMediaStore) Upload(_ context.Context, key, contentType string, r io.Reader) (storage.UploadResult, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return storage.UploadResult{}, err
	}
	s.mu.Lock()
	s.uploads = append(s.uploads, key)
	s.mu.Unlock()
	return storage.UploadResult{URL: "https://media.test/" + key, Key: key}, nil
}

type fakeCleaner struct {
	mu   sync.Mutex
	keys []string
}

func (c *fakeCleaner) Enqueue(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	c.keys = append(c.keys, key)
	c.mu.Unlock()
	return nil
}

// withUser mimics RequireAuth by attaching the user to the request context.
func withUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
