package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Dependencies bundles everything the HTTP layer needs. Stores are interfaces
// so tests can swap in-memory fakes for the Postgres implementations.
type Dependencies struct {
	Users         UserStore
	Videos        VideoStore
	Comments      CommentStore
	Likes         LikeStore
	Playlists     PlaylistStore
	Subscriptions SubscriptionStore
	Tokens        TokenManager
	Media         MediaStore
	Cleaner       AssetCleaner
	DB            Pinger
	AuthLimiter   RateLimiter
}

// NewRouter wires every endpoint under /api/v1. Credential endpoints are rate
// limited per client IP; everything past the public surface requires a valid
// access token.
func NewRouter(deps Dependencies) http.Handler {
	users := UserHandler{Users: deps.Users, Tokens: deps.Tokens, Media: deps.Media, Cleaner: deps.Cleaner}
	videos := VideoHandler{Videos: deps.Videos, Media: deps.Media, Cleaner: deps.Cleaner}
	comments := CommentHandler{Comments: deps.Comments, Videos: deps.Videos}
	likes := LikeHandler{Likes: deps.Likes}
	playlists := PlaylistHandler{Playlists: deps.Playlists, Videos: deps.Videos}
	subscriptions := SubscriptionHandler{Subscriptions: deps.Subscriptions, Users: deps.Users}
	health := HealthHandler{DB: deps.DB}
	auth := AuthMiddleware{Users: deps.Users, Tokens: deps.Tokens}

	r := chi.NewRouter()

	r.Get("/healthz", health.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", rateLimit(deps.AuthLimiter, "register", users.Register))
			r.Post("/login", rateLimit(deps.AuthLimiter, "login", users.Login))
			r.Post("/refresh-token", rateLimit(deps.AuthLimiter, "refresh", users.Refresh))

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Post("/logout", users.Logout)
				r.Post("/change-password", users.ChangePassword)
				r.Get("/current-user", users.CurrentUser)
				r.Patch("/update-account", users.UpdateAccount)
				r.Patch("/avatar", users.UpdateAvatar)
				r.Patch("/cover-image", users.UpdateCoverImage)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", videos.List)
			r.Get("/{videoId}", videos.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Post("/", videos.Publish)
				r.Patch("/{videoId}", videos.Update)
				r.Delete("/{videoId}", videos.Delete)
				r.Patch("/toggle/publish/{videoId}", videos.TogglePublish)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/{videoId}", comments.ListByVideo)
			r.Post("/{videoId}", comments.Create)
			r.Patch("/c/{commentId}", comments.Update)
			r.Delete("/c/{commentId}", comments.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/toggle/v/{videoId}", likes.ToggleVideo)
			r.Post("/toggle/c/{commentId}", likes.ToggleComment)
			r.Post("/toggle/t/{tweetId}", likes.ToggleTweet)
			r.Get("/videos", likes.LikedVideos)
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/", playlists.Create)
			r.Get("/user/{userId}", playlists.ListByUser)
			r.Get("/{playlistId}", playlists.Get)
			r.Patch("/{playlistId}", playlists.Update)
			r.Delete("/{playlistId}", playlists.Delete)
			r.Patch("/add/{videoId}/{playlistId}", playlists.AddVideo)
			r.Patch("/remove/{videoId}/{playlistId}", playlists.RemoveVideo)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/c/{channelId}", subscriptions.Toggle)
			r.Get("/c/{channelId}", subscriptions.Subscribers)
			r.Get("/u/{subscriberId}", subscriptions.Channels)
		})
	})

	return r
}
