package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/config"
	"github.com/cliptube/backend/internal/handlers"
	"github.com/cliptube/backend/internal/media"
	"github.com/cliptube/backend/internal/middleware"
	"github.com/cliptube/backend/internal/repositories"
	"github.com/cliptube/backend/internal/storage"
)

// buildDependencies wires the concrete implementations used by the HTTP handlers.
func buildDependencies(pool *pgxpool.Pool, cfg config.Config, store *storage.S3MediaStore, cleaner *media.Cleaner) handlers.Dependencies {
	limiter := middleware.NewIPRateLimiter(
		cfg.AuthRateLimit.Requests,
		cfg.AuthRateLimit.Window,
		cfg.AuthRateLimit.Burst,
		10*cfg.AuthRateLimit.Window,
	)

	return handlers.Dependencies{
		Users:         repositories.NewPostgresUserRepository(pool),
		Videos:        repositories.NewPostgresVideoRepository(pool),
		Comments:      repositories.NewPostgresCommentRepository(pool),
		Likes:         repositories.NewPostgresLikeRepository(pool),
		Playlists:     repositories.NewPostgresPlaylistRepository(pool),
		Subscriptions: repositories.NewPostgresSubscriptionRepository(pool),
		Tokens:        auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Media:         store,
		Cleaner:       cleaner,
		DB:            pool,
		AuthLimiter:   limiter,
	}
}
