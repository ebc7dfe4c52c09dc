package repositories

import (
	"context"
	"fmt"

	"github.com/cliptube/backend/internal/db"
	"github.com/cliptube/backend/internal/models"
)

// PostgresLikeRepository provides PostgreSQL-backed persistence for likes.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Toggle inserts the like if absent, otherwise deletes it. The uniqueness
// constraint on (owner_id, target_kind, target_id) makes the insert-if-absent
// step atomic, so two concurrent toggles cannot both create a record.
func (r *PostgresLikeRepository) Toggle(ctx context.Context, like models.Like) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        INSERT INTO likes (id, owner_id, target_kind, target_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (owner_id, target_kind, target_id) DO NOTHING
    `, like.ID, like.OwnerID, string(like.Target.Kind), like.Target.ID, like.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Already present: remove it. A concurrent removal makes this a no-op,
	// which still leaves zero records for the pair.
	if _, err := conn.Exec(ctx, `
        DELETE FROM likes
        WHERE owner_id = $1 AND target_kind = $2 AND target_id = $3
    `, like.OwnerID, string(like.Target.Kind), like.Target.ID); err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}

	return false, nil
}

// ListLikedVideos returns the videos the user has liked, newest like first.
func (r *PostgresLikeRepository) ListLikedVideos(ctx context.Context, ownerID string) ([]models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT v.id, v.owner_id, v.title, v.description, v.video_url,
               v.asset_key, v.thumbnail_url, v.thumbnail_key,
               v.duration_seconds, v.views, v.published, v.created_at,
               v.updated_at
        FROM likes l
        JOIN videos v ON v.id = l.target_id
        WHERE l.owner_id = $1 AND l.target_kind = 'video'
        ORDER BY l.created_at DESC
    `, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}

	return videos, nil
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
