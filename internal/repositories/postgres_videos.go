package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cliptube/backend/internal/db"
	"github.com/cliptube/backend/internal/models"
)

const videoColumns = `id, owner_id, title, description, video_url, asset_key,
        thumbnail_url, thumbnail_key, duration_seconds, views, published,
        created_at, updated_at`

// sortColumns whitelists user-supplied sort fields. Anything else falls back
// to creation time.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"duration":  "duration_seconds",
	"views":     "views",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern neutralizes LIKE metacharacters so free-text search
// matches them literally.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// PostgresVideoRepository provides PostgreSQL-backed persistence for videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// Create stores a new video record.
func (r *PostgresVideoRepository) Create(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO videos (id, owner_id, title, description, video_url,
                asset_key, thumbnail_url, thumbnail_key, duration_seconds,
                views, published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `, video.ID, video.OwnerID, video.Title, video.Description, video.VideoURL,
		video.AssetKey, video.ThumbnailURL, video.ThumbnailKey, video.Duration,
		video.Views, video.Published, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert video: %w", err)
	}

	return nil
}

// FindByID fetches a video by its identifier.
func (r *PostgresVideoRepository) FindByID(ctx context.Context, id string) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	return scanVideo(row)
}

// FindWithOwner fetches a video together with its owner's public profile.
func (r *PostgresVideoRepository) FindWithOwner(ctx context.Context, id string) (models.Video, models.VideoOwner, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, models.VideoOwner{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT v.id, v.owner_id, v.title, v.description, v.video_url,
               v.asset_key, v.thumbnail_url, v.thumbnail_key,
               v.duration_seconds, v.views, v.published, v.created_at,
               v.updated_at, u.id, u.username, u.avatar_url
        FROM videos v
        JOIN users u ON u.id = v.owner_id
        WHERE v.id = $1
    `, id)

	var (
		video models.Video
		owner models.VideoOwner
	)
	err = row.Scan(&video.ID, &video.OwnerID, &video.Title, &video.Description,
		&video.VideoURL, &video.AssetKey, &video.ThumbnailURL, &video.ThumbnailKey,
		&video.Duration, &video.Views, &video.Published, &video.CreatedAt,
		&video.UpdatedAt, &owner.ID, &owner.Username, &owner.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, models.VideoOwner{}, ErrNotFound
		}
		return models.Video{}, models.VideoOwner{}, fmt.Errorf("select video with owner: %w", err)
	}

	return video, owner, nil
}

// List returns one page of videos plus the total match count.
func (r *PostgresVideoRepository) List(ctx context.Context, params VideoListParams) ([]models.Video, int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	where := "TRUE"
	args := []any{}
	arg := 1

	if params.OwnerID != "" {
		where += fmt.Sprintf(" AND owner_id = $%d", arg)
		args = append(args, params.OwnerID)
		arg++
	}
	if params.Query != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", arg, arg)
		args = append(args, "%"+escapeLikePattern(params.Query)+"%")
		arg++
	}

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM videos WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	column, ok := sortColumns[params.SortBy]
	direction := "ASC"
	if !ok {
		column = "created_at"
		direction = "DESC"
	} else if !params.SortAsc {
		direction = "DESC"
	}

	offset := (params.Page - 1) * params.Limit
	query := fmt.Sprintf(`SELECT `+videoColumns+` FROM videos WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		where, column, direction, arg, arg+1)
	args = append(args, params.Limit, offset)

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, err
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, total, nil
}

// Update modifies the mutable video fields.
func (r *PostgresVideoRepository) Update(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET title = $2, description = $3, thumbnail_url = $4,
            thumbnail_key = $5, updated_at = $6
        WHERE id = $1
    `, video.ID, video.Title, video.Description, video.ThumbnailURL,
		video.ThumbnailKey, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a video record.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// TogglePublished flips the publish flag in a single statement and returns
// the new value.
func (r *PostgresVideoRepository) TogglePublished(ctx context.Context, id string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var published bool
	err = conn.QueryRow(ctx, `
        UPDATE videos
        SET published = NOT published, updated_at = $2
        WHERE id = $1
        RETURNING published
    `, id, time.Now().UTC()).Scan(&published)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("toggle publish status: %w", err)
	}

	return published, nil
}

// IncrementViews bumps the view counter without a read-modify-write cycle.
func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanVideo(row pgx.Row) (models.Video, error) {
	var video models.Video
	err := row.Scan(&video.ID, &video.OwnerID, &video.Title, &video.Description,
		&video.VideoURL, &video.AssetKey, &video.ThumbnailURL, &video.ThumbnailKey,
		&video.Duration, &video.Views, &video.Published, &video.CreatedAt,
		&video.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("scan video: %w", err)
	}
	return video, nil
}

var _ VideoRepository = (*PostgresVideoRepository)(nil)
