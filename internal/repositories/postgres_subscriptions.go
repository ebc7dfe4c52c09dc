package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgxv5"
	"github.com/jackc/pgx/v5"

	"github.com/cliptube/backend/internal/db"
	"github.com/cliptube/backend/internal/models"
)

// PostgresSubscriptionRepository provides PostgreSQL-backed persistence for
// the subscriber/channel relationship.
type PostgresSubscriptionRepository struct {
	pool db.Pool
}

// NewPostgresSubscriptionRepository constructs a subscription repository
// backed by PostgreSQL.
func NewPostgresSubscriptionRepository(pool db.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

// Toggle subscribes when no relationship row exists and unsubscribes when one
// does. Both steps run inside a single transaction with serialization-conflict
// retry, so concurrent toggles by the same subscriber cannot create duplicate
// rows or double-delete.
func (r *PostgresSubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var subscribed bool
	err = crdbpgx.ExecuteTx(ctx, conn, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
            VALUES ($1, $2, $3)
            ON CONFLICT (subscriber_id, channel_id) DO NOTHING
        `, subscriberID, channelID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("insert subscription: %w", err)
		}

		if tag.RowsAffected() > 0 {
			subscribed = true
			return nil
		}

		if _, err := tx.Exec(ctx, `
            DELETE FROM subscriptions
            WHERE subscriber_id = $1 AND channel_id = $2
        `, subscriberID, channelID); err != nil {
			return fmt.Errorf("delete subscription: %w", err)
		}

		subscribed = false
		return nil
	})
	if err != nil {
		return false, err
	}

	return subscribed, nil
}

// ListSubscribers returns the public profiles of a channel's subscribers.
func (r *PostgresSubscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]models.ChannelProfile, error) {
	return r.listProfiles(ctx, `
        SELECT u.id, u.username, u.full_name, u.avatar_url
        FROM subscriptions s
        JOIN users u ON u.id = s.subscriber_id
        WHERE s.channel_id = $1
        ORDER BY s.created_at DESC
    `, channelID)
}

// ListChannels returns the public profiles of the channels a user follows.
func (r *PostgresSubscriptionRepository) ListChannels(ctx context.Context, subscriberID string) ([]models.ChannelProfile, error) {
	return r.listProfiles(ctx, `
        SELECT u.id, u.username, u.full_name, u.avatar_url
        FROM subscriptions s
        JOIN users u ON u.id = s.channel_id
        WHERE s.subscriber_id = $1
        ORDER BY s.created_at DESC
    `, subscriberID)
}

func (r *PostgresSubscriptionRepository) listProfiles(ctx context.Context, query, id string) ([]models.ChannelProfile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query subscription profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.ChannelProfile
	for rows.Next() {
		var profile models.ChannelProfile
		if err := rows.Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan subscription profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscription profiles: %w", err)
	}

	return profiles, nil
}

var _ SubscriptionRepository = (*PostgresSubscriptionRepository)(nil)
