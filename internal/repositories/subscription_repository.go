package repositories

import (
	"context"

	"github.com/cliptube/backend/internal/models"
)

// SubscriptionRepository defines the data access contract for the
// subscriber/channel relationship.
type SubscriptionRepository interface {
	// Toggle atomically subscribes when no relationship exists or
	// unsubscribes when one does, reporting whether the caller is now
	// subscribed.
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]models.ChannelProfile, error)
	ListChannels(ctx context.Context, subscriberID string) ([]models.ChannelProfile, error)
}
