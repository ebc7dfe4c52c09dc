package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cliptube/backend/internal/apierr"
	"github.com/cliptube/backend/internal/repositories"
)

// SubscriptionHandler serves the subscriber/channel relationship.
type SubscriptionHandler struct {
	Subscriptions SubscriptionStore
	Users         UserStore
}

// Toggle subscribes the caller to a channel, or unsubscribes if already
// subscribed. Subscribing to yourself is rejected.
func (h SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		respondError(ctx, w, apierr.Auth("unauthorized request"))
		return
	}

	channelID := chi.URLParam(r, "channelId")
	if channelID == user.ID {
		respondError(ctx, w, apierr.Validation("cannot subscribe to your own channel"))
		return
	}

	if _, err := h.Users.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, apierr.NotFound("channel not found"))
			return
		}
		respondError(ctx, w, err)
		return
	}

	subscribed, err := h.Subscriptions.Toggle(ctx, user.ID, channelID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	if subscribed {
		respond(ctx, w, http.StatusCreated, map[string]any{"subscribed": true}, "subscribed successfully")
		return
	}
	respond(ctx, w, http.StatusOK, map[string]any{"subscribed": false}, "unsubscribed successfully")
}

// Subscribers lists the users subscribed to a channel.
func (h SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.Subscriptions.ListSubscribers(ctx, chi.URLParam(r, "channelId"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, profiles, "subscribers fetched successfully")
}

// Channels lists the channels a user is subscribed to.
func (h SubscriptionHandler) Channels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.Subscriptions.ListChannels(ctx, chi.URLParam(r, "subscriberId"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, profiles, "subscribed channels fetched successfully")
}
