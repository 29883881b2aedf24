package domain

import "context"

// ProfileRepository reads the invitee's registered device token from the
// user-profile store.
type ProfileRepository interface {
	GetPushToken(ctx context.Context, userID string) (string, error)
}

// RateLimiter checks whether a client may hit an endpoint within the current
// window. Allow returns false only when the store explicitly denies.
type RateLimiter interface {
	Allow(ctx context.Context, ipAddress, endpoint string, maxRequests, windowMinutes int) (bool, error)
}

// ForwarderService runs the invite-to-push pipeline for one webhook delivery.
type ForwarderService interface {
	Forward(ctx context.Context, invite *EventInvite) (*PushResult, error)
}
