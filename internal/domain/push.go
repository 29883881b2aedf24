package domain

import (
	"context"
	"encoding/json"
	"strings"
)

// Notification content for invite pushes. The client relies on click_action
// to route the tap to the invite screen.
const (
	InviteTitle       = "New Event Invitation"
	InviteBody        = "You have been invited to a new event!"
	InviteClickAction = "FLUTTER_NOTIFICATION_CLICK"
)

// ServiceCredentials identify the service account used to mint access tokens
// for the push API. Sourced from the environment or a bundled JSON file.
type ServiceCredentials struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// Validate reports whether all fields are present and the key looks like PEM.
func (c *ServiceCredentials) Validate() error {
	if c == nil || c.ProjectID == "" || c.ClientEmail == "" || c.PrivateKey == "" {
		return ErrMisconfigured
	}
	if !strings.Contains(c.PrivateKey, "PRIVATE KEY") {
		return ErrMisconfigured
	}
	return nil
}

// PushMessage is one notification addressed to a single device token.
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// NewInvitePush builds the push message for a freshly inserted invite.
func NewInvitePush(token string, invite *EventInvite) *PushMessage {
	return &PushMessage{
		Token: token,
		Title: InviteTitle,
		Body:  InviteBody,
		Data: map[string]string{
			"event_id":     invite.EventID,
			"invite_id":    invite.ID,
			"click_action": InviteClickAction,
		},
	}
}

// PushResult carries the push provider's HTTP status and raw JSON body so
// failures can be relayed to the caller unmodified.
type PushResult struct {
	StatusCode int
	Body       json.RawMessage
}

// OK reports whether the provider accepted the message.
func (r *PushResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TokenSource exchanges service-account credentials for a short-lived bearer
// token. Implementations must not cache across the token's lifetime boundary.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// PushSender delivers a single message to the push provider and returns the
// provider's verbatim response. A non-2xx provider status is not an error.
type PushSender interface {
	Send(ctx context.Context, msg *PushMessage) (*PushResult, error)
}
