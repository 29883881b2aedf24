package domain

import "errors"

// Webhook change types delivered by the database trigger.
const (
	WebhookInsert = "INSERT"
	WebhookUpdate = "UPDATE"
	WebhookDelete = "DELETE"
)

// Sentinel errors for the forwarding pipeline.
var (
	ErrTokenNotFound = errors.New("fcm token not found")
	ErrMisconfigured = errors.New("push credentials missing or invalid")
	ErrDatabase      = errors.New("database error")
)

// EventInvite is the row snapshot delivered by the event_invites trigger.
// It is never mutated by this service.
// swagger:model EventInvite
type EventInvite struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	InviteeID string `json:"invitee_id"`
	Status    string `json:"status"`
}

// WebhookPayload is the body the database webhook posts on row changes.
// swagger:model WebhookPayload
type WebhookPayload struct {
	Type   string       `json:"type"`
	Table  string       `json:"table"`
	Schema string       `json:"schema"`
	Record *EventInvite `json:"record"`
}

// HasCompleteRecord reports whether the payload carries the identifiers the
// forwarder needs. Status is optional; the trigger may omit it.
func (p *WebhookPayload) HasCompleteRecord() bool {
	r := p.Record
	return r != nil && r.ID != "" && r.EventID != "" && r.InviteeID != ""
}
