package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"invitepush/internal/domain"
)

type forwarderService struct {
	profiles domain.ProfileRepository
	creds    *domain.ServiceCredentials
	sender   domain.PushSender
	logger   *slog.Logger
}

// NewForwarderService creates a ForwarderService over the given profile store,
// service-account credentials, and push sender.
func NewForwarderService(profiles domain.ProfileRepository, creds *domain.ServiceCredentials, sender domain.PushSender, logger *slog.Logger) domain.ForwarderService {
	return &forwarderService{
		profiles: profiles,
		creds:    creds,
		sender:   sender,
		logger:   logger,
	}
}

// Forward looks up the invitee's device token and dispatches the invite push.
// Credentials are checked before any outbound call so a misconfigured
// deployment fails without network I/O. Errors are distinguished by sentinel:
// ErrMisconfigured, ErrTokenNotFound, ErrDatabase, or an unexpected error from
// the token exchange or the push transport.
func (s *forwarderService) Forward(ctx context.Context, invite *domain.EventInvite) (*domain.PushResult, error) {
	if err := s.creds.Validate(); err != nil {
		return nil, err
	}

	token, err := s.profiles.GetPushToken(ctx, invite.InviteeID)
	if errors.Is(err, domain.ErrTokenNotFound) {
		s.logger.Warn("no fcm token for invitee", "invite_id", invite.ID, "invitee_id", invite.InviteeID)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}

	result, err := s.sender.Send(ctx, domain.NewInvitePush(token, invite))
	if err != nil {
		return nil, err
	}

	s.logger.Info("invite push dispatched",
		"invite_id", invite.ID,
		"event_id", invite.EventID,
		"invitee_id", invite.InviteeID,
		"fcm_status", result.StatusCode,
	)
	return result, nil
}
