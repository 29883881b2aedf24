package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"invitepush/internal/domain"
)

const defaultBaseURL = "https://fcm.googleapis.com"

// Responses larger than this are truncated; FCM error bodies are small.
const maxResponseBytes = 1 << 20

type client struct {
	projectID  string
	tokens     domain.TokenSource
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a PushSender for the FCM HTTP v1 API. Each send mints a
// fresh bearer token through the given TokenSource.
func NewClient(projectID string, tokens domain.TokenSource) domain.PushSender {
	return &client{
		projectID:  projectID,
		tokens:     tokens,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type message struct {
	Token        string            `json:"token"`
	Notification notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type sendRequest struct {
	Message message `json:"message"`
}

// Send posts one message to messages:send and returns FCM's status and raw
// body. Only transport-level failures are errors; an FCM rejection comes back
// in the PushResult so callers can relay it.
func (c *client) Send(ctx context.Context, msg *domain.PushMessage) (*domain.PushResult, error) {
	accessToken, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(sendRequest{
		Message: message{
			Token:        msg.Token,
			Notification: notification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode fcm message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s/messages:send", c.baseURL, c.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fcm request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read fcm response: %w", err)
	}

	return &domain.PushResult{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(respBody),
	}, nil
}
