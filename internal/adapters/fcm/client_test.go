package fcm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitepush/internal/domain"
)

// staticTokens implements domain.TokenSource with a fixed bearer token.
type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func testMessage() *domain.PushMessage {
	return domain.NewInvitePush("tok123", &domain.EventInvite{ID: "i1", EventID: "e1", InviteeID: "u1"})
}

func TestClient_Send(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"projects/proj-1/messages/msg1"}`))
	}))
	defer srv.Close()

	c := &client{
		projectID:  "proj-1",
		tokens:     &staticTokens{token: "at-123"},
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}

	result, err := c.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"name":"projects/proj-1/messages/msg1"}`, string(result.Body))

	assert.Equal(t, "/v1/projects/proj-1/messages:send", gotPath)
	assert.Equal(t, "Bearer at-123", gotAuth)

	msg, ok := gotBody["message"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tok123", msg["token"])
	notif, ok := msg["notification"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, domain.InviteTitle, notif["title"])
	assert.Equal(t, domain.InviteBody, notif["body"])
	data, ok := msg["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "e1", data["event_id"])
	assert.Equal(t, "i1", data["invite_id"])
	assert.Equal(t, domain.InviteClickAction, data["click_action"])
}

func TestClient_Send_RejectionIsRelayedNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	c := &client{
		projectID:  "proj-1",
		tokens:     &staticTokens{token: "at-123"},
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}

	result, err := c.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
	assert.JSONEq(t, `{"error":"invalid token"}`, string(result.Body))
}

func TestClient_Send_TokenExchangeFailure(t *testing.T) {
	c := &client{
		projectID:  "proj-1",
		tokens:     &staticTokens{err: errors.New("invalid_grant")},
		baseURL:    "http://127.0.0.1:1",
		httpClient: http.DefaultClient,
	}

	_, err := c.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}
