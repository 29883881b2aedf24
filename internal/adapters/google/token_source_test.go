package google

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitepush/internal/domain"
)

func generateTestKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return key, string(pemBytes)
}

func TestTokenSource_Token(t *testing.T) {
	key, pemKey := generateTestKey(t)

	var gotGrantType, gotAssertion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrantType = r.FormValue("grant_type")
		gotAssertion = r.FormValue("assertion")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	ts := &tokenSource{
		creds: &domain.ServiceCredentials{
			ProjectID:   "proj-1",
			ClientEmail: "svc@proj-1.iam.gserviceaccount.com",
			PrivateKey:  pemKey,
		},
		tokenURL:   srv.URL,
		httpClient: srv.Client(),
	}

	token, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-123", token)
	assert.Equal(t, grantType, gotGrantType)

	// The assertion must verify against the service account key and carry
	// the messaging scope.
	parsed, err := jwt.Parse(gotAssertion, func(tok *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "svc@proj-1.iam.gserviceaccount.com", claims["iss"])
	assert.Equal(t, MessagingScope, claims["scope"])
	assert.Equal(t, srv.URL, claims["aud"])
}

func TestTokenSource_Token_EndpointError(t *testing.T) {
	_, pemKey := generateTestKey(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid JWT"}`))
	}))
	defer srv.Close()

	ts := &tokenSource{
		creds:      &domain.ServiceCredentials{ClientEmail: "svc@p.iam", PrivateKey: pemKey},
		tokenURL:   srv.URL,
		httpClient: srv.Client(),
	}

	_, err := ts.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestTokenSource_Token_EmptyAccessToken(t *testing.T) {
	_, pemKey := generateTestKey(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ts := &tokenSource{
		creds:      &domain.ServiceCredentials{ClientEmail: "svc@p.iam", PrivateKey: pemKey},
		tokenURL:   srv.URL,
		httpClient: srv.Client(),
	}

	_, err := ts.Token(context.Background())
	require.Error(t, err)
}

func TestTokenSource_Token_BadKey(t *testing.T) {
	ts := &tokenSource{
		creds:      &domain.ServiceCredentials{ClientEmail: "svc@p.iam", PrivateKey: "not a pem key"},
		tokenURL:   TokenURL,
		httpClient: http.DefaultClient,
	}

	_, err := ts.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service account key")
}
