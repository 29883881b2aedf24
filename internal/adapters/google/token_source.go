package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"invitepush/internal/domain"
)

// Google OAuth endpoints and the single scope this service requests.
const (
	TokenURL       = "https://oauth2.googleapis.com/token"
	MessagingScope = "https://www.googleapis.com/auth/firebase.messaging"

	grantType         = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime = time.Hour
)

type tokenSource struct {
	creds      *domain.ServiceCredentials
	tokenURL   string
	httpClient *http.Client
}

// NewTokenSource returns a TokenSource that performs the JWT-bearer grant
// against Google's token endpoint with the given service account. The private
// key is parsed on each exchange so that a misconfigured deployment surfaces
// the error on the request path instead of at startup.
func NewTokenSource(creds *domain.ServiceCredentials) domain.TokenSource {
	return &tokenSource{
		creds:      creds,
		tokenURL:   TokenURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (s *tokenSource) Token(ctx context.Context) (string, error) {
	assertion, err := s.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", grantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return "", fmt.Errorf("token endpoint returned %d: %s %s", resp.StatusCode, body.Error, body.ErrorDescription)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}
	return tr.AccessToken, nil
}

// signAssertion builds and signs the RS256 claim set for the JWT-bearer grant.
func (s *tokenSource) signAssertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(s.creds.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("failed to parse service account key: %w", err)
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   s.creds.ClientEmail,
		"scope": MessagingScope,
		"aud":   s.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(assertionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	assertion, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion: %w", err)
	}
	return assertion, nil
}
