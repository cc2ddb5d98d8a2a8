// Package oauth drives the Authorization Code flow against the platform's
// identity provider. It owns the redirect-cycle plumbing; which physical
// URLs implement authorize/token/userinfo is delegated to the endpoint
// resolver.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/logger"
	"github.com/playgate/playgate/internal/utils"
)

// Resolver supplies the base URL backing a logical operation.
type Resolver interface {
	Resolve(ctx context.Context, op endpoint.Operation) (string, error)
}

// Identity is the normalized userinfo claim set the frontend needs.
type Identity struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Nick    string `json:"preferred_username"`
	Picture string `json:"picture"`
}

// Service builds oauth2 configs from resolved endpoints and performs the
// code exchange and userinfo fetch.
type Service struct {
	clientID     string
	clientSecret string
	redirectURL  string
	scopes       []string
	resolver     Resolver
	http         *http.Client
	logger       logger.Logger
}

// NewService builds the OAuth service. timeout bounds the userinfo call.
func NewService(clientID, clientSecret, redirectURL string, scopes []string, resolver Resolver, timeout time.Duration, log logger.Logger) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		scopes:       scopes,
		resolver:     resolver,
		http:         &http.Client{Timeout: timeout},
		logger:       log,
	}
}

// config resolves the authorize and token endpoints and assembles the
// oauth2 config. Resolution failures here are configuration errors.
func (s *Service) config(ctx context.Context) (*oauth2.Config, error) {
	authURL, err := s.resolver.Resolve(ctx, endpoint.OpAuthorize)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authorize endpoint: %w", err)
	}
	tokenURL, err := s.resolver.Resolve(ctx, endpoint.OpToken)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token endpoint: %w", err)
	}

	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  s.redirectURL,
		Scopes:       s.scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}, nil
}

// AuthCodeURL returns the provider URL to redirect the browser to.
func (s *Service) AuthCodeURL(ctx context.Context, state string) (string, error) {
	cfg, err := s.config(ctx)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for a token set.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return tok, nil
}

// UserInfo fetches the provider's userinfo document with the given token.
func (s *Service) UserInfo(ctx context.Context, accessToken string) (*Identity, error) {
	userinfoURL, err := s.resolver.Resolve(ctx, endpoint.OpUserInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve userinfo endpoint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo call failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return &id, nil
}

// NewState returns a random state value for CSRF protection of the
// redirect cycle.
func NewState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
