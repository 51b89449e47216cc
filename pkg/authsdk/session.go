package authsdk

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/scopex"
)

// ErrSessionExpired is returned once the access token's lifetime has passed.
// gatekeeper issues no refresh tokens, so the caller must authenticate again.
var ErrSessionExpired = errors.New("authsdk: access token expired")

// Session holds one access token and the scopes it carries.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	scopes      []string

	now func() time.Time
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, tokenResp *TokenResponse) *Session {
	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	// Subtract a small buffer so requests don't race the server's expiry check
	expiresAt = expiresAt.Add(-5 * time.Second)

	return &Session{
		client:      client,
		accessToken: tokenResp.AccessToken,
		expiresAt:   expiresAt,
		scopes:      scopex.Parse(tokenResp.Scope),
		now:         time.Now,
	}
}

func (s *Session) getValidToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ExpiresAt returns when the session stops being usable.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Scopes returns a copy of the granted scopes.
func (s *Session) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.scopes...)
}

// HasScope reports whether the token's scopes satisfy scope, honouring "*"
// and "prefix.*" the same way the server does.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scopex.Grants(s.scopes, scope)
}

// HasAnyScope returns true if at least one of scopes is satisfied.
func (s *Session) HasAnyScope(scopes ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scopex.AnyGranted(s.scopes, scopes)
}

// checkScopes mirrors the server: at least one required scope must be granted.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes {
		return nil // Scope checking disabled
	}

	if len(required) == 0 {
		return nil // No scopes required
	}

	if !s.HasAnyScope(required...) {
		return fmt.Errorf("missing required scope(s): %s", strings.Join(required, ", "))
	}

	return nil
}
