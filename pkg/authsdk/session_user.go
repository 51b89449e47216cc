package authsdk

import (
	"context"
	"net/http"
)

// Me returns the caller's identity.
// Requires: profile.read scope
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/me", nil, nil, "profile.read")
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// MyScopes returns the scopes the server sees on the presented token.
// Requires: any valid token
func (s *Session) MyScopes(ctx context.Context) (*ScopesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/me/scopes", nil, nil)
	if err != nil {
		return nil, err
	}

	var scopes ScopesResponse
	if err := decodeJSON(resp, &scopes, http.StatusOK); err != nil {
		return nil, err
	}

	return &scopes, nil
}
