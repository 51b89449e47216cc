package authsdk

import (
	"context"
	"net/http"
)

// ListRoles retrieves the role table.
// Requires: roles.read scope
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/roles", nil, nil, "roles.read")
	if err != nil {
		return nil, err
	}

	var rolesResp ListRolesResponse
	if err := decodeJSON(resp, &rolesResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &rolesResp, nil
}
