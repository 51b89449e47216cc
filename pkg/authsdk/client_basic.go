package authsdk

import (
	"context"
	"fmt"
	"net/http"
)

// MeBasic authenticates with HTTP Basic credentials and returns the username
// the server resolved. There is no token involved; every call re-authenticates.
func (c *SDKClient) MeBasic(ctx context.Context, username, password string) (*BasicUserResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/v1/users/me/basic"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(username, password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var out BasicUserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
