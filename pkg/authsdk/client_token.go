package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// PasswordGrant exchanges a username and password for an access token.
// A failed login returns an *APIError with code "invalid_grant"; the server
// does not say whether the username or the password was wrong.
func (c *SDKClient) PasswordGrant(
	ctx context.Context,
	username, password string,
	scopes []string,
) (*TokenResponse, error) {
	data := url.Values{
		"username": {username},
		"password": {password},
	}
	if len(scopes) > 0 {
		data.Set("scope", strings.Join(scopes, " "))
	}

	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/token", strings.NewReader(data.Encode()), headers)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}
