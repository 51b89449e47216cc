package gatekeeper_test

import (
	"testing"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestPasswordGrant(t *testing.T) {
	c := setupContainer(t, nil)
	c.addUser(t, "vera", "Viewer123!", "viewer")
	client := c.client()

	tok, err := client.PasswordGrant(t.Context(), "vera", "Viewer123!", nil)
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.Equal(t, 900, tok.ExpiresIn)
	require.Equal(t, "profile.read data.view", tok.Scope)

	_, err = client.PasswordGrant(t.Context(), "vera", "wrong", nil)
	assertAPIError(t, err, authsdk.ErrIncorrectCredentials)

	_, err = client.PasswordGrant(t.Context(), "nobody", "wrong", nil)
	assertAPIError(t, err, authsdk.ErrIncorrectCredentials)

	_, err = client.PasswordGrant(t.Context(), "vera", "Viewer123!", []string{"data.delete"})
	assertAPIError(t, err, authsdk.ErrInvalidScope)
}

func TestTokenLifetimeFromConfig(t *testing.T) {
	c := setupContainer(t, map[string]string{"AUTH_ACCESS_TTL": "2m"})
	c.addUser(t, "vera", "Viewer123!", "viewer")

	tok, err := c.client().PasswordGrant(t.Context(), "vera", "Viewer123!", nil)
	require.NoError(t, err)
	require.Equal(t, 120, tok.ExpiresIn)
}
