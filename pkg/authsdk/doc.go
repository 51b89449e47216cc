/*
Package authsdk provides a client SDK for the gatekeeper authentication gate.

# SDKClient vs Session

  - SDKClient: unauthenticated operations, Basic-auth calls and the password grant
  - Session: operations that present a bearer token

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Password grant; nil scopes asks for everything the role grants
	session, err := client.AuthenticateWithPassword(ctx, username, password, nil)

	// Requires profile.read
	me, err := session.Me(ctx)

# Tokens

gatekeeper issues short-lived access tokens only. There is no refresh grant:
once a Session expires every call returns ErrSessionExpired and the caller
authenticates again.

# Scopes

Scopes are dot-separated. "*" grants everything and "data.*" grants every
scope under "data". Sessions check scopes client-side before sending a request
unless SDKClient.CheckScopes is false.

# Errors

Server failures decode into *APIError. Compare with errors.Is against the
predefined values, which match on Code:

	if errors.Is(err, authsdk.ErrIncorrectCredentials) {
		// wrong username or password
	}
*/
package authsdk
