package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// MeHandler godoc
//
//	@Summary		Current user
//	@Description	Returns the identity of the token holder. Requires profile.read scope.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"username, role, scopes"
//	@Failure		400	{object}	authsdk.ErrorResponse	"Inactive account"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Forbidden - missing required scope"
//	@Security		BearerAuth
//	@Router			/v1/users/me [get].
func MeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		slogx.FromContext(r.Context()).Error("me handler reached without an identity")
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{
		Username: id.Username,
		FullName: id.FullName,
		Email:    id.Email,
		Role:     id.Role,
		Disabled: id.Disabled,
		Scopes:   id.Scopes,
	})
}

// MyScopesHandler godoc
//
//	@Summary		Token scopes
//	@Description	Returns the scopes carried by the presented token. Any valid token is accepted.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.ScopesResponse	"username, scopes"
//	@Failure		400	{object}	authsdk.ErrorResponse	"Inactive account"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Security		BearerAuth
//	@Router			/v1/users/me/scopes [get].
func MyScopesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.WriteJSON(w, http.StatusOK, authsdk.ScopesResponse{
		Username: httpx.UsernameFromContext(ctx),
		Scopes:   httpx.ScopesFromContext(ctx),
	})
}

// MeBasicHandler godoc
//
//	@Summary		Current user (Basic)
//	@Description	Returns the username resolved from HTTP Basic credentials.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.BasicUserResponse	"username"
//	@Failure		400	{object}	authsdk.ErrorResponse		"Inactive account"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Unauthorized - missing or wrong credentials"
//	@Security		BasicAuth
//	@Router			/v1/users/me/basic [get].
func MeBasicHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, authsdk.BasicUserResponse{
		Username: httpx.UsernameFromContext(r.Context()),
	})
}
