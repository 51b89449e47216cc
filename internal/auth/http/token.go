package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/metrics"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/scopex"
)

// TokenHandler serves POST /v1/token.
type TokenHandler struct {
	Directory     *DirectoryScope
	Authenticator *service.Authenticator
	TokenService  *service.TokenService
	Metrics       *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Password Grant
//	@Description	Exchanges a username and password for a signed access token.
//	@Description	Without a scope the token carries every scope the user's role grants.
//	@Tags			Token
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					true	"Username"
//	@Param			password	formData	string					true	"Password"
//	@Param			scope		formData	string					false	"Space-delimited list of scopes"
//	@Success		200			{object}	authsdk.TokenResponse	"access_token, token_type, expires_in, scope"
//	@Failure		400			{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500			{object}	authsdk.ErrorResponse	"error, error_description"
//	@Header			200			{string}	Cache-Control			"no-store"
//	@Header			200			{string}	Pragma					"no-cache"
//	@Router			/v1/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		authsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	requested := scopex.Parse(r.PostForm.Get("scope"))

	var u domain.User
	err := h.Directory.Use(r.Context(), func(ctx context.Context, dir service.Directory) error {
		var err error
		u, err = h.Authenticator.Authenticate(ctx, dir, username, password)
		return err
	})

	var tok domain.Token
	if err == nil {
		tok, err = h.TokenService.IssueForUser(r.Context(), u, requested)
	}

	h.Metrics.AuthAttempt(metrics.MethodPassword, outcomeOf(err))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.Metrics.TokenIssued(u.Role)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   int(tok.ExpiresIn.Seconds()),
		Scope:       strings.Join(tok.Scopes, " "),
	})
}
