package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// DataHandler is the sample protected resource. Each method sits behind its
// own scope so the three of them exercise literal and wildcard grants.
//
//	@Summary		Sample protected resource
//	@Description	GET needs data.view, PUT needs data.edit and DELETE needs data.delete.
//	@Tags			Data
//	@Produce		json
//	@Success		200	{object}	authsdk.DataResponse	"action, username, message"
//	@Failure		400	{object}	authsdk.ErrorResponse	"Inactive account"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Forbidden - missing required scope"
//	@Security		BearerAuth
//	@Router			/v1/data [get]
//	@Router			/v1/data [put]
//	@Router			/v1/data [delete].
func DataHandler(w http.ResponseWriter, r *http.Request) {
	var action string
	switch r.Method {
	case http.MethodGet:
		action = "view"
	case http.MethodPut:
		action = "edit"
	case http.MethodDelete:
		action = "delete"
	}

	username := httpx.UsernameFromContext(r.Context())
	slogx.FromContext(r.Context()).Info("data access", "action", action)

	httpx.WriteJSON(w, http.StatusOK, authsdk.DataResponse{
		Action:   action,
		Username: username,
		Message:  username + " may " + action + " data",
	})
}
