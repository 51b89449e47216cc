package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
)

type RolesHandler struct {
	Registry *service.Registry
}

// ServeHTTP handles the list roles endpoint
//
//	@Summary		List all roles
//	@Description	Returns every role and the scopes it grants. Requires roles.read scope.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	authsdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	authsdk.ErrorResponse		"Forbidden - missing required scope"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defs := h.Registry.Definitions()

	response := authsdk.ListRolesResponse{
		Roles: make([]authsdk.RoleDefinition, len(defs)),
	}
	for i, d := range defs {
		response.Roles[i] = authsdk.RoleDefinition{Name: d.Name, Scopes: d.Scopes}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
