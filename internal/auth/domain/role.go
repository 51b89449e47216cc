package domain

// Built-in role names.
const (
	RoleViewer  = "viewer"
	RoleEditor  = "editor"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// RoleDefinition pairs a role with the scopes it grants.
type RoleDefinition struct {
	Name   string   `json:"name" yaml:"name"`
	Scopes []string `json:"scopes" yaml:"scopes"`
}

// DefaultRoles is the built-in role table.
func DefaultRoles() map[string][]string {
	return map[string][]string{
		RoleViewer:  {"profile.read", "data.view"},
		RoleEditor:  {"profile.read", "data.view", "data.edit"},
		RoleManager: {"profile.read", "data.*"},
		RoleAdmin:   {"*"},
	}
}
