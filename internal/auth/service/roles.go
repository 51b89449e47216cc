package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/pkg/scopex"
	"gopkg.in/yaml.v3"
)

// Registry maps role names to the scopes they grant. It is built once at
// startup and never mutated, so it is safe for concurrent reads.
type Registry struct {
	roles map[string][]string
	names []string
}

// NewRegistry validates and copies table. Every role must have a name and at
// least one well formed scope.
func NewRegistry(table map[string][]string) (*Registry, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no roles defined", ErrInvalidRole)
	}

	r := &Registry{roles: make(map[string][]string, len(table))}
	for name, scopes := range table {
		if name == "" {
			return nil, fmt.Errorf("%w: empty role name", ErrInvalidRole)
		}

		norm := scopex.Normalize(scopes)
		if len(norm) == 0 {
			return nil, fmt.Errorf("%w: role %q grants no scopes", ErrInvalidRole, name)
		}
		for _, s := range norm {
			if !scopex.Valid(s) {
				return nil, fmt.Errorf("%w: role %q has malformed scope %q", ErrInvalidRole, name, s)
			}
		}

		r.roles[name] = norm
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)

	return r, nil
}

// DefaultRegistry returns the built-in viewer/editor/manager/admin table.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(domain.DefaultRoles())
	if err != nil {
		// Panic here, the built-in table is a compile time constant
		panic(err)
	}
	return r
}

type registryFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadRegistryFile reads a YAML role table:
//
//	roles:
//	  viewer: [profile.read, data.view]
//	  admin: ["*"]
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roles file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f registryFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalidRole, path, err)
	}

	return NewRegistry(f.Roles)
}

// ScopesFor returns a copy of the scopes granted to role.
func (r *Registry) ScopesFor(role string) ([]string, error) {
	scopes, ok := r.roles[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return slices.Clone(scopes), nil
}

// RoleGrants reports whether role holds required, directly or through a
// wildcard. Unknown roles grant nothing.
func (r *Registry) RoleGrants(role, required string) bool {
	return scopex.Grants(r.roles[role], required)
}

func (r *Registry) HasRole(role string) bool {
	_, ok := r.roles[role]
	return ok
}

// Roles returns the role names in sorted order.
func (r *Registry) Roles() []string {
	return slices.Clone(r.names)
}

// Definitions returns the full table in role-name order.
func (r *Registry) Definitions() []domain.RoleDefinition {
	out := make([]domain.RoleDefinition, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, domain.RoleDefinition{Name: name, Scopes: slices.Clone(r.roles[name])})
	}
	return out
}

// IsConfigError reports whether err is a role configuration problem rather
// than a per-request failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownRole) || errors.Is(err, ErrInvalidRole)
}
