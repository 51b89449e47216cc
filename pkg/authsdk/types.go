package authsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON error body. Client code should use APIError.
type ErrorResponse struct {
	// Error is the error code (e.g., "invalid_request", "invalid_grant")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is returned from POST /v1/token.
type TokenResponse struct {
	// AccessToken is the HS256 JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this token
	Scope string `json:"scope"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is the caller's identity as resolved by the gate.
type UserResponse struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Disabled bool   `json:"disabled"`

	// Scopes carried by the presented token. Absent for Basic auth.
	Scopes []string `json:"scopes,omitempty"`
}

// ScopesResponse lists the scopes carried by the presented token.
type ScopesResponse struct {
	Username string   `json:"username"`
	Scopes   []string `json:"scopes"`
}

// BasicUserResponse is returned from GET /v1/users/me/basic.
type BasicUserResponse struct {
	Username string `json:"username"`
}

// ============================================================================
// Role Types
// ============================================================================

// RoleDefinition defines a role's name and the scopes it grants.
type RoleDefinition struct {
	// Name is the role name (e.g., "viewer", "admin")
	Name string `json:"name"`

	// Scopes granted by the role, may include "*" or "prefix.*"
	Scopes []string `json:"scopes"`
}

// ListRolesResponse is returned from GET /v1/roles.
type ListRolesResponse struct {
	Roles []RoleDefinition `json:"roles"`
}

// ============================================================================
// Data Types
// ============================================================================

// DataResponse is returned by the sample /v1/data endpoints.
type DataResponse struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency in /readyz.
type HealthChecks struct {
	// Database indicates the directory connection status
	Database string `json:"database"`

	// Signer indicates whether a signing secret is loaded
	Signer string `json:"signer"`
}
