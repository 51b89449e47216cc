package domain

import (
	"log/slog"
	"time"
)

// User is the stored directory record. PasswordHash never leaves the service:
// its json:"-" tag keeps it out of JSON and LogValue drops it.
type User struct {
	ID                 string
	Username           string
	FullName           string
	Email              string
	PasswordHash       string `json:"-"` // argon2id or bcrypt encoded
	Role               string
	Disabled           bool
	TokenExpireMinutes *int // per-user access token lifetime override
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TokenTTL returns the user's lifetime override, or 0 when none is set.
func (u User) TokenTTL() time.Duration {
	if u.TokenExpireMinutes == nil || *u.TokenExpireMinutes <= 0 {
		return 0
	}
	return time.Duration(*u.TokenExpireMinutes) * time.Minute
}

// LogValue implements slog.LogValuer.
func (u User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", u.ID),
		slog.String("username", u.Username),
		slog.String("role", u.Role),
		slog.Bool("disabled", u.Disabled),
	)
}

// Identity is what a protected operation receives once the gate lets a
// request through.
type Identity struct {
	Username string
	FullName string
	Email    string
	Role     string
	Disabled bool

	// Scopes carried by the presented token. Empty for Basic auth.
	Scopes []string
}

// IdentityOf projects a stored user onto the caller-facing identity.
func IdentityOf(u User, scopes []string) Identity {
	return Identity{
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Disabled: u.Disabled,
		Scopes:   scopes,
	}
}
