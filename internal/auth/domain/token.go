package domain

import "time"

// Token is what the token endpoint hands back after a successful password
// grant.
type Token struct {
	AccessToken string
	TokenType   string // always "Bearer"
	ExpiresIn   time.Duration
	ExpiresAt   time.Time
	Scopes      []string
}
