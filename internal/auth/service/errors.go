package service

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUnauthorized covers every token or Basic-auth failure: bad signature,
	// malformed token, expired token, missing subject, deleted account.
	ErrUnauthorized = errors.New("unauthorized user")

	ErrForbidden       = errors.New("insufficient permissions")
	ErrInactiveAccount = errors.New("inactive user")
	ErrInvalidScope    = errors.New("invalid_scope")

	// Configuration errors. These abort startup and are never a per-request
	// outcome the caller can fix.
	ErrUnknownRole = errors.New("unknown role")
	ErrInvalidRole = errors.New("invalid role definition")
)

const (
	SchemeBearer = "Bearer"
	SchemeBasic  = "Basic"
)

// ChallengeError wraps ErrUnauthorized or ErrForbidden with what the transport
// needs to build a WWW-Authenticate header.
type ChallengeError struct {
	Err    error
	Scheme string

	// Scope is the space-delimited list of scopes the operation required.
	// Bearer only.
	Scope string

	// Realm is sent with Basic challenges.
	Realm string
}

func (e *ChallengeError) Error() string { return e.Err.Error() }
func (e *ChallengeError) Unwrap() error { return e.Err }

// Header renders the WWW-Authenticate value.
func (e *ChallengeError) Header() string {
	switch e.Scheme {
	case SchemeBasic:
		if e.Realm == "" {
			return SchemeBasic
		}
		return SchemeBasic + ` realm="` + e.Realm + `"`
	default:
		if e.Scope == "" {
			return SchemeBearer
		}
		return SchemeBearer + ` scope="` + e.Scope + `"`
	}
}

func bearerChallenge(err error, required []string) *ChallengeError {
	return &ChallengeError{
		Err:    err,
		Scheme: SchemeBearer,
		Scope:  strings.Join(required, " "),
	}
}
