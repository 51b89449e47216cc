package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/metrics"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// DefaultDirectoryTimeout bounds a single directory round trip.
const DefaultDirectoryTimeout = 3 * time.Second

// DirectoryScope hands out a directory bound to one pooled connection for the
// duration of a callback.
type DirectoryScope struct {
	Store   store.Store
	Timeout time.Duration
}

// Use acquires a connection, runs fn against its directory and releases the
// connection on every exit path.
func (d *DirectoryScope) Use(ctx context.Context, fn func(ctx context.Context, dir service.Directory) error) error {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultDirectoryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := d.Store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire directory: %w", err)
	}
	defer conn.Close()

	return fn(ctx, conn.Users())
}

type identityKey struct{}

// IdentityFromContext returns the identity the gate admitted.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// Gate is the authentication front door for protected routes. Both schemes
// finish with the active-user check.
type Gate struct {
	Directory     *DirectoryScope
	Authenticator *service.Authenticator
	Validator     *service.Validator
	Metrics       *metrics.Metrics
	Realm         string
}

// Bearer admits requests whose token satisfies at least one of required. No
// required scopes means any valid token will do.
func (g *Gate) Bearer(required ...string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := httpx.BearerToken(r)

			var id domain.Identity
			err := g.Directory.Use(r.Context(), func(ctx context.Context, dir service.Directory) error {
				var err error
				id, err = g.Validator.Validate(ctx, dir, raw, required)
				return err
			})
			if err == nil {
				id, err = service.RequireActive(id)
			}

			g.Metrics.AuthAttempt(metrics.MethodBearer, outcomeOf(err))
			if err != nil {
				writeServiceError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(admit(r.Context(), id, service.SchemeBearer)))
		})
	}
}

// Basic admits requests carrying valid HTTP Basic credentials. Credentials
// are checked against the directory on every call.
func (g *Gate) Basic() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id domain.Identity
			var err error

			username, password, ok := r.BasicAuth()
			if !ok {
				err = &service.ChallengeError{Err: service.ErrUnauthorized, Scheme: service.SchemeBasic, Realm: g.Realm}
			} else {
				err = g.Directory.Use(r.Context(), func(ctx context.Context, dir service.Directory) error {
					u, err := g.Authenticator.ValidateBasic(ctx, dir, username, password)
					if err != nil {
						return err
					}
					id = domain.IdentityOf(u, nil)
					return nil
				})
			}
			if err == nil {
				id, err = service.RequireActive(id)
			}

			g.Metrics.AuthAttempt(metrics.MethodBasic, outcomeOf(err))
			if err != nil {
				writeServiceError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(admit(r.Context(), id, service.SchemeBasic)))
		})
	}
}

func admit(ctx context.Context, id domain.Identity, scheme string) context.Context {
	ctx = context.WithValue(ctx, identityKey{}, id)
	ctx = httpx.ContextWithAuth(ctx, id.Username, scheme, id.Scopes)
	return slogx.WithContext(ctx, slogx.FromContext(ctx).With("username", id.Username))
}
