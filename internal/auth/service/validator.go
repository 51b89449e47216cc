package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/scopex"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// Validator turns a presented bearer token into an identity.
type Validator struct {
	verifier jwtx.Verifier
}

func NewValidator(verifier jwtx.Verifier) *Validator {
	return &Validator{verifier: verifier}
}

// Validate verifies raw, re-resolves its subject through dir and checks that
// the token's own scopes satisfy at least one of required. An empty required
// list only needs a valid token for an existing user.
//
// Token failures of any kind come back as ErrUnauthorized; a scope mismatch
// is ErrForbidden. Both are wrapped in a *ChallengeError.
func (v *Validator) Validate(ctx context.Context, dir Directory, raw string, required []string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	if raw == "" {
		return domain.Identity{}, bearerChallenge(ErrUnauthorized, required)
	}

	claims, err := v.verifier.Verify(raw)
	if err != nil {
		l.Debug("bearer token rejected",
			slog.String("fp", cryptox.FingerprintToken(raw)),
			slog.Any("error", err),
		)
		return domain.Identity{}, bearerChallenge(ErrUnauthorized, required)
	}

	if claims.Subject == "" {
		l.Debug("bearer token has no subject", slog.String("fp", cryptox.FingerprintToken(raw)))
		return domain.Identity{}, bearerChallenge(ErrUnauthorized, required)
	}

	u, err := dir.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("bearer token subject no longer exists", slog.String("username", claims.Subject))
			return domain.Identity{}, bearerChallenge(ErrUnauthorized, required)
		}
		return domain.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if len(required) > 0 && !scopex.AnyGranted(claims.Scopes, required) {
		l.Info("bearer token lacks required scope",
			slog.String("username", u.Username),
			slog.Any("required", required),
			slog.Any("granted", claims.Scopes),
		)
		return domain.Identity{}, bearerChallenge(ErrForbidden, required)
	}

	return domain.IdentityOf(u, claims.Scopes), nil
}

// RequireActive is the active-user gate. It runs after Validate or
// ValidateBasic and before the protected operation.
func RequireActive(id domain.Identity) (domain.Identity, error) {
	if id.Disabled {
		return domain.Identity{}, ErrInactiveAccount
	}
	return id, nil
}
