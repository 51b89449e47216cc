package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/scopex"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

const TokenTypeBearer = "Bearer"

type TokenService struct {
	Signer    jwtx.Signer
	Registry  *Registry
	Issuer    string
	AccessTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// IssueForUser implements the password grant after Authenticate succeeded.
//
// With no requested scopes the token carries everything the role grants.
// Otherwise it carries the requested scopes the role grants, and if that
// leaves nothing the grant fails with ErrInvalidScope.
func (s *TokenService) IssueForUser(ctx context.Context, u domain.User, requested []string) (domain.Token, error) {
	l := slogx.FromContext(ctx)

	roleScopes, err := s.Registry.ScopesFor(u.Role)
	if err != nil {
		l.Error("user has a role the registry does not know", slog.Any("user", u), slog.Any("error", err))
		return domain.Token{}, err
	}

	requested = scopex.Normalize(requested)
	granted := roleScopes
	if len(requested) > 0 {
		granted = nil
		for _, sc := range requested {
			if s.Registry.RoleGrants(u.Role, sc) {
				granted = append(granted, sc)
			}
		}
		if len(granted) == 0 {
			l.Info("no requested scope is granted by role",
				slog.String("username", u.Username),
				slog.String("role", u.Role),
				slog.Any("requested", requested),
			)
			return domain.Token{}, ErrInvalidScope
		}
	}

	return s.Issue(ctx, u, granted, 0)
}

// Issue signs an access token for u carrying scopes. A ttl of zero or less
// falls back to the user's override, then to AccessTTL, then to 15 minutes.
func (s *TokenService) Issue(ctx context.Context, u domain.User, scopes []string, ttl time.Duration) (domain.Token, error) {
	if ttl <= 0 {
		ttl = u.TokenTTL()
	}
	if ttl <= 0 {
		ttl = s.AccessTTL
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	now := s.now()
	claims := jwtx.NewAccessClaims(u.Username, u.Role, scopes, ttl, s.Issuer, now)

	raw, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Token{}, fmt.Errorf("sign access token: %w", err)
	}

	slogx.FromContext(ctx).Debug("access token issued",
		slog.String("username", u.Username),
		slog.String("fp", cryptox.FingerprintToken(raw)),
		slog.Duration("ttl", ttl),
	)

	return domain.Token{
		AccessToken: raw,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   ttl,
		ExpiresAt:   claims.ExpiresAt.Time,
		Scopes:      claims.Scopes,
	}, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
