package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type validatorFixture struct {
	tokens    *TokenService
	validator *Validator
	dir       *fakeDirectory
}

func newValidatorFixture(t *testing.T) validatorFixture {
	t.Helper()

	dir := &fakeDirectory{}
	for _, u := range []domain.User{
		{Username: "vera", Role: domain.RoleViewer},
		{Username: "ed", Role: domain.RoleEditor},
		{Username: "max", Role: domain.RoleManager},
		{Username: "root", Role: domain.RoleAdmin},
		{Username: "gone", Role: domain.RoleViewer, Disabled: true},
	} {
		dir.put(u)
	}

	return validatorFixture{
		tokens:    newTestTokenService(t, nil),
		validator: newTestValidator(t, testSecret),
		dir:       dir,
	}
}

func (f validatorFixture) issue(t *testing.T, username string, scopes []string) string {
	t.Helper()
	tok, err := f.tokens.Issue(context.Background(), f.dir.users[username], scopes, 0)
	require.NoError(t, err)
	return tok.AccessToken
}

func TestValidate_Scopes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newValidatorFixture(t)

	tests := []struct {
		name     string
		user     string
		scopes   []string
		required []string
		wantErr  error
	}{
		{name: "exact", user: "vera", scopes: []string{"data.view"}, required: []string{"data.view"}},
		{name: "missing", user: "vera", scopes: []string{"data.view"}, required: []string{"data.edit"}, wantErr: ErrForbidden},
		{name: "prefix wildcard", user: "max", scopes: []string{"profile.read", "data.*"}, required: []string{"data.delete"}},
		{name: "prefix wildcard other namespace", user: "max", scopes: []string{"data.*"}, required: []string{"roles.read"}, wantErr: ErrForbidden},
		{name: "star", user: "root", scopes: []string{"*"}, required: []string{"roles.read"}},
		{name: "any of", user: "ed", scopes: []string{"data.edit"}, required: []string{"data.delete", "data.edit"}},
		{name: "no requirement", user: "vera", scopes: nil},
		{name: "empty token scopes with requirement", user: "vera", scopes: nil, required: []string{"profile.read"}, wantErr: ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := f.issue(t, tt.user, tt.scopes)

			id, err := f.validator.Validate(ctx, f.dir, raw, tt.required)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.NotErrorIs(t, err, ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.user, id.Username)
			require.Equal(t, f.dir.users[tt.user].Role, id.Role)
		})
	}
}

func TestValidate_ReturnsTokenScopesNotRoleScopes(t *testing.T) {
	t.Parallel()
	f := newValidatorFixture(t)

	raw := f.issue(t, "root", []string{"data.view"})
	id, err := f.validator.Validate(context.Background(), f.dir, raw, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"data.view"}, id.Scopes)
	require.Equal(t, domain.RoleAdmin, id.Role)
}

func TestValidate_Unauthorized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newValidatorFixture(t)

	expired := &TokenService{
		Signer:    f.tokens.Signer,
		Registry:  f.tokens.Registry,
		Issuer:    f.tokens.Issuer,
		AccessTTL: 15 * time.Minute,
		Now:       func() time.Time { return time.Now().Add(-time.Hour) },
	}
	expiredTok, err := expired.Issue(context.Background(), f.dir.users["root"], []string{"*"}, 0)
	require.NoError(t, err)

	otherSigner, err := jwtx.NewSignerHS256([]byte("a-completely-different-secret-key"))
	require.NoError(t, err)
	forged, err := otherSigner.Sign(jwtx.NewAccessClaims("root", "admin", []string{"*"}, time.Minute, "gatekeeper-test", time.Now()))
	require.NoError(t, err)

	noSub, err := f.tokens.Signer.Sign(jwtx.NewAccessClaims("", "admin", []string{"*"}, time.Minute, "gatekeeper-test", time.Now()))
	require.NoError(t, err)

	deleted, err := f.tokens.Signer.Sign(jwtx.NewAccessClaims("deleted", "admin", []string{"*"}, time.Minute, "gatekeeper-test", time.Now()))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"expired":        expiredTok.AccessToken,
		"other secret":   forged,
		"missing sub":    noSub,
		"deleted user":   deleted,
		"truncated":      expiredTok.AccessToken[:len(expiredTok.AccessToken)-4],
		"two part token": "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJyb290In0",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.validator.Validate(ctx, f.dir, raw, []string{"data.view"})
			require.ErrorIs(t, err, ErrUnauthorized)
			require.Equal(t, ErrUnauthorized.Error(), err.Error(), "message must not say which check failed")

			var ce *ChallengeError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, `Bearer scope="data.view"`, ce.Header())
		})
	}
}

func TestValidate_DirectoryFailure(t *testing.T) {
	t.Parallel()
	f := newValidatorFixture(t)
	raw := f.issue(t, "vera", []string{"data.view"})

	boom := errors.New("database is locked")
	_, err := f.validator.Validate(context.Background(), &fakeDirectory{err: boom}, raw, nil)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrUnauthorized)
}

func TestRequireActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newValidatorFixture(t)

	raw := f.issue(t, "gone", []string{"data.view"})
	id, err := f.validator.Validate(ctx, f.dir, raw, []string{"data.view"})
	require.NoError(t, err, "token itself is fine")
	require.True(t, id.Disabled)

	_, err = RequireActive(id)
	require.ErrorIs(t, err, ErrInactiveAccount)

	active := domain.Identity{Username: "vera"}
	got, err := RequireActive(active)
	require.NoError(t, err)
	require.Equal(t, active, got)
}
