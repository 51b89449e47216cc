package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestIssueForUser_Scopes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestTokenService(t, nil)

	tests := []struct {
		name      string
		role      string
		requested []string
		want      []string
		wantErr   error
	}{
		{name: "viewer default", role: domain.RoleViewer, want: []string{"profile.read", "data.view"}},
		{name: "manager default keeps wildcard", role: domain.RoleManager, want: []string{"profile.read", "data.*"}},
		{name: "subset", role: domain.RoleEditor, requested: []string{"data.edit"}, want: []string{"data.edit"}},
		{name: "wildcard role narrows", role: domain.RoleManager, requested: []string{"data.delete", "roles.read"}, want: []string{"data.delete"}},
		{name: "admin anything", role: domain.RoleAdmin, requested: []string{"roles.read"}, want: []string{"roles.read"}},
		{name: "nothing granted", role: domain.RoleViewer, requested: []string{"data.delete"}, wantErr: ErrInvalidScope},
		{name: "unknown role", role: "ghost", wantErr: ErrUnknownRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := s.IssueForUser(ctx, domain.User{Username: "u", Role: tt.role}, tt.requested)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tok.Scopes)
			require.Equal(t, "Bearer", tok.TokenType)
			require.NotEmpty(t, tok.AccessToken)
		})
	}
}

func TestIssue_Claims(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	s := newTestTokenService(t, func() time.Time { return now })

	tok, err := s.Issue(context.Background(), domain.User{Username: "alice", Role: domain.RoleViewer}, []string{"data.view"}, 0)
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, tok.ExpiresIn)
	require.True(t, now.Add(15*time.Minute).Equal(tok.ExpiresAt))

	verifier, err := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{
		Issuer: "gatekeeper-test",
		Now:    func() time.Time { return now.Add(time.Minute) },
	})
	require.NoError(t, err)

	claims, err := verifier.Verify(tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, []string{"data.view"}, claims.Scopes)
	require.Equal(t, now.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
	require.Equal(t, domain.RoleViewer, claims.Role)
}

func TestIssue_TTLPrecedence(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, nil)
	s.AccessTTL = 10 * time.Minute

	minutes := 60
	override := domain.User{Username: "o", Role: domain.RoleViewer, TokenExpireMinutes: &minutes}
	plain := domain.User{Username: "p", Role: domain.RoleViewer}

	tok, err := s.Issue(context.Background(), plain, nil, 0)
	require.NoError(t, err)
	require.Equal(t, 10*time.Minute, tok.ExpiresIn)

	tok, err = s.Issue(context.Background(), override, nil, 0)
	require.NoError(t, err)
	require.Equal(t, time.Hour, tok.ExpiresIn)

	tok, err = s.Issue(context.Background(), override, nil, 2*time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2*time.Minute, tok.ExpiresIn)

	s.AccessTTL = 0
	tok, err = s.Issue(context.Background(), plain, nil, 0)
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, tok.ExpiresIn)
}

func TestIssue_TokenNeverCarriesHash(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, nil)
	u := domain.User{Username: "alice", Role: domain.RoleViewer, PasswordHash: "$2a$04$supersecrethashvalue"}

	tok, err := s.Issue(context.Background(), u, nil, 0)
	require.NoError(t, err)
	require.NotContains(t, tok.AccessToken, "supersecret")
}

func TestIssue_LogsThroughRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("req_id", "01TESTREQUEST")
	ctx := slogx.WithContext(context.Background(), logger)

	s := newTestTokenService(t, nil)
	tok, err := s.IssueForUser(ctx, domain.User{Username: "alice", Role: domain.RoleViewer}, nil)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"msg":"access token issued"`)
	require.Contains(t, out, `"req_id":"01TESTREQUEST"`)
	require.Contains(t, out, `"username":"alice"`)
	require.NotContains(t, out, tok.AccessToken)
}
