package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "gatekeeper-test"

var exampleSecret = []byte("0123456789abcdef0123456789abcdef")

func newPair(t *testing.T, secret []byte, opts jwtx.VerifyOptions) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, opts)
	require.NoError(t, err)
	return signer, verifier
}

func TestHS256SignAndVerify(t *testing.T) {
	signer, verifier := newPair(t, exampleSecret, jwtx.VerifyOptions{Issuer: exampleIssuer})
	require.Equal(t, "HS256", signer.Alg())

	claims := jwtx.NewAccessClaims(
		"alice",
		"editor",
		[]string{"profile.read", "data.view", "data.edit"},
		5*time.Minute,
		exampleIssuer,
		time.Now(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3, "JWS compact form has three parts")

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.Role, parsed.Role)
	require.ElementsMatch(t, claims.Scopes, parsed.Scopes)
	require.Equal(t, claims.ID, parsed.ID)
	require.Equal(t, claims.ExpiresAt.Unix(), parsed.ExpiresAt.Unix())
}

func TestHS256EmptySecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256(nil)
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)

	_, err = jwtx.NewVerifierHS256([]byte{}, jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)
}

func TestHS256SignerCopiesSecret(t *testing.T) {
	secret := append([]byte(nil), exampleSecret...)
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(exampleSecret, jwtx.VerifyOptions{})
	require.NoError(t, err)

	secret[0] = 'X'

	token, err := signer.Sign(jwtx.NewAccessClaims("alice", "viewer", nil, time.Minute, "", time.Now()))
	require.NoError(t, err)
	_, err = verifier.Verify(token)
	require.NoError(t, err)
}

func TestHS256VerifyFailures(t *testing.T) {
	now := time.Now()
	signer, verifier := newPair(t, exampleSecret, jwtx.VerifyOptions{Issuer: exampleIssuer})

	valid, err := signer.Sign(jwtx.NewAccessClaims("alice", "viewer", []string{"data.view"}, time.Minute, exampleIssuer, now))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewSignerHS256([]byte("a-completely-different-secret-value"))
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewAccessClaims("alice", "viewer", nil, time.Minute, exampleIssuer, now))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("alice", "viewer", nil, -time.Minute, exampleIssuer, now))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewAccessClaims("alice", "viewer", nil, time.Minute, "someone-else", now))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("missing exp", func(t *testing.T) {
		c := jwtx.NewAccessClaims("alice", "viewer", nil, time.Minute, exampleIssuer, now)
		c.ExpiresAt = nil
		token, err := signer.Sign(c)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-jwt", "a.b.c", valid + "x"} {
			_, err := verifier.Verify(raw)
			require.Error(t, err, raw)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(valid, ".")
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.NewAccessClaims("alice", "admin", []string{"*"}, time.Minute, exampleIssuer, now))
		forgedStr, err := forged.SignedString([]byte("guess"))
		require.NoError(t, err)
		forgedParts := strings.Split(forgedStr, ".")

		_, err = verifier.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("alg none rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwtx.NewAccessClaims("alice", "admin", []string{"*"}, time.Minute, exampleIssuer, now))
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(raw)
		require.Error(t, err)
	})

	t.Run("other HMAC alg rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwtx.NewAccessClaims("alice", "admin", []string{"*"}, time.Minute, exampleIssuer, now))
		raw, err := tok.SignedString(exampleSecret)
		require.NoError(t, err)

		_, err = verifier.Verify(raw)
		require.Error(t, err)
	})
}

func TestHS256VerifyClock(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issued

	signer, verifier := newPair(t, exampleSecret, jwtx.VerifyOptions{
		Leeway: 10 * time.Second,
		Now:    func() time.Time { return clock },
	})

	token, err := signer.Sign(jwtx.NewAccessClaims("alice", "viewer", nil, 15*time.Minute, "", issued))
	require.NoError(t, err)

	clock = issued.Add(15*time.Minute + 5*time.Second)
	_, err = verifier.Verify(token)
	require.NoError(t, err, "inside leeway")

	clock = issued.Add(16 * time.Minute)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}
