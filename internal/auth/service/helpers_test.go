package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeDirectory struct {
	users map[string]domain.User
	err   error
	calls int
}

func (d *fakeDirectory) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	d.calls++
	if d.err != nil {
		return domain.User{}, d.err
	}
	u, ok := d.users[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (d *fakeDirectory) put(u domain.User) {
	if d.users == nil {
		d.users = map[string]domain.User{}
	}
	d.users[u.Username] = u
}

// newTestHasher uses bcrypt at the minimum cost to keep the suite fast.
func newTestHasher(t *testing.T) *cryptox.Hasher {
	t.Helper()
	h, err := cryptox.NewHasher(cryptox.HasherOptions{Algorithm: cryptox.AlgorithmBcrypt, BcryptCost: 4})
	require.NoError(t, err)
	return h
}

func newTestUser(t *testing.T, h *cryptox.Hasher, username, password, role string) domain.User {
	t.Helper()
	hash, err := h.Hash(password)
	require.NoError(t, err)
	return domain.User{
		ID:           "id-" + username,
		Username:     username,
		FullName:     "User " + username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
}

func newTestTokenService(t *testing.T, now func() time.Time) *TokenService {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	return &TokenService{
		Signer:    signer,
		Registry:  DefaultRegistry(),
		Issuer:    "gatekeeper-test",
		AccessTTL: jwtx.DefaultAccessTokenTTL,
		Now:       now,
	}
}

func newTestValidator(t *testing.T, secret []byte) *Validator {
	t.Helper()
	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Issuer: "gatekeeper-test"})
	require.NoError(t, err)
	return NewValidator(verifier)
}
