package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// Directory is the read side of the user store the gate depends on. It is
// satisfied by store.Users, usually obtained from a per-request store.Conn.
type Directory interface {
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
}

// Authenticator checks username/password pairs against a Directory.
type Authenticator struct {
	hasher *cryptox.Hasher
	realm  string

	// dummyHashes holds one hash per supported algorithm. Every lookup
	// verifies the dummies for the algorithms the stored hash did not use, so
	// a missing account, an argon2id account and a bcrypt account all cost
	// one verification of each algorithm.
	dummyHashes map[string]string
}

// NewAuthenticator precomputes a dummy hash for every supported algorithm.
// The bcrypt dummy uses hasher's configured cost, or DefaultBcryptCost when
// hasher produces argon2id.
func NewAuthenticator(hasher *cryptox.Hasher, realm string) (*Authenticator, error) {
	pw, err := cryptox.GeneratePassword()
	if err != nil {
		return nil, err
	}

	a := &Authenticator{hasher: hasher, realm: realm, dummyHashes: make(map[string]string)}
	for _, alg := range cryptox.Algorithms() {
		h := hasher
		if alg != hasher.Algorithm() {
			h, err = cryptox.NewHasher(cryptox.HasherOptions{Algorithm: alg, BcryptCost: hasher.BcryptCost()})
			if err != nil {
				return nil, fmt.Errorf("dummy %s hasher: %w", alg, err)
			}
		}
		dummy, err := h.Hash(pw)
		if err != nil {
			return nil, fmt.Errorf("dummy %s hash: %w", alg, err)
		}
		a.dummyHashes[alg] = dummy
	}

	return a, nil
}

// Authenticate resolves username and verifies password. An unknown user and a
// wrong password both return ErrInvalidCredentials. The disabled flag is not
// consulted here; that is RequireActive's job.
func (a *Authenticator) Authenticate(ctx context.Context, dir Directory, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := a.lookup(ctx, dir, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Info("password authentication failed", slog.String("username", username))
		}
		return domain.User{}, err
	}

	return u, nil
}

// ValidateBasic authenticates raw Basic credentials. Every failure is an
// ErrUnauthorized carrying a Basic challenge. Directory I/O errors are passed
// through unchanged.
func (a *Authenticator) ValidateBasic(ctx context.Context, dir Directory, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := a.lookup(ctx, dir, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Info("basic authentication failed", slog.String("username", username))
			return domain.User{}, a.basicChallenge()
		}
		return domain.User{}, err
	}

	if subtle.ConstantTimeCompare([]byte(username), []byte(u.Username)) != 1 {
		l.Warn("basic authentication username mismatch", slog.String("username", username))
		return domain.User{}, a.basicChallenge()
	}

	return u, nil
}

func (a *Authenticator) lookup(ctx context.Context, dir Directory, username, password string) (domain.User, error) {
	u, err := dir.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.verifyDummies(password, "")
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	err = a.hasher.Compare(password, u.PasswordHash)
	a.verifyDummies(password, spentOn(u.PasswordHash, err))
	if err != nil {
		if errors.Is(err, cryptox.ErrMalformedHash) {
			slogx.FromContext(ctx).Error("stored password hash is unusable", slog.Any("user", u), slog.Any("error", err))
		}
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// verifyDummies burns one verification for every algorithm except spent,
// the algorithm already paid for by the stored hash.
func (a *Authenticator) verifyDummies(password, spent string) {
	for _, alg := range a.dummyAlgorithms(spent) {
		_ = a.hasher.Verify(password, a.dummyHashes[alg])
	}
}

// spentOn names the algorithm a Compare against encoded actually ran. A hash
// that failed to parse ran nothing.
func spentOn(encoded string, compareErr error) string {
	if errors.Is(compareErr, cryptox.ErrMalformedHash) {
		return ""
	}
	return cryptox.AlgorithmOf(encoded)
}

func (a *Authenticator) dummyAlgorithms(spent string) []string {
	var out []string
	for _, alg := range cryptox.Algorithms() {
		if alg != spent {
			out = append(out, alg)
		}
	}
	return out
}

func (a *Authenticator) basicChallenge() *ChallengeError {
	return &ChallengeError{Err: ErrUnauthorized, Scheme: SchemeBasic, Realm: a.realm}
}
