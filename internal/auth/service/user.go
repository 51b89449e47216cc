package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/idx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

var ErrInvalidUsername = errors.New("invalid username")

// UserService is the admin side of the directory, used by the CLI to seed
// and maintain accounts.
type UserService struct {
	Store    store.Store
	Hasher   *cryptox.Hasher
	Registry *Registry
}

type CreateUserInput struct {
	Username           string
	Password           string // generated when empty
	Role               string
	FullName           string
	Email              string
	TokenExpireMinutes *int
}

// CreateUser hashes the password and inserts the user. When no password was
// given a random one is generated and returned; otherwise the returned string
// is empty.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (domain.User, string, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || username != in.Username || strings.ContainsAny(username, ": \t") {
		return domain.User{}, "", fmt.Errorf("%w: %q", ErrInvalidUsername, in.Username)
	}
	if !s.Registry.HasRole(in.Role) {
		return domain.User{}, "", fmt.Errorf("%w: %q", ErrUnknownRole, in.Role)
	}

	password, generated := in.Password, ""
	if password == "" {
		var err error
		if password, err = cryptox.GeneratePassword(); err != nil {
			return domain.User{}, "", err
		}
		generated = password
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:                 idx.New().String(),
		Username:           username,
		FullName:           in.FullName,
		Email:              in.Email,
		PasswordHash:       hash,
		Role:               in.Role,
		TokenExpireMinutes: in.TokenExpireMinutes,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user created", slog.Any("user", u))
	return u, generated, nil
}

// SetDisabled enables or disables the named user.
func (s *UserService) SetDisabled(ctx context.Context, username string, disabled bool) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		if err := tx.Users().SetDisabled(ctx, u.ID, disabled); err != nil {
			return err
		}
		slogx.FromContext(ctx).Info("user disabled flag changed",
			slog.String("username", username),
			slog.Bool("disabled", disabled),
		)
		return nil
	})
}

// SetPassword replaces the user's password, generating one when empty. The
// new hash always uses the hasher's current algorithm and cost.
func (s *UserService) SetPassword(ctx context.Context, username, password string) (string, error) {
	generated := ""
	if password == "" {
		var err error
		if password, err = cryptox.GeneratePassword(); err != nil {
			return "", err
		}
		generated = password
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}

		if s.Hasher.NeedsRehash(u.PasswordHash) {
			slogx.FromContext(ctx).Info("upgrading password hash algorithm",
				slog.String("username", username),
				slog.String("algorithm", s.Hasher.Algorithm()),
			)
		}

		hash, err := s.Hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		return tx.Users().UpdatePasswordHash(ctx, u.ID, hash)
	})
	if err != nil {
		return "", err
	}

	return generated, nil
}

type UpdateUserInput struct {
	Username           string
	Role               *string
	FullName           *string
	Email              *string
	TokenExpireMinutes *int
}

// UpdateUser changes the role and profile fields that are set in in. Nil
// fields keep their stored value. A TokenExpireMinutes of zero or less clears
// the per-user override.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (domain.User, error) {
	if in.Role != nil && !s.Registry.HasRole(*in.Role) {
		return domain.User{}, fmt.Errorf("%w: %q", ErrUnknownRole, *in.Role)
	}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, in.Username)
		if err != nil {
			return err
		}

		if in.Role != nil && *in.Role != u.Role {
			if err := tx.Users().UpdateRole(ctx, u.ID, *in.Role); err != nil {
				return err
			}
			u.Role = *in.Role
		}

		if in.FullName != nil {
			u.FullName = *in.FullName
		}
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.TokenExpireMinutes != nil {
			u.TokenExpireMinutes = in.TokenExpireMinutes
			if *in.TokenExpireMinutes <= 0 {
				u.TokenExpireMinutes = nil
			}
		}
		if err := tx.Users().UpdateProfile(ctx, u.ID, u.FullName, u.Email, u.TokenExpireMinutes); err != nil {
			return err
		}

		out = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated", slog.Any("user", out))
	return out, nil
}

// ListUsers returns every user ordered by username.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}
