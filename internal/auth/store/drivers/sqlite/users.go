package sqlite

import (
	"context"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
)

type usersRepo struct {
	q *queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := nowUTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	return mapConstraint(r.q.CreateUser(ctx, userRow{
		ID:                 u.ID,
		Username:           u.Username,
		FullName:           u.FullName,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		Role:               u.Role,
		Disabled:           u.Disabled,
		TokenExpireMinutes: mapOptionalInt(u.TokenExpireMinutes),
		CreatedAt:          u.CreatedAt.UTC(),
		UpdatedAt:          u.UpdatedAt.UTC(),
	}))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return requireAffected(r.q.UpdateUserPasswordHash(ctx, userID, newHash, nowUTC()))
}

func (r *usersRepo) UpdateProfile(
	ctx context.Context,
	userID, fullName, email string,
	tokenExpireMinutes *int,
) error {
	return requireAffected(r.q.UpdateUserProfile(ctx, userID, fullName, email, mapOptionalInt(tokenExpireMinutes), nowUTC()))
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID, role string) error {
	return requireAffected(r.q.UpdateUserRole(ctx, userID, role, nowUTC()))
}

func (r *usersRepo) SetDisabled(ctx context.Context, userID string, disabled bool) error {
	return requireAffected(r.q.SetUserDisabled(ctx, userID, disabled, nowUTC()))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return requireAffected(r.q.DeleteUser(ctx, userID))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
