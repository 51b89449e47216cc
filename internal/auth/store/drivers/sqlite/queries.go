package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// dbtx is satisfied by *sql.DB, *sql.Tx and *sql.Conn so the same queries
// run pooled, inside a transaction, or pinned to one connection.
type dbtx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries {
	return &queries{db: db}
}

// userRow mirrors the users table.
type userRow struct {
	ID                 string
	Username           string
	FullName           string
	Email              string
	PasswordHash       string
	Role               string
	Disabled           bool
	TokenExpireMinutes sql.NullInt64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const userColumns = `id, username, full_name, email, password_hash, role, disabled, token_expire_minutes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(r rowScanner) (userRow, error) {
	var u userRow
	err := r.Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Disabled,
		&u.TokenExpireMinutes,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *queries) GetUserByID(ctx context.Context, id string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

func (q *queries) GetUserByUsername(ctx context.Context, username string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUsername, username))
}

const listUsers = `SELECT ` + userColumns + ` FROM users ORDER BY username`

func (q *queries) ListUsers(ctx context.Context) ([]userRow, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []userRow
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createUser = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *queries) CreateUser(ctx context.Context, u userRow) error {
	_, err := q.db.ExecContext(ctx, createUser,
		u.ID,
		u.Username,
		u.FullName,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Disabled,
		u.TokenExpireMinutes,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

const updateUserPasswordHash = `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateUserPasswordHash(ctx context.Context, id, hash string, now time.Time) (int64, error) {
	return q.exec(ctx, updateUserPasswordHash, hash, now, id)
}

const updateUserProfile = `UPDATE users SET full_name = ?, email = ?, token_expire_minutes = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateUserProfile(
	ctx context.Context,
	id, fullName, email string,
	tokenExpireMinutes sql.NullInt64,
	now time.Time,
) (int64, error) {
	return q.exec(ctx, updateUserProfile, fullName, email, tokenExpireMinutes, now, id)
}

const updateUserRole = `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateUserRole(ctx context.Context, id, role string, now time.Time) (int64, error) {
	return q.exec(ctx, updateUserRole, role, now, id)
}

const setUserDisabled = `UPDATE users SET disabled = ?, updated_at = ? WHERE id = ?`

func (q *queries) SetUserDisabled(ctx context.Context, id string, disabled bool, now time.Time) (int64, error) {
	return q.exec(ctx, setUserDisabled, disabled, now, id)
}

const deleteUser = `DELETE FROM users WHERE id = ?`

func (q *queries) DeleteUser(ctx context.Context, id string) (int64, error) {
	return q.exec(ctx, deleteUser, id)
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&count)
	return count, err
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
