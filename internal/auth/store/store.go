package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories are exposed as methods so a transaction
// scoped store can hand out the same repos.
type Store interface {
	Users() Users

	// Acquire pins a single connection for the lifetime of one request.
	// The caller MUST Close the returned Conn on every exit path, the
	// connection goes back to the pool on Close.
	Acquire(ctx context.Context) (Conn, error)

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Conn is a request-scoped handle onto the directory.
type Conn interface {
	Users() Users
	Close() error
}

type Users interface {
	// GetUserByUsername is the directory lookup used on every authentication.
	// Usernames are compared case-sensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// ListUsers returns every user ordered by username.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateProfile replaces the display attributes and token lifetime override.
	UpdateProfile(ctx context.Context, userID, fullName, email string, tokenExpireMinutes *int) error

	// UpdateRole assigns a different role.
	UpdateRole(ctx context.Context, userID, role string) error

	// SetDisabled flips the disabled flag.
	SetDisabled(ctx context.Context, userID string, disabled bool) error

	// DeleteUser removes the user. Tokens already issued stop validating
	// because the gate re-resolves the subject on every call.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}
