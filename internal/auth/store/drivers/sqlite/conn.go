package sqlite

import (
	"database/sql"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
)

// connStore pins one pooled connection. Close returns it to the pool and
// is safe to call more than once.
type connStore struct {
	conn *sql.Conn
	q    *queries
}

func (c *connStore) Users() store.Users { return &usersRepo{q: c.q} }

func (c *connStore) Close() error {
	err := c.conn.Close()
	if err == sql.ErrConnDone {
		return nil
	}
	return err
}
