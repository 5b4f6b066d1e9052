package dbutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// NewTestDB returns a database/sql handle backed by modernc.org/sqlite.
// et.Timestamp values can be used directly as query arguments and scan destinations.
func NewTestDB(t testing.TB) *sqlx.DB {
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a different database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}
