package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diegoclair/monthly-report/migrator/sqlite"
)

// SetupTestDB returns a migrated in-memory database that is closed when the
// test ends.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	// each pooled connection would otherwise see its own empty database
	conn.SetMaxOpenConns(1)

	require.NoError(t, sqlite.Migrate(conn), "failed to migrate test database")

	db := &DB{conn: conn}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// CleanupTestDB closes the database before the test ends.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()
	require.NoError(t, db.Close())
}
