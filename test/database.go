package test

import (
	"path/filepath"
	"testing"

	"github.com/goals-wallet/backend/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SQLitePath is a database file name in the test's temporary directory.
// The file does not exist until a store is opened on it.
func SQLitePath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "goals-wallet-"+uuid.NewString()+".db")
}

// SQLite opens a store on a new database file and closes it when the test ends.
func SQLite(t *testing.T) *store.SQLite {
	s, err := store.OpenSQLite(SQLitePath(t))
	require.Nil(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}
