package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "agenda.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func tableColumns(t *testing.T, store *Store, table string) []string {
	t.Helper()
	rows, err := store.DB().Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	require.NoError(t, rows.Err())
	return columns
}

func TestEnsureSchema_CreatesTables(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureSchema())

	clientCols := tableColumns(t, store, "clients")
	assert.Contains(t, clientCols, "name")
	assert.Contains(t, clientCols, "business_name")
	assert.Contains(t, clientCols, "is_monthly")
	assert.Contains(t, clientCols, "monthly_day")

	appointmentCols := tableColumns(t, store, "appointments")
	assert.Contains(t, appointmentCols, "client_name")
	assert.Contains(t, appointmentCols, "date")
	assert.Contains(t, appointmentCols, "time")
	assert.Contains(t, appointmentCols, "price")
	assert.Contains(t, appointmentCols, "is_monthly_service")
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureSchema())
	require.NoError(t, store.EnsureSchema())

	// The bolted-on column must exist exactly once.
	count := 0
	for _, col := range tableColumns(t, store, "appointments") {
		if col == "is_monthly_service" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEnsureSchema_PreservesData(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureSchema())

	_, err := store.DB().Exec(`INSERT INTO clients (name) VALUES ('Juan Pérez')`)
	require.NoError(t, err)

	require.NoError(t, store.EnsureSchema())

	var count int
	require.NoError(t, store.DB().QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestImport_FailureKeepsStoreUsable(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureSchema())
	_, err := store.DB().Exec(`INSERT INTO clients (name) VALUES ('Juan Pérez')`)
	require.NoError(t, err)

	// Carries the SQLite magic but is not an openable database.
	bogus := append([]byte("SQLite format 3\x00"), []byte("not really a database")...)
	require.Error(t, store.Import(bogus))

	// The previous file is back in place and the pool still serves queries.
	var name string
	require.NoError(t, store.DB().QueryRow(`SELECT name FROM clients`).Scan(&name))
	assert.Equal(t, "Juan Pérez", name)

	_, err = store.DB().Exec(`INSERT INTO clients (name) VALUES ('Otro Cliente')`)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, filepath.Base(store.Path()), entry.Name())
	}
}

func TestImport_ReplacesStoreFile(t *testing.T) {
	source := newTestStore(t)
	require.NoError(t, source.EnsureSchema())
	_, err := source.DB().Exec(`INSERT INTO clients (name) VALUES ('Juan Pérez')`)
	require.NoError(t, err)

	data, err := source.Export()
	require.NoError(t, err)

	target := newTestStore(t)
	require.NoError(t, target.EnsureSchema())
	_, err = target.DB().Exec(`INSERT INTO clients (name) VALUES ('Otro Cliente')`)
	require.NoError(t, err)

	require.NoError(t, target.Import(data))

	var name string
	require.NoError(t, target.DB().QueryRow(`SELECT name FROM clients`).Scan(&name))
	assert.Equal(t, "Juan Pérez", name)
}
