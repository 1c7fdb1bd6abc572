package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fx_agenda_backend/pkg/utils"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store wraps the single-file SQLite database backing the agenda.
// The whole application shares one Store; the pool inside it acquires and
// releases a connection per statement, and Import swaps the underlying file.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the store file at path and verifies the
// connection. Failure here is fatal for the caller: the store is unavailable.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to store %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// DB returns the current connection pool. Callers must not retain it across
// an Import, which replaces the pool.
func (s *Store) DB() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

const createClientsTable = `
	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		business_name TEXT,
		address TEXT,
		zone TEXT,
		phone TEXT,
		notes TEXT,
		is_monthly INTEGER DEFAULT 0,
		monthly_day INTEGER
	);`

const createAppointmentsTable = `
	CREATE TABLE IF NOT EXISTS appointments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_name TEXT NOT NULL,
		service_type TEXT,
		pest_type TEXT,
		address TEXT,
		zone TEXT,
		phone TEXT,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		price REAL,
		status TEXT,
		notes TEXT,
		created_at TEXT
	);`

// EnsureSchema brings the store to the current schema. Safe to call on every
// start: tables are created only if absent, and columns added after the first
// release are bolted on with ALTER TABLE, where "duplicate column" means the
// work is already done. Any other ALTER failure is logged as a warning and
// never blocks startup.
func (s *Store) EnsureSchema() error {
	db := s.DB()

	if _, err := db.Exec(createClientsTable); err != nil {
		return fmt.Errorf("creating clients table: %w", err)
	}
	if _, err := db.Exec(createAppointmentsTable); err != nil {
		return fmt.Errorf("creating appointments table: %w", err)
	}

	// is_monthly_service was introduced after the initial release.
	if _, err := db.Exec(`ALTER TABLE appointments ADD COLUMN is_monthly_service INTEGER DEFAULT 0`); err != nil {
		if !isDuplicateColumn(err) {
			utils.LogWarn(err, "EnsureSchema: could not add appointments.is_monthly_service, continuing")
		}
	}

	return nil
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}

// Export returns the full bytes of the store file for backup download.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}
	return data, nil
}

// Import atomically replaces the store file with data and reopens the pool.
// The incoming bytes are staged to a temp file before the pool is closed, and
// the current file is kept aside until the replacement proves openable, so a
// failed import always leaves the previous store working.
func (s *Store) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "agenda-import-*.db")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp store file: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing store before import: %w", err)
	}

	backup := s.path + ".pre-import"
	if err := os.Rename(s.path, backup); err != nil {
		os.Remove(tmpName)
		s.reopen()
		return fmt.Errorf("setting aside store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		os.Rename(backup, s.path)
		s.reopen()
		return fmt.Errorf("replacing store file: %w", err)
	}

	db, err := openVerified(s.path)
	if err != nil {
		os.Remove(s.path)
		os.Rename(backup, s.path)
		s.reopen()
		return fmt.Errorf("verifying store after import: %w", err)
	}
	os.Remove(backup)
	s.db = db
	return nil
}

// openVerified opens path and forces a read of the schema header, which
// catches files that carry the SQLite magic but are not usable databases.
func openVerified(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	var version int
	if err := db.QueryRow(`PRAGMA schema_version`).Scan(&version); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// reopen restores the pool at the current path after a failed import. Best
// effort: a failure here is logged and leaves the store closed.
func (s *Store) reopen() {
	db, err := openVerified(s.path)
	if err != nil {
		utils.LogWarn(err, "Import: could not reopen store after failed import")
		return
	}
	s.db = db
}
