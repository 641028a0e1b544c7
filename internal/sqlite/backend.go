// Package sqlite implements the persistence collaborator for Wardrobe:
// durable entitlement records, saved selection blobs, and the acquisition
// ledger, stored in a single SQLite database.
//
// The engine itself performs no I/O. Callers load a record and a selection
// from the Backend when a session starts and commit results at session
// boundaries.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// DatabaseFile is the database file name inside DataDir.
const DatabaseFile = "wardrobe.db"

var _ types.Store = (*Backend)(nil)

// Backend stores entitlement records and selections in SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	// now is overridable in tests.
	now func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: func() time.Time { return time.Now().UTC() }}
}

// Attach opens (or creates) the database in config.DataDir and applies the
// schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFile))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// A single connection serializes writers and keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, stmt := range append(schemaDDL, indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent. After Detach every operation
// returns ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// checkUser returns ErrDetached or ErrInvalidID. The caller must hold b.mu.
func (b *Backend) checkUser(userID string) error {
	if !b.attached {
		return types.ErrDetached
	}
	if strings.TrimSpace(userID) == "" {
		return types.ErrInvalidID
	}
	return nil
}

// generateUUID generates a new UUID v7 for ledger entries.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
