// Package sqlite provides the public API for the SQLite persistence
// collaborator. It exposes the factory while keeping the implementation
// internal.
package sqlite

import (
	"github.com/mesh-intelligence/wardrobe/internal/sqlite"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// NewBackend creates a new SQLite store. The store is not attached; call
// Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".wardrobe-db",
//	})
//	defer store.Detach()
func NewBackend() types.Store {
	return sqlite.NewBackend()
}
