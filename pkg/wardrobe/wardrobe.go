// Package wardrobe is the public entry point to the avatar engine: catalog
// loading and per-user session construction.
package wardrobe

import (
	"github.com/mesh-intelligence/wardrobe/internal/catalog"
	"github.com/mesh-intelligence/wardrobe/internal/logger"
	"github.com/mesh-intelligence/wardrobe/internal/session"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Version is the module release.
const Version = "v0.3.0"

// Catalog is the loaded part catalog.
type Catalog = catalog.Catalog

// Session is one user's editing state.
type Session = session.Session

// SessionOptions configures NewSession.
type SessionOptions = session.Options

// Logger is the structured logger accepted by SessionOptions.
type Logger = logger.Logger

// NewLogger builds a logger; mode is "development" or "production".
func NewLogger(mode string) (*Logger, error) {
	return logger.New(mode)
}

// LoadCatalog parses and validates a YAML or JSON catalog payload.
func LoadCatalog(data []byte) (*Catalog, error) {
	return catalog.Load(data)
}

// LoadCatalogFile reads a catalog payload from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	return catalog.LoadFile(path)
}

// BuiltinCatalog returns the catalog compiled into the binary.
func BuiltinCatalog() (*Catalog, error) {
	return catalog.Builtin()
}

// NewSession starts a session for record against cat.
func NewSession(cat types.Catalog, record types.EntitlementRecord, opts SessionOptions) *Session {
	return session.New(cat, record, opts)
}
