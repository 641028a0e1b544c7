// Package selection holds a session's current per-category choices.
//
// The Store performs no entitlement checks; callers confirm access before
// calling Select. It does enforce catalog membership: choosing a part that
// does not belong to the category is an invariant violation, returned as
// ErrInvariantViolation in strict mode and logged then ignored otherwise.
// A Store belongs to one session and is not safe for concurrent use.
package selection

import (
	"fmt"

	"github.com/mesh-intelligence/wardrobe/internal/logger"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Options configures a Store.
type Options struct {
	// Strict returns invariant violations as errors instead of logging them.
	Strict bool

	// Log receives invariant-violation warnings in lenient mode.
	Log *logger.Logger
}

// Store is the mutable selection for one session.
type Store struct {
	catalog  types.Catalog
	defaults types.Selection
	current  types.Selection
	strict   bool
	log      *logger.Logger
}

// NewStore returns a store initialised to a copy of defaults.
func NewStore(catalog types.Catalog, defaults types.Selection, opts Options) *Store {
	return &Store{
		catalog:  catalog,
		defaults: defaults.Clone(),
		current:  defaults.Clone(),
		strict:   opts.Strict,
		log:      logger.OrNop(opts.Log).With("component", "selection"),
	}
}

// Select sets the active part of a category. An empty partID clears the
// category.
func (s *Store) Select(categoryID, partID string) error {
	cat, ok := s.catalog.FindCategory(categoryID)
	if !ok {
		return s.violation("select", categoryID, partID, types.ErrCategoryNotFound)
	}
	if partID != "" {
		if _, ok := cat.Part(partID); !ok {
			return s.violation("select", categoryID, partID, types.ErrPartNotFound)
		}
	}

	entry := s.current[categoryID]
	entry.PartID = partID
	s.put(categoryID, entry)
	return nil
}

// SetColor overrides the tint of a category. The value is stored verbatim;
// format checks belong to the caller. An empty color clears the override.
func (s *Store) SetColor(categoryID, color string) error {
	if _, ok := s.catalog.FindCategory(categoryID); !ok {
		return s.violation("set color", categoryID, "", types.ErrCategoryNotFound)
	}
	entry := s.current[categoryID]
	entry.Color = color
	s.put(categoryID, entry)
	return nil
}

// Reset restores the default snapshot supplied at construction. Idempotent.
func (s *Store) Reset() {
	s.current = s.defaults.Clone()
}

// Snapshot returns an independent copy of the current selection.
func (s *Store) Snapshot() types.Selection {
	return s.current.Clone()
}

// Restore replaces the current selection with a copy of sel. Entries are
// not checked against the catalog; the compositor skips dangling parts.
func (s *Store) Restore(sel types.Selection) {
	s.current = sel.Clone()
}

// Defaults returns a copy of the reset target.
func (s *Store) Defaults() types.Selection {
	return s.defaults.Clone()
}

// put stores entry, dropping categories left with neither part nor colour so
// equal selections compare equal.
func (s *Store) put(categoryID string, entry types.SelectionEntry) {
	if entry == (types.SelectionEntry{}) {
		delete(s.current, categoryID)
		return
	}
	s.current[categoryID] = entry
}

func (s *Store) violation(op, categoryID, partID string, cause error) error {
	err := fmt.Errorf("%w: %s %s/%s: %w", types.ErrInvariantViolation, op, categoryID, partID, cause)
	if s.strict {
		return err
	}
	s.log.Warn("ignored invalid selection change",
		"op", op,
		"category", categoryID,
		"part", partID,
		"error", cause,
	)
	return nil
}
