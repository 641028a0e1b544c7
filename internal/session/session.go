// Package session binds one user's selection store and entitlement record to
// the shared catalog.
//
// A Session is the single place where user actions meet the entitlement
// rules: Choose refuses locked parts before the store sees them, and
// Purchase/Unlock replace the record only with the purchase service's
// result. A Session is owned by one user and is not safe for concurrent use.
package session

import (
	"fmt"

	"github.com/mesh-intelligence/wardrobe/internal/compositor"
	"github.com/mesh-intelligence/wardrobe/internal/entitlement"
	"github.com/mesh-intelligence/wardrobe/internal/logger"
	"github.com/mesh-intelligence/wardrobe/internal/purchase"
	"github.com/mesh-intelligence/wardrobe/internal/selection"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// defaulter is implemented by catalogs that can supply an initial selection.
type defaulter interface {
	DefaultSelection() types.Selection
}

// Options configures a Session.
type Options struct {
	// Defaults is the reset target. When nil the catalog's default
	// selection is used if it provides one.
	Defaults types.Selection

	// Strict makes selection invariant violations return errors.
	Strict bool

	Log         *logger.Logger
	Diagnostics types.Diagnostics
}

// Session is one user's editing state.
type Session struct {
	catalog types.Catalog
	store   *selection.Store
	record  types.EntitlementRecord
	diag    types.Diagnostics
	log     *logger.Logger
}

// New starts a session for record against cat.
func New(cat types.Catalog, record types.EntitlementRecord, opts Options) *Session {
	log := logger.OrNop(opts.Log)
	defaults := opts.Defaults
	if defaults == nil {
		if d, ok := cat.(defaulter); ok {
			defaults = d.DefaultSelection()
		}
	}
	diag := opts.Diagnostics
	if diag == nil {
		diag = logger.NewDiagnostics(log)
	}
	if record.OwnedPartIDs == nil {
		record.OwnedPartIDs = make(map[string]bool)
	}
	return &Session{
		catalog: cat,
		store:   selection.NewStore(cat, defaults, selection.Options{Strict: opts.Strict, Log: log}),
		record:  record.Clone(),
		diag:    diag,
		log:     log.With("component", "session"),
	}
}

// Verdict resolves a catalog part against the session's record.
func (s *Session) Verdict(categoryID, partID string) (types.Verdict, error) {
	part, err := s.part(categoryID, partID)
	if err != nil {
		return types.Verdict{}, err
	}
	return entitlement.Resolve(part, s.record), nil
}

// Choose selects partID for categoryID if the record is entitled to it. An
// empty partID clears optional categories.
func (s *Session) Choose(categoryID, partID string) error {
	if partID == "" {
		cat, ok := s.catalog.FindCategory(categoryID)
		if !ok {
			return fmt.Errorf("%w: %q", types.ErrCategoryNotFound, categoryID)
		}
		if !cat.Optional {
			return fmt.Errorf("%w: %q", types.ErrCategoryRequired, categoryID)
		}
		return s.store.Select(categoryID, "")
	}

	part, err := s.part(categoryID, partID)
	if err != nil {
		return err
	}
	if v := entitlement.Resolve(part, s.record); !v.IsAvailable() {
		return &types.LockedError{CategoryID: categoryID, PartID: partID, Verdict: v}
	}
	return s.store.Select(categoryID, partID)
}

// Clear removes the part chosen for an optional category.
func (s *Session) Clear(categoryID string) error {
	return s.Choose(categoryID, "")
}

// SetColor overrides the tint of a category.
func (s *Session) SetColor(categoryID, color string) error {
	return s.store.SetColor(categoryID, color)
}

// Reset restores the default selection.
func (s *Session) Reset() {
	s.store.Reset()
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() types.Selection {
	return s.store.Snapshot()
}

// Restore loads a previously saved selection.
func (s *Session) Restore(sel types.Selection) {
	s.store.Restore(sel)
}

// Save encodes the current selection for the external store.
func (s *Session) Save() ([]byte, error) {
	return selection.Encode(s.store.Snapshot())
}

// Load restores a selection saved with Save. A blob from an unknown format
// version is rejected and the current selection is kept.
func (s *Session) Load(blob []byte) error {
	sel, err := selection.Decode(blob)
	if err != nil {
		return err
	}
	s.store.Restore(sel)
	s.log.Debug("selection restored", "categories", len(sel))
	return nil
}

// Render composes the current selection.
func (s *Session) Render() string {
	return compositor.Compose(s.catalog, s.store.Snapshot(), s.diag)
}

// Record returns a copy of the entitlement record.
func (s *Session) Record() types.EntitlementRecord {
	return s.record.Clone()
}

// Refresh replaces the record with one supplied by the economy service,
// e.g. after XP was earned elsewhere. Ownership already held by the session
// is kept because grants are never revoked.
func (s *Session) Refresh(record types.EntitlementRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	next := record.Clone()
	for id := range s.record.OwnedPartIDs {
		next.OwnedPartIDs[id] = true
	}
	s.record = next
	return nil
}

// Purchase buys a part with credits and returns the updated record.
func (s *Session) Purchase(categoryID, partID string, priceOverride *int) (types.EntitlementRecord, error) {
	part, err := s.part(categoryID, partID)
	if err != nil {
		return s.Record(), err
	}
	next, err := purchase.Purchase(s.record, part, priceOverride)
	if err != nil {
		return s.Record(), err
	}
	s.log.Info("part acquired",
		"category", categoryID,
		"part", partID,
		"charged", s.record.Credits-next.Credits,
	)
	s.record = next
	return s.Record(), nil
}

// Unlock grants a part without a credit transaction and returns the updated
// record.
func (s *Session) Unlock(categoryID, partID string) (types.EntitlementRecord, error) {
	part, err := s.part(categoryID, partID)
	if err != nil {
		return s.Record(), err
	}
	next, err := purchase.UnlockFree(s.record, part)
	if err != nil {
		return s.Record(), err
	}
	s.log.Info("part unlocked", "category", categoryID, "part", partID)
	s.record = next
	return s.Record(), nil
}

// Parts lists a category's parts with their verdicts.
func (s *Session) Parts(categoryID string) ([]entitlement.PartVerdict, error) {
	cat, ok := s.catalog.FindCategory(categoryID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrCategoryNotFound, categoryID)
	}
	return entitlement.ResolveAll(cat.Parts, s.record), nil
}

func (s *Session) part(categoryID, partID string) (types.Part, error) {
	if _, ok := s.catalog.FindCategory(categoryID); !ok {
		return types.Part{}, fmt.Errorf("%w: %q", types.ErrCategoryNotFound, categoryID)
	}
	part, ok := s.catalog.FindPart(categoryID, partID)
	if !ok {
		return types.Part{}, fmt.Errorf("%w: %s/%s", types.ErrPartNotFound, categoryID, partID)
	}
	return part, nil
}
