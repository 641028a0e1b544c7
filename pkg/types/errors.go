package types

import (
	"errors"
	"fmt"
)

// Catalog configuration errors. Any of these aborts startup.
var (
	ErrConfiguration = errors.New("invalid catalog configuration")
)

// Entitlement errors returned by the purchase service.
var (
	ErrInsufficientCredits     = errors.New("insufficient credits")
	ErrInsufficientEntitlement = errors.New("insufficient entitlement")
	ErrInvalidPrice            = errors.New("price must not be negative")
	ErrNegativeBalance         = errors.New("xp and credits must not be negative")
)

// Selection and session errors.
var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrPartLocked         = errors.New("part is locked")
	ErrCategoryRequired   = errors.New("category requires a part")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrPartNotFound       = errors.New("part not found")
	ErrSnapshotVersion    = errors.New("unsupported selection snapshot version")
)

// Persistence collaborator errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("record not found")
	ErrInvalidID       = errors.New("invalid user ID")
	ErrStaleRecord     = errors.New("entitlement record changed since it was read")
)

// ConfigError describes a malformed catalog payload. It matches
// ErrConfiguration under errors.Is.
type ConfigError struct {
	Field  string // dotted path to the offending value, e.g. "categories[2].parts[0].id"
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// LockedError carries the verdict that refused a selection. It matches
// ErrPartLocked under errors.Is.
type LockedError struct {
	CategoryID string
	PartID     string
	Verdict    Verdict
}

// Error implements the error interface.
func (e *LockedError) Error() string {
	return fmt.Sprintf("%s: %s/%s: %s", ErrPartLocked, e.CategoryID, e.PartID, e.Verdict)
}

// Is reports whether target is ErrPartLocked.
func (e *LockedError) Is(target error) bool {
	return target == ErrPartLocked
}
