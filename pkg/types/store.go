package types

// Store is the external persistence collaborator. The engine performs no
// I/O itself: callers read a record and a saved selection from a Store when
// a session starts and write results back at session boundaries.
type Store interface {
	// Attach connects the Store to the backend described by config and
	// creates DataDir if needed. Returns ErrAlreadyAttached when already
	// attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent. After Detach every
	// operation returns ErrDetached.
	Detach() error

	// EnsureRecord returns the user's record, creating the default record
	// on first use.
	EnsureRecord(userID string) (EntitlementRecord, error)

	// GetRecord returns the user's record or ErrNotFound.
	GetRecord(userID string) (EntitlementRecord, error)

	// Adjust applies signed XP and credit deltas and, when premium is
	// non-nil, a new premium status. Returns ErrNegativeBalance when a
	// balance would drop below zero.
	Adjust(userID string, xpDelta, creditsDelta int, premium *bool) (EntitlementRecord, error)

	// CommitAcquisition persists a purchase or unlock result. Returns
	// ErrStaleRecord when the stored record changed since it was read.
	CommitAcquisition(userID, partID, operation string, next EntitlementRecord, chargedCredits int) error

	// SaveSelection stores an opaque selection blob.
	SaveSelection(userID string, blob []byte) error

	// LoadSelection returns the saved blob or ErrNotFound.
	LoadSelection(userID string) ([]byte, error)

	// DeleteSelection removes the saved blob.
	DeleteSelection(userID string) error

	// Ledger returns the user's acquisition and adjustment history, oldest
	// first.
	Ledger(userID string) ([]LedgerEntry, error)
}
