package types

import "time"

// Ledger operations recorded by the persistence collaborator.
const (
	LedgerOpPurchase = "purchase"
	LedgerOpUnlock   = "unlock"
	LedgerOpAdjust   = "adjust"
)

// LedgerEntry records one change to a user's entitlement record.
type LedgerEntry struct {
	// EntryID is a UUID v7, generated on commit.
	EntryID string `json:"entry_id"`

	UserID string `json:"user_id"`

	// PartID is empty for economy adjustments.
	PartID string `json:"part_id,omitempty"`

	// Operation is one of the LedgerOp constants.
	Operation string `json:"operation"`

	// CreditsDelta and XPDelta are signed changes applied by this entry.
	CreditsDelta int `json:"credits_delta"`
	XPDelta      int `json:"xp_delta"`

	CreatedAt time.Time `json:"created_at"`
}
