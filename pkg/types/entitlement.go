package types

import (
	"fmt"
	"sort"
)

// EntitlementRecord is the durable per-user state that governs access to
// parts. OwnedPartIDs only grows.
type EntitlementRecord struct {
	XP           int             `json:"xp"`
	Credits      int             `json:"credits"`
	Premium      bool            `json:"premium"`
	OwnedPartIDs map[string]bool `json:"owned_part_ids"`
}

// NewEntitlementRecord returns the default record created with an account.
func NewEntitlementRecord() EntitlementRecord {
	return EntitlementRecord{OwnedPartIDs: make(map[string]bool)}
}

// Owns reports whether the part ID has been permanently granted.
func (r EntitlementRecord) Owns(partID string) bool {
	return r.OwnedPartIDs[partID]
}

// Clone returns a deep copy so that mutations on the copy are never
// observable through the original.
func (r EntitlementRecord) Clone() EntitlementRecord {
	owned := make(map[string]bool, len(r.OwnedPartIDs))
	for id, ok := range r.OwnedPartIDs {
		if ok {
			owned[id] = true
		}
	}
	r.OwnedPartIDs = owned
	return r
}

// Owned returns the owned part IDs in sorted order.
func (r EntitlementRecord) Owned() []string {
	ids := make([]string, 0, len(r.OwnedPartIDs))
	for id, ok := range r.OwnedPartIDs {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Validate rejects negative balances.
func (r EntitlementRecord) Validate() error {
	if r.XP < 0 || r.Credits < 0 {
		return ErrNegativeBalance
	}
	return nil
}

// Verdict statuses.
const (
	StatusAvailable       = "available"
	StatusLockedByXP      = "locked_by_xp"
	StatusLockedByPremium = "locked_by_premium"
)

// Verdict is the resolver's answer for one part. Required and Missing are
// set only for StatusLockedByXP.
type Verdict struct {
	Status   string `json:"status"`
	Required int    `json:"required,omitempty"`
	Missing  int    `json:"missing,omitempty"`
}

// Available is the verdict for parts the user may select.
var Available = Verdict{Status: StatusAvailable}

// LockedByPremium is the verdict for premium parts the user has no access to.
var LockedByPremium = Verdict{Status: StatusLockedByPremium}

// LockedByXP returns the verdict for an unmet XP threshold.
func LockedByXP(required, missing int) Verdict {
	return Verdict{Status: StatusLockedByXP, Required: required, Missing: missing}
}

// IsAvailable reports whether the verdict permits selection.
func (v Verdict) IsAvailable() bool {
	return v.Status == StatusAvailable
}

// String renders the verdict for messages and CLI output.
func (v Verdict) String() string {
	if v.Status == StatusLockedByXP {
		return fmt.Sprintf("%s (requires %d xp, %d missing)", v.Status, v.Required, v.Missing)
	}
	return v.Status
}
