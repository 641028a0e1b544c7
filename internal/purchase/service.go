// Package purchase grants permanent access to parts.
//
// Every operation takes a record by value and returns a new record, so a
// failed call leaves the caller's record untouched and a successful one
// applies the credit debit and the ownership grant together.
package purchase

import (
	"fmt"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Purchase acquires part for credits. priceOverride, when non-nil, replaces
// the catalog price.
//
// Already-owned parts succeed without change. Premium parts cannot be bought
// with credits. Free parts are granted at no cost whatever the price or
// override says. An XP-gated part whose threshold is met is unlocked for
// free; below its threshold it can only be bought when it carries a price.
func Purchase(record types.EntitlementRecord, part types.Part, priceOverride *int) (types.EntitlementRecord, error) {
	if record.Owns(part.ID) {
		return record.Clone(), nil
	}
	if part.Premium {
		return record, fmt.Errorf("%w: %s is premium-only", types.ErrInsufficientEntitlement, part.ID)
	}
	if part.Classification() == types.ClassFree || record.XP >= part.XPRequired {
		return grant(record, part.ID, 0), nil
	}

	if part.Price == 0 {
		return record, fmt.Errorf("%w: %s requires %d xp and has no price",
			types.ErrInsufficientEntitlement, part.ID, part.XPRequired)
	}
	price := part.Price
	if priceOverride != nil {
		price = *priceOverride
	}
	if price < 0 {
		return record, fmt.Errorf("%w: %d", types.ErrInvalidPrice, price)
	}
	if record.Credits < price {
		return record, fmt.Errorf("%w: %s costs %d, balance %d",
			types.ErrInsufficientCredits, part.ID, price, record.Credits)
	}
	return grant(record, part.ID, price), nil
}

// UnlockFree grants part without a credit transaction. It succeeds for
// owned parts, free parts, and XP-gated parts whose threshold is met.
func UnlockFree(record types.EntitlementRecord, part types.Part) (types.EntitlementRecord, error) {
	if record.Owns(part.ID) {
		return record.Clone(), nil
	}
	if part.Premium {
		return record, fmt.Errorf("%w: %s is premium-only", types.ErrInsufficientEntitlement, part.ID)
	}
	if part.XPRequired > 0 && record.XP < part.XPRequired {
		return record, fmt.Errorf("%w: %s requires %d xp, have %d",
			types.ErrInsufficientEntitlement, part.ID, part.XPRequired, record.XP)
	}
	return grant(record, part.ID, 0), nil
}

// grant returns a copy of record with partID owned and cost debited.
func grant(record types.EntitlementRecord, partID string, cost int) types.EntitlementRecord {
	next := record.Clone()
	next.Credits -= cost
	next.OwnedPartIDs[partID] = true
	return next
}
