// Package entitlement decides whether a user may select a part.
//
// Two kinds of access are kept apart. Ownership (purchases and explicit
// unlocks recorded in OwnedPartIDs) is permanent. XP access is a live
// comparison against the record's current XP and is never written back.
package entitlement

import "github.com/mesh-intelligence/wardrobe/pkg/types"

// Resolve returns the verdict for part under record. Rules are evaluated in
// order and the first match wins:
//
//  1. owned parts are available;
//  2. premium parts are locked for non-premium users;
//  3. parts whose XP threshold exceeds the record's XP are locked by XP;
//  4. everything else is available.
func Resolve(part types.Part, record types.EntitlementRecord) types.Verdict {
	if record.Owns(part.ID) {
		return types.Available
	}
	if part.Premium && !record.Premium {
		return types.LockedByPremium
	}
	if part.XPRequired > 0 && record.XP < part.XPRequired {
		return types.LockedByXP(part.XPRequired, part.XPRequired-record.XP)
	}
	return types.Available
}

// PartVerdict pairs a part with its verdict.
type PartVerdict struct {
	Part    types.Part
	Verdict types.Verdict
}

// ResolveAll resolves every part in order.
func ResolveAll(parts []types.Part, record types.EntitlementRecord) []PartVerdict {
	out := make([]PartVerdict, len(parts))
	for i, p := range parts {
		out[i] = PartVerdict{Part: p, Verdict: Resolve(p, record)}
	}
	return out
}

// Available returns the parts the record may select, preserving order.
func Available(parts []types.Part, record types.EntitlementRecord) []types.Part {
	var out []types.Part
	for _, p := range parts {
		if Resolve(p, record).IsAvailable() {
			out = append(out, p)
		}
	}
	return out
}
