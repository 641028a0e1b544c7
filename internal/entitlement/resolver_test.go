package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

var (
	free    = types.Part{ID: "hair1", Fragment: "<g/>"}
	premium = types.Part{ID: "hair7", Fragment: "<g/>", Premium: true, Price: 300}
	xpPart  = types.Part{ID: "hair2", Fragment: "<g/>", XPRequired: 1000}
	both    = types.Part{ID: "hair9", Fragment: "<g/>", Premium: true, XPRequired: 500}
)

func record(xp int, isPremium bool, owned ...string) types.EntitlementRecord {
	r := types.NewEntitlementRecord()
	r.XP = xp
	r.Premium = isPremium
	for _, id := range owned {
		r.OwnedPartIDs[id] = true
	}
	return r
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		part   types.Part
		record types.EntitlementRecord
		want   types.Verdict
	}{
		{"free part", free, record(0, false), types.Available},
		{"premium part for free user", premium, record(0, false), types.LockedByPremium},
		{"premium part for premium user", premium, record(0, true), types.Available},
		{"owned premium part after premium lapses", premium, record(0, false, "hair7"), types.Available},
		{"xp part below threshold", xpPart, record(400, false), types.LockedByXP(1000, 600)},
		{"xp part at threshold", xpPart, record(1000, false), types.Available},
		{"xp part above threshold", xpPart, record(5000, false), types.Available},
		{"owned xp part with no xp", xpPart, record(0, false, "hair2"), types.Available},
		{"premium wins over xp", both, record(0, false), types.LockedByPremium},
		{"premium user still needs xp", both, record(100, true), types.LockedByXP(500, 400)},
		{"premium user with xp", both, record(500, true), types.Available},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.part, tt.record))
		})
	}
}

func TestResolve_XPIsLiveComparison(t *testing.T) {
	r := record(1000, false)
	assert.True(t, Resolve(xpPart, r).IsAvailable())
	assert.False(t, r.Owns(xpPart.ID), "meeting a threshold must not grant ownership")

	// An external re-check lowers XP: access follows the live value.
	r.XP = 999
	assert.Equal(t, types.LockedByXP(1000, 1), Resolve(xpPart, r))
}

func TestResolve_OwnershipIsMonotonic(t *testing.T) {
	r := record(0, false, "hair7", "hair2")

	for _, mutate := range []func(*types.EntitlementRecord){
		func(r *types.EntitlementRecord) { r.XP = 0 },
		func(r *types.EntitlementRecord) { r.Premium = false },
		func(r *types.EntitlementRecord) { r.Credits = 0 },
		func(r *types.EntitlementRecord) { r.Premium = true; r.XP = 10 },
	} {
		mutate(&r)
		assert.True(t, Resolve(premium, r).IsAvailable())
		assert.True(t, Resolve(xpPart, r).IsAvailable())
	}
}

func TestResolve_Hair7Scenario(t *testing.T) {
	r := record(0, false)
	assert.Equal(t, types.LockedByPremium, Resolve(premium, r))

	r.Premium = true
	assert.Equal(t, types.Available, Resolve(premium, r))
}

func TestResolveAllAndAvailable(t *testing.T) {
	parts := []types.Part{free, premium, xpPart}
	r := record(2000, false)

	all := ResolveAll(parts, r)
	assert.Len(t, all, 3)
	assert.Equal(t, types.LockedByPremium, all[1].Verdict)
	assert.Equal(t, "hair2", all[2].Part.ID)

	avail := Available(parts, r)
	assert.Equal(t, []types.Part{free, xpPart}, avail)
}
