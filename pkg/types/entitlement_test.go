package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitlementRecord_Clone(t *testing.T) {
	orig := NewEntitlementRecord()
	orig.Credits = 10
	orig.OwnedPartIDs["hair7"] = true

	c := orig.Clone()
	c.OwnedPartIDs["glasses1"] = true
	c.Credits = 0

	assert.False(t, orig.Owns("glasses1"))
	assert.Equal(t, 10, orig.Credits)
	assert.True(t, c.Owns("hair7"))
}

func TestEntitlementRecord_Owned(t *testing.T) {
	r := EntitlementRecord{OwnedPartIDs: map[string]bool{"b": true, "a": true, "c": false}}
	assert.Equal(t, []string{"a", "b"}, r.Owned())
	assert.Empty(t, EntitlementRecord{}.Owned())
}

func TestEntitlementRecord_Validate(t *testing.T) {
	assert.NoError(t, EntitlementRecord{}.Validate())
	assert.ErrorIs(t, EntitlementRecord{XP: -1}.Validate(), ErrNegativeBalance)
	assert.ErrorIs(t, EntitlementRecord{Credits: -1}.Validate(), ErrNegativeBalance)
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		name      string
		verdict   Verdict
		available bool
		text      string
	}{
		{"available", Available, true, "available"},
		{"premium", LockedByPremium, false, "locked_by_premium"},
		{"xp", LockedByXP(1000, 250), false, "locked_by_xp (requires 1000 xp, 250 missing)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, tt.verdict.IsAvailable())
			assert.Equal(t, tt.text, tt.verdict.String())
		})
	}
}

func TestPart_Classification(t *testing.T) {
	assert.Equal(t, ClassFree, Part{}.Classification())
	assert.Equal(t, ClassXP, Part{XPRequired: 500}.Classification())
	assert.Equal(t, ClassPremium, Part{Premium: true, XPRequired: 500}.Classification())
}

func TestLayerRank(t *testing.T) {
	bg, ok := LayerRank(LayerBackground)
	assert.True(t, ok)
	clothing, ok := LayerRank(LayerClothing)
	assert.True(t, ok)
	assert.Less(t, bg, clothing)

	_, ok = LayerRank("shoes")
	assert.False(t, ok)
}

func TestTypedErrors(t *testing.T) {
	var err error = &ConfigError{Field: "categories[0].id", Reason: "empty"}
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "categories[0].id")

	err = &LockedError{CategoryID: "hair", PartID: "hair7", Verdict: LockedByPremium}
	assert.True(t, errors.Is(err, ErrPartLocked))
	assert.False(t, errors.Is(err, ErrConfiguration))
}
