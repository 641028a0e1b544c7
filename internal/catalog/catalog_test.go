package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// shuffledYAML declares categories out of draw order on purpose.
const shuffledYAML = `
categories:
  - id: clothing
    name: Clothing
    layer: clothing
    parts:
      - id: shirt1
        fragment: <rect id="shirt1"/>
  - id: hair
    name: Hair
    layer: hair
    colorizable: true
    parts:
      - id: hair1
        default: true
        color_slot: "{{tint}}"
        default_color: "#000000"
        fragment: <path fill="{{tint}}"/>
      - id: hair7
        premium: true
        price: 300
        fragment: <path id="hair7"/>
  - id: background
    name: Background
    layer: background
    parts:
      - id: bg1
        fragment: <rect id="bg1"/>
  - id: accessories
    name: Accessories
    layer: accessories
    optional: true
    parts:
      - id: hat1
        fragment: <path id="hat1"/>
  - id: eyes
    name: Eyes
    layer: facial_features
    parts:
      - id: eyes2
        xp_required: 100
        fragment: <circle id="eyes2"/>
      - id: eyes1
        fragment: <circle id="eyes1"/>
`

func categoryIDs(cats []types.Category) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, DefaultViewBox, c.ViewBox())
	assert.Equal(t,
		[]string{"background", "face", "eyes", "mouth", "facial_hair", "hair", "accessories", "clothing"},
		categoryIDs(c.Categories()))

	hair7, ok := c.FindPart("hair", "hair7")
	require.True(t, ok)
	assert.True(t, hair7.Premium)
	assert.Equal(t, 300, hair7.Price)

	face1, ok := c.FindPart("face", "face1")
	require.True(t, ok)
	assert.Equal(t, "#FFC0CB", face1.ColorSlot)
}

func TestBuiltin_AcquisitionRules(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	for _, cat := range c.Categories() {
		for _, p := range cat.Parts {
			if p.Price > 0 {
				assert.NotEqual(t, types.ClassFree, p.Classification(), "%s/%s is priced but free", cat.ID, p.ID)
			}
			if p.ColorSlot != "" {
				assert.NotEmpty(t, p.DefaultColor, "%s/%s has a slot but no default color", cat.ID, p.ID)
			}
		}
	}
	for catID, choice := range c.DefaultSelection() {
		p, ok := c.FindPart(catID, choice.PartID)
		require.True(t, ok)
		assert.Equal(t, types.ClassFree, p.Classification(), "default %s/%s", catID, p.ID)
	}

	glasses, ok := c.FindPart("accessories", "glasses1")
	require.True(t, ok)
	assert.Equal(t, types.ClassXP, glasses.Classification())
}

func TestLoad_DrawOrderIgnoresPayloadOrder(t *testing.T) {
	c, err := Load([]byte(shuffledYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"background", "eyes", "hair", "accessories", "clothing"}, categoryIDs(c.Categories()))
	// Restartable: the same order on every call.
	assert.Equal(t, categoryIDs(c.Categories()), categoryIDs(c.Categories()))
}

func TestLoad_JSONPayload(t *testing.T) {
	data := `{"view_box":"0 0 100 100","categories":[{"id":"face","name":"Face","layer":"face","parts":[{"id":"f1","fragment":"<circle/>"}]}]}`
	c, err := Load([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "0 0 100 100", c.ViewBox())
	_, ok := c.FindPart("face", "f1")
	assert.True(t, ok)
}

func TestFind(t *testing.T) {
	c, err := Load([]byte(shuffledYAML))
	require.NoError(t, err)

	_, ok := c.FindPart("hair", "eyes1")
	assert.False(t, ok, "part from another category must not be found")
	_, ok = c.FindPart("nope", "hair1")
	assert.False(t, ok)
	_, ok = c.FindCategory("nope")
	assert.False(t, ok)

	cat, ok := c.FindCategory("hair")
	require.True(t, ok)
	assert.True(t, cat.Colorizable)
	assert.Len(t, cat.Parts, 2)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	c, err := Load([]byte(shuffledYAML))
	require.NoError(t, err)

	cats := c.Categories()
	cats[0].ID = "mutated"
	cats[0].Parts[0].Fragment = "mutated"

	again := c.Categories()
	assert.Equal(t, "background", again[0].ID)
	assert.Equal(t, `<rect id="bg1"/>`, again[0].Parts[0].Fragment)
}

func TestDefaultSelection(t *testing.T) {
	c, err := Load([]byte(shuffledYAML))
	require.NoError(t, err)

	sel := c.DefaultSelection()
	assert.Equal(t, types.Selection{
		"background": {PartID: "bg1"},
		"eyes":       {PartID: "eyes1"}, // first free part, not the xp-gated first entry
		"hair":       {PartID: "hair1"}, // flagged default
		"clothing":   {PartID: "shirt1"},
	}, sel)
	_, hasAccessory := sel["accessories"]
	assert.False(t, hasAccessory, "optional categories start empty")
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty payload", ``},
		{"not yaml", `categories: [`},
		{"unknown field", "categories:\n  - id: a\n    layer: face\n    colour: red\n    parts: [{id: p, fragment: x}]"},
		{"no categories", `view_box: "0 0 1 1"`},
		{"missing category id", "categories:\n  - layer: face\n    parts: [{id: p, fragment: x}]"},
		{"duplicate category id", "categories:\n  - {id: a, layer: face, parts: [{id: p1, fragment: x}]}\n  - {id: a, layer: hair, parts: [{id: p2, fragment: x}]}"},
		{"unknown layer", "categories:\n  - {id: a, layer: shoes, parts: [{id: p, fragment: x}]}"},
		{"required category without parts", "categories:\n  - {id: a, layer: face, parts: []}"},
		{"missing part id", "categories:\n  - {id: a, layer: face, parts: [{fragment: x}]}"},
		{"duplicate part id in category", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: x}, {id: p, fragment: y}]}"},
		{"duplicate part id across categories", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: x}]}\n  - {id: b, layer: hair, parts: [{id: p, fragment: y}]}"},
		{"empty fragment", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: '  '}]}"},
		{"negative price", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: x, price: -1}]}"},
		{"negative xp", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: x, xp_required: -5}]}"},
		{"slot missing from fragment", "categories:\n  - {id: a, layer: face, colorizable: true, parts: [{id: p, fragment: x, color_slot: '#FFF', default_color: '#000'}]}"},
		{"slot on non-colorizable category", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: '#FFF', color_slot: '#FFF', default_color: '#000'}]}"},
		{"default color without slot", "categories:\n  - {id: a, layer: face, colorizable: true, parts: [{id: p, fragment: x, default_color: '#FFF'}]}"},
		{"two defaults", "categories:\n  - {id: a, layer: face, parts: [{id: p1, fragment: x, default: true}, {id: p2, fragment: y, default: true}]}"},
		{"slot without default color", "categories:\n  - {id: a, layer: hair, colorizable: true, parts: [{id: p, fragment: '<path fill=\"{{tint}}\"/>', color_slot: '{{tint}}'}]}"},
		{"price on free part", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: x, price: 50}]}"},
		{"premium default", "categories:\n  - {id: a, layer: face, parts: [{id: p1, fragment: x}, {id: p2, fragment: y, premium: true, default: true}]}"},
		{"xp default", "categories:\n  - {id: a, layer: face, parts: [{id: p1, fragment: x}, {id: p2, fragment: y, xp_required: 10, default: true}]}"},
		{"required category without free part", "categories:\n  - {id: a, layer: face, parts: [{id: p1, fragment: x, premium: true}, {id: p2, fragment: y, xp_required: 10}]}"},
		{"second document", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: x}]}\n---\ncategories: []\n"},
		{"second document with garbage", "categories:\n  - {id: a, layer: face, parts: [{id: p, fragment: x}]}\n---\n[unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load([]byte(tt.data))
			assert.Nil(t, c)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrConfiguration)

			var cfgErr *types.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoad_OptionalCategoryMayBeEmpty(t *testing.T) {
	data := "categories:\n  - {id: face, layer: face, parts: [{id: f, fragment: x}]}\n  - {id: acc, layer: accessories, optional: true, parts: []}"
	c, err := Load([]byte(data))
	require.NoError(t, err)
	assert.Len(t, c.Categories(), 2)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shuffledYAML), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Categories(), 5)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrConfiguration)
}
