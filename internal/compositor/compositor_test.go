package compositor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wardrobe/internal/catalog"
	"github.com/mesh-intelligence/wardrobe/internal/logger"
	"github.com/mesh-intelligence/wardrobe/internal/selection"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// bleedYAML puts the face slot literal into other fragments so substitution
// leaks would be visible.
const bleedYAML = `
view_box: "0 0 10 10"
categories:
  - id: background
    name: Background
    layer: background
    parts:
      - id: bg1
        fragment: <rect fill="#FFC0CB"/>
  - id: face
    name: Face
    layer: face
    colorizable: true
    parts:
      - id: face1
        color_slot: "#FFC0CB"
        default_color: "#FFC0CB"
        fragment: <circle fill="#FFC0CB"/>
  - id: hair
    name: Hair
    layer: hair
    colorizable: true
    parts:
      - id: hair1
        color_slot: "{{tint}}"
        default_color: "#111111"
        fragment: <path fill="{{tint}}"/>
  - id: clothing
    name: Clothing
    layer: clothing
    parts:
      - id: shirt1
        fragment: <path fill="#FFC0CB"/>
`

func builtin(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Builtin()
	require.NoError(t, err)
	return c
}

func TestCompose_Deterministic(t *testing.T) {
	c := builtin(t)
	sel := c.DefaultSelection()
	sel["face"] = types.SelectionEntry{PartID: "face2", Color: "#8D5524"}
	sel["accessories"] = types.SelectionEntry{PartID: "glasses1"}

	first := Compose(c, sel, nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Compose(c, sel, nil))
	}
}

func TestCompose_DrawOrder(t *testing.T) {
	c := builtin(t)
	out := Compose(c, c.DefaultSelection(), nil)

	require.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 280 280">`))
	require.True(t, strings.HasSuffix(out, `</svg>`))

	order := []string{"layer-background", "layer-face", "layer-eyes", "layer-mouth", "layer-hair", "layer-clothing"}
	last := -1
	for _, id := range order {
		idx := strings.Index(out, `id="`+id+`"`)
		require.GreaterOrEqual(t, idx, 0, id)
		assert.Greater(t, idx, last, "%s drawn out of order", id)
		last = idx
	}
	assert.NotContains(t, out, "layer-accessories")
	assert.NotContains(t, out, "layer-facial_hair")
}

func TestCompose_SelectionOrderDoesNotMatter(t *testing.T) {
	c := builtin(t)

	a := selection.NewStore(c, c.DefaultSelection(), selection.Options{Strict: true})
	require.NoError(t, a.Select("accessories", "earring1"))
	require.NoError(t, a.SetColor("hair", "#AA3300"))
	require.NoError(t, a.Select("background", "bg2"))
	require.NoError(t, a.Select("facial_hair", "beard1"))

	b := selection.NewStore(c, c.DefaultSelection(), selection.Options{Strict: true})
	require.NoError(t, b.Select("facial_hair", "beard1"))
	require.NoError(t, b.Select("background", "bg2"))
	require.NoError(t, b.SetColor("hair", "#AA3300"))
	require.NoError(t, b.Select("accessories", "earring1"))

	assert.Equal(t, Compose(c, a.Snapshot(), nil), Compose(c, b.Snapshot(), nil))
}

func TestCompose_FaceColorScenario(t *testing.T) {
	c, err := catalog.Load([]byte(bleedYAML))
	require.NoError(t, err)

	s := selection.NewStore(c, types.Selection{
		"background": {PartID: "bg1"},
		"face":       {PartID: "face1"},
		"hair":       {PartID: "hair1"},
		"clothing":   {PartID: "shirt1"},
	}, selection.Options{Strict: true})
	require.NoError(t, s.SetColor("face", "#8D5524"))

	out := Compose(c, s.Snapshot(), nil)

	assert.Equal(t, 1, strings.Count(out, "#8D5524"))
	assert.Contains(t, out, `<g id="layer-face"><circle fill="#8D5524"/></g>`)
	assert.Contains(t, out, `<g id="layer-background"><rect fill="#FFC0CB"/></g>`)
	assert.Contains(t, out, `<g id="layer-clothing"><path fill="#FFC0CB"/></g>`)
	assert.Contains(t, out, `<g id="layer-hair"><path fill="#111111"/></g>`)
}

func TestCompose_NoBleedFromSubstitutedOutput(t *testing.T) {
	c, err := catalog.Load([]byte(bleedYAML))
	require.NoError(t, err)

	// Hair takes the face slot literal as its colour; face substitution must
	// not rewrite it afterwards.
	sel := types.Selection{
		"face": {PartID: "face1", Color: "#000000"},
		"hair": {PartID: "hair1", Color: "#FFC0CB"},
	}
	out := Compose(c, sel, nil)
	assert.Contains(t, out, `<g id="layer-face"><circle fill="#000000"/></g>`)
	assert.Contains(t, out, `<g id="layer-hair"><path fill="#FFC0CB"/></g>`)
}

func TestCompose_DefaultColorFillsPlaceholder(t *testing.T) {
	c := builtin(t)
	sel := types.Selection{"face": {PartID: "face2"}}
	out := Compose(c, sel, nil)
	assert.Contains(t, out, `fill="#F1C27D"`)
	assert.NotContains(t, out, "{{skin}}")
}

func TestCompose_ColorIgnoredForNonColorizableCategory(t *testing.T) {
	c := builtin(t)
	sel := types.Selection{"clothing": {PartID: "shirt1", Color: "#00FF00"}}
	out := Compose(c, sel, nil)
	assert.NotContains(t, out, "#00FF00")
}

func TestCompose_ColorIsEscaped(t *testing.T) {
	c := builtin(t)
	sel := types.Selection{"hair": {PartID: "hair1", Color: `"/><script/>`}}
	out := Compose(c, sel, nil)
	assert.NotContains(t, out, "<script/>")
}

func TestCompose_DanglingPartSkipped(t *testing.T) {
	c := builtin(t)
	diag := logger.NewDiagnostics(nil)

	sel := c.DefaultSelection()
	sel["hair"] = types.SelectionEntry{PartID: "hair404", Color: "#123456"}
	sel["ghost"] = types.SelectionEntry{PartID: "boo"}

	var out string
	assert.NotPanics(t, func() { out = Compose(c, sel, diag) })
	assert.NotContains(t, out, "layer-hair")
	assert.Contains(t, out, "layer-face")
	assert.NotContains(t, out, "layer-ghost")
	assert.Equal(t, int64(2), diag.Dangling(), "a missing part and an unknown category are both reported")

	assert.NotPanics(t, func() { Compose(c, sel, nil) })
}

type recordingDiagnostics struct {
	reports []string
}

func (r *recordingDiagnostics) DanglingPart(categoryID, partID string) {
	r.reports = append(r.reports, categoryID+"/"+partID)
}

func TestCompose_UnknownCategoriesReported(t *testing.T) {
	c := builtin(t)
	diag := &recordingDiagnostics{}

	sel := c.DefaultSelection()
	sel["wings"] = types.SelectionEntry{PartID: "wings1"}
	sel["aura"] = types.SelectionEntry{PartID: "aura3", Color: "#FFFFFF"}
	sel["tail"] = types.SelectionEntry{}

	out := Compose(c, sel, diag)
	assert.Equal(t, Compose(c, c.DefaultSelection(), nil), out, "unknown categories contribute nothing")
	assert.Equal(t, []string{"aura/aura3", "wings/wings1"}, diag.reports, "empty entries are not dangling")
}

func TestCompose_EmptySelection(t *testing.T) {
	c := builtin(t)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 280 280"></svg>`, Compose(c, nil, nil))
}
