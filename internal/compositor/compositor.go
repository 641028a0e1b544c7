// Package compositor merges the selected parts of every category into one
// SVG document.
//
// Compose is a pure function of the catalog and the selection: categories
// are visited in catalog draw order, never selection order, and no clock,
// randomness, or shared state participates.
package compositor

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Compose renders sel against cat. A selected part that is missing from its
// category, or whose category is not in the catalog, is skipped and
// reported to diag, which may be nil.
func Compose(cat types.Catalog, sel types.Selection, diag types.Diagnostics) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="`)
	b.WriteString(svgNamespace)
	b.WriteString(`" viewBox="`)
	b.WriteString(escapeAttr(cat.ViewBox()))
	b.WriteString(`">`)

	categories := cat.Categories()
	for _, category := range categories {
		entry, ok := sel[category.ID]
		if !ok || entry.PartID == "" {
			continue
		}
		part, ok := category.Part(entry.PartID)
		if !ok {
			if diag != nil {
				diag.DanglingPart(category.ID, entry.PartID)
			}
			continue
		}

		b.WriteString(`<g id="layer-`)
		b.WriteString(escapeAttr(category.ID))
		b.WriteString(`">`)
		b.WriteString(Fragment(category, part, entry.Color))
		b.WriteString(`</g>`)
	}
	if diag != nil {
		reportUnknownCategories(categories, sel, diag)
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// reportUnknownCategories reports entries for categories the catalog does not
// define, such as a selection restored against an older catalog. Reports
// follow category ID order.
func reportUnknownCategories(categories []types.Category, sel types.Selection, diag types.Diagnostics) {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	var unknown []string
	for id, entry := range sel {
		if !known[id] && entry.PartID != "" {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		diag.DanglingPart(id, sel[id].PartID)
	}
}

// Fragment returns the part's markup with its colour slot filled. The slot
// is filled with color when the category is colorizable and color is set,
// otherwise with the part's default colour. Only this part's own fragment is
// rewritten.
func Fragment(category types.Category, part types.Part, color string) string {
	if !part.Colorizable() {
		return part.Fragment
	}
	fill := part.DefaultColor
	if category.Colorizable && color != "" {
		fill = escapeAttr(color)
	}
	if fill == "" || fill == part.ColorSlot {
		return part.Fragment
	}
	return strings.ReplaceAll(part.Fragment, part.ColorSlot, fill)
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
