package types

// Layers determine visual stacking. Categories are drawn in layer rank order,
// background first and clothing last.
const (
	LayerBackground     = "background"
	LayerFace           = "face"
	LayerFacialFeatures = "facial_features"
	LayerHair           = "hair"
	LayerAccessories    = "accessories"
	LayerClothing       = "clothing"
)

// layerRanks maps each recognized layer to its draw position.
var layerRanks = map[string]int{
	LayerBackground:     0,
	LayerFace:           1,
	LayerFacialFeatures: 2,
	LayerHair:           3,
	LayerAccessories:    4,
	LayerClothing:       5,
}

// LayerRank returns the draw position of a layer and whether it is known.
func LayerRank(layer string) (int, bool) {
	r, ok := layerRanks[layer]
	return r, ok
}

// Part classifications. Exactly one applies to every part.
const (
	ClassFree    = "free"
	ClassPremium = "premium"
	ClassXP      = "xp"
)

// Part is one selectable option within a Category.
type Part struct {
	// ID is unique within the catalog.
	ID string `json:"id" yaml:"id"`

	// Name is an optional display label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Fragment is opaque SVG markup drawn for this part.
	Fragment string `json:"fragment" yaml:"fragment"`

	// Premium parts are gated by premium status regardless of XPRequired.
	Premium bool `json:"premium,omitempty" yaml:"premium,omitempty"`

	// XPRequired is the live XP threshold; zero means no requirement.
	XPRequired int `json:"xp_required,omitempty" yaml:"xp_required,omitempty"`

	// Price is the credit cost of a priced acquisition.
	Price int `json:"price,omitempty" yaml:"price,omitempty"`

	// ColorSlot is the marker inside Fragment that colour overrides replace.
	ColorSlot string `json:"color_slot,omitempty" yaml:"color_slot,omitempty"`

	// DefaultColor fills ColorSlot when no override is set.
	DefaultColor string `json:"default_color,omitempty" yaml:"default_color,omitempty"`

	// Default marks the part the initializer selects for its category.
	Default bool `json:"default,omitempty" yaml:"default,omitempty"`
}

// Classification returns ClassPremium, ClassXP, or ClassFree. Premium takes
// precedence over an XP requirement.
func (p Part) Classification() string {
	switch {
	case p.Premium:
		return ClassPremium
	case p.XPRequired > 0:
		return ClassXP
	default:
		return ClassFree
	}
}

// Colorizable reports whether the part declares a colour slot.
func (p Part) Colorizable() bool {
	return p.ColorSlot != ""
}

// Category is one layer of the avatar with an ordered list of parts.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Layer is one of the Layer constants and fixes the draw position.
	Layer string `json:"layer" yaml:"layer"`

	// Optional categories accept "no part" as a selection.
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`

	// Colorizable categories honour colour overrides in the Selection.
	Colorizable bool `json:"colorizable,omitempty" yaml:"colorizable,omitempty"`

	Parts []Part `json:"parts" yaml:"parts"`
}

// Part returns the part with the given ID from this category.
func (c Category) Part(id string) (Part, bool) {
	for _, p := range c.Parts {
		if p.ID == id {
			return p, true
		}
	}
	return Part{}, false
}

// Catalog is the read-only registry of categories and parts. Implementations
// are immutable after construction and safe for concurrent readers.
type Catalog interface {
	// Categories returns every category in draw order. The order is the same
	// on every call.
	Categories() []Category

	// FindCategory returns the category with the given ID.
	FindCategory(categoryID string) (Category, bool)

	// FindPart returns the part with partID in categoryID.
	FindPart(categoryID, partID string) (Part, bool)

	// ViewBox returns the SVG viewBox of the composed document.
	ViewBox() string
}

// Diagnostics receives non-fatal composition warnings.
type Diagnostics interface {
	// DanglingPart reports a selected part ID that does not exist in its
	// category. The category contributes nothing to the document.
	DanglingPart(categoryID, partID string)
}
