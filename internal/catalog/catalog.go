// Package catalog loads and serves the immutable registry of avatar
// categories and parts.
//
// A catalog is built once at startup from a YAML or JSON payload. Malformed
// payloads fail with a *types.ConfigError; a loaded Catalog never changes and
// may be shared across sessions without synchronization.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// DefaultViewBox is used when the payload does not declare one.
const DefaultViewBox = "0 0 280 280"

//go:embed default_catalog.yaml
var builtinYAML []byte

var _ types.Catalog = (*Catalog)(nil)

// payload mirrors the on-disk catalog format.
type payload struct {
	ViewBox    string           `yaml:"view_box"`
	Categories []types.Category `yaml:"categories"`
}

// Catalog is the loaded, validated, draw-ordered registry.
type Catalog struct {
	viewBox    string
	categories []types.Category
	index      map[string]int
}

// Load parses and validates a catalog payload. YAML and JSON are both
// accepted; unknown fields are rejected.
func Load(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p payload
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &types.ConfigError{Reason: "empty payload"}
		}
		return nil, &types.ConfigError{Reason: fmt.Sprintf("parse: %v", err)}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &types.ConfigError{Reason: "payload must contain a single document"}
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return build(p), nil
}

// LoadFile reads and loads the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Load(data)
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	return Load(builtinYAML)
}

// build sorts categories into draw order and indexes them. Categories
// sharing a layer keep their payload order.
func build(p payload) *Catalog {
	cats := make([]types.Category, len(p.Categories))
	copy(cats, p.Categories)
	sort.SliceStable(cats, func(i, j int) bool {
		ri, _ := types.LayerRank(cats[i].Layer)
		rj, _ := types.LayerRank(cats[j].Layer)
		return ri < rj
	})

	index := make(map[string]int, len(cats))
	for i, c := range cats {
		index[c.ID] = i
	}

	viewBox := strings.TrimSpace(p.ViewBox)
	if viewBox == "" {
		viewBox = DefaultViewBox
	}
	return &Catalog{viewBox: viewBox, categories: cats, index: index}
}

// Categories returns a copy of every category in draw order.
func (c *Catalog) Categories() []types.Category {
	out := make([]types.Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cloneCategory(cat)
	}
	return out
}

// FindCategory returns a copy of the category with the given ID.
func (c *Catalog) FindCategory(categoryID string) (types.Category, bool) {
	i, ok := c.index[categoryID]
	if !ok {
		return types.Category{}, false
	}
	return cloneCategory(c.categories[i]), true
}

// FindPart returns the part partID in categoryID.
func (c *Catalog) FindPart(categoryID, partID string) (types.Part, bool) {
	i, ok := c.index[categoryID]
	if !ok {
		return types.Part{}, false
	}
	return c.categories[i].Part(partID)
}

// ViewBox returns the SVG viewBox of composed documents.
func (c *Catalog) ViewBox() string {
	return c.viewBox
}

// DefaultSelection returns the initial selection: the part flagged default
// for every category, else the first free part of a required category.
// Optional categories start empty unless a part is flagged default. Loading
// guarantees every default is free, so a new user may wear all of them.
func (c *Catalog) DefaultSelection() types.Selection {
	sel := make(types.Selection, len(c.categories))
	for _, cat := range c.categories {
		if id := defaultPartID(cat); id != "" {
			sel[cat.ID] = types.SelectionEntry{PartID: id}
		}
	}
	return sel
}

func defaultPartID(cat types.Category) string {
	for _, p := range cat.Parts {
		if p.Default {
			return p.ID
		}
	}
	if cat.Optional {
		return ""
	}
	for _, p := range cat.Parts {
		if p.Classification() == types.ClassFree {
			return p.ID
		}
	}
	return ""
}

func cloneCategory(c types.Category) types.Category {
	parts := make([]types.Part, len(c.Parts))
	copy(parts, c.Parts)
	c.Parts = parts
	return c
}
