package catalog

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// validate checks a decoded payload and returns the first problem found as a
// *types.ConfigError.
func validate(p *payload) error {
	if len(p.Categories) == 0 {
		return &types.ConfigError{Field: "categories", Reason: "no categories defined"}
	}

	categoryIDs := make(map[string]bool, len(p.Categories))
	partOwners := make(map[string]string)

	for ci, cat := range p.Categories {
		field := fmt.Sprintf("categories[%d]", ci)
		id := strings.TrimSpace(cat.ID)
		if id == "" {
			return &types.ConfigError{Field: field + ".id", Reason: "category id is required"}
		}
		if id != cat.ID {
			return &types.ConfigError{Field: field + ".id", Reason: "category id has surrounding whitespace"}
		}
		if categoryIDs[id] {
			return &types.ConfigError{Field: field + ".id", Reason: fmt.Sprintf("duplicate category id %q", id)}
		}
		categoryIDs[id] = true

		if _, ok := types.LayerRank(cat.Layer); !ok {
			return &types.ConfigError{Field: field + ".layer", Reason: fmt.Sprintf("unknown layer %q", cat.Layer)}
		}
		if len(cat.Parts) == 0 && !cat.Optional {
			return &types.ConfigError{Field: field + ".parts", Reason: fmt.Sprintf("category %q requires at least one part", id)}
		}

		defaults, free := 0, 0
		for pi, part := range cat.Parts {
			pfield := fmt.Sprintf("%s.parts[%d]", field, pi)
			if err := validatePart(pfield, cat, part); err != nil {
				return err
			}
			if owner, dup := partOwners[part.ID]; dup {
				return &types.ConfigError{
					Field:  pfield + ".id",
					Reason: fmt.Sprintf("duplicate part id %q (already in category %q)", part.ID, owner),
				}
			}
			partOwners[part.ID] = id
			if part.Default {
				defaults++
			}
			if part.Classification() == types.ClassFree {
				free++
			}
		}
		if defaults > 1 {
			return &types.ConfigError{Field: field + ".parts", Reason: "more than one default part"}
		}
		if !cat.Optional && free == 0 {
			return &types.ConfigError{Field: field + ".parts", Reason: fmt.Sprintf("required category %q has no free part to start with", id)}
		}
	}
	return nil
}

func validatePart(field string, cat types.Category, part types.Part) error {
	if strings.TrimSpace(part.ID) == "" || strings.TrimSpace(part.ID) != part.ID {
		return &types.ConfigError{Field: field + ".id", Reason: "part id is required and must not have surrounding whitespace"}
	}
	if strings.TrimSpace(part.Fragment) == "" {
		return &types.ConfigError{Field: field + ".fragment", Reason: fmt.Sprintf("part %q has an empty fragment", part.ID)}
	}
	if part.XPRequired < 0 {
		return &types.ConfigError{Field: field + ".xp_required", Reason: "must not be negative"}
	}
	if part.Price < 0 {
		return &types.ConfigError{Field: field + ".price", Reason: "must not be negative"}
	}
	// Free parts are available to everyone, so a price could only be lost.
	if part.Price > 0 && part.Classification() == types.ClassFree {
		return &types.ConfigError{Field: field + ".price", Reason: fmt.Sprintf("part %q is free; a price needs xp_required or premium", part.ID)}
	}
	if part.Default && part.Classification() != types.ClassFree {
		return &types.ConfigError{Field: field + ".default", Reason: fmt.Sprintf("default part %q is %s-gated", part.ID, part.Classification())}
	}
	if part.ColorSlot == "" {
		if part.DefaultColor != "" {
			return &types.ConfigError{Field: field + ".default_color", Reason: "set without a color_slot"}
		}
		return nil
	}
	if part.DefaultColor == "" {
		return &types.ConfigError{Field: field + ".default_color", Reason: fmt.Sprintf("part %q declares a color_slot without a default_color", part.ID)}
	}
	if !cat.Colorizable {
		return &types.ConfigError{Field: field + ".color_slot", Reason: fmt.Sprintf("category %q is not colorizable", cat.ID)}
	}
	if !strings.Contains(part.Fragment, part.ColorSlot) {
		return &types.ConfigError{Field: field + ".color_slot", Reason: fmt.Sprintf("slot %q not found in fragment", part.ColorSlot)}
	}
	return nil
}
