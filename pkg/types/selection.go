package types

// SelectionEntry is the current choice for one category. An empty PartID
// means no part; an empty Color means no override.
type SelectionEntry struct {
	PartID string `json:"part_id,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Selection maps category IDs to their current choice.
type Selection map[string]SelectionEntry

// Clone returns an independent copy of the selection. Cloning nil yields an
// empty, non-nil selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether two selections hold the same entries. Categories with
// a zero entry are treated as absent.
func (s Selection) Equal(other Selection) bool {
	for k, v := range s {
		if other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if s[k] != v {
			return false
		}
	}
	return true
}
