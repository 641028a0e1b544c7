package selection

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// snapshotVersion is the blob format written by Encode.
const snapshotVersion = 1

type snapshotBlob struct {
	Version int             `json:"version"`
	Entries types.Selection `json:"entries"`
}

// Encode serializes a selection for an external store. The format is opaque
// to callers; only round-trips through Decode are guaranteed.
func Encode(sel types.Selection) ([]byte, error) {
	data, err := json.Marshal(snapshotBlob{Version: snapshotVersion, Entries: sel.Clone()})
	if err != nil {
		return nil, fmt.Errorf("encoding selection: %w", err)
	}
	return data, nil
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (types.Selection, error) {
	var blob snapshotBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("decoding selection: %w", err)
	}
	if blob.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", types.ErrSnapshotVersion, blob.Version)
	}
	return blob.Entries.Clone(), nil
}
