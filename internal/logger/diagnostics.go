package logger

import (
	"sync/atomic"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

var _ types.Diagnostics = (*Diagnostics)(nil)

// Diagnostics counts and logs composition warnings.
type Diagnostics struct {
	log      *Logger
	dangling atomic.Int64
}

// NewDiagnostics returns a sink that logs through log. A nil log discards
// messages but still counts.
func NewDiagnostics(log *Logger) *Diagnostics {
	return &Diagnostics{log: OrNop(log).With("component", "compositor")}
}

// DanglingPart records a selected part that is missing from the catalog.
func (d *Diagnostics) DanglingPart(categoryID, partID string) {
	n := d.dangling.Add(1)
	d.log.Warn("dangling part reference skipped",
		"category", categoryID,
		"part", partID,
		"total", n,
	)
}

// Dangling returns the number of dangling references reported so far.
func (d *Diagnostics) Dangling() int64 {
	return d.dangling.Load()
}
