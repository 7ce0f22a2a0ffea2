package pipeline

import (
	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the layout for opts.Notes without caching.
// Options must already be validated.
func GenerateLayout(t *pitch.Table, opts Options) (layout.Layout, error) {
	return layout.Build(t, opts.Notes,
		layout.WithClef(opts.Clef),
		layout.WithGeometry(opts.Geometry),
		layout.WithLogger(opts.Logger),
	)
}

// unresolvedCount returns how many notes of l were skipped.
func unresolvedCount(l layout.Layout) int {
	return len(l.Notes) - len(l.Resolved())
}

func unresolvedPitches(l layout.Layout) []string {
	var out []string
	for _, n := range l.Notes {
		if n.Status == layout.Unresolved {
			out = append(out, n.Pitch)
		}
	}
	return out
}
