package layout

import (
	"cmp"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// stepped is a resolved input pitch carried through the resolvers.
type stepped struct {
	index      int
	pitch      string
	step       int
	accidental pitch.Accidental
}

// resolveSorted looks up every pitch and returns the resolved ones
// stable-sorted by step, plus a per-input flag of which were found.
func resolveSorted(t *pitch.Table, pitches []string, logger *log.Logger) ([]stepped, []bool) {
	found := make([]bool, len(pitches))
	out := make([]stepped, 0, len(pitches))
	for i, p := range pitches {
		e, ok := t.Lookup(p)
		if !ok {
			logger.Debug("pitch not in table", "pitch", p, "index", i)
			continue
		}
		found[i] = true
		out = append(out, stepped{index: i, pitch: p, step: e.Step, accidental: e.Accidental})
	}
	slices.SortStableFunc(out, func(a, b stepped) int {
		return cmp.Compare(a.step, b.step)
	})
	return out, found
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return l
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
