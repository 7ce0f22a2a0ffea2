package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// Notehead columns, left to right.
const (
	NoteColumnBase  = 0
	NoteColumnShift = 1
	NoteColumnThird = 2
)

// NoteheadPosition is the resolved notehead column for one input pitch.
type NoteheadPosition struct {
	Pitch    string
	Index    int
	Resolved bool
	Column   int
	X        float64
}

// ResolveNoteheads assigns each pitch one of three notehead columns so
// that notes a second apart do not overlap. Columns sit at baseX,
// baseX+offset and baseX+2*offset.
//
// Results are in input order. Pitches missing from t are returned with
// Resolved=false and X=0.
func ResolveNoteheads(t *pitch.Table, pitches []string, baseX, offset float64, logger *log.Logger) []NoteheadPosition {
	logger = orDiscard(logger)
	sorted, found := resolveSorted(t, pitches, logger)

	cols := make([]int, len(sorted))

	// Pass 1: alternate base and shifted columns through runs of seconds.
	prevShifted := false
	for i := range sorted {
		col := NoteColumnBase
		if i > 0 && abs(sorted[i].step-sorted[i-1].step) <= 1 {
			if !prevShifted {
				col = NoteColumnShift
				prevShifted = true
				logger.Debug("notehead collision", "pitch", sorted[i].pitch, "with", sorted[i-1].pitch, "column", col)
			} else {
				prevShifted = false
			}
		} else {
			prevShifted = false
		}
		cols[i] = col
	}

	// Pass 2: recheck the base column for pairs pass 1 left touching.
	var base []int
	for i, c := range cols {
		if c == NoteColumnBase {
			base = append(base, i)
		}
	}
	for k := 1; k < len(base); k++ {
		cur, prev := sorted[base[k]], sorted[base[k-1]]
		if abs(cur.step-prev.step) <= 1 {
			cols[base[k]] = NoteColumnThird
			logger.Debug("base column recheck", "pitch", cur.pitch, "with", prev.pitch, "column", NoteColumnThird)
		}
	}

	out := make([]NoteheadPosition, len(pitches))
	for i, p := range pitches {
		out[i] = NoteheadPosition{Pitch: p, Index: i, Resolved: found[i]}
	}
	for i, s := range sorted {
		out[s.index].Column = cols[i]
		out[s.index].X = baseX + float64(cols[i])*offset
	}
	return out
}
