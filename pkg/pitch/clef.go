package pitch

import (
	"strings"

	"github.com/matzehuels/chord2svg/pkg/errors"
)

// Clef selects which physical staff lines the steps land on.
type Clef string

// Supported clefs.
const (
	Treble Clef = "treble"
	Bass   Clef = "bass"
	Alto   Clef = "alto"
)

// Clef auto-detection thresholds on average pitch height (semitones).
const (
	BassThreshold = 52.00
	AltoThreshold = 65.00

	// unknownHeight stands in for names missing from the table.
	unknownHeight = 60.00
)

var clefOffsets = map[Clef]int{
	Treble: 0,
	Bass:   12,
	Alto:   6,
}

// Clefs returns the supported clefs in display order.
func Clefs() []Clef { return []Clef{Treble, Bass, Alto} }

// ParseClef converts a user-supplied name into a Clef.
func ParseClef(s string) (Clef, error) {
	c := Clef(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := clefOffsets[c]; !ok {
		return "", errors.New(errors.ErrCodeInvalidClef, "unknown clef %q (must be one of: treble, bass, alto)", s)
	}
	return c, nil
}

// Offset returns the step shift that repositions a chord for c.
func (c Clef) Offset() int { return clefOffsets[c] }

// Valid reports whether c is a supported clef.
func (c Clef) Valid() bool {
	_, ok := clefOffsets[c]
	return ok
}

// StepWithClef returns the clef-adjusted step for name.
func (t *Table) StepWithClef(name string, c Clef) (int, bool) {
	step, ok := t.Step(name)
	if !ok {
		return 0, false
	}
	return step + c.Offset(), true
}

// DetectClef picks a clef from the average pitch height of names.
// Names missing from the table count as middle C. An empty chord is treble.
func DetectClef(t *Table, names []string) Clef {
	if len(names) == 0 {
		return Treble
	}
	var sum float64
	for _, n := range names {
		if e, ok := t.Lookup(n); ok {
			sum += e.HeightValue()
		} else {
			sum += unknownHeight
		}
	}
	avg := sum / float64(len(names))
	switch {
	case avg < BassThreshold:
		return Bass
	case avg < AltoThreshold:
		return Alto
	default:
		return Treble
	}
}
