package pitch

import "fmt"

// Accidental is the symbolic accidental category of a pitch.
type Accidental int

// Accidental categories in ascending quarter-tone order.
const (
	QuarterFlat Accidental = iota
	Flat
	ThreeQuarterFlat
	HalfFlat
	Natural
	HalfSharp
	QuarterSharp
	Sharp
	ThreeQuarterSharp
)

type accidentalInfo struct {
	name   string
	suffix string
	offset int // midicents
}

var accidentals = [...]accidentalInfo{
	QuarterFlat:       {"quarter-flat", "b-", -150},
	Flat:              {"flat", "b", -100},
	ThreeQuarterFlat:  {"three-quarter-flat", "b+", -50},
	HalfFlat:          {"half-flat", "-", -50},
	Natural:           {"natural", "", 0},
	HalfSharp:         {"half-sharp", "+", 50},
	QuarterSharp:      {"quarter-sharp", "#-", 50},
	Sharp:             {"sharp", "#", 100},
	ThreeQuarterSharp: {"three-quarter-sharp", "#+", 150},
}

// Accidentals returns all categories in ascending order.
func Accidentals() []Accidental {
	out := make([]Accidental, len(accidentals))
	for i := range accidentals {
		out[i] = Accidental(i)
	}
	return out
}

// String returns the hyphenated category name, e.g. "three-quarter-flat".
func (a Accidental) String() string {
	if !a.valid() {
		return "unknown"
	}
	return accidentals[a].name
}

// Suffix returns the pitch-name suffix for the category ("" for natural).
func (a Accidental) Suffix() string {
	if !a.valid() {
		return ""
	}
	return accidentals[a].suffix
}

// Offset returns the midicent offset applied to the natural pitch.
func (a Accidental) Offset() int {
	if !a.valid() {
		return 0
	}
	return accidentals[a].offset
}

// IsNatural reports whether a is the natural category.
// Naturals never produce a glyph and never take part in accidental clustering.
func (a Accidental) IsNatural() bool { return a == Natural }

// MarshalText encodes the category by name.
func (a Accidental) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a category name produced by MarshalText.
func (a *Accidental) UnmarshalText(text []byte) error {
	for i, info := range accidentals {
		if info.name == string(text) {
			*a = Accidental(i)
			return nil
		}
	}
	return fmt.Errorf("unknown accidental %q", text)
}

func (a Accidental) valid() bool {
	return a >= 0 && int(a) < len(accidentals)
}
