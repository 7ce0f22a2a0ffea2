package layout

import (
	"github.com/matzehuels/chord2svg/pkg/errors"
)

// Default geometry values, in SVG user units.
const (
	DefaultStaffTopY            = 40.0
	DefaultLineSpacing          = 10.0
	DefaultNoteBaseX            = 90.0
	DefaultNoteCollisionOffset  = 16.0
	DefaultAccidentalBaseX      = 90.0
	DefaultAccidentalLeftOffset = 14.0
	DefaultMinWidth             = 220.0
	DefaultRightMargin          = 40.0
	DefaultHeight               = 200.0
	DefaultOriginX              = 40.0
	DefaultOriginY              = 90.0
)

// Staff body bounds in steps: bottom line and top line.
const (
	StaffBottomStep = 0
	StaffTopStep    = 8
)

// Geometry holds the fixed layout constants. Zero fields are replaced
// by defaults in [Geometry.WithDefaults].
type Geometry struct {
	StaffTopY            float64 `toml:"staff_top_y" json:"staff_top_y"`
	LineSpacing          float64 `toml:"line_spacing" json:"line_spacing"`
	NoteBaseX            float64 `toml:"note_base_x" json:"note_base_x"`
	NoteCollisionOffset  float64 `toml:"note_collision_offset" json:"note_collision_offset"`
	AccidentalBaseX      float64 `toml:"accidental_base_x" json:"accidental_base_x"`
	AccidentalLeftOffset float64 `toml:"accidental_left_offset" json:"accidental_left_offset"`
	MinWidth             float64 `toml:"min_width" json:"min_width"`
	RightMargin          float64 `toml:"right_margin" json:"right_margin"`
	Height               float64 `toml:"height" json:"height"`
	OriginX              float64 `toml:"origin_x" json:"origin_x"`
	OriginY              float64 `toml:"origin_y" json:"origin_y"`
}

// DefaultGeometry returns the standard geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		StaffTopY:            DefaultStaffTopY,
		LineSpacing:          DefaultLineSpacing,
		NoteBaseX:            DefaultNoteBaseX,
		NoteCollisionOffset:  DefaultNoteCollisionOffset,
		AccidentalBaseX:      DefaultAccidentalBaseX,
		AccidentalLeftOffset: DefaultAccidentalLeftOffset,
		MinWidth:             DefaultMinWidth,
		RightMargin:          DefaultRightMargin,
		Height:               DefaultHeight,
		OriginX:              DefaultOriginX,
		OriginY:              DefaultOriginY,
	}
}

// WithDefaults returns g with every zero field replaced by its default.
// StaffTopY is only defaulted when g is entirely zero.
func (g Geometry) WithDefaults() Geometry {
	d := DefaultGeometry()
	if g == (Geometry{}) {
		return d
	}
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&g.LineSpacing, d.LineSpacing)
	fill(&g.NoteBaseX, d.NoteBaseX)
	fill(&g.NoteCollisionOffset, d.NoteCollisionOffset)
	fill(&g.AccidentalBaseX, d.AccidentalBaseX)
	fill(&g.AccidentalLeftOffset, d.AccidentalLeftOffset)
	fill(&g.MinWidth, d.MinWidth)
	fill(&g.RightMargin, d.RightMargin)
	fill(&g.Height, d.Height)
	fill(&g.OriginX, d.OriginX)
	fill(&g.OriginY, d.OriginY)
	return g
}

// Validate checks that spacings and offsets are positive.
func (g Geometry) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"line_spacing", g.LineSpacing},
		{"note_collision_offset", g.NoteCollisionOffset},
		{"accidental_left_offset", g.AccidentalLeftOffset},
		{"min_width", g.MinWidth},
		{"height", g.Height},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %v", c.name, c.v)
		}
	}
	if g.RightMargin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "right_margin cannot be negative, got %v", g.RightMargin)
	}
	return nil
}

// StepToY maps a clef-adjusted step to a vertical coordinate.
// Step 0 is the bottom staff line; each step is half a line spacing.
func (g Geometry) StepToY(step int) float64 {
	return g.StaffTopY + g.LineSpacing*(4-float64(step)/2)
}

// StaffLineYs returns the Y coordinate of each of the five staff lines, top first.
func (g Geometry) StaffLineYs() []float64 {
	ys := make([]float64, 5)
	for i := range ys {
		ys[i] = g.StaffTopY + float64(i)*g.LineSpacing
	}
	return ys
}

// LedgerSteps returns the steps that need a ledger line for a note at step.
// Only even steps beyond the staff body land on a line position.
func LedgerSteps(step int) []int {
	var steps []int
	switch {
	case step < StaffBottomStep:
		for s := step; s < StaffBottomStep; s++ {
			if s%2 == 0 {
				steps = append(steps, s)
			}
		}
	case step > StaffTopStep:
		for s := StaffTopStep + 1; s <= step; s++ {
			if s%2 == 0 {
				steps = append(steps, s)
			}
		}
	}
	return steps
}

// LedgerYs returns the Y coordinates of the ledger lines for step.
func (g Geometry) LedgerYs(step int) []float64 {
	steps := LedgerSteps(step)
	if len(steps) == 0 {
		return nil
	}
	ys := make([]float64, len(steps))
	for i, s := range steps {
		ys[i] = g.StepToY(s)
	}
	return ys
}
