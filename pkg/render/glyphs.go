package render

import "github.com/matzehuels/chord2svg/pkg/pitch"

// Unicode musical symbols. Rendering them needs a font with the Musical
// Symbols block; Bravura is listed first in the font stack.
const fontFamily = "Bravura, serif, Arial Unicode MS, serif"

var clefGlyphs = map[pitch.Clef]string{
	pitch.Treble: "\U0001D11E",
	pitch.Bass:   "\U0001D122",
	pitch.Alto:   "\U0001D121",
}

// clefLine is the staff line index (from the top) the clef glyph's
// baseline sits on.
var clefLine = map[pitch.Clef]float64{
	pitch.Treble: 3,
	pitch.Bass:   1,
	pitch.Alto:   2,
}

var accidentalGlyphs = [...]string{
	pitch.QuarterFlat:       "\U0001D12D",
	pitch.Flat:              "♭",
	pitch.ThreeQuarterFlat:  "\U0001D12C",
	pitch.HalfFlat:          "\U0001D12F",
	pitch.Natural:           "♮",
	pitch.HalfSharp:         "\U0001D12E",
	pitch.QuarterSharp:      "\U0001D131",
	pitch.Sharp:             "♯",
	pitch.ThreeQuarterSharp: "\U0001D130",
}

// ClefGlyph returns the Unicode glyph for c.
func ClefGlyph(c pitch.Clef) string { return clefGlyphs[c] }

// AccidentalGlyph returns the Unicode glyph for a.
func AccidentalGlyph(a pitch.Accidental) string {
	if int(a) < 0 || int(a) >= len(accidentalGlyphs) {
		return ""
	}
	return accidentalGlyphs[a]
}
