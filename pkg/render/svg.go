package render

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/chord2svg/pkg/layout"
)

// Glyph metrics, in SVG user units.
const (
	clefX              = 2.0
	clefFontSize       = 40
	accidentalDX       = -17.0
	accidentalFontSize = 35
	noteheadRX         = 8
	noteheadRY         = 6
	ledgerHalfWidth    = 12.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	title      string
}

// WithBackground fills the whole canvas with color before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithTitle adds a <title> element, shown as a tooltip by browsers.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// RenderSVG renders l as a standalone SVG document. Unresolved notes are
// skipped, as are natural accidentals.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	g := l.Geometry.WithDefaults()
	width := l.Width
	if width <= 0 {
		width = g.MinWidth
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="xMinYMin meet" style="overflow:visible;">`+"\n",
		num(width), num(g.Height))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%s, %s)">`+"\n", num(g.OriginX), num(g.OriginY))
	renderStaff(&buf, g, width)
	renderClef(&buf, l, g)
	for _, n := range l.Notes {
		if n.Status != layout.Resolved {
			continue
		}
		renderNote(&buf, n)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStaff(buf *bytes.Buffer, g layout.Geometry, width float64) {
	for _, y := range g.StaffLineYs() {
		fmt.Fprintf(buf, `    <line x1="0" x2="%s" y1="%s" y2="%s" stroke="black" stroke-width="1"/>`+"\n",
			num(width), num(y), num(y))
	}
}

func renderClef(buf *bytes.Buffer, l layout.Layout, g layout.Geometry) {
	glyph := ClefGlyph(l.Clef)
	if glyph == "" {
		return
	}
	y := g.StaffTopY + g.LineSpacing*clefLine[l.Clef]
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="%d" font-family="%s" fill="#222" stroke="none">%s</text>`+"\n",
		num(clefX), num(y), clefFontSize, fontFamily, glyph)
}

func renderNote(buf *bytes.Buffer, n layout.Note) {
	if !n.Accidental.IsNatural() {
		fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="%d" text-anchor="middle" font-family="%s" fill="#222" stroke="none">%s</text>`+"\n",
			num(n.AccX+accidentalDX), num(n.Y), accidentalFontSize, fontFamily, AccidentalGlyph(n.Accidental))
	}
	fmt.Fprintf(buf, `    <ellipse cx="%s" cy="%s" rx="%d" ry="%d" fill="#111" stroke="none"/>`+"\n",
		num(n.NoteX), num(n.Y), noteheadRX, noteheadRY)
	for _, y := range n.LedgerYs {
		fmt.Fprintf(buf, `    <line x1="%s" x2="%s" y1="%s" y2="%s" stroke="black" stroke-width="1"/>`+"\n",
			num(n.NoteX-ledgerHalfWidth), num(n.NoteX+ledgerHalfWidth), num(y), num(y))
	}
}

// num formats v in its shortest exact form: 90, 72.5.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
