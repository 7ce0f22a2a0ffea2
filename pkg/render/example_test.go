package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
	"github.com/matzehuels/chord2svg/pkg/render"
)

func ExampleRenderSVG() {
	l, _ := layout.Build(pitch.NewTable(), []string{"C4", "Eb4", "G4"}, layout.WithClef(pitch.Treble))
	svg := string(render.RenderSVG(l))

	fmt.Println(strings.Count(svg, "<ellipse"), "noteheads")
	fmt.Println(strings.Count(svg, render.AccidentalGlyph(pitch.Flat)), "flat")
	// Output:
	// 3 noteheads
	// 1 flat
}
