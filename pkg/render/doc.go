// Package render turns a computed [layout.Layout] into output formats.
//
// # SVG
//
// [RenderSVG] draws the staff, clef, accidentals, noteheads and ledger
// lines. Output is byte-for-byte deterministic for a given layout and
// options, so it can be cached and diffed.
//
//	l, _ := layout.Build(table, []string{"C4", "E4", "G4"})
//	svg := render.RenderSVG(l, render.WithTitle("C major"))
//
// # Other Formats
//
//   - [RenderJSON]: the layout as indented JSON
//   - [RenderMIDI]: a one-chord Standard MIDI File
//   - [ToPDF], [ToPNG]: SVG conversion via the external rsvg-convert tool
//
// # Cluster Graphs
//
// [ClustersDOT] describes accidental clusters as a Graphviz digraph and
// [RenderClustersSVG] renders it, for inspecting how the accidental
// resolver grouped and fanned a chord.
//
// [layout.Layout]: github.com/matzehuels/chord2svg/pkg/layout.Layout
package render
