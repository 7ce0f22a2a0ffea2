// Package pkg provides the core libraries for chord2svg staff engraving.
//
// # Overview
//
// chord2svg places the notes of a single chord on a five-line staff: it
// maps quarter-tone pitch names to staff steps, shifts colliding
// noteheads into a second column, fans crowded accidentals out to the
// left, and renders the result as SVG. The pkg directory is organized
// into three areas:
//
//  1. Domain logic: [pitch], [layout], [render]
//  2. Infrastructure: [cache], [config], [io], [errors], [observability]
//  3. Orchestration: [pipeline]
//
// # Architecture
//
// The typical data flow:
//
//	pitch names ("C4", "Eb4", "G+4")
//	         ↓
//	    [pitch] package (table lookup, clef detection)
//	         ↓
//	    [layout] package (steps, notehead columns, accidental columns)
//	         ↓
//	    [render] package (SVG, JSON, MIDI, PNG, PDF)
//
// # Quick Start
//
//	t := pitch.NewTable()
//	l, _ := layout.Build(t, []string{"C4", "E4", "G4", "Bb-4"})
//	svg := render.RenderSVG(l)
//
// With caching and several formats, go through [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(t, c, nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Notes:   []string{"C4", "E4", "G4"},
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatMIDI},
//	})
//
// # Main Packages
//
// [pitch] - The pitch table (octaves 0-8, seven letters, nine accidental
// suffixes), clefs and clef auto-detection.
//
// [layout] - Step and clef resolution, the two-pass notehead collision
// resolver and the clustered accidental resolver. [layout.Build] assembles
// a [layout.Layout] of per-note coordinates.
//
// [render] - SVG output plus JSON, Standard MIDI File, PNG/PDF conversion
// and a Graphviz view of accidental clusters.
//
// [cache] - File, Redis and MongoDB artifact caches behind one interface.
//
// [io] - Batch documents in JSON or YAML, and artifact export.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [pitch]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/pitch
// [layout]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chord2svg/pkg/pipeline
package pkg
