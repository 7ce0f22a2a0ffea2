// Package io reads chord batches and writes rendered artifacts.
//
// # Batch Format
//
// A batch is an object with a "chords" array. Each chord has a "notes"
// array of pitch names and an optional "clef":
//
//	{
//	  "chords": [
//	    {"notes": ["C4", "E4", "G4", "Bb-4"]},
//	    {"notes": ["G2", "B2", "D3"], "clef": "bass", "name": "G major"}
//	  ]
//	}
//
// The same shape may be written as YAML; files ending in .yaml or .yml
// are decoded with gopkg.in/yaml.v3 and checked by the same rules.
//
// # Validation
//
// [ReadBatch] checks the whole document before returning anything, so a
// batch either decodes completely or not at all. Shape errors (missing
// or non-array "chords", a chord without "notes", a non-string note)
// carry errors.ErrCodeInvalidInput; an unknown clef name carries
// errors.ErrCodeInvalidClef. Unknown pitch names are not checked here:
// the layout reports them per note.
//
// A missing clef, an empty string, or "auto" selects clef detection.
//
// # Output
//
// [ArtifactName] gives the conventional file name for the n-th chord
// (chord_1.svg, chord_2.svg, ...) and [ExportFile] writes it.
package io
