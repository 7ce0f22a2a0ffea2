// Package pitch provides the static pitch table used by chord layout.
//
// A [Table] holds one [Entry] per representable pitch name: a letter
// (A–G), an optional quarter-tone accidental suffix, and an octave digit
// (0–8). Each entry carries three derived facts:
//
//   - Step: the diatonic distance from E4 (the bottom line of the treble
//     staff). One unit per letter name, independent of accidental.
//   - Midicent: pitch height in hundredths of a semitone. Only used for
//     coarse clef auto-detection, never for glyph placement.
//   - Accidental: one of nine categories from quarter-flat to
//     three-quarter-sharp, including natural.
//
// # Suffixes
//
// The suffix alphabet is a monotonic quarter-tone ladder:
//
//	b-   quarter-flat          (-150)
//	b    flat                  (-100)
//	b+   three-quarter-flat    (-50)
//	-    half-flat             (-50)
//	     natural               (0)
//	+    half-sharp            (+50)
//	#-   quarter-sharp         (+50)
//	#    sharp                 (+100)
//	#+   three-quarter-sharp   (+150)
//
// # Usage
//
// Build the table once and pass it to the layout resolvers:
//
//	table := pitch.NewTable()
//	e, ok := table.Lookup("Bb-4")
//	if !ok {
//	    // unknown pitch: recoverable per note
//	}
//
// The table is immutable after construction and safe for concurrent use.
package pitch
