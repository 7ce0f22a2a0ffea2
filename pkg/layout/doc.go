// Package layout computes glyph coordinates for a chord on a five-line staff.
//
// # Overview
//
// Given pitch names and a clef, [Build] derives for every note:
//
//   - Y: from the clef-adjusted step via [Geometry.StepToY]
//   - LedgerYs: one per even step beyond the staff body ([LedgerSteps])
//   - NoteX: from the notehead collision resolver ([ResolveNoteheads])
//   - AccX: from the accidental collision resolver ([ResolveAccidentals])
//
// The two resolvers run independently on the same input. Both sort by
// step (stable, so equal steps keep input order) and report results in
// input order.
//
// # Noteheads
//
// Noteheads use three columns to the right of the base X. Pass 1
// alternates columns for notes within a second of their predecessor;
// pass 2 moves any remaining close pair in the base column to the third
// column.
//
// # Accidentals
//
// Accidentals use up to [BackfillColumns] columns to the left of the
// base X. Non-natural accidentals are grouped into clusters whose
// consecutive members are less than [ClusterGap] steps apart. Each
// cluster is fanned iteratively (at most [MaxFanningPasses] passes), then
// compacted by a backfill pass that gives each member the rightmost
// column not used by an earlier member within [BackfillWindow] steps.
//
// # Unknown Pitches
//
// Names missing from the pitch table are never fatal. They are reported
// as [Unresolved] notes with zero coordinates and a warning, and sibling
// notes lay out as if the unknown name were absent.
package layout
