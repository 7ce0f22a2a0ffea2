package layout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// Status reports whether a note's pitch was found in the table.
type Status int

const (
	Resolved Status = iota
	Unresolved
)

func (s Status) String() string {
	if s == Unresolved {
		return "unresolved"
	}
	return "resolved"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "resolved":
		*s = Resolved
	case "unresolved":
		*s = Unresolved
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// Note is the computed placement of one input pitch.
// Unresolved notes carry zero coordinates.
type Note struct {
	Pitch      string           `json:"pitch"`
	Index      int              `json:"index"`
	Status     Status           `json:"status"`
	Step       int              `json:"step"`
	ClefStep   int              `json:"clef_step"`
	Accidental pitch.Accidental `json:"accidental"`
	NoteColumn int              `json:"note_column"`
	AccColumn  int              `json:"acc_column"`
	NoteX      float64          `json:"note_x"`
	AccX       float64          `json:"acc_x"`
	Y          float64          `json:"y"`
	LedgerYs   []float64        `json:"ledger_ys,omitempty"`
}

// Layout is a chord laid out on one staff.
type Layout struct {
	Clef         pitch.Clef `json:"clef"`
	ClefDetected bool       `json:"clef_detected"`
	Notes        []Note     `json:"notes"`
	Warnings     []string   `json:"warnings,omitempty"`
	Geometry     Geometry   `json:"geometry"`
	Width        float64    `json:"width"`
}

// Resolved returns the notes whose pitch was found, in input order.
func (l Layout) Resolved() []Note {
	out := make([]Note, 0, len(l.Notes))
	for _, n := range l.Notes {
		if n.Status == Resolved {
			out = append(out, n)
		}
	}
	return out
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	clef     pitch.Clef
	geometry Geometry
	logger   *log.Logger
}

// WithClef fixes the clef. Without it, Build detects one from the pitches.
func WithClef(c pitch.Clef) Option {
	return func(b *builder) { b.clef = c }
}

// WithGeometry overrides the default geometry. Zero fields keep their
// defaults, except StaffTopY, where 0 is a valid position; it is only
// defaulted when g is entirely zero. To change a few fields, start from
// [DefaultGeometry].
func WithGeometry(g Geometry) Option {
	return func(b *builder) { b.geometry = g.WithDefaults() }
}

// WithLogger sets the logger for warnings and collision traces.
func WithLogger(l *log.Logger) Option {
	return func(b *builder) { b.logger = l }
}

// Build lays out pitches. Unknown pitch names never fail the build; they
// become [Unresolved] notes and a warning. An error is returned only for
// an invalid clef or geometry.
func Build(t *pitch.Table, pitches []string, opts ...Option) (Layout, error) {
	b := builder{geometry: DefaultGeometry()}
	for _, opt := range opts {
		opt(&b)
	}
	logger := orDiscard(b.logger)

	if err := b.geometry.Validate(); err != nil {
		return Layout{}, err
	}

	l := Layout{Clef: b.clef, Geometry: b.geometry}
	if l.Clef == "" {
		l.Clef = pitch.DetectClef(t, pitches)
		l.ClefDetected = true
		logger.Debug("clef detected", "clef", l.Clef)
	} else if !l.Clef.Valid() {
		return Layout{}, errors.New(errors.ErrCodeInvalidClef, "invalid clef %q", string(l.Clef))
	}

	g := l.Geometry
	heads := ResolveNoteheads(t, pitches, g.NoteBaseX, g.NoteCollisionOffset, logger)
	accs := ResolveAccidentals(t, pitches, g.AccidentalBaseX, g.AccidentalLeftOffset, logger)

	l.Notes = make([]Note, len(pitches))
	var unknown []string
	for i, p := range pitches {
		n := Note{Pitch: p, Index: i}
		e, ok := t.Lookup(p)
		if !ok {
			n.Status = Unresolved
			n.Accidental = pitch.Natural
			unknown = append(unknown, p)
			l.Notes[i] = n
			continue
		}
		n.Step = e.Step
		n.ClefStep, _ = t.StepWithClef(p, l.Clef)
		n.Accidental = e.Accidental
		n.NoteColumn = heads[i].Column
		n.NoteX = heads[i].X
		n.AccColumn = accs[i].Column
		n.AccX = accs[i].X
		n.Y = g.StepToY(n.ClefStep)
		n.LedgerYs = g.LedgerYs(n.ClefStep)
		l.Notes[i] = n
	}

	if len(unknown) > 0 {
		for _, p := range unknown {
			l.Warnings = append(l.Warnings, fmt.Sprintf("unknown pitch %q skipped", p))
		}
		logger.Warn("unknown pitches skipped", "pitches", unknown)
	}

	l.Width = width(l)
	return l, nil
}

func width(l Layout) float64 {
	w := l.Geometry.MinWidth
	for _, n := range l.Notes {
		if n.Status != Resolved {
			continue
		}
		if x := n.NoteX + l.Geometry.RightMargin; x > w {
			w = x
		}
	}
	return w
}
