package layout

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

func TestBuildAutoDetectTreble(t *testing.T) {
	table := pitch.NewTable()
	l, err := Build(table, []string{"C4", "E4", "G4", "Bb-4"})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if l.Clef != pitch.Treble || !l.ClefDetected {
		t.Errorf("clef = %s detected=%v, want treble detected", l.Clef, l.ClefDetected)
	}
	if l.Width != DefaultMinWidth {
		t.Errorf("Width = %v, want %v", l.Width, DefaultMinWidth)
	}

	wantY := []float64{90, 80, 70, 60}
	for i, n := range l.Notes {
		if n.Status != Resolved {
			t.Errorf("%s status = %s, want resolved", n.Pitch, n.Status)
		}
		if n.NoteX != DefaultNoteBaseX {
			t.Errorf("%s NoteX = %v, want %v", n.Pitch, n.NoteX, DefaultNoteBaseX)
		}
		if n.AccX != DefaultAccidentalBaseX {
			t.Errorf("%s AccX = %v, want %v", n.Pitch, n.AccX, DefaultAccidentalBaseX)
		}
		if n.Y != wantY[i] {
			t.Errorf("%s Y = %v, want %v", n.Pitch, n.Y, wantY[i])
		}
	}
	if got := l.Notes[0].LedgerYs; !reflect.DeepEqual(got, []float64{90}) {
		t.Errorf("C4 LedgerYs = %v, want [90]", got)
	}
	if len(l.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", l.Warnings)
	}
}

func TestBuildUnknownPitch(t *testing.T) {
	table := pitch.NewTable()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	l, err := Build(table, []string{"C4", "Z9", "Db4"}, WithClef(pitch.Treble), WithLogger(logger))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	z := l.Notes[1]
	if z.Status != Unresolved {
		t.Errorf("Z9 status = %s, want unresolved", z.Status)
	}
	if z.NoteX != 0 || z.AccX != 0 || z.Y != 0 || z.LedgerYs != nil {
		t.Errorf("Z9 = %+v, want zero coordinates", z)
	}
	if l.Notes[0].NoteX != 90 || l.Notes[2].NoteX != 106 {
		t.Errorf("siblings NoteX = %v, %v, want 90, 106", l.Notes[0].NoteX, l.Notes[2].NoteX)
	}
	if len(l.Warnings) != 1 || !strings.Contains(l.Warnings[0], "Z9") {
		t.Errorf("Warnings = %v, want one mentioning Z9", l.Warnings)
	}
	if !strings.Contains(buf.String(), "unknown pitches") {
		t.Errorf("log output %q missing warning", buf.String())
	}
	if got := l.Resolved(); len(got) != 2 {
		t.Errorf("Resolved() returned %d notes, want 2", len(got))
	}
}

func TestBuildClefs(t *testing.T) {
	table := pitch.NewTable()
	tests := []struct {
		clef  pitch.Clef
		pitch string
		step  int
		y     float64
	}{
		{pitch.Treble, "E4", 0, 80},
		{pitch.Bass, "G2", 0, 80},
		{pitch.Bass, "A3", 8, 40},
		{pitch.Alto, "C4", 4, 60},
	}
	for _, tt := range tests {
		t.Run(string(tt.clef)+"/"+tt.pitch, func(t *testing.T) {
			l, err := Build(table, []string{tt.pitch}, WithClef(tt.clef))
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			n := l.Notes[0]
			if n.ClefStep != tt.step || n.Y != tt.y {
				t.Errorf("ClefStep, Y = %d, %v, want %d, %v", n.ClefStep, n.Y, tt.step, tt.y)
			}
			if want, _ := table.StepWithClef(tt.pitch, tt.clef); n.ClefStep != want {
				t.Errorf("ClefStep = %d, want StepWithClef() = %d", n.ClefStep, want)
			}
			if l.ClefDetected {
				t.Error("ClefDetected = true for explicit clef")
			}
		})
	}
}

func TestBuildWithGeometryStaffTop(t *testing.T) {
	spaced := DefaultGeometry()
	spaced.LineSpacing = 12

	tests := []struct {
		name  string
		g     Geometry
		wantY float64
	}{
		{"from defaults", spaced, 40 + 4*12},
		{"partial keeps zero staff top", Geometry{LineSpacing: 12}, 4 * 12},
		{"zero geometry", Geometry{}, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Build(pitch.NewTable(), []string{"E4"}, WithClef(pitch.Treble), WithGeometry(tt.g))
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if got := l.Notes[0].Y; got != tt.wantY {
				t.Errorf("E4 Y = %v, want %v", got, tt.wantY)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	table := pitch.NewTable()

	_, err := Build(table, []string{"C4"}, WithClef("tenor"))
	if !errors.Is(err, errors.ErrCodeInvalidClef) {
		t.Errorf("invalid clef error = %v, want %s", err, errors.ErrCodeInvalidClef)
	}

	_, err = Build(table, []string{"C4"}, WithGeometry(Geometry{LineSpacing: -1}))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid geometry error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestBuildWidth(t *testing.T) {
	table := pitch.NewTable()
	g := DefaultGeometry()
	g.MinWidth = 100

	l, err := Build(table, []string{"C4", "Db4"}, WithGeometry(g))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if l.Width != 146 {
		t.Errorf("Width = %v, want 146", l.Width)
	}
}

func TestBuildEmpty(t *testing.T) {
	l, err := Build(pitch.NewTable(), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if l.Clef != pitch.Treble || len(l.Notes) != 0 || l.Width != DefaultMinWidth {
		t.Errorf("Build(nil) = %+v", l)
	}
}

func TestBuildDeterministic(t *testing.T) {
	table := pitch.NewTable()
	chord := []string{"F#4", "A4", "C#5", "Eb5", "G-5", "Z9", "B3"}
	first, err := Build(table, chord)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for range 5 {
		again, _ := Build(table, chord)
		if !reflect.DeepEqual(first, again) {
			t.Fatal("Build() is not deterministic")
		}
	}
}

func TestLayoutJSON(t *testing.T) {
	l, err := Build(pitch.NewTable(), []string{"Bb4", "Z9"}, WithClef(pitch.Treble))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	for _, want := range []string{`"status":"unresolved"`, `"accidental":"flat"`, `"clef":"treble"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("JSON missing %s: %s", want, data)
		}
	}

	var back Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if back.Notes[1].Status != Unresolved {
		t.Errorf("decoded status = %s, want unresolved", back.Notes[1].Status)
	}
}
