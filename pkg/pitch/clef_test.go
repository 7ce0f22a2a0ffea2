package pitch

import (
	"testing"

	"github.com/matzehuels/chord2svg/pkg/errors"
)

func TestParseClef(t *testing.T) {
	tests := []struct {
		input   string
		want    Clef
		wantErr bool
	}{
		{"treble", Treble, false},
		{"bass", Bass, false},
		{"alto", Alto, false},
		{" Treble ", Treble, false},
		{"tenor", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseClef(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidClef) {
			t.Errorf("ParseClef(%q) wrong error code: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseClef(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClefOffset(t *testing.T) {
	tests := []struct {
		clef Clef
		want int
	}{
		{Treble, 0},
		{Bass, 12},
		{Alto, 6},
	}
	for _, tt := range tests {
		if got := tt.clef.Offset(); got != tt.want {
			t.Errorf("%s.Offset() = %d, want %d", tt.clef, got, tt.want)
		}
	}
}

func TestStepWithClef(t *testing.T) {
	table := NewTable()

	step, ok := table.StepWithClef("G2", Bass)
	if !ok {
		t.Fatal("StepWithClef(G2) not found")
	}
	// G2 sits on the bottom line of the bass staff.
	if step != 0 {
		t.Errorf("StepWithClef(G2, bass) = %d, want 0", step)
	}

	step, _ = table.StepWithClef("F3", Alto)
	if step != 0 {
		t.Errorf("StepWithClef(F3, alto) = %d, want 0", step)
	}

	if _, ok := table.StepWithClef("Z9", Treble); ok {
		t.Error("StepWithClef(Z9) should fail")
	}
}

func TestDetectClef(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name  string
		notes []string
		want  Clef
	}{
		{"triad with quarter flat", []string{"C4", "E4", "G4", "Bb-4"}, Treble},
		{"low", []string{"C2", "G2", "E3"}, Bass},
		{"middle", []string{"C4", "E4"}, Alto},
		{"boundary 52 is alto", []string{"E3"}, Alto},
		{"boundary 65 is treble", []string{"F4"}, Treble},
		{"just below 65", []string{"E+4"}, Alto},
		{"empty", nil, Treble},
		{"unknown counts as middle c", []string{"Z9"}, Alto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectClef(table, tt.notes); got != tt.want {
				t.Errorf("DetectClef(%v) = %s, want %s", tt.notes, got, tt.want)
			}
		})
	}
}
