package pitch_test

import (
	"fmt"

	"github.com/matzehuels/chord2svg/pkg/pitch"
)

func ExampleTable_Lookup() {
	table := pitch.NewTable()

	e, ok := table.Lookup("Bb-4")
	fmt.Println(ok, e.Step, e.Accidental, e.HeightValue())

	_, ok = table.Lookup("Z9")
	fmt.Println(ok)
	// Output:
	// true 4 quarter-flat 69.5
	// false
}

func ExampleDetectClef() {
	table := pitch.NewTable()
	fmt.Println(pitch.DetectClef(table, []string{"C4", "E4", "G4", "Bb-4"}))
	fmt.Println(pitch.DetectClef(table, []string{"C2", "G2"}))
	// Output:
	// treble
	// bass
}
