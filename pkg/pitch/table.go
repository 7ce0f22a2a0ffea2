package pitch

import "fmt"

// Octave range covered by the table.
const (
	MinOctave = 0
	MaxOctave = 8
)

// letters in diatonic order, with their semitone offset from C.
var letters = [...]struct {
	name     byte
	semitone int
}{
	{'C', 0}, {'D', 2}, {'E', 4}, {'F', 5}, {'G', 7}, {'A', 9}, {'B', 11},
}

// referencePosition is the diatonic position of E4, which maps to step 0.
const referencePosition = 2 + 7*4

// Entry describes one representable pitch name.
type Entry struct {
	Name       string     `json:"name"`
	Letter     string     `json:"letter"`
	Octave     int        `json:"octave"`
	Midicent   int        `json:"midicent"`
	Step       int        `json:"step"`
	Accidental Accidental `json:"accidental"`
}

// HeightValue returns the pitch height in semitones (C4 = 60.00).
// Used only for clef auto-detection.
func (e Entry) HeightValue() float64 {
	return float64(e.Midicent) / 100
}

// MIDINote returns the nearest MIDI key and the remaining deviation in cents.
// Ties round toward the lower key so quarter tones bend upward.
func (e Entry) MIDINote() (key uint8, cents int) {
	k := e.Midicent / 100
	rem := e.Midicent % 100
	if rem < 0 {
		k--
		rem += 100
	}
	if rem > 50 {
		k++
		rem -= 100
	}
	return uint8(k), rem
}

// Table is an immutable lookup from pitch name to [Entry].
type Table struct {
	entries []Entry
	byName  map[string]int
}

// NewTable generates the full pitch table: every octave 0–8, every
// letter, every accidental suffix.
func NewTable() *Table {
	n := (MaxOctave - MinOctave + 1) * len(letters) * len(accidentals)
	t := &Table{
		entries: make([]Entry, 0, n),
		byName:  make(map[string]int, n),
	}

	for octave := MinOctave; octave <= MaxOctave; octave++ {
		for idx, l := range letters {
			base := l.semitone + 12*(octave+1)
			step := idx + 7*octave - referencePosition
			for _, acc := range Accidentals() {
				e := Entry{
					Name:       fmt.Sprintf("%c%s%d", l.name, acc.Suffix(), octave),
					Letter:     string(l.name),
					Octave:     octave,
					Midicent:   base*100 + acc.Offset(),
					Step:       step,
					Accidental: acc,
				}
				t.byName[e.Name] = len(t.entries)
				t.entries = append(t.entries, e)
			}
		}
	}
	return t
}

// Lookup returns the entry for name. ok is false for malformed or
// out-of-range names.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Step returns the diatonic step for name.
func (t *Table) Step(name string) (int, bool) {
	e, ok := t.Lookup(name)
	return e.Step, ok
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of all entries in generation order
// (octave, letter, accidental).
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
