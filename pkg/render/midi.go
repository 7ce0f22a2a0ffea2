package render

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// MIDI export defaults.
const (
	DefaultTicksPerQuarter = 480
	DefaultVelocity        = 100
	DefaultTempo           = 120.0

	// BendRangeCents is the pitch-bend range set on every channel (±2 semitones).
	BendRangeCents = 200

	drumChannel = 9
	maxBend     = 8191
)

type MIDIOption func(*midiRenderer)

type midiRenderer struct {
	ticks    uint16
	beats    uint32
	velocity uint8
	tempo    float64
	name     string
}

// WithBeats sets how many quarter notes the chord sounds for (default 4).
func WithBeats(n uint32) MIDIOption {
	return func(r *midiRenderer) { r.beats = n }
}

// WithVelocity sets the note-on velocity.
func WithVelocity(v uint8) MIDIOption {
	return func(r *midiRenderer) { r.velocity = v }
}

// WithTempo sets the tempo in beats per minute.
func WithTempo(bpm float64) MIDIOption {
	return func(r *midiRenderer) { r.tempo = bpm }
}

// WithTrackName sets the track name meta event.
func WithTrackName(name string) MIDIOption {
	return func(r *midiRenderer) { r.name = name }
}

// RenderMIDI encodes the resolved notes of l as one simultaneous chord in
// a single-track Standard MIDI File.
//
// Notes are grouped onto channels by pitch-bend amount, so every note on a
// channel shares one bend and quarter tones survive any chord size. The
// drum channel is skipped.
func RenderMIDI(l layout.Layout, t *pitch.Table, opts ...MIDIOption) ([]byte, error) {
	r := midiRenderer{
		ticks:    DefaultTicksPerQuarter,
		beats:    4,
		velocity: DefaultVelocity,
		tempo:    DefaultTempo,
	}
	for _, opt := range opts {
		opt(&r)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(r.ticks)

	var track smf.Track
	if r.name != "" {
		track.Add(0, smf.MetaTrackSequenceName(r.name))
	}
	track.Add(0, smf.MetaTempo(r.tempo))

	type voice struct {
		channel uint8
		key     uint8
	}
	var voices []voice
	channels := make(map[int]uint8) // cents -> channel

	for _, n := range l.Resolved() {
		e, ok := t.Lookup(n.Pitch)
		if !ok {
			continue
		}
		key, cents := e.MIDINote()
		ch, ok := channels[cents]
		if !ok {
			ch = channelFor(len(channels))
			channels[cents] = ch
			// RPN 0 (pitch bend sensitivity) = 2 semitones.
			track.Add(0, midi.ControlChange(ch, 101, 0))
			track.Add(0, midi.ControlChange(ch, 100, 0))
			track.Add(0, midi.ControlChange(ch, 6, BendRangeCents/100))
			track.Add(0, midi.ControlChange(ch, 38, 0))
			track.Add(0, midi.Pitchbend(ch, bendValue(cents)))
		}
		track.Add(0, midi.NoteOn(ch, key, r.velocity))
		voices = append(voices, voice{channel: ch, key: key})
	}

	delta := uint32(r.ticks) * r.beats
	for _, v := range voices {
		track.Add(delta, midi.NoteOff(v.channel, v.key))
		delta = 0
	}
	track.Close(delta)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// channelFor maps the i-th bend group to a melodic channel, skipping drums.
func channelFor(i int) uint8 {
	ch := uint8(i % 15)
	if ch >= drumChannel {
		ch++
	}
	return ch
}

func bendValue(cents int) int16 {
	v := cents * (maxBend + 1) / BendRangeCents
	if v > maxBend {
		v = maxBend
	}
	if v < -maxBend-1 {
		v = -maxBend - 1
	}
	return int16(v)
}
