package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/chord2svg/pkg/cache"
	"github.com/matzehuels/chord2svg/pkg/errors"
	chordio "github.com/matzehuels/chord2svg/pkg/io"
	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"mid", false},
		{"midi", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "mid"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", []string{"svg"}, false},
		{"svg", []string{"svg"}, false},
		{"svg, MID ,svg", []string{"svg", "mid"}, false},
		{"json,,pdf", []string{"json", "pdf"}, false},
		{"svg,gif", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Notes: []string{"C4"}, Name: "tonic"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale = %v, want %v", opts.PNGScale, DefaultPNGScale)
	}
	if opts.Title != "tonic" {
		t.Errorf("Title = %q, want %q", opts.Title, "tonic")
	}
	if opts.Geometry != layout.DefaultGeometry() {
		t.Errorf("Geometry = %+v, want defaults", opts.Geometry)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error = %v", err)
	}
}

func TestValidateAndSetDefaults_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad clef", Options{Clef: "tenor"}, errors.ErrCodeInvalidClef},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad geometry", Options{Geometry: layout.Geometry{LineSpacing: -1}}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Title: "t", Background: "#fff", PNGScale: 3, Name: "n"}

	if k := opts.ArtifactKeyOpts(FormatJSON); k.Title != "" || k.Background != "" || k.Scale != 0 {
		t.Errorf("json key opts = %+v, want format only", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Title != "t" || k.Scale != 0 {
		t.Errorf("svg key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key opts scale = %v, want 3", k.Scale)
	}
	if k := opts.ArtifactKeyOpts(FormatMIDI); k.Title != "n" {
		t.Errorf("mid key opts title = %q, want %q", k.Title, "n")
	}
}

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(pitch.NewTable(), c, nil, nil)
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{
		Notes:   []string{"E4", "G4", "B4"},
		Formats: []string{FormatSVG, FormatJSON, FormatMIDI},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Layout.Clef != pitch.Treble {
		t.Errorf("Clef = %v, want treble", res.Layout.Clef)
	}
	if res.Stats.NoteCount != 3 || res.Stats.Unresolved != 0 {
		t.Errorf("Stats = %+v, want 3 notes, 0 unresolved", res.Stats)
	}
	for _, f := range []string{FormatSVG, FormatJSON, FormatMIDI} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("Artifacts[%q] is empty", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatMIDI], []byte("MThd")) {
		t.Errorf("mid artifact does not start with MThd")
	}
	if res.LayoutHash == "" {
		t.Error("LayoutHash is empty")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want no hits with null cache", res.CacheInfo)
	}
}

func TestExecute_UnknownPitch(t *testing.T) {
	r := newTestRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Notes: []string{"C4", "Z9"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1", res.Stats.Unresolved)
	}
	if len(res.Layout.Warnings) != 1 {
		t.Errorf("Warnings = %v, want 1 entry", res.Layout.Warnings)
	}
}

func TestExecute_InvalidOptions(t *testing.T) {
	r := newTestRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{Notes: []string{"C4"}, Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestExecute_Caching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := newTestRunner(t, fc)
	ctx := context.Background()
	opts := Options{Notes: []string{"C4", "Eb4", "G4"}, Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
	if first.LayoutHash != second.LayoutHash {
		t.Errorf("LayoutHash = %q, want %q", second.LayoutHash, first.LayoutHash)
	}

	// A new format renders everything again.
	opts.Formats = []string{FormatSVG, FormatMIDI}
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute() error = %v", err)
	}
	if !third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("third CacheInfo = %+v, want layout hit, render miss", third.CacheInfo)
	}

	opts.Refresh = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", fourth.CacheInfo)
	}
}

func TestExecute_ClefChangesLayoutKey(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := newTestRunner(t, fc)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Notes: []string{"C4"}, Clef: pitch.Treble}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Notes: []string{"C4"}, Clef: pitch.Bass})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("bass layout served from treble cache entry")
	}
	if res.Layout.Clef != pitch.Bass {
		t.Errorf("Clef = %v, want bass", res.Layout.Clef)
	}
}

// failingCache errors on every call.
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New(errors.ErrCodeInternal, "down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New(errors.ErrCodeInternal, "down")
}

func (failingCache) Delete(context.Context, string) error { return nil }
func (failingCache) Close() error                         { return nil }

func TestExecute_CacheErrorsIgnored(t *testing.T) {
	r := newTestRunner(t, failingCache{})
	res, err := r.Execute(context.Background(), Options{Notes: []string{"C4", "D4"}})
	if err != nil {
		t.Fatalf("Execute() error = %v, want cache failures ignored", err)
	}
	if len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("svg artifact missing")
	}
}

// ttlCache records the ttl of every Set by key.
type ttlCache struct {
	cache.NullCache
	ttls map[string]time.Duration
}

func (c *ttlCache) Set(_ context.Context, key string, _ []byte, ttl time.Duration) error {
	c.ttls[key] = ttl
	return nil
}

func TestExecute_TTLsAndKeyPrefix(t *testing.T) {
	rec := &ttlCache{ttls: make(map[string]time.Duration)}
	r := NewRunner(nil, rec, cache.NewScopedKeyer(nil, "staging:"), nil)
	r.LayoutTTL = time.Hour
	r.ArtifactTTL = 2 * time.Hour

	if _, err := r.Execute(context.Background(), Options{Notes: []string{"C4"}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(rec.ttls) != 2 {
		t.Fatalf("cache writes = %v, want layout and svg", rec.ttls)
	}
	for key, ttl := range rec.ttls {
		var want time.Duration
		switch {
		case strings.HasPrefix(key, "staging:layout:"):
			want = time.Hour
		case strings.HasPrefix(key, "staging:artifact:"):
			want = 2 * time.Hour
		default:
			t.Errorf("key %q lacks the staging: scope", key)
			continue
		}
		if ttl != want {
			t.Errorf("ttl(%s) = %v, want %v", key, ttl, want)
		}
	}
}

func TestRenderBatch(t *testing.T) {
	r := newTestRunner(t, nil)
	batch := chordio.Batch{Chords: []chordio.Chord{
		{Notes: []string{"E4", "G4", "B4"}},
		{Name: "low", Notes: []string{"C4"}, Clef: pitch.Bass},
	}}

	results, err := r.RenderBatch(context.Background(), batch, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("RenderBatch() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Layout.Clef != pitch.Treble || !results[0].Layout.ClefDetected {
		t.Errorf("chord 1 clef = %v (detected %v), want detected treble", results[0].Layout.Clef, results[0].Layout.ClefDetected)
	}
	if results[1].Layout.Clef != pitch.Bass || results[1].Layout.ClefDetected {
		t.Errorf("chord 2 clef = %v (detected %v), want explicit bass", results[1].Layout.Clef, results[1].Layout.ClefDetected)
	}
	if !bytes.Contains(results[1].Artifacts[FormatSVG], []byte("<title>low</title>")) {
		t.Error("chord 2 svg missing title from chord name")
	}
}

func TestRenderBatch_Canceled(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := chordio.Batch{Chords: []chordio.Chord{{Notes: []string{"C4"}}}}
	if _, err := r.RenderBatch(ctx, batch, Options{}); err == nil {
		t.Error("RenderBatch() with canceled context should fail")
	}
}

func TestRunnerLayout(t *testing.T) {
	r := newTestRunner(t, nil)
	l, err := r.Layout(context.Background(), Options{Notes: []string{"C3", "E3", "G3"}})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if l.Clef != pitch.Bass {
		t.Errorf("Clef = %v, want bass", l.Clef)
	}
	if len(l.Resolved()) != 3 {
		t.Errorf("resolved = %d, want 3", len(l.Resolved()))
	}
}
