// Package pipeline runs the chord layout → render pipeline with caching.
//
// The CLI, the HTTP server and the batch renderer all go through a
// [Runner], so every entry point validates options, computes layouts
// and caches artifacts the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(pitch.NewTable(), cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Notes:   []string{"C4", "E4", "G4", "Bb-4"},
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatMIDI},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Stages can also be run on their own with [Runner.Layout] and
// [Runner.Render].
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chord2svg/pkg/cache"
	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// DefaultPNGScale renders PNGs at 2x.
const DefaultPNGScale = 2.0

// Format constants for output formats. Each doubles as the file extension.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatMIDI = "mid"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatMIDI: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one chord run.
type Options struct {
	// Input
	Notes []string   `json:"notes"`
	Clef  pitch.Clef `json:"clef,omitempty"` // empty means auto-detect
	Name  string     `json:"name,omitempty"`

	// Layout
	Geometry layout.Geometry `json:"geometry,omitempty"`

	// Render
	Formats    []string `json:"formats,omitempty"`
	Title      string   `json:"title,omitempty"`
	Background string   `json:"background,omitempty"`
	PNGScale   float64  `json:"png_scale,omitempty"`

	// Refresh skips cache reads but still writes fresh results.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout layout.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts maps format to rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	NoteCount  int
	Unresolved int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all requested artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, mid, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "svg,mid",
// dropping blanks and duplicates. Empty input means svg.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		out = []string{FormatSVG}
	}
	return out, nil
}

// ValidateAndSetDefaults checks options and fills defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Clef != "" && !o.Clef.Valid() {
		return errors.New(errors.ErrCodeInvalidClef, "invalid clef %q (must be one of: treble, bass, alto)", string(o.Clef))
	}
	o.Geometry = o.Geometry.WithDefaults()
	if err := o.Geometry.Validate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SetRenderDefaults fills render defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Title == "" {
		o.Title = o.Name
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Clef:     string(o.Clef),
		Geometry: o.Geometry,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Only the options that affect that format's bytes are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Title, k.Background = o.Title, o.Background
	case FormatPNG:
		k.Title, k.Background, k.Scale = o.Title, o.Background, o.PNGScale
	case FormatMIDI:
		k.Title = o.Name
	}
	return k
}

func (o *Options) String() string {
	return fmt.Sprintf("%v clef=%q formats=%v", o.Notes, o.Clef, o.Formats)
}
