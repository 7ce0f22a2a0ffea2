package pipeline

import (
	"fmt"

	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
	"github.com/matzehuels/chord2svg/pkg/render"
)

// RenderFromLayout generates output artifacts in the requested formats.
// The SVG is rendered once and shared by the PNG and PDF converters.
func RenderFromLayout(l layout.Layout, t *pitch.Table, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	svgData := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(l, buildSVGOptions(opts)...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgData()
		case FormatJSON:
			data, err = render.RenderJSON(l)
		case FormatMIDI:
			data, err = render.RenderMIDI(l, t, render.WithTrackName(opts.Name))
		case FormatPNG:
			data, err = render.ToPNG(svgData(), opts.PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(svgData())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, render.WithTitle(opts.Title))
	}
	return svgOpts
}
