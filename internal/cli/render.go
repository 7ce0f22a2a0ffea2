package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chord2svg/pkg/errors"
	chordio "github.com/matzehuels/chord2svg/pkg/io"
	"github.com/matzehuels/chord2svg/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input      string // batch file (.json, .yaml, .yml)
	outputDir  string // directory for chord_N.<format> files
	formats    string // comma-separated output formats
	clef       string // clef for chords that do not name one
	background string // SVG background color
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command for batch rendering.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render --input FILE",
		Short: "Render every chord of a batch file",
		Long: `Render every chord of a batch file.

The input is a JSON or YAML document of the form

  {"chords": [{"notes": ["C4", "E4", "G4"], "clef": "treble"}]}

Each chord is written as chord_N.<format> (1-based) in the output
directory. Chords without a clef get one from --clef, or have it
detected from their average pitch. Unknown pitch names are skipped with
a warning; a malformed document aborts before anything is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "batch file (.json, .yaml, .yml)")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", defaultOutputDir, "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, mid, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.clef, "clef", "", "clef for chords without one: treble, bass, alto, auto (default)")
	cmd.Flags().StringVar(&opts.background, "background", "", "SVG background color (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// runRender imports and validates the batch, renders every chord in
// memory, and only then writes files, so a failure leaves no partial output.
func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	clef, err := parseClef(opts.clef)
	if err != nil {
		return err
	}

	batch, err := chordio.ImportBatch(opts.input)
	if err != nil {
		return err
	}
	if err := errors.ValidateOutputDir(opts.outputDir); err != nil {
		return err
	}
	c.Logger.Infof("Loaded %d chords from %s", len(batch.Chords), opts.input)

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	base := baseOptions(cfg)
	base.Formats = formats
	base.Clef = clef
	base.Refresh = opts.refresh
	base.Logger = c.Logger
	if opts.background != "" {
		base.Background = opts.background
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %d chords...", len(batch.Chords)))
	spinner.Start()

	results, err := runner.RenderBatch(ctx, batch, base)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeResults(opts.outputDir, results, formats)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d chords", len(results)))

	printSuccess("Rendered %d chords", len(results))
	for i, res := range results {
		for _, p := range paths[i] {
			printFile(p)
		}
		printStats(res.Stats.NoteCount, res.Stats.Unresolved, string(res.Layout.Clef), res.CacheInfo.RenderHit)
		for _, w := range res.Layout.Warnings {
			printWarning("chord %d: %s", i+1, w)
		}
	}
	return nil
}

// writeResults writes each result's artifacts in format order and
// returns the written paths per chord.
func writeResults(dir string, results []*pipeline.Result, formats []string) ([][]string, error) {
	paths := make([][]string, len(results))
	for i, res := range results {
		for _, f := range formats {
			data, ok := res.Artifacts[f]
			if !ok {
				continue
			}
			p, err := chordio.ExportFile(dir, chordio.ArtifactName(i, f), data)
			if err != nil {
				return nil, err
			}
			paths[i] = append(paths[i], p)
		}
	}
	return paths, nil
}
