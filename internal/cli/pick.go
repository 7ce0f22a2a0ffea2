package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pipeline"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// pickCommand creates the interactive clef picker.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		outputDir string
		formats   string
	)

	cmd := &cobra.Command{
		Use:   "pick NOTES...",
		Short: "Choose a clef interactively and render the chord",
		Long: `Choose a clef interactively and render the chord.

Every clef is listed with the number of ledger lines the chord needs
under it; the cursor starts on the detected clef. The chosen rendering
is written as chord_1.<format> in the output directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), args, outputDir, formats)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", defaultOutputDir, "output directory")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), json, mid, png, pdf (comma-separated)")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, notes []string, outputDir, formatsFlag string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	formats, err := pipeline.ParseFormats(formatsFlag)
	if err != nil {
		return err
	}
	if err := errors.ValidateOutputDir(outputDir); err != nil {
		return err
	}

	choices, err := c.clefChoices(notes, cfg.Geometry)
	if err != nil {
		return err
	}

	model := NewClefPickerModel(notes, choices, pitch.DetectClef(c.table, notes))
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	picked := final.(ClefPickerModel).Selected
	if picked == nil {
		printInfo("No clef selected")
		return nil
	}

	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := baseOptions(cfg)
	opts.Notes = notes
	opts.Clef = picked.Clef
	opts.Formats = formats
	opts.Logger = c.Logger

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	paths, err := writeResults(outputDir, []*pipeline.Result{res}, formats)
	if err != nil {
		return err
	}

	printSuccess("Rendered in %s clef", picked.Clef)
	for _, p := range paths[0] {
		printFile(p)
	}
	printStats(res.Stats.NoteCount, res.Stats.Unresolved, string(picked.Clef), res.CacheInfo.RenderHit)
	printNextStep("Batch render", fmt.Sprintf("%s render --input chords.yaml -o %s", appName, outputDir))
	return nil
}

// clefChoices lays the chord out under every clef.
func (c *CLI) clefChoices(notes []string, g layout.Geometry) ([]ClefChoice, error) {
	choices := make([]ClefChoice, 0, len(pitch.Clefs()))
	for _, clef := range pitch.Clefs() {
		l, err := layout.Build(c.table, notes,
			layout.WithClef(clef),
			layout.WithGeometry(g),
		)
		if err != nil {
			return nil, err
		}
		choices = append(choices, ClefChoice{Clef: clef, Layout: l})
	}
	return choices, nil
}
