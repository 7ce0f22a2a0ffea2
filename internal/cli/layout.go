package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chord2svg/pkg/errors"
	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/render"
)

// layoutCommand creates the layout command for inspecting computed coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		clef    string
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout NOTES...",
		Short: "Print the computed coordinates of a chord",
		Long: `Print the computed coordinates of a chord.

Each pitch is shown with its staff step, accidental, notehead and
accidental columns, and final coordinates. Unknown pitches are listed
as unresolved.

Example:
  chord2svg layout C4 Eb4 G4 Bb-4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, clef, asJSON, noCache)
		},
	}

	cmd.Flags().StringVar(&clef, "clef", "", "clef: treble, bass, alto, auto (default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, notes []string, clefFlag string, asJSON, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	clef, err := parseClef(clefFlag)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := baseOptions(cfg)
	opts.Notes = notes
	opts.Clef = clef
	opts.Logger = c.Logger

	l, cached, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := render.RenderJSON(l)
		if err != nil {
			return err
		}
		_, err = output.Write(data)
		return err
	}

	for _, n := range notes {
		if err := errors.ValidatePitchName(n); err != nil {
			if errors.IsFatal(err) {
				return err
			}
			printWarning("%s", errors.UserMessage(err))
		}
	}
	printLayout(l)
	printStats(len(l.Notes), len(l.Notes)-len(l.Resolved()), clefLabel(l), cached)
	return nil
}

// printLayout prints one table row per note in input order.
func printLayout(l layout.Layout) {
	headers := []string{"#", "Pitch", "Status", "Step", "Acc", "Col", "Note X", "Acc Col", "Acc X", "Y", "Ledgers"}
	rows := make([][]string, 0, len(l.Notes))
	for _, n := range l.Notes {
		if n.Status == layout.Unresolved {
			rows = append(rows, []string{strconv.Itoa(n.Index + 1), n.Pitch, n.Status.String(), "", "", "", "", "", "", "", ""})
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(n.Index + 1),
			n.Pitch,
			n.Status.String(),
			strconv.Itoa(n.ClefStep),
			n.Accidental.String(),
			strconv.Itoa(n.NoteColumn),
			formatCoord(n.NoteX),
			strconv.Itoa(n.AccColumn),
			formatCoord(n.AccX),
			formatCoord(n.Y),
			formatCoords(n.LedgerYs),
		})
	}
	printTable(headers, rows, func(row int) bool {
		return l.Notes[row].Status == layout.Unresolved
	})
}

func clefLabel(l layout.Layout) string {
	if l.ClefDetected {
		return string(l.Clef) + " (detected)"
	}
	return string(l.Clef)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCoords(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatCoord(v)
	}
	return strings.Join(parts, " ")
}
