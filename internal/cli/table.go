package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// tableCommand creates the table command for browsing pitch names.
func (c *CLI) tableCommand() *cobra.Command {
	var (
		octave int
		letter string
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print pitch table rows",
		Long: `Print pitch table rows: name, staff step, midicents and accidental.

Filter by --octave (0-8) and --letter (A-G); without filters the whole
table is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("octave") && (octave < pitch.MinOctave || octave > pitch.MaxOctave) {
				return fmt.Errorf("octave %d out of range %d-%d", octave, pitch.MinOctave, pitch.MaxOctave)
			}
			entries := filterEntries(c.table.Entries(), cmd.Flags().Changed("octave"), octave, letter)
			printEntries(entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&octave, "octave", 4, "only pitches in this octave")
	cmd.Flags().StringVar(&letter, "letter", "", "only pitches with this letter")

	return cmd
}

func filterEntries(entries []pitch.Entry, byOctave bool, octave int, letter string) []pitch.Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if byOctave && e.Octave != octave {
			continue
		}
		if letter != "" && !strings.EqualFold(e.Letter, letter) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func printEntries(entries []pitch.Entry) {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, strconv.Itoa(e.Step), strconv.Itoa(e.Midicent), e.Accidental.String()}
	}
	printTable([]string{"Name", "Step", "Midicent", "Accidental"}, rows, nil)
}
