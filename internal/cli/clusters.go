package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/render"
)

// clustersCommand creates the clusters debug command.
func (c *CLI) clustersCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clusters NOTES...",
		Short: "Draw the accidental clusters of a chord",
		Long: `Draw the accidental clusters of a chord as a graph.

Each cluster of nearby accidentals becomes a box of members in step
order, labeled with the fanned X position and the final column. Members
that found no free column are highlighted.

The graph is written as SVG, or as Graphviz DOT when the output file
ends in .dot.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClusters(cmd.Context(), args, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "clusters.svg", "output file (.svg or .dot)")

	return cmd
}

func (c *CLI) runClusters(ctx context.Context, notes []string, path string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	g := cfg.Geometry

	clusters := layout.Clusters(c.table, notes, g.AccidentalBaseX, g.AccidentalLeftOffset, c.Logger)
	if len(clusters) == 0 {
		printInfo("No accidental clusters in %s", joinNotes(notes))
		return nil
	}

	dot := render.ClustersDOT(clusters)
	data := []byte(dot)
	if !strings.EqualFold(filepath.Ext(path), ".dot") {
		if data, err = render.RenderClustersSVG(ctx, dot); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	printSuccess("Found %d clusters", len(clusters))
	for _, cl := range clusters {
		printDetail("cluster %d: %d members, %d passes", cl.ID, len(cl.Members), cl.Passes)
	}
	printFile(path)
	return nil
}
