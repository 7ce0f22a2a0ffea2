package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

func TestClustersDOT(t *testing.T) {
	clusters := layout.Clusters(pitch.NewTable(), []string{"Eb4", "Gb4", "Bb5"}, 90, 14, nil)
	dot := ClustersDOT(clusters)

	for _, want := range []string{
		"digraph clusters",
		"subgraph cluster_0",
		"subgraph cluster_1",
		`"0:0" -> "0:1"`,
		`Gb4\nstep 2\nfan x 76\ncolumn 1`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ClustersDOT() missing %q", want)
		}
	}
	if strings.Contains(dot, "mistyrose") {
		t.Error("ClustersDOT() marked an overflow without one")
	}
}

func TestClustersDOT_Overflow(t *testing.T) {
	chord := []string{"Eb4", "F#4", "Gb4", "Ab4", "Bb4", "C#5"}
	dot := ClustersDOT(layout.Clusters(pitch.NewTable(), chord, 90, 14, nil))
	if strings.Count(dot, "mistyrose") != 1 {
		t.Errorf("ClustersDOT() overflow marks = %d, want 1", strings.Count(dot, "mistyrose"))
	}
}

func TestRenderClustersSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	clusters := layout.Clusters(pitch.NewTable(), []string{"Eb4", "Gb4"}, 90, 14, nil)
	svg, err := RenderClustersSVG(context.Background(), ClustersDOT(clusters))
	if err != nil {
		t.Fatalf("RenderClustersSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderClustersSVG() output is not SVG")
	}
}

func TestRenderClustersSVG_InvalidDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	if _, err := RenderClustersSVG(context.Background(), "not a graph {"); err == nil {
		t.Error("RenderClustersSVG() expected error for invalid DOT")
	}
}
