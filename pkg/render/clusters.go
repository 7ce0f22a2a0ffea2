package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chord2svg/pkg/layout"
)

// ClustersDOT converts accidental clusters to Graphviz DOT. Each cluster
// becomes a subgraph with one node per member, chained in step order;
// the node label shows the fanned X and the final column.
func ClustersDOT(clusters []layout.Cluster) string {
	var buf bytes.Buffer
	buf.WriteString("digraph clusters {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, c := range clusters {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(c))
		for _, m := range c.Members {
			attrs := fmt.Sprintf("label=%q", memberLabel(m))
			if m.Overflow {
				attrs += ", fillcolor=mistyrose"
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", memberID(c, m), attrs)
		}
		for i := 1; i < len(c.Members); i++ {
			fmt.Fprintf(&buf, "    %q -> %q;\n", memberID(c, c.Members[i-1]), memberID(c, c.Members[i]))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterLabel(c layout.Cluster) string {
	label := fmt.Sprintf("cluster %d: %d passes", c.ID, c.Passes)
	if !c.Converged {
		label += " (capped)"
	}
	return label
}

func memberID(c layout.Cluster, m layout.ClusterMember) string {
	return strconv.Itoa(c.ID) + ":" + strconv.Itoa(m.Index)
}

func memberLabel(m layout.ClusterMember) string {
	return fmt.Sprintf("%s\nstep %d\nfan x %s\ncolumn %d", m.Pitch, m.Step, num(m.FanX), m.Column)
}

// RenderClustersSVG renders a DOT graph to SVG using Graphviz.
func RenderClustersSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
