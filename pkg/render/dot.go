// Package render exports graphs as Graphviz DOT and renders them to SVG.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/biograph-io/biograph/pkg/bel"
)

// Options configures DOT export.
type Options struct {
	// Evidence includes the edge evidence text in edge labels. Off by
	// default because evidence strings tend to be long.
	Evidence bool
}

// ToDOT converts a graph to Graphviz DOT format. Nodes are labeled with
// their canonical names; pathology nodes are filled to stand out, and
// non-causal edges are dashed. Output order follows the graph's
// deterministic id order, so the same graph always yields the same DOT.
func ToDOT(g *bel.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", id.String(), n.CanonicalName(), nodeAttrs(n))
	}

	buf.WriteString("\n")
	for _, eid := range g.EdgeIDs() {
		e, _ := g.Edge(eid)
		fmt.Fprintf(&buf, "  %q -> %q [label=%q%s];\n",
			e.From.String(), e.To.String(), edgeLabel(e, opts), edgeAttrs(e))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n bel.Node) string {
	if n.IsPathology() {
		return ", fillcolor=mistyrose"
	}
	return ""
}

func edgeLabel(e bel.Edge, opts Options) string {
	if opts.Evidence && e.Evidence != "" {
		return fmt.Sprintf("%s\n%s", e.Relation, e.Evidence)
	}
	return string(e.Relation)
}

func edgeAttrs(e bel.Edge) string {
	if !e.IsCausal() {
		return ", style=dashed"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
