// Package render converts a dashboard layout snapshot into Graphviz DOT
// and renders it to SVG or PNG. Each widget becomes one box node pinned at
// its grid position, so the output is a faithful picture of the layout
// rather than an auto-arranged diagram.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/griddeck/griddeck/pkg/store"
)

// Options configures layout rendering.
type Options struct {
	// Detailed includes the widget id and minimized flag in labels.
	// When false, only the widget type is shown.
	Detailed bool

	// CellSize is the rendered size of one grid cell in points.
	// Zero means 60.
	CellSize float64
}

const defaultCellSize = 60.0

// ToDOT converts a dashboard state to Graphviz DOT. Widgets are emitted as
// pinned box nodes (neato layout with pos!), scaled by CellSize, with the
// grid's own frame drawn as an enclosing cluster-free bounding box.
func ToDOT(s store.State, opts Options) string {
	cell := opts.CellSize
	if cell <= 0 {
		cell = defaultCellSize
	}
	// Graphviz pos is the node center in points, y growing upward; grid
	// rows grow downward, so rows are flipped against the grid height.
	maxRow := 1
	for _, w := range s.Widgets {
		if b := w.Bottom(); b > maxRow {
			maxRow = b
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, w := range s.Widgets {
		cx := (float64(w.X-1) + float64(w.W)/2) * cell
		cy := (float64(maxRow-w.Y+1) - float64(w.H)/2) * cell
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(w, opts.Detailed)),
			fmt.Sprintf("pos=\"%.0f,%.0f!\"", cx, cy),
			fmt.Sprintf("width=%.2f", float64(w.W)*cell/72),
			fmt.Sprintf("height=%.2f", float64(w.H)*cell/72),
			"fixedsize=true",
		}
		if w.Minimized {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", w.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(w store.Widget, detailed bool) string {
	if !detailed {
		return w.Type
	}
	parts := []string{w.Type, w.ID, fmt.Sprintf("%dx%d", w.W, w.H)}
	if w.Minimized {
		parts = append(parts, "minimized")
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
