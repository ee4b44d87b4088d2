package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/socialgraph/pkg/network"
	"github.com/matzehuels/socialgraph/pkg/observability"
	"github.com/matzehuels/socialgraph/pkg/render"
)

// DefaultLayout is the Graphviz engine used when Options.Layout is empty.
// Social graphs have no natural direction, so a spring model fits better
// than the hierarchical dot engine.
const DefaultLayout = "neato"

const (
	highlightFill = "#ffe08a"
	highlightEdge = "#d4a017"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the friend count and metadata to node labels.
	// When false, only the person's name is shown.
	Detailed bool

	// Highlight is a path of people (typically from ShortestPath) whose
	// nodes and connecting friendships are emphasized.
	Highlight []string

	// Cluster draws each connected component in its own box.
	Cluster bool

	// Layout is the Graphviz layout engine (neato, fdp, circo, dot...).
	Layout string
}

// ToDOT converts a network to an undirected Graphviz DOT graph.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(n *network.Network, opts Options) string {
	layout := opts.Layout
	if layout == "" {
		layout = DefaultLayout
	}
	onPath := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		onPath[id] = true
	}
	pathEdges := make(map[network.Friendship]bool, len(opts.Highlight))
	for i := 1; i < len(opts.Highlight); i++ {
		a, b := opts.Highlight[i-1], opts.Highlight[i]
		pathEdges[network.Friendship{A: a, B: b}] = true
		pathEdges[network.Friendship{A: b, B: a}] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", layout)
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	writeNode := func(indent, id string) {
		p, _ := n.Person(id)
		attrs := fmtAttrs(p, fmtLabel(p, opts.Detailed), onPath[id])
		fmt.Fprintf(&buf, "%s%q [%s];\n", indent, id, strings.Join(attrs, ", "))
	}

	if opts.Cluster {
		for i, comp := range n.Components() {
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
			buf.WriteString("    style=\"rounded,dashed\";\n")
			buf.WriteString("    color=grey;\n")
			for _, id := range comp {
				writeNode("    ", id)
			}
			buf.WriteString("  }\n")
		}
	} else {
		for _, id := range n.People() {
			writeNode("  ", id)
		}
	}

	buf.WriteString("\n")
	for _, f := range n.Friendships() {
		if pathEdges[f] {
			fmt.Fprintf(&buf, "  %q -- %q [color=%q, penwidth=3];\n", f.A, f.B, highlightEdge)
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", f.A, f.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p network.Person, detailed bool) string {
	if !detailed {
		return p.ID
	}

	parts := []string{fmt.Sprintf("friends: %d", len(p.Friends))}
	for _, k := range slices.Sorted(maps.Keys(p.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, p.Meta[k]))
	}

	return p.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(p network.Person, label string, highlighted bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case highlighted:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", highlightFill), "penwidth=2")
	case len(p.Friends) == 0:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// rasterDPI is the Graphviz dpi at scale 1.
const rasterDPI = 96

// RenderSVG lays out a DOT graph and returns standalone SVG sized to its
// viewBox.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := graphvizRender(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG rasterizes a DOT graph in process. Scale multiplies the output
// resolution; values below 1 are treated as 1.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	scale = max(scale, 1)
	return graphvizRender(ctx, withDPI(dot, rasterDPI*scale), graphviz.PNG)
}

// RenderPDF converts the SVG rendering with rsvg-convert, see [render.SVGToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.SVGToPDF(ctx, svg)
}

func graphvizRender(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, format, &out); err != nil {
		return nil, fmt.Errorf("graphviz %s: %w", format, err)
	}
	return out.Bytes(), nil
}

// withDPI sets the graph-level dpi attribute on a document produced by ToDOT.
func withDPI(dot string, dpi float64) string {
	head, body, ok := strings.Cut(dot, "{\n")
	if !ok {
		return dot
	}
	return head + "{\n" + fmt.Sprintf("  dpi=%s;\n", strconv.FormatFloat(dpi, 'f', -1, 64)) + body
}

var (
	svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)
	svgViewBox = regexp.MustCompile(`viewBox="[-0-9.]+\s+[-0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element Graphviz emits (which carries
// pt-based width and height) with one whose pixel size equals the viewBox.
func normalizeViewBox(svg []byte) []byte {
	m := svgViewBox.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return svg
	}
	root := fmt.Appendf(nil, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenTag.ReplaceAllLiteral(svg, root)
}

// Render produces the requested format ("dot", "svg", "pdf" or "png") and
// reports the render to the registered observability hooks.
func Render(ctx context.Context, n *network.Network, format string, opts Options) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format, n.Len())
	start := time.Now()
	out, err := renderFormat(ctx, n, format, opts)
	hooks.OnRenderComplete(ctx, format, time.Since(start), err)
	return out, err
}

func renderFormat(ctx context.Context, n *network.Network, format string, opts Options) ([]byte, error) {
	dot := ToDOT(n, opts)
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return RenderSVG(ctx, dot)
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, 2)
	}
	return nil, fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
}
