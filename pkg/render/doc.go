// Package render provides output format handling for network diagrams.
//
// # Overview
//
// The diagrams themselves are built by the [nodelink] subpackage. This
// package holds what is shared between renderers:
//
//   - Output format names and validation ([ParseFormat])
//   - SVG to PDF conversion ([SVGToPDF])
//
// SVG and PNG are produced in process by Graphviz. PDF goes through the
// rsvg-convert tool from librsvg:
//
//	dot := nodelink.ToDOT(n, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.SVGToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/socialgraph/pkg/render/nodelink
package render
