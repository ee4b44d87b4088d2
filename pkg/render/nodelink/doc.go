// Package nodelink renders social networks as node-link diagrams.
//
// # Overview
//
// People appear as rounded boxes and friendships as undirected lines. Layout
// is delegated to Graphviz; the default neato engine places friends close
// together so clusters of acquaintances are visible at a glance.
//
// # Usage
//
// Convert a network to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(n, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// To highlight how two people are connected:
//
//	path, _, _ := n.ShortestPath("Jordan", "Riley")
//	dot := nodelink.ToDOT(n, nodelink.Options{Highlight: path})
//
// # Options
//
//   - Detailed: labels include the friend count and metadata
//   - Highlight: a path whose people and friendships are emphasized
//   - Cluster: each connected component is boxed
//   - Layout: the Graphviz engine (defaults to neato)
//
// People without friends are drawn dashed and grey.
//
// # Dependencies
//
// Layout, SVG and PNG use [github.com/goccy/go-graphviz] in process. PDF
// additionally needs rsvg-convert from librsvg.
package nodelink
