// Package dot renders the structure of a drawing as a Graphviz digraph.
//
// # Overview
//
// The backend registers itself as the "dot" target and claims the ".dot"
// and ".gv" extensions. Every group and primitive becomes a box node and
// every parent/child relation an edge, so the output shows the scene tree
// rather than the picture:
//
//	s, err := d.RenderToString("dot")
//	svg, err := dot.RenderSVG(s)
//
// # Labels
//
// A node label holds the node kind, the content of text primitives and,
// unless [Options.Detailed] is false, one line per attribute of the
// effective style. Groups are drawn dashed on a grey fill.
//
// # Dependencies
//
// [RenderSVG] lays the graph out in process with
// [github.com/goccy/go-graphviz]; no Graphviz installation is required.
package dot
