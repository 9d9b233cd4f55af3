// Package svg renders drawings as SVG markup.
//
// # Overview
//
// The backend registers itself as the "svg" target when the package is
// imported. Output is flattened: the root <svg> element holds one element
// per primitive in walk order, each carrying its fully resolved style. Group
// frames are baked into the coordinates, so no <g> elements are emitted.
//
//	import _ "github.com/matzehuels/minidraw/pkg/render/svg"
//
//	out, err := d.RenderToString("svg")
//
// # Element Mapping
//
//	Line      → <line>
//	Circle    → <circle>, or <ellipse> with a rotate() transform
//	Rectangle → <rect>, with a rotate() transform when rotated
//	Polyline  → <polyline>, or <polygon> when closed
//	Arc       → <path> with an elliptical arc command
//	Text      → <text>
//
// Attributes missing from the effective style fall back to stroke black,
// stroke-width 1, fill none and opacity 1. Text is filled black in a 10 unit
// sans-serif font anchored at its start.
//
// # View Box
//
// The view box is the bounding box of all primitives grown by a margin (10
// by default, see [WithMargin]). Text contributes an approximate extent
// measured with the fixed 7x13 face from golang.org/x/image/font/basicfont,
// scaled to the font size. An empty drawing gets the box -10 -10 120 120.
//
// # Numbers
//
// Coordinates are rounded to six decimals and printed without trailing
// zeros, so output is byte-identical across runs and platforms.
package svg
