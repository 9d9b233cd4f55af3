// Package scene provides the in-memory 2D vector scene model: points, styles,
// primitives, groups and drawings, and the registry of render backends.
//
// # Overview
//
// A scene is a tree. A [Drawing] is the root [Group]; groups hold ordered
// children which are either further groups or primitives ([Line], [Circle],
// [Rectangle], [Polyline], [Arc], [Text]). Every node carries its own
// [Style]; the effective style of a node is its own style merged over the
// effective style of its parent.
//
//	d := scene.New(scene.Stroke("black"))
//	d.Line(scene.Pt(10, 10), scene.Pt(100, 60))
//	g := d.SubGroup()
//	g.Circle(scene.Pt(50, 50), 20).SetStyle(scene.NewStyle(scene.Fill("red")))
//	g.Rotate(45)
//	svg, err := d.RenderToString("svg")
//
// # Transforms
//
// All geometric operations are [Affine] maps. Transform methods mutate the
// receiver in place and return it so calls can be chained; use Copy or
// [Spatial.Clone] first to keep the original. Rotations and scalings without
// an explicit centre use the centroid of the node's points.
//
// Some primitives cannot represent every affine map. A [Circle] becomes an
// ellipse under anisotropic scaling, an [Arc] rejects anything that is not a
// similarity, and a [Rectangle] only accepts maps that keep its edges
// perpendicular. Rejected maps return a GEOMETRY error from
// [github.com/matzehuels/minidraw/pkg/errors] and leave the node unchanged.
// Group transforms are all-or-nothing.
//
// # Rendering
//
// Backends implement [Backend] and register under a target name with
// [Register]. [Drawing.RenderToString] and [Drawing.RenderToFile] dispatch by
// name. Backends traverse the tree with [Walk], which resolves the
// accumulated group frames and effective styles in depth-first pre-order.
//
// The built-in backends live under pkg/render and register themselves when
// imported:
//
//	import _ "github.com/matzehuels/minidraw/pkg/render"
package scene
