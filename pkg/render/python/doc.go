// Package python exports drawings as Python source code for the minidraw
// Python API and parses that dialect back into drawings.
//
// # Rendering
//
// The backend registers itself as the "python" target. The generated program
// rebuilds the scene tree statement by statement:
//
//	from minidraw import Drawing, Group, Style, Line, Circle, Rectangle, Polyline, Arc, Text
//
//	d = Drawing(style=Style(stroke="black"))
//	d.add(Line((10.0, 10.0), (100.0, 60.0)))
//	g1 = Group(style=Style(fill="red"))
//	g1.add(Circle((50.0, 50.0), 20.0))
//	d.add(g1)
//
//	d.render_to_file("output.svg")
//
// Geometry is written in absolute coordinates: group frames are applied
// before emission, so the program records the current shape of the scene
// rather than the transforms that produced it. Each node is constructed with
// its own style; inheritance is reproduced by the group nesting. Groups are
// named g1, g2, ... in walk order.
//
// Floats use the shortest representation that reads back to the same value,
// so exporting and re-parsing preserves geometry exactly.
//
// # Parsing
//
// [Parse] reads the same dialect back into a [scene.Drawing]. Besides the
// emitted statements it understands Group(*items, style=...) and chained
// transform calls (translate, rotate, scale, mirror, flip_lr, flip_ud, add)
// on any constructed node or variable, so small hand-written scripts load
// too. Calls to render_to_file and render_to_string are ignored.
//
//	d, err := python.Parse(src)
//	svg, err := d.RenderToString("svg")
//
// Parse errors carry the INVALID_SCENE code and a line:column position.
package python
