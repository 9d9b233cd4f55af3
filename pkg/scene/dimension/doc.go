// Package dimension builds technical-drawing dimension annotations from scene
// primitives.
//
// A [Length] measures the distance between two points. Its [Length.Elements]
// are generated on demand from the endpoints and a [Style]:
//
//	     100.0 mm
//	|<------------->|
//	|               |
//
// The elements are two extension lines, the dimension line, a V-shaped arrow
// head at each end and a label rotated to run along the measured direction.
// The dimension sits on the left of the direction p1 to p2 in a y-down
// coordinate system, so a left-to-right measurement is annotated above.
//
//	d := scene.New()
//	dim := dimension.NewLength(scene.Pt(0, 0), scene.Pt(100, 0), dimension.WithUnits("mm"))
//	if err := dimension.Add(d.Root(), dim); err != nil {
//		return err
//	}
//
// Elements are fresh primitives on every call; transforming them does not
// affect the dimension that produced them.
package dimension
