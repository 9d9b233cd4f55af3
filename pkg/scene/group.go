package scene

import (
	"slices"

	"github.com/matzehuels/minidraw/pkg/errors"
)

// Group is an ordered collection of child nodes with its own style and an
// optional frame.
//
// Transform methods act on the children in the group's own coordinate
// space, that is inside the frame. The frame is a deferred placement that is
// applied to the whole subtree when the scene is walked.
type Group struct {
	node
	children []Spatial
	frame    Affine
	framed   bool
	root     bool
}

// NewGroup returns an empty detached group.
func NewGroup(opts ...StyleOption) *Group {
	return &Group{node: node{style: NewStyle(opts...)}}
}

// Kind returns [KindGroup].
func (g *Group) Kind() Kind { return KindGroup }

// SetStyle replaces the group's own style.
func (g *Group) SetStyle(s Style) *Group {
	g.style = s
	return g
}

// Frame returns the deferred transform of the group.
func (g *Group) Frame() Affine {
	if !g.framed {
		return Identity()
	}
	return g.frame
}

// SetFrame sets the deferred transform applied to the group's subtree when
// the scene is walked.
func (g *Group) SetFrame(m Affine) *Group {
	g.frame = m
	g.framed = !m.IsIdentity()
	return g
}

// Children returns the direct children in order. The slice is a copy; the
// children are not.
func (g *Group) Children() []Spatial {
	return slices.Clone(g.children)
}

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.children) }

// Add appends items in order. Nothing is added if any item fails:
//   - a group that is g itself or one of g's ancestors is a CYCLE error
//   - a drawing is a CYCLE error, drawings are always roots
//   - an item that already belongs to a group is an ATTACHED error
func (g *Group) Add(items ...Spatial) error {
	seen := make(map[Spatial]bool, len(items))
	for _, item := range items {
		if item == nil {
			return errors.New(errors.ErrCodeInvalidInput, "cannot add a nil node")
		}
		if child, ok := item.(*Group); ok {
			if err := g.checkCycle(child); err != nil {
				return err
			}
		}
		if _, ok := item.(*Drawing); ok {
			return errors.CycleError("a drawing cannot be added to a group")
		}
		if item.Parent() != nil || seen[item] {
			return errors.New(errors.ErrCodeAttached, "%s already belongs to a group", item.Kind())
		}
		seen[item] = true
	}
	for _, item := range items {
		item.base().parent = g
		g.children = append(g.children, item)
	}
	return nil
}

func (g *Group) checkCycle(child *Group) error {
	if child.root {
		return errors.CycleError("a drawing cannot be added to a group")
	}
	for p := g; p != nil; p = p.parent {
		if p == child {
			return errors.CycleError("group cannot be added to itself or one of its descendants")
		}
	}
	return nil
}

// Remove detaches item from g. It reports whether item was a direct child.
func (g *Group) Remove(item Spatial) bool {
	i := slices.Index(g.children, item)
	if i < 0 {
		return false
	}
	g.children = slices.Delete(g.children, i, i+1)
	item.base().parent = nil
	return true
}

// Clear detaches every child.
func (g *Group) Clear() *Group {
	for _, c := range g.children {
		c.base().parent = nil
	}
	g.children = nil
	return g
}

func (g *Group) attach(s Spatial) {
	s.base().parent = g
	g.children = append(g.children, s)
}

// Line adds a new line to g and returns it.
func (g *Group) Line(p1, p2 Point) *Line {
	l := NewLine(p1, p2)
	g.attach(l)
	return l
}

// Circle adds a new circle to g and returns it.
func (g *Group) Circle(center Point, r float64) *Circle {
	c := NewCircle(center, r)
	g.attach(c)
	return c
}

// Rectangle adds a new rectangle to g and returns it.
func (g *Group) Rectangle(origin Point, width, height float64) *Rectangle {
	r := NewRectangle(origin, width, height)
	g.attach(r)
	return r
}

// Polyline adds a new open polyline to g and returns it.
func (g *Group) Polyline(pts ...Point) *Polyline {
	p := NewPolyline(pts...)
	g.attach(p)
	return p
}

// Polygon adds a new closed polyline to g and returns it.
func (g *Group) Polygon(pts ...Point) *Polyline {
	p := NewPolygon(pts...)
	g.attach(p)
	return p
}

// Arc adds a new arc to g and returns it.
func (g *Group) Arc(center Point, r, start, end float64) *Arc {
	a := NewArc(center, r, start, end)
	g.attach(a)
	return a
}

// Text adds a new text to g and returns it.
func (g *Group) Text(anchor Point, content string) *Text {
	t := NewText(anchor, content)
	g.attach(t)
	return t
}

// SubGroup adds a new empty child group to g and returns it.
func (g *Group) SubGroup(opts ...StyleOption) *Group {
	c := NewGroup(opts...)
	g.attach(c)
	return c
}

// Points returns the points of every descendant primitive, in walk order,
// in the group's own coordinate space.
func (g *Group) Points() []Point {
	var out []Point
	for _, c := range g.children {
		if cg, ok := c.(*Group); ok {
			pts := cg.Points()
			if cg.framed {
				for i := range pts {
					pts[i].Transform(cg.frame)
				}
			}
			out = append(out, pts...)
			continue
		}
		out = append(out, c.Points()...)
	}
	return out
}

// Centroid returns the mean of all descendant points.
func (g *Group) Centroid() Point { return centroid(g.Points()) }

// Bounds returns the union of the children's bounds in the group's own
// coordinate space.
func (g *Group) Bounds() Rect {
	var r Rect
	for _, c := range g.children {
		if cg, ok := c.(*Group); ok && cg.framed {
			r = r.Union(framedBounds(cg))
			continue
		}
		r = r.Union(c.Bounds())
	}
	return r
}

// framedBounds resolves a framed group's subtree and measures the result.
func framedBounds(g *Group) Rect {
	resolved := g.Copy()
	resolved.SetFrame(Identity())
	if err := resolved.Transform(g.frame); err != nil {
		// Shapes that cannot take the frame are measured by their corners.
		var r Rect
		b := g.Copy().SetFrame(Identity()).Bounds()
		if b.IsEmpty() {
			return r
		}
		for _, p := range []Point{Pt(b.MinX, b.MinY), Pt(b.MaxX, b.MinY), Pt(b.MaxX, b.MaxY), Pt(b.MinX, b.MaxY)} {
			r = r.Extend(g.frame.Apply(p.Abs()))
		}
		return r
	}
	return resolved.Bounds()
}

// Transform applies m to every descendant. If any descendant rejects m,
// nothing is changed.
func (g *Group) Transform(m Affine) error { return transform(g, m) }

func (g *Group) check(m Affine) error {
	for _, c := range g.children {
		if cg, ok := c.(*Group); ok && cg.framed {
			continue
		}
		if err := c.check(m); err != nil {
			return err
		}
	}
	return nil
}

// apply moves the children. A framed child group takes m into its frame, so
// its subtree stays deferred.
func (g *Group) apply(m Affine) {
	for _, c := range g.children {
		if cg, ok := c.(*Group); ok && cg.framed {
			cg.SetFrame(m.Multiply(cg.frame))
			continue
		}
		c.apply(m)
	}
}

// Clone returns a detached deep copy of the subtree.
func (g *Group) Clone() Spatial { return g.Copy() }

// Copy returns a detached deep copy of the subtree.
func (g *Group) Copy() *Group {
	cp := &Group{node: node{style: g.style}, frame: g.frame, framed: g.framed}
	for _, c := range g.children {
		cp.attach(c.Clone())
	}
	return cp
}

// Translate moves every descendant by (dx, dy).
func (g *Group) Translate(dx, dy float64) *Group {
	g.apply(Translation(dx, dy))
	return g
}

// Rotate rotates every descendant about the group's centroid.
func (g *Group) Rotate(deg float64) *Group { return g.RotateAround(deg, g.Centroid()) }

// RotateAround rotates every descendant about c.
func (g *Group) RotateAround(deg float64, c Point) *Group {
	g.apply(Rotation(deg).Around(c))
	return g
}

// Scale scales every descendant uniformly about the group's centroid.
func (g *Group) Scale(s float64) *Group {
	g.apply(Scaling(s, s).Around(g.Centroid()))
	return g
}

// ScaleXY scales every descendant about the group's centroid.
func (g *Group) ScaleXY(sx, sy float64) (*Group, error) { return g, scaleXY(g, sx, sy) }

// ScaleAround scales every descendant about c.
func (g *Group) ScaleAround(sx, sy float64, c Point) (*Group, error) {
	return g, scaleAround(g, sx, sy, c)
}

// Mirror reflects every descendant across the line through a and b.
func (g *Group) Mirror(a, b Point) (*Group, error) { return g, mirror(g, a, b) }

// FlipLR mirrors every descendant across the vertical through the group's
// centroid.
func (g *Group) FlipLR() *Group {
	flipLR(g)
	return g
}

// FlipUD mirrors every descendant across the horizontal through the group's
// centroid.
func (g *Group) FlipUD() *Group {
	flipUD(g)
	return g
}
