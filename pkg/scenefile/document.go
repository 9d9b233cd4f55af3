package scenefile

import (
	"fmt"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// Document is the decoded form of a scene file.
type Document struct {
	Style map[string]any `toml:"style" yaml:"style" json:"style"`
	Items []Item         `toml:"items" yaml:"items" json:"items"`
}

// Item is one primitive or group. Which fields apply depends on Type.
type Item struct {
	Type       string         `toml:"type" yaml:"type" json:"type"`
	Style      map[string]any `toml:"style" yaml:"style" json:"style"`
	Transforms []Transform    `toml:"transforms" yaml:"transforms" json:"transforms"`

	From []float64 `toml:"from" yaml:"from" json:"from"`
	To   []float64 `toml:"to" yaml:"to" json:"to"`

	Center   []float64 `toml:"center" yaml:"center" json:"center"`
	Radius   *float64  `toml:"radius" yaml:"radius" json:"radius"`
	Radii    []float64 `toml:"radii" yaml:"radii" json:"radii"`
	Rotation float64   `toml:"rotation" yaml:"rotation" json:"rotation"`

	Origin []float64 `toml:"origin" yaml:"origin" json:"origin"`
	Width  *float64  `toml:"width" yaml:"width" json:"width"`
	Height *float64  `toml:"height" yaml:"height" json:"height"`

	Points [][]float64 `toml:"points" yaml:"points" json:"points"`
	Closed bool        `toml:"closed" yaml:"closed" json:"closed"`

	Start float64 `toml:"start" yaml:"start" json:"start"`
	End   float64 `toml:"end" yaml:"end" json:"end"`

	At      []float64 `toml:"at" yaml:"at" json:"at"`
	Content string    `toml:"content" yaml:"content" json:"content"`

	Items []Item      `toml:"items" yaml:"items" json:"items"`
	Frame []Transform `toml:"frame" yaml:"frame" json:"frame"`
}

// Transform is one step of an item's transforms or a group's frame.
type Transform struct {
	Op     string    `toml:"op" yaml:"op" json:"op"`
	Dx     float64   `toml:"dx" yaml:"dx" json:"dx"`
	Dy     float64   `toml:"dy" yaml:"dy" json:"dy"`
	Angle  float64   `toml:"angle" yaml:"angle" json:"angle"`
	Center []float64 `toml:"center" yaml:"center" json:"center"`
	Sx     *float64  `toml:"sx" yaml:"sx" json:"sx"`
	Sy     *float64  `toml:"sy" yaml:"sy" json:"sy"`
	P1     []float64 `toml:"p1" yaml:"p1" json:"p1"`
	P2     []float64 `toml:"p2" yaml:"p2" json:"p2"`
}

// Build constructs the drawing described by doc.
func (doc *Document) Build() (*scene.Drawing, error) {
	st, err := scene.ParseStyle(doc.Style)
	if err != nil {
		return nil, sceneError("style", err)
	}
	d := scene.New()
	d.SetStyle(st)
	if err := addItems(d.Root(), doc.Items, "items"); err != nil {
		return nil, err
	}
	return d, nil
}

func addItems(g *scene.Group, items []Item, path string) error {
	for i := range items {
		at := fmt.Sprintf("%s[%d]", path, i)
		s, err := items[i].build(at)
		if err != nil {
			return err
		}
		if err := g.Add(s); err != nil {
			return sceneError(at, err)
		}
	}
	return nil
}

func (it *Item) build(at string) (scene.Spatial, error) {
	s, err := it.construct(at)
	if err != nil {
		return nil, err
	}

	st, err := scene.ParseStyle(it.Style)
	if err != nil {
		return nil, sceneError(at+".style", err)
	}
	setStyle(s, st)

	for i, t := range it.Transforms {
		tat := fmt.Sprintf("%s.transforms[%d]", at, i)
		m, err := t.affine(s.Centroid(), tat)
		if err != nil {
			return nil, err
		}
		if err := s.Transform(m); err != nil {
			return nil, sceneError(tat, err)
		}
	}
	return s, nil
}

func (it *Item) construct(at string) (scene.Spatial, error) {
	switch it.Type {
	case "line":
		p1, err := point(it.From, at, "from")
		if err != nil {
			return nil, err
		}
		p2, err := point(it.To, at, "to")
		if err != nil {
			return nil, err
		}
		return scene.NewLine(p1, p2), nil

	case "circle":
		c, err := point(it.Center, at, "center")
		if err != nil {
			return nil, err
		}
		switch {
		case len(it.Radii) == 2:
			return scene.NewCircle(c, it.Radii[0]).SetRadii(it.Radii[0], it.Radii[1]).SetRotation(it.Rotation), nil
		case it.Radii != nil:
			return nil, errors.New(errors.ErrCodeInvalidScene, "%s: radii must be [rx, ry]", at)
		case it.Radius != nil:
			return scene.NewCircle(c, *it.Radius).SetRotation(it.Rotation), nil
		}
		return nil, errors.New(errors.ErrCodeInvalidScene, "%s: circle needs radius or radii", at)

	case "rectangle":
		o, err := point(it.Origin, at, "origin")
		if err != nil {
			return nil, err
		}
		if it.Width == nil || it.Height == nil {
			return nil, errors.New(errors.ErrCodeInvalidScene, "%s: rectangle needs width and height", at)
		}
		return scene.NewRectangle(o, *it.Width, *it.Height).SetRotation(it.Rotation), nil

	case "polyline":
		pts := make([]scene.Point, len(it.Points))
		for i, raw := range it.Points {
			p, err := point(raw, at, fmt.Sprintf("points[%d]", i))
			if err != nil {
				return nil, err
			}
			pts[i] = p
		}
		return scene.NewPolyline(pts...).SetClosed(it.Closed), nil

	case "arc":
		c, err := point(it.Center, at, "center")
		if err != nil {
			return nil, err
		}
		if it.Radius == nil {
			return nil, errors.New(errors.ErrCodeInvalidScene, "%s: arc needs radius", at)
		}
		return scene.NewArc(c, *it.Radius, it.Start, it.End), nil

	case "text":
		p, err := point(it.At, at, "at")
		if err != nil {
			return nil, err
		}
		return scene.NewText(p, it.Content).SetRotation(it.Rotation), nil

	case "group":
		g := scene.NewGroup()
		if err := addItems(g, it.Items, at+".items"); err != nil {
			return nil, err
		}
		if len(it.Frame) > 0 {
			frame := scene.Identity()
			for i, t := range it.Frame {
				m, err := t.affine(scene.Pt(0, 0), fmt.Sprintf("%s.frame[%d]", at, i))
				if err != nil {
					return nil, err
				}
				frame = m.Multiply(frame)
			}
			g.SetFrame(frame)
		}
		return g, nil

	case "":
		return nil, errors.New(errors.ErrCodeInvalidScene, "%s: missing type", at)
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "%s: unknown item type %q", at, it.Type)
}

// affine returns the map for t. Rotations and scalings without an explicit
// center act about pivot.
func (t Transform) affine(pivot scene.Point, at string) (scene.Affine, error) {
	center := func() (scene.Point, error) {
		if t.Center == nil {
			return pivot, nil
		}
		return point(t.Center, at, "center")
	}

	switch t.Op {
	case "translate":
		return scene.Translation(t.Dx, t.Dy), nil

	case "rotate":
		c, err := center()
		if err != nil {
			return scene.Affine{}, err
		}
		return scene.Rotation(t.Angle).Around(c), nil

	case "scale":
		if t.Sx == nil {
			return scene.Affine{}, errors.New(errors.ErrCodeInvalidScene, "%s: scale needs sx", at)
		}
		sx, sy := *t.Sx, *t.Sx
		if t.Sy != nil {
			sy = *t.Sy
		}
		c, err := center()
		if err != nil {
			return scene.Affine{}, err
		}
		return scene.Scaling(sx, sy).Around(c), nil

	case "mirror":
		a, err := point(t.P1, at, "p1")
		if err != nil {
			return scene.Affine{}, err
		}
		b, err := point(t.P2, at, "p2")
		if err != nil {
			return scene.Affine{}, err
		}
		m, err := scene.Reflection(a, b)
		if err != nil {
			return scene.Affine{}, sceneError(at, err)
		}
		return m, nil

	case "flip_lr":
		return scene.Scaling(-1, 1).Around(pivot), nil

	case "flip_ud":
		return scene.Scaling(1, -1).Around(pivot), nil
	}
	return scene.Affine{}, errors.New(errors.ErrCodeInvalidScene, "%s: unknown transform %q", at, t.Op)
}

func point(v []float64, at, field string) (scene.Point, error) {
	if len(v) != 2 {
		return scene.Point{}, errors.New(errors.ErrCodeInvalidScene, "%s: %s must be [x, y]", at, field)
	}
	return scene.Pt(v[0], v[1]), nil
}

func setStyle(s scene.Spatial, st scene.Style) {
	switch v := s.(type) {
	case *scene.Line:
		v.SetStyle(st)
	case *scene.Circle:
		v.SetStyle(st)
	case *scene.Rectangle:
		v.SetStyle(st)
	case *scene.Polyline:
		v.SetStyle(st)
	case *scene.Arc:
		v.SetStyle(st)
	case *scene.Text:
		v.SetStyle(st)
	case *scene.Group:
		v.SetStyle(st)
	}
}

func sceneError(at string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", at)
}
