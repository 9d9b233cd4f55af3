package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/minidraw/pkg/errors"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func absOf(p *Point) [2]float64 {
	x, y := p.Abs()
	return [2]float64{x, y}
}

func TestPointReferences(t *testing.T) {
	root := &Point{X: 10, Y: 10}
	child := root.RightOf(5).Above(5)
	if diff := cmp.Diff([2]float64{15, 5}, absOf(child), approx); diff != "" {
		t.Errorf("RightOf(5).Above(5) mismatch (-want +got):\n%s", diff)
	}

	origin := &Point{}
	p2 := origin.RightOf(10).Above(10)
	origin.Translate(5, 5)
	if diff := cmp.Diff([2]float64{15, -5}, absOf(p2), approx); diff != "" {
		t.Errorf("moving the root did not move the chain (-want +got):\n%s", diff)
	}

	left := root.LeftOf(3).Below(4)
	if diff := cmp.Diff([2]float64{7, 14}, absOf(left), approx); diff != "" {
		t.Errorf("LeftOf(3).Below(4) mismatch (-want +got):\n%s", diff)
	}
}

func TestPointTransforms(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		op   func(p *Point)
		want [2]float64
	}{
		{"translate", Pt(0, 0), func(p *Point) { p.Translate(10, -5) }, [2]float64{10, -5}},
		{"rotate about origin", Pt(10, 0), func(p *Point) { p.RotateAround(90, Pt(0, 0)) }, [2]float64{0, 10}},
		{"rotate about point", Pt(10, 0), func(p *Point) { p.RotateAround(180, Pt(5, 0)) }, [2]float64{0, 0}},
		{"rotate about itself", Pt(3, 4), func(p *Point) { p.Rotate(37) }, [2]float64{3, 4}},
		{"scale about origin", Pt(10, 0), func(p *Point) { p.ScaleAround(2, 2, Pt(0, 0)) }, [2]float64{20, 0}},
		{"scale anisotropic", Pt(5, 5), func(p *Point) { p.ScaleAround(2, 3, Pt(0, 0)) }, [2]float64{10, 15}},
		{"mirror across x axis", Pt(5, 5), func(p *Point) { p.Mirror(Pt(0, 0), Pt(10, 0)) }, [2]float64{5, -5}},
		{"mirror across diagonal", Pt(4, 0), func(p *Point) { p.Mirror(Pt(0, 0), Pt(1, 1)) }, [2]float64{0, 4}},
		{"flip lr", Pt(10, -10), func(p *Point) { p.FlipLR() }, [2]float64{-10, -10}},
		{"flip ud", Pt(10, -10), func(p *Point) { p.FlipUD() }, [2]float64{10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			tt.op(&p)
			if diff := cmp.Diff(tt.want, absOf(&p), approx); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPointMirrorDegenerate(t *testing.T) {
	p := Pt(1, 2)
	_, err := p.Mirror(Pt(3, 3), Pt(3, 3))
	if !errors.IsGeometry(err) {
		t.Fatalf("Mirror(a, a) error = %v, want GEOMETRY", err)
	}
	if p != Pt(1, 2) {
		t.Errorf("point changed to %v after failed mirror", p)
	}
}

func TestPointTransformKeepsReference(t *testing.T) {
	root := &Point{X: 10, Y: 0}
	child := root.RightOf(10)
	child.RotateAround(90, Pt(10, 0))

	if child.Ref != root {
		t.Fatal("transform dropped the reference")
	}
	if diff := cmp.Diff(Point{X: 0, Y: 10, Ref: root}, *child, approx); diff != "" {
		t.Errorf("relative offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestPointDetach(t *testing.T) {
	root := &Point{X: 5, Y: 5}
	child := root.RightOf(5)
	if child.Ref != root {
		t.Fatal("RightOf did not reference the root")
	}
	child.Detach()
	if child.Ref != nil {
		t.Error("Detach kept the reference")
	}
	if *child != Pt(10, 5) {
		t.Errorf("Detach = %v, want (10, 5)", child)
	}
}

func TestPointToLocal(t *testing.T) {
	root := &Point{X: 10, Y: 10}
	child := root.RightOf(5)
	x, y := child.ToLocal(Pt(20, 0))
	if diff := cmp.Diff([2]float64{10, -10}, [2]float64{x, y}, approx); diff != "" {
		t.Errorf("ToLocal mismatch (-want +got):\n%s", diff)
	}

	free := &Point{X: 1, Y: 1}
	x, y = free.ToLocal(Pt(20, 0))
	if x != 20 || y != 0 {
		t.Errorf("ToLocal without reference = (%g, %g), want (20, 0)", x, y)
	}
}

func TestPointCopyIsIndependent(t *testing.T) {
	p := &Point{X: 1, Y: 2}
	c := p.Copy().Translate(10, 10)
	if *p != Pt(1, 2) {
		t.Errorf("original changed to %v", p)
	}
	if *c != Pt(11, 12) {
		t.Errorf("copy = %v, want (11, 12)", c)
	}
}
