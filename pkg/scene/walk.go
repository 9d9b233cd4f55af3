package scene

import "github.com/matzehuels/minidraw/pkg/errors"

// Step tells a [Visitor] which kind of event it receives.
type Step uint8

const (
	// StepEnter is sent for a group before its children.
	StepEnter Step = iota
	// StepLeave is sent for a group after its children.
	StepLeave
	// StepPrimitive is sent once for every primitive.
	StepPrimitive
)

// Event describes one node of a walk.
type Event struct {
	Step Step
	// Node is the node as stored in the tree.
	Node Spatial
	// Resolved is, for primitives, the node with every enclosing frame
	// applied. It is Node itself when no frame is in effect and a private
	// copy otherwise; visitors must not mutate it. For groups it is Node.
	Resolved Spatial
	// Style is the effective style: the node's own style merged over the
	// styles of all its ancestors.
	Style Style
	// Transform is the accumulated frame of the enclosing groups, including
	// the group's own frame for StepEnter and StepLeave.
	Transform Affine
	// Depth is 0 for the root.
	Depth int
}

// Visitor receives walk events. Returning an error stops the walk.
type Visitor func(ev Event) error

// Walk visits root and its descendants in depth-first pre-order, children
// in insertion order. The first error returned by visit, or the first
// failure to resolve a frame, is returned.
func Walk(root Spatial, visit Visitor) error {
	if root == nil {
		return nil
	}
	return walk(root, visit, Identity(), Style{}, 0)
}

func walk(n Spatial, visit Visitor, acc Affine, inherited Style, depth int) error {
	style := n.Style().Merged(inherited)

	g := asGroup(n)
	if g == nil {
		resolved := n
		if !acc.IsIdentity() {
			resolved = n.Clone()
			if err := resolved.Transform(acc); err != nil {
				return errors.Wrap(errors.ErrCodeGeometry, err, "resolve %s at depth %d", n.Kind(), depth)
			}
		}
		return visit(Event{Step: StepPrimitive, Node: n, Resolved: resolved, Style: style, Transform: acc, Depth: depth})
	}

	if g.framed {
		acc = acc.Multiply(g.frame)
	}
	ev := Event{Step: StepEnter, Node: n, Resolved: n, Style: style, Transform: acc, Depth: depth}
	if err := visit(ev); err != nil {
		return err
	}
	for _, c := range g.children {
		if err := walk(c, visit, acc, style, depth+1); err != nil {
			return err
		}
	}
	ev.Step = StepLeave
	return visit(ev)
}

func asGroup(n Spatial) *Group {
	switch v := n.(type) {
	case *Group:
		return v
	case *Drawing:
		return &v.Group
	}
	return nil
}
