package scene

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/matzehuels/minidraw/pkg/errors"
	pkgio "github.com/matzehuels/minidraw/pkg/io"
	"github.com/matzehuels/minidraw/pkg/observability"
)

// Drawing is the root of a scene. Its style is the default style every
// node inherits from. A drawing can never be added to a group.
type Drawing struct {
	Group
}

// New returns an empty drawing whose default style has opts set.
func New(opts ...StyleOption) *Drawing {
	d := &Drawing{}
	d.style = NewStyle(opts...)
	d.root = true
	return d
}

// Root returns the drawing as a group, for code that handles groups
// generically.
func (d *Drawing) Root() *Group { return &d.Group }

// Copy returns a deep copy of the drawing.
func (d *Drawing) Copy() *Drawing {
	cp := New()
	cp.style = d.style
	cp.SetFrame(d.Frame())
	for _, c := range d.children {
		cp.attach(c.Clone())
	}
	return cp
}

// Clone returns a deep copy of the drawing.
func (d *Drawing) Clone() Spatial { return d.Copy() }

// Bounds returns the bounding box of the drawing's geometry, with the root
// frame applied. Text contributes its anchor only.
func (d *Drawing) Bounds() Rect {
	if d.framed {
		return framedBounds(&d.Group)
	}
	return d.Group.Bounds()
}

// Count returns the number of nodes below the root.
func (d *Drawing) Count() int {
	n := 0
	_ = Walk(d, func(ev Event) error {
		if ev.Step != StepLeave && ev.Depth > 0 {
			n++
		}
		return nil
	})
	return n
}

// RenderToString renders the drawing with the backend registered as target.
func (d *Drawing) RenderToString(target string) (string, error) {
	return d.RenderContext(context.Background(), target)
}

// RenderContext renders the drawing with the backend registered as target,
// reporting to the render hooks with ctx.
func (d *Drawing) RenderContext(ctx context.Context, target string) (string, error) {
	b, err := Lookup(target)
	if err != nil {
		return "", err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, target, d.Count())
	start := time.Now()
	out, err := b.Render(d)
	hooks.OnRenderComplete(ctx, target, len(out), time.Since(start), err)
	if err != nil {
		return "", err
	}
	return out, nil
}

// RenderToFile renders the drawing and writes it to path on the local file
// system. An empty target is inferred from the file extension.
func (d *Drawing) RenderToFile(path, target string) error {
	return d.RenderToFS(afero.NewOsFs(), path, target)
}

// RenderToFS renders the drawing and writes it to path on fs. The file is
// replaced atomically; on any error the previous contents are left intact.
func (d *Drawing) RenderToFS(fs afero.Fs, path, target string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if target == "" {
		t, err := TargetForPath(path)
		if err != nil {
			return err
		}
		target = t
	}
	out, err := d.RenderToString(target)
	if err != nil {
		return err
	}
	return pkgio.WriteFileAtomic(fs, path, []byte(out), 0o644)
}

// TargetForPath infers the render target from the extension of path.
// Backends advertise extensions through [Extensioner]; otherwise an
// extension matches the target of the same name.
func TargetForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", errors.UnknownTargetError(path)
	}
	for _, name := range Targets() {
		b, _ := Lookup(name)
		if e, ok := b.(Extensioner); ok {
			for _, x := range e.Extensions() {
				if strings.EqualFold(x, ext) {
					return name, nil
				}
			}
		}
	}
	if _, err := Lookup(ext[1:]); err == nil {
		return ext[1:], nil
	}
	return "", errors.UnknownTargetError(ext)
}
