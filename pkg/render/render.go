package render

import (
	"github.com/matzehuels/minidraw/pkg/render/dot"
	"github.com/matzehuels/minidraw/pkg/render/gocode"
	"github.com/matzehuels/minidraw/pkg/render/python"
	"github.com/matzehuels/minidraw/pkg/render/svg"
)

// Builtin returns the names of the backends shipped with minidraw, sorted.
func Builtin() []string {
	return []string{dot.Target, gocode.Target, python.Target, svg.Target}
}
