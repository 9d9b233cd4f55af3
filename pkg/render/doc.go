// Package render links every built-in minidraw backend into a program.
//
// # Overview
//
// Backends register themselves with the scene registry from their init
// functions. Importing this package, usually for side effects only, makes
// all of them available:
//
//	import _ "github.com/matzehuels/minidraw/pkg/render"
//
//	svg, err := d.RenderToString("svg")
//	err = d.RenderToFile("scene.py", "") // target inferred from ".py"
//
// # Targets
//
//   - svg: flattened SVG document ([svg])
//   - python: Python program for the minidraw Python API ([python])
//   - go: Go program using the scene package ([gocode])
//   - dot: Graphviz digraph of the scene tree ([dot])
//
// [Builtin] lists these names; [scene.Targets] also includes backends
// registered by the program itself.
package render
