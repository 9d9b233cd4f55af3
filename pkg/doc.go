// Package pkg provides the libraries behind minidraw, an in-memory 2D vector
// scene model with pluggable exporters.
//
// # Overview
//
// Scenes are trees of primitives and groups. Transforms mutate geometry in
// place, styles inherit down the tree, and backends turn the finished scene
// into text. The pkg directory is organized as follows:
//
//  1. [scene] - Points, affine transforms, styles, primitives, groups and the
//     backend registry
//  2. [render] - The built-in backends: svg, python, go and dot
//  3. [scenefile] - Declarative scene documents in TOML, YAML or JSON
//  4. [cache] - Content-addressed cache for rendered artifacts
//  5. [errors], [io], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Scene document or Go code
//	         ↓
//	    [scene] package (build, transform, style)
//	         ↓
//	    [scene.Walk] (resolve frames and effective styles)
//	         ↓
//	    Backend from the registry
//	         ↓
//	    SVG, Python, Go or DOT text
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/minidraw/pkg/scene"
//	    _ "github.com/matzehuels/minidraw/pkg/render"
//	)
//
//	d := scene.New(scene.Stroke("black"))
//	d.Line(scene.Pt(10, 10), scene.Pt(100, 60))
//	g := d.SubGroup(scene.Fill("red"))
//	g.Circle(scene.Pt(50, 50), 20)
//	g.Rotate(15)
//
//	if err := d.RenderToFile("logo.svg", ""); err != nil {
//	    log.Fatal(err)
//	}
//
// Library packages never log. They report progress through [observability]
// hooks, which the minidraw CLI forwards to its logger.
package pkg
