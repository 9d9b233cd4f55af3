// Package gocode exports drawings as Go programs that rebuild them with the
// scene package.
//
// The backend registers itself as the "go" target and claims the ".go"
// extension. The output is a complete, gofmt-formatted main package:
//
//	package main
//
//	import (
//		"log"
//
//		_ "github.com/matzehuels/minidraw/pkg/render"
//		"github.com/matzehuels/minidraw/pkg/scene"
//	)
//
//	func main() {
//		d := scene.New(scene.Stroke("black"))
//		d.Line(scene.Pt(10, 10), scene.Pt(100, 60))
//		g1 := d.SubGroup(scene.Fill("red"))
//		g1.Circle(scene.Pt(50, 50), 20)
//
//		if err := d.RenderToFile("output.svg", ""); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// As with the Python export, group frames are baked into absolute
// coordinates and every node carries only its own style. Empty groups are
// created without a variable so the program always compiles.
package gocode
