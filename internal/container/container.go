// Package container builds the corrugated shipping-container hierarchy used
// as the truck's trailer and as the canonical size reference for imported
// models.
package container

import (
	"fmt"
	"math"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// Canonical exterior dimensions. Everything that compares an imported model
// against the trailer uses these.
const (
	Width  = 5.2
	Height = 7.8
	Length = 26.0
)

const (
	corrWidth  = 1.0  // corrugation pitch along the length
	corrDepth  = 0.5  // strip extent along the length
	corrThick  = 0.08 // strip extent out from the wall
	postSize   = 0.3
	railHeight = 0.3
	railThick  = 0.25
	doorThick  = 0.12
	doorGap    = 0.1
	pinSeg     = 8
	barSeg     = 10
)

// Build assembles the container under a single root whose origin sits at the
// bottom center. panel is used for the walls, doors and plates, frame for
// posts, rails and hardware. The result is deterministic and fully owned by
// the caller; only the two materials are shared.
func Build(panel, frame *scene.Material) *scene.Node {
	root := scene.NewNode("container")

	body := boxNode("body", panel, Width, Height, Length)
	body.Position = mathutil.Vec3{0, Height / 2, 0}
	root.AddChild(body)

	addSideCorrugations(root, panel)
	addCornerPosts(root, frame)
	addRails(root, frame)
	addDoors(root, panel, frame)
	addHinges(root, frame)
	addRoofBeams(root, frame)
	addPlates(root, panel)

	return root
}

// addSideCorrugations places floor(Length/corrWidth) vertical strips on each
// long side, slightly proud of the wall.
func addSideCorrugations(root *scene.Node, panel *scene.Material) {
	n := int(math.Floor(Length / corrWidth))
	h := Height - 2*railHeight
	for side, sx := range []float64{-1, 1} {
		for i := 0; i < n; i++ {
			z := -Length/2 + corrWidth*(float64(i)+0.5)
			c := boxNode(fmt.Sprintf("corrugation%d_%d", side, i), panel, corrThick, h, corrDepth)
			c.Position = mathutil.Vec3{sx * (Width/2 + corrThick/2), Height / 2, z}
			root.AddChild(c)
		}
	}
}

func addCornerPosts(root *scene.Node, frame *scene.Material) {
	i := 0
	for _, sx := range []float64{-1, 1} {
		for _, sz := range []float64{-1, 1} {
			p := boxNode(fmt.Sprintf("cornerPost%d", i), frame, postSize, Height, postSize)
			p.Position = mathutil.Vec3{sx * (Width/2 - postSize/2), Height / 2, sz * (Length/2 - postSize/2)}
			e := scene.NewNode("cornerPostEdges")
			e.Lines = mesh.NewBoxEdges(postSize+0.04, Height+0.04, postSize+0.04)
			e.Mat = frame
			p.AddChild(e)
			root.AddChild(p)
			i++
		}
	}
}

// addRails runs a bottom and a top reinforcement beam along both long sides.
func addRails(root *scene.Node, frame *scene.Material) {
	heights := []float64{railHeight / 2, Height - railHeight/2}
	i := 0
	for _, sx := range []float64{-1, 1} {
		for _, y := range heights {
			r := boxNode(fmt.Sprintf("rail%d", i), frame, railThick, railHeight, Length)
			r.Position = mathutil.Vec3{sx * (Width/2 + railThick/2), y, 0}
			root.AddChild(r)
			i++
		}
	}
}

// addDoors builds the rear double doors. Hardware that travels with a leaf
// (corrugations, locking bars, handle, cam locks) is parented under it.
func addDoors(root *scene.Node, panel, frame *scene.Material) {
	doorW := Width/2 - doorGap
	doorH := Height - 0.4

	for side, sx := range []float64{-1, 1} {
		leaf := boxNode(fmt.Sprintf("doorLeaf%d", side), panel, doorW, doorH, doorThick)
		leaf.Position = mathutil.Vec3{sx * (doorW/2 + doorGap/2), Height / 2, Length/2 + doorThick/2}
		root.AddChild(leaf)

		for i := 0; i < 3; i++ {
			x := -doorW/2 + doorW*(float64(i)+0.5)/3
			c := boxNode(fmt.Sprintf("doorCorrugation%d", i), panel, 0.35, doorH-0.5, corrThick)
			c.Position = mathutil.Vec3{x, 0, doorThick/2 + corrThick/2}
			leaf.AddChild(c)
		}

		for i, bx := range []float64{-doorW / 4, doorW / 4} {
			bar := cylNode(fmt.Sprintf("lockBar%d", i), frame, 0.06, doorH-0.5, barSeg)
			bar.Position = mathutil.Vec3{bx, 0, doorThick/2 + 0.12}
			leaf.AddChild(bar)

			for j, by := range []float64{doorH/2 - 0.4, -doorH/2 + 0.4} {
				cl := boxNode(fmt.Sprintf("camLock%d_%d", i, j), frame, 0.14, 0.18, 0.14)
				cl.Position = mathutil.Vec3{bx, by, doorThick/2 + 0.12}
				leaf.AddChild(cl)
			}
		}

		handle := cylNode("doorHandle", frame, 0.04, 0.5, barSeg)
		handle.Rotation = mathutil.Vec3{0, 0, math.Pi / 2}
		handle.Position = mathutil.Vec3{-sx * doorW / 8, -doorH * 0.05, doorThick/2 + 0.2}
		leaf.AddChild(handle)
		for i, bx := range []float64{-0.2, 0.2} {
			b := boxNode(fmt.Sprintf("handleBracket%d", i), frame, 0.08, 0.1, 0.16)
			b.Position = mathutil.Vec3{-sx*doorW/8 + bx, -doorH * 0.05, doorThick/2 + 0.12}
			leaf.AddChild(b)
		}
	}

	// Horizontal bar and center lock span the door gap on the container.
	hbar := cylNode("lockBarHorizontal", frame, 0.05, Width-0.5, barSeg)
	hbar.Rotation = mathutil.Vec3{0, 0, math.Pi / 2}
	hbar.Position = mathutil.Vec3{0, Height * 0.55, Length/2 + doorThick + 0.12}
	root.AddChild(hbar)

	center := boxNode("centerLock", frame, 0.2, 0.6, 0.16)
	center.Position = mathutil.Vec3{0, Height * 0.5, Length/2 + doorThick + 0.08}
	root.AddChild(center)
}

// addHinges mounts four bracket+pin hinges per door side on the rear posts.
func addHinges(root *scene.Node, frame *scene.Material) {
	for side, sx := range []float64{-1, 1} {
		for i := 0; i < 4; i++ {
			y := Height * float64(i+1) / 5
			h := boxNode(fmt.Sprintf("hinge%d_%d", side, i), frame, 0.18, 0.3, 0.1)
			h.Position = mathutil.Vec3{sx * (Width/2 - 0.1), y, Length/2 + 0.05}
			pin := cylNode("hingePin", frame, 0.045, 0.38, pinSeg)
			pin.Position = mathutil.Vec3{0, 0, 0.06}
			h.AddChild(pin)
			root.AddChild(h)
		}
	}
}

func addRoofBeams(root *scene.Node, frame *scene.Material) {
	for i := 0; i < 5; i++ {
		z := -Length/2 + Length*float64(i+1)/6
		b := boxNode(fmt.Sprintf("roofBeam%d", i), frame, Width-postSize, 0.1, railThick)
		b.Position = mathutil.Vec3{0, Height + 0.05, z}
		root.AddChild(b)
	}
}

// addPlates mounts the identification plates: one on the front wall, one on
// each long side near the rear.
func addPlates(root *scene.Node, panel *scene.Material) {
	front := boxNode("idPlateFront", panel, 1.8, 0.9, 0.05)
	front.Position = mathutil.Vec3{0, Height * 0.7, -Length/2 - 0.03}
	root.AddChild(front)

	for side, sx := range []float64{-1, 1} {
		p := boxNode(fmt.Sprintf("idPlateSide%d", side), panel, 0.05, 0.8, 1.6)
		p.Position = mathutil.Vec3{sx * (Width/2 + corrThick + 0.03), Height * 0.75, Length/2 - 2.5}
		root.AddChild(p)
	}
}

func boxNode(name string, mat *scene.Material, w, h, d float64) *scene.Node {
	n := scene.NewNode(name)
	n.Mesh = mesh.NewBox(w, h, d)
	n.Mat = mat
	return n
}

func cylNode(name string, mat *scene.Material, r, h float64, seg int) *scene.Node {
	n := scene.NewNode(name)
	n.Mesh = mesh.NewCylinder(r, h, seg)
	n.Mat = mat
	return n
}
