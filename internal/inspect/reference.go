package inspect

import (
	"rigbench/internal/container"
	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// Reference scale clamps, matching the manual stepper's range.
const (
	RefScaleMin = 0.1
	RefScaleMax = 5.0
)

var referenceMat = &scene.Material{Name: "reference", Color: [3]float64{0.9, 0.75, 0.2}}

// RefOverlay is the canonical trailer wireframe rendered next to an
// imported model for dimensional comparison.
type RefOverlay struct {
	Node  *scene.Node
	scale float64
}

// NewRefOverlay builds the overlay at the origin, resting on the ground
// plane, hidden until enabled.
func NewRefOverlay() *RefOverlay {
	root := scene.NewNode("reference")
	root.Visible = false

	edges := scene.NewNode("referenceEdges")
	edges.Lines = mesh.NewBoxEdges(container.Width, container.Height, container.Length)
	edges.Mat = referenceMat
	edges.Position = mathutil.Vec3{0, container.Height / 2, 0}
	root.AddChild(edges)

	return &RefOverlay{Node: root, scale: 1}
}

// Scale returns the current uniform scale.
func (r *RefOverlay) Scale() float64 { return r.scale }

// SetScale applies a uniform scale, clamped to the stepper range.
func (r *RefOverlay) SetScale(s float64) {
	if s < RefScaleMin {
		s = RefScaleMin
	}
	if s > RefScaleMax {
		s = RefScaleMax
	}
	r.scale = s
	r.Node.Scale = mathutil.Vec3{s, s, s}
}

// Nudge moves the overlay by d in world units.
func (r *RefOverlay) Nudge(d mathutil.Vec3) {
	r.Node.Position = r.Node.Position.Add(d)
}

// AutoAlignScale computes the one-shot comparison scale for a model box:
// the arithmetic mean of the per-axis size ratios against the canonical
// trailer dimensions.
func AutoAlignScale(b mathutil.Box) float64 {
	size := b.Size()
	return (size[0]/container.Width + size[1]/container.Height + size[2]/container.Length) / 3
}

// AutoAlign drops the overlay at the model's ground center with the exact
// computed scale. Only the manual stepper clamps; the one-shot result is
// reported as-is even outside the stepper range.
func (r *RefOverlay) AutoAlign(m *Model) {
	b := m.Bounds()
	if b.IsEmpty() {
		return
	}
	s := AutoAlignScale(b)
	r.scale = s
	r.Node.Scale = mathutil.Vec3{s, s, s}
	c := b.Center()
	r.Node.Position = mathutil.Vec3{c[0], b.Min[1], c[2]}
	r.Node.Visible = true
}
