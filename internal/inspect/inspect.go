// Package inspect wraps a loaded model with the viewer's working state:
// ground centering, wheel tagging, part list, statistics, wireframe and
// reference overlays, and material swaps.
package inspect

import (
	"strings"

	"rigbench/internal/assets"
	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// WheelWords are the case-insensitive substrings that tag a part as a
// wheel. The list is inherited as-is, French included.
var WheelWords = []string{"wheel", "tire", "rim", "roue"}

// IsWheelName reports whether a node name looks like a wheel.
func IsWheelName(name string) bool {
	l := strings.ToLower(name)
	for _, w := range WheelWords {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

// Part is one toggleable entry of the flat parts list.
type Part struct {
	ID    int
	Name  string
	Node  *scene.Node
	Wheel bool
	Tris  int
}

// Stats holds the traversal counts shown by the inspector.
type Stats struct {
	Nodes     int
	Meshes    int
	Tris      int
	Verts     int
	Materials int
}

// Model is an inspected asset.
type Model struct {
	Root  *scene.Node
	Parts []*Part
	Stats Stats

	EdgeThreshold float64 // degrees, wireframe rebuild threshold

	original  map[*scene.Node]*scene.Material
	stash     map[*scene.Node]*mesh.TriMesh // solids hidden by the wireframe overlay
	injected  []*scene.Node                 // overlay line nodes
	wireframe bool
	flat      bool
}

// Open loads path and attaches the inspection state.
func Open(path string) (*Model, error) {
	root, err := assets.Load(path)
	if err != nil {
		return nil, err
	}
	return Attach(root), nil
}

// Attach takes ownership of a loaded tree: centers it on the ground plane,
// records the original materials, tags wheels, and derives parts and stats.
func Attach(root *scene.Node) *Model {
	m := &Model{
		Root:          root,
		EdgeThreshold: 30,
		original:      make(map[*scene.Node]*scene.Material),
	}
	m.centerOnGround()
	m.rebuildIndex()
	return m
}

// centerOnGround shifts the root so the model rests on y=0 centered in x/z.
func (m *Model) centerOnGround() {
	b := scene.Bounds(m.Root)
	if b.IsEmpty() {
		return
	}
	c := b.Center()
	m.Root.Position = m.Root.Position.Add(mathutil.Vec3{-c[0], -b.Min[1], -c[2]})
}

// rebuildIndex derives the parts list and statistics and records original
// materials. Called once at attach; re-loads replace the whole Model.
func (m *Model) rebuildIndex() {
	m.Parts = m.Parts[:0]
	m.Stats = Stats{}
	seenMat := make(map[*scene.Material]bool)

	scene.Walk(m.Root, func(n *scene.Node, _ mathutil.Mat4) {
		m.Stats.Nodes++
		if n.Mesh == nil {
			return
		}
		m.Stats.Meshes++
		m.Stats.Tris += len(n.Mesh.Tris)
		m.Stats.Verts += len(n.Mesh.Verts)
		if n.Mat != nil && !seenMat[n.Mat] {
			seenMat[n.Mat] = true
			m.Stats.Materials++
		}
		m.original[n] = n.Mat
		p := &Part{
			ID:    len(m.Parts),
			Name:  n.Name,
			Node:  n,
			Wheel: IsWheelName(n.Name),
			Tris:  len(n.Mesh.Tris),
		}
		m.Parts = append(m.Parts, p)
	})
}

// TogglePart flips one part's visibility. Unknown IDs are ignored.
func (m *Model) TogglePart(id int) {
	if id < 0 || id >= len(m.Parts) {
		return
	}
	p := m.Parts[id]
	p.Node.Visible = !p.Node.Visible
}

// Wheels returns the tagged wheel parts.
func (m *Model) Wheels() []*Part {
	var out []*Part
	for _, p := range m.Parts {
		if p.Wheel {
			out = append(out, p)
		}
	}
	return out
}

// SpinWheels rolls the tagged wheel parts about their local x axis, the
// same absolute-time convention the rig animator uses.
func (m *Model) SpinWheels(t, speed float64) {
	for _, p := range m.Parts {
		if p.Wheel {
			p.Node.Rotation[0] = -t * speed
		}
	}
}

// Bounds returns the model's current world bounds.
func (m *Model) Bounds() mathutil.Box {
	return scene.Bounds(m.Root)
}
