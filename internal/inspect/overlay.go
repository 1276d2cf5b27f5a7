package inspect

import (
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

const wireframeNodeName = "wireframeOverlay"

var wireframeMat = &scene.Material{Name: "wireframe", Color: [3]float64{0.35, 0.85, 0.45}}

// WireframeEnabled reports whether the overlay is active.
func (m *Model) WireframeEnabled() bool { return m.wireframe }

// SetWireframe switches the wireframe overlay. Turning it on extracts
// feature edges at the current threshold and hides the solid meshes;
// turning it off removes every injected line node and puts the meshes
// back exactly as recorded.
func (m *Model) SetWireframe(on bool) {
	if on == m.wireframe {
		return
	}
	if on {
		m.injectWireframe()
	} else {
		m.removeWireframe()
	}
	m.wireframe = on
}

// SetEdgeThreshold updates the edge angle in degrees. An active overlay is
// rebuilt in full at the new threshold.
func (m *Model) SetEdgeThreshold(deg float64) {
	if deg < 1 {
		deg = 1
	}
	if deg > 179 {
		deg = 179
	}
	m.EdgeThreshold = deg
	if m.wireframe {
		m.removeWireframe()
		m.injectWireframe()
	}
}

func (m *Model) injectWireframe() {
	m.stash = make(map[*scene.Node]*mesh.TriMesh)
	for _, p := range m.Parts {
		n := p.Node
		if n.Mesh == nil {
			continue
		}
		lines := mesh.ExtractEdges(n.Mesh, m.EdgeThreshold)
		m.stash[n] = n.Mesh
		n.Mesh = nil

		w := scene.NewNode(wireframeNodeName)
		w.Lines = lines
		w.Mat = wireframeMat
		n.AddChild(w)
		m.injected = append(m.injected, w)
	}
}

func (m *Model) removeWireframe() {
	for _, w := range m.injected {
		w.Detach()
	}
	m.injected = nil
	for n, tm := range m.stash {
		n.Mesh = tm
	}
	m.stash = nil
}
