package gltfexport

import (
	"github.com/fogleman/simplify"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// Decimate reduces a triangle mesh to roughly factor of its face count via
// quadric edge collapse. Texture coordinates and authored normals do not
// survive collapse; the exporter regenerates flat normals on write.
func Decimate(m *mesh.TriMesh, factor float64) *mesh.TriMesh {
	if m == nil || factor >= 1 || len(m.Tris) < 8 {
		return m
	}
	if factor <= 0 {
		factor = 0.01
	}

	tris := make([]*simplify.Triangle, 0, len(m.Tris))
	for _, t := range m.Tris {
		a, b, c := m.Verts[t.V[0]], m.Verts[t.V[1]], m.Verts[t.V[2]]
		tris = append(tris, simplify.NewTriangle(
			simplify.Vector{X: a[0], Y: a[1], Z: a[2]},
			simplify.Vector{X: b[0], Y: b[1], Z: b[2]},
			simplify.Vector{X: c[0], Y: c[1], Z: c[2]},
		))
	}
	out := simplify.NewMesh(tris).Simplify(factor)

	res := &mesh.TriMesh{}
	seen := make(map[mathutil.Vec3]int)
	index := func(v simplify.Vector) int {
		p := mathutil.Vec3{v.X, v.Y, v.Z}
		if i, ok := seen[p]; ok {
			return i
		}
		i := len(res.Verts)
		res.Verts = append(res.Verts, p)
		seen[p] = i
		return i
	}
	for _, t := range out.Triangles {
		res.Tris = append(res.Tris, mesh.Tri{
			V: [3]int{index(t.V1), index(t.V2), index(t.V3)},
			N: mesh.NoAttr,
			T: mesh.NoAttr,
		})
	}
	return res
}

// DecimateTree applies Decimate to every mesh under root in place. Line
// sets pass through untouched.
func DecimateTree(root *scene.Node, factor float64) {
	scene.Walk(root, func(n *scene.Node, _ mathutil.Mat4) {
		if n.Mesh != nil {
			n.Mesh = Decimate(n.Mesh, factor)
		}
	})
}
