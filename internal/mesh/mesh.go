package mesh

import (
	"rigbench/internal/mathutil"
)

// Tri holds index triples into the vertex/normal/texcoord arrays.
// Normal and texcoord indices are -1 when the mesh carries none.
type Tri struct {
	V [3]int
	N [3]int
	T [3]int
}

// TriMesh is an indexed triangle mesh. Normals and UVs are optional;
// renderers derive flat face normals when Normals is empty.
type TriMesh struct {
	Verts   []mathutil.Vec3
	Normals []mathutil.Vec3
	UVs     [][2]float64
	Tris    []Tri
}

// NoAttr marks an absent normal/texcoord index triple.
var NoAttr = [3]int{-1, -1, -1}

// FaceNormal returns the unit normal of triangle i from its winding.
func (m *TriMesh) FaceNormal(i int) mathutil.Vec3 {
	t := m.Tris[i]
	a, b, c := m.Verts[t.V[0]], m.Verts[t.V[1]], m.Verts[t.V[2]]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// BoundingBox returns the axis-aligned box around all vertices.
func (m *TriMesh) BoundingBox() mathutil.Box {
	b := mathutil.EmptyBox()
	for _, v := range m.Verts {
		b = b.Extend(v)
	}
	return b
}

// Transformed returns a copy with positions (and normals, if present)
// transformed by mat. Normals use the rotation part only and are re-normalized,
// which is exact for the rigid and uniform-scale transforms used here.
func (m *TriMesh) Transformed(mat mathutil.Mat4) *TriMesh {
	out := &TriMesh{
		Verts:   make([]mathutil.Vec3, len(m.Verts)),
		Normals: make([]mathutil.Vec3, len(m.Normals)),
		UVs:     m.UVs,
		Tris:    m.Tris,
	}
	for i, v := range m.Verts {
		out.Verts[i] = mat.MulPoint(v)
	}
	for i, n := range m.Normals {
		out.Normals[i] = mat.MulDir(n).Normalize()
	}
	return out
}

// LineSet is an indexed segment list used for edge outlines and overlays.
type LineSet struct {
	Verts []mathutil.Vec3
	Segs  [][2]int
}

// BoundingBox returns the axis-aligned box around all endpoints.
func (l *LineSet) BoundingBox() mathutil.Box {
	b := mathutil.EmptyBox()
	for _, v := range l.Verts {
		b = b.Extend(v)
	}
	return b
}

// Transformed returns a copy with endpoints transformed by mat.
func (l *LineSet) Transformed(mat mathutil.Mat4) *LineSet {
	out := &LineSet{
		Verts: make([]mathutil.Vec3, len(l.Verts)),
		Segs:  l.Segs,
	}
	for i, v := range l.Verts {
		out.Verts[i] = mat.MulPoint(v)
	}
	return out
}
