package mesh

import (
	"math"

	"rigbench/internal/mathutil"
)

// boxCorners orders the eight corners of a w*h*d box centered at the origin:
// bits 0..2 select +x, +y, +z.
func boxCorners(w, h, d float64) []mathutil.Vec3 {
	x, y, z := w/2, h/2, d/2
	return []mathutil.Vec3{
		{-x, -y, -z},
		{+x, -y, -z},
		{+x, +y, -z},
		{-x, +y, -z},
		{-x, -y, +z},
		{+x, -y, +z},
		{+x, +y, +z},
		{-x, +y, +z},
	}
}

// boxFaces lists the 12 triangles of a box with outward winding,
// indexing boxCorners.
var boxFaces = [12][3]int{
	{4, 5, 6}, {4, 6, 7}, // +z
	{1, 0, 3}, {1, 3, 2}, // -z
	{0, 4, 7}, {0, 7, 3}, // -x
	{5, 1, 2}, {5, 2, 6}, // +x
	{7, 6, 2}, {7, 2, 3}, // +y
	{0, 1, 5}, {0, 5, 4}, // -y
}

// boxEdges lists the 12 edges of a box, indexing boxCorners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// NewBox builds a solid box centered at the origin with the given
// width (x), height (y) and depth (z).
func NewBox(w, h, d float64) *TriMesh {
	m := &TriMesh{Verts: boxCorners(w, h, d)}
	for _, f := range boxFaces {
		m.Tris = append(m.Tris, Tri{V: f, N: NoAttr, T: NoAttr})
	}
	return m
}

// NewBoxEdges builds the 12-edge outline of a box centered at the origin.
func NewBoxEdges(w, h, d float64) *LineSet {
	l := &LineSet{Verts: boxCorners(w, h, d)}
	l.Segs = append(l.Segs, boxEdges[:]...)
	return l
}

// NewCylinder builds a closed cylinder around the y axis, centered at the
// origin, with seg side facets. seg must be at least 3.
func NewCylinder(radius, height float64, seg int) *TriMesh {
	m := &TriMesh{}
	h := height / 2
	// Ring vertices: bottom ring at 2i, top ring at 2i+1.
	for i := 0; i < seg; i++ {
		a := 2 * math.Pi * float64(i) / float64(seg)
		x, z := radius*math.Cos(a), radius*math.Sin(a)
		m.Verts = append(m.Verts, mathutil.Vec3{x, -h, z}, mathutil.Vec3{x, +h, z})
	}
	cb := len(m.Verts)
	m.Verts = append(m.Verts, mathutil.Vec3{0, -h, 0}, mathutil.Vec3{0, +h, 0})
	ct := cb + 1
	for i := 0; i < seg; i++ {
		j := (i + 1) % seg
		b0, t0 := 2*i, 2*i+1
		b1, t1 := 2*j, 2*j+1
		m.Tris = append(m.Tris,
			Tri{V: [3]int{b0, t1, b1}, N: NoAttr, T: NoAttr},
			Tri{V: [3]int{b0, t0, t1}, N: NoAttr, T: NoAttr},
			Tri{V: [3]int{ct, t1, t0}, N: NoAttr, T: NoAttr},
			Tri{V: [3]int{cb, b0, b1}, N: NoAttr, T: NoAttr},
		)
	}
	return m
}
