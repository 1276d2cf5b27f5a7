package mesh

import (
	"math"
	"sort"

	"rigbench/internal/mathutil"
)

type edgeKey struct {
	a, b int
}

type posKey struct {
	x, y, z int64
}

const weldScale = 1e6

func quantize(v mathutil.Vec3) posKey {
	return posKey{
		int64(math.Round(v[0] * weldScale)),
		int64(math.Round(v[1] * weldScale)),
		int64(math.Round(v[2] * weldScale)),
	}
}

// ExtractEdges returns the feature edges of a mesh: boundary edges plus
// edges whose adjacent faces meet at more than thresholdDeg degrees.
// Coincident vertices are welded by position first so meshes with
// per-face vertices still report shared edges.
func ExtractEdges(m *TriMesh, thresholdDeg float64) *LineSet {
	weld := make(map[posKey]int)
	canon := make([]int, len(m.Verts))
	for i, v := range m.Verts {
		k := quantize(v)
		if c, ok := weld[k]; ok {
			canon[i] = c
		} else {
			weld[k] = i
			canon[i] = i
		}
	}

	type edgeInfo struct {
		normals []mathutil.Vec3
	}
	edges := make(map[edgeKey]*edgeInfo)
	for i := range m.Tris {
		n := m.FaceNormal(i)
		t := m.Tris[i]
		for k := 0; k < 3; k++ {
			a := canon[t.V[k]]
			b := canon[t.V[(k+1)%3]]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			key := edgeKey{a, b}
			e := edges[key]
			if e == nil {
				e = &edgeInfo{}
				edges[key] = e
			}
			e.normals = append(e.normals, n)
		}
	}

	minDot := math.Cos(thresholdDeg * math.Pi / 180)
	var keys []edgeKey
	for k, e := range edges {
		if keep(e.normals, minDot) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	out := &LineSet{}
	remap := make(map[int]int)
	use := func(i int) int {
		if j, ok := remap[i]; ok {
			return j
		}
		j := len(out.Verts)
		out.Verts = append(out.Verts, m.Verts[i])
		remap[i] = j
		return j
	}
	for _, k := range keys {
		out.Segs = append(out.Segs, [2]int{use(k.a), use(k.b)})
	}
	return out
}

func keep(normals []mathutil.Vec3, minDot float64) bool {
	if len(normals) < 2 {
		return true // boundary
	}
	for i := 0; i < len(normals); i++ {
		for j := i + 1; j < len(normals); j++ {
			if normals[i].Dot(normals[j]) < minDot {
				return true
			}
		}
	}
	return false
}
