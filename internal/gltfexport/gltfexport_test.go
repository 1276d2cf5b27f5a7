package gltfexport

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

func exportTree() *scene.Node {
	paint := &scene.Material{Name: "paint", Color: [3]float64{0.9, 0.1, 0.2}}
	root := scene.NewNode("rig")

	cab := scene.NewNode("cab")
	cab.Position = mathutil.Vec3{1, 2, 3}
	cab.Mesh = mesh.NewBox(1, 1, 1)
	cab.Mat = paint
	root.AddChild(cab)

	box := scene.NewNode("box")
	box.Rotation = mathutil.Vec3{0, math.Pi / 2, 0}
	box.Scale = mathutil.Vec3{2, 2, 2}
	box.Mesh = mesh.NewBox(1, 1, 1)
	box.Mat = paint
	cab.AddChild(box)

	frame := scene.NewNode("frame")
	frame.Lines = mesh.NewBoxEdges(2, 2, 2)
	root.AddChild(frame)
	return root
}

func TestBuildDocumentHierarchy(t *testing.T) {
	doc := BuildDocument(exportTree())

	require.Len(t, doc.Nodes, 4)
	require.Len(t, doc.Scenes, 1)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)

	root := doc.Nodes[0]
	assert.Equal(t, "rig", root.Name)
	assert.Equal(t, [3]float64{}, root.Translation)
	assert.Nil(t, root.Mesh)
	require.Len(t, root.Children, 2)

	cab := doc.Nodes[root.Children[0]]
	assert.Equal(t, "cab", cab.Name)
	assert.Equal(t, [3]float64{1, 2, 3}, cab.Translation)
	require.NotNil(t, cab.Mesh)
	require.Len(t, cab.Children, 1)

	box := doc.Nodes[cab.Children[0]]
	assert.Equal(t, [3]float64{2, 2, 2}, box.Scale)
	assert.InDelta(t, 0, box.Rotation[0], 1e-12)
	assert.InDelta(t, math.Sin(math.Pi/4), box.Rotation[1], 1e-12)
	assert.InDelta(t, 0, box.Rotation[2], 1e-12)
	assert.InDelta(t, math.Cos(math.Pi/4), box.Rotation[3], 1e-12)
}

func TestBuildDocumentPrimitives(t *testing.T) {
	doc := BuildDocument(exportTree())

	require.Len(t, doc.Meshes, 3)
	cabMesh := doc.Meshes[0]
	assert.Equal(t, "cab", cabMesh.Name)
	require.Len(t, cabMesh.Primitives, 1)
	prim := cabMesh.Primitives[0]
	assert.Equal(t, gltf.PrimitiveTriangles, prim.Mode)
	assert.Contains(t, prim.Attributes, gltf.POSITION)
	assert.Contains(t, prim.Attributes, gltf.NORMAL)
	assert.NotContains(t, prim.Attributes, gltf.TEXCOORD_0)
	require.NotNil(t, prim.Indices)
	require.NotNil(t, prim.Material)

	var lineMesh *gltf.Mesh
	for _, m := range doc.Meshes {
		if m.Name == "frame" {
			lineMesh = m
		}
	}
	require.NotNil(t, lineMesh)
	require.Len(t, lineMesh.Primitives, 1)
	lp := lineMesh.Primitives[0]
	assert.Equal(t, gltf.PrimitiveLines, lp.Mode)
	assert.Contains(t, lp.Attributes, gltf.POSITION)
	assert.NotContains(t, lp.Attributes, gltf.NORMAL)
}

func TestBuildDocumentMixedNode(t *testing.T) {
	root := scene.NewNode("hull")
	root.Mesh = mesh.NewBox(1, 1, 1)
	root.Lines = mesh.NewBoxEdges(1, 1, 1)

	doc := BuildDocument(root)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 2)
	assert.Equal(t, gltf.PrimitiveTriangles, doc.Meshes[0].Primitives[0].Mode)
	assert.Equal(t, gltf.PrimitiveLines, doc.Meshes[0].Primitives[1].Mode)
}

func TestBuildDocumentUVs(t *testing.T) {
	tm := &mesh.TriMesh{
		Verts: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		UVs:   [][2]float64{{0, 0}, {1, 0}, {0, 1}},
		Tris:  []mesh.Tri{{V: [3]int{0, 1, 2}, N: mesh.NoAttr, T: [3]int{0, 1, 2}}},
	}
	n := scene.NewNode("decal")
	n.Mesh = tm

	doc := BuildDocument(n)
	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[0].Primitives[0]
	assert.Contains(t, prim.Attributes, gltf.TEXCOORD_0)
}

func TestBuildDocumentMaterialInterning(t *testing.T) {
	doc := BuildDocument(exportTree())

	// Two solids share one material; the line set has none and gets the
	// default. Nothing is emitted twice.
	require.Len(t, doc.Materials, 2)
	paint := doc.Materials[0]
	assert.Equal(t, "paint", paint.Name)
	require.NotNil(t, paint.PBRMetallicRoughness)
	require.NotNil(t, paint.PBRMetallicRoughness.BaseColorFactor)
	assert.InDelta(t, 0.9, float64(paint.PBRMetallicRoughness.BaseColorFactor[0]), 1e-6)
	assert.Equal(t, gltf.AlphaOpaque, paint.AlphaMode)

	assert.Equal(t, "default", doc.Materials[1].Name)

	cabPrim := doc.Meshes[0].Primitives[0]
	boxPrim := doc.Meshes[1].Primitives[0]
	assert.Equal(t, *cabPrim.Material, *boxPrim.Material)
}

func TestSaveGLBMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.glb")
	require.NoError(t, Save(BuildDocument(exportTree()), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "glTF", string(data[:4]))
}

func TestSaveGLTFEmbedsBuffers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.gltf")
	require.NoError(t, Save(BuildDocument(exportTree()), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), data[0])
	assert.Contains(t, string(data), "data:application/octet-stream;base64,")
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	err := Save(BuildDocument(exportTree()), filepath.Join(t.TempDir(), "rig.ply"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), ".ply"))
}

func gridMesh(n int) *mesh.TriMesh {
	tm := &mesh.TriMesh{}
	for r := 0; r <= n; r++ {
		for c := 0; c <= n; c++ {
			tm.Verts = append(tm.Verts, mathutil.Vec3{float64(c), 0, float64(r)})
		}
	}
	at := func(r, c int) int { return r*(n+1) + c }
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			tm.Tris = append(tm.Tris,
				mesh.Tri{V: [3]int{at(r, c), at(r, c+1), at(r+1, c+1)}, N: mesh.NoAttr, T: mesh.NoAttr},
				mesh.Tri{V: [3]int{at(r, c), at(r+1, c+1), at(r+1, c)}, N: mesh.NoAttr, T: mesh.NoAttr})
		}
	}
	return tm
}

func TestDecimateReducesGrid(t *testing.T) {
	in := gridMesh(4)
	require.Len(t, in.Tris, 32)

	out := Decimate(in, 0.25)
	require.NotNil(t, out)
	assert.NotSame(t, in, out)
	assert.Less(t, len(out.Tris), len(in.Tris))
	assert.GreaterOrEqual(t, len(out.Tris), 1)
	assert.LessOrEqual(t, len(out.Verts), 3*len(out.Tris))
	for _, tri := range out.Tris {
		assert.Equal(t, mesh.NoAttr, tri.N)
		assert.Equal(t, mesh.NoAttr, tri.T)
	}
}

func TestDecimatePassThrough(t *testing.T) {
	assert.Nil(t, Decimate(nil, 0.5))

	small := mesh.NewBox(1, 1, 1)
	small.Tris = small.Tris[:6]
	assert.Same(t, small, Decimate(small, 0.5))

	full := gridMesh(4)
	assert.Same(t, full, Decimate(full, 1))
	assert.Same(t, full, Decimate(full, 1.5))
}

func TestDecimateTree(t *testing.T) {
	root := scene.NewNode("rig")
	dense := scene.NewNode("deck")
	dense.Mesh = gridMesh(4)
	root.AddChild(dense)
	tiny := scene.NewNode("mirror")
	tiny.Mesh = &mesh.TriMesh{
		Verts: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Tris:  []mesh.Tri{{V: [3]int{0, 1, 2}, N: mesh.NoAttr, T: mesh.NoAttr}},
	}
	root.AddChild(tiny)
	tinyMesh := tiny.Mesh

	DecimateTree(root, 0.25)
	assert.Less(t, len(dense.Mesh.Tris), 32)
	assert.Same(t, tinyMesh, tiny.Mesh)
}
