package assets

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// LoadGLTF reads a .glb or .gltf file into a scene tree. The node hierarchy
// and TRS transforms carry over; only triangle primitives become meshes,
// other modes are skipped.
func LoadGLTF(path string) (*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}

	mats := make([]*scene.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		m := &scene.Material{Name: gm.Name, Color: [3]float64{0.63, 0.63, 0.67}}
		if gm.PBRMetallicRoughness != nil && gm.PBRMetallicRoughness.BaseColorFactor != nil {
			f := gm.PBRMetallicRoughness.BaseColorFactor
			m.Color = [3]float64{float64(f[0]), float64(f[1]), float64(f[2])}
		}
		mats[i] = m
	}

	conv := &gltfConverter{doc: doc, mats: mats}
	root := scene.NewNode(baseName(path))
	for _, idx := range rootNodes(doc) {
		n, err := conv.node(idx)
		if err != nil {
			return nil, err
		}
		root.AddChild(n)
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("assets: %s: no renderable nodes", path)
	}
	return root, nil
}

// rootNodes returns the default scene's roots, falling back to every node
// that no other node claims as a child.
func rootNodes(doc *gltf.Document) []uint32 {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	child := make(map[uint32]bool)
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			child[c] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !child[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

type gltfConverter struct {
	doc  *gltf.Document
	mats []*scene.Material
}

func (c *gltfConverter) node(idx uint32) (*scene.Node, error) {
	if int(idx) >= len(c.doc.Nodes) {
		return nil, fmt.Errorf("assets: node index %d out of range", idx)
	}
	gn := c.doc.Nodes[idx]
	n := scene.NewNode(gn.Name)
	applyTransform(n, gn)

	if gn.Mesh != nil && int(*gn.Mesh) < len(c.doc.Meshes) {
		if err := c.attachMesh(n, *gn.Mesh); err != nil {
			return nil, err
		}
	}
	for _, ci := range gn.Children {
		child, err := c.node(ci)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// applyTransform copies the node transform, decomposing a baked matrix when
// present. Zero values mean "unset" on the wire, so they map back to the
// defaults.
func applyTransform(n *scene.Node, gn *gltf.Node) {
	if gn.Matrix != ([16]float64{}) {
		// glTF matrices are column-major.
		var m mathutil.Mat4
		for r := 0; r < 4; r++ {
			for col := 0; col < 4; col++ {
				m[r*4+col] = gn.Matrix[col*4+r]
			}
		}
		n.Position, n.Rotation, n.Scale = m.DecomposeTRS()
		return
	}
	n.Position = mathutil.Vec3{gn.Translation[0], gn.Translation[1], gn.Translation[2]}
	if gn.Rotation != ([4]float64{}) {
		q := mathutil.Quat{gn.Rotation[0], gn.Rotation[1], gn.Rotation[2], gn.Rotation[3]}
		n.Rotation = mathutil.EulerFromMat3(mathutil.QuatToMat3(q))
	}
	if gn.Scale != ([3]float64{}) {
		n.Scale = mathutil.Vec3{gn.Scale[0], gn.Scale[1], gn.Scale[2]}
	}
}

// attachMesh converts a glTF mesh. A single triangle primitive lands on the
// node itself, extra primitives become child nodes.
func (c *gltfConverter) attachMesh(n *scene.Node, mi uint32) error {
	gm := c.doc.Meshes[mi]
	first := true
	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		tm, mat, err := c.primitive(prim)
		if err != nil {
			return fmt.Errorf("assets: mesh %q primitive %d: %w", gm.Name, pi, err)
		}
		if first {
			n.Mesh = tm
			n.Mat = mat
			first = false
			continue
		}
		child := scene.NewNode(fmt.Sprintf("%s_prim%d", gm.Name, pi))
		child.Mesh = tm
		child.Mat = mat
		n.AddChild(child)
	}
	return nil
}

func (c *gltfConverter) primitive(prim *gltf.Primitive) (*mesh.TriMesh, *scene.Material, error) {
	doc := c.doc
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil, fmt.Errorf("no positions")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, nil, err
	}

	var normals [][3]float32
	if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[ni], nil)
	}
	var texCoords [][2]float32
	if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		texCoords, _ = modeler.ReadTextureCoord(doc, doc.Accessors[ti], nil)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, nil, err
		}
	} else {
		indices = make([]uint32, len(positions))
		for k := range indices {
			indices[k] = uint32(k)
		}
	}

	tm := &mesh.TriMesh{}
	tm.Verts = make([]mathutil.Vec3, len(positions))
	for i, p := range positions {
		tm.Verts[i] = mathutil.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
	}
	if len(normals) == len(positions) {
		tm.Normals = make([]mathutil.Vec3, len(normals))
		for i, nn := range normals {
			tm.Normals[i] = mathutil.Vec3{float64(nn[0]), float64(nn[1]), float64(nn[2])}
		}
	}
	if len(texCoords) == len(positions) {
		tm.UVs = make([][2]float64, len(texCoords))
		for i, uv := range texCoords {
			tm.UVs[i] = [2]float64{float64(uv[0]), float64(uv[1])}
		}
	}

	hasN, hasT := tm.Normals != nil, tm.UVs != nil
	for i := 0; i+2 < len(indices); i += 3 {
		t := mesh.Tri{N: mesh.NoAttr, T: mesh.NoAttr}
		for k := 0; k < 3; k++ {
			v := int(indices[i+k])
			if v >= len(tm.Verts) {
				return nil, nil, fmt.Errorf("index %d out of range", v)
			}
			t.V[k] = v
			if hasN {
				t.N[k] = v
			}
			if hasT {
				t.T[k] = v
			}
		}
		tm.Tris = append(tm.Tris, t)
	}

	var mat *scene.Material
	if prim.Material != nil && int(*prim.Material) < len(c.mats) {
		mat = c.mats[*prim.Material]
	}
	return tm, mat, nil
}
