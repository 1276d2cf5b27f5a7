// Package gltfexport serializes a scene tree into a glTF document, written
// as binary GLB or JSON glTF by extension.
package gltfexport

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// BuildDocument mirrors the node hierarchy with names and TRS transforms.
// Triangle meshes are de-indexed so every face carries exact flat normals
// when the source mesh has none; line sets become line-mode primitives.
func BuildDocument(root *scene.Node) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "rigbench"
	b := &builder{doc: doc, matIdx: make(map[*scene.Material]uint32)}
	idx := b.node(root)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, idx)
	return doc
}

// Save writes doc to path: .glb gets the binary container, .gltf the JSON
// text form.
func Save(doc *gltf.Document, path string) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		err = gltf.SaveBinary(doc, path)
	case ".gltf":
		// JSON text has no binary chunk; inline the buffers as data URIs.
		for _, b := range doc.Buffers {
			if b.URI == "" {
				b.EmbeddedResource()
			}
		}
		err = gltf.Save(doc, path)
	default:
		return fmt.Errorf("gltfexport: unsupported output extension %q (want .glb or .gltf)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("gltfexport: save %s: %w", path, err)
	}
	return nil
}

type builder struct {
	doc    *gltf.Document
	matIdx map[*scene.Material]uint32
}

func (b *builder) node(n *scene.Node) uint32 {
	gn := &gltf.Node{Name: n.Name}
	if n.Position != (mathutil.Vec3{}) {
		gn.Translation = [3]float64{n.Position[0], n.Position[1], n.Position[2]}
	}
	if n.Rotation != (mathutil.Vec3{}) {
		q := mathutil.EulerToQuat(n.Rotation[0], n.Rotation[1], n.Rotation[2])
		gn.Rotation = [4]float64{q[0], q[1], q[2], q[3]}
	}
	if n.Scale != (mathutil.Vec3{1, 1, 1}) && n.Scale != (mathutil.Vec3{}) {
		gn.Scale = [3]float64{n.Scale[0], n.Scale[1], n.Scale[2]}
	}

	var prims []*gltf.Primitive
	if n.Mesh != nil && len(n.Mesh.Tris) > 0 {
		prims = append(prims, b.triPrimitive(n.Mesh, n.Mat))
	}
	if n.Lines != nil && len(n.Lines.Segs) > 0 {
		prims = append(prims, b.linePrimitive(n.Lines, n.Mat))
	}
	if len(prims) > 0 {
		b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{Name: n.Name, Primitives: prims})
		gn.Mesh = gltf.Index(uint32(len(b.doc.Meshes) - 1))
	}

	b.doc.Nodes = append(b.doc.Nodes, gn)
	idx := uint32(len(b.doc.Nodes) - 1)
	for _, c := range n.Children {
		ci := b.node(c)
		b.doc.Nodes[idx].Children = append(b.doc.Nodes[idx].Children, ci)
	}
	return idx
}

func (b *builder) triPrimitive(m *mesh.TriMesh, mat *scene.Material) *gltf.Primitive {
	hasUV := false
	for _, t := range m.Tris {
		if t.T[0] >= 0 {
			hasUV = true
			break
		}
	}

	nc := len(m.Tris) * 3
	positions := make([][3]float32, 0, nc)
	normals := make([][3]float32, 0, nc)
	var uvs [][2]float32
	if hasUV {
		uvs = make([][2]float32, 0, nc)
	}
	indices := make([]uint32, 0, nc)

	for i := range m.Tris {
		t := m.Tris[i]
		fn := m.FaceNormal(i)
		for k := 0; k < 3; k++ {
			v := m.Verts[t.V[k]]
			positions = append(positions, [3]float32{float32(v[0]), float32(v[1]), float32(v[2])})
			nrm := fn
			if t.N[k] >= 0 && t.N[k] < len(m.Normals) {
				nrm = m.Normals[t.N[k]]
			}
			normals = append(normals, [3]float32{float32(nrm[0]), float32(nrm[1]), float32(nrm[2])})
			if hasUV {
				var uv [2]float64
				if t.T[k] >= 0 && t.T[k] < len(m.UVs) {
					uv = m.UVs[t.T[k]]
				}
				uvs = append(uvs, [2]float32{float32(uv[0]), float32(uv[1])})
			}
			indices = append(indices, uint32(len(indices)))
		}
	}

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: modeler.WritePosition(b.doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(b.doc, normals),
		},
		Indices:  gltf.Index(modeler.WriteIndices(b.doc, indices)),
		Material: gltf.Index(b.material(mat)),
	}
	if hasUV {
		prim.Attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(b.doc, uvs)
	}
	return prim
}

func (b *builder) linePrimitive(l *mesh.LineSet, mat *scene.Material) *gltf.Primitive {
	positions := make([][3]float32, len(l.Verts))
	for i, v := range l.Verts {
		positions[i] = [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
	}
	indices := make([]uint32, 0, len(l.Segs)*2)
	for _, s := range l.Segs {
		indices = append(indices, uint32(s[0]), uint32(s[1]))
	}
	return &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: modeler.WritePosition(b.doc, positions),
		},
		Indices:  gltf.Index(modeler.WriteIndices(b.doc, indices)),
		Material: gltf.Index(b.material(mat)),
		Mode:     gltf.PrimitiveLines,
	}
}

// material interns one glTF material per scene material: base color with
// metallic 0, roughness 1.
func (b *builder) material(mat *scene.Material) uint32 {
	if idx, ok := b.matIdx[mat]; ok {
		return idx
	}
	name := "default"
	color := [4]float32{0.63, 0.63, 0.67, 1}
	if mat != nil {
		name = mat.Name
		color = [4]float32{float32(mat.Color[0]), float32(mat.Color[1]), float32(mat.Color[2]), 1}
	}
	gm := &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		AlphaMode: gltf.AlphaOpaque,
	}
	b.doc.Materials = append(b.doc.Materials, gm)
	idx := uint32(len(b.doc.Materials) - 1)
	b.matIdx[mat] = idx
	return idx
}
