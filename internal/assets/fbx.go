package assets

import (
	"fmt"

	"github.com/binzume/modelconv/fbx"
	"github.com/binzume/modelconv/geom"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// LoadFBX reads an FBX file into a scene tree. Model transforms are baked
// into the vertices during the walk, so the returned nodes carry identity
// transforms; part names survive for tagging and visibility toggles.
func LoadFBX(path string) (*scene.Node, error) {
	doc, err := fbx.Load(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}

	root := scene.NewNode(baseName(path))
	if doc.Scene != nil {
		for _, child := range doc.Scene.GetChildren() {
			root.AddChild(convertFBXModel(child, geom.NewMatrix4()))
		}
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("assets: %s: no renderable nodes", path)
	}
	return root, nil
}

func convertFBXModel(m *fbx.Model, parent *geom.Matrix4) *scene.Node {
	n := scene.NewNode(m.Name())
	world := parent.Mul(m.GetMatrix())
	if g := m.GetGeometry(); g != nil {
		n.Mesh = convertFBXGeometry(g, world)
		n.Mat = fbxMaterial(m)
	}
	for _, c := range m.GetChildren() {
		n.AddChild(convertFBXModel(c, world))
	}
	return n
}

// convertFBXGeometry bakes the world transform into the vertices and fan-
// triangulates the polygons.
func convertFBXGeometry(g *fbx.Geometry, world *geom.Matrix4) *mesh.TriMesh {
	tm := &mesh.TriMesh{}
	tm.Verts = make([]mathutil.Vec3, len(g.Vertices))
	for i, v := range g.Vertices {
		t := world.ApplyTo(v)
		tm.Verts[i] = mathutil.Vec3{float64(t.X), float64(t.Y), float64(t.Z)}
	}
	for _, poly := range g.Polygons {
		for i := 1; i < len(poly)-1; i++ {
			tri := mesh.Tri{N: mesh.NoAttr, T: mesh.NoAttr}
			ok := true
			for k, vi := range [3]int{poly[0], poly[i], poly[i+1]} {
				if vi < 0 || vi >= len(tm.Verts) {
					ok = false
					break
				}
				tri.V[k] = vi
			}
			if ok {
				tm.Tris = append(tm.Tris, tri)
			}
		}
	}
	return tm
}

// fbxMaterial picks the first connected material's diffuse color.
func fbxMaterial(m *fbx.Model) *scene.Material {
	mat := &scene.Material{Name: m.Name(), Color: [3]float64{0.63, 0.63, 0.67}}
	for _, ref := range m.FindRefs("Material") {
		fm, ok := ref.(*fbx.Material)
		if !ok {
			continue
		}
		mat.Name = fm.Name()
		if p := fm.GetProperty("DiffuseColor"); p != nil {
			c := p.ToVector3(0.63, 0.63, 0.67)
			mat.Color = [3]float64{float64(c.X), float64(c.Y), float64(c.Z)}
		}
		break
	}
	return mat
}
