// Package scene holds the node graph shared by the builders, the renderer
// and the exporters. Nodes carry a TRS local transform; world transforms
// are chained parent-first during traversal.
package scene

import (
	"image"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
)

// Material is a flat surface description. Color is linear RGB in 0..1.
// Tex, when set, replaces Color during shading and export.
type Material struct {
	Name  string
	Color [3]float64
	Tex   *image.NRGBA
}

// Node is one element of the graph. A node may carry a triangle mesh,
// a line set, both, or neither (a grouping node).
type Node struct {
	Name     string
	Position mathutil.Vec3
	Rotation mathutil.Vec3 // Euler XYZ, radians
	Scale    mathutil.Vec3
	Visible  bool

	Mesh  *mesh.TriMesh
	Lines *mesh.LineSet
	Mat   *Material

	Parent   *Node
	Children []*Node
}

// NewNode returns an empty visible node with unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   mathutil.Vec3{1, 1, 1},
		Visible: true,
	}
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild detaches child from n. Unknown children are ignored.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// LocalMatrix composes the node's TRS into its local transform.
func (n *Node) LocalMatrix() mathutil.Mat4 {
	return mathutil.ComposeTRS(n.Position, n.Rotation, n.Scale)
}

// Find returns the first node named name in the subtree rooted at n,
// or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Walk visits every node in the subtree with its world transform,
// chaining parent-first. Visibility is ignored; use WalkVisible to
// honor it.
func Walk(root *Node, fn func(n *Node, world mathutil.Mat4)) {
	walk(root, mathutil.Mat4Identity(), fn, false)
}

// WalkVisible visits visible nodes only; an invisible node hides its
// whole subtree.
func WalkVisible(root *Node, fn func(n *Node, world mathutil.Mat4)) {
	walk(root, mathutil.Mat4Identity(), fn, true)
}

func walk(n *Node, parent mathutil.Mat4, fn func(*Node, mathutil.Mat4), visibleOnly bool) {
	if visibleOnly && !n.Visible {
		return
	}
	world := mathutil.Mat4Mul(parent, n.LocalMatrix())
	fn(n, world)
	for _, c := range n.Children {
		walk(c, world, fn, visibleOnly)
	}
}

// Bounds returns the world-space box around every mesh and line set in
// the subtree. Invisible nodes are skipped.
func Bounds(root *Node) mathutil.Box {
	b := mathutil.EmptyBox()
	WalkVisible(root, func(n *Node, world mathutil.Mat4) {
		if n.Mesh != nil {
			b = b.Union(n.Mesh.BoundingBox().Transformed(world))
		}
		if n.Lines != nil {
			b = b.Union(n.Lines.BoundingBox().Transformed(world))
		}
	})
	return b
}

// Counts tallies nodes, triangles and vertices in the subtree,
// including invisible nodes.
func Counts(root *Node) (nodes, tris, verts int) {
	Walk(root, func(n *Node, _ mathutil.Mat4) {
		nodes++
		if n.Mesh != nil {
			tris += len(n.Mesh.Tris)
			verts += len(n.Mesh.Verts)
		}
	})
	return
}
