package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
)

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")

	a.AddChild(c)
	require.Same(t, a, c.Parent)
	require.Len(t, a.Children, 1)

	b.AddChild(c)
	assert.Same(t, b, c.Parent)
	assert.Empty(t, a.Children)
	assert.Len(t, b.Children, 1)
}

func TestDetach(t *testing.T) {
	a := NewNode("a")
	c := NewNode("c")
	a.AddChild(c)

	c.Detach()
	assert.Nil(t, c.Parent)
	assert.Empty(t, a.Children)

	// Detaching an orphan is a no-op.
	c.Detach()
	assert.Nil(t, c.Parent)
}

func TestFind(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	assert.Same(t, root, root.Find("root"))
	assert.Same(t, leaf, root.Find("leaf"))
	assert.Nil(t, root.Find("missing"))
}

func TestWalkWorldTransforms(t *testing.T) {
	root := NewNode("root")
	root.Position = mathutil.Vec3{10, 0, 0}
	child := NewNode("child")
	child.Position = mathutil.Vec3{0, 5, 0}
	root.AddChild(child)

	var got mathutil.Vec3
	Walk(root, func(n *Node, world mathutil.Mat4) {
		if n == child {
			got = world.MulPoint(mathutil.Vec3{})
		}
	})
	assert.Equal(t, mathutil.Vec3{10, 5, 0}, got)
}

func TestWalkVisibleHidesSubtree(t *testing.T) {
	root := NewNode("root")
	hidden := NewNode("hidden")
	hidden.Visible = false
	inner := NewNode("inner")
	hidden.AddChild(inner)
	root.AddChild(hidden)

	var visited []string
	WalkVisible(root, func(n *Node, _ mathutil.Mat4) {
		visited = append(visited, n.Name)
	})
	assert.Equal(t, []string{"root"}, visited)
}

func TestBoundsAndCounts(t *testing.T) {
	root := NewNode("root")
	solid := NewNode("solid")
	solid.Mesh = mesh.NewBox(2, 2, 2)
	solid.Position = mathutil.Vec3{5, 0, 0}
	root.AddChild(solid)

	wire := NewNode("wire")
	wire.Lines = mesh.NewBoxEdges(2, 2, 2)
	wire.Position = mathutil.Vec3{-5, 0, 0}
	root.AddChild(wire)

	b := Bounds(root)
	assert.Equal(t, mathutil.Vec3{-6, -1, -1}, b.Min)
	assert.Equal(t, mathutil.Vec3{6, 1, 1}, b.Max)

	nodes, tris, verts := Counts(root)
	assert.Equal(t, 3, nodes)
	assert.Equal(t, 12, tris)
	assert.Equal(t, 8, verts)

	// Hidden nodes drop out of the bounds.
	solid.Visible = false
	b = Bounds(root)
	assert.Equal(t, mathutil.Vec3{-6, -1, -1}, b.Min)
	assert.Equal(t, mathutil.Vec3{-4, 1, 1}, b.Max)
}
