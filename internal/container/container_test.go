package container

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigbench/internal/mathutil"
	"rigbench/internal/scene"
)

func testMaterials() (panel, frame *scene.Material) {
	panel = &scene.Material{Name: "panel", Color: [3]float64{0.55, 0.27, 0.15}}
	frame = &scene.Material{Name: "frame", Color: [3]float64{0.35, 0.35, 0.38}}
	return
}

// countByPrefix buckets node names with their trailing indices stripped, so
// "corrugation0_12" and "corrugation1_3" land in the same bucket.
func countByPrefix(root *scene.Node) map[string]int {
	counts := map[string]int{}
	scene.Walk(root, func(n *scene.Node, _ mathutil.Mat4) {
		counts[strings.TrimRight(n.Name, "0123456789_")]++
	})
	return counts
}

func TestBuildStructure(t *testing.T) {
	panel, frame := testMaterials()
	root := Build(panel, frame)

	counts := countByPrefix(root)
	assert.Equal(t, 1, counts["container"])
	assert.Equal(t, 1, counts["body"])
	assert.Equal(t, 52, counts["corrugation"], "26 strips per long side")
	assert.Equal(t, 4, counts["cornerPost"])
	assert.Equal(t, 4, counts["cornerPostEdges"])
	assert.Equal(t, 4, counts["rail"])
	assert.Equal(t, 2, counts["doorLeaf"])
	assert.Equal(t, 6, counts["doorCorrugation"])
	assert.Equal(t, 4, counts["lockBar"])
	assert.Equal(t, 8, counts["camLock"])
	assert.Equal(t, 2, counts["doorHandle"])
	assert.Equal(t, 4, counts["handleBracket"])
	assert.Equal(t, 1, counts["lockBarHorizontal"])
	assert.Equal(t, 1, counts["centerLock"])
	assert.Equal(t, 8, counts["hinge"])
	assert.Equal(t, 8, counts["hingePin"])
	assert.Equal(t, 5, counts["roofBeam"])
	assert.Equal(t, 1, counts["idPlateFront"])
	assert.Equal(t, 2, counts["idPlateSide"])
}

func TestBuildDeterministic(t *testing.T) {
	panel, frame := testMaterials()
	a := Build(panel, frame)
	b := Build(panel, frame)

	assert.Equal(t, countByPrefix(a), countByPrefix(b))

	an, at, av := scene.Counts(a)
	bn, bt, bv := scene.Counts(b)
	assert.Equal(t, an, bn)
	assert.Equal(t, at, bt)
	assert.Equal(t, av, bv)

	assert.Equal(t, scene.Bounds(a), scene.Bounds(b))
}

func TestBuildDimensions(t *testing.T) {
	panel, frame := testMaterials()
	root := Build(panel, frame)

	b := scene.Bounds(root)
	require.False(t, b.IsEmpty())
	size := b.Size()

	// Hardware sits proud of the shell but close to the nominal envelope.
	assert.GreaterOrEqual(t, size[0], Width)
	assert.Less(t, size[0], Width+1.5)
	assert.GreaterOrEqual(t, size[1], Height)
	assert.Less(t, size[1], Height+1)
	assert.GreaterOrEqual(t, size[2], Length)
	assert.Less(t, size[2], Length+2)

	// Root origin is the bottom center.
	c := b.Center()
	assert.InDelta(t, 0, c[0], 0.5)
	assert.InDelta(t, 0, c[2], 0.5)
	assert.InDelta(t, 0, b.Min[1], 0.3)
}

func TestBuildSharesMaterials(t *testing.T) {
	panel, frame := testMaterials()
	root := Build(panel, frame)

	scene.Walk(root, func(n *scene.Node, _ mathutil.Mat4) {
		if n.Mesh == nil && n.Lines == nil {
			return
		}
		assert.True(t, n.Mat == panel || n.Mat == frame, "node %s has a foreign material", n.Name)
	})
}
