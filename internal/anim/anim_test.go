package anim

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigbench/internal/mathutil"
	"rigbench/internal/scene"
	"rigbench/internal/truck"
)

func TestApplyIdempotent(t *testing.T) {
	root := truck.Build(truck.ViewerPreset())
	st := Default()
	st.Orbit = true

	Apply(root, 1.7, st)
	w := root.Find("wheelL1")
	require.NotNil(t, w)
	body := root.Find("body")
	require.NotNil(t, body)

	wheelRot := w.Rotation[0]
	bodyY := body.Position[1]
	rootYaw := root.Rotation[1]

	// Transforms are absolute in t, so reapplying the same instant
	// changes nothing.
	Apply(root, 1.7, st)
	assert.Equal(t, wheelRot, w.Rotation[0])
	assert.Equal(t, bodyY, body.Position[1])
	assert.Equal(t, rootYaw, root.Rotation[1])
}

func TestApplyChannels(t *testing.T) {
	root := truck.Build(truck.ViewerPreset())
	st := Default()
	st.Orbit = true

	Apply(root, 2.0, st)

	w := root.Find("wheelR3")
	require.NotNil(t, w)
	assert.InDelta(t, -2.0*st.SpinSpeed, w.Rotation[0], 1e-12)

	body := root.Find("body")
	require.NotNil(t, body)
	assert.InDelta(t, st.BounceAmp*math.Sin(2*math.Pi*st.BounceFreq*2.0), body.Position[1], 1e-12)

	assert.InDelta(t, math.Mod(2.0*st.OrbitRate, 2*math.Pi), root.Rotation[1], 1e-12)
}

func TestDisabledChannelsUntouched(t *testing.T) {
	root := truck.Build(truck.ViewerPreset())
	st := State{} // everything off

	Apply(root, 3.3, st)

	w := root.Find("wheelL2")
	require.NotNil(t, w)
	assert.Zero(t, w.Rotation[0])
	assert.Zero(t, root.Find("body").Position[1])
	assert.Zero(t, root.Rotation[1])
}

func TestSpinSkipsTireChild(t *testing.T) {
	root := truck.Build(truck.ViewerPreset())
	st := Default()

	Apply(root, 1.0, st)

	tire := root.Find("wheelL1").Find("tire")
	require.NotNil(t, tire)
	// The tire keeps its fixed axle orientation; only the wheel node
	// spins.
	assert.Zero(t, tire.Rotation[0])
	assert.InDelta(t, math.Pi/2, tire.Rotation[2], 1e-12)
}

func TestSpinHitsEveryWheel(t *testing.T) {
	root := truck.Build(truck.ViewerPreset())
	Apply(root, 0.5, Default())

	var spun int
	scene.Walk(root, func(n *scene.Node, _ mathutil.Mat4) {
		if strings.HasPrefix(n.Name, "wheel") && n.Rotation[0] != 0 {
			spun++
		}
	})
	assert.Equal(t, 10, spun, "five axles, both sides")
}
