// Package anim advances the rig's periodic animations. All transforms are
// absolute functions of the clock, so applying the same instant twice leaves
// the scene unchanged.
package anim

import (
	"math"
	"strings"

	"rigbench/internal/scene"
)

// State holds the animation parameters and toggles.
type State struct {
	SpinSpeed  float64 // wheel angular speed, radians per second
	BounceAmp  float64
	BounceFreq float64 // Hz
	OrbitRate  float64 // radians per second

	Spin   bool
	Bounce bool
	Orbit  bool
}

// Default returns the viewer's stock animation: wheels and idle bounce on,
// auto-orbit off.
func Default() State {
	return State{
		SpinSpeed:  2.5,
		BounceAmp:  0.06,
		BounceFreq: 1.4,
		OrbitRate:  0.3,
		Spin:       true,
		Bounce:     true,
	}
}

// Apply sets the animated transforms for time t in seconds: wheel roll on
// every node named "wheel*", idle bounce on the "body" group, auto-orbit yaw
// on the root. Disabled channels are left untouched.
func Apply(root *scene.Node, t float64, st State) {
	if st.Spin {
		spinWheels(root, -t*st.SpinSpeed)
	}
	if st.Bounce {
		if b := root.Find("body"); b != nil {
			b.Position[1] = st.BounceAmp * math.Sin(2*math.Pi*st.BounceFreq*t)
		}
	}
	if st.Orbit {
		root.Rotation[1] = math.Mod(t*st.OrbitRate, 2*math.Pi)
	}
}

func spinWheels(n *scene.Node, angle float64) {
	if strings.HasPrefix(n.Name, "wheel") {
		n.Rotation[0] = angle
	}
	for _, c := range n.Children {
		spinWheels(c, angle)
	}
}
