// Package camera holds the shared camera: pose, field of view, persistence
// of the tuning tool's settings, and bounding-box auto-fit.
package camera

import (
	"math"

	"rigbench/internal/mathutil"
)

// Settings is the persisted camera state. Position and rotation marshal as
// 3-element arrays.
type Settings struct {
	Position mathutil.Vec3 `json:"position"`
	Rotation mathutil.Vec3 `json:"rotation"` // Euler XYZ, radians
	FOV      float64       `json:"fov"`      // vertical, degrees
}

// Control ranges. Inputs outside these are clamped, matching the slider
// limits of the tuning tool.
const (
	FOVMin   = 20.0
	FOVMax   = 120.0
	PosLimit = 100.0
)

// DefaultSettings returns the stock framing.
func DefaultSettings() Settings {
	return Settings{
		Position: mathutil.Vec3{0, 8, 25},
		Rotation: mathutil.Vec3{0, 0, 0},
		FOV:      55,
	}
}

// Clamped returns s with every field forced into its control range.
func (s Settings) Clamped() Settings {
	for i := 0; i < 3; i++ {
		s.Position[i] = clamp(s.Position[i], -PosLimit, PosLimit)
		s.Rotation[i] = clamp(s.Rotation[i], -math.Pi, math.Pi)
	}
	s.FOV = clamp(s.FOV, FOVMin, FOVMax)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
