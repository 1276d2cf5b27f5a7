package camera

import (
	"math"

	"rigbench/internal/mathutil"
)

// Camera is the live camera: a pose plus vertical field of view in degrees.
type Camera struct {
	Position mathutil.Vec3
	Rotation mathutil.Vec3 // Euler XYZ, radians
	FOV      float64
}

// FromSettings builds a camera from persisted settings.
func FromSettings(st Settings) Camera {
	return Camera{Position: st.Position, Rotation: st.Rotation, FOV: st.FOV}
}

// Apply overwrites the pose and FOV from st.
func (c *Camera) Apply(st Settings) {
	c.Position = st.Position
	c.Rotation = st.Rotation
	c.FOV = st.FOV
}

// Settings snapshots the camera back into a persistable form.
func (c *Camera) Settings() Settings {
	return Settings{Position: c.Position, Rotation: c.Rotation, FOV: c.FOV}
}

// ViewMatrix transforms world space into camera space: inverse rotation
// followed by inverse translation. The camera looks down its local -z.
func (c *Camera) ViewMatrix() mathutil.Mat4 {
	rinv := mathutil.EulerMat3(c.Rotation).Transpose()
	return mathutil.Mat4Mul(
		mathutil.FromMat3Translation(rinv, mathutil.Vec3{}),
		mathutil.Mat4Translate(c.Position.Neg()),
	)
}

// Forward returns the world-space view direction.
func (c *Camera) Forward() mathutil.Vec3 {
	return mathutil.EulerMat3(c.Rotation).MulVec3(mathutil.Vec3{0, 0, -1})
}

// AutoFit backs the camera away from box along its current bearing until the
// whole box fits the vertical field of view, with padding as a slack factor
// (1 = tight). The rotation is left alone.
func (c *Camera) AutoFit(box mathutil.Box, padding float64) {
	if box.IsEmpty() {
		return
	}
	radius := box.Diagonal() / 2
	if radius < 1e-6 {
		radius = 1e-6
	}
	halfFOV := mathutil.Deg2Rad(c.FOV / 2)
	dist := radius / math.Tan(halfFOV) * padding
	c.Position = box.Center().Sub(c.Forward().Scale(dist))
}
