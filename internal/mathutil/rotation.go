package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// EulerMat3 composes Euler XYZ angles (radians) into RotZ·RotY·RotX.
func EulerMat3(e Vec3) Mat3 {
	return Mat3Mul(Mat3Mul(RotZ(e[2]), RotY(e[1])), RotX(e[0]))
}

// EulerFromMat3 extracts Euler XYZ angles from a RotZ·RotY·RotX rotation.
// Gimbal-locked inputs (|m20| ≈ 1) collapse the Z angle into X.
func EulerFromMat3(m Mat3) Vec3 {
	sy := -m[6]
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	ry := math.Asin(sy)
	if math.Abs(sy) > 0.999999 {
		return Vec3{math.Atan2(-m[5], m[4]), ry, 0}
	}
	return Vec3{math.Atan2(m[7], m[8]), ry, math.Atan2(m[3], m[0])}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
