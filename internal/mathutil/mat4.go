package mathutil

// Mat4 is a 4×4 matrix stored row-major. Used for node world transforms.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// MulDir transforms a direction (w=0): rotation/scale only, no translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}

// Mat4Translate builds a pure translation matrix.
func Mat4Translate(t Vec3) Mat4 {
	return Mat4{
		1, 0, 0, t[0],
		0, 1, 0, t[1],
		0, 0, 1, t[2],
		0, 0, 0, 1,
	}
}

// ComposeTRS builds translation × rotation(Euler XYZ) × scale.
func ComposeTRS(pos, rot, scale Vec3) Mat4 {
	r := EulerMat3(rot)
	m := Mat4{
		r[0] * scale[0], r[1] * scale[1], r[2] * scale[2], pos[0],
		r[3] * scale[0], r[4] * scale[1], r[5] * scale[2], pos[1],
		r[6] * scale[0], r[7] * scale[1], r[8] * scale[2], pos[2],
		0, 0, 0, 1,
	}
	return m
}

// DecomposeTRS splits an affine matrix into translation, Euler XYZ rotation
// and per-axis scale. Shear and negative scale are not recovered.
func (m Mat4) DecomposeTRS() (pos, rot, scale Vec3) {
	pos = Vec3{m[3], m[7], m[11]}
	for c := 0; c < 3; c++ {
		scale[c] = Vec3{m[c], m[4+c], m[8+c]}.Len()
	}
	var r Mat3
	for row := 0; row < 3; row++ {
		for c := 0; c < 3; c++ {
			s := scale[c]
			if s < 1e-12 {
				s = 1
			}
			r[row*3+c] = m[row*4+c] / s
		}
	}
	rot = EulerFromMat3(r)
	return
}

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}
