package quat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat3 returns the rotation matrix R with R*v == q.RotateVec(v) for unit q.
func (q Quaternion) Mat3() mgl64.Mat3 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x*x, y*y, z*z

	return mgl64.Mat3FromRows(
		mgl64.Vec3{1 - 2*(y2+z2), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		mgl64.Vec3{2 * (x*y + z*w), 1 - 2*(x2+z2), 2 * (y*z - x*w)},
		mgl64.Vec3{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x2+y2)},
	)
}

// Mat4 embeds the rotation in a homogeneous transform with no translation.
func (q Quaternion) Mat4() mgl64.Mat4 {
	return q.Mat3().Mat4()
}

// FromMat3 recovers a unit quaternion from a rotation matrix using the
// trace method, branching on the largest diagonal term.
func FromMat3(m mgl64.Mat3) Quaternion {
	m00, m11, m22 := m.At(0, 0), m.At(1, 1), m.At(2, 2)
	trace := m00 + m11 + m22

	var q Quaternion
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quaternion{
			X: (m.At(2, 1) - m.At(1, 2)) * s,
			Y: (m.At(0, 2) - m.At(2, 0)) * s,
			Z: (m.At(1, 0) - m.At(0, 1)) * s,
			W: 0.25 / s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quaternion{
			X: 0.25 * s,
			Y: (m.At(0, 1) + m.At(1, 0)) / s,
			Z: (m.At(0, 2) + m.At(2, 0)) / s,
			W: (m.At(2, 1) - m.At(1, 2)) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quaternion{
			X: (m.At(0, 1) + m.At(1, 0)) / s,
			Y: 0.25 * s,
			Z: (m.At(1, 2) + m.At(2, 1)) / s,
			W: (m.At(0, 2) - m.At(2, 0)) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quaternion{
			X: (m.At(0, 2) + m.At(2, 0)) / s,
			Y: (m.At(1, 2) + m.At(2, 1)) / s,
			Z: 0.25 * s,
			W: (m.At(1, 0) - m.At(0, 1)) / s,
		}
	}
	return q.Normalize()
}

func FromMat4(m mgl64.Mat4) Quaternion {
	return FromMat3(m.Mat3())
}

func (q Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func FromMgl(m mgl64.Quat) Quaternion {
	return Quaternion{X: m.V[0], Y: m.V[1], Z: m.V[2], W: m.W}
}
