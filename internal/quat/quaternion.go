// Package quat implements the quaternion algebra used for vehicle orientation.
//
// Quaternions are plain values stored as (X, Y, Z, W) with W the scalar
// part. Every operation returns a new value; nothing mutates its receiver.
// Euler angles follow the (roll, pitch, yaw) = (x, y, z) convention and
// compose as R = Rx(roll) * Ry(pitch) * Rz(yaw).
package quat

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Quaternion struct {
	X, Y, Z, W float64
}

func New(x, y, z, w float64) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

func Identity() Quaternion {
	return Quaternion{W: 1}
}

// Pure embeds a vector as a quaternion with zero scalar part.
func Pure(v mgl64.Vec3) Quaternion {
	return Quaternion{X: v[0], Y: v[1], Z: v[2]}
}

// FromEuler builds the orientation for roll, pitch and yaw in radians.
func FromEuler(roll, pitch, yaw float64) Quaternion {
	s1, c1 := math.Sincos(roll * 0.5)
	s2, c2 := math.Sincos(pitch * 0.5)
	s3, c3 := math.Sincos(yaw * 0.5)

	return Quaternion{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

func FromEulerVec(angles mgl64.Vec3) Quaternion {
	return FromEuler(angles[0], angles[1], angles[2])
}

// ToEuler is the inverse of FromEuler. Pitch is recovered through asin and
// therefore lies in [-pi/2, pi/2].
func (q Quaternion) ToEuler(degrees bool) mgl64.Vec3 {
	x, y, z, w := q.X, q.Y, q.Z, q.W

	roll := math.Atan2(2*(x*w-y*z), 1-2*(x*x+y*y))

	sp := 2 * (x*z + y*w)
	if sp > 1 {
		sp = 1
	} else if sp < -1 {
		sp = -1
	}
	pitch := math.Asin(sp)

	yaw := math.Atan2(2*(z*w-x*y), 1-2*(y*y+z*z))

	angles := mgl64.Vec3{roll, pitch, yaw}
	if degrees {
		return angles.Mul(180 / math.Pi)
	}
	return angles
}

// Mul returns the Hamilton product q ⊗ o.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quaternion) Add(o Quaternion) Quaternion {
	return Quaternion{q.X + o.X, q.Y + o.Y, q.Z + o.Z, q.W + o.W}
}

func (q Quaternion) Sub(o Quaternion) Quaternion {
	return Quaternion{q.X - o.X, q.Y - o.Y, q.Z - o.Z, q.W - o.W}
}

func (q Quaternion) Scale(s float64) Quaternion {
	return Quaternion{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

func (q Quaternion) Dot(o Quaternion) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quaternion) MagnitudeSqr() float64 {
	return q.Dot(q)
}

func (q Quaternion) Magnitude() float64 {
	return math.Sqrt(q.MagnitudeSqr())
}

// Normalize scales q to unit length. A zero quaternion is returned as is.
func (q Quaternion) Normalize() Quaternion {
	m := q.Magnitude()
	if m == 0 {
		m = 1
	}
	return q.Scale(1 / m)
}

// Inverse returns conj(q)/|q|². The zero quaternion maps to itself.
func (q Quaternion) Inverse() Quaternion {
	n := q.MagnitudeSqr()
	if n == 0 {
		n = 1
	}
	return q.Conjugate().Scale(1 / n)
}

// Div returns q ⊗ o⁻¹.
func (q Quaternion) Div(o Quaternion) Quaternion {
	return q.Mul(o.Inverse())
}

// Rotate returns q ⊗ v ⊗ conj(q). For a pure v the vector part of the
// result is v rotated by q.
func (q Quaternion) Rotate(v Quaternion) Quaternion {
	return q.Mul(v).Mul(q.Conjugate())
}

func (q Quaternion) RotateVec(v mgl64.Vec3) mgl64.Vec3 {
	return q.Rotate(Pure(v)).Vec()
}

// Vec returns the vector part.
func (q Quaternion) Vec() mgl64.Vec3 {
	return mgl64.Vec3{q.X, q.Y, q.Z}
}

func (q Quaternion) ApproxEqual(o Quaternion, eps float64) bool {
	return math.Abs(q.X-o.X) <= eps &&
		math.Abs(q.Y-o.Y) <= eps &&
		math.Abs(q.Z-o.Z) <= eps &&
		math.Abs(q.W-o.W) <= eps
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f, %.4f)", q.X, q.Y, q.Z, q.W)
}
