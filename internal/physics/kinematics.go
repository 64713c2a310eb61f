package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/quat"
)

// NormGain pulls the integrated quaternion back toward unit length.
const NormGain = 100.0

// Kinematics integrates nu over dt from the current pose. It returns the
// world-frame position delta and the new orientation without touching b.
func (b *RigidBody) Kinematics(nu dynamo.Vec6, dt float64) (mgl64.Vec3, quat.Quaternion) {
	q := b.Orientation
	delta := q.RotateVec(nu.Linear()).Mul(dt)

	rate := q.Mul(quat.Pure(nu.Angular())).Scale(0.5)
	next := q.Add(rate.Scale(dt))
	next = next.Add(next.Scale(NormGain * (1 - next.MagnitudeSqr())))

	return delta, next.Normalize()
}

// EulerState is the multirotor pose expressed as position plus roll, pitch
// and yaw in radians.
type EulerState struct {
	Position mgl64.Vec3
	Angles   mgl64.Vec3
}

// Jacobian returns the linear block R (body to world) and the angular
// block T (body rates to Euler rates) for the current angles.
func (e EulerState) Jacobian() (r, t mgl64.Mat3) {
	phi, theta, psi := e.Angles[0], e.Angles[1], e.Angles[2]

	r = mgl64.Rotate3DX(phi).Mul3(mgl64.Rotate3DY(theta)).Mul3(mgl64.Rotate3DZ(psi))

	sphi, cphi := math.Sincos(phi)
	ctheta := math.Cos(theta)
	ttheta := math.Tan(theta)
	t = mgl64.Mat3FromRows(
		mgl64.Vec3{1, sphi * ttheta, cphi * ttheta},
		mgl64.Vec3{0, cphi, -sphi},
		mgl64.Vec3{0, sphi / ctheta, cphi / ctheta},
	)
	return r, t
}

// Step advances e by J*nu*dt and returns the position delta and the
// matching orientation quaternion.
func (e *EulerState) Step(nu dynamo.Vec6, dt float64) (mgl64.Vec3, quat.Quaternion) {
	r, t := e.Jacobian()

	delta := r.Mul3x1(nu.Linear()).Mul(dt)
	e.Position = e.Position.Add(delta)
	e.Angles = e.Angles.Add(t.Mul3x1(nu.Angular()).Mul(dt))

	return delta, quat.FromEulerVec(e.Angles)
}

func (e *EulerState) Reset(angles mgl64.Vec3) {
	e.Position = mgl64.Vec3{}
	e.Angles = angles
}
