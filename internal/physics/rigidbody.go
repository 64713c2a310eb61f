package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/quat"
)

// RigidBody is the mutable physical state of one vehicle.
type RigidBody struct {
	Position    mgl64.Vec3
	Orientation quat.Quaternion
	Mass        float64
	Inertia     mgl64.Mat3

	// Feedback is the gyroscopic correction computed by the last Dynamics
	// call and subtracted from the next one.
	Feedback dynamo.Vec6

	invM dynamo.Mat6
}

// UniformInertia is the sphere-like approximation mass*2/6 on each axis.
func UniformInertia(mass float64) mgl64.Mat3 {
	d := mass * 2 / 6
	return mgl64.Diag3(mgl64.Vec3{d, d, d})
}

// NewRigidBody builds a body at rest. A nil inertia uses UniformInertia.
func NewRigidBody(position mgl64.Vec3, orientation quat.Quaternion, mass float64, inertia *mgl64.Mat3) *RigidBody {
	b := &RigidBody{
		Position:    position,
		Orientation: orientation,
		Mass:        mass,
		Inertia:     UniformInertia(mass),
	}
	if inertia != nil {
		b.Inertia = *inertia
	}
	b.invM = inverseMassMatrix(b.Mass, b.Inertia)
	return b
}

// inverseMassMatrix inverts [m*I 0; 0 J] block by block. A singular block
// inverts to zero so that the corresponding axes ignore input.
func inverseMassMatrix(mass float64, inertia mgl64.Mat3) dynamo.Mat6 {
	return dynamo.BlockDiag(mgl64.Ident3().Mul(mass).Inv(), inertia.Inv())
}

func (b *RigidBody) InverseMassMatrix() dynamo.Mat6 {
	return b.invM
}

// Dynamics converts the generalized force tau into the body-frame velocity
// for this step and records the gyroscopic feedback for the next one.
func (b *RigidBody) Dynamics(tau dynamo.Vec6, dt float64) dynamo.Vec6 {
	eff := tau.Sub(b.Feedback)
	nu := b.invM.MulVec(eff).Scale(dt)

	v, omega := nu.Linear(), nu.Angular()
	b.Feedback = dynamo.Join(
		omega.Cross(v.Mul(b.Mass)),
		b.Inertia.Mul3x1(omega).Cross(omega).Mul(-1),
	)
	return nu
}

// Apply moves the body by delta and replaces its orientation.
func (b *RigidBody) Apply(delta mgl64.Vec3, orientation quat.Quaternion) {
	b.Position = b.Position.Add(delta)
	b.Orientation = orientation
}

func (b *RigidBody) ResetFeedback() {
	b.Feedback = dynamo.Vec6{}
}

// Reset returns the body to the origin with the given orientation.
func (b *RigidBody) Reset(orientation quat.Quaternion) {
	b.Position = mgl64.Vec3{}
	b.Orientation = orientation
	b.ResetFeedback()
}

// KineticEnergy of the body moving with nu.
func (b *RigidBody) KineticEnergy(nu dynamo.Vec6) float64 {
	v, omega := nu.Linear(), nu.Angular()
	return 0.5*b.Mass*v.Dot(v) + 0.5*omega.Dot(b.Inertia.Mul3x1(omega))
}

func (b *RigidBody) GetParams() map[string]float64 {
	return map[string]float64{
		"mass": b.Mass,
		"ixx":  b.Inertia.At(0, 0),
		"iyy":  b.Inertia.At(1, 1),
		"izz":  b.Inertia.At(2, 2),
	}
}

// SetParam changes a mass property and rebuilds the inverse mass matrix.
func (b *RigidBody) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		b.Mass = value
	case "ixx":
		b.Inertia[0] = value
	case "iyy":
		b.Inertia[4] = value
	case "izz":
		b.Inertia[8] = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	b.invM = inverseMassMatrix(b.Mass, b.Inertia)
	return nil
}
