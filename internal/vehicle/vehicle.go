// Package vehicle joins an immutable vehicle spec with the mutable physics
// and control state that evolves every tick.
package vehicle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flysim/internal/config"
	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/physics"
	"github.com/san-kum/flysim/internal/quat"
)

// ScaleStep is the live scale change per tick of ScaleUp/ScaleDown.
const ScaleStep = 0.01

// Pose is what the renderer needs to draw a vehicle.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Mat4
	Scale       float64
}

type Vehicle struct {
	spec config.VehicleSpec
	kind control.Kind

	body   *physics.RigidBody
	mapper *control.Mapper
	euler  *physics.EulerState // multirotor only

	spawn quat.Quaternion
	scale float64
	nu    dynamo.Vec6
}

func New(spec config.VehicleSpec) (*Vehicle, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("create %s: %w", spec.Name, err)
	}
	kind, _ := spec.ParsedKind()

	spawn := quat.FromEulerVec(spec.SpawnRotation())
	v := &Vehicle{
		spec:   spec,
		kind:   kind,
		body:   physics.NewRigidBody(spec.SpawnPosition(), spawn, spec.Mass, spec.InertiaMatrix()),
		mapper: control.NewMapper(kind, spec.Limits()),
		spawn:  spawn,
		scale:  spec.Scale,
	}
	if kind == control.Multirotor {
		v.euler = &physics.EulerState{
			Position: spec.SpawnPosition(),
			Angles:   spec.SpawnRotation(),
		}
	}
	return v, nil
}

func (v *Vehicle) Spec() config.VehicleSpec { return v.spec }
func (v *Vehicle) Kind() control.Kind       { return v.kind }
func (v *Vehicle) Name() string             { return v.spec.Name }
func (v *Vehicle) Body() *physics.RigidBody { return v.body }
func (v *Vehicle) Scale() float64           { return v.scale }

// Update advances the vehicle by dt with the signals held this tick.
func (v *Vehicle) Update(dt float64, in control.Input) {
	if in.Has(control.Reset) {
		v.Reset()
		return
	}
	if in.Has(control.ScaleDown) {
		v.scale -= ScaleStep
	}
	if in.Has(control.ScaleUp) {
		v.scale += ScaleStep
	}

	tau := v.mapper.Torque(in)
	v.nu = v.body.Dynamics(tau, dt)

	switch v.kind {
	case control.Multirotor:
		v.body.Apply(v.euler.Step(v.nu, dt))
	case control.FixedWing, control.Spacecraft:
		v.body.Apply(v.body.Kinematics(v.nu, dt))
	}
}

// Reset returns the vehicle to the origin with its spawn orientation and
// clears tau and the gyroscopic feedback.
func (v *Vehicle) Reset() {
	v.mapper.Reset()
	v.body.Reset(v.spawn)
	v.nu = dynamo.Vec6{}
	if v.euler != nil {
		v.euler.Reset(v.spec.SpawnRotation())
	}
}

func (v *Vehicle) Position() mgl64.Vec3 {
	return v.body.Position
}

func (v *Vehicle) Orientation() quat.Quaternion {
	return v.body.Orientation
}

// Velocity is the body-frame velocity produced by the last update.
func (v *Vehicle) Velocity() dynamo.Vec6 {
	return v.nu
}

func (v *Vehicle) Tau() dynamo.Vec6 {
	return v.mapper.Tau()
}

func (v *Vehicle) CurrentPose() Pose {
	return Pose{
		Position:    v.body.Position,
		Orientation: v.body.Orientation.Mat4(),
		Scale:       v.scale,
	}
}

func (v *Vehicle) CurrentOrientationEuler(degrees bool) mgl64.Vec3 {
	return v.body.Orientation.ToEuler(degrees)
}

// Snapshot records the current state for vehicle index idx at time t.
func (v *Vehicle) Snapshot(idx int, t float64) dynamo.Sample {
	return dynamo.Sample{
		Time:        t,
		Vehicle:     idx,
		Position:    v.body.Position,
		Orientation: v.body.Orientation,
		Euler:       v.CurrentOrientationEuler(true),
		Nu:          v.nu,
		Tau:         v.mapper.Tau(),
	}
}

func (v *Vehicle) GetParams() map[string]float64 {
	params := v.body.GetParams()
	params["scale"] = v.scale
	return params
}

func (v *Vehicle) SetParam(name string, value float64) error {
	if name == "scale" {
		v.scale = value
		return nil
	}
	return v.body.SetParam(name, value)
}
