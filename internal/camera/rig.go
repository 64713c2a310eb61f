// Package camera places the viewport camera relative to the tracked vehicle.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flysim/internal/config"
	"github.com/san-kum/flysim/internal/quat"
)

type Mode int

const (
	// ModeFollow locks the camera to the body frame of the vehicle.
	ModeFollow Mode = iota
	// ModeTopDown looks straight down on the vehicle from TopDownHeight.
	ModeTopDown
)

func (m Mode) String() string {
	switch m {
	case ModeTopDown:
		return "top-down"
	default:
		return "follow"
	}
}

type Rig struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FovY     float64

	Offset        mgl64.Vec3
	BodyUp        mgl64.Vec3
	Mode          Mode
	TopDownHeight float64
}

func NewRig() *Rig {
	return &Rig{
		Position:      mgl64.Vec3(config.DefaultCameraOffset),
		Up:            mgl64.Vec3(config.DefaultCameraUp),
		FovY:          config.DefaultFovY,
		Offset:        mgl64.Vec3(config.DefaultCameraOffset),
		BodyUp:        mgl64.Vec3(config.DefaultCameraUp),
		TopDownHeight: 40,
	}
}

// Configure adopts the camera settings of a vehicle spec.
func (r *Rig) Configure(c config.CameraSpec) {
	r.Offset = mgl64.Vec3(c.Offset)
	r.BodyUp = mgl64.Vec3(c.Up)
	r.FovY = c.FovY
}

// Follow updates the camera for a vehicle at pos with orientation q.
func (r *Rig) Follow(pos mgl64.Vec3, q quat.Quaternion) {
	switch r.Mode {
	case ModeTopDown:
		r.Target = pos
		r.Position = pos.Add(mgl64.Vec3{0, r.TopDownHeight, 0})
		// looking along -Y, so up must not be parallel to it
		r.Up = q.RotateVec(mgl64.Vec3{0, 0, 1})
	default:
		r.Target = pos.Add(q.RotateVec(r.BodyUp))
		r.Position = r.Target.Add(q.RotateVec(r.Offset))
		r.Up = q.RotateVec(r.BodyUp)
	}
}

func (r *Rig) ToggleMode() {
	if r.Mode == ModeFollow {
		r.Mode = ModeTopDown
	} else {
		r.Mode = ModeFollow
	}
}
