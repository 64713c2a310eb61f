package metrics

import (
	"math"

	"github.com/san-kum/flysim/internal/dynamo"
)

// MassProperties is implemented by anything that can price a velocity in
// kinetic energy, such as physics.RigidBody.
type MassProperties interface {
	KineticEnergy(nu dynamo.Vec6) float64
}

// KineticEnergy is the mean kinetic energy over all observed samples.
type KineticEnergy struct {
	name    string
	bodies  []MassProperties
	total   float64
	peak    float64
	samples int
}

// NewKineticEnergy prices samples of vehicle i with bodies[i].
func NewKineticEnergy(bodies ...MassProperties) *KineticEnergy {
	return &KineticEnergy{
		name:   "kinetic_energy",
		bodies: bodies,
	}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s dynamo.Sample) {
	if s.Vehicle < 0 || s.Vehicle >= len(e.bodies) {
		return
	}
	ke := e.bodies[s.Vehicle].KineticEnergy(s.Nu)
	e.total += ke
	e.peak = math.Max(e.peak, ke)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Peak() float64 { return e.peak }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.peak = 0
	e.samples = 0
}

// NormDrift is the largest distance of the orientation quaternion from
// unit length.
type NormDrift struct {
	name     string
	maxDrift float64
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (d *NormDrift) Name() string { return d.name }

func (d *NormDrift) Observe(s dynamo.Sample) {
	d.maxDrift = math.Max(d.maxDrift, math.Abs(1-s.Orientation.Magnitude()))
}

func (d *NormDrift) Value() float64 {
	return d.maxDrift
}

func (d *NormDrift) Reset() {
	d.maxDrift = 0
}
