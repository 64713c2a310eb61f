package control

import (
	"math"

	"github.com/san-kum/flysim/internal/dynamo"
)

const (
	DeadZone    = 0.01
	ForceDecay  = 0.99
	TorqueDecay = 0.96
)

// Range bounds one group of tau axes and sets its per-tick increment.
type Range struct {
	Min       float64 `yaml:"min" json:"min" mapstructure:"min"`
	Max       float64 `yaml:"max" json:"max" mapstructure:"max"`
	Increment float64 `yaml:"increment" json:"increment" mapstructure:"increment"`
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Limits holds the force range (axes 0..2) and moment range (axes 3..5).
type Limits struct {
	Thrust Range `yaml:"thrust" json:"thrust" mapstructure:"thrust"`
	Moment Range `yaml:"moment" json:"moment" mapstructure:"moment"`
}

// DefaultLimits returns the stock tuning for a vehicle kind.
func DefaultLimits(k Kind) Limits {
	switch k {
	case Multirotor:
		return Limits{
			Thrust: Range{Min: -100, Max: 100, Increment: 0.5},
			Moment: Range{Min: -50, Max: 50, Increment: 12.5},
		}
	case Spacecraft:
		return Limits{
			Thrust: Range{Min: -1000, Max: 1000, Increment: 50},
			Moment: Range{Min: -10, Max: 10, Increment: 5},
		}
	default:
		return Limits{
			Thrust: Range{Min: -10000, Max: 10000, Increment: 300},
			Moment: Range{Min: -10, Max: 10, Increment: 12.5},
		}
	}
}

// Mapper accumulates tau for one vehicle.
type Mapper struct {
	Kind   Kind
	Limits Limits

	tau dynamo.Vec6
}

func NewMapper(k Kind, limits Limits) *Mapper {
	return &Mapper{Kind: k, Limits: limits}
}

// Tau returns the current accumulator without advancing it.
func (m *Mapper) Tau() dynamo.Vec6 {
	return m.tau
}

// SetTau overwrites the accumulator.
func (m *Mapper) SetTau(tau dynamo.Vec6) {
	m.tau = tau
}

func (m *Mapper) Reset() {
	m.tau = dynamo.Vec6{}
}

// Torque applies one tick of input, saturation and decay and returns the
// resulting tau.
func (m *Mapper) Torque(in Input) dynamo.Vec6 {
	m.apply(in)
	m.settle()
	return m.tau
}

func (m *Mapper) apply(in Input) {
	f := m.Limits.Thrust.Increment
	t := m.Limits.Moment.Increment

	switch m.Kind {
	case FixedWing:
		m.axis(0, in, LateralLeft, LateralRight, f)
		m.axis(2, in, ThrottleUp, ThrottleDown, f)
	case Multirotor:
		m.axis(1, in, ThrottleUp, ThrottleDown, f)
	case Spacecraft:
		m.axis(0, in, LateralLeft, LateralRight, f)
		m.axis(1, in, AscendUp, AscendDown, f)
		m.axis(2, in, ThrottleUp, ThrottleDown, f)
	}

	m.axis(3, in, RollUp, RollDown, t)
	m.axis(4, in, PitchUp, PitchDown, t)
	m.axis(5, in, YawRight, YawLeft, t)
}

// axis adds d when pos is held, otherwise subtracts d when neg is held.
func (m *Mapper) axis(i int, in Input, pos, neg Input, d float64) {
	if in.Has(pos) {
		m.tau[i] += d
	} else if in.Has(neg) {
		m.tau[i] -= d
	}
}

func (m *Mapper) settle() {
	for i := range m.tau {
		v := m.tau[i]
		if math.Abs(v) < DeadZone {
			m.tau[i] = 0
			continue
		}
		if i < 3 {
			m.tau[i] = m.Limits.Thrust.Clamp(v) * ForceDecay
		} else {
			m.tau[i] = m.Limits.Moment.Clamp(v) * TorqueDecay
		}
	}
}
