package metrics

import "github.com/san-kum/flysim/internal/dynamo"

// Envelope is the fraction of samples flown inside the speed and body-rate
// limits.
type Envelope struct {
	name       string
	maxSpeed   float64
	maxRate    float64
	violations int
	samples    int
}

func NewEnvelope(maxSpeed, maxRate float64) *Envelope {
	return &Envelope{
		name:     "envelope",
		maxSpeed: maxSpeed,
		maxRate:  maxRate,
	}
}

func (e *Envelope) Name() string {
	return e.name
}

func (e *Envelope) Observe(s dynamo.Sample) {
	e.samples++
	if s.Speed() > e.maxSpeed || s.BodyRate() > e.maxRate {
		e.violations++
	}
}

func (e *Envelope) Value() float64 {
	if e.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(e.violations)/float64(e.samples)
}

func (e *Envelope) Reset() {
	e.violations = 0
	e.samples = 0
}
