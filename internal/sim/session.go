// Package sim runs vehicles through time, either one frame at a time for an
// interactive front end or as a fixed-step headless run.
package sim

import (
	"github.com/rs/zerolog"

	"github.com/san-kum/flysim/internal/camera"
	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/vehicle"
)

// Session owns the vehicles of one simulation and the camera tracking one
// of them.
type Session struct {
	vehicles  []*vehicle.Vehicle
	tracked   int
	rig       *camera.Rig
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       zerolog.Logger
	t         float64
}

func NewSession(log zerolog.Logger) *Session {
	return &Session{
		rig: camera.NewRig(),
		log: log.With().Str("component", "sim").Logger(),
	}
}

func (s *Session) Add(v *vehicle.Vehicle) {
	s.vehicles = append(s.vehicles, v)
	if len(s.vehicles) == 1 {
		s.rig.Configure(v.Spec().Camera)
	}
	s.log.Info().Str("vehicle", v.Name()).Str("kind", v.Kind().String()).
		Int("index", len(s.vehicles)-1).Msg("vehicle spawned")
}

func (s *Session) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Session) Vehicles() []*vehicle.Vehicle { return s.vehicles }
func (s *Session) Camera() *camera.Rig          { return s.rig }
func (s *Session) Time() float64                { return s.t }
func (s *Session) TrackedIndex() int            { return s.tracked }

// Tracked returns the vehicle the camera follows, or nil for an empty session.
func (s *Session) Tracked() *vehicle.Vehicle {
	if len(s.vehicles) == 0 {
		return nil
	}
	return s.vehicles[s.tracked]
}

// CycleTracked moves the camera to the next vehicle.
func (s *Session) CycleTracked() {
	if len(s.vehicles) == 0 {
		return
	}
	s.tracked = (s.tracked + 1) % len(s.vehicles)
	v := s.vehicles[s.tracked]
	s.rig.Configure(v.Spec().Camera)
	s.log.Debug().Str("vehicle", v.Name()).Msg("tracking")
}

// Tick updates every vehicle with its input, then moves the camera.
// Vehicles own disjoint state and are updated concurrently.
func (s *Session) Tick(dt float64, inputs []control.Input) {
	n := len(s.vehicles)
	dynamo.ParallelFor(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			s.vehicles[i].Update(dt, inputAt(inputs, i))
		}
	})
	s.t += dt

	for i, v := range s.vehicles {
		in := inputAt(inputs, i)
		if in.Has(control.Reset) {
			s.log.Info().Str("vehicle", v.Name()).Msg("reset to origin")
		}
		if in.Has(control.PrintPosition) {
			p := v.Position()
			s.log.Info().Str("vehicle", v.Name()).
				Float64("x", p[0]).Float64("y", p[1]).Float64("z", p[2]).
				Msg("current position")
		}
	}

	if v := s.Tracked(); v != nil {
		s.rig.Follow(v.Position(), v.Orientation())
	}
}

func inputAt(inputs []control.Input, i int) control.Input {
	if i < len(inputs) {
		return inputs[i]
	}
	return 0
}
