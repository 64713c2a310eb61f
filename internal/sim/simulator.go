package sim

import (
	"context"
	"math"

	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/dynamo"
)

// InputSource supplies the control signals of n vehicles at time t.
type InputSource interface {
	Inputs(t float64, n int) []control.Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func(t float64, n int) []control.Input

func (f InputFunc) Inputs(t float64, n int) []control.Input {
	return f(t, n)
}

// Constant holds the same signals on every vehicle for the whole run.
func Constant(in control.Input) InputSource {
	return InputFunc(func(t float64, n int) []control.Input {
		out := make([]control.Input, n)
		for i := range out {
			out[i] = in
		}
		return out
	})
}

type Result struct {
	Vehicles   []string
	Times      []float64
	Samples    [][]dynamo.Sample // [vehicle][step]
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Final returns the last sample of vehicle i.
func (r *Result) Final(i int) dynamo.Sample {
	s := r.Samples[i]
	return s[len(s)-1]
}

// Run advances the session in fixed steps of cfg.Dt for cfg.Duration. A
// nil src runs without input. The partial result is returned on
// cancellation.
func (s *Session) Run(ctx context.Context, cfg dynamo.Config, src InputSource) (*Result, error) {
	if len(s.vehicles) == 0 {
		return nil, dynamo.ErrNoVehicles
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	n := len(s.vehicles)
	result := &Result{
		Vehicles: make([]string, n),
		Times:    make([]float64, 0, steps+1),
		Samples:  make([][]dynamo.Sample, n),
		Metrics:  make(map[string]float64),
	}
	for i, v := range s.vehicles {
		result.Vehicles[i] = v.Name()
		result.Samples[i] = make([]dynamo.Sample, 0, steps+1)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := s.t
	s.record(result, start)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, &dynamo.SimError{
				Step: i, Time: s.t - start,
				Message: "run interrupted", Wrapped: dynamo.ErrContextCanceled,
			}
		default:
		}

		var inputs []control.Input
		if src != nil {
			inputs = src.Inputs(s.t-start, n)
		}
		s.Tick(cfg.Dt, inputs)
		result.StepsTaken++

		if bad := s.record(result, s.t-start); bad >= 0 {
			result.Errors = append(result.Errors, &dynamo.SimError{
				Step: i, Time: s.t - start,
				Message: "invalid state (NaN/Inf) on " + s.vehicles[bad].Name(),
			})
			break
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// record appends one sample per vehicle and returns the index of the first
// vehicle with a non-finite state, or -1.
func (s *Session) record(result *Result, t float64) int {
	result.Times = append(result.Times, t)
	bad := -1
	for i, v := range s.vehicles {
		sample := v.Snapshot(i, t)
		result.Samples[i] = append(result.Samples[i], sample)
		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, o := range s.observers {
			o.OnStep(sample)
		}
		if bad < 0 && !validSample(sample) {
			bad = i
		}
	}
	return bad
}

func validSample(s dynamo.Sample) bool {
	q := s.Orientation
	for _, v := range []float64{s.Position[0], s.Position[1], s.Position[2], q.X, q.Y, q.Z, q.W} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Nu.IsValid()
}
