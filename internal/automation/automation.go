package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/flysim/internal/config"
	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/metrics"
	"github.com/san-kum/flysim/internal/sim"
	"github.com/san-kum/flysim/internal/vehicle"
)

// Script is a scripted flight: which vehicles fly and which controls are
// held over which time windows.
type Script struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Vehicles    []string           `yaml:"vehicles"`
	Dt          float64            `yaml:"dt"`
	Duration    float64            `yaml:"duration"`
	Params      map[string]float64 `yaml:"params"`
	Steps       []Step             `yaml:"steps"`
}

// Step holds Controls on one vehicle for From <= t < To.
type Step struct {
	Vehicle  int      `yaml:"vehicle"`
	Controls []string `yaml:"controls"`
	From     float64  `yaml:"from"`
	To       float64  `yaml:"to"`

	input control.Input
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &script, nil
}

// Validate checks the script and resolves control names.
func (s *Script) Validate() error {
	for i := range s.Steps {
		step := &s.Steps[i]
		in, err := control.ParseInput(step.Controls...)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.To <= step.From {
			return fmt.Errorf("step %d: window [%v, %v) is empty", i+1, step.From, step.To)
		}
		if step.Vehicle < 0 || (len(s.Vehicles) > 0 && step.Vehicle >= len(s.Vehicles)) {
			return fmt.Errorf("step %d: no vehicle %d", i+1, step.Vehicle)
		}
		step.input = in
	}
	return nil
}

// Inputs returns the signals held at time t for n vehicles.
func (s *Script) Inputs(t float64, n int) []control.Input {
	out := make([]control.Input, n)
	for _, step := range s.Steps {
		if step.Vehicle < n && t >= step.From && t < step.To {
			out[step.Vehicle] |= step.input
		}
	}
	return out
}

// Hold adds a step per vehicle that holds controls from the start of the
// flight until past duration.
func (s *Script) Hold(controls []string, duration float64) {
	for i := range s.Vehicles {
		s.Steps = append(s.Steps, Step{Vehicle: i, Controls: controls, To: duration + 1})
	}
}

// Config returns the run configuration, filling gaps from def.
func (s *Script) Config(def dynamo.Config) dynamo.Config {
	cfg := def
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	return cfg
}

// NewSession builds a session with one vehicle per spec, applying params
// to each and registering the standard metrics.
func NewSession(specs []*config.VehicleSpec, params map[string]float64, log zerolog.Logger) (*sim.Session, error) {
	session := sim.NewSession(log)
	bodies := make([]metrics.MassProperties, 0, len(specs))
	for _, spec := range specs {
		v, err := vehicle.New(*spec)
		if err != nil {
			return nil, err
		}
		for k, val := range params {
			if err := v.SetParam(k, val); err != nil {
				return nil, fmt.Errorf("%s: %w", spec.Name, err)
			}
		}
		session.Add(v)
		bodies = append(bodies, v.Body())
	}
	for _, m := range metrics.Standard(bodies...) {
		session.AddMetric(m)
	}
	return session, nil
}

// RunScript flies the script's vehicles, or the given fallback vehicles
// when the script names none.
func RunScript(ctx context.Context, script *Script, fallback []string, def dynamo.Config, log zerolog.Logger) (*sim.Result, error) {
	names := script.Vehicles
	if len(names) == 0 {
		names = fallback
	}
	specs := make([]*config.VehicleSpec, 0, len(names))
	for _, name := range names {
		spec, err := config.ResolveSpec(name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	session, err := NewSession(specs, script.Params, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("script", script.Name).Int("steps", len(script.Steps)).Msg("running script")
	return session.Run(ctx, script.Config(def), script)
}

// ParameterSweep flies one vehicle repeatedly while stepping a parameter.
type ParameterSweep struct {
	Spec      *config.VehicleSpec
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Input     control.Input
	Config    dynamo.Config
}

type SweepResult struct {
	ParamValue    float64
	FinalPosition mgl64.Vec3
	FinalEuler    mgl64.Vec3
	Metrics       map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, log zerolog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.ParamMin + float64(i)*paramStep
		session, err := NewSession([]*config.VehicleSpec{sweep.Spec}, map[string]float64{sweep.ParamName: val}, log)
		if err != nil {
			return nil, err
		}

		result, err := session.Run(ctx, sweep.Config, sim.Constant(sweep.Input))
		if err != nil {
			return results, err
		}

		final := result.Final(0)
		results = append(results, SweepResult{
			ParamValue:    val,
			FinalPosition: final.Position,
			FinalEuler:    final.Euler,
			Metrics:       result.Metrics,
		})
		log.Debug().Str("param", sweep.ParamName).Float64("value", val).Msg("sweep step complete")
	}
	return results, nil
}
