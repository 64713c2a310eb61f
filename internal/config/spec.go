package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"

	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/dynamo"
)

const (
	DefaultModelPath = "model.obj"
	DefaultScale     = 1.0
	DefaultMass      = 1.0
	DefaultFovY      = 30.0
)

var (
	DefaultCameraOffset = [3]float64{0, 5, -15}
	DefaultCameraUp     = [3]float64{0, 1, 0}
)

// CameraSpec places the follow camera relative to the vehicle body frame.
type CameraSpec struct {
	Offset [3]float64 `json:"offset" yaml:"offset" mapstructure:"offset"`
	Up     [3]float64 `json:"up" yaml:"up" mapstructure:"up"`
	FovY   float64    `json:"fovY" yaml:"fovY" mapstructure:"fovY"`
}

// VehicleSpec is the static description of a vehicle. It is never mutated
// by the simulation.
type VehicleSpec struct {
	Name        string      `json:"name" yaml:"name" mapstructure:"name"`
	Kind        string      `json:"kind" yaml:"kind" mapstructure:"kind"`
	ModelPath   string      `json:"modelPath" yaml:"modelPath" mapstructure:"modelPath"`
	TexturePath string      `json:"texturePath,omitempty" yaml:"texturePath,omitempty" mapstructure:"texturePath"`
	Position    [3]float64  `json:"position" yaml:"position" mapstructure:"position"`
	Rotation    [3]float64  `json:"rotation" yaml:"rotation" mapstructure:"rotation"` // radians
	Scale       float64     `json:"scale" yaml:"scale" mapstructure:"scale"`
	Mass        float64     `json:"mass" yaml:"mass" mapstructure:"mass"`
	Inertia     *[3]float64 `json:"inertia,omitempty" yaml:"inertia,omitempty" mapstructure:"inertia"`
	Camera      CameraSpec  `json:"camera" yaml:"camera" mapstructure:"camera"`

	Thrust control.Range `json:"thrust" yaml:"thrust" mapstructure:"thrust"`
	Moment control.Range `json:"moment" yaml:"moment" mapstructure:"moment"`
}

func (s VehicleSpec) ParsedKind() (control.Kind, error) {
	return control.ParseKind(s.Kind)
}

func (s VehicleSpec) Limits() control.Limits {
	return control.Limits{Thrust: s.Thrust, Moment: s.Moment}
}

func (s VehicleSpec) SpawnPosition() mgl64.Vec3 {
	return mgl64.Vec3(s.Position)
}

func (s VehicleSpec) SpawnRotation() mgl64.Vec3 {
	return mgl64.Vec3(s.Rotation)
}

// InertiaMatrix returns the diagonal override, or nil for the uniform default.
func (s VehicleSpec) InertiaMatrix() *mgl64.Mat3 {
	if s.Inertia == nil {
		return nil
	}
	m := mgl64.Diag3(mgl64.Vec3(*s.Inertia))
	return &m
}

func (s VehicleSpec) Validate() error {
	if _, err := s.ParsedKind(); err != nil {
		return err
	}
	values := []float64{s.Mass, s.Scale, s.Camera.FovY}
	values = append(values, s.Position[:]...)
	values = append(values, s.Rotation[:]...)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: non-finite value: %w", s.Name, dynamo.ErrSpecInvalid)
		}
	}
	if s.Mass < 0 {
		return fmt.Errorf("%s: negative mass %v: %w", s.Name, s.Mass, dynamo.ErrSpecInvalid)
	}
	return nil
}

func setSpecDefaults(v *viper.Viper) {
	v.SetDefault("kind", control.FixedWing.String())
	v.SetDefault("modelPath", DefaultModelPath)
	v.SetDefault("scale", DefaultScale)
	v.SetDefault("mass", DefaultMass)
	v.SetDefault("position", []float64{0, 0, 0})
	v.SetDefault("rotation", []float64{0, 0, 0})

	v.SetDefault("camera.offset", DefaultCameraOffset[:])
	v.SetDefault("camera.up", DefaultCameraUp[:])
	v.SetDefault("camera.fovY", DefaultFovY)
}

func setLimitDefaults(v *viper.Viper, k control.Kind) {
	l := control.DefaultLimits(k)
	v.SetDefault("thrust.min", l.Thrust.Min)
	v.SetDefault("thrust.max", l.Thrust.Max)
	v.SetDefault("thrust.increment", l.Thrust.Increment)
	v.SetDefault("moment.min", l.Moment.Min)
	v.SetDefault("moment.max", l.Moment.Max)
	v.SetDefault("moment.increment", l.Moment.Increment)
}

// LoadSpec reads a vehicle spec file. The format follows the extension
// (json, yaml); missing keys take their defaults.
func LoadSpec(path string) (*VehicleSpec, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, dynamo.ErrSpecNotFound)
		}
		return nil, err
	}

	v := viper.New()
	setSpecDefaults(v)
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading vehicle spec %s: %v: %w", path, err, dynamo.ErrSpecInvalid)
	}

	kind, err := control.ParseKind(v.GetString("kind"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	setLimitDefaults(v, kind)

	spec := &VehicleSpec{}
	if err := v.Unmarshal(spec); err != nil {
		return nil, fmt.Errorf("error decoding vehicle spec %s: %v: %w", path, err, dynamo.ErrSpecInvalid)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ResolveSpec returns the preset of that name, or loads the argument as a
// spec file.
func ResolveSpec(nameOrPath string) (*VehicleSpec, error) {
	if spec := GetPreset(nameOrPath); spec != nil {
		return spec, nil
	}
	return LoadSpec(nameOrPath)
}
