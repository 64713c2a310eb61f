package config

import (
	"sort"

	"github.com/san-kum/flysim/internal/control"
)

func preset(name string, k control.Kind, model string, mass float64, rotation [3]float64) VehicleSpec {
	l := control.DefaultLimits(k)
	return VehicleSpec{
		Name:      name,
		Kind:      k.String(),
		ModelPath: model,
		Rotation:  rotation,
		Scale:     DefaultScale,
		Mass:      mass,
		Camera: CameraSpec{
			Offset: DefaultCameraOffset,
			Up:     DefaultCameraUp,
			FovY:   DefaultFovY,
		},
		Thrust: l.Thrust,
		Moment: l.Moment,
	}
}

// Presets are the built-in vehicles, usable wherever a spec path is accepted.
var Presets = map[string]VehicleSpec{
	"plane":     preset("plane", control.FixedWing, "resources/plane/plane.obj", 2.0, [3]float64{}),
	"drone":     preset("drone", control.Multirotor, "resources/drone/drone.obj", 1.0, [3]float64{}),
	"spaceship": preset("spaceship", control.Spacecraft, "resources/spaceship/spaceship.obj", 5.0, [3]float64{}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *VehicleSpec {
	spec, ok := Presets[name]
	if !ok {
		return nil
	}
	if spec.Inertia != nil {
		inertia := *spec.Inertia
		spec.Inertia = &inertia
	}
	return &spec
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
