package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/dynamo"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultFPS, cfg.Window.FPS)
	assert.Greater(t, cfg.Sim.Dt, 0.0)
	assert.Greater(t, cfg.Sim.Duration, 0.0)
	assert.Equal(t, []string{"plane", "drone", "spaceship"}, cfg.Vehicles)
}

func TestSaveLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flysim.yaml")
	cfg := DefaultConfig()
	cfg.Window.Title = "test"
	cfg.Vehicles = []string{"drone"}

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeFile(t, "flysim.yaml", "window:\n  fps: 30\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Window.FPS)
	assert.Equal(t, DefaultWidth, cfg.Window.Width)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
}

func TestLoadSpecDefaults(t *testing.T) {
	path := writeFile(t, "glider.json", `{}`)

	spec, err := LoadSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "glider", spec.Name)
	assert.Equal(t, "plane", spec.Kind)
	assert.Equal(t, DefaultModelPath, spec.ModelPath)
	assert.Empty(t, spec.TexturePath)
	assert.Equal(t, 1.0, spec.Scale)
	assert.Equal(t, 1.0, spec.Mass)
	assert.Equal(t, [3]float64{}, spec.Position)
	assert.Equal(t, [3]float64{}, spec.Rotation)
	assert.Nil(t, spec.Inertia)
	assert.Equal(t, DefaultCameraOffset, spec.Camera.Offset)
	assert.Equal(t, DefaultCameraUp, spec.Camera.Up)
	assert.Equal(t, DefaultFovY, spec.Camera.FovY)
	assert.Equal(t, control.DefaultLimits(control.FixedWing), spec.Limits())
}

func TestLoadSpecValues(t *testing.T) {
	path := writeFile(t, "quad.json", `{
		"name": "quad",
		"kind": "drone",
		"modelPath": "drone.obj",
		"texturePath": "drone.png",
		"position": [1, 2, 3],
		"rotation": [0, 0.5, 0],
		"scale": 0.25,
		"mass": 1.5,
		"inertia": [0.1, 0.2, 0.3],
		"camera": {"offset": [0, 2, -6], "fovY": 45},
		"thrust": {"max": 20}
	}`)

	spec, err := LoadSpec(path)
	require.NoError(t, err)

	kind, err := spec.ParsedKind()
	require.NoError(t, err)
	assert.Equal(t, control.Multirotor, kind)
	assert.Equal(t, "drone.png", spec.TexturePath)
	assert.Equal(t, [3]float64{1, 2, 3}, spec.Position)
	assert.Equal(t, 0.25, spec.Scale)
	require.NotNil(t, spec.Inertia)
	assert.Equal(t, [3]float64{0.1, 0.2, 0.3}, *spec.Inertia)
	assert.Equal(t, 0.3, spec.InertiaMatrix().At(2, 2))
	assert.Equal(t, [3]float64{0, 2, -6}, spec.Camera.Offset)
	assert.Equal(t, DefaultCameraUp, spec.Camera.Up)
	assert.Equal(t, 45.0, spec.Camera.FovY)

	// unset limit fields fall back to the drone tuning
	drone := control.DefaultLimits(control.Multirotor)
	assert.Equal(t, 20.0, spec.Thrust.Max)
	assert.Equal(t, drone.Thrust.Min, spec.Thrust.Min)
	assert.Equal(t, drone.Thrust.Increment, spec.Thrust.Increment)
	assert.Equal(t, drone.Moment, spec.Moment)
}

func TestLoadSpecYAML(t *testing.T) {
	path := writeFile(t, "ship.yaml", "kind: spaceship\nmass: 5\n")

	spec, err := LoadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "spaceship", spec.Kind)
	assert.Equal(t, 5.0, spec.Mass)
}

func TestLoadSpecErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			wantErr: dynamo.ErrSpecNotFound,
		},
		{
			name:    "malformed json",
			path:    func(t *testing.T) string { return writeFile(t, "bad.json", `{"mass": `) },
			wantErr: dynamo.ErrSpecInvalid,
		},
		{
			name:    "unknown kind",
			path:    func(t *testing.T) string { return writeFile(t, "blimp.json", `{"kind": "blimp"}`) },
			wantErr: dynamo.ErrUnknownKind,
		},
		{
			name:    "negative mass",
			path:    func(t *testing.T) string { return writeFile(t, "neg.json", `{"mass": -1}`) },
			wantErr: dynamo.ErrSpecInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpec(tt.path(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPreset(t *testing.T) {
	spec := GetPreset("plane")
	require.NotNil(t, spec)
	assert.Equal(t, 2.0, spec.Mass)
	assert.Equal(t, 300.0, spec.Thrust.Increment)

	spec.Mass = 99
	assert.Equal(t, 2.0, Presets["plane"].Mass, "preset must not be shared")

	assert.Nil(t, GetPreset("zeppelin"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"drone", "plane", "spaceship"}, ListPresets())
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}

func TestResolveSpec(t *testing.T) {
	spec, err := ResolveSpec("drone")
	require.NoError(t, err)
	assert.Equal(t, "drone", spec.Kind)

	path := writeFile(t, "custom.json", `{"kind": "spaceship"}`)
	spec, err = ResolveSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", spec.Name)

	_, err = ResolveSpec("does-not-exist")
	assert.ErrorIs(t, err, dynamo.ErrSpecNotFound)
}

func TestLoadVehicles(t *testing.T) {
	cfg := DefaultConfig()
	specs, err := cfg.LoadVehicles()
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "plane", specs[0].Name)

	cfg.Vehicles = append(cfg.Vehicles, "missing.json")
	_, err = cfg.LoadVehicles()
	assert.Error(t, err)
}
