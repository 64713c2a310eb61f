package analysis

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flysim/internal/dynamo"
)

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		freq float64
		dt   float64
		n    int
	}{
		{2, 0.01, 500},
		{5, 1.0 / 60, 600},
		{0.5, 0.05, 400},
	}

	for _, tt := range tests {
		got := DominantFrequency(sine(tt.freq, tt.dt, tt.n), tt.dt)
		res := 1 / (float64(tt.n) * tt.dt)
		if math.Abs(got-tt.freq) > res {
			t.Errorf("freq %v: got %v (resolution %v)", tt.freq, got, res)
		}
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 7
	}
	if got := DominantFrequency(flat, 0.01); got != 0 {
		t.Errorf("flat signal frequency = %v", got)
	}
	if got := DominantFrequency([]float64{1}, 0.01); got != 0 {
		t.Errorf("single sample frequency = %v", got)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	if got := len(PowerSpectrum(make([]float64, 100))); got != 51 {
		t.Errorf("len = %d, want 51", got)
	}
	if got := len(PowerSpectrum(make([]float64, 77))); got != 39 {
		t.Errorf("len = %d, want 39", got)
	}
}

func TestAnalyze(t *testing.T) {
	dt := 0.01
	samples := make([]dynamo.Sample, 400)
	for i := range samples {
		ts := float64(i) * dt
		samples[i] = dynamo.Sample{
			Time:     ts,
			Position: mgl64.Vec3{0, 10 * ts, 0},
			Euler:    mgl64.Vec3{0, 5 * math.Sin(2*math.Pi*2.5*ts), 0},
		}
	}

	r, err := Analyze(samples, "pitch", dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.DominantHz-2.5) > 0.25 {
		t.Errorf("dominant = %v, want 2.5", r.DominantHz)
	}
	if r.Max > 5+1e-9 || r.Min < -5-1e-9 || r.Max < 4.9 {
		t.Errorf("range = [%v, %v]", r.Min, r.Max)
	}

	alt, err := Analyze(samples, "y", dt)
	if err != nil {
		t.Fatal(err)
	}
	if alt.Min != 0 || math.Abs(alt.Max-39.9) > 1e-9 {
		t.Errorf("altitude range = [%v, %v]", alt.Min, alt.Max)
	}

	if _, err := Analyze(samples, "airspeed", dt); err == nil {
		t.Error("expected error for unknown channel")
	}
}
