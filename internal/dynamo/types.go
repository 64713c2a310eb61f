package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/flysim/internal/quat"
)

// Vec6 is a generalized force or velocity: indices 0..2 are linear,
// 3..5 angular.
type Vec6 [6]float64

func Join(lin, ang mgl64.Vec3) Vec6 {
	return Vec6{lin[0], lin[1], lin[2], ang[0], ang[1], ang[2]}
}

func (v Vec6) Linear() mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func (v Vec6) Angular() mgl64.Vec3 {
	return mgl64.Vec3{v[3], v[4], v[5]}
}

func (v Vec6) Add(o Vec6) Vec6 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec6) Sub(o Vec6) Vec6 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec6) Scale(s float64) Vec6 {
	for i := range v {
		v[i] *= s
	}
	return v
}

func (v Vec6) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vec6) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vec6) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f | %.3f %.3f %.3f]", v[0], v[1], v[2], v[3], v[4], v[5])
}

// Mat6 is a row-major 6x6 matrix.
type Mat6 [6][6]float64

// BlockDiag returns [a 0; 0 b].
func BlockDiag(a, b mgl64.Mat3) Mat6 {
	var m Mat6
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r][c] = a.At(r, c)
			m[r+3][c+3] = b.At(r, c)
		}
	}
	return m
}

func (m Mat6) MulVec(v Vec6) Vec6 {
	var out Vec6
	for r := 0; r < 6; r++ {
		sum := 0.0
		for c := 0; c < 6; c++ {
			sum += m[r][c] * v[c]
		}
		out[r] = sum
	}
	return out
}

// Sample is one recorded vehicle state at a point in simulated time.
type Sample struct {
	Time        float64
	Vehicle     int
	Position    mgl64.Vec3
	Orientation quat.Quaternion
	Euler       mgl64.Vec3 // degrees
	Nu          Vec6
	Tau         Vec6
}

// Speed is the magnitude of the body-frame linear velocity.
func (s Sample) Speed() float64 {
	return s.Nu.Linear().Len()
}

// BodyRate is the magnitude of the angular velocity.
func (s Sample) BodyRate() float64 {
	return s.Nu.Angular().Len()
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       1.0 / 60.0,
		Duration: 10.0,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %v: %w", c.Dt, ErrInvalidStep)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %v: %w", c.Duration, ErrInvalidStep)
	}
	return nil
}

func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}
