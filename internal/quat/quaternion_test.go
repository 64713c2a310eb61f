package quat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

// near compares component by component with an absolute tolerance.
func near(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func vecApprox(a, b mgl64.Vec3, tol float64) bool {
	return near(a[:], b[:], tol)
}

func TestNormalizeUnitLength(t *testing.T) {
	tests := []Quaternion{
		New(1, 2, 3, 4),
		New(-0.3, 0.1, 7, 0),
		New(1e-6, 0, 0, 1e-6),
		FromEuler(0.4, -1.1, 2.7).Scale(13),
	}

	for _, q := range tests {
		if m := q.Normalize().Magnitude(); math.Abs(m-1) > 1e-12 {
			t.Errorf("|normalize(%v)| = %v, want 1", q, m)
		}
	}
}

func TestNormalizeZero(t *testing.T) {
	q := Quaternion{}.Normalize()
	if q != (Quaternion{}) {
		t.Errorf("normalize(0) = %v, want zero quaternion", q)
	}
	if math.IsNaN(q.W) {
		t.Fatal("normalize(0) produced NaN")
	}
}

func TestEulerRoundTrip(t *testing.T) {
	tests := []struct {
		name             string
		roll, pitch, yaw float64
	}{
		{"zero", 0, 0, 0},
		{"roll only", 0.7, 0, 0},
		{"pitch only", 0, -0.9, 0},
		{"yaw only", 0, 0, 2.5},
		{"mixed", 0.3, 0.4, -1.2},
		{"large yaw", -2.9, 1.2, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := FromEuler(tt.roll, tt.pitch, tt.yaw)
			got := q.ToEuler(false)
			want := mgl64.Vec3{tt.roll, tt.pitch, tt.yaw}
			if !vecApprox(got, want, 1e-9) {
				t.Errorf("ToEuler(FromEuler(%v)) = %v", want, got)
			}
		})
	}
}

func TestToEulerDegrees(t *testing.T) {
	got := FromEuler(0, 0, math.Pi/2).ToEuler(true)
	if !vecApprox(got, mgl64.Vec3{0, 0, 90}, 1e-9) {
		t.Errorf("got %v, want (0, 0, 90)", got)
	}
}

func TestFromEulerComposition(t *testing.T) {
	roll, pitch, yaw := 0.2, -0.5, 1.3
	qx := FromEuler(roll, 0, 0)
	qy := FromEuler(0, pitch, 0)
	qz := FromEuler(0, 0, yaw)

	want := qx.Mul(qy).Mul(qz)
	if got := FromEuler(roll, pitch, yaw); !got.ApproxEqual(want, eps) {
		t.Errorf("FromEuler = %v, want qx*qy*qz = %v", got, want)
	}
}

func TestConjugateProductIsIdentity(t *testing.T) {
	q := New(0.3, -0.2, 0.9, 0.4).Normalize()
	if got := q.Mul(q.Conjugate()); !got.ApproxEqual(Identity(), eps) {
		t.Errorf("q*conj(q) = %v, want identity", got)
	}
}

func TestInverseDivide(t *testing.T) {
	p := New(1, 2, 3, 4)
	q := New(-0.5, 0.25, 2, 1)

	if got := p.Mul(q).Div(q); !got.ApproxEqual(p, 1e-9) {
		t.Errorf("(p*q)/q = %v, want %v", got, p)
	}
	if got := (Quaternion{}).Inverse(); got != (Quaternion{}) {
		t.Errorf("inverse(0) = %v", got)
	}
}

func TestRotateIdentity(t *testing.T) {
	v := mgl64.Vec3{1.5, -2, 7}
	if got := Identity().RotateVec(v); !vecApprox(got, v, eps) {
		t.Errorf("rotate(identity, v) = %v, want %v", got, v)
	}
}

func TestRotateAxes(t *testing.T) {
	tests := []struct {
		name string
		q    Quaternion
		in   mgl64.Vec3
		want mgl64.Vec3
	}{
		{"yaw 90 x->y", FromEuler(0, 0, math.Pi/2), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{"roll 90 y->z", FromEuler(math.Pi/2, 0, 0), mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"pitch 90 z->x", FromEuler(0, math.Pi/2, 0), mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.RotateVec(tt.in); !vecApprox(got, tt.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixMatchesRotate(t *testing.T) {
	q := FromEuler(0.6, -0.3, 2.2)
	m := q.Mat3()
	for _, v := range []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {3, -4, 0.5}} {
		if got, want := m.Mul3x1(v), q.RotateVec(v); !vecApprox(got, want, 1e-12) {
			t.Errorf("R*%v = %v, rotate = %v", v, got, want)
		}
	}

	want := mgl64.Rotate3DX(0.6).Mul3(mgl64.Rotate3DY(-0.3)).Mul3(mgl64.Rotate3DZ(2.2))
	if !near(m[:], want[:], 1e-12) {
		t.Errorf("Mat3 = %v, want Rx*Ry*Rz = %v", m, want)
	}
}

func TestFromMatrixRoundTrip(t *testing.T) {
	for _, q := range []Quaternion{
		Identity(),
		FromEuler(0.1, 0.2, 0.3),
		FromEuler(math.Pi-0.01, 0, 0),
		FromEuler(0, math.Pi/2-0.01, 0),
		FromEuler(0, 0, -math.Pi+0.01),
	} {
		got := FromMat4(q.Mat4())
		// q and -q describe the same rotation
		if !got.ApproxEqual(q, 1e-9) && !got.ApproxEqual(q.Scale(-1), 1e-9) {
			t.Errorf("FromMat4(%v.Mat4()) = %v", q, got)
		}
	}
}

func TestMglAgreement(t *testing.T) {
	q := FromEuler(0.5, 0.25, -0.75)
	v := mgl64.Vec3{0.3, 1, -2}
	if got, want := q.RotateVec(v), q.Mgl().Rotate(v); !vecApprox(got, want, 1e-12) {
		t.Errorf("RotateVec = %v, mgl64 = %v", got, want)
	}
	if back := FromMgl(q.Mgl()); back != q {
		t.Errorf("FromMgl(Mgl()) = %v, want %v", back, q)
	}
}
