package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/physics"
	"github.com/san-kum/flysim/internal/quat"
)

var _ = Describe("EulerState", func() {
	It("has identity blocks at zero attitude", func() {
		r, t := physics.EulerState{}.Jacobian()
		id := mgl64.Ident3()
		expectNear(r[:], id[:], 1e-12)
		expectNear(t[:], id[:], 1e-12)
	})

	It("uses the same rotation as the quaternion of its angles", func() {
		e := physics.EulerState{Angles: mgl64.Vec3{0.3, -0.4, 1.1}}
		r, _ := e.Jacobian()
		want := quat.FromEulerVec(e.Angles).Mat3()
		expectNear(r[:], want[:], 1e-12)
	})

	It("couples body rates into Euler rates when banked", func() {
		phi, theta := 0.5, 0.2
		_, t := physics.EulerState{Angles: mgl64.Vec3{phi, theta, 0}}.Jacobian()
		Expect(t.At(0, 1)).To(BeNumerically("~", math.Sin(phi)*math.Tan(theta), 1e-12))
		Expect(t.At(1, 2)).To(BeNumerically("~", -math.Sin(phi), 1e-12))
		Expect(t.At(2, 2)).To(BeNumerically("~", math.Cos(phi)/math.Cos(theta), 1e-12))
	})

	It("returns a position delta and the matching orientation", func() {
		e := &physics.EulerState{Position: mgl64.Vec3{1, 1, 1}}
		nu := dynamo.Vec6{0, 2, 0, 0, 0, 0.6}

		delta, q := e.Step(nu, 0.5)

		expectNear(delta[:], []float64{0, 1, 0}, 1e-12)
		expectNear(e.Position[:], []float64{1, 2, 1}, 1e-12)
		Expect(e.Angles[2]).To(BeNumerically("~", 0.3, 1e-12))
		Expect(q.ApproxEqual(quat.FromEuler(0, 0, 0.3), 1e-12)).To(BeTrue())
	})

	It("resets to the origin with the spawn angles", func() {
		e := &physics.EulerState{Position: mgl64.Vec3{3, 2, 1}, Angles: mgl64.Vec3{1, 1, 1}}
		e.Reset(mgl64.Vec3{0, 0.5, 0})
		Expect(e.Position).To(Equal(mgl64.Vec3{}))
		Expect(e.Angles).To(Equal(mgl64.Vec3{0, 0.5, 0}))
	})
})
