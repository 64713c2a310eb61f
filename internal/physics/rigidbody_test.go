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

var _ = Describe("RigidBody", func() {
	const dt = 1.0 / 60.0

	var body *physics.RigidBody

	BeforeEach(func() {
		body = physics.NewRigidBody(mgl64.Vec3{}, quat.Identity(), 2.0, nil)
	})

	Describe("construction", func() {
		It("uses the uniform inertia approximation", func() {
			Expect(body.Inertia.At(0, 0)).To(BeNumerically("~", 2.0*2/6, 1e-12))
			Expect(body.Inertia.At(1, 1)).To(Equal(body.Inertia.At(0, 0)))
			Expect(body.Inertia.At(0, 1)).To(BeZero())
		})

		It("precomputes the block-diagonal inverse mass matrix", func() {
			invM := body.InverseMassMatrix()
			Expect(invM[0][0]).To(BeNumerically("~", 0.5, 1e-12))
			Expect(invM[2][2]).To(BeNumerically("~", 0.5, 1e-12))
			Expect(invM[3][3]).To(BeNumerically("~", 1.5, 1e-12))
			Expect(invM[0][3]).To(BeZero())
			Expect(invM[4][1]).To(BeZero())
		})

		It("accepts an inertia override", func() {
			j := mgl64.Diag3(mgl64.Vec3{1, 2, 4})
			b := physics.NewRigidBody(mgl64.Vec3{}, quat.Identity(), 1, &j)
			Expect(b.InverseMassMatrix()[5][5]).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("treats a singular mass block as no response", func() {
			b := physics.NewRigidBody(mgl64.Vec3{}, quat.Identity(), 0, nil)
			nu := b.Dynamics(dynamo.Vec6{10, 10, 10, 1, 1, 1}, dt)
			Expect(nu).To(Equal(dynamo.Vec6{}))
		})
	})

	Describe("Dynamics", func() {
		It("scales the inverse mass response by dt", func() {
			nu := body.Dynamics(dynamo.Vec6{0, 0, 4, 0, 0, 0}, dt)
			Expect(nu[2]).To(BeNumerically("~", 4/2.0*dt, 1e-12))
			Expect(nu.Angular()).To(Equal(mgl64.Vec3{}))
		})

		It("does not mutate the caller's tau", func() {
			body.Feedback = dynamo.Vec6{1, 1, 1, 1, 1, 1}
			tau := dynamo.Vec6{5, 0, 0, 0, 0, 0}
			body.Dynamics(tau, dt)
			Expect(tau).To(Equal(dynamo.Vec6{5, 0, 0, 0, 0, 0}))
		})

		It("subtracts the previous feedback", func() {
			body.Feedback = dynamo.Vec6{2, 0, 0, 0, 0, 0}
			nu := body.Dynamics(dynamo.Vec6{2, 0, 0, 0, 0, 0}, dt)
			Expect(nu[0]).To(BeNumerically("~", 0, 1e-12))
		})

		It("records the gyroscopic feedback for the next tick", func() {
			nu := body.Dynamics(dynamo.Vec6{0, 0, 60, 0, 60, 0}, dt)
			v, omega := nu.Linear(), nu.Angular()

			wantLin := omega.Cross(v.Mul(body.Mass))
			wantAng := body.Inertia.Mul3x1(omega).Cross(omega).Mul(-1)

			expectNear(body.Feedback[:3], wantLin[:], 1e-12)
			expectNear(body.Feedback[3:], wantAng[:], 1e-12)
			Expect(body.Feedback.Linear().Len()).To(BeNumerically(">", 0))
		})

		It("settles to zero velocity with zero input", func() {
			body.Feedback = dynamo.Vec6{0.3, -0.2, 0.1, 0.05, 0.02, -0.04}
			var nu dynamo.Vec6
			for i := 0; i < 200; i++ {
				nu = body.Dynamics(dynamo.Vec6{}, dt)
			}
			Expect(nu.Norm()).To(BeNumerically("<", 1e-9))
			Expect(body.Feedback.Norm()).To(BeNumerically("<", 1e-9))
		})
	})

	Describe("Kinematics", func() {
		It("leaves the body untouched", func() {
			body.Kinematics(dynamo.Vec6{1, 2, 3, 0.1, 0.2, 0.3}, dt)
			Expect(body.Position).To(Equal(mgl64.Vec3{}))
			Expect(body.Orientation).To(Equal(quat.Identity()))
		})

		It("rotates the body-frame velocity into the world frame", func() {
			body.Orientation = quat.FromEuler(0, 0, math.Pi/2)
			delta, _ := body.Kinematics(dynamo.Vec6{1, 0, 0, 0, 0, 0}, 0.5)
			expectNear(delta[:], []float64{0, 0.5, 0}, 1e-12)
		})

		It("keeps the orientation on the unit sphere", func() {
			nu := dynamo.Vec6{0, 0, 0, 0.4, -0.7, 1.1}
			for i := 0; i < 500; i++ {
				body.Apply(body.Kinematics(nu, dt))
				Expect(body.Orientation.Magnitude()).To(BeNumerically("~", 1, 1e-5))
			}
		})

		It("integrates a constant yaw rate", func() {
			rate := 0.5
			steps := 120
			for i := 0; i < steps; i++ {
				body.Apply(body.Kinematics(dynamo.Vec6{0, 0, 0, 0, 0, rate}, dt))
			}
			yaw := body.Orientation.ToEuler(false)[2]
			Expect(yaw).To(BeNumerically("~", rate*dt*float64(steps), 1e-4))
		})

		It("pulls a drifted quaternion back toward unit norm", func() {
			body.Orientation = quat.New(0, 0, 0, 1.002)
			_, q := body.Kinematics(dynamo.Vec6{}, dt)
			Expect(q.Magnitude()).To(BeNumerically("~", 1, 1e-12))
		})
	})

	Describe("end to end", func() {
		It("matches the closed-form semi-implicit prediction", func() {
			const force = 3.0
			const steps = 50
			tau := dynamo.Vec6{0, 0, force, 0, 0, 0}

			prev := 0.0
			for n := 1; n <= steps; n++ {
				nu := body.Dynamics(tau, dt)
				body.Apply(body.Kinematics(nu, dt))

				z := body.Position[2]
				Expect(z).To(BeNumerically(">", prev))
				Expect(z).To(BeNumerically("~", float64(n)*force*dt*dt/body.Mass, 1e-12))
				prev = z
			}
			Expect(body.Position[0]).To(BeZero())
			Expect(body.Position[1]).To(BeZero())
		})
	})

	Describe("Reset", func() {
		It("returns to the origin with the given orientation and no feedback", func() {
			spawn := quat.FromEuler(0.1, 0.2, 0.3)
			body.Feedback = dynamo.Vec6{1, 2, 3, 4, 5, 6}
			body.Position = mgl64.Vec3{5, 5, 5}

			body.Reset(spawn)

			Expect(body.Position).To(Equal(mgl64.Vec3{}))
			Expect(body.Orientation).To(Equal(spawn))
			Expect(body.Feedback).To(Equal(dynamo.Vec6{}))
		})
	})

	Describe("parameters", func() {
		It("rebuilds the inverse mass matrix when the mass changes", func() {
			Expect(body.SetParam("mass", 4)).To(Succeed())
			Expect(body.InverseMassMatrix()[0][0]).To(BeNumerically("~", 0.25, 1e-12))
			Expect(body.GetParams()).To(HaveKeyWithValue("mass", 4.0))
		})

		It("rejects unknown parameters", func() {
			Expect(body.SetParam("drag", 1)).To(HaveOccurred())
		})
	})

	It("reports kinetic energy", func() {
		e := body.KineticEnergy(dynamo.Vec6{1, 0, 0, 0, 0, 3})
		Expect(e).To(BeNumerically("~", 0.5*2*1+0.5*(2.0*2/6)*9, 1e-12))
	})
})
