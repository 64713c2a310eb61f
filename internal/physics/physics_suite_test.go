package physics_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPhysics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Physics Suite")
}

// expectNear compares vectors or matrices component by component with an
// absolute tolerance.
func expectNear(got, want []float64, tol float64) {
	ExpectWithOffset(1, got).To(HaveLen(len(want)))
	for i := range want {
		ExpectWithOffset(1, got[i]).To(BeNumerically("~", want[i], tol), "component %d of %v", i, got)
	}
}
