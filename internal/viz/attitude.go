package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/quat"
)

type Edge struct{ A, B mgl64.Vec3 }

// Silhouette is a body-frame wireframe of a vehicle: x right, y up, z forward.
func Silhouette(k control.Kind) []Edge {
	switch k {
	case control.Multirotor:
		return []Edge{
			{mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 0, 1}},
			{mgl64.Vec3{-1, 0, 1}, mgl64.Vec3{1, 0, -1}},
			{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1.4}},
			{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0.5, 0}},
		}
	case control.Spacecraft:
		return []Edge{
			{mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{-0.7, 0, -1}},
			{mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{0.7, 0, -1}},
			{mgl64.Vec3{-0.7, 0, -1}, mgl64.Vec3{0.7, 0, -1}},
			{mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{0, 0.6, -1}},
		}
	default:
		return []Edge{
			{mgl64.Vec3{0, 0, -1.2}, mgl64.Vec3{0, 0, 1.5}},
			{mgl64.Vec3{-1.6, 0, 0.2}, mgl64.Vec3{1.6, 0, 0.2}},
			{mgl64.Vec3{-0.6, 0, -1.1}, mgl64.Vec3{0.6, 0, -1.1}},
			{mgl64.Vec3{0, 0, -1.1}, mgl64.Vec3{0, 0.6, -1.2}},
		}
	}
}

// AttitudeView draws a rotated wireframe as seen from behind and slightly
// above, the way the chase camera frames the vehicle.
type AttitudeView struct {
	Distance  float64
	Elevation float64
}

func NewAttitudeView() AttitudeView {
	return AttitudeView{Distance: 6, Elevation: 0.35}
}

// project maps a world-aligned point to canvas dots with a simple
// perspective divide. The camera looks down +z, so +x lands on the left.
func (a AttitudeView) project(c *Canvas, p mgl64.Vec3) (int, int, bool) {
	ce, se := math.Cos(a.Elevation), math.Sin(a.Elevation)
	y := p[1]*ce + p[2]*se
	z := p[2]*ce - p[1]*se + a.Distance
	if z <= 0.1 {
		return 0, 0, false
	}
	w, h := c.Size()
	f := float64(min(w, h)) * 0.9
	sx := float64(w)/2 - p[0]/z*f
	sy := float64(h)/2 - y/z*f
	return int(math.Round(sx)), int(math.Round(sy)), true
}

func (a AttitudeView) Draw(c *Canvas, edges []Edge, q quat.Quaternion) {
	for _, e := range edges {
		x0, y0, ok0 := a.project(c, q.RotateVec(e.A))
		x1, y1, ok1 := a.project(c, q.RotateVec(e.B))
		if ok0 && ok1 {
			c.Line(x0, y0, x1, y1)
		}
	}
}
