package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flysim/internal/camera"
)

var (
	ColBg      = rl.RayWhite
	ColPanel   = rl.Fade(rl.SkyBlue, 0.5)
	ColBorder  = rl.Blue
	ColText    = rl.Black
	ColTextDim = rl.DarkGray
)

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// matrix converts a column-major mgl64 matrix to raylib's layout.
func matrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M4: float32(m[4]), M8: float32(m[8]), M12: float32(m[12]),
		M1: float32(m[1]), M5: float32(m[5]), M9: float32(m[9]), M13: float32(m[13]),
		M2: float32(m[2]), M6: float32(m[6]), M10: float32(m[10]), M14: float32(m[14]),
		M3: float32(m[3]), M7: float32(m[7]), M11: float32(m[11]), M15: float32(m[15]),
	}
}

func camera3D(r *camera.Rig) rl.Camera3D {
	return rl.NewCamera3D(vec3(r.Position), vec3(r.Target), vec3(r.Up), float32(r.FovY), rl.CameraPerspective)
}

func (a *Application) drawVehicles() {
	for i, v := range a.session.Vehicles() {
		model := a.models[i].Model
		pose := v.CurrentPose()
		model.Transform = matrix(pose.Orientation)
		rl.DrawModel(model, vec3(pose.Position), float32(pose.Scale), rl.White)
	}
}

func (a *Application) drawOverlay() {
	v := a.session.Tracked()
	p := v.Position()
	e := v.CurrentOrientationEuler(true)

	rl.DrawRectangle(10, 10, 250, 113, ColPanel)
	rl.DrawRectangleLines(10, 10, 250, 113, ColBorder)
	rl.DrawText(fmt.Sprintf("Position:\n %10.2f\n %10.2f\n %10.2f", p[0], p[1], p[2]), 20, 20, 10, ColText)
	rl.DrawText(fmt.Sprintf("Rotation:\n %10.2f\n %10.2f\n %10.2f", e[0], e[1], e[2]), 20, 70, 10, ColText)

	status := fmt.Sprintf("%s (%s)  camera: %s", v.Name(), v.Kind(), a.session.Camera().Mode)
	rl.DrawText(status, 10, 130, 10, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 10, int32(rl.GetScreenHeight())-20, 10, ColTextDim)
}
