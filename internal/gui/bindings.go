package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/flysim/internal/control"
)

// Binding maps a held key to a control signal. Shift bindings only fire
// while left shift is held too.
type Binding struct {
	Key   int32
	Input control.Input
	Shift bool
}

var DefaultBindings = []Binding{
	{Key: rl.KeyUp, Input: control.ThrottleUp},
	{Key: rl.KeyDown, Input: control.ThrottleDown},
	{Key: rl.KeyLeft, Input: control.LateralLeft},
	{Key: rl.KeyRight, Input: control.LateralRight},
	{Key: rl.KeyR, Input: control.AscendUp},
	{Key: rl.KeyF, Input: control.AscendDown},
	{Key: rl.KeyW, Input: control.RollUp},
	{Key: rl.KeyS, Input: control.RollDown},
	{Key: rl.KeyQ, Input: control.PitchUp},
	{Key: rl.KeyE, Input: control.PitchDown},
	{Key: rl.KeyA, Input: control.YawLeft},
	{Key: rl.KeyD, Input: control.YawRight},
	{Key: rl.KeyC, Input: control.Reset, Shift: true},
	{Key: rl.KeyMinus, Input: control.ScaleDown},
	{Key: rl.KeyEqual, Input: control.ScaleUp},
	{Key: rl.KeyP, Input: control.PrintPosition},
}

// Poll returns the signals held this frame according to isDown.
func Poll(bindings []Binding, isDown func(key int32) bool) control.Input {
	shift := isDown(rl.KeyLeftShift)
	var in control.Input
	for _, b := range bindings {
		if b.Shift && !shift {
			continue
		}
		if isDown(b.Key) {
			in |= b.Input
		}
	}
	return in
}
