package control

import (
	"fmt"
	"strings"

	"github.com/san-kum/flysim/internal/dynamo"
)

// Input is the set of control signals held during one tick.
type Input uint32

const (
	ThrottleUp Input = 1 << iota
	ThrottleDown
	LateralLeft
	LateralRight
	AscendUp
	AscendDown
	RollUp
	RollDown
	PitchUp
	PitchDown
	YawLeft
	YawRight
	Reset
	ScaleUp
	ScaleDown
	PrintPosition
)

var inputNames = []struct {
	in   Input
	name string
}{
	{ThrottleUp, "throttle_up"},
	{ThrottleDown, "throttle_down"},
	{LateralLeft, "left"},
	{LateralRight, "right"},
	{AscendUp, "ascend"},
	{AscendDown, "descend"},
	{RollUp, "roll_up"},
	{RollDown, "roll_down"},
	{PitchUp, "pitch_up"},
	{PitchDown, "pitch_down"},
	{YawLeft, "yaw_left"},
	{YawRight, "yaw_right"},
	{Reset, "reset"},
	{ScaleUp, "scale_up"},
	{ScaleDown, "scale_down"},
	{PrintPosition, "print_position"},
}

func (in Input) Has(s Input) bool {
	return in&s != 0
}

func (in Input) Names() []string {
	var names []string
	for _, e := range inputNames {
		if in.Has(e.in) {
			names = append(names, e.name)
		}
	}
	return names
}

func (in Input) String() string {
	if in == 0 {
		return "none"
	}
	return strings.Join(in.Names(), "+")
}

// ParseInput combines named signals into one Input.
func ParseInput(names ...string) (Input, error) {
	var in Input
	for _, name := range names {
		s, err := parseSignal(name)
		if err != nil {
			return 0, err
		}
		in |= s
	}
	return in, nil
}

func parseSignal(name string) (Input, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range inputNames {
		if e.name == name {
			return e.in, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownControl)
}

// SignalNames lists every known signal name.
func SignalNames() []string {
	names := make([]string, len(inputNames))
	for i, e := range inputNames {
		names[i] = e.name
	}
	return names
}
