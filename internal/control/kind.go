package control

import (
	"fmt"
	"strings"

	"github.com/san-kum/flysim/internal/dynamo"
)

// Kind selects the control bindings and the kinematics of a vehicle.
type Kind int

const (
	FixedWing Kind = iota
	Multirotor
	Spacecraft
)

var kindNames = map[Kind]string{
	FixedWing:  "plane",
	Multirotor: "drone",
	Spacecraft: "spaceship",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plane", "fixedwing", "fixed-wing":
		return FixedWing, nil
	case "drone", "multirotor", "quadcopter":
		return Multirotor, nil
	case "spaceship", "spacecraft":
		return Spacecraft, nil
	}
	return 0, fmt.Errorf("%q: %w", s, dynamo.ErrUnknownKind)
}

// Kinds lists every vehicle kind.
func Kinds() []Kind {
	return []Kind{FixedWing, Multirotor, Spacecraft}
}
