package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and simulation.
var (
	// ErrSpecNotFound indicates a vehicle spec file or preset that does not exist.
	ErrSpecNotFound = errors.New("dynamo: vehicle spec not found")

	// ErrSpecInvalid indicates a vehicle spec with unusable values.
	ErrSpecInvalid = errors.New("dynamo: invalid vehicle spec")

	// ErrUnknownKind indicates a vehicle kind outside plane, drone, spaceship.
	ErrUnknownKind = errors.New("dynamo: unknown vehicle kind")

	// ErrUnknownControl indicates a control signal name with no binding.
	ErrUnknownControl = errors.New("dynamo: unknown control signal")

	// ErrInvalidStep indicates a non-positive time step or duration.
	ErrInvalidStep = errors.New("dynamo: invalid time step")

	// ErrNoVehicles indicates a session run without any vehicle.
	ErrNoVehicles = errors.New("dynamo: no vehicles in session")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

type SimError struct {
	Time    float64
	Step    int
	Message string
	Wrapped error
}

func (e *SimError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("step %d (t=%.4f): %s: %v", e.Step, e.Time, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
