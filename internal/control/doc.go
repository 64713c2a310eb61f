// Package control maps held control signals to the generalized force
// vector tau of a vehicle.
//
// A [Mapper] keeps tau between ticks. Every tick it adds the increments of
// the active [Input] signals to the axes bound for its [Kind], then snaps
// small axes to zero, clamps the rest into the configured range and decays
// them:
//
//	m := control.NewMapper(control.FixedWing, control.DefaultLimits(control.FixedWing))
//	tau := m.Torque(control.ThrottleUp | control.YawRight)
//
// Decay is 0.99 per tick on force axes and 0.96 on torque axes.
package control
