// Package physics integrates the 6-DOF motion of a rigid vehicle body.
//
// Each tick runs in two stages:
//
//   - [RigidBody.Dynamics] maps the generalized force tau to the body-frame
//     velocity nu through the inverse generalized mass matrix, subtracting
//     the gyroscopic feedback left by the previous tick.
//   - [RigidBody.Kinematics] rotates nu into the world frame and integrates
//     the orientation quaternion with a renormalization term.
//
// Multirotors integrate their attitude through Euler angles instead, see
// [EulerState].
//
//	body := physics.NewRigidBody(mgl64.Vec3{}, quat.Identity(), 2, nil)
//	nu := body.Dynamics(tau, dt)
//	body.Apply(body.Kinematics(nu, dt))
package physics
