// Package dynamo provides the shared primitives of the flight simulator.
//
//   - [Vec6]: generalized 6-vector (linear part first, angular part second)
//     used for forces/torques (tau), velocities (nu) and feedback
//   - [Mat6]: 6x6 matrix, built block-diagonally from mgl64 3x3 blocks
//   - sentinel errors and [SimError] for run-level failures
//   - [ParallelFor] for fanning per-vehicle work across workers
//
// # Frames
//
// Linear components of tau and nu are expressed in the body frame. Angular
// components are body rates about the body axes.
package dynamo
