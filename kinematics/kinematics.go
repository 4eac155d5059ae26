// Package kinematics implements the coordinate transforms for a 5-axis mill with a rotary A axis
// mounted on the table and a rotary B axis mounted on the spindle head.
//
// The forward transform maps joint positions (linear axes in the machine length unit, rotary axes
// in degrees) to the Cartesian position of the tool tip. The inverse transform maps a desired tool
// tip pose back to joint commands. Both are total functions: every real input, including angles
// beyond ±360°, produces a well defined result, and neither transform validates calibration values.
// A physically impossible calibration (for example a negative tool length) yields a well defined
// but wrong pose rather than an error.
//
// The transforms are meant to be called from a fixed-rate control loop. They do not block, log,
// allocate or perform I/O.
package kinematics

// Kinematics is the contract a host motion runtime consumes: one forward and one inverse call per
// control cycle plus a one-time capability query.
type Kinematics interface {
	// Forward reports the tool tip pose for the given joint positions.
	Forward(j Joints) Pose
	// Inverse computes the joint commands that place the tool tip at the given pose.
	Inverse(p Pose) Joints
	// Mode reports which transform directions are implemented.
	Mode() TransformMode
}
