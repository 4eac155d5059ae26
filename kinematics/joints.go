package kinematics

// Indices into Joints. Rotary joints are in degrees, linear joints in the machine length unit.
const (
	JointX = iota
	JointY
	JointZ
	JointA
	JointB
	JointC
	JointU
	JointV
	JointW

	// NumJoints is the length of the joint vector exchanged with the host runtime.
	NumJoints
)

// Joints is the joint-space vector X, Y, Z, A, B, C, U, V, W. Only X, Y, Z, A and B are coupled by the
// transforms; C, U, V and W are copied through unchanged.
type Joints [NumJoints]float64

// Pose is the Cartesian tool tip position plus the orientation and auxiliary axes. A and B hold the
// rotary axis angles in degrees exactly as commanded; C, U, V and W mirror the joint pass-through
// axes.
type Pose struct {
	X, Y, Z float64
	A, B, C float64
	U, V, W float64
}

// Array returns the pose in the 9-element X, Y, Z, A, B, C, U, V, W layout.
func (p Pose) Array() [NumJoints]float64 {
	return [NumJoints]float64{p.X, p.Y, p.Z, p.A, p.B, p.C, p.U, p.V, p.W}
}

// PoseFromArray builds a Pose from the 9-element X, Y, Z, A, B, C, U, V, W layout.
func PoseFromArray(v [NumJoints]float64) Pose {
	return Pose{
		X: v[0], Y: v[1], Z: v[2],
		A: v[3], B: v[4], C: v[5],
		U: v[6], V: v[7], W: v[8],
	}
}

// JointsFromSlice copies up to NumJoints values into a Joints. Missing trailing values are zero.
func JointsFromSlice(values []float64) Joints {
	var j Joints
	copy(j[:], values)
	return j
}

// AxisNames returns the axis letters in joint order.
func AxisNames() []string {
	return []string{"X", "Y", "Z", "A", "B", "C", "U", "V", "W"}
}
