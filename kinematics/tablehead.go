package kinematics

import (
	"math"

	"github.com/tablehead/abkins/utils"
)

// Forward computes the tool tip pose for the given joints.
//
// The A axis turns the opposite way to the right-hand convention, so its angle is negated before
// use. B is used as commanded. The tool tip is the head offset rotated by B, shifted by the Y and Z
// joint offsets from the rotary intersection and then rotated with the table by A.
func Forward(cal Calibration, j Joints) Pose {
	sa, ca := math.Sincos(-utils.DegToRad(j[JointA]))
	sb, cb := math.Sincos(utils.DegToRad(j[JointB]))

	z3 := cal.headOffset()
	y2 := j[JointY] - cal.YOffset
	z2 := j[JointZ] - cal.ZOffset + cal.PivotLength

	return Pose{
		X: -sb*z3 + j[JointX],
		Y: sa*cb*z3 + ca*y2 + sa*z2,
		Z: ca*cb*z3 - sa*y2 + ca*z2,
		A: j[JointA],
		B: j[JointB],
		C: j[JointC],
		U: j[JointU],
		V: j[JointV],
		W: j[JointW],
	}
}

// Inverse computes the joint commands that place the tool tip at p. It is the algebraic inverse of
// Forward for X, Y, Z, A and B under the same calibration. The rotary joints are taken directly from
// the pose angles.
func Inverse(cal Calibration, p Pose) Joints {
	sa, ca := math.Sincos(-utils.DegToRad(p.A))
	sb, cb := math.Sincos(utils.DegToRad(p.B))

	z3 := cal.headOffset()
	x2 := sb*z3 + p.X
	y2 := ca*p.Y - sa*p.Z
	z2 := -cb*z3 + sa*p.Y + ca*p.Z

	return Joints{
		JointX: x2,
		JointY: y2 + cal.YOffset,
		JointZ: z2 + cal.ZOffset - cal.PivotLength,
		JointA: p.A,
		JointB: p.B,
		JointC: p.C,
		JointU: p.U,
		JointV: p.V,
		JointW: p.W,
	}
}

// TableHead is the Kinematics implementation for the A-table/B-head machine. Each call reads one
// calibration snapshot from the store, so a concurrent retune applies to whole calls only.
type TableHead struct {
	store *CalibrationStore
}

var _ Kinematics = (*TableHead)(nil)

// NewTableHead returns kinematics backed by the given calibration store.
func NewTableHead(store *CalibrationStore) *TableHead {
	return &TableHead{store: store}
}

// Forward implements Kinematics.
func (th *TableHead) Forward(j Joints) Pose {
	return Forward(th.store.Snapshot(), j)
}

// Inverse implements Kinematics.
func (th *TableHead) Inverse(p Pose) Joints {
	return Inverse(th.store.Snapshot(), p)
}

// Mode implements Kinematics.
func (th *TableHead) Mode() TransformMode {
	return Mode()
}

// Calibration returns the calibration the next call will use.
func (th *TableHead) Calibration() Calibration {
	return th.store.Snapshot()
}

// Store returns the calibration store backing th.
func (th *TableHead) Store() *CalibrationStore {
	return th.store
}
