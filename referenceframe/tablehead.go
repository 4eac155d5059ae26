package referenceframe

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/tablehead/abkins/kinematics"
	"github.com/tablehead/abkins/spatialmath"
	"github.com/tablehead/abkins/utils"
)

// rotary reports whether the joint at idx is revolute and so takes radians as input.
func rotary(idx int) bool {
	return idx == kinematics.JointA || idx == kinematics.JointB || idx == kinematics.JointC
}

// tableHeadFrame is the machine seen as a frame. Its inputs are the nine joints in X, Y, Z, A, B, C,
// U, V, W order, linear joints in mm and rotary joints in radians.
type tableHeadFrame struct {
	name string
	kin  kinematics.Kinematics
}

// NewTableHeadFrame returns a frame transforming joint inputs into the tool tip pose computed by kin.
// Every joint is unbounded.
func NewTableHeadFrame(name string, kin kinematics.Kinematics) Frame {
	return &tableHeadFrame{name: name, kin: kin}
}

func (f *tableHeadFrame) Name() string {
	return f.name
}

func (f *tableHeadFrame) DoF() []Limit {
	limits := make([]Limit, kinematics.NumJoints)
	for i := range limits {
		limits[i] = Limit{Min: math.Inf(-1), Max: math.Inf(1)}
	}
	return limits
}

// Transform returns the tool tip position and the tool orientation Rx(A)·Ry(-B).
func (f *tableHeadFrame) Transform(inputs []Input) (spatialmath.Pose, error) {
	if len(inputs) != kinematics.NumJoints {
		return nil, NewIncorrectDoFError(len(inputs), kinematics.NumJoints)
	}
	var j kinematics.Joints
	for i, in := range inputs {
		if rotary(i) {
			j[i] = utils.RadToDeg(in.Value)
		} else {
			j[i] = in.Value
		}
	}
	p := f.kin.Forward(j)
	return spatialmath.NewPose(r3.Vector{X: p.X, Y: p.Y, Z: p.Z}, toolOrientation(
		inputs[kinematics.JointA].Value, inputs[kinematics.JointB].Value)), nil
}

func (f *tableHeadFrame) AlmostEquals(otherFrame Frame) bool {
	other, ok := otherFrame.(*tableHeadFrame)
	return ok && f.name == other.name && limitsAlmostEqual(f.DoF(), other.DoF())
}

func toolOrientation(a, b float64) spatialmath.Orientation {
	return spatialmath.Compose(spatialmath.NewRotationAboutX(a), spatialmath.NewRotationAboutY(-b))
}

// InputsFromPose returns the frame inputs that place the tool tip at pose. A and B are recovered from
// the pose orientation, which must be of the form produced by Transform. C is in radians and U, V and W
// are in mm; they are passed through.
func InputsFromPose(frame Frame, pose spatialmath.Pose, c, u, v, w float64) ([]Input, error) {
	if pose == nil {
		return nil, NewNilPoseError()
	}
	thf, ok := frame.(*tableHeadFrame)
	if !ok {
		return nil, errUnsupportedFrame(frame)
	}

	// With R = Rx(alpha)·Ry(beta), the first row of R depends only on beta and the second column only
	// on alpha, so both angles come back over the full turn.
	o := pose.Orientation()
	xCol := spatialmath.RotatePoint(o, r3.Vector{X: 1})
	yCol := spatialmath.RotatePoint(o, r3.Vector{Y: 1})
	zCol := spatialmath.RotatePoint(o, r3.Vector{Z: 1})
	beta := math.Atan2(zCol.X, xCol.X)
	alpha := math.Atan2(yCol.Z, yCol.Y)

	pt := pose.Point()
	j := thf.kin.Inverse(kinematics.Pose{
		X: pt.X,
		Y: pt.Y,
		Z: pt.Z,
		A: utils.RadToDeg(alpha),
		B: utils.RadToDeg(-beta),
		C: utils.RadToDeg(c),
		U: u,
		V: v,
		W: w,
	})

	inputs := make([]Input, kinematics.NumJoints)
	for i, val := range j {
		if rotary(i) {
			inputs[i] = Input{utils.DegToRad(val)}
		} else {
			inputs[i] = Input{val}
		}
	}
	// Keep C exactly as given rather than through a degree round trip.
	inputs[kinematics.JointC] = Input{c}
	return inputs, nil
}
