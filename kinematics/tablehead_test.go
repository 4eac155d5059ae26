package kinematics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"github.com/tablehead/abkins/utils"
)

func randomJoints(rnd *rand.Rand) Joints {
	var j Joints
	for i := range j {
		switch i {
		case JointA, JointB, JointC:
			j[i] = rnd.Float64()*1440 - 720
		default:
			j[i] = rnd.Float64()*2000 - 1000
		}
	}
	return j
}

func randomCalibration(rnd *rand.Rand) Calibration {
	return Calibration{
		PivotLength: rnd.Float64()*200 - 50,
		YOffset:     rnd.Float64()*400 - 200,
		ZOffset:     rnd.Float64()*400 - 200,
		ToolLength:  rnd.Float64()*150 - 25,
	}
}

func TestConcreteScenario(t *testing.T) {
	cal := Calibration{PivotLength: 60, YOffset: 76, ZOffset: -71, ToolLength: 20}

	pose := Forward(cal, Joints{})
	test.That(t, pose.X, test.ShouldAlmostEqual, 0)
	test.That(t, pose.Y, test.ShouldAlmostEqual, -76)
	test.That(t, pose.Z, test.ShouldAlmostEqual, 51)
	test.That(t, pose.A, test.ShouldEqual, 0.)
	test.That(t, pose.B, test.ShouldEqual, 0.)

	joints := Inverse(cal, pose)
	test.That(t, joints[JointX], test.ShouldAlmostEqual, 0)
	test.That(t, joints[JointY], test.ShouldAlmostEqual, 0)
	test.That(t, joints[JointZ], test.ShouldAlmostEqual, 0)
}

func TestRoundTrip(t *testing.T) {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(42))
	approx := cmpopts.EquateApprox(1e-9, 1e-9)

	for i := 0; i < 1000; i++ {
		cal := randomCalibration(rnd)
		in := randomJoints(rnd)

		out := Inverse(cal, Forward(cal, in))
		for _, idx := range []int{JointX, JointY, JointZ, JointA, JointB} {
			if !utils.Float64RelativelyEqual(in[idx], out[idx], 1e-9) {
				t.Fatalf("joint %s: round trip of %v with %v gave %v", AxisNames()[idx], in, cal, out)
			}
		}
		test.That(t, cmp.Equal(in, out, approx), test.ShouldBeTrue)
	}
}

func TestInverseThenForward(t *testing.T) {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		cal := randomCalibration(rnd)
		want := PoseFromArray(randomJoints(rnd))

		got := Forward(cal, Inverse(cal, want))
		test.That(t, got.X, test.ShouldAlmostEqual, want.X, 1e-9)
		test.That(t, got.Y, test.ShouldAlmostEqual, want.Y, 1e-9)
		test.That(t, got.Z, test.ShouldAlmostEqual, want.Z, 1e-9)
		test.That(t, got.A, test.ShouldEqual, want.A)
		test.That(t, got.B, test.ShouldEqual, want.B)
	}
}

func TestZeroAngleTranslation(t *testing.T) {
	cal := DefaultCalibration()
	cal.ToolLength = 12.5
	j := Joints{10, 20, 30, 0, 0, 1, 2, 3, 4}

	pose := Forward(cal, j)
	test.That(t, pose.X, test.ShouldAlmostEqual, 10)
	test.That(t, pose.Y, test.ShouldAlmostEqual, 20-cal.YOffset)
	// z3 + z2 collapses to jointZ - zOffset - toolLength.
	test.That(t, pose.Z, test.ShouldAlmostEqual, 30-cal.ZOffset-cal.ToolLength)
}

func TestToolLengthSensitivity(t *testing.T) {
	cal := DefaultCalibration()
	j := Joints{5, -3, 17}
	base := Forward(cal, j)

	for _, delta := range []float64{0.001, 1, 25.4, -10} {
		shifted := cal
		shifted.ToolLength += delta
		pose := Forward(shifted, j)
		test.That(t, pose.Z-base.Z, test.ShouldAlmostEqual, -delta, 1e-9)
		test.That(t, pose.X, test.ShouldEqual, base.X)
		test.That(t, pose.Y, test.ShouldAlmostEqual, base.Y, 1e-12)
	}
}

func TestPassThroughAxesAreBitIdentical(t *testing.T) {
	cal := DefaultCalibration()
	odd := []float64{math.NaN(), math.Copysign(0, -1), math.Inf(1), 1e-310}
	j := Joints{1, 2, 3, 45, -30, odd[0], odd[1], odd[2], odd[3]}

	pose := Forward(cal, j)
	for i, v := range []float64{pose.C, pose.U, pose.V, pose.W} {
		test.That(t, math.Float64bits(v), test.ShouldEqual, math.Float64bits(odd[i]))
	}

	back := Inverse(cal, Pose{X: 1, Y: 2, Z: 3, A: 45, B: -30, C: odd[0], U: odd[1], V: odd[2], W: odd[3]})
	for i, idx := range []int{JointC, JointU, JointV, JointW} {
		test.That(t, math.Float64bits(back[idx]), test.ShouldEqual, math.Float64bits(odd[i]))
	}
}

func rotX(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

func rotY(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

// The closed form equals Rx(A)·(Ry(-B)·[0,0,z3] + [0,y2,z2]) + [x,0,0].
func TestForwardMatchesRotationComposition(t *testing.T) {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		cal := randomCalibration(rnd)
		j := randomJoints(rnd)

		a := utils.DegToRad(j[JointA])
		b := utils.DegToRad(j[JointB])

		var tip mat.VecDense
		tip.MulVec(rotY(-b), mat.NewVecDense(3, []float64{0, 0, -cal.PivotLength - cal.ToolLength}))
		tip.AddVec(&tip, mat.NewVecDense(3, []float64{
			0,
			j[JointY] - cal.YOffset,
			j[JointZ] - cal.ZOffset + cal.PivotLength,
		}))
		var world mat.VecDense
		world.MulVec(rotX(a), &tip)

		pose := Forward(cal, j)
		test.That(t, pose.X, test.ShouldAlmostEqual, world.AtVec(0)+j[JointX], 1e-9)
		test.That(t, pose.Y, test.ShouldAlmostEqual, world.AtVec(1), 1e-9)
		test.That(t, pose.Z, test.ShouldAlmostEqual, world.AtVec(2), 1e-9)
	}
}

func TestANegationSymmetry(t *testing.T) {
	cal := DefaultCalibration()
	cal.ToolLength = 30
	j := Joints{0, 100, -20, 25, 15}
	mirrored := j
	mirrored[JointA] = -j[JointA]

	p := Forward(cal, j)
	m := Forward(cal, mirrored)

	ca := math.Cos(utils.DegToRad(j[JointA]))
	cb := math.Cos(utils.DegToRad(j[JointB]))
	y2 := j[JointY] - cal.YOffset
	z2 := j[JointZ] - cal.ZOffset + cal.PivotLength
	z3 := -cal.PivotLength - cal.ToolLength

	// Negating A flips only the sin(A) terms, so they cancel in the sum.
	test.That(t, p.Y+m.Y, test.ShouldAlmostEqual, 2*ca*y2, 1e-9)
	test.That(t, p.Z+m.Z, test.ShouldAlmostEqual, 2*ca*(cb*z3+z2), 1e-9)
	test.That(t, p.X, test.ShouldEqual, m.X)

	// A positive A angle rotates the table so that a point above the axis moves towards -Y.
	up := Forward(Calibration{}, Joints{0, 0, 10, 90})
	test.That(t, up.Y, test.ShouldAlmostEqual, -10, 1e-9)
	test.That(t, up.Z, test.ShouldAlmostEqual, 0, 1e-9)

	// B is not negated: a positive B swings the tip towards +X when the head offset is negative.
	swing := Forward(Calibration{PivotLength: 10}, Joints{0, 0, 0, 0, 90})
	test.That(t, swing.X, test.ShouldAlmostEqual, 10, 1e-9)
}

func TestAnglesBeyondOneTurn(t *testing.T) {
	cal := DefaultCalibration()
	j := Joints{1, 2, 3, 33, -12}
	wrapped := j
	wrapped[JointA] += 720
	wrapped[JointB] -= 360

	p := Forward(cal, j)
	w := Forward(cal, wrapped)
	test.That(t, w.X, test.ShouldAlmostEqual, p.X, 1e-9)
	test.That(t, w.Y, test.ShouldAlmostEqual, p.Y, 1e-9)
	test.That(t, w.Z, test.ShouldAlmostEqual, p.Z, 1e-9)
	// The commanded angle is reported as is, not wrapped.
	test.That(t, w.A, test.ShouldEqual, 753.)
	test.That(t, w.B, test.ShouldEqual, -372.)
}

func TestNonsensicalCalibrationIsAccepted(t *testing.T) {
	cal := Calibration{PivotLength: -5, YOffset: 0, ZOffset: 0, ToolLength: -100}
	j := Joints{0, 0, 0, 10, 10}
	got := Inverse(cal, Forward(cal, j))
	test.That(t, got[JointX], test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, got[JointY], test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, got[JointZ], test.ShouldAlmostEqual, 0, 1e-9)
}

func TestTransformsDoNotAllocate(t *testing.T) {
	th := NewTableHead(NewCalibrationStore(DefaultCalibration()))
	j := Joints{1, 2, 3, 4, 5, 6, 7, 8, 9}
	var sink Pose
	allocs := testing.AllocsPerRun(100, func() {
		sink = th.Forward(j)
		j = th.Inverse(sink)
	})
	test.That(t, allocs, test.ShouldEqual, 0.)
}

func TestTableHeadUsesLiveCalibration(t *testing.T) {
	store := NewCalibrationStore(DefaultCalibration())
	th := NewTableHead(store)
	test.That(t, th.Mode(), test.ShouldEqual, Both)
	test.That(t, th.Store(), test.ShouldEqual, store)

	before := th.Forward(Joints{})
	store.Update(func(c *Calibration) { c.ToolLength = 10 })
	after := th.Forward(Joints{})
	test.That(t, after.Z-before.Z, test.ShouldAlmostEqual, -10, 1e-9)
	test.That(t, th.Calibration().ToolLength, test.ShouldEqual, 10.)
}

func TestPoseArray(t *testing.T) {
	p := Pose{X: 1, Y: 2, Z: 3, A: 4, B: 5, C: 6, U: 7, V: 8, W: 9}
	test.That(t, PoseFromArray(p.Array()), test.ShouldResemble, p)
	test.That(t, JointsFromSlice([]float64{1, 2}), test.ShouldResemble, Joints{1, 2})
	test.That(t, len(AxisNames()), test.ShouldEqual, NumJoints)
}

func BenchmarkForward(b *testing.B) {
	th := NewTableHead(NewCalibrationStore(DefaultCalibration()))
	j := Joints{1, 2, 3, 4, 5}
	for i := 0; i < b.N; i++ {
		th.Forward(j)
	}
}

func BenchmarkInverse(b *testing.B) {
	th := NewTableHead(NewCalibrationStore(DefaultCalibration()))
	p := Pose{X: 1, Y: 2, Z: 3, A: 4, B: 5}
	for i := 0; i < b.N; i++ {
		th.Inverse(p)
	}
}
