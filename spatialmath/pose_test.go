package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewPose(t *testing.T) {
	p := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, OrientationAlmostEqual(p.Orientation(), NewZeroOrientation()), test.ShouldBeTrue)

	zero := NewZeroPose()
	test.That(t, zero.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, PoseAlmostEqual(zero, NewPose(r3.Vector{}, nil)), test.ShouldBeTrue)
}

func TestPoseAlmostEqual(t *testing.T) {
	a := NewPose(r3.Vector{X: 1}, NewRotationAboutX(0.5))
	test.That(t, PoseAlmostEqual(a, NewPose(r3.Vector{X: 1 + 1e-9}, NewRotationAboutX(0.5))), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(a, NewPose(r3.Vector{X: 1.1}, NewRotationAboutX(0.5))), test.ShouldBeFalse)
	test.That(t, PoseAlmostEqual(a, NewPose(r3.Vector{X: 1}, NewRotationAboutY(0.5))), test.ShouldBeFalse)
	test.That(t, PoseAlmostEqualEps(a, NewPose(r3.Vector{X: 1.05}, NewRotationAboutX(0.5)), 0.1), test.ShouldBeTrue)
}

func TestComposePoses(t *testing.T) {
	a := NewPose(r3.Vector{X: 10}, NewRotationAboutX(math.Pi/2))
	b := NewPoseFromPoint(r3.Vector{Z: 5})

	c := ComposePoses(a, b)
	test.That(t, R3VectorAlmostEqual(c.Point(), r3.Vector{X: 10, Y: -5}, 1e-9), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(c.Orientation(), a.Orientation()), test.ShouldBeTrue)
}

func TestPoseString(t *testing.T) {
	p := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	s, ok := p.(interface{ String() string })
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, s.String(), test.ShouldEqual, "{X:1.000 Y:2.000 Z:3.000 Theta:0.0000 RX:0.0000 RY:0.0000 RZ:1.0000}")
}
