package referenceframe

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestInputConversions(t *testing.T) {
	in := FloatsToInputs([]float64{1, -2.5, 3})
	test.That(t, in, test.ShouldResemble, []Input{{1}, {-2.5}, {3}})
	test.That(t, InputsToFloats(in), test.ShouldResemble, []float64{1, -2.5, 3})
	test.That(t, FloatsToInputs(nil), test.ShouldResemble, []Input{})
}

func TestInterpolateInputs(t *testing.T) {
	from := FloatsToInputs([]float64{0, 10, -4})
	to := FloatsToInputs([]float64{10, 10, 4})
	test.That(t, InterpolateInputs(from, to, 0), test.ShouldResemble, from)
	test.That(t, InterpolateInputs(from, to, 1), test.ShouldResemble, to)
	test.That(t, InputsToFloats(InterpolateInputs(from, to, 0.25)), test.ShouldResemble, []float64{2.5, 10, -2})
}

func TestInputsL2Distance(t *testing.T) {
	from := FloatsToInputs([]float64{0, 0, 0})
	to := FloatsToInputs([]float64{3, 4, 0})
	test.That(t, InputsL2Distance(from, to), test.ShouldAlmostEqual, 5)
	test.That(t, InputsL2Distance(from, from), test.ShouldEqual, 0.)
	test.That(t, math.IsInf(InputsL2Distance(from, to[:2]), 1), test.ShouldBeTrue)
}
