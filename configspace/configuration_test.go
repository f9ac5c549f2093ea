package configspace

import (
	"testing"

	"go.viam.com/test"
)

func TestConfiguration(t *testing.T) {
	values := []float64{1, 2, 3}
	q := NewConfiguration(values...)
	test.That(t, q.Size(), test.ShouldEqual, 3)
	test.That(t, q.At(1), test.ShouldEqual, 2.)

	// the constructor copies; mutating the source must not reach q
	values[0] = 99
	test.That(t, q.At(0), test.ShouldEqual, 1.)

	clone := q.Clone()
	test.That(t, clone.Equal(q), test.ShouldBeTrue)
	clone[2] = 7
	test.That(t, clone.Equal(q), test.ShouldBeFalse)
	test.That(t, q.At(2), test.ShouldEqual, 3.)

	test.That(t, q.Equal(NewConfiguration(1, 2)), test.ShouldBeFalse)
	test.That(t, q.String(), test.ShouldEqual, "1,2,3,")
}

func TestInterpolate(t *testing.T) {
	q1 := NewConfiguration(0, 0)
	q2 := NewConfiguration(1, -2)
	mid := Interpolate(q1, q2, 0.5)
	test.That(t, mid.At(0), test.ShouldAlmostEqual, 0.5)
	test.That(t, mid.At(1), test.ShouldAlmostEqual, -1)
	test.That(t, Interpolate(q1, q2, 0).Equal(q1), test.ShouldBeTrue)
	test.That(t, Interpolate(q1, q2, 1).Equal(q2), test.ShouldBeTrue)
}

func TestWeighedDistance(t *testing.T) {
	d := NewWeighedDistance([]float64{2, 1})
	q1 := NewConfiguration(0, 0)
	q2 := NewConfiguration(3, 4)
	// sqrt((2*3)^2 + 4^2)
	test.That(t, d.Distance(q1, q2), test.ShouldAlmostEqual, 7.211102550927978)
	test.That(t, d.Distance(q2, q1), test.ShouldAlmostEqual, d.Distance(q1, q2))
	test.That(t, d.Distance(q1, q1), test.ShouldEqual, 0.)

	l2 := NewL2Distance()
	test.That(t, l2.Distance(q1, q2), test.ShouldAlmostEqual, 5)
}

func TestBoxLowerBound(t *testing.T) {
	d := NewL2Distance()
	min := []float64{0, 0}
	max := []float64{1, 1}

	// inside the box
	test.That(t, d.BoxLowerBound(NewConfiguration(0.5, 0.5), min, max), test.ShouldEqual, 0.)
	// outside along one axis
	test.That(t, d.BoxLowerBound(NewConfiguration(2, 0.5), min, max), test.ShouldAlmostEqual, 1)
	// outside along both axes
	test.That(t, d.BoxLowerBound(NewConfiguration(-3, 5), min, max), test.ShouldAlmostEqual, 5)

	// the bound never exceeds the true distance to any box point
	q := NewConfiguration(2, 3)
	for _, p := range []Configuration{
		NewConfiguration(0, 0),
		NewConfiguration(1, 1),
		NewConfiguration(0.3, 0.9),
	} {
		test.That(t, d.BoxLowerBound(q, min, max), test.ShouldBeLessThanOrEqualTo, d.Distance(q, p))
	}
}
