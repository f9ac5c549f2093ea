package steering

import (
	"testing"

	"go.viam.com/test"

	"github.com/Hankfirst/hpp-core/configspace"
)

func TestLinearSteer(t *testing.T) {
	l := NewLinear(nil)
	q1 := configspace.NewConfiguration(0, 0)
	q2 := configspace.NewConfiguration(3, 4)

	dp, err := l.Steer(q1, q2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dp.Length(), test.ShouldAlmostEqual, 5)
	test.That(t, dp.Start().Equal(q1), test.ShouldBeTrue)
	test.That(t, dp.End().Equal(q2), test.ShouldBeTrue)
	test.That(t, dp.IsValid(), test.ShouldBeTrue)

	mid := dp.Interpolate(2.5)
	test.That(t, mid.At(0), test.ShouldAlmostEqual, 1.5)
	test.That(t, mid.At(1), test.ShouldAlmostEqual, 2)
	test.That(t, dp.Interpolate(-1).Equal(q1), test.ShouldBeTrue)
	test.That(t, dp.Interpolate(99).Equal(q2), test.ShouldBeTrue)

	rev := dp.Reverse()
	test.That(t, rev.Start().Equal(q2), test.ShouldBeTrue)
	test.That(t, rev.End().Equal(q1), test.ShouldBeTrue)
	test.That(t, rev.Length(), test.ShouldAlmostEqual, 5)
}

func TestLinearSteerSamePoint(t *testing.T) {
	l := NewLinear(configspace.NewL2Distance())
	q := configspace.NewConfiguration(1, 1)
	dp, err := l.Steer(q, q)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dp, test.ShouldNotBeNil)
	test.That(t, dp.Length(), test.ShouldEqual, 0.)
	test.That(t, dp.Interpolate(0.5).Equal(q), test.ShouldBeTrue)
}

func TestLinearValidityStamp(t *testing.T) {
	l := NewLinear(nil)
	dp, err := l.Steer(configspace.NewConfiguration(0), configspace.NewConfiguration(1))
	test.That(t, err, test.ShouldBeNil)
	dp.SetValid(false)
	test.That(t, dp.IsValid(), test.ShouldBeFalse)
	// the reverse carries the validity of the original
	test.That(t, dp.Reverse().IsValid(), test.ShouldBeFalse)
}
