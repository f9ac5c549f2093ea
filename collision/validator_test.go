package collision

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/Hankfirst/hpp-core/configspace"
	"github.com/Hankfirst/hpp-core/steering"
)

func TestBoxContains(t *testing.T) {
	box := NewBox("wall", r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, box.Name(), test.ShouldEqual, "wall")
	test.That(t, box.Contains(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}), test.ShouldBeTrue)
	test.That(t, box.Contains(r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldBeTrue)
	test.That(t, box.Contains(r3.Vector{X: 1.01, Y: 0.5, Z: 0.5}), test.ShouldBeFalse)
	test.That(t, box.Contains(r3.Vector{X: 0.5, Y: -0.1, Z: 0.5}), test.ShouldBeFalse)
}

func TestValidatorStampsValidity(t *testing.T) {
	robot := configspace.NewDevice("planar", 2, 0)
	sm := steering.NewLinear(nil)
	v := NewValidator(robot, 0.01)
	test.That(t, v.Penetration(), test.ShouldEqual, 0.01)

	blocking := NewBox("wall",
		r3.Vector{X: 0.4, Y: -0.2, Z: -1},
		r3.Vector{X: 0.6, Y: 0.2, Z: 1})
	v.SetObstacles([]Object{blocking})
	test.That(t, v.Obstacles(), test.ShouldHaveLength, 1)

	// the straight segment passes through the box
	dp, err := sm.Steer(configspace.NewConfiguration(0, 0), configspace.NewConfiguration(1, 0))
	test.That(t, err, test.ShouldBeNil)
	v.Validate(dp)
	test.That(t, dp.IsValid(), test.ShouldBeFalse)

	// a detour above the box is free
	dp, err = sm.Steer(configspace.NewConfiguration(0, 0.5), configspace.NewConfiguration(1, 0.5))
	test.That(t, err, test.ShouldBeNil)
	v.Validate(dp)
	test.That(t, dp.IsValid(), test.ShouldBeTrue)

	// clearing obstacles revalidates the blocked segment
	v.SetObstacles(nil)
	dp, err = sm.Steer(configspace.NewConfiguration(0, 0), configspace.NewConfiguration(1, 0))
	test.That(t, err, test.ShouldBeNil)
	v.Validate(dp)
	test.That(t, dp.IsValid(), test.ShouldBeTrue)
}

func TestValidatorDefaultPenetration(t *testing.T) {
	robot := configspace.NewDevice("planar", 2, 0)
	v := NewValidator(robot, 0)
	test.That(t, v.Penetration(), test.ShouldBeGreaterThan, 0.)
	v.SetPenetration(0.2)
	test.That(t, v.Penetration(), test.ShouldEqual, 0.2)
	v.SetPenetration(-1)
	test.That(t, v.Penetration(), test.ShouldEqual, defaultPenetration)
}
