package collision

import (
	"github.com/golang/geo/r3"

	"github.com/Hankfirst/hpp-core/configspace"
)

// defaultPenetration is the discretisation step used when none is
// configured.
const defaultPenetration = 0.05

// Validator checks direct paths against a set of obstacles. The penetration
// tolerance is the discretisation step along the path: configurations are
// sampled at most that far apart in path parameter.
type Validator struct {
	robot       configspace.Robot
	penetration float64
	obstacles   []Object
}

// NewValidator builds a validator for the given robot. A nonpositive
// penetration falls back to the default.
func NewValidator(robot configspace.Robot, penetration float64) *Validator {
	v := &Validator{robot: robot}
	v.SetPenetration(penetration)
	return v
}

// Penetration returns the discretisation step.
func (v *Validator) Penetration() float64 {
	return v.penetration
}

// SetPenetration replaces the discretisation step. Nonpositive values fall
// back to the default.
func (v *Validator) SetPenetration(penetration float64) {
	if penetration <= 0 {
		penetration = defaultPenetration
	}
	v.penetration = penetration
}

// SetObstacles replaces the obstacle list with a snapshot of obs.
func (v *Validator) SetObstacles(obs []Object) {
	v.obstacles = make([]Object, len(obs))
	copy(v.obstacles, obs)
}

// Obstacles returns the current obstacle snapshot.
func (v *Validator) Obstacles() []Object {
	out := make([]Object, len(v.obstacles))
	copy(out, v.obstacles)
	return out
}

// Validate walks dp at the penetration step and stamps its validity: false
// as soon as a sampled configuration's workspace point lies inside an
// obstacle, true otherwise.
func (v *Validator) Validate(dp configspace.DirectPath) {
	steps := int(dp.Length()/v.penetration) + 1
	for i := 0; i <= steps; i++ {
		t := dp.Length() * float64(i) / float64(steps)
		p := v.workspacePoint(dp.Interpolate(t))
		for _, obs := range v.obstacles {
			if obs.Contains(p) {
				dp.SetValid(false)
				return
			}
		}
	}
	dp.SetValid(true)
}

// workspacePoint projects a configuration to the workspace by reading its
// leading translational degrees of freedom, at most three.
func (v *Validator) workspacePoint(q configspace.Configuration) r3.Vector {
	axes := v.robot.ConfigSize() - v.robot.ExtraConfigSpace().Dimension()
	var p r3.Vector
	if axes > 0 {
		p.X = q.At(0)
	}
	if axes > 1 {
		p.Y = q.At(1)
	}
	if axes > 2 {
		p.Z = q.At(2)
	}
	return p
}
