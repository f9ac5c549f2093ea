package planner

import (
	"github.com/pkg/errors"

	"github.com/Hankfirst/hpp-core/configspace"
	"github.com/Hankfirst/hpp-core/steering"
)

// directOutcome is the result of a direct-path attempt.
type directOutcome int

const (
	// directSolved: the direct path validated and was stored.
	directSolved directOutcome = iota
	// directFallback: no valid direct path; try the roadmap builder.
	directFallback
	// directError: a hard error to surface to the caller.
	directError
)

// attemptDirectPath asks the steering method for a direct path between the
// problem's init and goal configurations and validates it against
// collisions. On success the path is registered in the roadmap and appended
// to the problem's paths.
func (p *Planner) attemptDirectPath(prob *Problem) (directOutcome, error) {
	sm := prob.SteeringMethod()
	builder := prob.RoadmapBuilder()
	init := prob.InitConfig()
	goal := prob.GoalConfig()

	dp, err := sm.Steer(init, goal)
	if err != nil {
		if errors.Is(err, steering.ErrNumericalFailure) {
			p.logger.Debugf("direct path attempt failed numerically: %v", err)
			return directFallback, nil
		}
		return directError, err
	}
	if dp == nil {
		return directFallback, nil
	}

	validator := prob.Validator()
	validator.SetPenetration(builder.Penetration())
	validator.Validate(dp)
	if !dp.IsValid() {
		p.logger.Debugf("%v", ErrValidationFailure)
		return directFallback, nil
	}

	// register the direct connection in the roadmap, deduplicating by
	// configuration, and only add the edge when the goal is not already
	// reachable from the start
	rm := builder.Roadmap()
	startNode := rm.SetInitNode(init)
	goalNode := rm.AddGoalNode(goal)
	if !startNode.ConnectedComponent().CanReach(goalNode.ConnectedComponent()) {
		rm.AddEdge(startNode, goalNode, dp)
	}

	path := configspace.NewPath()
	path.AppendDirectPath(dp)
	prob.AddPath(path.Clone())
	p.logger.Debugf("problem %s solved with direct connection", prob.ID())
	return directSolved, nil
}
