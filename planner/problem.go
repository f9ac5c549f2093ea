package planner

import (
	"github.com/google/uuid"

	"github.com/Hankfirst/hpp-core/collision"
	"github.com/Hankfirst/hpp-core/configspace"
	"github.com/Hankfirst/hpp-core/roadmap"
)

// RoadmapBuilder grows a roadmap until it connects two configurations. It is
// the long-running collaborator of the driver; implementations are expected
// to poll the planner's stop delegate between iterations and return early,
// producing no partial path, when it fires.
type RoadmapBuilder interface {
	SolveProblem(init, goal configspace.Configuration) (*configspace.Path, error)
	Roadmap() *roadmap.Roadmap
	// Penetration is the tolerance handed to collision validation.
	Penetration() float64
	AddDelegate(d *StopDelegate)
}

// PathOptimizer improves a solved path in place.
type PathOptimizer interface {
	OptimizePath(path *configspace.Path, penetration float64) error
}

// Problem aggregates one robot with everything needed to plan for it: start
// and goal configurations, obstacle snapshot, roadmap builder, steering
// method, optional path optimizer, and the sequence of solved paths.
type Problem struct {
	id          uuid.UUID
	robot       configspace.Robot
	obstacles   []collision.Object
	validator   *collision.Validator
	initConfig  configspace.Configuration
	goalConfigs []configspace.Configuration
	builder     RoadmapBuilder
	sm          configspace.SteeringMethod
	optimizer   PathOptimizer
	paths       []*configspace.Path
}

// NewProblem builds a problem for robot with a snapshot of obstacles.
func NewProblem(robot configspace.Robot, obstacles []collision.Object) *Problem {
	p := &Problem{
		id:        uuid.New(),
		robot:     robot,
		validator: collision.NewValidator(robot, 0),
	}
	p.SetObstacles(obstacles)
	return p
}

// ID returns the problem's unique identity.
func (p *Problem) ID() uuid.UUID {
	return p.id
}

// Robot returns the problem's robot.
func (p *Problem) Robot() configspace.Robot {
	return p.robot
}

// Validator returns the problem's collision validator, which always holds
// the current obstacle snapshot.
func (p *Problem) Validator() *collision.Validator {
	return p.validator
}

// SetObstacles replaces the obstacle snapshot and broadcasts it to the
// collision validator. The snapshot is copied; the problem never mutates the
// caller's list.
func (p *Problem) SetObstacles(obs []collision.Object) {
	p.obstacles = make([]collision.Object, len(obs))
	copy(p.obstacles, obs)
	p.validator.SetObstacles(p.obstacles)
}

// AddObstacle appends one obstacle and broadcasts the new list.
func (p *Problem) AddObstacle(o collision.Object) {
	p.obstacles = append(p.obstacles, o)
	p.validator.SetObstacles(p.obstacles)
}

// Obstacles returns the current obstacle snapshot.
func (p *Problem) Obstacles() []collision.Object {
	out := make([]collision.Object, len(p.obstacles))
	copy(out, p.obstacles)
	return out
}

// InitConfig returns the start configuration, or nil if unset.
func (p *Problem) InitConfig() configspace.Configuration {
	return p.initConfig
}

// SetInitConfig replaces the start configuration.
func (p *Problem) SetInitConfig(q configspace.Configuration) {
	p.initConfig = q.Clone()
}

// GoalConfig returns the first goal configuration, or nil if none is set.
func (p *Problem) GoalConfig() configspace.Configuration {
	if len(p.goalConfigs) == 0 {
		return nil
	}
	return p.goalConfigs[0]
}

// GoalConfigs returns the goal configurations in insertion order.
func (p *Problem) GoalConfigs() []configspace.Configuration {
	out := make([]configspace.Configuration, len(p.goalConfigs))
	copy(out, p.goalConfigs)
	return out
}

// SetGoalConfig replaces all goal configurations with q.
func (p *Problem) SetGoalConfig(q configspace.Configuration) {
	p.goalConfigs = []configspace.Configuration{q.Clone()}
}

// AddGoalConfig appends a goal configuration.
func (p *Problem) AddGoalConfig(q configspace.Configuration) {
	p.goalConfigs = append(p.goalConfigs, q.Clone())
}

// RoadmapBuilder returns the configured builder, or nil.
func (p *Problem) RoadmapBuilder() RoadmapBuilder {
	return p.builder
}

// SetRoadmapBuilder replaces the builder.
func (p *Problem) SetRoadmapBuilder(b RoadmapBuilder) {
	p.builder = b
}

// SteeringMethod returns the problem's steering method, falling back to the
// robot's when none is set on the problem.
func (p *Problem) SteeringMethod() configspace.SteeringMethod {
	if p.sm != nil {
		return p.sm
	}
	if p.robot != nil {
		return p.robot.SteeringMethod()
	}
	return nil
}

// SetSteeringMethod replaces the problem's steering method.
func (p *Problem) SetSteeringMethod(sm configspace.SteeringMethod) {
	p.sm = sm
}

// PathOptimizer returns the configured optimizer, or nil.
func (p *Problem) PathOptimizer() PathOptimizer {
	return p.optimizer
}

// SetPathOptimizer replaces the optimizer.
func (p *Problem) SetPathOptimizer(o PathOptimizer) {
	p.optimizer = o
}

// AddPath appends a solved path. Paths grow strictly in insertion order.
func (p *Problem) AddPath(path *configspace.Path) {
	p.paths = append(p.paths, path)
}

// NumPaths returns how many paths have been stored.
func (p *Problem) NumPaths() int {
	return len(p.paths)
}

// PathAt returns the ith stored path, or nil if i is out of range.
func (p *Problem) PathAt(i int) *configspace.Path {
	if i < 0 || i >= len(p.paths) {
		return nil
	}
	return p.paths[i]
}
