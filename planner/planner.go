// Package planner contains the planning driver: an ordered collection of
// problems, each pairing a robot with its roadmap builder, steering method
// and optional path optimizer. The driver attempts a direct connection
// first and falls back to the roadmap builder, emitting notifications on an
// explicit per-planner event hub.
package planner

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Hankfirst/hpp-core/collision"
	"github.com/Hankfirst/hpp-core/configspace"
)

// Planner maintains an ordered sequence of independent planning problems, a
// shared obstacle list handed to problems by snapshot, and the cooperative
// stop flag its roadmap builders poll. All operations run on the caller's
// thread.
type Planner struct {
	logger       golog.Logger
	problems     []*Problem
	obstacles    []collision.Object
	stopDelegate *StopDelegate
	events       *EventHub
}

// New builds an empty planner.
func New(logger golog.Logger) *Planner {
	return &Planner{
		logger:       logger,
		stopDelegate: &StopDelegate{},
		events:       NewEventHub(),
	}
}

// Events returns the planner's notification hub.
func (p *Planner) Events() *EventHub {
	return p.events
}

// NumProblems returns how many problems the planner holds.
func (p *Planner) NumProblems() int {
	return len(p.problems)
}

// ProblemAt returns the ith problem, or nil if i is out of range.
func (p *Planner) ProblemAt(i int) *Problem {
	if i < 0 || i >= len(p.problems) {
		return nil
	}
	return p.problems[i]
}

// AddProblem appends a new problem for robot, handing it a snapshot of the
// shared obstacle list, and emits ADD_ROBOT.
func (p *Planner) AddProblem(robot configspace.Robot) *Problem {
	prob := NewProblem(robot, p.obstacles)
	p.problems = append(p.problems, prob)
	p.events.notify(AddRobot, map[string]interface{}{RobotKey: robot})
	return prob
}

// AddProblemAtBeginning inserts a new problem for robot at the front of the
// sequence and emits ADD_ROBOT.
func (p *Planner) AddProblemAtBeginning(robot configspace.Robot) *Problem {
	prob := NewProblem(robot, p.obstacles)
	p.problems = append([]*Problem{prob}, p.problems...)
	p.events.notify(AddRobot, map[string]interface{}{RobotKey: robot})
	return prob
}

// RemoveProblem pops the last problem and clears the shared obstacle list.
func (p *Planner) RemoveProblem() error {
	if len(p.problems) == 0 {
		return errors.Wrap(ErrIndexOutOfRange, "no problem to remove")
	}
	p.problems = p.problems[:len(p.problems)-1]
	p.obstacles = nil
	return nil
}

// RemoveProblemAtBeginning pops the first problem and clears the shared
// obstacle list.
func (p *Planner) RemoveProblemAtBeginning() error {
	if len(p.problems) == 0 {
		return errors.Wrap(ErrIndexOutOfRange, "no problem to remove")
	}
	p.problems = p.problems[1:]
	p.obstacles = nil
	return nil
}

// RobotAt returns the robot of the ith problem, or nil.
func (p *Planner) RobotAt(i int) configspace.Robot {
	if prob := p.ProblemAt(i); prob != nil {
		return prob.Robot()
	}
	return nil
}

// CurrentConfigAt returns the current configuration of the ith problem's
// robot, or nil.
func (p *Planner) CurrentConfigAt(i int) configspace.Configuration {
	if prob := p.ProblemAt(i); prob != nil && prob.Robot() != nil {
		return prob.Robot().CurrentConfig()
	}
	return nil
}

// SetCurrentConfigAt applies q as the current configuration of the ith
// problem's robot and emits SET_CURRENT_CONFIG.
func (p *Planner) SetCurrentConfigAt(i int, q configspace.Configuration) error {
	prob := p.ProblemAt(i)
	if prob == nil || prob.Robot() == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d", i)
	}
	if err := prob.Robot().ApplyCurrentConfig(q); err != nil {
		return err
	}
	p.events.notify(SetCurrentConfig, map[string]interface{}{ConfigKey: q})
	return nil
}

// InitConfigAt returns the ith problem's start configuration, or nil.
func (p *Planner) InitConfigAt(i int) configspace.Configuration {
	if prob := p.ProblemAt(i); prob != nil {
		return prob.InitConfig()
	}
	return nil
}

// SetInitConfigAt replaces the ith problem's start configuration.
func (p *Planner) SetInitConfigAt(i int, q configspace.Configuration) error {
	prob := p.ProblemAt(i)
	if prob == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d", i)
	}
	prob.SetInitConfig(q)
	return nil
}

// GoalConfigAt returns the ith problem's first goal configuration, or nil.
func (p *Planner) GoalConfigAt(i int) configspace.Configuration {
	if prob := p.ProblemAt(i); prob != nil {
		return prob.GoalConfig()
	}
	return nil
}

// SetGoalConfigAt replaces the ith problem's goal configurations with q.
func (p *Planner) SetGoalConfigAt(i int, q configspace.Configuration) error {
	prob := p.ProblemAt(i)
	if prob == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d", i)
	}
	prob.SetGoalConfig(q)
	return nil
}

// SteeringMethodAt returns the ith problem's steering method, or nil.
func (p *Planner) SteeringMethodAt(i int) configspace.SteeringMethod {
	if prob := p.ProblemAt(i); prob != nil {
		return prob.SteeringMethod()
	}
	return nil
}

// SetSteeringMethodAt replaces the ith problem's steering method.
func (p *Planner) SetSteeringMethodAt(i int, sm configspace.SteeringMethod) error {
	prob := p.ProblemAt(i)
	if prob == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d", i)
	}
	prob.SetSteeringMethod(sm)
	return nil
}

// RoadmapBuilderAt returns the ith problem's roadmap builder, or nil.
func (p *Planner) RoadmapBuilderAt(i int) RoadmapBuilder {
	if prob := p.ProblemAt(i); prob != nil {
		return prob.RoadmapBuilder()
	}
	return nil
}

// SetRoadmapBuilderAt replaces the ith problem's roadmap builder, wiring the
// planner's stop delegate into it. A REMOVE_ROADMAPBUILDER notification is
// emitted for the replaced builder, then ADD_ROADMAPBUILDER for the new
// one.
func (p *Planner) SetRoadmapBuilderAt(i int, b RoadmapBuilder) error {
	prob := p.ProblemAt(i)
	if prob == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d", i)
	}
	p.events.notify(RemoveRoadmapBuilder, map[string]interface{}{RoadmapKey: i})
	prob.SetRoadmapBuilder(b)
	b.AddDelegate(p.stopDelegate)
	p.events.notify(AddRoadmapBuilder, map[string]interface{}{RoadmapKey: i})
	return nil
}

// PathOptimizerAt returns the ith problem's path optimizer, or nil.
func (p *Planner) PathOptimizerAt(i int) PathOptimizer {
	if prob := p.ProblemAt(i); prob != nil {
		return prob.PathOptimizer()
	}
	return nil
}

// SetPathOptimizerAt replaces the ith problem's path optimizer.
func (p *Planner) SetPathOptimizerAt(i int, o PathOptimizer) error {
	prob := p.ProblemAt(i)
	if prob == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d", i)
	}
	prob.SetPathOptimizer(o)
	return nil
}

// ObstacleList returns a copy of the shared obstacle list.
func (p *Planner) ObstacleList() []collision.Object {
	out := make([]collision.Object, len(p.obstacles))
	copy(out, p.obstacles)
	return out
}

// SetObstacleList replaces the shared obstacle list and broadcasts a
// snapshot to every problem. REMOVE_OBSTACLES is emitted before the
// replacement, SET_OBSTACLE_LIST after.
func (p *Planner) SetObstacleList(obs []collision.Object) {
	p.events.notify(RemoveObstacles, nil)
	p.obstacles = make([]collision.Object, len(obs))
	copy(p.obstacles, obs)
	for _, prob := range p.problems {
		prob.SetObstacles(p.obstacles)
	}
	p.events.notify(SetObstacleList, map[string]interface{}{ObstacleKey: p.ObstacleList()})
}

// AddObstacle appends one obstacle, broadcasts it to every problem and emits
// ADD_OBSTACLE.
func (p *Planner) AddObstacle(o collision.Object) {
	p.obstacles = append(p.obstacles, o)
	for _, prob := range p.problems {
		prob.AddObstacle(o)
	}
	p.events.notify(AddObstacle, map[string]interface{}{ObstacleKey: p.ObstacleList()})
}

// NumPathsAt returns how many paths the ith problem has stored.
func (p *Planner) NumPathsAt(i int) int {
	if prob := p.ProblemAt(i); prob != nil {
		return prob.NumPaths()
	}
	return 0
}

// PathAt returns the given stored path, or nil on a bad index pair.
func (p *Planner) PathAt(problemID, pathID int) *configspace.Path {
	if prob := p.ProblemAt(problemID); prob != nil {
		return prob.PathAt(pathID)
	}
	return nil
}

// AddPathAt appends a path to the ith problem.
func (p *Planner) AddPathAt(i int, path *configspace.Path) error {
	prob := p.ProblemAt(i)
	if prob == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d", i)
	}
	prob.AddPath(path)
	return nil
}

// FindBodyByName scans every problem's robot and returns the first body with
// the given name, or nil.
func (p *Planner) FindBodyByName(name string) configspace.Body {
	for _, prob := range p.problems {
		if prob.Robot() == nil {
			continue
		}
		for _, body := range prob.Robot().Bodies() {
			if body.Name() == name {
				return body
			}
		}
	}
	return nil
}

// SolveProblem solves the ith problem: it validates the problem is fully
// defined, attempts a direct connection, and otherwise invokes the roadmap
// builder, optimizing the result when an optimizer is configured. On the
// roadmap route the pre-optimization path is appended first, then the
// post-optimization path. A failed solve leaves the roadmap at the state it
// reached.
func (p *Planner) SolveProblem(i int) error {
	if i < 0 || i >= len(p.problems) {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d of %d", i, len(p.problems))
	}
	prob := p.problems[i]
	switch {
	case prob.Robot() == nil:
		return errors.Wrap(ErrConfiguration, "robot not set")
	case prob.InitConfig() == nil:
		return errors.Wrap(ErrConfiguration, "init config not set")
	case prob.GoalConfig() == nil:
		return errors.Wrap(ErrConfiguration, "goal config not set")
	case prob.SteeringMethod() == nil:
		return errors.Wrap(ErrConfiguration, "steering method not set")
	case prob.RoadmapBuilder() == nil:
		return errors.Wrap(ErrConfiguration, "roadmap builder not set")
	}

	outcome, err := p.attemptDirectPath(prob)
	switch outcome {
	case directSolved:
		return nil
	case directError:
		return err
	case directFallback:
	}

	builder := prob.RoadmapBuilder()
	path, err := builder.SolveProblem(prob.InitConfig(), prob.GoalConfig())
	if err != nil {
		return errors.Wrapf(ErrPlanningFailure, "builder: %v", err)
	}
	if path == nil {
		return errors.Wrap(ErrPlanningFailure, "builder returned no path")
	}
	// store the path before optimization
	prob.AddPath(path.Clone())
	if opt := prob.PathOptimizer(); opt != nil {
		if err := opt.OptimizePath(path, builder.Penetration()); err != nil {
			p.logger.Debugf("path optimization failed: %v", err)
		}
		prob.AddPath(path)
	}
	return nil
}

// Solve runs SolveProblem on every problem in order and folds the failures.
func (p *Planner) Solve() error {
	var result error
	for i := range p.problems {
		if err := p.SolveProblem(i); err != nil {
			result = multierr.Append(result, errors.Wrapf(err, "problem %d", i))
		}
	}
	return result
}

// OptimizePath re-runs the configured optimizer on an already-stored path,
// replacing it in place.
func (p *Planner) OptimizePath(problemID, pathID int) error {
	prob := p.ProblemAt(problemID)
	if prob == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "problem %d of %d", problemID, len(p.problems))
	}
	path := prob.PathAt(pathID)
	if path == nil {
		return errors.Wrapf(ErrIndexOutOfRange, "path %d of %d", pathID, prob.NumPaths())
	}
	opt := prob.PathOptimizer()
	if opt == nil {
		p.logger.Debugf("no optimizer defined for problem %s", prob.ID())
		return nil
	}
	builder := prob.RoadmapBuilder()
	if builder == nil {
		return errors.Wrap(ErrConfiguration, "roadmap builder not set")
	}
	return opt.OptimizePath(path, builder.Penetration())
}

// InterruptPathPlanning raises the stop flag polled by the roadmap
// builders. It is idempotent, does not unwind state, and has no effect on
// already-returned paths.
func (p *Planner) InterruptPathPlanning() {
	p.stopDelegate.RequestStop()
}

// ResetInterruption rearms the stop flag before the next solve.
func (p *Planner) ResetInterruption() {
	p.stopDelegate.Reset()
}
