package planner

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange reports a problem or path index exceeding the
	// container size.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrConfiguration reports a required field (robot, init config, goal
	// config, steering method, roadmap builder) missing at solve time.
	ErrConfiguration = errors.New("problem ill-defined")
	// ErrPlanningFailure reports that the roadmap builder failed or
	// produced no path.
	ErrPlanningFailure = errors.New("motion planner failed to find path")
	// ErrValidationFailure reports a direct path rejected by collision
	// validation. The driver recovers from it by falling back to the
	// roadmap builder; it never escapes SolveProblem.
	ErrValidationFailure = errors.New("direct path failed collision validation")
	// ErrInterrupted reports a roadmap build terminated cooperatively by
	// InterruptPathPlanning. No partial path is produced.
	ErrInterrupted = errors.New("path planning interrupted")
)
