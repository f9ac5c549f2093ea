package planner

import (
	"math/rand"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/Hankfirst/hpp-core/collision"
	"github.com/Hankfirst/hpp-core/configspace"
	"github.com/Hankfirst/hpp-core/roadmap"
)

// StopDelegate is the cooperative interruption flag shared between a planner
// and its roadmap builders. Builders poll ShouldStop between iterations.
type StopDelegate struct {
	stop bool
}

// RequestStop raises the flag. Idempotent.
func (d *StopDelegate) RequestStop() {
	d.stop = true
}

// Reset rearms the delegate for the next solve.
func (d *StopDelegate) Reset() {
	d.stop = false
}

// ShouldStop reports whether an interruption was requested.
func (d *StopDelegate) ShouldStop() bool {
	return d.stop
}

const defaultBuilderIterations = 5000

// DiffusingBuilder is a simple sampling roadmap builder: it repeatedly draws
// a uniform random configuration within its bounds, steers from the nearest
// roadmap node toward it, keeps the motion when it validates, and tries to
// connect each new node to the goal. It polls its stop delegates between
// iterations and returns ErrInterrupted, with no partial path, when one
// fires.
type DiffusingBuilder struct {
	rm          *roadmap.Roadmap
	sm          configspace.SteeringMethod
	validator   *collision.Validator
	penetration float64
	min, max    []float64
	rnd         *rand.Rand
	maxIter     int
	delegates   []*StopDelegate
	logger      golog.Logger
}

// NewDiffusingBuilder builds a diffusing builder sampling within the
// per-dimension bounds [min, max].
func NewDiffusingBuilder(
	rm *roadmap.Roadmap,
	sm configspace.SteeringMethod,
	validator *collision.Validator,
	min, max []float64,
	seed int64,
	logger golog.Logger,
) *DiffusingBuilder {
	return &DiffusingBuilder{
		rm:          rm,
		sm:          sm,
		validator:   validator,
		penetration: validator.Penetration(),
		min:         min,
		max:         max,
		rnd:         rand.New(rand.NewSource(seed)),
		maxIter:     defaultBuilderIterations,
		logger:      logger,
	}
}

// SetMaxIterations bounds how many samples a solve may draw.
func (b *DiffusingBuilder) SetMaxIterations(n int) {
	b.maxIter = n
}

// Roadmap returns the roadmap the builder grows.
func (b *DiffusingBuilder) Roadmap() *roadmap.Roadmap {
	return b.rm
}

// Penetration returns the collision tolerance the builder validates with.
func (b *DiffusingBuilder) Penetration() float64 {
	return b.penetration
}

// AddDelegate registers a stop delegate polled between iterations.
func (b *DiffusingBuilder) AddDelegate(d *StopDelegate) {
	b.delegates = append(b.delegates, d)
}

func (b *DiffusingBuilder) interrupted() bool {
	for _, d := range b.delegates {
		if d.ShouldStop() {
			return true
		}
	}
	return false
}

// SolveProblem grows the roadmap until goal is reachable from init, then
// extracts the edge path joining them.
func (b *DiffusingBuilder) SolveProblem(init, goal configspace.Configuration) (*configspace.Path, error) {
	start := b.rm.SetInitNode(init)
	goalNode := b.rm.AddGoalNode(goal)

	for iter := 0; iter < b.maxIter; iter++ {
		if b.interrupted() {
			return nil, ErrInterrupted
		}
		if start.ConnectedComponent().CanReach(goalNode.ConnectedComponent()) {
			break
		}
		q := b.sample()
		nearest, _ := b.rm.NearestNode(q)
		dp, err := b.sm.Steer(nearest.Configuration(), q)
		if err != nil || dp == nil {
			continue
		}
		b.validator.Validate(dp)
		if !dp.IsValid() {
			continue
		}
		node := b.rm.AddNodeAndEdges(nearest, q, dp)
		// attempt to join the goal from the freshly reached configuration
		if toGoal, err := b.sm.Steer(node.Configuration(), goal); err == nil && toGoal != nil {
			b.validator.Validate(toGoal)
			if toGoal.IsValid() {
				b.rm.AddEdges(node, goalNode, toGoal)
			}
		}
	}
	if !start.ConnectedComponent().CanReach(goalNode.ConnectedComponent()) {
		return nil, errors.Errorf("no path found after %d iterations", b.maxIter)
	}
	b.logger.Debugf("roadmap connects init to goal with %d nodes", len(b.rm.Nodes()))
	return extractEdgePath(start, goalNode)
}

func (b *DiffusingBuilder) sample() configspace.Configuration {
	q := make(configspace.Configuration, len(b.min))
	for i := range q {
		q[i] = b.min[i] + b.rnd.Float64()*(b.max[i]-b.min[i])
	}
	return q
}

// extractEdgePath finds a directed edge path from start to goal by
// breadth-first search and concatenates the carried segments.
func extractEdgePath(start, goal *roadmap.Node) (*configspace.Path, error) {
	if start == goal {
		return configspace.NewPath(), nil
	}
	parent := map[*roadmap.Node]*roadmap.Edge{}
	queue := []*roadmap.Node{start}
	visited := map[*roadmap.Node]struct{}{start: {}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range n.OutEdges() {
			to := e.To()
			if _, seen := visited[to]; seen {
				continue
			}
			visited[to] = struct{}{}
			parent[to] = e
			if to == goal {
				queue = nil
				break
			}
			queue = append(queue, to)
		}
	}
	if _, ok := parent[goal]; !ok {
		return nil, errors.New("reachable goal has no edge path; roadmap inconsistent")
	}
	var edges []*roadmap.Edge
	for n := goal; n != start; n = parent[n].From() {
		edges = append(edges, parent[n])
	}
	path := configspace.NewPath()
	for i := len(edges) - 1; i >= 0; i-- {
		path.AppendDirectPath(edges[i].Path())
	}
	return path, nil
}

var _ RoadmapBuilder = &DiffusingBuilder{}
