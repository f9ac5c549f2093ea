package roadmap

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/Hankfirst/hpp-core/configspace"
)

// ErrInvariantViolation reports a broken graph or component invariant. It is
// fatal: it indicates an implementation bug, not a planning failure.
var ErrInvariantViolation = errors.New("roadmap invariant violation")

// Roadmap is a directed multigraph of configurations. It owns its nodes,
// edges and connected components, maintains component reachability
// incrementally under edge insertion, and answers nearest-neighbour queries
// through a k-d tree.
type Roadmap struct {
	distance   configspace.Distance
	logger     golog.Logger
	nodes      []*Node
	edges      []*Edge
	components []*ConnectedComponent
	tree       *kdTree
	initNode   *Node
	goalNodes  []*Node
}

// New builds an empty roadmap using distance for nearest-neighbour queries.
func New(distance configspace.Distance, logger golog.Logger) *Roadmap {
	return NewWithBucketSize(distance, logger, defaultBucketSize)
}

// NewWithBucketSize builds an empty roadmap with an explicit k-d tree leaf
// bucket size.
func NewWithBucketSize(distance configspace.Distance, logger golog.Logger, bucketSize int) *Roadmap {
	return &Roadmap{
		distance: distance,
		logger:   logger,
		tree:     newKdTree(distance, bucketSize),
	}
}

// Distance returns the metric the roadmap was built with.
func (r *Roadmap) Distance() configspace.Distance {
	return r.distance
}

// Nodes returns the nodes in insertion order.
func (r *Roadmap) Nodes() []*Node {
	out := make([]*Node, len(r.nodes))
	copy(out, r.nodes)
	return out
}

// Edges returns the edges in insertion order.
func (r *Roadmap) Edges() []*Edge {
	out := make([]*Edge, len(r.edges))
	copy(out, r.edges)
	return out
}

// ConnectedComponents returns the current components in creation order.
func (r *Roadmap) ConnectedComponents() []*ConnectedComponent {
	out := make([]*ConnectedComponent, len(r.components))
	copy(out, r.components)
	return out
}

// InitNode returns the distinguished start node, or nil if unset.
func (r *Roadmap) InitNode() *Node {
	return r.initNode
}

// GoalNodes returns the goal nodes in insertion order.
func (r *Roadmap) GoalNodes() []*Node {
	out := make([]*Node, len(r.goalNodes))
	copy(out, r.goalNodes)
	return out
}

// AddNode returns the existing node whose configuration equals q under value
// equality, or creates a new node in a fresh singleton component.
func (r *Roadmap) AddNode(q configspace.Configuration) *Node {
	if len(r.nodes) != 0 {
		if nearest, _ := r.NearestNode(q); nearest != nil && nearest.Configuration().Equal(q) {
			return nearest
		}
	}
	node := newNode(q, newConnectedComponent())
	r.logger.Debugf("added node: %s", q)
	r.nodes = append(r.nodes, node)
	r.components = append(r.components, node.ConnectedComponent())
	r.tree.Add(node)
	return node
}

// AddNodeInComponent returns the node of cc whose configuration equals q, or
// creates a new node assigned to cc.
func (r *Roadmap) AddNodeInComponent(q configspace.Configuration, cc *ConnectedComponent) *Node {
	if len(cc.nodes) != 0 {
		if nearest, _ := r.NearestNodeInComponent(q, cc); nearest != nil && nearest.Configuration().Equal(q) {
			return nearest
		}
	}
	node := newNode(q, cc)
	r.logger.Debugf("added node: %s", q)
	r.nodes = append(r.nodes, node)
	r.tree.Add(node)
	return node
}

// SetInitNode locates or creates the node for q and marks it as the start
// node.
func (r *Roadmap) SetInitNode(q configspace.Configuration) *Node {
	r.initNode = r.AddNode(q)
	return r.initNode
}

// AddGoalNode locates or creates the node for q and appends it to the goal
// list if not already there.
func (r *Roadmap) AddGoalNode(q configspace.Configuration) *Node {
	node := r.AddNode(q)
	for _, g := range r.goalNodes {
		if g == node {
			return node
		}
	}
	r.goalNodes = append(r.goalNodes, node)
	return node
}

// AddEdge appends a single directed edge carrying path and records the
// induced component reachability.
func (r *Roadmap) AddEdge(from, to *Node, path configspace.DirectPath) *Edge {
	edge := newEdge(from, to, path)
	r.edges = append(r.edges, edge)
	r.logger.Debugf("added edge between: %s and: %s", from.Configuration(), to.Configuration())
	r.connect(from.ConnectedComponent(), to.ConnectedComponent())
	return edge
}

// AddEdges appends the pair of edges representing an undirected connection:
// from -> to carrying path and to -> from carrying its time-reverse.
func (r *Roadmap) AddEdges(from, to *Node, path configspace.DirectPath) {
	r.AddEdge(from, to, path)
	r.AddEdge(to, from, path.Reverse())
}

// AddNodeAndEdges creates (or finds) the node for q in from's component and
// connects it to from in both directions.
func (r *Roadmap) AddNodeAndEdges(from *Node, q configspace.Configuration, path configspace.DirectPath) *Node {
	node := r.AddNodeInComponent(q, from.ConnectedComponent())
	r.AddEdges(from, node, path)
	return node
}

// NearestNode scans all components and returns the node nearest to q along
// with its distance, or nil when the roadmap is empty.
func (r *Roadmap) NearestNode(q configspace.Configuration) (*Node, float64) {
	closest := (*Node)(nil)
	minDistance := math.Inf(1)
	for _, cc := range r.components {
		node, distance := r.tree.Search(q, cc)
		if node != nil && distance < minDistance {
			closest, minDistance = node, distance
		}
	}
	return closest, minDistance
}

// NearestNodeInComponent returns the node of cc nearest to q along with its
// distance. cc must have at least one node.
func (r *Roadmap) NearestNodeInComponent(q configspace.Configuration, cc *ConnectedComponent) (*Node, float64) {
	return r.tree.Search(q, cc)
}

// PathExists reports whether some goal node is transitively reachable from
// the init node. It errors when no init node has been set.
func (r *Roadmap) PathExists() (bool, error) {
	if r.initNode == nil {
		return false, errors.Wrap(ErrInvariantViolation, "pathExists queried before an init node was set")
	}
	ccInit := r.initNode.ConnectedComponent()
	for _, goal := range r.goalNodes {
		if ccInit.CanReach(goal.ConnectedComponent()) {
			return true, nil
		}
	}
	return false, nil
}

// Clear destroys all nodes, edges and components, resets the init and goal
// markers and empties the spatial index.
func (r *Roadmap) Clear() {
	r.nodes = nil
	r.edges = nil
	r.components = nil
	r.goalNodes = nil
	r.initNode = nil
	r.tree.Clear()
}

// connect records that cc1 reaches cc2. When that closes a reachability
// cycle, every component on the cycle is merged into cc1.
func (r *Roadmap) connect(cc1, cc2 *ConnectedComponent) {
	if cc1.CanReach(cc2) {
		return
	}
	if chain, ok := cc2.CanReachChain(cc1); ok {
		r.merge(cc1, chain)
	} else {
		cc1.reachableTo[cc2] = struct{}{}
		cc2.reachableFrom[cc1] = struct{}{}
	}
}

func (r *Roadmap) merge(cc1 *ConnectedComponent, chain []*ConnectedComponent) {
	for _, cc := range chain {
		if cc == cc1 {
			continue
		}
		cc1.merge(cc)
		r.removeComponent(cc)
	}
}

func (r *Roadmap) removeComponent(cc *ConnectedComponent) {
	for i, other := range r.components {
		if other == cc {
			r.components = append(r.components[:i], r.components[i+1:]...)
			return
		}
	}
}

// CheckInvariants verifies the structural invariants of the graph and
// returns an ErrInvariantViolation-wrapped error naming the first violation
// found.
func (r *Roadmap) CheckInvariants() error {
	// components partition the node set
	counted := 0
	for _, cc := range r.components {
		for _, n := range cc.nodes {
			counted++
			if n.ConnectedComponent() != cc {
				return errors.Wrapf(ErrInvariantViolation, "node %s listed by a component it does not point to", n.Configuration())
			}
		}
	}
	if counted != len(r.nodes) {
		return errors.Wrapf(ErrInvariantViolation, "components hold %d nodes, roadmap holds %d", counted, len(r.nodes))
	}
	for _, n := range r.nodes {
		if !containsNode(n.ConnectedComponent().nodes, n) {
			return errors.Wrapf(ErrInvariantViolation, "node %s missing from its component", n.Configuration())
		}
	}
	// edge endpoints respect reachability
	for _, e := range r.edges {
		if !e.From().ConnectedComponent().CanReach(e.To().ConnectedComponent()) {
			return errors.Wrapf(ErrInvariantViolation, "edge %s -> %s not covered by component reachability",
				e.From().Configuration(), e.To().Configuration())
		}
	}
	// reachability symmetry
	for _, cc := range r.components {
		for to := range cc.reachableTo {
			if _, ok := to.reachableFrom[cc]; !ok {
				return errors.Wrap(ErrInvariantViolation, "reachableTo entry without matching reachableFrom")
			}
		}
		for from := range cc.reachableFrom {
			if _, ok := from.reachableTo[cc]; !ok {
				return errors.Wrap(ErrInvariantViolation, "reachableFrom entry without matching reachableTo")
			}
		}
	}
	// no duplicate configurations within a component
	for _, cc := range r.components {
		for i, a := range cc.nodes {
			for _, b := range cc.nodes[i+1:] {
				if a.Configuration().Equal(b.Configuration()) {
					return errors.Wrapf(ErrInvariantViolation, "duplicate configuration %s within a component", a.Configuration())
				}
			}
		}
	}
	return nil
}

func containsNode(nodes []*Node, n *Node) bool {
	for _, other := range nodes {
		if other == n {
			return true
		}
	}
	return false
}
