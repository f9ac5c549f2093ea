package roadmap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/Hankfirst/hpp-core/configspace"
)

// flatSegment is a trivial straight motion segment for graph tests.
type flatSegment struct {
	start, end configspace.Configuration
	valid      bool
}

func newFlatSegment(start, end configspace.Configuration) *flatSegment {
	return &flatSegment{start: start, end: end, valid: true}
}

func (s *flatSegment) Start() configspace.Configuration { return s.start }
func (s *flatSegment) End() configspace.Configuration   { return s.end }
func (s *flatSegment) Length() float64                  { return 1 }
func (s *flatSegment) Interpolate(t float64) configspace.Configuration {
	return configspace.Interpolate(s.start, s.end, math.Min(math.Max(t, 0), 1))
}
func (s *flatSegment) Reverse() configspace.DirectPath {
	return &flatSegment{start: s.end, end: s.start, valid: s.valid}
}
func (s *flatSegment) IsValid() bool       { return s.valid }
func (s *flatSegment) SetValid(valid bool) { s.valid = valid }

func newTestRoadmap(t *testing.T) *Roadmap {
	t.Helper()
	return New(configspace.NewL2Distance(), golog.NewTestLogger(t))
}

func TestAddNodeDedup(t *testing.T) {
	rm := newTestRoadmap(t)
	q := configspace.NewConfiguration(1, 2)
	n1 := rm.AddNode(q)
	n2 := rm.AddNode(configspace.NewConfiguration(1, 2))
	test.That(t, n2, test.ShouldEqual, n1)
	test.That(t, rm.Nodes(), test.ShouldHaveLength, 1)
	test.That(t, rm.ConnectedComponents(), test.ShouldHaveLength, 1)

	n3 := rm.AddNode(configspace.NewConfiguration(3, 4))
	test.That(t, n3, test.ShouldNotEqual, n1)
	test.That(t, rm.Nodes(), test.ShouldHaveLength, 2)
	test.That(t, rm.ConnectedComponents(), test.ShouldHaveLength, 2)
	test.That(t, rm.CheckInvariants(), test.ShouldBeNil)
}

func TestAddEdgesMakesMutualReachability(t *testing.T) {
	rm := newTestRoadmap(t)
	a := rm.AddNode(configspace.NewConfiguration(0, 0))
	b := rm.AddNode(configspace.NewConfiguration(1, 0))
	rm.AddEdges(a, b, newFlatSegment(a.Configuration(), b.Configuration()))

	test.That(t, a.ConnectedComponent().CanReach(b.ConnectedComponent()), test.ShouldBeTrue)
	test.That(t, b.ConnectedComponent().CanReach(a.ConnectedComponent()), test.ShouldBeTrue)
	// the two directed edges close a cycle, so the components merged
	test.That(t, a.ConnectedComponent(), test.ShouldEqual, b.ConnectedComponent())
	test.That(t, rm.ConnectedComponents(), test.ShouldHaveLength, 1)
	test.That(t, rm.Edges(), test.ShouldHaveLength, 2)
	test.That(t, rm.CheckInvariants(), test.ShouldBeNil)
}

func TestAddEdgeThenReverseMerges(t *testing.T) {
	rm := newTestRoadmap(t)
	a := rm.AddNode(configspace.NewConfiguration(0, 0))
	b := rm.AddNode(configspace.NewConfiguration(1, 0))
	seg := newFlatSegment(a.Configuration(), b.Configuration())

	rm.AddEdge(a, b, seg)
	test.That(t, a.ConnectedComponent(), test.ShouldNotEqual, b.ConnectedComponent())
	test.That(t, a.ConnectedComponent().CanReach(b.ConnectedComponent()), test.ShouldBeTrue)
	test.That(t, b.ConnectedComponent().CanReach(a.ConnectedComponent()), test.ShouldBeFalse)

	rm.AddEdge(b, a, seg.Reverse())
	test.That(t, a.ConnectedComponent(), test.ShouldEqual, b.ConnectedComponent())
	test.That(t, rm.ConnectedComponents(), test.ShouldHaveLength, 1)
	test.That(t, rm.CheckInvariants(), test.ShouldBeNil)
}

func TestCycleMerge(t *testing.T) {
	// three singleton components; edges A->B, B->C, C->A; the third edge
	// closes the cycle and everything merges
	rm := newTestRoadmap(t)
	a := rm.AddNode(configspace.NewConfiguration(0, 0))
	b := rm.AddNode(configspace.NewConfiguration(1, 0))
	c := rm.AddNode(configspace.NewConfiguration(2, 0))

	rm.AddEdge(a, b, newFlatSegment(a.Configuration(), b.Configuration()))
	rm.AddEdge(b, c, newFlatSegment(b.Configuration(), c.Configuration()))
	test.That(t, rm.ConnectedComponents(), test.ShouldHaveLength, 3)
	test.That(t, a.ConnectedComponent().CanReach(c.ConnectedComponent()), test.ShouldBeTrue)

	rm.AddEdge(c, a, newFlatSegment(c.Configuration(), a.Configuration()))
	test.That(t, rm.ConnectedComponents(), test.ShouldHaveLength, 1)
	cc := a.ConnectedComponent()
	test.That(t, b.ConnectedComponent(), test.ShouldEqual, cc)
	test.That(t, c.ConnectedComponent(), test.ShouldEqual, cc)
	test.That(t, cc.Nodes(), test.ShouldHaveLength, 3)
	// after the merge the reachability sets contain only the component
	// itself
	test.That(t, cc.ReachableTo(), test.ShouldResemble, []*ConnectedComponent{cc})
	test.That(t, cc.ReachableFrom(), test.ShouldResemble, []*ConnectedComponent{cc})
	test.That(t, rm.CheckInvariants(), test.ShouldBeNil)
}

func TestSelfEdgeAndDuplicateEdgesAllowed(t *testing.T) {
	rm := newTestRoadmap(t)
	a := rm.AddNode(configspace.NewConfiguration(0, 0))
	b := rm.AddNode(configspace.NewConfiguration(1, 0))
	seg := newFlatSegment(a.Configuration(), b.Configuration())

	rm.AddEdge(a, a, newFlatSegment(a.Configuration(), a.Configuration()))
	rm.AddEdge(a, b, seg)
	rm.AddEdge(a, b, seg)
	test.That(t, rm.Edges(), test.ShouldHaveLength, 3)
	test.That(t, a.OutEdges(), test.ShouldHaveLength, 3)
	test.That(t, a.InEdges(), test.ShouldHaveLength, 1)
	test.That(t, rm.CheckInvariants(), test.ShouldBeNil)
}

func TestAddNodeAndEdges(t *testing.T) {
	rm := newTestRoadmap(t)
	a := rm.AddNode(configspace.NewConfiguration(0, 0))
	q := configspace.NewConfiguration(1, 1)
	node := rm.AddNodeAndEdges(a, q, newFlatSegment(a.Configuration(), q))
	test.That(t, node.ConnectedComponent(), test.ShouldEqual, a.ConnectedComponent())
	test.That(t, rm.Edges(), test.ShouldHaveLength, 2)
	test.That(t, rm.CheckInvariants(), test.ShouldBeNil)
}

func TestPathExists(t *testing.T) {
	rm := newTestRoadmap(t)
	_, err := rm.PathExists()
	test.That(t, errors.Is(err, ErrInvariantViolation), test.ShouldBeTrue)

	start := rm.SetInitNode(configspace.NewConfiguration(0, 0))
	goal := rm.AddGoalNode(configspace.NewConfiguration(1, 0))
	ok, err := rm.PathExists()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)

	rm.AddEdge(start, goal, newFlatSegment(start.Configuration(), goal.Configuration()))
	ok, err = rm.PathExists()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestAddGoalNodeDedups(t *testing.T) {
	rm := newTestRoadmap(t)
	g1 := rm.AddGoalNode(configspace.NewConfiguration(1, 0))
	g2 := rm.AddGoalNode(configspace.NewConfiguration(1, 0))
	test.That(t, g2, test.ShouldEqual, g1)
	test.That(t, rm.GoalNodes(), test.ShouldHaveLength, 1)
}

func TestClear(t *testing.T) {
	rm := newTestRoadmap(t)
	start := rm.SetInitNode(configspace.NewConfiguration(0, 0))
	goal := rm.AddGoalNode(configspace.NewConfiguration(1, 0))
	rm.AddEdge(start, goal, newFlatSegment(start.Configuration(), goal.Configuration()))

	rm.Clear()
	test.That(t, rm.Nodes(), test.ShouldHaveLength, 0)
	test.That(t, rm.Edges(), test.ShouldHaveLength, 0)
	test.That(t, rm.ConnectedComponents(), test.ShouldHaveLength, 0)
	test.That(t, rm.GoalNodes(), test.ShouldHaveLength, 0)
	test.That(t, rm.InitNode(), test.ShouldBeNil)

	// the roadmap is reusable after Clear
	n := rm.AddNode(configspace.NewConfiguration(2, 2))
	nearest, _ := rm.NearestNode(configspace.NewConfiguration(0, 0))
	test.That(t, nearest, test.ShouldEqual, n)
}

func TestNearestNodeBruteForce(t *testing.T) {
	// 100 random configurations, 20 random queries: the k-d tree result
	// must match the brute-force argmin under the metric
	rm := newTestRoadmap(t)
	distance := rm.Distance()
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		rm.AddNode(configspace.NewConfiguration(rnd.Float64()*10, rnd.Float64()*10, rnd.Float64()*10))
	}
	for i := 0; i < 20; i++ {
		q := configspace.NewConfiguration(rnd.Float64()*10, rnd.Float64()*10, rnd.Float64()*10)

		bestDist := math.Inf(1)
		var best *Node
		for _, n := range rm.Nodes() {
			if d := distance.Distance(q, n.Configuration()); d < bestDist {
				bestDist, best = d, n
			}
		}

		node, dist := rm.NearestNode(q)
		test.That(t, node, test.ShouldEqual, best)
		test.That(t, dist, test.ShouldAlmostEqual, bestDist, 1e-12)
	}
	test.That(t, rm.CheckInvariants(), test.ShouldBeNil)
}

func TestNearestNodeInComponent(t *testing.T) {
	rm := newTestRoadmap(t)
	a := rm.AddNode(configspace.NewConfiguration(0, 0))
	b := rm.AddNode(configspace.NewConfiguration(5, 0))

	// the globally nearest node to the query is b, but filtering by a's
	// component must return a
	q := configspace.NewConfiguration(4, 0)
	node, dist := rm.NearestNodeInComponent(q, a.ConnectedComponent())
	test.That(t, node, test.ShouldEqual, a)
	test.That(t, dist, test.ShouldAlmostEqual, 4)

	node, dist = rm.NearestNodeInComponent(q, b.ConnectedComponent())
	test.That(t, node, test.ShouldEqual, b)
	test.That(t, dist, test.ShouldAlmostEqual, 1)
}

func TestKdTreeSplitsBuckets(t *testing.T) {
	// push well past the bucket size so the tree actually splits, then
	// verify searches stay exact
	rm := NewWithBucketSize(configspace.NewL2Distance(), golog.NewTestLogger(t), 4)
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		rm.AddNode(configspace.NewConfiguration(rnd.Float64()*100, rnd.Float64()*100))
	}
	distance := rm.Distance()
	for i := 0; i < 10; i++ {
		q := configspace.NewConfiguration(rnd.Float64()*100, rnd.Float64()*100)
		bestDist := math.Inf(1)
		for _, n := range rm.Nodes() {
			bestDist = math.Min(bestDist, distance.Distance(q, n.Configuration()))
		}
		_, dist := rm.NearestNode(q)
		test.That(t, dist, test.ShouldAlmostEqual, bestDist, 1e-12)
	}
}
