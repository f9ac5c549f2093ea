package roadmap

import (
	"math"

	"github.com/Hankfirst/hpp-core/configspace"
)

// defaultBucketSize is the number of nodes a k-d tree leaf holds before it
// splits.
const defaultBucketSize = 30

// kdTree is a bucketed k-d tree over roadmap nodes. Cells split on the
// widest dimension of their bucket; each cell tracks the bounding box of the
// nodes beneath it. When the metric can bound its value over a box
// (configspace.BoxBounder), subtrees are pruned during search; otherwise the
// descent is exhaustive, which stays correct for arbitrary metrics.
type kdTree struct {
	distance   configspace.Distance
	bounder    configspace.BoxBounder
	bucketSize int
	root       *kdCell
	size       int
}

type kdCell struct {
	// leaf state
	bucket []*Node
	// interior state
	splitDim    int
	splitVal    float64
	left, right *kdCell
	// bounding box of the nodes beneath this cell
	min, max []float64
}

func newKdTree(distance configspace.Distance, bucketSize int) *kdTree {
	if bucketSize <= 0 {
		bucketSize = defaultBucketSize
	}
	bounder, _ := distance.(configspace.BoxBounder)
	return &kdTree{distance: distance, bounder: bounder, bucketSize: bucketSize}
}

// Add inserts a node under its configuration. The roadmap guarantees no
// duplicate configurations are inserted.
func (t *kdTree) Add(n *Node) {
	q := n.Configuration()
	if t.root == nil {
		t.root = &kdCell{min: boxOf(q), max: boxOf(q)}
	}
	cell := t.root
	for {
		grow(cell, q)
		if cell.left == nil {
			break
		}
		if q[cell.splitDim] < cell.splitVal {
			cell = cell.left
		} else {
			cell = cell.right
		}
	}
	cell.bucket = append(cell.bucket, n)
	t.size++
	if len(cell.bucket) > t.bucketSize {
		t.split(cell)
	}
}

// Clear removes all entries.
func (t *kdTree) Clear() {
	t.root = nil
	t.size = 0
}

// Search returns the node of cc nearest to q under the tree's metric, along
// with that distance. A nil node is returned when cc has no node in the
// tree. Ties keep the first node met in the descent, which visits the side
// of each split holding q first, so the result is deterministic for a given
// insertion order.
func (t *kdTree) Search(q configspace.Configuration, cc *ConnectedComponent) (*Node, float64) {
	best := (*Node)(nil)
	bestDist := math.Inf(1)
	var descend func(cell *kdCell)
	descend = func(cell *kdCell) {
		if cell == nil {
			return
		}
		if t.bounder != nil && best != nil && t.bounder.BoxLowerBound(q, cell.min, cell.max) >= bestDist {
			return
		}
		if cell.left == nil {
			for _, n := range cell.bucket {
				if cc != nil && n.ConnectedComponent() != cc {
					continue
				}
				if d := t.distance.Distance(q, n.Configuration()); d < bestDist {
					best, bestDist = n, d
				}
			}
			return
		}
		if q[cell.splitDim] < cell.splitVal {
			descend(cell.left)
			descend(cell.right)
		} else {
			descend(cell.right)
			descend(cell.left)
		}
	}
	descend(t.root)
	return best, bestDist
}

// split turns a full leaf into an interior cell with two leaves, cutting the
// widest dimension of its bucket at the midpoint.
func (t *kdTree) split(cell *kdCell) {
	dim, width := 0, -1.
	for i := range cell.min {
		if w := cell.max[i] - cell.min[i]; w > width {
			dim, width = i, w
		}
	}
	if width <= 0 {
		// every configuration in the bucket coincides on every axis; the
		// roadmap's dedup makes this unreachable, but an unsplittable
		// bucket simply keeps growing rather than recursing forever
		return
	}
	cell.splitDim = dim
	cell.splitVal = (cell.min[dim] + cell.max[dim]) / 2
	left := &kdCell{}
	right := &kdCell{}
	for _, n := range cell.bucket {
		q := n.Configuration()
		target := right
		if q[dim] < cell.splitVal {
			target = left
		}
		if target.min == nil {
			target.min, target.max = boxOf(q), boxOf(q)
		} else {
			grow(target, q)
		}
		target.bucket = append(target.bucket, n)
	}
	cell.bucket = nil
	cell.left = left
	cell.right = right
}

func boxOf(q configspace.Configuration) []float64 {
	out := make([]float64, len(q))
	copy(out, q)
	return out
}

func grow(cell *kdCell, q configspace.Configuration) {
	if cell.min == nil {
		cell.min, cell.max = boxOf(q), boxOf(q)
		return
	}
	for i, v := range q {
		if v < cell.min[i] {
			cell.min[i] = v
		}
		if v > cell.max[i] {
			cell.max[i] = v
		}
	}
}
