package configspace

import (
	"gonum.org/v1/gonum/floats"
)

// Distance measures how far apart two configurations are. Implementations
// must be pure, symmetric and nonnegative; the core does not assume the
// triangle inequality.
type Distance interface {
	Distance(q1, q2 Configuration) float64
}

// BoxBounder is an optional refinement of Distance. A metric that can bound
// its value from below over an axis-aligned box lets the spatial index prune
// whole subtrees during nearest-neighbour descent; metrics without it are
// still searched correctly, just exhaustively.
type BoxBounder interface {
	// BoxLowerBound returns a value no greater than Distance(q, p) for any
	// p with min[i] <= p[i] <= max[i].
	BoxLowerBound(q Configuration, min, max []float64) float64
}

// WeighedDistance is the weighted Euclidean metric: each degree of freedom
// contributes the square of its difference scaled by a positive weight.
type WeighedDistance struct {
	weights []float64
}

// NewWeighedDistance builds a weighted Euclidean metric. The weight slice is
// copied.
func NewWeighedDistance(weights []float64) *WeighedDistance {
	w := make([]float64, len(weights))
	copy(w, weights)
	return &WeighedDistance{weights: w}
}

// NewL2Distance returns the unweighted Euclidean metric.
func NewL2Distance() *WeighedDistance {
	return &WeighedDistance{}
}

func (d *WeighedDistance) weight(i int) float64 {
	if i < len(d.weights) {
		return d.weights[i]
	}
	return 1
}

// Distance returns the weighted Euclidean distance between q1 and q2.
func (d *WeighedDistance) Distance(q1, q2 Configuration) float64 {
	diff := make([]float64, len(q1))
	for i, v := range q1 {
		diff[i] = d.weight(i) * (q2[i] - v)
	}
	return floats.Norm(diff, 2)
}

// BoxLowerBound returns the weighted distance from q to the closest point of
// the axis-aligned box [min, max].
func (d *WeighedDistance) BoxLowerBound(q Configuration, min, max []float64) float64 {
	diff := make([]float64, len(q))
	for i, v := range q {
		switch {
		case v < min[i]:
			diff[i] = d.weight(i) * (min[i] - v)
		case v > max[i]:
			diff[i] = d.weight(i) * (v - max[i])
		}
	}
	return floats.Norm(diff, 2)
}

var _ BoxBounder = &WeighedDistance{}
