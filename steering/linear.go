// Package steering provides steering methods: ways of building direct paths
// between pairs of configurations. Linear produces straight geometric
// segments; Kinodynamic produces minimum-time bang-bang trajectories under
// per-axis velocity and acceleration bounds.
package steering

import (
	"github.com/Hankfirst/hpp-core/configspace"
)

// linearPath is a constant-speed straight segment, parameterised by the
// metric length between its endpoints.
type linearPath struct {
	start, end configspace.Configuration
	length     float64
	valid      bool
}

func (p *linearPath) Start() configspace.Configuration {
	return p.start
}

func (p *linearPath) End() configspace.Configuration {
	return p.end
}

func (p *linearPath) Length() float64 {
	return p.length
}

func (p *linearPath) Interpolate(t float64) configspace.Configuration {
	if p.length == 0 || t <= 0 {
		return p.start.Clone()
	}
	if t >= p.length {
		return p.end.Clone()
	}
	return configspace.Interpolate(p.start, p.end, t/p.length)
}

func (p *linearPath) Reverse() configspace.DirectPath {
	return &linearPath{start: p.end, end: p.start, length: p.length, valid: p.valid}
}

func (p *linearPath) IsValid() bool {
	return p.valid
}

func (p *linearPath) SetValid(valid bool) {
	p.valid = valid
}

// Linear steers along the straight segment between two configurations.
type Linear struct {
	distance configspace.Distance
}

// NewLinear builds a straight-line steering method. A nil distance defaults
// to the Euclidean metric.
func NewLinear(distance configspace.Distance) *Linear {
	if distance == nil {
		distance = configspace.NewL2Distance()
	}
	return &Linear{distance: distance}
}

// Steer returns the straight segment from q1 to q2. The segment is
// zero-length, never nil, when q1 equals q2.
func (l *Linear) Steer(q1, q2 configspace.Configuration) (configspace.DirectPath, error) {
	return &linearPath{
		start:  q1.Clone(),
		end:    q2.Clone(),
		length: l.distance.Distance(q1, q2),
		valid:  true,
	}, nil
}

var _ configspace.SteeringMethod = &Linear{}
