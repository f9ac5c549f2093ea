package steering

import (
	"github.com/Hankfirst/hpp-core/configspace"
)

// KinodynamicPath is the piecewise-quadratic trajectory produced by the
// Kinodynamic steering method: per axis, positions are quadratic in time
// within each phase and velocities are piecewise linear. Extra degrees of
// freedom beyond the velocities are interpolated linearly over the duration.
type KinodynamicPath struct {
	start, end configspace.Configuration
	phases     []Phases
	duration   float64
	axes       int
	valid      bool
}

func newKinodynamicPath(
	start, end configspace.Configuration,
	phases []Phases,
	duration float64,
	axes int,
) *KinodynamicPath {
	return &KinodynamicPath{
		start:    start.Clone(),
		end:      end.Clone(),
		phases:   phases,
		duration: duration,
		axes:     axes,
		valid:    true,
	}
}

func (p *KinodynamicPath) Start() configspace.Configuration {
	return p.start
}

func (p *KinodynamicPath) End() configspace.Configuration {
	return p.end
}

// Length returns the duration of the trajectory.
func (p *KinodynamicPath) Length() float64 {
	return p.duration
}

// Phases returns the per-axis phase decomposition.
func (p *KinodynamicPath) Phases() []Phases {
	out := make([]Phases, len(p.phases))
	copy(out, p.phases)
	return out
}

// Interpolate returns the configuration at time t: axis positions and
// velocities from the phase profiles, remaining extra degrees of freedom
// interpolated linearly.
func (p *KinodynamicPath) Interpolate(t float64) configspace.Configuration {
	if p.duration == 0 || t <= 0 {
		return p.start.Clone()
	}
	if t >= p.duration {
		return p.end.Clone()
	}
	out := p.start.Clone()
	for i := 0; i < p.axes; i++ {
		pos, vel := p.phases[i].StateAt(t, p.start[i], p.start[p.axes+i])
		out[i] = pos
		out[p.axes+i] = vel
	}
	by := t / p.duration
	for j := 2 * p.axes; j < len(out); j++ {
		out[j] = p.start[j] + (p.end[j]-p.start[j])*by
	}
	return out
}

// Reverse returns the time-reverse of the trajectory: positions are
// traversed from end to start and the velocity degrees of freedom change
// sign.
func (p *KinodynamicPath) Reverse() configspace.DirectPath {
	phases := make([]Phases, len(p.phases))
	for i, ph := range p.phases {
		phases[i] = Phases{
			Sigma: -ph.Sigma,
			A1:    ph.A2,
			A2:    ph.A1,
			T1:    ph.T2,
			Tv:    ph.Tv,
			T2:    ph.T1,
		}
	}
	return &KinodynamicPath{
		start:    negateVelocities(p.end, p.axes),
		end:      negateVelocities(p.start, p.axes),
		phases:   phases,
		duration: p.duration,
		axes:     p.axes,
		valid:    p.valid,
	}
}

func (p *KinodynamicPath) IsValid() bool {
	return p.valid
}

func (p *KinodynamicPath) SetValid(valid bool) {
	p.valid = valid
}

func negateVelocities(q configspace.Configuration, axes int) configspace.Configuration {
	out := q.Clone()
	for i := axes; i < 2*axes && i < len(out); i++ {
		out[i] = -out[i]
	}
	return out
}

var _ configspace.DirectPath = &KinodynamicPath{}
