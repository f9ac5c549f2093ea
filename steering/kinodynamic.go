package steering

import (
	"math"

	"github.com/pkg/errors"

	"github.com/Hankfirst/hpp-core/configspace"
)

// Default limits for a kinodynamic steering method.
const (
	DefaultAMax = 0.5
	DefaultVMax = 1.0
)

// discriminantEpsilon bounds how far below zero a quadratic discriminant may
// fall before it is treated as a genuine numerical failure. Degenerate
// inputs legitimately land slightly negative; those are clamped to zero.
const discriminantEpsilon = 1e-9

// ErrNumericalFailure is returned when a steering quadratic has a negative
// discriminant under finite inputs. The planning driver treats it as "no
// direct path exists".
var ErrNumericalFailure = errors.New("negative discriminant in kinodynamic quadratic")

// Phases describes one axis of a bang-bang motion: a constant-acceleration
// phase A1 of duration T1, an optional constant-velocity phase of duration
// Tv, and a constant-acceleration phase A2 = -A1 of duration T2. Sigma is
// the sign of A1.
type Phases struct {
	Sigma      int
	A1, A2     float64
	T1, Tv, T2 float64
}

// Duration returns the total time of the three phases.
func (ph Phases) Duration() float64 {
	return ph.T1 + ph.Tv + ph.T2
}

// StateAt returns the position and velocity at time t of the axis motion
// starting at (p0, v0). t is clamped to [0, Duration].
func (ph Phases) StateAt(t, p0, v0 float64) (float64, float64) {
	if t < 0 {
		t = 0
	}
	if t > ph.Duration() {
		t = ph.Duration()
	}
	p, v := p0, v0
	// first ramp
	dt := math.Min(t, ph.T1)
	p += v*dt + 0.5*ph.A1*dt*dt
	v += ph.A1 * dt
	t -= dt
	// cruise
	dt = math.Min(t, ph.Tv)
	p += v * dt
	t -= dt
	// second ramp
	dt = math.Min(t, ph.T2)
	p += v*dt + 0.5*ph.A2*dt*dt
	v += ph.A2 * dt
	return p, v
}

func sgn(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Kinodynamic computes minimum-time bang-bang trajectories between states
// (position, velocity) under per-axis acceleration and velocity bounds. A
// configuration holds the axis positions first, then the axis velocities in
// the extra configuration space.
type Kinodynamic struct {
	robot      configspace.Robot
	aMax, vMax float64
	axes       int
}

// NewKinodynamic builds a kinodynamic steering method for the given robot.
// The robot must reserve one extra degree of freedom per axis to carry the
// velocities, so its extra configuration space must cover at least half the
// configuration size.
func NewKinodynamic(robot configspace.Robot, aMax, vMax float64) (*Kinodynamic, error) {
	extra := robot.ExtraConfigSpace().Dimension()
	if 2*extra < robot.ConfigSize() {
		return nil, errors.Errorf("robot %q needs at least %d extra degrees of freedom for kinodynamic steering",
			robot.Name(), (robot.ConfigSize()+1)/2)
	}
	if aMax <= 0 {
		aMax = DefaultAMax
	}
	if vMax <= 0 {
		vMax = DefaultVMax
	}
	return &Kinodynamic{
		robot: robot,
		aMax:  aMax,
		vMax:  vMax,
		axes:  robot.ConfigSize() - extra,
	}, nil
}

func checkDiscriminant(delta float64) (float64, error) {
	if delta < -discriminantEpsilon {
		return 0, errors.Wrapf(ErrNumericalFailure, "discriminant %g", delta)
	}
	return math.Max(delta, 0), nil
}

// ComputeMinTime solves the minimum-duration 1-D two- or three-segment
// bang-bang problem from (p1, v1) to (p2, v2) and returns the total duration
// along with the phase decomposition.
func (k *Kinodynamic) ComputeMinTime(p1, p2, v1, v2 float64) (float64, Phases, error) {
	if p1 == p2 && v1 == v2 {
		return 0, Phases{Sigma: 1}, nil
	}
	// sign of the initial acceleration
	deltaPacc := 0.5 * (v1 - v2) * math.Abs(v2-v1) / k.aMax
	sigma := sgn(p2 - p1 - deltaPacc)
	if sigma == 0 {
		sigma = sgn(v2 - v1)
	}
	a1 := float64(sigma) * k.aMax
	a2 := -a1
	vLim := float64(sigma) * k.vMax

	// lower bound for a valid first-ramp duration
	minT1 := math.Max(0, (v2-v1)/a2)
	delta, err := checkDiscriminant(4*v1*v1 - 4*a1*((v2*v2-v1*v1)/(2*a2)-(p2-p1)))
	if err != nil {
		return 0, Phases{}, err
	}
	x := math.Max((-2*v1+math.Sqrt(delta))/(2*a1), (-2*v1-math.Sqrt(delta))/(2*a1))

	twoSegment := x > minT1
	var t1, tv, t2 float64
	if twoSegment {
		t1 = x
	} else {
		t1 = minT1
	}
	if twoSegment && math.Abs(v1+t1*a1) > k.vMax {
		// peak velocity violates the bound
		twoSegment = false
	}
	if twoSegment {
		tv = 0
		t2 = (v2-v1)/a2 + t1
	} else {
		// saturate at vLim and insert a constant-velocity phase
		t1 = (vLim - v1) / a1
		tv = (v1*v1+v2*v2-2*vLim*vLim)/(2*vLim*a1) + (p2-p1)/vLim
		t2 = (v2 - vLim) / a2
	}
	ph := Phases{Sigma: sigma, A1: a1, A2: a2, T1: t1, Tv: tv, T2: t2}
	return ph.Duration(), ph, nil
}

// FixedTimeTrajectory solves for the acceleration magnitude that makes the
// three-phase motion from (p1, v1) to (p2, v2) last exactly T. T must be at
// least the minimum time for the boundary states.
func (k *Kinodynamic) FixedTimeTrajectory(T, p1, p2, v1, v2 float64) (Phases, error) {
	v12 := v1 + v2
	v21 := v2 - v1
	dp := p2 - p1

	// T^2 a^2 + (2 T v12 - 4 dp) a - v21^2 = 0, keeping the root of larger
	// magnitude.
	delta, err := checkDiscriminant(4*T*T*(v12*v12+v21*v21) - 16*T*v12*dp + 16*dp*dp)
	if err != nil {
		return Phases{}, err
	}
	b := 2*T*v12 - 4*dp
	x1 := (-b - math.Sqrt(delta)) / (2 * T * T)
	x2 := (-b + math.Sqrt(delta)) / (2 * T * T)
	a1 := x2
	if math.Abs(x1) > math.Abs(x2) {
		a1 = x1
	}
	if a1 == 0 {
		// v1 == v2 and v1 covers the displacement in exactly T; hold the
		// cruise velocity for T
		return Phases{Sigma: 1, Tv: T}, nil
	}
	a2 := -a1
	sigma := sgn(a1)
	vLim := float64(sigma) * k.vMax

	t1 := 0.5 * (v21/a1 + T)
	if math.Abs(v1+t1*a1) <= k.vMax+discriminantEpsilon {
		return Phases{Sigma: sigma, A1: a1, A2: a2, T1: t1, Tv: 0, T2: T - t1}, nil
	}
	// the peak would exceed the velocity bound; saturate and rebuild
	a1 = ((vLim-v1)*(vLim-v1) + (vLim-v2)*(vLim-v2)) / (2 * (vLim*T - dp))
	a2 = -a1
	t1 = (vLim - v1) / a1
	tv := (v1*v1+v2*v2-2*vLim*vLim)/(2*vLim*a1) + dp/vLim
	t2 := (v2 - vLim) / a2
	return Phases{Sigma: sigma, A1: a1, A2: a2, T1: t1, Tv: tv, T2: t2}, nil
}

// Steer computes the synchronised multi-axis minimum-time trajectory from q1
// to q2: each axis is solved for its minimum duration, then every axis is
// re-solved to last exactly the longest of them.
func (k *Kinodynamic) Steer(q1, q2 configspace.Configuration) (configspace.DirectPath, error) {
	if q1.Size() != k.robot.ConfigSize() || q2.Size() != k.robot.ConfigSize() {
		return nil, errors.Errorf("configuration sizes %d, %d do not match robot size %d",
			q1.Size(), q2.Size(), k.robot.ConfigSize())
	}
	tMax := 0.
	for i := 0; i < k.axes; i++ {
		t, _, err := k.ComputeMinTime(q1[i], q2[i], q1[k.axes+i], q2[k.axes+i])
		if err != nil {
			return nil, err
		}
		tMax = math.Max(tMax, t)
	}
	phases := make([]Phases, k.axes)
	if tMax > 0 {
		for i := 0; i < k.axes; i++ {
			ph, err := k.FixedTimeTrajectory(tMax, q1[i], q2[i], q1[k.axes+i], q2[k.axes+i])
			if err != nil {
				return nil, err
			}
			phases[i] = ph
		}
	}
	return newKinodynamicPath(q1, q2, phases, tMax, k.axes), nil
}

var _ configspace.SteeringMethod = &Kinodynamic{}
