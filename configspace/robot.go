package configspace

import (
	"github.com/pkg/errors"
)

// SteeringMethod creates direct paths between pairs of configurations. It is
// usually where nonholonomic or dynamic constraints of a robot live. Steer
// must not return a nil path without an error when q1 equals q2.
type SteeringMethod interface {
	Steer(q1, q2 Configuration) (DirectPath, error)
}

// ExtraConfigSpace describes the degrees of freedom appended to a robot's
// joint positions, such as per-axis velocities.
type ExtraConfigSpace struct {
	dimension int
}

// NewExtraConfigSpace returns an extra configuration space of the given
// dimension.
func NewExtraConfigSpace(dimension int) ExtraConfigSpace {
	return ExtraConfigSpace{dimension: dimension}
}

// Dimension returns the number of extra degrees of freedom.
func (e ExtraConfigSpace) Dimension() int {
	return e.dimension
}

// Body is a named rigid body of a robot.
type Body interface {
	Name() string
}

// Robot is the kinematic model collaborator consumed by the core. The
// planner reads and writes its current configuration and enumerates its
// bodies; it never looks inside.
type Robot interface {
	Name() string
	// ConfigSize is the total length of this robot's configurations,
	// including the extra configuration space.
	ConfigSize() int
	ExtraConfigSpace() ExtraConfigSpace
	CurrentConfig() Configuration
	SetCurrentConfig(q Configuration) error
	// ApplyCurrentConfig sets the current configuration and propagates it to
	// the robot's internal model.
	ApplyCurrentConfig(q Configuration) error
	SteeringMethod() SteeringMethod
	SetSteeringMethod(sm SteeringMethod)
	Bodies() []Body
}

type namedBody struct {
	name string
}

func (b *namedBody) Name() string {
	return b.name
}

// Device is a basic concrete Robot with a name, a fixed configuration size
// and named bodies. It carries no kinematic model beyond its configuration.
type Device struct {
	name       string
	configSize int
	extra      ExtraConfigSpace
	current    Configuration
	sm         SteeringMethod
	bodies     []Body
}

// NewDevice builds a device with the given total configuration size and
// extra-space dimension. The current configuration starts at zero.
func NewDevice(name string, configSize, extraDim int, bodyNames ...string) *Device {
	bodies := make([]Body, 0, len(bodyNames))
	for _, n := range bodyNames {
		bodies = append(bodies, &namedBody{name: n})
	}
	return &Device{
		name:       name,
		configSize: configSize,
		extra:      NewExtraConfigSpace(extraDim),
		current:    make(Configuration, configSize),
		bodies:     bodies,
	}
}

func (d *Device) Name() string {
	return d.name
}

func (d *Device) ConfigSize() int {
	return d.configSize
}

func (d *Device) ExtraConfigSpace() ExtraConfigSpace {
	return d.extra
}

func (d *Device) CurrentConfig() Configuration {
	return d.current.Clone()
}

func (d *Device) SetCurrentConfig(q Configuration) error {
	if q.Size() != d.configSize {
		return errors.Errorf("configuration size %d does not match device %q size %d", q.Size(), d.name, d.configSize)
	}
	d.current = q.Clone()
	return nil
}

// ApplyCurrentConfig behaves as SetCurrentConfig for a Device; richer robot
// models additionally update their internal state.
func (d *Device) ApplyCurrentConfig(q Configuration) error {
	return d.SetCurrentConfig(q)
}

func (d *Device) SteeringMethod() SteeringMethod {
	return d.sm
}

func (d *Device) SetSteeringMethod(sm SteeringMethod) {
	d.sm = sm
}

func (d *Device) Bodies() []Body {
	out := make([]Body, len(d.bodies))
	copy(out, d.bodies)
	return out
}
