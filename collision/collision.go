// Package collision provides the collision-checking collaborator consumed by
// the planning driver: workspace obstacles and a validator that walks a
// direct path at the penetration step and stamps its validity.
package collision

import (
	"github.com/golang/geo/r3"
)

// Object is a static workspace obstacle.
type Object interface {
	Name() string
	Contains(p r3.Vector) bool
}

// Box is an axis-aligned box obstacle.
type Box struct {
	name     string
	min, max r3.Vector
}

// NewBox builds an axis-aligned box between the two corner points.
func NewBox(name string, min, max r3.Vector) *Box {
	return &Box{name: name, min: min, max: max}
}

// Name returns the obstacle name.
func (b *Box) Name() string {
	return b.name
}

// Contains reports whether p lies inside the box, boundary included.
func (b *Box) Contains(p r3.Vector) bool {
	return p.X >= b.min.X && p.X <= b.max.X &&
		p.Y >= b.min.Y && p.Y <= b.max.Y &&
		p.Z >= b.min.Z && p.Z <= b.max.Z
}
