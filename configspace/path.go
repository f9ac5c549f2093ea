package configspace

// DirectPath is a single motion segment between two configurations, produced
// by a steering method without routing through the roadmap graph. A direct
// path is parameterised by time in [0, Length]. Validity is stamped by a
// collision validator; a freshly built direct path is valid until
// invalidated.
type DirectPath interface {
	Start() Configuration
	End() Configuration
	// Length is the duration of the segment in the path's own parameter.
	Length() float64
	// Interpolate returns the configuration at parameter t, clamped to
	// [0, Length].
	Interpolate(t float64) Configuration
	// Reverse returns the time-reverse of the segment.
	Reverse() DirectPath
	IsValid() bool
	SetValid(valid bool)
}

// Path is an ordered sequence of direct paths. The end of each segment is
// the start of the next.
type Path struct {
	segments []DirectPath
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// AppendDirectPath appends a segment to the path.
func (p *Path) AppendDirectPath(dp DirectPath) {
	p.segments = append(p.segments, dp)
}

// CountDirectPaths returns the number of segments.
func (p *Path) CountDirectPaths() int {
	return len(p.segments)
}

// DirectPathAt returns the ith segment, or nil if i is out of range.
func (p *Path) DirectPathAt(i int) DirectPath {
	if i < 0 || i >= len(p.segments) {
		return nil
	}
	return p.segments[i]
}

// Start returns the first configuration of the path, or nil if empty.
func (p *Path) Start() Configuration {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[0].Start()
}

// End returns the last configuration of the path, or nil if empty.
func (p *Path) End() Configuration {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[len(p.segments)-1].End()
}

// Length returns the total duration of the path.
func (p *Path) Length() float64 {
	total := 0.
	for _, dp := range p.segments {
		total += dp.Length()
	}
	return total
}

// Clone returns a path sharing the same segments. Segments are immutable
// once inside an edge, so sharing is safe; the segment list itself is
// copied.
func (p *Path) Clone() *Path {
	segments := make([]DirectPath, len(p.segments))
	copy(segments, p.segments)
	return &Path{segments: segments}
}

// Reverse returns a new path traversing the segments in reverse order, each
// segment time-reversed.
func (p *Path) Reverse() *Path {
	segments := make([]DirectPath, 0, len(p.segments))
	for i := len(p.segments) - 1; i >= 0; i-- {
		segments = append(segments, p.segments[i].Reverse())
	}
	return &Path{segments: segments}
}
