package roadmap

import (
	"github.com/Hankfirst/hpp-core/configspace"
)

// Edge is a directed graph edge carrying the motion segment that joins its
// two nodes. An undirected connection is represented as two edges, the
// second carrying the time-reverse of the first's segment. Edges are owned
// by the Roadmap; the segment is immutable once inside an edge.
type Edge struct {
	from, to *Node
	path     configspace.DirectPath
}

func newEdge(from, to *Node, path configspace.DirectPath) *Edge {
	e := &Edge{from: from, to: to, path: path}
	from.addOutEdge(e)
	to.addInEdge(e)
	return e
}

// From returns the source node.
func (e *Edge) From() *Node {
	return e.from
}

// To returns the destination node.
func (e *Edge) To() *Node {
	return e.to
}

// Path returns the motion segment carried by the edge.
func (e *Edge) Path() configspace.DirectPath {
	return e.path
}
