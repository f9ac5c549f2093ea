// Package roadmap implements the directed multigraph of configurations used
// by sampling-based planners: nodes, edges, connected components with
// one-way reachability bookkeeping, and a k-d tree answering
// nearest-neighbour queries filtered by component.
package roadmap

import (
	"github.com/Hankfirst/hpp-core/configspace"
)

// Node is a graph vertex holding one configuration. A node belongs to
// exactly one connected component at any time and keeps back-references to
// its incoming and outgoing edges. Nodes are created by the Roadmap and live
// until Clear.
type Node struct {
	configuration configspace.Configuration
	component     *ConnectedComponent
	outEdges      []*Edge
	inEdges       []*Edge
}

func newNode(q configspace.Configuration, cc *ConnectedComponent) *Node {
	n := &Node{configuration: q}
	cc.addNode(n)
	return n
}

// Configuration returns the configuration of the node.
func (n *Node) Configuration() configspace.Configuration {
	return n.configuration
}

// ConnectedComponent returns the component the node currently belongs to.
func (n *Node) ConnectedComponent() *ConnectedComponent {
	return n.component
}

// OutEdges returns the edges leaving the node.
func (n *Node) OutEdges() []*Edge {
	out := make([]*Edge, len(n.outEdges))
	copy(out, n.outEdges)
	return out
}

// InEdges returns the edges arriving at the node.
func (n *Node) InEdges() []*Edge {
	out := make([]*Edge, len(n.inEdges))
	copy(out, n.inEdges)
	return out
}

func (n *Node) addOutEdge(e *Edge) {
	n.outEdges = append(n.outEdges, e)
}

func (n *Node) addInEdge(e *Edge) {
	n.inEdges = append(n.inEdges, e)
}
