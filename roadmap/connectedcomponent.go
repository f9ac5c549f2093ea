package roadmap

// ConnectedComponent is a set of nodes together with the one-way
// reachability relations to other components induced by directed edges.
// Components always contain themselves in both reachability sets, so
// CanReach is reflexive and the symmetry invariant
// "c1 in c2.ReachableFrom iff c2 in c1.ReachableTo" holds trivially for
// self.
type ConnectedComponent struct {
	nodes         []*Node
	reachableTo   map[*ConnectedComponent]struct{}
	reachableFrom map[*ConnectedComponent]struct{}
}

func newConnectedComponent() *ConnectedComponent {
	cc := &ConnectedComponent{
		reachableTo:   make(map[*ConnectedComponent]struct{}),
		reachableFrom: make(map[*ConnectedComponent]struct{}),
	}
	cc.reachableTo[cc] = struct{}{}
	cc.reachableFrom[cc] = struct{}{}
	return cc
}

// Nodes returns the nodes of the component in insertion order.
func (cc *ConnectedComponent) Nodes() []*Node {
	out := make([]*Node, len(cc.nodes))
	copy(out, cc.nodes)
	return out
}

// ReachableTo returns the components reachable from this one through
// recorded reachability links, this component included.
func (cc *ConnectedComponent) ReachableTo() []*ConnectedComponent {
	out := make([]*ConnectedComponent, 0, len(cc.reachableTo))
	for other := range cc.reachableTo {
		out = append(out, other)
	}
	return out
}

// ReachableFrom returns the components this one is reachable from through
// recorded reachability links, this component included.
func (cc *ConnectedComponent) ReachableFrom() []*ConnectedComponent {
	out := make([]*ConnectedComponent, 0, len(cc.reachableFrom))
	for other := range cc.reachableFrom {
		out = append(out, other)
	}
	return out
}

func (cc *ConnectedComponent) addNode(n *Node) {
	n.component = cc
	cc.nodes = append(cc.nodes, n)
}

// CanReach reports whether target is transitively reachable from this
// component.
func (cc *ConnectedComponent) CanReach(target *ConnectedComponent) bool {
	visited := make(map[*ConnectedComponent]struct{})
	return cc.reach(target, visited)
}

func (cc *ConnectedComponent) reach(target *ConnectedComponent, visited map[*ConnectedComponent]struct{}) bool {
	if _, ok := cc.reachableTo[target]; ok {
		return true
	}
	visited[cc] = struct{}{}
	for next := range cc.reachableTo {
		if _, seen := visited[next]; seen {
			continue
		}
		if next.reach(target, visited) {
			return true
		}
	}
	return false
}

// CanReachChain reports whether target is transitively reachable from this
// component and, when it is, returns every component lying on some
// reachability path from this component to target (both endpoints
// included). The roadmap merges that chain when closing a cycle.
func (cc *ConnectedComponent) CanReachChain(target *ConnectedComponent) ([]*ConnectedComponent, bool) {
	forward := make(map[*ConnectedComponent]struct{})
	collect(cc, forward, func(c *ConnectedComponent) map[*ConnectedComponent]struct{} { return c.reachableTo })
	if _, ok := forward[target]; !ok {
		return nil, false
	}
	// walk back from target over reachableFrom, staying inside the forward
	// set; everything visited lies on a path from cc to target
	onPath := make(map[*ConnectedComponent]struct{})
	var back func(c *ConnectedComponent)
	chain := []*ConnectedComponent{}
	back = func(c *ConnectedComponent) {
		if _, seen := onPath[c]; seen {
			return
		}
		if _, ok := forward[c]; !ok {
			return
		}
		onPath[c] = struct{}{}
		chain = append(chain, c)
		for prev := range c.reachableFrom {
			back(prev)
		}
	}
	back(target)
	return chain, true
}

func collect(
	cc *ConnectedComponent,
	into map[*ConnectedComponent]struct{},
	next func(*ConnectedComponent) map[*ConnectedComponent]struct{},
) {
	if _, seen := into[cc]; seen {
		return
	}
	into[cc] = struct{}{}
	for other := range next(cc) {
		collect(other, into, next)
	}
}

// merge absorbs other into cc: nodes move over, reachability links of other
// are rewritten to reference cc, and other is left empty for removal.
func (cc *ConnectedComponent) merge(other *ConnectedComponent) {
	if other == cc {
		return
	}
	for _, n := range other.nodes {
		cc.addNode(n)
	}
	other.nodes = nil

	for to := range other.reachableTo {
		if to == other || to == cc {
			continue
		}
		delete(to.reachableFrom, other)
		to.reachableFrom[cc] = struct{}{}
		cc.reachableTo[to] = struct{}{}
	}
	for from := range other.reachableFrom {
		if from == other || from == cc {
			continue
		}
		delete(from.reachableTo, other)
		from.reachableTo[cc] = struct{}{}
		cc.reachableFrom[from] = struct{}{}
	}
	delete(cc.reachableTo, other)
	delete(cc.reachableFrom, other)
	other.reachableTo = make(map[*ConnectedComponent]struct{})
	other.reachableFrom = make(map[*ConnectedComponent]struct{})
}
