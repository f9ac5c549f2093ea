package roadmap

import (
	"fmt"
	"sort"
	"strings"
)

const dumpRule = "----------------------------------------------------------------------"

// String renders a human-readable dump of the roadmap: the enumerated node
// list, the edge list as "from -> to" id pairs, and one section per
// connected component listing its members and its reachable-to /
// reachable-from sets.
func (r *Roadmap) String() string {
	nodeID := make(map[*Node]int, len(r.nodes))
	for i, n := range r.nodes {
		nodeID[n] = i
	}
	ccID := make(map[*ConnectedComponent]int, len(r.components))
	for i, cc := range r.components {
		ccID[cc] = i
	}

	var sb strings.Builder
	fmt.Fprintln(&sb, dumpRule)
	fmt.Fprintln(&sb, "Roadmap")
	fmt.Fprintln(&sb, dumpRule)
	fmt.Fprintln(&sb, "Nodes")
	fmt.Fprintln(&sb, dumpRule)
	for i, n := range r.nodes {
		fmt.Fprintf(&sb, "Node %d: %s\n", i, n.Configuration())
	}
	fmt.Fprintln(&sb, dumpRule)
	fmt.Fprintln(&sb, "Edges")
	fmt.Fprintln(&sb, dumpRule)
	for _, e := range r.edges {
		fmt.Fprintf(&sb, "Edge: %d -> %d\n", nodeID[e.From()], nodeID[e.To()])
	}
	fmt.Fprintln(&sb, dumpRule)
	fmt.Fprintln(&sb, "Connected components")
	fmt.Fprintln(&sb, dumpRule)
	for i, cc := range r.components {
		fmt.Fprintf(&sb, "Connected component %d\n", i)
		fmt.Fprint(&sb, "Nodes : ")
		for _, n := range cc.nodes {
			fmt.Fprintf(&sb, "%d, ", nodeID[n])
		}
		fmt.Fprintln(&sb)
		fmt.Fprintf(&sb, "Reachable to :%s\n", componentIDs(cc.ReachableTo(), ccID))
		fmt.Fprintf(&sb, "Reachable from :%s\n", componentIDs(cc.ReachableFrom(), ccID))
	}
	return sb.String()
}

func componentIDs(ccs []*ConnectedComponent, ccID map[*ConnectedComponent]int) string {
	ids := make([]int, 0, len(ccs))
	for _, cc := range ccs {
		ids = append(ids, ccID[cc])
	}
	sort.Ints(ids)
	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "%d, ", id)
	}
	return sb.String()
}
