package pass

import "github.com/sarchlab/gatery-go/hlim"

// DeadCodeElimination removes every node not reachable, by backward
// traversal of input bindings, from an "anchor": a node whose presence
// is observable regardless of whether anything reads its output — an
// output/tristate pin, a memory write or read/write port, an assertion,
// a signal tap, an external black box, or a hierarchy boundary marker.
// This is the anchor-reachability sweep.
type DeadCodeElimination struct{}

func (DeadCodeElimination) Name() string { return "dead-code-elimination" }

func (DeadCodeElimination) Run(c *hlim.Circuit) (Result, error) {
	all := c.AllNodeIDs()
	visited := make(map[hlim.NodeID]bool, len(all))

	for _, id := range all {
		if isAnchor(c.Node(id)) {
			markReachable(c, id, visited)
		}
	}

	removed := 0
	for _, id := range all {
		if !visited[id] {
			c.RemoveNode(id)
			removed++
		}
	}

	return Result{Changed: removed > 0, Detail: countDetail("dead nodes removed", removed)}, nil
}

func isAnchor(n hlim.Node) bool {
	switch t := n.(type) {
	case *hlim.PinNode:
		return t.Direction != hlim.PinIn
	case *hlim.WritePortNode, *hlim.RMWPortNode, *hlim.AssertionNode,
		*hlim.SignalTapNode, *hlim.ExternalNode, *hlim.HierarchyBoundaryNode:
		return true
	default:
		return false
	}
}

func markReachable(c *hlim.Circuit, id hlim.NodeID, visited map[hlim.NodeID]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	n := c.Node(id)
	for _, in := range n.InputPorts() {
		if in.Src.Valid() {
			markReachable(c, in.Src.Node, visited)
		}
	}
	switch t := n.(type) {
	case *hlim.ReadPortNode:
		markReachable(c, t.Memory.ID(), visited)
	case *hlim.WritePortNode:
		markReachable(c, t.Memory.ID(), visited)
	case *hlim.RMWPortNode:
		markReachable(c, t.Memory.ID(), visited)
	}
}
