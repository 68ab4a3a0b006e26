package hlim

import "fmt"

// Combinational reports whether a node variant is a combinational
// barrier-free node (as opposed to sequential/memory nodes, which
// topological traversal treats as barriers).
type Combinational interface {
	Combinational() bool
}

// IsCombinational reports whether n should be treated as combinational
// for topological ordering; nodes that don't implement Combinational are
// conservatively treated as barriers (sequential-like).
func IsCombinational(n Node) bool {
	if c, ok := n.(Combinational); ok {
		return c.Combinational()
	}
	return false
}

// TopoSort computes a topological order of the combinational subgraph
// induced by ids, using Kahn's algorithm. Sequential and memory nodes
// are barriers: their inputs do not create an ordering edge against
// their producers, since their outputs only change on a clock edge.
// Returns ErrCombinationalCycle with the witness path if the
// combinational subgraph is not acyclic.
func (c *Circuit) TopoSort(ids []NodeID) ([]NodeID, error) {
	member := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}

	indegree := make(map[NodeID]int, len(ids))
	dependents := make(map[NodeID][]NodeID, len(ids))

	for _, id := range ids {
		n := c.Node(id)
		if !IsCombinational(n) {
			continue
		}
		for _, in := range n.InputPorts() {
			src := in.Src.Node
			if !in.Src.Valid() || !member[src] {
				continue
			}
			srcNode := c.Node(src)
			if !IsCombinational(srcNode) {
				continue // barrier: no ordering edge across a register/memory
			}
			indegree[id]++
			dependents[src] = append(dependents[src], id)
		}
	}

	var queue []NodeID
	for _, id := range ids {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var order []NodeID
	visited := make(map[NodeID]bool)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)
		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(member) {
		witness := c.findCycleWitness(ids, member)
		return nil, newDesignError(ErrCombinationalCycle, witness[0], DebugInfo{},
			"combinational cycle detected: %v", witness)
	}

	return order, nil
}

// findCycleWitness returns a node-id path demonstrating a cycle among
// the combinational nodes in ids, for error reporting.
func (c *Circuit) findCycleWitness(ids []NodeID, member map[NodeID]bool) []NodeID {
	color := make(map[NodeID]int) // 0 white, 1 gray, 2 black
	var path []NodeID

	var visit func(id NodeID) []NodeID
	visit = func(id NodeID) []NodeID {
		color[id] = 1
		path = append(path, id)

		n := c.Node(id)
		if IsCombinational(n) {
			for _, in := range n.InputPorts() {
				src := in.Src.Node
				if !in.Src.Valid() || !member[src] {
					continue
				}
				srcNode := c.Node(src)
				if !IsCombinational(srcNode) {
					continue
				}
				switch color[src] {
				case 0:
					if cyc := visit(src); cyc != nil {
						return cyc
					}
				case 1:
					// found the back-edge; trim path to the cycle itself
					for i, p := range path {
						if p == src {
							return append(append([]NodeID{}, path[i:]...), src)
						}
					}
				}
			}
		}

		path = path[:len(path)-1]
		color[id] = 2
		return nil
	}

	for _, id := range ids {
		if color[id] == 0 {
			if cyc := visit(id); cyc != nil {
				return cyc
			}
		}
	}
	return []NodeID{ids[0]}
}

func (e ErrorKind) String() string {
	switch e {
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrAlreadyConnected:
		return "AlreadyConnected"
	case ErrUnownedPort:
		return "UnownedPort"
	case ErrCombinationalCycle:
		return "CombinationalCycle"
	case ErrClockDomainViolation:
		return "ClockDomainViolation"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(e))
	}
}
