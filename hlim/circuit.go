package hlim

import "github.com/rs/xid"

// Circuit is the top-level owner of the IR: it exclusively owns all
// nodes, all clocks, all node-groups, and the string-interned namespace.
// A Circuit is created once per design and destroyed as a unit; there
// are no cross-circuit references.
type Circuit struct {
	// nodes is the flat arena: stable identity is the slice index plus
	// one (zero is reserved as "no node").
	nodes []Node
	// publicID maps the arena index to a stable, sortable external
	// identity for reporting and export.
	publicID []xid.ID

	clocks []*Clock
	root   *NodeGroup

	names map[string]int // interned name -> use count, for uniquing
}

// NewCircuit creates an empty circuit with a root node-group.
func NewCircuit(name string) *Circuit {
	c := &Circuit{
		nodes:    []Node{nil}, // index 0 unused, so NodeID 0 means "invalid"
		publicID: []xid.ID{{}},
		names:    make(map[string]int),
	}
	c.root = &NodeGroup{Kind: GroupEntity, name: name, Meta: map[string]any{}}
	return c
}

// Root returns the circuit's root node-group.
func (c *Circuit) Root() *NodeGroup { return c.root }

// CreateClock creates and registers a clock owned by this circuit.
func (c *Circuit) CreateClock(clk *Clock) *Clock {
	c.clocks = append(c.clocks, clk)
	return clk
}

// Clocks returns every clock owned by the circuit, in creation order.
func (c *Circuit) Clocks() []*Clock { return c.clocks }

// CreateNode inserts a node of any variant into the circuit, assigning
// it a stable identity and attaching it to group. This is the only way a
// node variant constructor (in frontend or pass) should register a node.
func (c *Circuit) CreateNode(n Node, group *NodeGroup) NodeID {
	if group == nil {
		group = c.root
	}
	id := NodeID(len(c.nodes))
	c.nodes = append(c.nodes, n)
	c.publicID = append(c.publicID, xid.New())
	n.setID(id)
	n.setGroup(group)
	group.addNode(id)
	return id
}

// Node returns the node with the given identity. It panics on an
// invalid/foreign ID: a caller holding a NodeID for the wrong circuit
// is always a programmer error.
func (c *Circuit) Node(id NodeID) Node {
	if int(id) <= 0 || int(id) >= len(c.nodes) || c.nodes[id] == nil {
		panic("hlim: unknown or removed node id")
	}
	return c.nodes[id]
}

// PublicID returns the stable, sortable external identity used by the
// exporter and by reporting for a node.
func (c *Circuit) PublicID(id NodeID) xid.ID { return c.publicID[id] }

// GroupOf returns the node-group a node is currently owned by, so passes
// that replace a node with a rewritten equivalent can preserve its place
// in the hierarchy.
func (c *Circuit) GroupOf(id NodeID) *NodeGroup { return c.Node(id).group() }

// SetName attaches a human-readable debug name to a node, used by
// reporting and export to resolve the same name for the same node
// across calls.
func (c *Circuit) SetName(id NodeID, name string) {
	n := c.Node(id)
	if d, ok := n.(interface {
		debugInfo() DebugInfo
		SetDebug(DebugInfo)
	}); ok {
		info := d.debugInfo()
		info.Name = name
		d.SetDebug(info)
	}
}

// RemoveNode deletes a node from the arena (used only by DCE, after all
// consumers have been rewired away from it). It is the caller's
// responsibility to ensure no remaining input still references id.
func (c *Circuit) RemoveNode(id NodeID) {
	n := c.nodes[id]
	if n == nil {
		return
	}
	if g := n.group(); g != nil {
		g.removeNode(id)
	}
	c.nodes[id] = nil
}

// AllNodeIDs returns every live node ID, in arena (creation) order. This
// is the deterministic order passes and reporting iterate in.
func (c *Circuit) AllNodeIDs() []NodeID {
	out := make([]NodeID, 0, len(c.nodes))
	for i := 1; i < len(c.nodes); i++ {
		if c.nodes[i] != nil {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// NodesIn returns the node IDs directly or recursively owned by group,
// in creation order.
func (c *Circuit) NodesIn(group *NodeGroup, recursive bool) []NodeID {
	var out []NodeID
	out = append(out, group.nodes...)
	if recursive {
		for _, child := range group.children {
			out = append(out, c.NodesIn(child, true)...)
		}
	}
	return out
}

// UniqueName interns a proposed name within the circuit's namespace:
// the first call with a given base name returns it unchanged, and every
// later call with the same base name returns a fresh name with a numeric
// suffix appended, so no two calls ever return the same name.
func (c *Circuit) UniqueName(proposed string) string {
	n := c.names[proposed]
	c.names[proposed] = n + 1
	if n == 0 {
		return proposed
	}
	for {
		candidate := proposed + "_" + itoa(n)
		if _, exists := c.names[candidate]; !exists {
			c.names[candidate] = 1
			return candidate
		}
		n++
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
