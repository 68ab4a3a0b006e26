package hlim

// Connect binds input port dstIn of dst to output port src. It fails
// with ErrTypeMismatch if widths or kinds differ, and with
// ErrAlreadyConnected if dst is already bound — callers that want to
// rebind unconditionally should use ConnectReplace.
func (c *Circuit) Connect(src PortRef, dst PortRef, dstIn int) error {
	dstNode := c.Node(dst.Node)
	in := dstNode.InputPorts()
	if dstIn < 0 || dstIn >= len(in) {
		return newDesignError(ErrUnownedPort, dst.Node, debugOf(dstNode), "input index %d out of range", dstIn)
	}
	if in[dstIn].Src.Valid() {
		return newDesignError(ErrAlreadyConnected, dst.Node, debugOf(dstNode), "input %q already connected", in[dstIn].Name)
	}
	return c.connect(src, dst, dstIn)
}

// ConnectReplace behaves like Connect but atomically replaces any prior
// binding instead of failing.
func (c *Circuit) ConnectReplace(src PortRef, dst PortRef, dstIn int) error {
	return c.connect(src, dst, dstIn)
}

func (c *Circuit) connect(src, dst PortRef, dstIn int) error {
	srcNode := c.Node(src.Node)
	dstNode := c.Node(dst.Node)

	outs := srcNode.OutputPorts()
	if src.Index < 0 || src.Index >= len(outs) {
		return newDesignError(ErrUnownedPort, src.Node, debugOf(srcNode), "output index %d out of range", src.Index)
	}
	in := dstNode.InputPorts()
	srcType := outs[src.Index].Type
	dstType := in[dstIn].Type
	if srcType != dstType {
		return newDesignError(ErrTypeMismatch, dst.Node, debugOf(dstNode),
			"cannot connect %s output to %s input", srcType, dstType)
	}

	dstNode.setInput(dstIn, src)
	return nil
}

// Disconnect clears input port dstIn of dst. It is infallible.
func (c *Circuit) Disconnect(dst PortRef, dstIn int) {
	c.Node(dst.Node).setInput(dstIn, PortRef{})
}

// Consumers returns every (node, input-index) pair currently bound to
// output src.Index of node src.Node. This is O(total inputs in the
// circuit); passes that need this repeatedly should build and cache a
// fan-out index instead of calling it in a loop.
func (c *Circuit) Consumers(src PortRef) []PortRef {
	var out []PortRef
	for _, id := range c.AllNodeIDs() {
		n := c.Node(id)
		for i, in := range n.InputPorts() {
			if in.Src == src {
				out = append(out, PortRef{Node: id, Index: i})
			}
		}
	}
	return out
}

// BypassOutputToInput rewrites every consumer of output outIdx of node to
// instead consume whatever currently drives input inIdx of node, then
// removes node from those consumer sets — used to erase a signal/alias
// node without changing semantics.
func (c *Circuit) BypassOutputToInput(node NodeID, outIdx, inIdx int) {
	n := c.Node(node)
	upstream := n.InputPorts()[inIdx].Src
	for _, consumer := range c.Consumers(PortRef{Node: node, Index: outIdx}) {
		c.ConnectReplace(upstream, consumer, consumer.Index)
	}
}

// CloneUnconnected produces a structurally identical node with no
// incoming connections, registered in the same group as the original.
func (c *Circuit) CloneUnconnected(id NodeID) NodeID {
	orig := c.Node(id)
	clone := orig.CloneUnconnected()
	return c.CreateNode(clone, orig.group())
}

func debugOf(n Node) DebugInfo {
	if b, ok := n.(interface{ debugInfo() DebugInfo }); ok {
		return b.debugInfo()
	}
	return DebugInfo{}
}
