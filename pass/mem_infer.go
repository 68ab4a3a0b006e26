package pass

import "github.com/sarchlab/gatery-go/hlim"

// MemoryPortInference fuses a registered ReadPortNode and a WritePortNode
// that share a Memory, a Clock, and an address source into a single
// read-modify-write port: the hardware-synthesizable shape for a block
// RAM with one physical address bus serving both directions. Ports
// that don't share an address source stay as separate physical ports,
// since fusing them would change behavior.
type MemoryPortInference struct{}

func (MemoryPortInference) Name() string { return "memory-port-inference" }

func (MemoryPortInference) Run(c *hlim.Circuit) (Result, error) {
	fused := 0

	for _, id := range c.AllNodeIDs() {
		rp, ok := c.Node(id).(*hlim.ReadPortNode)
		if !ok || !rp.Registered {
			continue
		}
		wpID, wp := findMatchingWritePort(c, rp)
		if wp == nil {
			continue
		}

		policy := derivedCollisionPolicy(c, id, wp)
		rmw := hlim.NewRMWPortNode(rp.Memory, wp.InputPorts()[0].Type.Width, rp.Clock, policy)
		newID := c.CreateNode(rmw, c.GroupOf(id))

		must(c.ConnectReplace(wp.InputPorts()[0].Src, hlim.PortRef{Node: newID}, 0)) // address
		must(c.ConnectReplace(wp.InputPorts()[1].Src, hlim.PortRef{Node: newID}, 1)) // data
		must(c.ConnectReplace(wp.InputPorts()[2].Src, hlim.PortRef{Node: newID}, 2)) // writeEnable

		rewireConsumers(c, id, 0, newID)
		c.RemoveNode(id)
		c.RemoveNode(wpID)
		fused++
	}

	return Result{Changed: fused > 0, Detail: countDetail("read/write ports fused", fused)}, nil
}

// derivedCollisionPolicy picks which side of a same-cycle collision wins
// by which side sits closer to a register: a write whose data is driven
// straight out of a register is "fresher" than a read still several
// gates away from one, so the write should be visible to that read in
// the same cycle (WriteBeforeRead), and symmetrically for the reverse.
// Equal distance — including neither side having a nearby register at
// all — keeps the don't-care default.
func derivedCollisionPolicy(c *hlim.Circuit, rpID hlim.NodeID, wp *hlim.WritePortNode) hlim.CollisionPolicy {
	writeDist := upstreamRegisterDepth(c, wp.InputPorts()[1].Src)
	readDist := downstreamRegisterDepth(c, hlim.PortRef{Node: rpID, Index: 0})
	switch {
	case writeDist < readDist:
		return hlim.WriteBeforeRead
	case readDist < writeDist:
		return hlim.ReadBeforeWrite
	default:
		return hlim.DontCareCollision
	}
}

func findMatchingWritePort(c *hlim.Circuit, rp *hlim.ReadPortNode) (hlim.NodeID, *hlim.WritePortNode) {
	addr := rp.InputPorts()[0].Src
	for _, id := range c.AllNodeIDs() {
		wp, ok := c.Node(id).(*hlim.WritePortNode)
		if !ok {
			continue
		}
		if wp.Memory != rp.Memory || wp.Clock != rp.Clock {
			continue
		}
		if wp.InputPorts()[0].Src != addr {
			continue
		}
		return id, wp
	}
	return 0, nil
}
