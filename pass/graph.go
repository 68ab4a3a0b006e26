package pass

import "github.com/sarchlab/gatery-go/hlim"

// noRegister marks "no register found" for the depth helpers below; it's
// larger than any real circuit's node count could produce as a hop count.
const noRegister = 1 << 30

// upstreamRegisterDepth returns the number of combinational hops between
// ref and the nearest RegisterNode feeding it, or noRegister if the path
// dead-ends at something else (a pin, a constant, a memory port) first.
func upstreamRegisterDepth(c *hlim.Circuit, ref hlim.PortRef) int {
	if !ref.Valid() {
		return noRegister
	}
	n := c.Node(ref.Node)
	if _, ok := n.(*hlim.RegisterNode); ok {
		return 0
	}
	if !hlim.IsCombinational(n) {
		return noRegister
	}
	best := noRegister
	for _, in := range n.InputPorts() {
		if d := upstreamRegisterDepth(c, in.Src); d < best {
			best = d
		}
	}
	if best == noRegister {
		return noRegister
	}
	return best + 1
}

// downstreamRegisterDepth returns the number of combinational hops
// between ref (an output) and the nearest RegisterNode it feeds, or
// noRegister if every consuming branch dead-ends first.
func downstreamRegisterDepth(c *hlim.Circuit, ref hlim.PortRef) int {
	best := noRegister
	for _, cons := range c.Consumers(ref) {
		n := c.Node(cons.Node)
		if _, ok := n.(*hlim.RegisterNode); ok {
			best = 0
			continue
		}
		if !hlim.IsCombinational(n) || len(n.OutputPorts()) != 1 {
			continue
		}
		if d := downstreamRegisterDepth(c, hlim.PortRef{Node: cons.Node, Index: 0}); d < noRegister && d+1 < best {
			best = d + 1
		}
	}
	return best
}

func bitVectorsEqual(a, b hlim.BitVector) bool {
	if a.Width != b.Width {
		return false
	}
	for i := range a.Value {
		if a.Value[i] != b.Value[i] || a.Defined[i] != b.Defined[i] {
			return false
		}
	}
	return true
}

func outputType(c *hlim.Circuit, ref hlim.PortRef) hlim.ConnectionType {
	return c.Node(ref.Node).OutputPorts()[ref.Index].Type
}

// compatibleResets checks that every reset-capable register among regs
// shares one reset source and an equal (or undefined) reset value, and
// reports the reset shape to use for a register that replaces all of
// them. Registers without a reset are ignored; if none of them have one,
// hasReset is false and the other return values are zero.
func compatibleResets(regs []*hlim.RegisterNode) (hasReset bool, resetSrc hlim.PortRef, resetValue hlim.BitVector, ok bool) {
	var known *hlim.BitVector
	for _, r := range regs {
		if !r.HasReset {
			continue
		}
		hasReset = true
		src := r.InputPorts()[len(r.InputPorts())-1].Src
		if !resetSrc.Valid() {
			resetSrc = src
		} else if resetSrc != src {
			return false, hlim.PortRef{}, hlim.BitVector{}, false
		}
		if r.ResetValue.AllDefined() {
			if known == nil {
				v := r.ResetValue
				known = &v
			} else if !bitVectorsEqual(*known, r.ResetValue) {
				return false, hlim.PortRef{}, hlim.BitVector{}, false
			}
		}
	}
	if !hasReset {
		return false, hlim.PortRef{}, hlim.BitVector{}, true
	}
	if known == nil {
		return true, resetSrc, hlim.NewBitVector(regs[0].OutputPorts()[0].Type.Width), true
	}
	return true, resetSrc, *known, true
}

// sameClockAndEnable reports whether every register in regs shares
// clock, enable presence, and (if present) enable source with regs[0].
func sameClockAndEnable(regs []*hlim.RegisterNode) (hasEnable bool, enableSrc hlim.PortRef, ok bool) {
	clk := regs[0].Clock
	hasEnable = regs[0].HasEnable
	if hasEnable {
		enableSrc = regs[0].InputPorts()[1].Src
	}
	for _, r := range regs[1:] {
		if r.Clock != clk || r.HasEnable != hasEnable {
			return hasEnable, enableSrc, false
		}
		if hasEnable && r.InputPorts()[1].Src != enableSrc {
			return hasEnable, enableSrc, false
		}
	}
	return hasEnable, enableSrc, true
}
