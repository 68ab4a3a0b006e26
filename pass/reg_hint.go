package pass

import "github.com/sarchlab/gatery-go/hlim"

// hintChain is a maximal linear run of IsHint registers separated by
// combinational logic, bounded on both ends by a fixed anchor (a
// non-hint register, a pin, a memory port, or anything else that isn't
// plain combinational logic).
type hintChain struct {
	regs      []hlim.NodeID   // hint registers, source-to-sink order
	segments  [][]hlim.NodeID // len(regs)+1 combinational runs between them
	sourceOut hlim.PortRef    // the anchor output feeding segments[0]
	sinkIn    hlim.PortRef    // the anchor input fed by the last segment
}

// balanceHintComponents finds every maximal chain of IsHint registers
// and redistributes each one's registers evenly across the
// combinational distance between its anchors, so pipeline latency stays
// the same but stage boundaries land as close to an even split as
// possible. A chain with a branch point (fan-out or fan-in other than
// 1) anywhere along it is left untouched, with an advisory, since the
// segment accounting below assumes a single unbranched path.
func balanceHintComponents(c *hlim.Circuit) (int, []string) {
	visited := map[hlim.NodeID]bool{}
	moves := 0
	var warnings []string

	for _, id := range c.AllNodeIDs() {
		reg, ok := c.Node(id).(*hlim.RegisterNode)
		if !ok || !reg.IsHint || visited[id] {
			continue
		}
		chain, ok := traceHintChain(c, id)
		if !ok {
			warnings = append(warnings, "hinted balancing skipped: non-linear hint network")
			visited[id] = true
			continue
		}
		for _, rid := range chain.regs {
			visited[rid] = true
		}
		changed, warn := rebalanceChain(c, chain)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if changed {
			moves++
		}
	}
	return moves, warnings
}

// isLinearHop reports whether n is a plain single-in/single-out
// combinational node the scans can walk straight through. A node can
// report Combinational() == true yet not qualify — an input or output
// pin, for instance, is combinational but has no input (or no output)
// port at all, so it's a chain anchor rather than a hop.
func isLinearHop(n hlim.Node) bool {
	return hlim.IsCombinational(n) && len(n.InputPorts()) == 1 && len(n.OutputPorts()) == 1
}

// scanForward walks forward from ref through single-consumer hops,
// passing through any IsHint register it meets, until it reaches a
// non-hint anchor. ok is false if a branch point breaks linearity.
func scanForward(c *hlim.Circuit, ref hlim.PortRef) (hints []hlim.NodeID, anchor hlim.PortRef, ok bool) {
	for {
		consumers := c.Consumers(ref)
		if len(consumers) != 1 {
			return nil, hlim.PortRef{}, false
		}
		cons := consumers[0]
		n := c.Node(cons.Node)
		if reg, isReg := n.(*hlim.RegisterNode); isReg && reg.IsHint {
			hints = append(hints, cons.Node)
			ref = hlim.PortRef{Node: cons.Node, Index: 0}
			continue
		}
		if !isLinearHop(n) {
			return hints, cons, true
		}
		ref = hlim.PortRef{Node: cons.Node, Index: 0}
	}
}

// scanBackward is scanForward's mirror, walking from ref (an input
// source) back toward the chain's source anchor.
func scanBackward(c *hlim.Circuit, ref hlim.PortRef) (hints []hlim.NodeID, anchor hlim.PortRef, ok bool) {
	for {
		if !ref.Valid() {
			return nil, hlim.PortRef{}, false
		}
		n := c.Node(ref.Node)
		if reg, isReg := n.(*hlim.RegisterNode); isReg && reg.IsHint {
			if len(c.Consumers(hlim.PortRef{Node: ref.Node, Index: 0})) != 1 {
				return nil, hlim.PortRef{}, false
			}
			hints = append([]hlim.NodeID{ref.Node}, hints...)
			ref = reg.InputPorts()[0].Src
			continue
		}
		if !isLinearHop(n) {
			return hints, ref, true
		}
		if len(c.Consumers(ref)) != 1 {
			return nil, hlim.PortRef{}, false
		}
		ref = n.InputPorts()[0].Src
	}
}

func traceHintChain(c *hlim.Circuit, start hlim.NodeID) (hintChain, bool) {
	reg := c.Node(start).(*hlim.RegisterNode)
	backHints, sourceAnchor, ok := scanBackward(c, reg.InputPorts()[0].Src)
	if !ok {
		return hintChain{}, false
	}
	fwdHints, sinkAnchor, ok := scanForward(c, hlim.PortRef{Node: start, Index: 0})
	if !ok {
		return hintChain{}, false
	}

	regs := make([]hlim.NodeID, 0, len(backHints)+1+len(fwdHints))
	regs = append(regs, backHints...)
	regs = append(regs, start)
	regs = append(regs, fwdHints...)

	return buildHintChain(c, regs, sourceAnchor, sinkAnchor)
}

// buildHintChain re-walks from sourceAnchor to sinkAnchor, splitting the
// path into the combinational segments before/between/after regs, and
// double-checking it meets exactly the registers traceHintChain found
// (it always should; a mismatch means the graph changed between the two
// walks, which can't happen here since neither mutates anything).
func buildHintChain(c *hlim.Circuit, regs []hlim.NodeID, sourceAnchor, sinkAnchor hlim.PortRef) (hintChain, bool) {
	segments := make([][]hlim.NodeID, len(regs)+1)
	ref := sourceAnchor
	segIdx := 0
	for {
		consumers := c.Consumers(ref)
		if len(consumers) != 1 {
			return hintChain{}, false
		}
		cons := consumers[0]
		if cons == sinkAnchor {
			return hintChain{regs: regs, segments: segments, sourceOut: sourceAnchor, sinkIn: sinkAnchor}, true
		}
		if reg, isReg := c.Node(cons.Node).(*hlim.RegisterNode); isReg {
			if segIdx >= len(regs) || regs[segIdx] != cons.Node {
				return hintChain{}, false
			}
			_ = reg
			segIdx++
			ref = hlim.PortRef{Node: cons.Node, Index: 0}
			continue
		}
		segments[segIdx] = append(segments[segIdx], cons.Node)
		ref = hlim.PortRef{Node: cons.Node, Index: 0}
	}
}

// rebalanceChain removes chain's hint registers and reinserts the same
// count spread as evenly as possible across the combinational distance
// between its anchors, any remainder going to the segments nearest the
// source so the segment nearest the sink (the consumer) shrinks first.
func rebalanceChain(c *hlim.Circuit, chain hintChain) (bool, string) {
	n := len(chain.regs)
	if n == 0 {
		return false, ""
	}
	regs := make([]*hlim.RegisterNode, n)
	for i, id := range chain.regs {
		regs[i] = c.Node(id).(*hlim.RegisterNode)
	}
	hasEnable, enableSrc, ok := sameClockAndEnable(regs)
	if !ok {
		return false, "hinted balancing refused: clock or enable mismatch"
	}
	hasReset, resetSrc, resetValue, ok := compatibleResets(regs)
	if !ok {
		return false, "hinted balancing refused: reset value mismatch"
	}
	clk := regs[0].Clock

	total := 0
	for _, seg := range chain.segments {
		total += len(seg)
	}
	sizes := balancedSizes(total, n+1)

	already := true
	for i, seg := range chain.segments {
		if len(seg) != sizes[i] {
			already = false
			break
		}
	}
	if already {
		return false, ""
	}

	group := c.GroupOf(chain.regs[0])
	for _, id := range chain.regs {
		c.BypassOutputToInput(id, 0, 0)
		c.RemoveNode(id)
	}

	ref := chain.sourceOut
	count := 0
	seg := 0
	boundary := sizes[0]
	for seg < n {
		consumers := c.Consumers(ref)
		if len(consumers) != 1 {
			return true, "hinted balancing left an inconsistent splice" // shouldn't happen; defensive
		}
		cons := consumers[0]
		if count == boundary {
			newReg := hlim.NewRegisterNode(outputType(c, ref), clk, hasEnable, hasReset, resetValue)
			newID := c.CreateNode(newReg, group)
			must(c.ConnectReplace(ref, hlim.PortRef{Node: newID}, 0))
			idx := 1
			if hasEnable {
				must(c.ConnectReplace(enableSrc, hlim.PortRef{Node: newID}, idx))
				idx++
			}
			if hasReset {
				must(c.ConnectReplace(resetSrc, hlim.PortRef{Node: newID}, idx))
			}
			must(c.ConnectReplace(hlim.PortRef{Node: newID}, cons, cons.Index))
			ref = hlim.PortRef{Node: newID, Index: 0}
			seg++
			if seg < n {
				boundary += sizes[seg]
			}
			continue
		}
		ref = hlim.PortRef{Node: cons.Node, Index: 0}
		count++
	}

	return true, ""
}

// balancedSizes splits total into parts non-negative integers differing
// by at most one, with the earlier parts taking the remainder — so the
// segment nearest the sink anchor (the last one) is the smallest.
func balancedSizes(total, parts int) []int {
	sizes := make([]int, parts)
	base := total / parts
	rem := total % parts
	for i := 0; i < parts; i++ {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}
