package pass

import "github.com/sarchlab/gatery-go/hlim"

// Retiming moves registers across combinational logic to balance
// pipeline stages, without changing the sequence of values any pin
// observes. Three register flags gate it: AllowRetimeFwd lets a
// register move downstream past the combinational region between it and
// a designated target (another register's data input or a design output
// pin), AllowRetimeBack lets it move upstream past its sole
// combinational producer, and IsHint (regHint) marks a register as a
// balancing candidate that balanceHintComponents repositions instead.
//
// Forward retiming targets an arbitrary combinational region, not just a
// single node: it finds every AllowRetimeFwd register that dominates the
// target (every path from a true source to the target crosses exactly
// one of them) and moves that whole anti-chain across the region at
// once, cloning a register first if it still has consumers outside the
// region. A register whose reset value survives the move has it
// recomputed by folding the region's own logic over the old reset
// values, rather than carrying the old value forward unchanged.
type Retiming struct{}

func (Retiming) Name() string { return "retiming" }

func (Retiming) Run(c *hlim.Circuit) (Result, error) {
	hintMoves, hintWarnings := balanceHintComponents(c)
	fwdMoves, fwdWarnings := retimeForwardPass(c)

	bwdMoves := 0
	for _, id := range c.AllNodeIDs() {
		reg, ok := c.Node(id).(*hlim.RegisterNode)
		if !ok || reg.IsHint || !reg.AllowRetimeBack {
			continue
		}
		if retimeBackward(c, id, reg) {
			bwdMoves++
		}
	}

	total := hintMoves + fwdMoves + bwdMoves
	var warnings []string
	warnings = append(warnings, hintWarnings...)
	warnings = append(warnings, fwdWarnings...)
	return Result{
		Changed:  total > 0,
		Detail:   countDetail("registers retimed", total),
		Warnings: warnings,
	}, nil
}

// forwardTargets lists every port a register may legally retime toward:
// every non-hint register's data input, and every design output pin's
// input.
func forwardTargets(c *hlim.Circuit) []hlim.PortRef {
	var targets []hlim.PortRef
	for _, id := range c.AllNodeIDs() {
		switch n := c.Node(id).(type) {
		case *hlim.RegisterNode:
			if !n.IsHint {
				targets = append(targets, hlim.PortRef{Node: id, Index: 0})
			}
		case *hlim.PinNode:
			if n.Direction == hlim.PinOut {
				targets = append(targets, hlim.PortRef{Node: id, Index: 0})
			}
		}
	}
	return targets
}

// retimeForwardPass sweeps forwardTargets to a fixed point, since moving
// one anti-chain can expose a new one further downstream and the
// pipeline only calls Retiming once per run.
func retimeForwardPass(c *hlim.Circuit) (int, []string) {
	moves := 0
	var warnings []string
	for iter := 0; iter < 64; iter++ {
		live := map[hlim.NodeID]bool{}
		for _, id := range c.AllNodeIDs() {
			live[id] = true
		}
		progressed := false
		for _, ref := range forwardTargets(c) {
			if !live[ref.Node] {
				continue
			}
			ok, warns := retimeForwardToTarget(c, ref)
			warnings = append(warnings, warns...)
			if ok {
				moves++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return moves, warnings
}

// collectRegion walks backward from ref through combinational nodes,
// recording every combinational node crossed into region and every
// barrier (register, pin, memory port, ...) it bottoms out at into
// frontier.
func collectRegion(c *hlim.Circuit, ref hlim.PortRef, region, frontier map[hlim.NodeID]bool) {
	if !ref.Valid() {
		return
	}
	n := c.Node(ref.Node)
	if _, isPin := n.(*hlim.PinNode); isPin || !hlim.IsCombinational(n) {
		frontier[ref.Node] = true
		return
	}
	if region[ref.Node] {
		return
	}
	region[ref.Node] = true
	for _, in := range n.InputPorts() {
		collectRegion(c, in.Src, region, frontier)
	}
}

// retimeForwardToTarget attempts to move the anti-chain of
// AllowRetimeFwd registers dominating targetRef across the combinational
// region feeding it. It refuses (with an advisory) if the region mixes
// eligible registers with any other live barrier — a register that isn't
// flagged, a pin, a memory port — since moving only part of an
// anti-chain would change which cycle's value of the unmoved input
// reaches the target.
func retimeForwardToTarget(c *hlim.Circuit, targetRef hlim.PortRef) (bool, []string) {
	region := map[hlim.NodeID]bool{}
	frontier := map[hlim.NodeID]bool{}
	collectRegion(c, targetRef.Src, region, frontier)
	if len(region) == 0 {
		return false, nil
	}

	var eligible []hlim.NodeID
	refuse := false
	for id := range frontier {
		n := c.Node(id)
		if reg, ok := n.(*hlim.RegisterNode); ok {
			if reg.AllowRetimeFwd && !reg.IsHint {
				eligible = append(eligible, id)
				continue
			}
			refuse = true
			continue
		}
		if _, ok := n.(*hlim.ConstantNode); ok {
			continue // time-invariant, safe to leave behind
		}
		refuse = true
	}
	if len(eligible) == 0 {
		return false, nil
	}
	if refuse {
		return false, []string{"forward retiming refused: region has a non-retimeable live input"}
	}
	sortNodeIDs(eligible)

	regs := make([]*hlim.RegisterNode, len(eligible))
	for i, id := range eligible {
		regs[i] = c.Node(id).(*hlim.RegisterNode)
	}
	hasEnable, enableSrc, ok := sameClockAndEnable(regs)
	if !ok {
		return false, []string{"forward retiming refused: clock or enable mismatch in anti-chain"}
	}
	hasReset, resetSrc, _, ok := compatibleResets(regs)
	if !ok {
		return false, []string{"forward retiming refused: reset value mismatch in anti-chain"}
	}

	var mergedResetValue hlim.BitVector
	if hasReset {
		mergedResetValue = foldRegionResetValue(c, region, frontier, eligible, targetRef.Src)
	}

	root := targetRef.Src
	clk := regs[0].Clock
	group := c.GroupOf(eligible[0])

	// Clone any eligible register that still has consumers outside the
	// region being moved, so those consumers keep seeing the pre-move
	// value; the clone (or the original, if no clone was needed) is
	// what actually gets spliced out below.
	effective := map[hlim.NodeID]hlim.NodeID{}
	for _, id := range eligible {
		reg := c.Node(id).(*hlim.RegisterNode)
		var toward []hlim.PortRef
		hasOther := false
		for _, cons := range c.Consumers(hlim.PortRef{Node: id, Index: 0}) {
			if cons == targetRef || region[cons.Node] {
				toward = append(toward, cons)
				continue
			}
			hasOther = true
		}
		if !hasOther {
			effective[id] = id
			continue
		}
		cloneID := c.CloneUnconnected(id)
		must(c.ConnectReplace(reg.InputPorts()[0].Src, hlim.PortRef{Node: cloneID}, 0))
		idx := 1
		if reg.HasEnable {
			must(c.ConnectReplace(reg.InputPorts()[idx].Src, hlim.PortRef{Node: cloneID}, idx))
			idx++
		}
		if reg.HasReset && reg.InputPorts()[idx].Src.Valid() {
			must(c.ConnectReplace(reg.InputPorts()[idx].Src, hlim.PortRef{Node: cloneID}, idx))
		}
		for _, t := range toward {
			must(c.ConnectReplace(hlim.PortRef{Node: cloneID}, t, t.Index))
		}
		effective[id] = cloneID
	}

	// Splice each effective register out: its consumers toward the
	// target now read straight from its old data source.
	for _, id := range eligible {
		effID := effective[id]
		tap := c.Node(effID).(*hlim.RegisterNode).InputPorts()[0].Src
		for _, cons := range c.Consumers(hlim.PortRef{Node: effID, Index: 0}) {
			must(c.ConnectReplace(tap, cons, cons.Index))
		}
		c.RemoveNode(effID)
	}

	targetType := c.Node(targetRef.Node).InputPorts()[targetRef.Index].Type
	newReg := hlim.NewRegisterNode(targetType, clk, hasEnable, hasReset, mergedResetValue)
	newID := c.CreateNode(newReg, group)
	must(c.ConnectReplace(root, hlim.PortRef{Node: newID}, 0))
	idx := 1
	if hasEnable {
		must(c.ConnectReplace(enableSrc, hlim.PortRef{Node: newID}, idx))
		idx++
	}
	if hasReset && resetSrc.Valid() {
		must(c.ConnectReplace(resetSrc, hlim.PortRef{Node: newID}, idx))
	}
	must(c.ConnectReplace(hlim.PortRef{Node: newID}, targetRef, targetRef.Index))

	return true, nil
}

// foldRegionResetValue computes what the merged register's reset value
// should be by evaluating the moved region's own combinational logic
// with each eligible register's old reset value substituted at its tap,
// a Constant's own value at its leaf, and undefined everywhere else
// (notably a live pin: its reset-time value isn't knowable here).
func foldRegionResetValue(c *hlim.Circuit, region, frontier map[hlim.NodeID]bool, eligible []hlim.NodeID, root hlim.PortRef) hlim.BitVector {
	order, err := c.TopoSort(nodeIDSet(region))
	if err != nil {
		return hlim.NewBitVector(outputType(c, root).Width)
	}

	leaf := func(id hlim.NodeID) hlim.BitVector {
		for _, eid := range eligible {
			if eid != id {
				continue
			}
			reg := c.Node(eid).(*hlim.RegisterNode)
			if reg.HasReset && reg.ResetValue.AllDefined() {
				return reg.ResetValue
			}
			return hlim.NewBitVector(reg.OutputPorts()[0].Type.Width)
		}
		if cn, ok := c.Node(id).(*hlim.ConstantNode); ok {
			return cn.Value
		}
		return hlim.NewBitVector(c.Node(id).OutputPorts()[0].Type.Width)
	}

	values := map[hlim.PortRef]hlim.BitVector{}
	valueAt := func(ref hlim.PortRef) hlim.BitVector {
		if v, ok := values[ref]; ok {
			return v
		}
		v := leaf(ref.Node)
		values[hlim.PortRef{Node: ref.Node, Index: 0}] = v
		return v
	}

	for _, id := range order {
		n := c.Node(id)
		ins := n.InputPorts()
		args := make([]hlim.BitVector, len(ins))
		for i, in := range ins {
			args[i] = valueAt(in.Src)
		}
		values[hlim.PortRef{Node: id, Index: 0}] = evalWith(n, args...)
	}

	return valueAt(root)
}

func nodeIDSet(m map[hlim.NodeID]bool) []hlim.NodeID {
	ids := make([]hlim.NodeID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sortNodeIDs(ids)
	return ids
}

func sortNodeIDs(ids []hlim.NodeID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// retimeBackward moves reg past its sole combinational producer m,
// turning m -> reg into reg' -> m', where reg' samples m's former input
// and m' recomputes downstream of the new register.
func retimeBackward(c *hlim.Circuit, id hlim.NodeID, reg *hlim.RegisterNode) bool {
	if reg.HasReset {
		// Moving a reset-capable register upstream of a combinational
		// node would require recomputing the node's inverse at the reset
		// value, which isn't generally possible; backward retiming is
		// only attempted for reset-free registers.
		return false
	}
	dataSrc := reg.InputPorts()[0].Src
	if !dataSrc.Valid() {
		return false
	}
	m := c.Node(dataSrc.Node)
	if !eligibleRetimeNeighbor(m) {
		return false
	}
	if len(c.Consumers(hlim.PortRef{Node: dataSrc.Node, Index: 0})) != 1 {
		return false // m feeds something else too; moving reg ahead of it would change that consumer's timing
	}

	mInputSrc := m.InputPorts()[0].Src
	newReg := hlim.NewRegisterNode(m.InputPorts()[0].Type, reg.Clock, reg.HasEnable, false, hlim.BitVector{})
	newID := c.CreateNode(newReg, c.GroupOf(id))
	enableSrc, _ := optionalSrcs(reg)

	must(c.ConnectReplace(mInputSrc, hlim.PortRef{Node: newID}, 0))
	idx := 1
	if reg.HasEnable {
		must(c.ConnectReplace(enableSrc, hlim.PortRef{Node: newID}, idx))
	}
	// m now reads from the new register instead of its old input.
	must(c.ConnectReplace(hlim.PortRef{Node: newID}, hlim.PortRef{Node: dataSrc.Node}, 0))

	rewireConsumers(c, id, 0, dataSrc.Node)
	c.RemoveNode(id)
	return true
}

func eligibleRetimeNeighbor(n hlim.Node) bool {
	return hlim.IsCombinational(n) && len(n.InputPorts()) == 1 && len(n.OutputPorts()) == 1
}

func optionalSrcs(reg *hlim.RegisterNode) (enable, reset hlim.PortRef) {
	ins := reg.InputPorts()
	idx := 1
	if reg.HasEnable {
		enable = ins[idx].Src
		idx++
	}
	if reg.HasReset {
		reset = ins[idx].Src
	}
	return
}
