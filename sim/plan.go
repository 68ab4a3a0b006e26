// Package sim executes a post-processed circuit: three-valued combinational
// settling, clock-driven register/memory advance, and a cooperative
// user-process API layered on top of an akita/v4 discrete-event engine.
package sim

import "github.com/sarchlab/gatery-go/hlim"

// Plan is the precomputed shape of a circuit that stays fixed for the
// life of a Simulation: which nodes settle combinationally and in what
// order, which nodes advance on which clock, and which memories need
// their storage initialized once up front.
type Plan struct {
	circuit *hlim.Circuit

	comb    []hlim.NodeID
	onClock map[*hlim.Clock][]hlim.NodeID
	memory  []hlim.NodeID
}

// BuildPlan computes a Plan for every live node in c. It fails only if
// the combinational subgraph has a cycle the post-processing pipeline
// should already have rejected (e.g. LatchCheck never ran).
func BuildPlan(c *hlim.Circuit) (*Plan, error) {
	ids := c.AllNodeIDs()
	order, err := c.TopoSort(ids)
	if err != nil {
		return nil, err
	}

	p := &Plan{circuit: c, onClock: map[*hlim.Clock][]hlim.NodeID{}}
	for _, id := range order {
		if hlim.IsCombinational(c.Node(id)) {
			p.comb = append(p.comb, id)
		}
	}
	for _, id := range ids {
		n := c.Node(id)
		if hlim.IsCombinational(n) {
			continue
		}
		if _, ok := n.(*hlim.MemoryNode); ok {
			p.memory = append(p.memory, id)
			continue
		}
		for _, clk := range n.ClockPorts() {
			p.onClock[clk] = append(p.onClock[clk], id)
		}
	}
	return p, nil
}

// Clocks returns every clock that drives at least one sequential node in
// the plan.
func (p *Plan) Clocks() []*hlim.Clock {
	out := make([]*hlim.Clock, 0, len(p.onClock))
	for clk := range p.onClock {
		out = append(out, clk)
	}
	return out
}

// CombOrder returns the combinational nodes in the order Settle
// evaluates them.
func (p *Plan) CombOrder() []hlim.NodeID { return p.comb }

// OnClock returns the sequential and memory-port nodes that advance on
// clk's active edge, in evaluation order.
func (p *Plan) OnClock(clk *hlim.Clock) []hlim.NodeID { return p.onClock[clk] }

// Memory returns every MemoryNode in the plan, in the order their
// backing storage is initialized.
func (p *Plan) Memory() []hlim.NodeID { return p.memory }
