package sim

import "github.com/sarchlab/gatery-go/hlim"

// State is the simulator's live three-valued state: one BitVector per
// node output and one NodeState per sequential/memory node, indexed by
// NodeID exactly as the post-processed circuit names them.
type State struct {
	circuit *hlim.Circuit
	outputs map[hlim.NodeID][]hlim.BitVector
	scratch map[hlim.NodeID]*hlim.NodeState
	edges   map[*hlim.Clock]bool
}

func newState(c *hlim.Circuit) *State {
	return &State{
		circuit: c,
		outputs: map[hlim.NodeID][]hlim.BitVector{},
		scratch: map[hlim.NodeID]*hlim.NodeState{},
		edges:   map[*hlim.Clock]bool{},
	}
}

func (s *State) outputsOf(id hlim.NodeID) []hlim.BitVector {
	out, ok := s.outputs[id]
	if !ok {
		n := s.circuit.Node(id)
		out = make([]hlim.BitVector, len(n.OutputPorts()))
		for i, o := range n.OutputPorts() {
			out[i] = hlim.NewBitVector(o.Type.Width)
		}
		s.outputs[id] = out
	}
	return out
}

// Read returns the current value of output index of node id.
func (s *State) Read(id hlim.NodeID, index int) hlim.BitVector {
	return s.outputsOf(id)[index]
}

// Drive overwrites output index of node id directly, bypassing Evaluate.
// Used by user processes to inject input-pin values; it is the only
// legal way to set an input pin's value
// since PinNode.Evaluate never writes one itself.
func (s *State) Drive(id hlim.NodeID, index int, v hlim.BitVector) {
	s.outputsOf(id)[index] = v
}

func (s *State) scratchOf(id hlim.NodeID) *hlim.NodeState {
	st, ok := s.scratch[id]
	if !ok {
		st = &hlim.NodeState{}
		s.scratch[id] = st
	}
	return st
}

// evalContext is the concrete hlim.EvalContext a Simulation hands to a
// node's Evaluate method; it closes over which node is currently being
// evaluated and which clocks ticked in the event driving this call.
type evalContext struct {
	state *State
	node  hlim.Node
}

func (ctx *evalContext) ReadInput(i int) hlim.BitVector {
	in := ctx.node.InputPorts()[i]
	if !in.Src.Valid() {
		return hlim.NewBitVector(in.Type.Width)
	}
	return ctx.state.Read(in.Src.Node, in.Src.Index)
}

func (ctx *evalContext) WriteOutput(i int, v hlim.BitVector) {
	ctx.state.Drive(ctx.node.ID(), i, v)
}

func (ctx *evalContext) ClockEdge(c *hlim.Clock) bool {
	return ctx.state.edges[c]
}

func (ctx *evalContext) State() *hlim.NodeState {
	return ctx.state.scratchOf(ctx.node.ID())
}
