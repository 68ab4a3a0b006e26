package hlim

// Node is the capability interface every IR node variant implements: a
// tagged-variant replacement for the source framework's virtual
// dispatch, so that adding a new node type stays a one-file change.
type Node interface {
	// ID returns the node's stable identity.
	ID() NodeID

	// TypeName names the node variant, used for reporting and export.
	TypeName() string

	// InputPorts returns the node's input-port bindings in declaration
	// order. The slice is owned by the node; callers must not mutate it
	// directly — use Circuit.Connect / Circuit.Disconnect.
	InputPorts() []InputPort

	// OutputPorts returns the node's output-port declarations in
	// declaration order.
	OutputPorts() []OutputPort

	// ClockPorts returns the clocks this node depends on, if any.
	ClockPorts() []*Clock

	// Evaluate computes this node's outputs from a bit-vector view of its
	// inputs. Sequential and memory nodes evaluate "next" state here; the
	// simulator's advance phase commits it. Combinational nodes compute
	// and commit in the same call.
	Evaluate(EvalContext)

	// CloneUnconnected produces a structurally identical node with no
	// incoming connections, parented to the same group, used by retiming
	// and hierarchical replication.
	CloneUnconnected() Node

	// AssertValid checks variant-specific well-formedness (e.g. an
	// external node's declared port count matches its connections) and
	// returns nil when the node is well-formed.
	AssertValid() error

	// setInput rebinds input port i's source; setID fixes the node's
	// identity when it is inserted into a circuit. Both are package-
	// private: only Circuit mutates node identity and wiring.
	setID(NodeID)
	setGroup(*NodeGroup)
	group() *NodeGroup
	setInput(i int, src PortRef)
}

// InputPort is one input binding of a node: its declared type and the
// output port currently driving it (or the zero PortRef if unconnected).
type InputPort struct {
	Name string
	Type ConnectionType
	Src  PortRef
}

// OutputPort is one output declaration of a node.
type OutputPort struct {
	Name string
	Type ConnectionType
}

// base is embedded by every concrete node variant. It implements the
// identity, grouping, and port-table bookkeeping shared by all variants,
// so each variant file only needs to implement Evaluate, CloneUnconnected,
// AssertValid and TypeName.
type base struct {
	id     NodeID
	grp    *NodeGroup
	inputs []InputPort
	outputs []OutputPort
	clocks []*Clock
	Debug  DebugInfo
}

func (b *base) ID() NodeID                { return b.id }
func (b *base) setID(id NodeID)           { b.id = id }
func (b *base) setGroup(g *NodeGroup)     { b.grp = g }
func (b *base) group() *NodeGroup         { return b.grp }
func (b *base) InputPorts() []InputPort   { return b.inputs }
func (b *base) OutputPorts() []OutputPort { return b.outputs }
func (b *base) ClockPorts() []*Clock      { return b.clocks }

func (b *base) setInput(i int, src PortRef) {
	b.inputs[i].Src = src
}

func (b *base) debugInfo() DebugInfo    { return b.Debug }
func (b *base) SetDebug(d DebugInfo)    { b.Debug = d }

func (b *base) cloneBase() base {
	nb := base{
		inputs:  make([]InputPort, len(b.inputs)),
		outputs: append([]OutputPort(nil), b.outputs...),
		clocks:  append([]*Clock(nil), b.clocks...),
		Debug:   b.Debug,
	}
	for i, in := range b.inputs {
		nb.inputs[i] = InputPort{Name: in.Name, Type: in.Type}
	}
	return nb
}

// EvalContext is the view of simulator state a node's Evaluate method is
// given: read access to driving values, write access to this node's own
// outputs/state. The sim package supplies the concrete implementation;
// hlim only depends on the interface so node variants have no import
// cycle onto the simulator.
type EvalContext interface {
	// ReadInput returns the three-valued bit vector currently on input i.
	ReadInput(i int) BitVector
	// WriteOutput commits a three-valued bit vector to output i.
	WriteOutput(i int, v BitVector)
	// ClockEdge reports whether clock c ticked in the event driving this
	// evaluation (sequential nodes use this to gate state advance).
	ClockEdge(c *Clock) bool
	// State returns a node-private scratch area for sequential/memory
	// nodes that need to carry values across Evaluate calls (e.g. a
	// register's "next" value before it is promoted to "current").
	State() *NodeState
}
