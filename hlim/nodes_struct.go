package hlim

// SignalNode is a pure label/aliasing node: it passes its input through
// unchanged and exists only to carry a name for debugging and export.
// Signal-node elimination, the first post-processing pass, erases every
// surviving SignalNode by bypassing it.
type SignalNode struct {
	base
}

// NewSignalNode creates an alias node of type t.
func NewSignalNode(t ConnectionType) *SignalNode {
	n := &SignalNode{}
	n.inputs = []InputPort{{Name: "in", Type: t}}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	return n
}

func (n *SignalNode) TypeName() string    { return "Signal" }
func (n *SignalNode) Combinational() bool { return true }
func (n *SignalNode) AssertValid() error  { return nil }
func (n *SignalNode) CloneUnconnected() Node {
	return &SignalNode{base: n.cloneBase()}
}
func (n *SignalNode) Evaluate(ctx EvalContext) { ctx.WriteOutput(0, ctx.ReadInput(0)) }

// PinDirection distinguishes boundary port directions.
type PinDirection int

const (
	PinIn PinDirection = iota
	PinOut
	PinTristate
)

// PinNode is a named boundary port of the whole design.
// An input pin has no InputPorts and one OutputPort; an output pin has
// one InputPort and no OutputPorts; a tristate pin has both plus an
// output-enable input.
type PinNode struct {
	base
	Direction PinDirection
	PinName   string
}

// NewInputPin creates a design input boundary port.
func NewInputPin(name string, t ConnectionType) *PinNode {
	n := &PinNode{Direction: PinIn, PinName: name}
	n.outputs = []OutputPort{{Name: name, Type: t}}
	return n
}

// NewOutputPin creates a design output boundary port.
func NewOutputPin(name string, t ConnectionType) *PinNode {
	n := &PinNode{Direction: PinOut, PinName: name}
	n.inputs = []InputPort{{Name: name, Type: t}}
	return n
}

// NewTristatePin creates a bidirectional boundary port with an explicit
// output-enable input.
func NewTristatePin(name string, t ConnectionType) *PinNode {
	n := &PinNode{Direction: PinTristate, PinName: name}
	n.inputs = []InputPort{
		{Name: name + ".out", Type: t},
		{Name: name + ".oe", Type: Bit()},
	}
	n.outputs = []OutputPort{{Name: name + ".in", Type: t}}
	return n
}

func (n *PinNode) TypeName() string { return "Pin" }

// Combinational reports true for input pins (pure sources, no state) and
// for tristate pins feeding their output enable combinationally; output
// pins have no outputs and so never participate in ordering as a
// producer.
func (n *PinNode) Combinational() bool { return true }
func (n *PinNode) AssertValid() error  { return nil }
func (n *PinNode) CloneUnconnected() Node {
	return &PinNode{base: n.cloneBase(), Direction: n.Direction, PinName: n.PinName}
}

func (n *PinNode) Evaluate(ctx EvalContext) {
	switch n.Direction {
	case PinIn:
		// driven externally by the simulator's user API; Evaluate is a
		// no-op here because the value is injected directly into state.
	case PinOut:
		// sampled by the simulator/exporter; nothing to compute.
	case PinTristate:
		ctx.WriteOutput(0, ctx.ReadInput(0))
	}
}

// HierarchyBoundaryKind distinguishes entry from exit markers.
type HierarchyBoundaryKind int

const (
	HierarchyEntry HierarchyBoundaryKind = iota
	HierarchyExit
)

// HierarchyBoundaryNode marks where the exporter should open or close a
// module/entity boundary that does not otherwise correspond to a pin
// (e.g. a black-box instantiation edge). It is a pass-through node at
// simulation time.
type HierarchyBoundaryNode struct {
	base
	Kind HierarchyBoundaryKind
}

// NewHierarchyBoundaryNode creates a hierarchy marker node of type t.
func NewHierarchyBoundaryNode(kind HierarchyBoundaryKind, t ConnectionType) *HierarchyBoundaryNode {
	n := &HierarchyBoundaryNode{Kind: kind}
	n.inputs = []InputPort{{Name: "in", Type: t}}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	return n
}

func (n *HierarchyBoundaryNode) TypeName() string    { return "HierarchyBoundary" }
func (n *HierarchyBoundaryNode) Combinational() bool { return true }
func (n *HierarchyBoundaryNode) AssertValid() error  { return nil }
func (n *HierarchyBoundaryNode) CloneUnconnected() Node {
	return &HierarchyBoundaryNode{base: n.cloneBase(), Kind: n.Kind}
}
func (n *HierarchyBoundaryNode) Evaluate(ctx EvalContext) { ctx.WriteOutput(0, ctx.ReadInput(0)) }

// ExternalNode is an opaque black-box with declared inputs, outputs,
// clock lists, and a parameter map — used by the exporter and vendor
// technology libraries. The core never evaluates an external node's
// real behaviour; simulation of one requires a user-supplied model
// registered by name.
type ExternalNode struct {
	base
	ModuleName string
	Parameters map[string]string
	Model      func(ctx EvalContext) // optional: simulation stand-in
}

// NewExternalNode creates a black-box node with the given port shape.
func NewExternalNode(moduleName string, ins []InputPort, outs []OutputPort) *ExternalNode {
	n := &ExternalNode{ModuleName: moduleName, Parameters: map[string]string{}}
	n.inputs = ins
	n.outputs = outs
	return n
}

func (n *ExternalNode) TypeName() string    { return "External:" + n.ModuleName }
func (n *ExternalNode) Combinational() bool { return len(n.clocks) == 0 }
func (n *ExternalNode) AssertValid() error  { return nil }
func (n *ExternalNode) CloneUnconnected() Node {
	params := make(map[string]string, len(n.Parameters))
	for k, v := range n.Parameters {
		params[k] = v
	}
	return &ExternalNode{base: n.cloneBase(), ModuleName: n.ModuleName, Parameters: params, Model: n.Model}
}

func (n *ExternalNode) Evaluate(ctx EvalContext) {
	if n.Model != nil {
		n.Model(ctx)
		return
	}
	for i := range n.outputs {
		ctx.WriteOutput(i, NewBitVector(n.outputs[i].Type.Width))
	}
}
