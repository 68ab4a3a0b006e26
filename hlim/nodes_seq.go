package hlim

// RegisterNode is a D flip-flop with optional enable and reset. Input
// order is [data, enable?, reset?] depending on which are present;
// HasEnable/HasReset record the shape so passes (reset/enable
// propagation, retiming) can query it without string matching on port
// names.
type RegisterNode struct {
	base
	Clock           *Clock
	HasEnable       bool
	HasReset        bool
	ResetValue      BitVector
	AllowRetimeFwd  bool
	AllowRetimeBack bool
	IsHint          bool // regHint: balancing candidate, not a fixed barrier
}

// NewRegisterNode creates a register of type t clocked by clk.
// hasEnable and hasReset say whether the enable and reset inputs exist,
// and resetValue is the value sampled on reset; the frontend decides
// which to set based on the reg()/reg(x, reset)/reg(x, enable, reset)
// overload the user called.
func NewRegisterNode(t ConnectionType, clk *Clock, hasEnable, hasReset bool, resetValue BitVector) *RegisterNode {
	n := &RegisterNode{Clock: clk, HasEnable: hasEnable, HasReset: hasReset, ResetValue: resetValue}
	n.inputs = []InputPort{{Name: "data", Type: t}}
	if hasEnable {
		n.inputs = append(n.inputs, InputPort{Name: "enable", Type: Bit()})
	}
	if hasReset {
		n.inputs = append(n.inputs, InputPort{Name: "reset", Type: Bit()})
	}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	n.clocks = []*Clock{clk}
	return n
}

func (n *RegisterNode) TypeName() string    { return "Register" }
func (n *RegisterNode) Combinational() bool { return false }
func (n *RegisterNode) AssertValid() error  { return nil }

func (n *RegisterNode) CloneUnconnected() Node {
	return &RegisterNode{
		base: n.cloneBase(), Clock: n.Clock, HasEnable: n.HasEnable, HasReset: n.HasReset,
		ResetValue: n.ResetValue.Clone(), AllowRetimeFwd: n.AllowRetimeFwd,
		AllowRetimeBack: n.AllowRetimeBack, IsHint: n.IsHint,
	}
}

// enableIdx/resetIdx return the input index of the optional ports, or -1.
func (n *RegisterNode) enableIdx() int {
	if n.HasEnable {
		return 1
	}
	return -1
}

func (n *RegisterNode) resetIdx() int {
	if n.HasReset {
		if n.HasEnable {
			return 2
		}
		return 1
	}
	return -1
}

// Evaluate computes the register's next value into NodeState.Next; the
// simulator's advance phase promotes Next to Current on this register's
// clock edge.
func (n *RegisterNode) Evaluate(ctx EvalContext) {
	st := ctx.State()
	if st.Current.Width == 0 {
		st.Current = n.initialValue()
	}
	edge := ctx.ClockEdge(n.Clock)

	if n.HasReset {
		rv, rd := ctx.ReadInput(n.resetIdx()).Bit(0)
		if rd && rv {
			st.Next = n.ResetValue.Clone()
			if edge {
				st.Current = st.Next
			}
			ctx.WriteOutput(0, st.Current)
			return
		}
	}

	enabled := true
	if n.HasEnable {
		ev, ed := ctx.ReadInput(n.enableIdx()).Bit(0)
		enabled = ed && ev
		if ed && !ev {
			st.Next = st.Current
		} else if !ed {
			st.Next = NewBitVector(st.Current.Width)
		}
	}
	if enabled {
		st.Next = ctx.ReadInput(0)
	}
	if edge {
		st.Current = st.Next
	}
	ctx.WriteOutput(0, st.Current)
}

func (n *RegisterNode) initialValue() BitVector {
	if n.HasReset {
		return n.ResetValue.Clone()
	}
	return NewBitVector(n.outputs[0].Type.Width)
}

// CDCKind enumerates the cross-clock-domain glue strategies a design may
// request explicitly when two clock domains must communicate.
type CDCKind int

const (
	// CDCTwoFlopSync is the canonical two-stage synchroniser for a
	// single-bit control signal crossing domains.
	CDCTwoFlopSync CDCKind = iota
	// CDCGrayPointer is used by the dual-clock FIFO to move a
	// pointer across domains without a coherency hazard.
	CDCGrayPointer
)

// CDCNode is explicit cross-clock-domain glue: the one node variant
// allowed to carry clocks from two different pin-source equivalence
// classes.
type CDCNode struct {
	base
	Kind      CDCKind
	SrcClock  *Clock
	DstClock  *Clock
	stages    []BitVector
}

// NewCDCNode creates a CDC synchroniser of type t moving a value from
// src's domain to dst's domain.
func NewCDCNode(kind CDCKind, t ConnectionType, src, dst *Clock) *CDCNode {
	n := &CDCNode{Kind: kind, SrcClock: src, DstClock: dst}
	n.inputs = []InputPort{{Name: "in", Type: t}}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	n.clocks = []*Clock{src, dst}
	n.stages = []BitVector{NewBitVector(t.Width), NewBitVector(t.Width)}
	return n
}

func (n *CDCNode) TypeName() string    { return "CDCSync" }
func (n *CDCNode) Combinational() bool { return false }
func (n *CDCNode) AssertValid() error  { return nil }
func (n *CDCNode) CloneUnconnected() Node {
	return NewCDCNode(n.Kind, n.inputs[0].Type, n.SrcClock, n.DstClock)
}

func (n *CDCNode) Evaluate(ctx EvalContext) {
	if ctx.ClockEdge(n.DstClock) {
		n.stages[1] = n.stages[0]
		n.stages[0] = ctx.ReadInput(0)
	}
	ctx.WriteOutput(0, n.stages[1])
}
