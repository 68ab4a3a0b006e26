package hlim

// CollisionPolicy selects read/write ordering on a shared address
// within the same cycle.
type CollisionPolicy int

const (
	ReadBeforeWrite CollisionPolicy = iota
	WriteBeforeRead
	DontCareCollision
)

// MemoryNode is a hardware memory block: a named storage region with a
// declared word width and depth, read by ReadPortNode/read-modify-write
// ports and written by WritePortNode, all of which reference this node
// through their Memory *MemoryNode field.
type MemoryNode struct {
	base
	WordWidth int
	Depth     uint64
	InitData  []BitVector // optional: preloaded contents, index = address
	Policy    InitPolicy
	storage   *MemoryStorage
}

// NewMemoryNode creates a memory of the given shape. It owns no ports of
// its own; ReadPortNode/WritePortNode address it by reference.
func NewMemoryNode(wordWidth int, depth uint64, policy InitPolicy) *MemoryNode {
	n := &MemoryNode{WordWidth: wordWidth, Depth: depth, Policy: policy}
	return n
}

func (n *MemoryNode) TypeName() string    { return "Memory" }
func (n *MemoryNode) Combinational() bool { return false }
func (n *MemoryNode) AssertValid() error  { return nil }
func (n *MemoryNode) CloneUnconnected() Node {
	return &MemoryNode{base: n.cloneBase(), WordWidth: n.WordWidth, Depth: n.Depth, Policy: n.Policy}
}

func (n *MemoryNode) Evaluate(ctx EvalContext) {
	st := ctx.State()
	if st.Mem == nil {
		st.Mem = NewMemoryStorage(n.Depth, n.WordWidth, n.Policy)
		for addr, v := range n.InitData {
			st.Mem.Write(uint64(addr), v)
		}
	}
	n.storage = st.Mem
}

// Storage returns the backing store once the simulator has evaluated the
// memory node at least once; used by read/write ports that need direct
// access rather than going through EvalContext.
func (n *MemoryNode) Storage() *MemoryStorage { return n.storage }

// ReadPortNode reads Memory at Address on every cycle; if Registered,
// the output is delayed one cycle behind the address (the shape
// memory-port inference looks for when fusing with a WritePortNode into
// a block-RAM primitive).
type ReadPortNode struct {
	base
	Memory     *MemoryNode
	Registered bool
	Clock      *Clock
}

// NewReadPortNode creates a read port of memory, addressed by
// addressWidth bits.
func NewReadPortNode(memory *MemoryNode, addressWidth int, registered bool, clk *Clock) *ReadPortNode {
	n := &ReadPortNode{Memory: memory, Registered: registered, Clock: clk}
	n.inputs = []InputPort{{Name: "address", Type: UInt(addressWidth)}}
	n.outputs = []OutputPort{{Name: "data", Type: BVec(memory.WordWidth)}}
	if registered {
		n.clocks = []*Clock{clk}
	}
	return n
}

func (n *ReadPortNode) TypeName() string    { return "ReadPort" }
func (n *ReadPortNode) Combinational() bool { return !n.Registered }
func (n *ReadPortNode) AssertValid() error  { return nil }
func (n *ReadPortNode) CloneUnconnected() Node {
	return &ReadPortNode{base: n.cloneBase(), Memory: n.Memory, Registered: n.Registered, Clock: n.Clock}
}

func (n *ReadPortNode) Evaluate(ctx EvalContext) {
	addr := ctx.ReadInput(0)
	st := ctx.State()
	if !n.Registered {
		if !addr.AllDefined() {
			ctx.WriteOutput(0, NewBitVector(n.Memory.WordWidth))
			return
		}
		ctx.WriteOutput(0, n.Memory.Storage().Read(addr.Uint64()))
		return
	}
	if st.Current.Width == 0 {
		st.Current = NewBitVector(n.Memory.WordWidth)
	}
	if ctx.ClockEdge(n.Clock) {
		if addr.AllDefined() {
			st.Current = n.Memory.Storage().Read(addr.Uint64())
		} else {
			st.Current = NewBitVector(n.Memory.WordWidth)
		}
	}
	ctx.WriteOutput(0, st.Current)
}

// WritePortNode writes Memory at Address with Data whenever WriteEnable
// is asserted on Clock's active edge.
type WritePortNode struct {
	base
	Memory *MemoryNode
	Clock  *Clock
}

// NewWritePortNode creates a write port of memory, addressed by
// addressWidth bits.
func NewWritePortNode(memory *MemoryNode, addressWidth int, clk *Clock) *WritePortNode {
	n := &WritePortNode{Memory: memory, Clock: clk}
	n.inputs = []InputPort{
		{Name: "address", Type: UInt(addressWidth)},
		{Name: "data", Type: BVec(memory.WordWidth)},
		{Name: "writeEnable", Type: Bit()},
	}
	n.clocks = []*Clock{clk}
	return n
}

func (n *WritePortNode) TypeName() string    { return "WritePort" }
func (n *WritePortNode) Combinational() bool { return false }
func (n *WritePortNode) AssertValid() error  { return nil }
func (n *WritePortNode) CloneUnconnected() Node {
	return &WritePortNode{base: n.cloneBase(), Memory: n.Memory, Clock: n.Clock}
}

func (n *WritePortNode) Evaluate(ctx EvalContext) {
	if !ctx.ClockEdge(n.Clock) {
		return
	}
	we, wed := ctx.ReadInput(2).Bit(0)
	if !wed || !we {
		return
	}
	addr := ctx.ReadInput(0)
	if !addr.AllDefined() {
		return
	}
	n.Memory.Storage().Write(addr.Uint64(), ctx.ReadInput(1))
}

// RMWPortNode is a single port used for both read and write in the same
// cycle (read-modify-write), with a configurable collision policy that
// orders the port's own read and write of its address on a clock edge.
type RMWPortNode struct {
	base
	Memory   *MemoryNode
	Clock    *Clock
	Policy   CollisionPolicy
}

// NewRMWPortNode creates a combined read/write port.
func NewRMWPortNode(memory *MemoryNode, addressWidth int, clk *Clock, policy CollisionPolicy) *RMWPortNode {
	n := &RMWPortNode{Memory: memory, Clock: clk, Policy: policy}
	n.inputs = []InputPort{
		{Name: "address", Type: UInt(addressWidth)},
		{Name: "data", Type: BVec(memory.WordWidth)},
		{Name: "writeEnable", Type: Bit()},
	}
	n.outputs = []OutputPort{{Name: "readData", Type: BVec(memory.WordWidth)}}
	n.clocks = []*Clock{clk}
	return n
}

func (n *RMWPortNode) TypeName() string    { return "ReadModifyWritePort" }
func (n *RMWPortNode) Combinational() bool { return false }
func (n *RMWPortNode) AssertValid() error  { return nil }
func (n *RMWPortNode) CloneUnconnected() Node {
	return &RMWPortNode{base: n.cloneBase(), Memory: n.Memory, Clock: n.Clock, Policy: n.Policy}
}

func (n *RMWPortNode) Evaluate(ctx EvalContext) {
	st := ctx.State()
	if st.Current.Width == 0 {
		st.Current = NewBitVector(n.Memory.WordWidth)
	}
	if !ctx.ClockEdge(n.Clock) {
		ctx.WriteOutput(0, st.Current)
		return
	}

	addr := ctx.ReadInput(0)
	we, wed := ctx.ReadInput(2).Bit(0)

	switch n.Policy {
	case ReadBeforeWrite:
		if addr.AllDefined() {
			st.Current = n.Memory.Storage().Read(addr.Uint64())
		}
		if wed && we && addr.AllDefined() {
			n.Memory.Storage().Write(addr.Uint64(), ctx.ReadInput(1))
		}
	case WriteBeforeRead:
		if wed && we && addr.AllDefined() {
			n.Memory.Storage().Write(addr.Uint64(), ctx.ReadInput(1))
		}
		if addr.AllDefined() {
			st.Current = n.Memory.Storage().Read(addr.Uint64())
		}
	default: // DontCareCollision: implementation picks read-before-write
		if addr.AllDefined() {
			st.Current = n.Memory.Storage().Read(addr.Uint64())
		}
		if wed && we && addr.AllDefined() {
			n.Memory.Storage().Write(addr.Uint64(), ctx.ReadInput(1))
		}
	}
	ctx.WriteOutput(0, st.Current)
}
