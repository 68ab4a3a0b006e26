package frontend

import "github.com/sarchlab/gatery-go/hlim"

// Mem is a hardware memory block: a fixed number of fixed-width words,
// addressed through ReadPort/WritePort/ReadModifyWritePort rather than
// read or written directly.
type Mem struct {
	node  *hlim.MemoryNode
	id    hlim.NodeID
	width int
	depth uint64
}

// NewMem declares a memory of depth words, each width bits wide.
func NewMem(width int, depth uint64) Mem {
	b := C()
	n := hlim.NewMemoryNode(width, depth, hlim.InitZero)
	id := b.create(n)
	return Mem{node: n, id: id, width: width, depth: depth}
}

// Width returns the word width in bits.
func (m Mem) Width() int { return m.width }

// Depth returns the number of addressable words.
func (m Mem) Depth() uint64 { return m.depth }

// ReadPort adds a read port at address, clocked by clk. When registered
// is true the output lags address by one cycle (the shape memory-port
// inference fuses with a WritePort into a single block-RAM primitive).
func (m Mem) ReadPort(address UInt, registered bool, clk *hlim.Clock) BVec {
	b := C()
	n := hlim.NewReadPortNode(m.node, address.width, registered, clk)
	id := b.create(n)
	must(b.Circuit.ConnectReplace(address.ref, hlim.PortRef{Node: id}, 0))
	return BVec{ref: hlim.PortRef{Node: id}, width: m.width}
}

// WritePort adds a write port clocked by clk: data is committed to
// address on clk's active edge whenever writeEnable is asserted.
func (m Mem) WritePort(address UInt, data BVec, writeEnable Bit, clk *hlim.Clock) {
	b := C()
	n := hlim.NewWritePortNode(m.node, address.width, clk)
	id := b.create(n)
	must(b.Circuit.ConnectReplace(address.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(data.ref, hlim.PortRef{Node: id}, 1))
	must(b.Circuit.ConnectReplace(writeEnable.ref, hlim.PortRef{Node: id}, 2))
}

// ReadModifyWritePort adds a combined read/write port, resolving
// same-cycle same-address access per policy.
func (m Mem) ReadModifyWritePort(address UInt, data BVec, writeEnable Bit, clk *hlim.Clock, policy hlim.CollisionPolicy) BVec {
	b := C()
	n := hlim.NewRMWPortNode(m.node, address.width, clk, policy)
	id := b.create(n)
	must(b.Circuit.ConnectReplace(address.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(data.ref, hlim.PortRef{Node: id}, 1))
	must(b.Circuit.ConnectReplace(writeEnable.ref, hlim.PortRef{Node: id}, 2))
	return BVec{ref: hlim.PortRef{Node: id}, width: m.width}
}
