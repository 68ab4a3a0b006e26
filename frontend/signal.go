package frontend

import "github.com/sarchlab/gatery-go/hlim"

// Signal is the common capability every typed value wrapper implements:
// a reference to the single output port it currently stands for, plus
// its compile-time connection type.
type Signal interface {
	Ref() hlim.PortRef
	Type() hlim.ConnectionType
}

// Bit is a single-wire value with ownership-semantic assignment: calling
// Assign rebinds the receiver to a new node rather than mutating the
// node it used to reference.
type Bit struct {
	ref hlim.PortRef
}

// NewBit declares an unconnected Bit signal.
func NewBit() Bit {
	b := C()
	id := b.create(hlim.NewSignalNode(hlim.Bit()))
	return Bit{ref: hlim.PortRef{Node: id}}
}

// BitFrom wraps an existing output port as a Bit, used internally by
// operators and by pins/registers.
func BitFrom(ref hlim.PortRef) Bit { return Bit{ref: ref} }

func (s Bit) Ref() hlim.PortRef            { return s.ref }
func (Bit) Type() hlim.ConnectionType      { return hlim.Bit() }
func (s Bit) Name(name string) Bit         { setDebugName(s.ref, name); return s }

// ConstBit creates a defined Bit constant.
func ConstBit(v bool) Bit {
	b := C()
	bit := uint64(0)
	if v {
		bit = 1
	}
	id := b.create(hlim.NewConstantNode(hlim.Bit(), hlim.NewDefinedBitVector(1, bit)))
	return Bit{ref: hlim.PortRef{Node: id}}
}

// Assign rebinds the receiver per the assignment rule: a
// direct rebind outside any conditional scope, or a multiplexer against
// the prior value inside one.
func (s *Bit) Assign(v Bit) {
	s.ref = C().assign(hlim.Bit(), s.ref, v.ref)
}

func (s Bit) binOp(op hlim.BinOp, other Bit) Bit {
	b := C()
	id := b.create(hlim.NewBinaryNode(op, hlim.Bit(), hlim.Bit()))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(other.ref, hlim.PortRef{Node: id}, 1))
	return Bit{ref: hlim.PortRef{Node: id}}
}

func (s Bit) And(o Bit) Bit { return s.binOp(hlim.OpAnd, o) }
func (s Bit) Or(o Bit) Bit  { return s.binOp(hlim.OpOr, o) }
func (s Bit) Xor(o Bit) Bit { return s.binOp(hlim.OpXor, o) }
func (s Bit) Eq(o Bit) Bit  { return s.binOp(hlim.OpEq, o) }
func (s Bit) Ne(o Bit) Bit  { return s.binOp(hlim.OpNe, o) }

// Not returns the bitwise complement.
func (s Bit) Not() Bit {
	b := C()
	id := b.create(hlim.NewUnaryNode(hlim.Bit(), false))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	return Bit{ref: hlim.PortRef{Node: id}}
}

// Mux selects whenTrue if sel is asserted, else whenFalse — the explicit
// primitive behind IF/ELSE's commit, usable directly for one-off
// selection without a conditional scope.
func Mux[T Signal](sel Bit, whenFalse, whenTrue T) T {
	b := C()
	t := whenTrue.Type()
	id := b.create(hlim.NewMuxNode(t))
	must(b.Circuit.ConnectReplace(sel.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(whenFalse.Ref(), hlim.PortRef{Node: id}, 1))
	must(b.Circuit.ConnectReplace(whenTrue.Ref(), hlim.PortRef{Node: id}, 2))
	return fromRef[T](hlim.PortRef{Node: id}, t)
}

// fromRef constructs a T (one of Bit/UInt/SInt/BVec) wrapping ref; it is
// the generic counterpart of BitFrom/UIntFrom/... used by Mux.
func fromRef[T Signal](ref hlim.PortRef, t hlim.ConnectionType) T {
	var zero T
	switch any(zero).(type) {
	case Bit:
		return any(Bit{ref: ref}).(T)
	case UInt:
		return any(UInt{ref: ref, width: t.Width}).(T)
	case SInt:
		return any(SInt{ref: ref, width: t.Width}).(T)
	case BVec:
		return any(BVec{ref: ref, width: t.Width}).(T)
	default:
		panic("frontend: Mux over unsupported signal type")
	}
}

func setDebugName(ref hlim.PortRef, name string) {
	// Debug names are attached to the node producing ref, not the port
	// itself, matching the per-node DebugInfo.
	C().Circuit.SetName(ref.Node, name)
}
