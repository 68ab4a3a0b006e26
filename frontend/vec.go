package frontend

import (
	"strconv"

	"github.com/sarchlab/gatery-go/hlim"
)

// UInt is an unsigned integer vector of a fixed width.
type UInt struct {
	ref   hlim.PortRef
	width int
}

// SInt is a signed (two's-complement) integer vector of a fixed width.
type SInt struct {
	ref   hlim.PortRef
	width int
}

// BVec is a raw bit vector of a fixed width carrying no arithmetic
// meaning.
type BVec struct {
	ref   hlim.PortRef
	width int
}

// NewUInt declares an unconnected UInt signal of the given width.
func NewUInt(width int) UInt {
	id := C().create(hlim.NewSignalNode(hlim.UInt(width)))
	return UInt{ref: hlim.PortRef{Node: id}, width: width}
}

// NewSInt declares an unconnected SInt signal of the given width.
func NewSInt(width int) SInt {
	id := C().create(hlim.NewSignalNode(hlim.SInt(width)))
	return SInt{ref: hlim.PortRef{Node: id}, width: width}
}

// NewBVec declares an unconnected BVec signal of the given width.
func NewBVec(width int) BVec {
	id := C().create(hlim.NewSignalNode(hlim.BVec(width)))
	return BVec{ref: hlim.PortRef{Node: id}, width: width}
}

func (s UInt) Ref() hlim.PortRef       { return s.ref }
func (s UInt) Type() hlim.ConnectionType { return hlim.UInt(s.width) }
func (s UInt) Width() int              { return s.width }

func (s SInt) Ref() hlim.PortRef       { return s.ref }
func (s SInt) Type() hlim.ConnectionType { return hlim.SInt(s.width) }
func (s SInt) Width() int              { return s.width }

func (s BVec) Ref() hlim.PortRef       { return s.ref }
func (s BVec) Type() hlim.ConnectionType { return hlim.BVec(s.width) }
func (s BVec) Width() int              { return s.width }

// UIntFromRef/SIntFromRef/BVecFromRef wrap an existing output port.
func UIntFromRef(ref hlim.PortRef, width int) UInt { return UInt{ref: ref, width: width} }
func SIntFromRef(ref hlim.PortRef, width int) SInt { return SInt{ref: ref, width: width} }
func BVecFromRef(ref hlim.PortRef, width int) BVec { return BVec{ref: ref, width: width} }

// minimalWidth returns the minimum number of bits needed to represent v
// unsigned, used to width-infer bare integer literals parsed from a
// string or a plain integer.
func minimalWidth(v uint64) int {
	if v == 0 {
		return 1
	}
	w := 0
	for v > 0 {
		w++
		v >>= 1
	}
	return w
}

// UIntLit creates an unsigned constant of the given width.
func UIntLit(width int, v uint64) UInt {
	id := C().create(hlim.NewConstantNode(hlim.UInt(width), hlim.NewDefinedBitVector(width, v)))
	return UInt{ref: hlim.PortRef{Node: id}, width: width}
}

// UIntLitInferred creates an unsigned constant whose width defaults to
// the minimum representable width.
func UIntLitInferred(v uint64) UInt { return UIntLit(minimalWidth(v), v) }

// UIntFromString parses a literal such as "42" or "0xFF" into a
// width-inferred UInt constant.
func UIntFromString(s string) (UInt, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return UInt{}, err
	}
	return UIntLitInferred(v), nil
}

// SIntLit creates a signed constant of the given width.
func SIntLit(width int, v int64) SInt {
	uv := uint64(v) & maskWidth(width)
	id := C().create(hlim.NewConstantNode(hlim.SInt(width), hlim.NewDefinedBitVector(width, uv)))
	return SInt{ref: hlim.PortRef{Node: id}, width: width}
}

func maskWidth(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(w)) - 1
}

// --- assignment ---

func (s *UInt) Assign(v UInt) { s.ref = C().assign(s.Type(), s.ref, v.ref) }
func (s *SInt) Assign(v SInt) { s.ref = C().assign(s.Type(), s.ref, v.ref) }
func (s *BVec) Assign(v BVec) { s.ref = C().assign(s.Type(), s.ref, v.ref) }

// --- arithmetic / logic (UInt) ---

func (s UInt) binary(op hlim.BinOp, o UInt) UInt {
	requireSameWidth(s.width, o.width)
	b := C()
	id := b.create(hlim.NewBinaryNode(op, s.Type(), s.Type()))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(o.ref, hlim.PortRef{Node: id}, 1))
	return UInt{ref: hlim.PortRef{Node: id}, width: s.width}
}

func (s UInt) compare(op hlim.BinOp, o UInt) Bit {
	requireSameWidth(s.width, o.width)
	b := C()
	id := b.create(hlim.NewBinaryNode(op, s.Type(), hlim.Bit()))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(o.ref, hlim.PortRef{Node: id}, 1))
	return Bit{ref: hlim.PortRef{Node: id}}
}

func (s UInt) Add(o UInt) UInt { return s.binary(hlim.OpAdd, o) }
func (s UInt) Sub(o UInt) UInt { return s.binary(hlim.OpSub, o) }
func (s UInt) Mul(o UInt) UInt { return s.binary(hlim.OpMul, o) }
func (s UInt) Div(o UInt) UInt { return s.binary(hlim.OpDiv, o) }
func (s UInt) Mod(o UInt) UInt { return s.binary(hlim.OpMod, o) }
func (s UInt) And(o UInt) UInt { return s.binary(hlim.OpAnd, o) }
func (s UInt) Or(o UInt) UInt  { return s.binary(hlim.OpOr, o) }
func (s UInt) Xor(o UInt) UInt { return s.binary(hlim.OpXor, o) }
func (s UInt) Lt(o UInt) Bit   { return s.compare(hlim.OpLt, o) }
func (s UInt) Gt(o UInt) Bit   { return s.compare(hlim.OpGt, o) }
func (s UInt) Le(o UInt) Bit   { return s.compare(hlim.OpLe, o) }
func (s UInt) Ge(o UInt) Bit   { return s.compare(hlim.OpGe, o) }
func (s UInt) Eq(o UInt) Bit   { return s.compare(hlim.OpEq, o) }
func (s UInt) Ne(o UInt) Bit   { return s.compare(hlim.OpNe, o) }

func (s SInt) binary(op hlim.BinOp, o SInt) SInt {
	requireSameWidth(s.width, o.width)
	b := C()
	id := b.create(hlim.NewBinaryNode(op, s.Type(), s.Type()))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(o.ref, hlim.PortRef{Node: id}, 1))
	return SInt{ref: hlim.PortRef{Node: id}, width: s.width}
}

func (s SInt) compare(op hlim.BinOp, o SInt) Bit {
	requireSameWidth(s.width, o.width)
	b := C()
	id := b.create(hlim.NewBinaryNode(op, s.Type(), hlim.Bit()))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(o.ref, hlim.PortRef{Node: id}, 1))
	return Bit{ref: hlim.PortRef{Node: id}}
}

func (s SInt) Add(o SInt) SInt { return s.binary(hlim.OpAdd, o) }
func (s SInt) Sub(o SInt) SInt { return s.binary(hlim.OpSub, o) }
func (s SInt) Mul(o SInt) SInt { return s.binary(hlim.OpMul, o) }
func (s SInt) Div(o SInt) SInt { return s.binary(hlim.OpDiv, o) }
func (s SInt) Mod(o SInt) SInt { return s.binary(hlim.OpMod, o) }
func (s SInt) Lt(o SInt) Bit   { return s.compare(hlim.OpLt, o) }
func (s SInt) Gt(o SInt) Bit   { return s.compare(hlim.OpGt, o) }
func (s SInt) Le(o SInt) Bit   { return s.compare(hlim.OpLe, o) }
func (s SInt) Ge(o SInt) Bit   { return s.compare(hlim.OpGe, o) }
func (s SInt) Eq(o SInt) Bit   { return s.compare(hlim.OpEq, o) }
func (s SInt) Ne(o SInt) Bit   { return s.compare(hlim.OpNe, o) }

func (s BVec) bitwise(op hlim.BinOp, o BVec) BVec {
	requireSameWidth(s.width, o.width)
	b := C()
	id := b.create(hlim.NewBinaryNode(op, s.Type(), s.Type()))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(o.ref, hlim.PortRef{Node: id}, 1))
	return BVec{ref: hlim.PortRef{Node: id}, width: s.width}
}

func (s BVec) And(o BVec) BVec { return s.bitwise(hlim.OpAnd, o) }
func (s BVec) Or(o BVec) BVec  { return s.bitwise(hlim.OpOr, o) }
func (s BVec) Xor(o BVec) BVec { return s.bitwise(hlim.OpXor, o) }

func requireSameWidth(a, b int) {
	if a != b {
		panic("frontend: operand widths must match")
	}
}

// --- shift / rotate (UInt, SInt share the lowering via ShiftNode) ---

func (s UInt) Shl(amount UInt) UInt { return UInt{ref: shiftRef(s.ref, s.Type(), amount, hlim.ShiftLogicalLeft), width: s.width} }
func (s UInt) Shr(amount UInt) UInt { return UInt{ref: shiftRef(s.ref, s.Type(), amount, hlim.ShiftLogicalRight), width: s.width} }
func (s SInt) Shl(amount UInt) SInt { return SInt{ref: shiftRef(s.ref, s.Type(), amount, hlim.ShiftLogicalLeft), width: s.width} }
func (s SInt) Shr(amount UInt) SInt { return SInt{ref: shiftRef(s.ref, s.Type(), amount, hlim.ShiftArithRight), width: s.width} }

func (s UInt) Rotl(amount UInt) UInt { return UInt{ref: shiftRef(s.ref, s.Type(), amount, hlim.RotateLeft), width: s.width} }
func (s UInt) Rotr(amount UInt) UInt { return UInt{ref: shiftRef(s.ref, s.Type(), amount, hlim.RotateRight), width: s.width} }

func shiftRef(data hlim.PortRef, t hlim.ConnectionType, amount UInt, kind hlim.ShiftKind) hlim.PortRef {
	b := C()
	id := b.create(hlim.NewShiftNode(kind, t, amount.width))
	must(b.Circuit.ConnectReplace(data, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(amount.ref, hlim.PortRef{Node: id}, 1))
	return hlim.PortRef{Node: id}
}

// --- extension ---

// Zext widens s with zero fill to newWidth.
func (s UInt) Zext(newWidth int) UInt { return UInt{ref: extendRef(s.ref, s.Type(), newWidth, hlim.ExtendZero), width: newWidth} }

// Sext widens s with sign fill to newWidth.
func (s SInt) Sext(newWidth int) SInt { return SInt{ref: extendRef(s.ref, s.Type(), newWidth, hlim.ExtendSign), width: newWidth} }

// Oext widens s with one fill to newWidth.
func (s BVec) Oext(newWidth int) BVec { return BVec{ref: extendRef(s.ref, s.Type(), newWidth, hlim.ExtendOne), width: newWidth} }

// Ext widens s, choosing zero or sign fill based on signedness.
func (s SInt) Ext(newWidth int) SInt { return s.Sext(newWidth) }
func (s UInt) Ext(newWidth int) UInt { return s.Zext(newWidth) }

func extendRef(in hlim.PortRef, t hlim.ConnectionType, newWidth int, kind hlim.ExtendKind) hlim.PortRef {
	b := C()
	outType := hlim.ConnectionType{Kind: t.Kind, Width: newWidth}
	id := b.create(hlim.NewExtendNode(kind, t, outType))
	must(b.Circuit.ConnectReplace(in, hlim.PortRef{Node: id}, 0))
	return hlim.PortRef{Node: id}
}

// --- slicing ---

// Slice extracts a constant-offset range [offset, offset+width) from s.
// The result keeps s's Kind at the hlim level (SliceNode cannot change
// Kind), so it remains connectable anywhere a same-width UInt is
// expected (e.g. as a memory address truncated from a wider pointer);
// use AsBVec first if the raw-bits operations (Cat, Pack, bitwise) are
// what the result is headed for.
func (s UInt) Slice(offset, width int) BVec {
	b := C()
	id := b.create(hlim.NewSliceNode(s.Type(), offset, width))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	return BVec{ref: hlim.PortRef{Node: id}, width: width}
}

// AsBVec reinterprets s as a same-width raw bit vector via an identity
// ExtendNode (extending to an equal width copies every bit and fills
// nothing, leaving only the Kind changed), so the result type-checks
// wherever a genuine BVec is expected: Cat, Pack, bitwise Xor/And/Or.
func (s UInt) AsBVec() BVec {
	b := C()
	id := b.create(hlim.NewExtendNode(hlim.ExtendZero, s.Type(), hlim.BVec(s.width)))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	return BVec{ref: hlim.PortRef{Node: id}, width: s.width}
}

// AsUInt is AsBVec's inverse: it reinterprets a raw bit vector, such as
// the result of Cat/Pack over address fields, as a same-width UInt so
// it connects where an arithmetic width (e.g. a memory address port)
// is expected.
func (s BVec) AsUInt() UInt {
	b := C()
	id := b.create(hlim.NewExtendNode(hlim.ExtendZero, s.Type(), hlim.UInt(s.width)))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	return UInt{ref: hlim.PortRef{Node: id}, width: s.width}
}

// DynamicSlice extracts a width-wide range starting at a runtime offset.
func (s BVec) DynamicSlice(offset UInt, width int) BVec {
	b := C()
	id := b.create(hlim.NewDynamicSliceNode(s.Type(), offset.width, width))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(offset.ref, hlim.PortRef{Node: id}, 1))
	return BVec{ref: hlim.PortRef{Node: id}, width: width}
}

// Slice extracts a constant-offset range [offset, offset+width) from a
// BVec, reinterpreting the result as a raw bit vector.
func (s BVec) Slice(offset, width int) BVec {
	b := C()
	id := b.create(hlim.NewSliceNode(s.Type(), offset, width))
	must(b.Circuit.ConnectReplace(s.ref, hlim.PortRef{Node: id}, 0))
	return BVec{ref: hlim.PortRef{Node: id}, width: width}
}

// --- concatenation ---

// Cat concatenates operands left-to-right with the first argument
// occupying the most-significant bits.
func Cat(operands ...BVec) BVec {
	return concat(operands, false)
}

// Pack concatenates operands with the first argument in the
// least-significant bits — the inverse of Cat's order. The two
// orderings are never unified; callers must pick the one their
// protocol or bus convention expects.
func Pack(operands ...BVec) BVec {
	return concat(operands, true)
}

func concat(operands []BVec, firstIsLSB bool) BVec {
	b := C()
	total := 0
	types := make([]hlim.ConnectionType, len(operands))
	for i, o := range operands {
		types[i] = o.Type()
		total += o.width
	}
	id := b.create(hlim.NewConcatNode(types, hlim.BVec(total), firstIsLSB))
	for i, o := range operands {
		must(b.Circuit.ConnectReplace(o.ref, hlim.PortRef{Node: id}, i))
	}
	return BVec{ref: hlim.PortRef{Node: id}, width: total}
}
