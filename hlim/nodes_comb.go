package hlim

import "math/big"

// BinOp enumerates the binary combinational operators.
type BinOp int

const (
	OpAnd BinOp = iota
	OpOr
	OpXor
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
)

// ConstantNode is a literal value with no inputs.
type ConstantNode struct {
	base
	Value BitVector
}

// NewConstantNode creates a constant node of the given connection type.
func NewConstantNode(t ConnectionType, v BitVector) *ConstantNode {
	n := &ConstantNode{Value: v}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	return n
}

func (n *ConstantNode) TypeName() string   { return "Constant" }
func (n *ConstantNode) Combinational() bool { return true }
func (n *ConstantNode) AssertValid() error  { return nil }
func (n *ConstantNode) Evaluate(ctx EvalContext) { ctx.WriteOutput(0, n.Value) }
func (n *ConstantNode) CloneUnconnected() Node {
	c := &ConstantNode{base: n.cloneBase(), Value: n.Value.Clone()}
	return c
}

// UnaryNode is bitwise NOT or arithmetic negate, element-wise over the
// single operand; result width equals operand width.
type UnaryNode struct {
	base
	Negate bool // false = bitwise NOT, true = two's-complement negate
}

// NewUnaryNode creates a one-input combinational node of type t.
func NewUnaryNode(t ConnectionType, negate bool) *UnaryNode {
	n := &UnaryNode{Negate: negate}
	n.inputs = []InputPort{{Name: "in", Type: t}}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	return n
}

func (n *UnaryNode) TypeName() string {
	if n.Negate {
		return "Negate"
	}
	return "Not"
}
func (n *UnaryNode) Combinational() bool { return true }
func (n *UnaryNode) AssertValid() error  { return nil }

func (n *UnaryNode) Evaluate(ctx EvalContext) {
	a := ctx.ReadInput(0)
	out := NewBitVector(a.Width)
	for i := 0; i < a.Width; i++ {
		v, d := a.Bit(i)
		if !n.Negate {
			out.SetBitValue(i, !v, d)
		}
	}
	if n.Negate {
		out = arithNegate(a)
	}
	ctx.WriteOutput(0, out)
}

func (n *UnaryNode) CloneUnconnected() Node {
	return &UnaryNode{base: n.cloneBase(), Negate: n.Negate}
}

func arithNegate(a BitVector) BitVector {
	if !a.AllDefined() {
		return NewBitVector(a.Width)
	}
	r := new(big.Int).Neg(wordsToBig(a.Value, a.Width))
	return bigToBitVector(r, a.Width)
}

// BinaryNode is a two-operand combinational operator. Bitwise and
// arithmetic operators require equal operand widths and produce a
// result of that width (truncating for arithmetic); comparisons always
// produce Bit.
type BinaryNode struct {
	base
	Op     BinOp
	Signed bool
}

// NewBinaryNode creates a binary node; outType is Bit for comparisons,
// otherwise the common operand type.
func NewBinaryNode(op BinOp, operandType, outType ConnectionType) *BinaryNode {
	n := &BinaryNode{Op: op, Signed: operandType.Signed()}
	n.inputs = []InputPort{
		{Name: "a", Type: operandType},
		{Name: "b", Type: operandType},
	}
	n.outputs = []OutputPort{{Name: "out", Type: outType}}
	return n
}

func (n *BinaryNode) TypeName() string {
	names := map[BinOp]string{
		OpAnd: "And", OpOr: "Or", OpXor: "Xor", OpAdd: "Add", OpSub: "Sub",
		OpMul: "Mul", OpDiv: "Div", OpMod: "Mod", OpLt: "Lt", OpGt: "Gt",
		OpLe: "Le", OpGe: "Ge", OpEq: "Eq", OpNe: "Ne",
	}
	return names[n.Op]
}
func (n *BinaryNode) Combinational() bool { return true }
func (n *BinaryNode) AssertValid() error  { return nil }

func (n *BinaryNode) CloneUnconnected() Node {
	return &BinaryNode{base: n.cloneBase(), Op: n.Op, Signed: n.Signed}
}

func (n *BinaryNode) Evaluate(ctx EvalContext) {
	a := ctx.ReadInput(0)
	b := ctx.ReadInput(1)
	switch n.Op {
	case OpAnd:
		ctx.WriteOutput(0, bitwise(a, b, func(x, y bool) bool { return x && y }, func(x, y bool) bool {
			// AND with a defined-0 operand is defined-0 regardless of the other side.
			return true
		}, true))
	case OpOr:
		ctx.WriteOutput(0, bitwiseOr(a, b))
	case OpXor:
		ctx.WriteOutput(0, bitwise(a, b, func(x, y bool) bool { return x != y }, nil, false))
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		ctx.WriteOutput(0, arith(n.Op, a, b, n.Signed))
	default:
		ctx.WriteOutput(0, compare(n.Op, a, b, n.Signed))
	}
}

// bitwise computes an element-wise binary op with an optional dominant
// short-circuit rule (used by AND: a defined-0 operand forces defined-0
// even if the other operand is undefined, per the
// "undef & 0 = 0, undef & 1 = undef").
func bitwise(a, b BitVector, op func(x, y bool) bool, dominates func(x, y bool) bool, isAnd bool) BitVector {
	out := NewBitVector(a.Width)
	for i := 0; i < a.Width; i++ {
		av, ad := a.Bit(i)
		bv, bd := b.Bit(i)
		if isAnd {
			if ad && !av {
				out.SetBitValue(i, false, true)
				continue
			}
			if bd && !bv {
				out.SetBitValue(i, false, true)
				continue
			}
			if ad && bd {
				out.SetBitValue(i, av && bv, true)
				continue
			}
			out.SetBitValue(i, false, false)
			continue
		}
		if ad && bd {
			out.SetBitValue(i, op(av, bv), true)
		} else {
			out.SetBitValue(i, false, false)
		}
	}
	return out
}

func bitwiseOr(a, b BitVector) BitVector {
	out := NewBitVector(a.Width)
	for i := 0; i < a.Width; i++ {
		av, ad := a.Bit(i)
		bv, bd := b.Bit(i)
		if ad && av {
			out.SetBitValue(i, true, true)
			continue
		}
		if bd && bv {
			out.SetBitValue(i, true, true)
			continue
		}
		if ad && bd {
			out.SetBitValue(i, false, true)
			continue
		}
		out.SetBitValue(i, false, false)
	}
	return out
}

// arith implements +,-,*,/,% with full undefined propagation: any
// undefined input bit makes the whole result undefined. Division/modulo
// by a defined zero yields an undefined result rather than a crash.
// Operands are read word-by-word through math/big rather than
// Uint64(), so widths beyond 64 bits are handled exactly.
func arith(op BinOp, a, b BitVector, signed bool) BitVector {
	width := a.Width
	if !a.AllDefined() || !b.AllDefined() {
		return NewBitVector(width)
	}
	av, bv := operandBig(a, signed), operandBig(b, signed)
	var r *big.Int
	switch op {
	case OpAdd:
		r = new(big.Int).Add(av, bv)
	case OpSub:
		r = new(big.Int).Sub(av, bv)
	case OpMul:
		r = new(big.Int).Mul(av, bv)
	case OpDiv:
		if bv.Sign() == 0 {
			return NewBitVector(width)
		}
		r = new(big.Int).Quo(av, bv) // truncated toward zero, matching signed int division
	case OpMod:
		if bv.Sign() == 0 {
			return NewBitVector(width)
		}
		r = new(big.Int).Rem(av, bv) // sign follows the dividend, matching Go's %
	}
	return bigToBitVector(r, width)
}

// operandBig reads bv's words into a big.Int, interpreting it as
// two's-complement signed when signed is set.
func operandBig(bv BitVector, signed bool) *big.Int {
	u := wordsToBig(bv.Value, bv.Width)
	if !signed || bv.Width == 0 {
		return u
	}
	if sign, _ := bv.Bit(bv.Width - 1); sign {
		u.Sub(u, new(big.Int).Lsh(big.NewInt(1), uint(bv.Width)))
	}
	return u
}

// wordsToBig reassembles the little-endian word slice of a BitVector
// into an unsigned big.Int.
func wordsToBig(ws []uint64, width int) *big.Int {
	x := new(big.Int)
	for i := len(ws) - 1; i >= 0; i-- {
		x.Lsh(x, 64)
		x.Or(x, new(big.Int).SetUint64(ws[i]))
	}
	return x
}

// bigToBitVector packs r's low width bits (reduced modulo 2^width, so a
// negative or overflowing result wraps the same way fixed-width
// arithmetic does) into a fully-defined BitVector of that width.
func bigToBitVector(r *big.Int, width int) BitVector {
	out := NewBitVector(width)
	if width == 0 {
		return out
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	r = new(big.Int).Mod(r, mod) // Euclidean mod: always in [0, mod)
	for i := range out.Value {
		word := new(big.Int).And(r, bigWordMask)
		out.Value[i] = word.Uint64()
		r.Rsh(r, 64)
	}
	for i := range out.Defined {
		out.Defined[i] = ^uint64(0)
	}
	out.maskTop()
	return out
}

var bigWordMask = new(big.Int).SetUint64(^uint64(0))

func compare(op BinOp, a, b BitVector, signed bool) BitVector {
	if !a.AllDefined() || !b.AllDefined() {
		return NewBitVector(1)
	}
	av, bv := operandBig(a, signed), operandBig(b, signed)
	cmp := av.Cmp(bv)
	result := compareOrdered(op, cmp < 0, cmp > 0, cmp == 0)
	return NewDefinedBitVector(1, boolBit(result))
}

func compareOrdered(op BinOp, lt, gt, eq bool) bool {
	switch op {
	case OpLt:
		return lt
	case OpGt:
		return gt
	case OpLe:
		return lt || eq
	case OpGe:
		return gt || eq
	case OpEq:
		return eq
	case OpNe:
		return !eq
	}
	return false
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// MuxNode is a 2-to-1 multiplexer selecting between two data inputs
// based on a one-bit select, matching the
// lowering a ConditionalScope commits on scope-pop ( "conditional
// scopes"). Input order is [select, whenFalse, whenTrue].
type MuxNode struct {
	base
}

// NewMuxNode creates a 2-to-1 multiplexer of connection type t.
func NewMuxNode(t ConnectionType) *MuxNode {
	n := &MuxNode{}
	n.inputs = []InputPort{
		{Name: "select", Type: Bit()},
		{Name: "whenFalse", Type: t},
		{Name: "whenTrue", Type: t},
	}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	return n
}

func (n *MuxNode) TypeName() string    { return "Mux" }
func (n *MuxNode) Combinational() bool { return true }
func (n *MuxNode) AssertValid() error  { return nil }
func (n *MuxNode) CloneUnconnected() Node {
	return &MuxNode{base: n.cloneBase()}
}

func (n *MuxNode) Evaluate(ctx EvalContext) {
	sel := ctx.ReadInput(0)
	sv, sd := sel.Bit(0)
	if !sd {
		ctx.WriteOutput(0, NewBitVector(n.outputs[0].Type.Width))
		return
	}
	if sv {
		ctx.WriteOutput(0, ctx.ReadInput(2))
	} else {
		ctx.WriteOutput(0, ctx.ReadInput(1))
	}
}
