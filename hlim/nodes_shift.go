package hlim

// ShiftKind enumerates the length-preserving bit-movement operators:
// shift (fills per signedness), and rotate (fill-free). These share one
// node family parameterized by kind and direction rather than four
// unrelated node types.
type ShiftKind int

const (
	ShiftLogicalLeft ShiftKind = iota
	ShiftLogicalRight
	ShiftArithRight
	RotateLeft
	RotateRight
)

// ShiftNode implements <<, >>, rotl, rotr. Input 0 is the data operand,
// input 1 is the shift amount (a plain unsigned vector); the amount may
// be a constant or a dynamic signal, in which case the node lowers to a
// shifter-plus-mask evaluation rather than a static bit move.
type ShiftNode struct {
	base
	Kind ShiftKind
}

// NewShiftNode creates a shift/rotate node of connection type t, with an
// amount operand of amountWidth bits.
func NewShiftNode(kind ShiftKind, t ConnectionType, amountWidth int) *ShiftNode {
	n := &ShiftNode{Kind: kind}
	n.inputs = []InputPort{
		{Name: "data", Type: t},
		{Name: "amount", Type: UInt(amountWidth)},
	}
	n.outputs = []OutputPort{{Name: "out", Type: t}}
	return n
}

func (n *ShiftNode) TypeName() string {
	switch n.Kind {
	case ShiftLogicalLeft:
		return "ShiftLeft"
	case ShiftLogicalRight:
		return "ShiftRightLogical"
	case ShiftArithRight:
		return "ShiftRightArithmetic"
	case RotateLeft:
		return "RotateLeft"
	default:
		return "RotateRight"
	}
}
func (n *ShiftNode) Combinational() bool { return true }
func (n *ShiftNode) AssertValid() error  { return nil }
func (n *ShiftNode) CloneUnconnected() Node {
	return &ShiftNode{base: n.cloneBase(), Kind: n.Kind}
}

func (n *ShiftNode) Evaluate(ctx EvalContext) {
	data := ctx.ReadInput(0)
	amount := ctx.ReadInput(1)
	width := data.Width

	// Shifting by the operand width yields all-fill bits.
	if !amount.AllDefined() {
		ctx.WriteOutput(0, NewBitVector(width))
		return
	}
	amt := int(amount.Uint64())

	out := NewBitVector(width)
	switch n.Kind {
	case ShiftLogicalLeft:
		for i := 0; i < width; i++ {
			if i-amt >= 0 && i-amt < width {
				v, d := data.Bit(i - amt)
				out.SetBitValue(i, v, d)
			} else {
				out.SetBitValue(i, false, true) // zero fill
			}
		}
	case ShiftLogicalRight:
		for i := 0; i < width; i++ {
			if i+amt < width {
				v, d := data.Bit(i + amt)
				out.SetBitValue(i, v, d)
			} else {
				out.SetBitValue(i, false, true) // zero fill
			}
		}
	case ShiftArithRight:
		signV, signD := data.Bit(width - 1)
		for i := 0; i < width; i++ {
			if i+amt < width {
				v, d := data.Bit(i + amt)
				out.SetBitValue(i, v, d)
			} else {
				out.SetBitValue(i, signV, signD) // sign fill
			}
		}
	case RotateLeft:
		shift := ((amt % width) + width) % width
		for i := 0; i < width; i++ {
			src := ((i - shift) % width + width) % width
			v, d := data.Bit(src)
			out.SetBitValue(i, v, d)
		}
	case RotateRight:
		shift := ((amt % width) + width) % width
		for i := 0; i < width; i++ {
			src := ((i + shift) % width + width) % width
			v, d := data.Bit(src)
			out.SetBitValue(i, v, d)
		}
	}
	ctx.WriteOutput(0, out)
}

// ExtendKind enumerates the extension modes; ext chooses Zero or
// Sign based on the operand's signedness at frontend construction time.
type ExtendKind int

const (
	ExtendZero ExtendKind = iota
	ExtendSign
	ExtendOne
)

// ExtendNode widens a value, filling the new high bits per Kind
// (zext/sext/oext/ext).
type ExtendNode struct {
	base
	Kind ExtendKind
}

// NewExtendNode creates an extend node from inType to a wider outType.
func NewExtendNode(kind ExtendKind, inType, outType ConnectionType) *ExtendNode {
	if outType.Width < inType.Width {
		panic("hlim: ExtendNode must widen, not narrow")
	}
	n := &ExtendNode{Kind: kind}
	n.inputs = []InputPort{{Name: "in", Type: inType}}
	n.outputs = []OutputPort{{Name: "out", Type: outType}}
	return n
}

func (n *ExtendNode) TypeName() string { return "Extend" }
func (n *ExtendNode) Combinational() bool { return true }
func (n *ExtendNode) AssertValid() error  { return nil }
func (n *ExtendNode) CloneUnconnected() Node {
	return &ExtendNode{base: n.cloneBase(), Kind: n.Kind}
}

func (n *ExtendNode) Evaluate(ctx EvalContext) {
	in := ctx.ReadInput(0)
	outWidth := n.outputs[0].Type.Width
	out := NewBitVector(outWidth)
	for i := 0; i < in.Width; i++ {
		v, d := in.Bit(i)
		out.SetBitValue(i, v, d)
	}
	var fillV, fillD bool
	switch n.Kind {
	case ExtendZero:
		fillV, fillD = false, true
	case ExtendOne:
		fillV, fillD = true, true
	case ExtendSign:
		fillV, fillD = in.Bit(in.Width - 1)
	}
	for i := in.Width; i < outWidth; i++ {
		out.SetBitValue(i, fillV, fillD)
	}
	ctx.WriteOutput(0, out)
}

// ConcatNode implements cat (first argument MSB) and pack (first
// argument LSB); the two orders are a load-bearing convention
// and must never be unified into one default.
type ConcatNode struct {
	base
	FirstIsLSB bool // false = cat semantics, true = pack semantics
}

// NewConcatNode creates a concatenation node over operandTypes, with the
// given ordering convention.
func NewConcatNode(operandTypes []ConnectionType, outType ConnectionType, firstIsLSB bool) *ConcatNode {
	n := &ConcatNode{FirstIsLSB: firstIsLSB}
	for i, t := range operandTypes {
		n.inputs = append(n.inputs, InputPort{Name: portName(i), Type: t})
	}
	n.outputs = []OutputPort{{Name: "out", Type: outType}}
	return n
}

func portName(i int) string {
	names := "abcdefghijklmnopqrstuvwxyz"
	if i < len(names) {
		return string(names[i])
	}
	return "operand"
}

func (n *ConcatNode) TypeName() string {
	if n.FirstIsLSB {
		return "Pack"
	}
	return "Concat"
}
func (n *ConcatNode) Combinational() bool { return true }
func (n *ConcatNode) AssertValid() error  { return nil }
func (n *ConcatNode) CloneUnconnected() Node {
	return &ConcatNode{base: n.cloneBase(), FirstIsLSB: n.FirstIsLSB}
}

func (n *ConcatNode) Evaluate(ctx EvalContext) {
	outWidth := n.outputs[0].Type.Width
	out := NewBitVector(outWidth)
	pos := 0
	order := make([]int, len(n.inputs))
	for i := range order {
		order[i] = i
	}
	if !n.FirstIsLSB {
		// cat: first argument occupies the most-significant bits, so we
		// lay out from the last argument (LSB) to the first (MSB).
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	for _, idx := range order {
		v := ctx.ReadInput(idx)
		for i := 0; i < v.Width; i++ {
			bv, bd := v.Bit(i)
			out.SetBitValue(pos, bv, bd)
			pos++
		}
	}
	ctx.WriteOutput(0, out)
}

// SliceNode extracts a contiguous range of bits. A constant slice has a
// fixed Offset; a dynamic slice reads its offset from an extra input
// (index len(inputs)-1) and lowers to a shift-then-mask evaluation.
type SliceNode struct {
	base
	Offset  int // used when !Dynamic
	Dynamic bool
}

// NewSliceNode creates a constant-offset slice node.
func NewSliceNode(t ConnectionType, offset, width int) *SliceNode {
	n := &SliceNode{Offset: offset}
	n.inputs = []InputPort{{Name: "in", Type: t}}
	n.outputs = []OutputPort{{Name: "out", Type: ConnectionType{Kind: t.Kind, Width: width}}}
	return n
}

// NewDynamicSliceNode creates a slice node whose offset is itself a
// signal, read from the second input.
func NewDynamicSliceNode(t ConnectionType, offsetWidth, width int) *SliceNode {
	n := &SliceNode{Dynamic: true}
	n.inputs = []InputPort{
		{Name: "in", Type: t},
		{Name: "offset", Type: UInt(offsetWidth)},
	}
	n.outputs = []OutputPort{{Name: "out", Type: ConnectionType{Kind: t.Kind, Width: width}}}
	return n
}

func (n *SliceNode) TypeName() string    { return "Slice" }
func (n *SliceNode) Combinational() bool { return true }
func (n *SliceNode) AssertValid() error  { return nil }
func (n *SliceNode) CloneUnconnected() Node {
	return &SliceNode{base: n.cloneBase(), Offset: n.Offset, Dynamic: n.Dynamic}
}

func (n *SliceNode) Evaluate(ctx EvalContext) {
	in := ctx.ReadInput(0)
	offset := n.Offset
	if n.Dynamic {
		off := ctx.ReadInput(1)
		if !off.AllDefined() {
			ctx.WriteOutput(0, NewBitVector(n.outputs[0].Type.Width))
			return
		}
		offset = int(off.Uint64())
	}
	outWidth := n.outputs[0].Type.Width
	out := NewBitVector(outWidth)
	for i := 0; i < outWidth; i++ {
		src := offset + i
		if src >= 0 && src < in.Width {
			v, d := in.Bit(src)
			out.SetBitValue(i, v, d)
		}
	}
	ctx.WriteOutput(0, out)
}
