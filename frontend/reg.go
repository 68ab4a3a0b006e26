package frontend

import "github.com/sarchlab/gatery-go/hlim"

// Reg creates an unconditioned register sampling data on the current
// (or explicit) clock, with no enable and no reset — the plain `reg(x)`
// form.
func Reg[T Signal](data T, clk ...*hlim.Clock) T {
	return regImpl(data, Bit{}, false, zeroOf(data), false, false, clk...)
}

// RegWithReset creates a register that synchronously loads resetValue
// whenever the current clock's ResetSignal is asserted — `reg(x, reset)`.
func RegWithReset[T Signal](data T, resetValue T, clk ...*hlim.Clock) T {
	return regImpl(data, Bit{}, false, resetValue, true, false, clk...)
}

// RegWithEnableReset creates a register with both a data enable and a
// synchronous reset — `reg(x, enable, reset)`.
func RegWithEnableReset[T Signal](data T, enable Bit, resetValue T, clk ...*hlim.Clock) T {
	return regImpl(data, enable, true, resetValue, true, false, clk...)
}

// RegHint creates a register marked as a retiming balancing candidate
// rather than a fixed pipeline barrier — `regHint(x)`, consumed by the
// hinted-retiming pass.
func RegHint[T Signal](data T, clk ...*hlim.Clock) T {
	return regImpl(data, Bit{}, false, zeroOf(data), false, true, clk...)
}

func zeroOf[T Signal](data T) T {
	var z T
	return z
}

func regImpl[T Signal](data T, enable Bit, hasEnable bool, resetValue T, hasReset bool, isHint bool, clk ...*hlim.Clock) T {
	out, commit := regSkeleton[T](data.Type(), enable, hasEnable, resetValue, hasReset, isHint, clk...)
	commit(data)
	return out
}

// RegFeedback creates a register whose data input is not wired yet,
// returning its output immediately (usable as the "current value" in a
// self-referencing expression) alongside a commit function that wires
// the data input once that expression has been built. This is the
// two-phase form self-assignment inside a loop needs: a plain reg(x)
// call cannot express "x" in terms of the register's own not-yet-built
// output, since the data argument must already exist as a Signal before
// the register does.
//
//	ptr := frontend.NewUInt(w)
//	current, commit := frontend.RegFeedback[frontend.UInt](ptr, frontend.Bit{}, false, frontend.UInt{}, false, false, clk)
//	commit(current.Add(one))
func RegFeedback[T Signal](shape T, enable Bit, hasEnable bool, resetValue T, hasReset bool, isHint bool, clk ...*hlim.Clock) (out T, commit func(T)) {
	return regSkeleton[T](shape.Type(), enable, hasEnable, resetValue, hasReset, isHint, clk...)
}

func regSkeleton[T Signal](t hlim.ConnectionType, enable Bit, hasEnable bool, resetValue T, hasReset bool, isHint bool, clk ...*hlim.Clock) (T, func(T)) {
	b := C()
	var explicit *hlim.Clock
	if len(clk) > 0 {
		explicit = clk[0]
	}
	c := resolveClock(explicit)

	rv := hlim.NewBitVector(t.Width)
	if hasReset {
		// The reset value must be a literal so its bits are known at
		// construction time; we recover it by looking through the
		// ConstantNode the literal constructors produce.
		if rref := resetValue.Ref(); rref.Valid() {
			if cn, ok := b.Circuit.Node(rref.Node).(*hlim.ConstantNode); ok {
				rv = cn.Value
			}
		}
	}

	n := hlim.NewRegisterNode(t, c, hasEnable, hasReset, rv)
	id := b.create(n)
	idx := 1
	if hasEnable {
		must(b.Circuit.ConnectReplace(enable.ref, hlim.PortRef{Node: id}, idx))
		idx++
	}
	if hasReset && c.ResetSignal.Valid() {
		// An unwired clock reset leaves the reset input unconnected, which
		// reads as undefined and so never fires at runtime; the register
		// still samples resetValue at t=0 regardless (RegisterNode's own
		// initial-value rule), so a reset-value register with no reset
		// signal wired yet is a deterministic-init register, not a bug.
		rst := Bit{ref: c.ResetSignal}
		if !c.ResetActive {
			rst = rst.Not()
		}
		must(b.Circuit.ConnectReplace(rst.ref, hlim.PortRef{Node: id}, idx))
	}
	n.IsHint = isHint

	out := fromRef[T](hlim.PortRef{Node: id}, t)
	commit := func(data T) {
		must(b.Circuit.ConnectReplace(data.Ref(), hlim.PortRef{Node: id}, 0))
	}
	return out, commit
}
