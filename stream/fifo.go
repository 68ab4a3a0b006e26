package stream

import (
	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

// FIFO is a single-clock first-in-first-out queue of fixed-width
// elements, backed by a frontend.Mem block and a pair of wrapping
// pointer registers. Construct it with NewFIFO, which wires the
// producer and consumer sides together in one pass; the returned FIFO
// exposes the resulting occupancy flags.
type FIFO struct {
	clk   *hlim.Clock
	depth uint64
	width int

	writePtr frontend.UInt
	readPtr  frontend.UInt
	count    frontend.UInt

	full  frontend.Bit
	empty frontend.Bit
	head  frontend.BVec

	// PushReady is asserted whenever the fifo will accept a push this
	// cycle; wire it back to the producer's Ready.
	PushReady frontend.Bit
	// Pop is the consumer-facing stream: Valid follows !empty, Payload
	// is the head element, read in the same cycle as the pointer that
	// addresses it (ReadPort is combinational/fallthrough here).
	Pop Stream[frontend.BVec]
}

// NewFIFO builds a depth-element, width-bit fifo clocked by clk. push is
// the producer's stream (Payload + Valid); popReady is the consumer's
// Ready, supplied by the caller since the fifo's own occupancy flags
// depend on both sides of the handshake in the same cycle.
func NewFIFO(width int, depth uint64, clk *hlim.Clock, push Stream[frontend.BVec], popReady frontend.Bit) *FIFO {
	if depth == 0 {
		panic("stream: fifo depth must be at least 1")
	}
	f := &FIFO{clk: clk, depth: depth, width: width}

	ptrWidth := bitsFor(depth)
	countWidth := bitsFor(depth + 1)
	one := frontend.UIntLit(ptrWidth, 1)
	countOne := frontend.UIntLit(countWidth, 1)
	lastIdx := frontend.UIntLit(ptrWidth, depth-1)

	mem := frontend.NewMem(width, depth)

	wptrShape := frontend.NewUInt(ptrWidth)
	wptr, commitWptr := frontend.RegFeedback[frontend.UInt](wptrShape, frontend.Bit{}, false, frontend.UIntLit(ptrWidth, 0), true, false, clk)
	rptrShape := frontend.NewUInt(ptrWidth)
	rptr, commitRptr := frontend.RegFeedback[frontend.UInt](rptrShape, frontend.Bit{}, false, frontend.UIntLit(ptrWidth, 0), true, false, clk)
	countShape := frontend.NewUInt(countWidth)
	count, commitCount := frontend.RegFeedback[frontend.UInt](countShape, frontend.Bit{}, false, frontend.UIntLit(countWidth, 0), true, false, clk)

	full := count.Eq(frontend.UIntLit(countWidth, depth))
	empty := count.Eq(frontend.UIntLit(countWidth, 0))

	pushReady := full.Not()
	pushTransfer := push.ValidSignal().And(pushReady)
	popTransfer := empty.Not().And(popReady)

	wptrNext := frontend.Mux(wptr.Eq(lastIdx), wptr.Add(one), frontend.UIntLit(ptrWidth, 0))
	commitWptr(frontend.Mux(pushTransfer, wptr, wptrNext))

	rptrNext := frontend.Mux(rptr.Eq(lastIdx), rptr.Add(one), frontend.UIntLit(ptrWidth, 0))
	commitRptr(frontend.Mux(popTransfer, rptr, rptrNext))

	incOnly := pushTransfer.And(popTransfer.Not())
	decOnly := popTransfer.And(pushTransfer.Not())
	afterInc := frontend.Mux(incOnly, count, count.Add(countOne))
	afterDec := frontend.Mux(decOnly, afterInc, count.Sub(countOne))
	commitCount(afterDec)

	mem.WritePort(wptr, push.Payload, pushTransfer, clk)
	head := mem.ReadPort(rptr, false, clk)

	f.writePtr, f.readPtr, f.count = wptr, rptr, count
	f.full, f.empty, f.head = full, empty, head
	f.PushReady = pushReady
	f.Pop = New(head).WithValid(empty.Not())
	return f
}

// Full reports the level-accurate full flag.
func (f *FIFO) Full() frontend.Bit { return f.full }

// Empty reports the level-accurate empty flag.
func (f *FIFO) Empty() frontend.Bit { return f.empty }

// Count returns the current occupancy.
func (f *FIFO) Count() frontend.UInt { return f.count }

// Peek returns the head element without popping it.
func (f *FIFO) Peek() frontend.BVec { return f.head }

// AlmostFull reports whether occupancy is at least depth-n.
func (f *FIFO) AlmostFull(n uint64) frontend.Bit {
	threshold := frontend.UIntLit(f.count.Width(), f.depth-n)
	return f.count.Ge(threshold)
}

// AlmostEmpty reports whether occupancy is at most n.
func (f *FIFO) AlmostEmpty(n uint64) frontend.Bit {
	threshold := frontend.UIntLit(f.count.Width(), n)
	return f.count.Le(threshold)
}
