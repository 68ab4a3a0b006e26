package stream

import (
	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

// DualClockFIFO crosses a push side clocked by WriteClock and a pop
// side clocked by ReadClock. Each side's pointer is Gray-coded before
// crossing through a two-flop CDCNode synchroniser (adjacent Gray
// values differ in exactly one bit, so a synchroniser sampling mid-
// transition still lands on either the old or the new value, never a
// spurious third one) and converted back to binary immediately after
// the crossing for the occupancy comparison on the receiving side.
// Depth must be a power of two, the same constraint plain binary
// pointer wraparound needs in TransactionalFIFO.
type DualClockFIFO struct {
	depth uint64
	k     int

	writePtr, readPtr frontend.UInt
	full, empty       frontend.Bit
	head              frontend.BVec

	PushReady frontend.Bit
	Pop       Stream[frontend.BVec]
}

// NewDualClockFIFO builds a depth-element, width-bit fifo whose push
// side runs on writeClk and pop side on readClk.
func NewDualClockFIFO(
	width int, depth uint64, writeClk, readClk *hlim.Clock,
	push Stream[frontend.BVec], popReady frontend.Bit,
) *DualClockFIFO {
	if depth == 0 || depth&(depth-1) != 0 {
		panic("stream: dual-clock fifo depth must be a power of two")
	}
	k := bitsFor(depth)
	ptrWidth := k + 1
	one := frontend.UIntLit(ptrWidth, 1)
	depthLit := frontend.UIntLit(ptrWidth, depth)
	zeroLit := frontend.UIntLit(ptrWidth, 0)
	zeroReset := frontend.UIntLit(ptrWidth, 0)

	mem := frontend.NewMem(width, depth)

	wShape := frontend.NewUInt(ptrWidth)
	wptr, commitWptr := frontend.RegFeedback[frontend.UInt](wShape, frontend.Bit{}, false, zeroReset, true, false, writeClk)
	rShape := frontend.NewUInt(ptrWidth)
	rptr, commitRptr := frontend.RegFeedback[frontend.UInt](rShape, frontend.Bit{}, false, zeroReset, true, false, readClk)

	rptrGray := BinaryToGray(rptr)
	rptrGraySync := frontend.CDC[frontend.UInt](rptrGray, readClk, writeClk, hlim.CDCGrayPointer)
	rptrBinSync := GrayToBinary(rptrGraySync)
	full := wptr.Sub(rptrBinSync).Eq(depthLit)

	wptrGray := BinaryToGray(wptr)
	wptrGraySync := frontend.CDC[frontend.UInt](wptrGray, writeClk, readClk, hlim.CDCGrayPointer)
	wptrBinSync := GrayToBinary(wptrGraySync)
	empty := wptrBinSync.Sub(rptr).Eq(zeroLit)

	pushReady := full.Not()
	pushTransfer := push.ValidSignal().And(pushReady)
	popTransfer := empty.Not().And(popReady)

	commitWptr(frontend.Mux(pushTransfer, wptr, wptr.Add(one)))
	commitRptr(frontend.Mux(popTransfer, rptr, rptr.Add(one)))

	writeAddr := frontend.UIntFromRef(wptr.Slice(0, k).Ref(), k)
	readAddr := frontend.UIntFromRef(rptr.Slice(0, k).Ref(), k)
	mem.WritePort(writeAddr, push.Payload, pushTransfer, writeClk)
	head := mem.ReadPort(readAddr, false, readClk)

	f := &DualClockFIFO{
		depth: depth, k: k,
		writePtr: wptr, readPtr: rptr,
		full: full, empty: empty, head: head,
		PushReady: pushReady,
	}
	f.Pop = New(head).WithValid(empty.Not())
	return f
}

// Full is the write-clock-domain full flag.
func (f *DualClockFIFO) Full() frontend.Bit { return f.full }

// Empty is the read-clock-domain empty flag.
func (f *DualClockFIFO) Empty() frontend.Bit { return f.empty }
