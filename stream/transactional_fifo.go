package stream

import (
	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

// TransactionalFIFO is a FIFO whose push and pop sides each carry a
// speculative cursor and a committed cursor: pushed/popped data is only
// exposed to the other side once CommitPush/CommitPop confirms it,
// and RollbackPush/RollbackPop rewinds the speculative cursor back to
// the last committed one for replay. Pointers carry one extra bit over
// the addressing width so plain unsigned wraparound (truncating add)
// gives correct modulo-2*depth arithmetic without an explicit compare,
// which requires depth to be a power of two.
type TransactionalFIFO struct {
	depth uint64
	k     int // address bits; pointer width is k+1

	specWrite, commitWrite frontend.UInt
	specRead, commitRead   frontend.UInt

	full  frontend.Bit
	empty frontend.Bit
	head  frontend.BVec

	PushReady frontend.Bit
	Pop       Stream[frontend.BVec]
}

// NewTransactionalFIFO builds a depth-element (depth must be a power of
// two), width-bit transactional fifo clocked by clk.
func NewTransactionalFIFO(
	width int, depth uint64, clk *hlim.Clock,
	push Stream[frontend.BVec], popReady frontend.Bit,
	commitPush, rollbackPush, commitPop, rollbackPop frontend.Bit,
) *TransactionalFIFO {
	if depth == 0 || depth&(depth-1) != 0 {
		panic("stream: transactional fifo depth must be a power of two")
	}
	k := bitsFor(depth)
	ptrWidth := k + 1
	one := frontend.UIntLit(ptrWidth, 1)
	depthLit := frontend.UIntLit(ptrWidth, depth)
	zeroLit := frontend.UIntLit(ptrWidth, 0)

	mem := frontend.NewMem(width, depth)

	wShape := frontend.NewUInt(ptrWidth)
	specWrite, commitSpecWrite := frontend.RegFeedback[frontend.UInt](wShape, frontend.Bit{}, false, zeroLit, true, false, clk)
	cwShape := frontend.NewUInt(ptrWidth)
	commitWrite, commitCommitWrite := frontend.RegFeedback[frontend.UInt](cwShape, frontend.Bit{}, false, zeroLit, true, false, clk)
	rShape := frontend.NewUInt(ptrWidth)
	specRead, commitSpecRead := frontend.RegFeedback[frontend.UInt](rShape, frontend.Bit{}, false, zeroLit, true, false, clk)
	crShape := frontend.NewUInt(ptrWidth)
	commitRead, commitCommitRead := frontend.RegFeedback[frontend.UInt](crShape, frontend.Bit{}, false, zeroLit, true, false, clk)

	full := specWrite.Sub(commitRead).Eq(depthLit)
	empty := commitWrite.Sub(specRead).Eq(zeroLit)

	pushReady := full.Not()
	pushTransfer := push.ValidSignal().And(pushReady)
	popTransfer := empty.Not().And(popReady)

	writeAdvance := frontend.Mux(pushTransfer, specWrite, specWrite.Add(one))
	commitSpecWrite(frontend.Mux(rollbackPush, writeAdvance, commitWrite))
	commitCommitWrite(frontend.Mux(commitPush, commitWrite, specWrite))

	readAdvance := frontend.Mux(popTransfer, specRead, specRead.Add(one))
	commitSpecRead(frontend.Mux(rollbackPop, readAdvance, commitRead))
	commitCommitRead(frontend.Mux(commitPop, commitRead, specRead))

	writeAddr := frontend.UIntFromRef(specWrite.Slice(0, k).Ref(), k)
	readAddr := frontend.UIntFromRef(specRead.Slice(0, k).Ref(), k)
	mem.WritePort(writeAddr, push.Payload, pushTransfer, clk)
	head := mem.ReadPort(readAddr, false, clk)

	f := &TransactionalFIFO{
		depth: depth, k: k,
		specWrite: specWrite, commitWrite: commitWrite,
		specRead: specRead, commitRead: commitRead,
		full: full, empty: empty, head: head,
		PushReady: pushReady,
	}
	f.Pop = New(head).WithValid(empty.Not())
	return f
}

// Full reports the write side's level-accurate full flag, computed
// against the committed read cursor (space it can't yet reuse because a
// rollback might still replay from there).
func (f *TransactionalFIFO) Full() frontend.Bit { return f.full }

// Empty reports the read side's level-accurate empty flag, computed
// against the committed write cursor (data it can't see yet because the
// writer hasn't confirmed it).
func (f *TransactionalFIFO) Empty() frontend.Bit { return f.empty }

// Peek returns the head element without popping it.
func (f *TransactionalFIFO) Peek() frontend.BVec { return f.head }
