package stream

import (
	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

// FIFOArray is a bank of lanes logical FIFOs, each perLaneDepth deep,
// sharing a single physical memory and a single push port and pop port.
// PushLane/PopLane select which logical fifo the shared ports address
// this cycle; a caller driving several independent streams through one
// physical RAM (e.g. per-priority queues feeding one arbiter) picks a
// lane per cycle rather than paying for lanes separate memories.
// perLaneDepth must be a power of two so a lane's shared-RAM address is
// simply Cat(lane, pointer); each pointer wraps by an explicit compare
// against the last index.
type FIFOArray struct {
	lanes         int
	perLaneDepth  uint64
	k             int // per-lane address bits
	writePtrs     []frontend.UInt
	readPtrs      []frontend.UInt
	counts        []frontend.UInt
	fulls, emptys []frontend.Bit
	head          frontend.BVec

	// PushReady is the selected lane's readiness.
	PushReady frontend.Bit
	// Pop is the selected lane's consumer-facing stream.
	Pop Stream[frontend.BVec]
}

// NewFIFOArray builds lanes independent width-bit fifos of perLaneDepth
// elements apiece, clocked by clk, with one push port arbitrated by
// pushLane and one pop port arbitrated by popLane. pushLane and popLane
// must be bitsFor(lanes) bits wide.
func NewFIFOArray(
	width, lanes int, perLaneDepth uint64, clk *hlim.Clock,
	pushLane frontend.UInt, push Stream[frontend.BVec],
	popLane frontend.UInt, popReady frontend.Bit,
) *FIFOArray {
	if perLaneDepth == 0 || perLaneDepth&(perLaneDepth-1) != 0 {
		panic("stream: fifo array lane depth must be a power of two")
	}
	if lanes < 1 {
		panic("stream: fifo array needs at least one lane")
	}
	k := bitsFor(perLaneDepth)
	bankBits := bitsFor(uint64(lanes))
	one := frontend.UIntLit(k, 1)
	lastIdx := frontend.UIntLit(k, perLaneDepth-1)

	mem := frontend.NewMem(width, perLaneDepth*uint64(lanes))

	a := &FIFOArray{lanes: lanes, perLaneDepth: perLaneDepth, k: k}

	for i := 0; i < lanes; i++ {
		wShape := frontend.NewUInt(k)
		wptr, commitWptr := frontend.RegFeedback[frontend.UInt](wShape, frontend.Bit{}, false, frontend.UIntLit(k, 0), true, false, clk)
		rShape := frontend.NewUInt(k)
		rptr, commitRptr := frontend.RegFeedback[frontend.UInt](rShape, frontend.Bit{}, false, frontend.UIntLit(k, 0), true, false, clk)
		cShape := frontend.NewUInt(bitsFor(perLaneDepth + 1))
		count, commitCount := frontend.RegFeedback[frontend.UInt](cShape, frontend.Bit{}, false, frontend.UIntLit(bitsFor(perLaneDepth+1), 0), true, false, clk)

		full := count.Eq(frontend.UIntLit(count.Width(), perLaneDepth))
		empty := count.Eq(frontend.UIntLit(count.Width(), 0))

		selPush := pushLane.Eq(frontend.UIntLit(pushLane.Width(), uint64(i)))
		selPop := popLane.Eq(frontend.UIntLit(popLane.Width(), uint64(i)))
		pushTransfer := selPush.And(push.ValidSignal()).And(full.Not())
		popTransfer := selPop.And(popReady).And(empty.Not())

		wptrNext := frontend.Mux(wptr.Eq(lastIdx), wptr.Add(one), frontend.UIntLit(k, 0))
		commitWptr(frontend.Mux(pushTransfer, wptr, wptrNext))
		rptrNext := frontend.Mux(rptr.Eq(lastIdx), rptr.Add(one), frontend.UIntLit(k, 0))
		commitRptr(frontend.Mux(popTransfer, rptr, rptrNext))

		countOne := frontend.UIntLit(count.Width(), 1)
		incOnly := pushTransfer.And(popTransfer.Not())
		decOnly := popTransfer.And(pushTransfer.Not())
		afterInc := frontend.Mux(incOnly, count, count.Add(countOne))
		afterDec := frontend.Mux(decOnly, afterInc, count.Sub(countOne))
		commitCount(afterDec)

		bank := frontend.UIntLit(bankBits, uint64(i))
		writeAddr := frontend.Cat(bank.AsBVec(), wptr.AsBVec()).AsUInt()
		mem.WritePort(writeAddr, push.Payload, pushTransfer, clk)

		a.writePtrs = append(a.writePtrs, wptr)
		a.readPtrs = append(a.readPtrs, rptr)
		a.counts = append(a.counts, count)
		a.fulls = append(a.fulls, full)
		a.emptys = append(a.emptys, empty)
	}

	selectedReadPtr := muxUInt(popLane, a.readPtrs)
	readAddr := frontend.Cat(popLane.AsBVec(), selectedReadPtr.AsBVec()).AsUInt()
	head := mem.ReadPort(readAddr, false, clk)

	a.head = head
	a.PushReady = muxBit(pushLane, a.fulls).Not()
	a.Pop = New(head).WithValid(muxBit(popLane, a.emptys).Not())
	return a
}

// Full reports lane i's level-accurate full flag.
func (a *FIFOArray) Full(lane int) frontend.Bit { return a.fulls[lane] }

// Empty reports lane i's level-accurate empty flag.
func (a *FIFOArray) Empty(lane int) frontend.Bit { return a.emptys[lane] }

// Count returns lane i's current occupancy.
func (a *FIFOArray) Count(lane int) frontend.UInt { return a.counts[lane] }
