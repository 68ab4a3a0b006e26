package stream

import (
	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

// Decouple inserts a one-element skid buffer between src and whatever
// reads outReady from the consumer side. Its defining property is that
// the Ready it hands back to src is a pure function of registered state
// (full), never of outReady directly — so chaining two streams through
// Decouple can never form the same-cycle Ready-depends-on-Valid-
// depends-on-Ready loop a direct connection risks.
//
// While the buffer is empty a beat passes through combinationally
// (outValid follows src.Valid, outPayload follows src.Payload) and
// myReady stays asserted. The moment a beat is accepted but the
// consumer isn't ready for it that same cycle, it is latched into
// buffered and myReady drops until the consumer drains it.
func Decouple[T frontend.Signal](clk *hlim.Clock, src Stream[T], outReady frontend.Bit) (out Stream[T], myReady frontend.Bit) {
	full, commitFull := frontend.RegFeedback[frontend.Bit](
		frontend.Bit{}, frontend.Bit{}, false, frontend.ConstBit(false), true, false, clk)
	buffered, commitBuffered := frontend.RegFeedback[T](
		src.Payload, frontend.Bit{}, false, src.Payload, false, false, clk)

	myReady = full.Not()
	accept := src.ValidSignal().And(myReady)

	outValid := full.Or(src.ValidSignal())
	outPayload := frontend.Mux(full, src.Payload, buffered)

	commitFull(frontend.Mux(full, accept.And(outReady.Not()), full.And(outReady.Not())))
	commitBuffered(frontend.Mux(accept.And(outReady.Not()), buffered, src.Payload))

	out = New(outPayload).WithValid(outValid)
	return out, myReady
}
