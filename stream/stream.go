// Package stream builds ready/valid handshake channels and the FIFO
// family on top of hlim graph construction: every primitive here
// compiles into plain combinational and sequential nodes at elaboration
// time and leaves nothing of itself behind.
package stream

import "github.com/sarchlab/gatery-go/frontend"

// Stream bundles a payload signal with the optional meta-signals that
// describe how it flows: Valid/Ready form the handshake, Sop/Eop/Empty/
// Error/TxId describe packet framing. A nil meta field means the
// producer or consumer never drives it; accessor methods substitute the
// documented default rather than letting callers dereference a nil
// pointer.
type Stream[T frontend.Signal] struct {
	Payload T

	Valid *frontend.Bit
	Ready *frontend.Bit
	Sop   *frontend.Bit
	Eop   *frontend.Bit
	Empty *frontend.UInt
	Error *frontend.Bit
	TxId  *frontend.UInt
}

// New wraps payload with no meta-signals; use the With* builders to add
// the ones a given protocol needs.
func New[T frontend.Signal](payload T) Stream[T] {
	return Stream[T]{Payload: payload}
}

func (s Stream[T]) WithValid(v frontend.Bit) Stream[T] { s.Valid = &v; return s }
func (s Stream[T]) WithReady(v frontend.Bit) Stream[T] { s.Ready = &v; return s }
func (s Stream[T]) WithSop(v frontend.Bit) Stream[T]   { s.Sop = &v; return s }
func (s Stream[T]) WithEop(v frontend.Bit) Stream[T]   { s.Eop = &v; return s }
func (s Stream[T]) WithEmpty(v frontend.UInt) Stream[T] { s.Empty = &v; return s }
func (s Stream[T]) WithError(v frontend.Bit) Stream[T] { s.Error = &v; return s }
func (s Stream[T]) WithTxId(v frontend.UInt) Stream[T] { s.TxId = &v; return s }

// ValidSignal returns the producer's Valid, defaulting to always-true
// when the stream carries no Valid meta-signal.
func (s Stream[T]) ValidSignal() frontend.Bit {
	if s.Valid != nil {
		return *s.Valid
	}
	return frontend.ConstBit(true)
}

// ReadySignal returns the consumer's Ready, defaulting to always-true
// when the stream carries no Ready meta-signal.
func (s Stream[T]) ReadySignal() frontend.Bit {
	if s.Ready != nil {
		return *s.Ready
	}
	return frontend.ConstBit(true)
}

// HasFraming reports whether this stream carries packet boundaries.
func (s Stream[T]) HasFraming() bool { return s.Eop != nil }

// Transfer is asserted on exactly the beats where both Valid and Ready
// hold: the one instant payload is considered consumed.
func (s Stream[T]) Transfer() frontend.Bit {
	return s.ValidSignal().And(s.ReadySignal())
}
