package frontend

import "github.com/sarchlab/gatery-go/hlim"

// Assert installs a simulation-only check against cond: when cond
// evaluates to false or to undefined during simulation, the run records
// a failure and stops. It has no effect on export; DeadCodeElimination
// keeps an AssertionNode as an anchor, the same way it keeps SignalTap.
func Assert(cond Bit, message string) {
	b := C()
	id := b.create(hlim.NewAssertionNode(message))
	must(b.Circuit.ConnectReplace(cond.ref, hlim.PortRef{Node: id}, 0))
}

// Tap names s for waveform capture without otherwise affecting the
// design. Tap returns nothing; the captured history is kept on the
// SignalTapNode's History field and is only ever populated by a running
// simulation.
func Tap(name string, s Signal) {
	b := C()
	id := b.create(hlim.NewSignalTapNode(name, s.Type()))
	must(b.Circuit.ConnectReplace(s.Ref(), hlim.PortRef{Node: id}, 0))
}

// PRNG declares a seeded pseudo-random value source, present only for
// simulation stimulus generation.
func PRNG(width int, seed uint64) BVec {
	b := C()
	id := b.create(hlim.NewPRNGNode(seed, width))
	return BVec{ref: hlim.PortRef{Node: id}, width: width}
}
