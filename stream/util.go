package stream

import "github.com/sarchlab/gatery-go/frontend"

// bitsFor returns the number of bits needed to represent the integers
// 0..n-1 (n >= 1), used to size pointer and count registers from a
// depth parameter.
func bitsFor(n uint64) int {
	if n <= 1 {
		return 1
	}
	w := 0
	for v := n - 1; v > 0; v >>= 1 {
		w++
	}
	return w
}

// muxUInt dynamically selects options[sel], built as a Mux chain
// comparing sel against each index in turn. Used where a register
// array is logically indexed by a runtime selector, since the frontend
// has no first-class indexable register file.
func muxUInt(sel frontend.UInt, options []frontend.UInt) frontend.UInt {
	if len(options) == 0 {
		panic("stream: muxUInt needs at least one option")
	}
	result := options[len(options)-1]
	for i := len(options) - 2; i >= 0; i-- {
		result = frontend.Mux(sel.Eq(frontend.UIntLit(sel.Width(), uint64(i))), result, options[i])
	}
	return result
}

// muxBit is muxUInt's Bit counterpart.
func muxBit(sel frontend.UInt, options []frontend.Bit) frontend.Bit {
	if len(options) == 0 {
		panic("stream: muxBit needs at least one option")
	}
	result := options[len(options)-1]
	for i := len(options) - 2; i >= 0; i-- {
		result = frontend.Mux(sel.Eq(frontend.UIntLit(sel.Width(), uint64(i))), result, options[i])
	}
	return result
}
