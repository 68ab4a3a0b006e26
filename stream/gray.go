package stream

import "github.com/sarchlab/gatery-go/frontend"

// BinaryToGray converts a binary-encoded count to reflected Gray code:
// gray = b ^ (b >> 1). Adjacent values differ in exactly one bit, which
// is what makes a single-bit-at-a-time synchroniser crossing clock
// domains safe for a DualClockFIFO pointer.
func BinaryToGray(b frontend.UInt) frontend.UInt {
	w := b.Width()
	shifted := b.Shr(frontend.UIntLit(bitsFor(uint64(w)), 1))
	return b.Xor(shifted)
}

// GrayToBinary inverts BinaryToGray via the standard prefix-xor scan:
// b[w-1] = g[w-1]; b[i] = b[i+1] ^ g[i] for i counting down from w-2.
func GrayToBinary(g frontend.UInt) frontend.UInt {
	w := g.Width()
	raw := g.AsBVec()
	bits := make([]frontend.BVec, w)
	prev := raw.Slice(w-1, 1)
	bits[w-1] = prev
	for i := w - 2; i >= 0; i-- {
		bi := prev.Xor(raw.Slice(i, 1))
		bits[i] = bi
		prev = bi
	}
	ordered := make([]frontend.BVec, w)
	for i := 0; i < w; i++ {
		ordered[i] = bits[w-1-i]
	}
	packed := frontend.Cat(ordered...)
	return frontend.UIntFromRef(packed.Ref(), w)
}
