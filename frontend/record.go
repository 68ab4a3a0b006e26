package frontend

import (
	"reflect"

	"github.com/sarchlab/gatery-go/hlim"
)

// This file implements the composite "record" adapter: any Go
// struct whose exported fields are Bit/UInt/SInt/BVec (or nested record
// structs of the same shape) can be packed to and unpacked from a flat
// BVec, with the first field occupying the least-significant bits —
// the same convention Pack uses for plain operands.

// RecordWidth returns the total bit width of a record value, summing its
// leaf signal widths depth-first.
func RecordWidth[T any](v T) int {
	return recordWidth(reflect.ValueOf(v))
}

func recordWidth(rv reflect.Value) int {
	if sig, ok := asSignal(rv); ok {
		return sig.Type().Width
	}
	total := 0
	for i := 0; i < rv.NumField(); i++ {
		total += recordWidth(rv.Field(i))
	}
	return total
}

// RecordPack flattens v's leaf signals into a single BVec.
func RecordPack[T any](v T) BVec {
	var leaves []BVec
	collectLeaves(reflect.ValueOf(v), &leaves)
	return Pack(leaves...)
}

func collectLeaves(rv reflect.Value, out *[]BVec) {
	if sig, ok := asSignal(rv); ok {
		*out = append(*out, toBVec(sig))
		return
	}
	for i := 0; i < rv.NumField(); i++ {
		collectLeaves(rv.Field(i), out)
	}
}

func toBVec(sig Signal) BVec {
	t := sig.Type()
	if t.Kind == hlim.KindBVec {
		return BVec{ref: sig.Ref(), width: t.Width}
	}
	b := C()
	id := b.create(hlim.NewExtendNode(hlim.ExtendZero, t, hlim.BVec(t.Width)))
	must(b.Circuit.ConnectReplace(sig.Ref(), hlim.PortRef{Node: id}, 0))
	return BVec{ref: hlim.PortRef{Node: id}, width: t.Width}
}

// RecordUnpack rebuilds a T shaped like tmpl (same field widths) from a
// packed BVec, slicing consecutive ranges in the same field order Pack
// used to build it.
func RecordUnpack[T any](tmpl T, bv BVec) T {
	out := reflect.New(reflect.TypeOf(tmpl))
	pos := 0
	unpackInto(reflect.ValueOf(tmpl), out.Elem(), bv, &pos)
	return out.Elem().Interface().(T)
}

func unpackInto(tmplRV, outRV reflect.Value, bv BVec, pos *int) {
	if sig, ok := asSignal(tmplRV); ok {
		w := sig.Type().Width
		leaf := bv.Slice(*pos, w)
		*pos += w
		outRV.Set(reflect.ValueOf(rewrap(sig, leaf)))
		return
	}
	for i := 0; i < tmplRV.NumField(); i++ {
		unpackInto(tmplRV.Field(i), outRV.Field(i), bv, pos)
	}
}

// RecordConstruct allocates a fresh, unconnected record with the same
// field shape as tmpl, used to declare a record-typed signal without
// writing out every field.
func RecordConstruct[T any](tmpl T) T {
	out := reflect.New(reflect.TypeOf(tmpl))
	constructInto(reflect.ValueOf(tmpl), out.Elem())
	return out.Elem().Interface().(T)
}

func constructInto(tmplRV, outRV reflect.Value) {
	if sig, ok := asSignal(tmplRV); ok {
		outRV.Set(reflect.ValueOf(freshLike(sig)))
		return
	}
	for i := 0; i < tmplRV.NumField(); i++ {
		constructInto(tmplRV.Field(i), outRV.Field(i))
	}
}

func asSignal(rv reflect.Value) (Signal, bool) {
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, false
	}
	sig, ok := rv.Interface().(Signal)
	return sig, ok
}

func rewrap(tmpl Signal, leaf BVec) Signal {
	switch tmpl.(type) {
	case Bit:
		return BitFrom(leaf.ref)
	case UInt:
		return UIntFromRef(leaf.ref, leaf.width)
	case SInt:
		return SIntFromRef(leaf.ref, leaf.width)
	case BVec:
		return leaf
	default:
		panic("frontend: record leaf must be Bit, UInt, SInt or BVec")
	}
}

func freshLike(sig Signal) Signal {
	switch v := sig.(type) {
	case Bit:
		return NewBit()
	case UInt:
		return NewUInt(v.width)
	case SInt:
		return NewSInt(v.width)
	case BVec:
		return NewBVec(v.width)
	default:
		panic("frontend: record leaf must be Bit, UInt, SInt or BVec")
	}
}
