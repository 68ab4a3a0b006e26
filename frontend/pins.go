package frontend

import "github.com/sarchlab/gatery-go/hlim"

// PinIn declares a design input boundary port of type t and returns it
// as a T. The pin's output is both returned to the caller and driven
// externally by the simulator.
func PinIn[T Signal](name string, t hlim.ConnectionType) T {
	b := C()
	id := b.create(hlim.NewInputPin(name, t))
	return fromRef[T](hlim.PortRef{Node: id}, t)
}

// PinOut declares a design output boundary port and connects v to it.
func PinOut(name string, v Signal) {
	b := C()
	id := b.create(hlim.NewOutputPin(name, v.Type()))
	must(b.Circuit.ConnectReplace(v.Ref(), hlim.PortRef{Node: id}, 0))
}

// TristatePin declares a bidirectional boundary port: out is driven onto
// the pin whenever oe is asserted, and the pin's sampled value is
// returned as a T.
func TristatePin[T Signal](name string, out Signal, oe Bit) T {
	b := C()
	t := out.Type()
	id := b.create(hlim.NewTristatePin(name, t))
	must(b.Circuit.ConnectReplace(out.Ref(), hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(oe.ref, hlim.PortRef{Node: id}, 1))
	return fromRef[T](hlim.PortRef{Node: id}, t)
}
