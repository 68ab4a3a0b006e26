package frontend

import "github.com/sarchlab/gatery-go/hlim"

// CDC moves v from src's clock domain into dst's domain through an
// explicit two-flop synchroniser, the only node variant allowed to
// carry two clock-pin-source equivalence classes at once. kind
// distinguishes a plain control-signal synchroniser from a Gray-coded
// pointer crossing, which the caller still Gray-codes itself: the node
// only supplies the double-register timing discipline.
func CDC[T Signal](v T, src, dst *hlim.Clock, kind hlim.CDCKind) T {
	b := C()
	t := v.Type()
	id := b.create(hlim.NewCDCNode(kind, t, src, dst))
	must(b.Circuit.ConnectReplace(v.Ref(), hlim.PortRef{Node: id}, 0))
	return fromRef[T](hlim.PortRef{Node: id}, t)
}
