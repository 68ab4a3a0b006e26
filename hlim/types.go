// Package hlim implements the high-level intermediate representation: the
// node-and-port graph that every other layer of the framework builds,
// rewrites, and evaluates.
package hlim

import "fmt"

// Kind is the connection type of a port: the shape of the value that
// flows across it.
type Kind int

const (
	// KindBit is a single wire with no signedness.
	KindBit Kind = iota
	// KindUInt is an unsigned integer vector of a fixed width.
	KindUInt
	// KindSInt is a signed (two's complement) integer vector of a fixed width.
	KindSInt
	// KindBVec is a raw bit vector of a fixed width, carrying no arithmetic
	// meaning.
	KindBVec
)

func (k Kind) String() string {
	switch k {
	case KindBit:
		return "Bit"
	case KindUInt:
		return "UInt"
	case KindSInt:
		return "SInt"
	case KindBVec:
		return "BVec"
	default:
		return "Unknown"
	}
}

// ConnectionType is the type and width carried by a port. Two ports may
// only be connected if their ConnectionType values are equal.
type ConnectionType struct {
	Kind  Kind
	Width int
}

// Bit is the canonical single-wire connection type.
func Bit() ConnectionType { return ConnectionType{Kind: KindBit, Width: 1} }

// UInt is an unsigned vector connection type of the given width.
func UInt(width int) ConnectionType { return ConnectionType{Kind: KindUInt, Width: width} }

// SInt is a signed vector connection type of the given width.
func SInt(width int) ConnectionType { return ConnectionType{Kind: KindSInt, Width: width} }

// BVec is a raw bit-vector connection type of the given width.
func BVec(width int) ConnectionType { return ConnectionType{Kind: KindBVec, Width: width} }

func (t ConnectionType) String() string {
	if t.Kind == KindBit {
		return "Bit"
	}
	return fmt.Sprintf("%s<%d>", t.Kind, t.Width)
}

// Signed reports whether the type participates in signed arithmetic.
func (t ConnectionType) Signed() bool { return t.Kind == KindSInt }

// NodeID is a stable identity for a node, valid for the lifetime of the
// owning Circuit. It survives cloning (a clone gets a fresh NodeID) but
// never changes for a node that is merely rewired.
type NodeID uint64

// PortRef addresses one output port of one node: the only thing an
// input port is ever allowed to reference.
type PortRef struct {
	Node  NodeID
	Index int
}

// Valid reports whether the reference points at a real node.
func (r PortRef) Valid() bool { return r.Node != 0 }

// DebugInfo is optional per-node debugging metadata: human name, free-form
// comment, and the construction-site stack trace captured at creation.
// All design-time errors are reported with this attached so the user can
// find the offending line of their own program.
type DebugInfo struct {
	Name        string
	Comment     string
	ConstructedAt string
}
