package hlim

import "math/big"

// Edge is the trigger edge of a clock.
type Edge int

const (
	RisingEdge Edge = iota
	FallingEdge
)

// ResetPolicy selects how a clock domain's memories are initialised at
// simulation start.
type ResetPolicy = InitPolicy

const (
	ResetNone   = InitNone
	ResetZero   = InitZero
	ResetRandom = InitRandom
)

// Clock is a named source of discrete events, owned by a Circuit for its
// lifetime. Clocks form an equivalence class via PinSource: two clocks
// are the same domain iff PinSource points at the same object.
type Clock struct {
	id   NodeID
	name string

	Frequency *big.Rat
	Edge      Edge

	ResetSignal  PortRef
	ResetActive  bool // polarity: true = active-high
	ResetIsAsync bool

	EnableSignal PortRef // zero PortRef means "always enabled"

	MemResetPolicy ResetPolicy

	// pinSource is the clock this one derives from, or itself if it is a
	// root clock. Equivalence is reference equality of pinSource.
	pinSource *Clock
}

// NewRootClock creates a clock with no logical parent; it is its own
// pin source.
func NewRootClock(name string, freq *big.Rat) *Clock {
	c := &Clock{name: name, Frequency: freq, Edge: RisingEdge}
	c.pinSource = c
	return c
}

// DeriveClock creates a logical derivative of parent (e.g. a gated or
// divided clock) that shares the parent's pin-source identity for the
// purposes of clock-domain comparison.
func DeriveClock(name string, parent *Clock) *Clock {
	c := &Clock{name: name, Frequency: parent.Frequency, Edge: parent.Edge}
	c.pinSource = parent.pinSource
	return c
}

// Name returns the clock's name.
func (c *Clock) Name() string { return c.name }

// PinSource returns the clock whose identity defines this clock's domain.
func (c *Clock) PinSource() *Clock { return c.pinSource }

// SameDomain reports whether a and b belong to the same clock-pin-source
// equivalence class.
func SameDomain(a, b *Clock) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.pinSource == b.pinSource
}
