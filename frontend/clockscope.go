package frontend

import (
	"math/big"

	"github.com/sarchlab/gatery-go/hlim"
)

// NewClock creates and registers a root clock on the current Builder's
// circuit.
func NewClock(name string, freqHz int64) *hlim.Clock {
	b := C()
	return b.Circuit.CreateClock(hlim.NewRootClock(name, big.NewRat(freqHz, 1)))
}

// DerivedClock registers a logical derivative of parent that shares its
// pin-source identity.
func DerivedClock(name string, parent *hlim.Clock) *hlim.Clock {
	b := C()
	return b.Circuit.CreateClock(hlim.DeriveClock(name, parent))
}

// ClockScope runs body with clk as the current clock for any register
// created inside it, pushing and popping a stack so nested scopes
// restore the enclosing clock on exit — the frontend counterpart of
// the per-thread scope stacks, reusing the same implicit-stack
// idiom as ConditionalScope.
func ClockScope(clk *hlim.Clock, body func()) {
	b := C()
	b.clocks = append(b.clocks, clk)
	defer func() { b.clocks = b.clocks[:len(b.clocks)-1] }()
	body()
}

// CurrentClock returns the innermost active ClockScope's clock, or nil if
// none is active (register construction then requires an explicit clock
// argument).
func (b *Builder) CurrentClock() *hlim.Clock {
	if len(b.clocks) == 0 {
		return nil
	}
	return b.clocks[len(b.clocks)-1]
}

// CurrentClock is sugar for C().CurrentClock().
func CurrentClock() *hlim.Clock { return C().CurrentClock() }

// SetReset binds clk's reset network to sig: every RegWithReset/
// RegWithEnableReset register already built or yet to be built on clk
// samples resetValue whenever sig reads active. A clock with no reset
// bound this way still initializes its registers to resetValue at t=0;
// SetReset only adds a runtime-triggerable reset pulse on top of that.
func SetReset(clk *hlim.Clock, sig Bit, activeHigh, async bool) {
	clk.ResetSignal = sig.ref
	clk.ResetActive = activeHigh
	clk.ResetIsAsync = async

	b := C()
	rst := sig
	if !activeHigh {
		rst = sig.Not()
	}
	for _, id := range b.Circuit.AllNodeIDs() {
		if reg, ok := b.Circuit.Node(id).(*hlim.RegisterNode); ok && reg.Clock == clk && reg.HasReset {
			must(b.Circuit.ConnectReplace(rst.ref, hlim.PortRef{Node: id}, len(reg.InputPorts())-1))
		}
	}
}

func resolveClock(explicit *hlim.Clock) *hlim.Clock {
	if explicit != nil {
		return explicit
	}
	clk := CurrentClock()
	if clk == nil {
		panic("frontend: register construction requires an active ClockScope or an explicit clock")
	}
	return clk
}
