package sim

import (
	"math/big"

	asim "github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/gatery-go/hlim"
)

// ClockDriver is the akita TickingComponent that advances one clock
// domain's sequential and memory-port nodes on every active edge, at
// that clock's declared frequency. Every clock in a Plan gets its own
// driver so independently-clocked domains advance on independent
// schedules, the way the source framework's multi-clock designs do.
type ClockDriver struct {
	*asim.TickingComponent

	sim *Simulation
	clk *hlim.Clock
}

// NewClockDriver creates and registers a driver for clk on engine,
// ticking at clk's declared frequency (1GHz if the clock carries none).
func NewClockDriver(name string, engine asim.Engine, s *Simulation, clk *hlim.Clock) *ClockDriver {
	d := &ClockDriver{sim: s, clk: clk}
	d.TickingComponent = asim.NewTickingComponent(name, engine, freqOf(clk), d)
	return d
}

func freqOf(clk *hlim.Clock) asim.Freq {
	if clk.Frequency == nil {
		return 1 * asim.GHz
	}
	f, _ := new(big.Rat).Set(clk.Frequency).Float64()
	return asim.Freq(f)
}

// Tick advances clk's sequential nodes for this edge and resettles the
// combinational cone.
func (d *ClockDriver) Tick(now asim.VTimeInSec) (madeProgress bool) {
	at := FromSeconds(float64(now))
	d.sim.SetNow(func() VTime { return at })
	d.sim.AdvanceClock(d.clk)
	return true
}

// Kick schedules a driver's first tick at time zero, the same startup
// idiom the testbenches use to fire every ticking component once before
// handing control to the engine's run loop.
func Kick(engine asim.Engine, d *ClockDriver) {
	engine.Schedule(asim.MakeTickEvent(d.TickingComponent, 0))
}

// NewEngine creates a fresh serial discrete-event engine and a
// ClockDriver for every clock in plan, kicked and ready to run.
func NewEngine(s *Simulation) (asim.Engine, []*ClockDriver) {
	engine := asim.NewSerialEngine()
	drivers := make([]*ClockDriver, 0, len(s.Plan.onClock))
	for clk := range s.Plan.onClock {
		d := NewClockDriver("clk."+clk.Name(), engine, s, clk)
		Kick(engine, d)
		drivers = append(drivers, d)
	}
	return engine, drivers
}
