package sim

import (
	asim "github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/gatery-go/hlim"
)

// Process is a cooperative simulation thread: a goroutine that blocks
// between WaitFor/OnClk calls and otherwise never runs concurrently with
// any other Process or with Simulation.Settle/AdvanceClock. Processes
// run in fork order, the order names this project's test suites depend
// on for reproducibility.
type Process struct {
	host     *ProcessHost
	fn       func(*Process)
	resume   chan struct{}
	done     chan struct{}
	finished bool

	wakeAt   VTime
	waitTime bool
	wakeClk  *hlim.Clock
	waitClk  bool
}

func (p *Process) ready(now VTime, sim *Simulation) bool {
	if p.finished {
		return false
	}
	if p.waitClk {
		return sim.TickedAt(p.wakeClk, now)
	}
	if p.waitTime {
		return !now.Before(p.wakeAt)
	}
	return true // never suspended yet: runs on its first scheduling opportunity
}

// WaitFor suspends the calling process until at least d of virtual time
// has elapsed.
func (p *Process) WaitFor(d VTime) {
	p.waitTime, p.waitClk = true, false
	p.wakeAt = p.host.now.Add(d)
	p.yield()
}

// OnClk suspends the calling process until clk's next active edge.
func (p *Process) OnClk(clk *hlim.Clock) {
	p.waitClk, p.waitTime = true, false
	p.wakeClk = clk
	p.yield()
}

// Simu reads the current value driven on an output/input port.
func (p *Process) Simu(ref hlim.PortRef) hlim.BitVector {
	return p.host.sim.State.Read(ref.Node, ref.Index)
}

// Drive sets an input pin's value; use Invalidate to mark it undefined
// instead of giving it a concrete value.
func (p *Process) Drive(ref hlim.PortRef, v hlim.BitVector) {
	p.host.sim.State.Drive(ref.Node, ref.Index, v)
	p.host.sim.Settle()
}

// Invalidate marks an input pin's bits undefined.
func (p *Process) Invalidate(ref hlim.PortRef) {
	v := p.host.sim.State.Read(ref.Node, ref.Index).Clone()
	v.Invalidate()
	p.Drive(ref, v)
}

func (p *Process) yield() {
	p.done <- struct{}{}
	<-p.resume
}

// ProcessHost runs every forked Process, polling at a fixed resolution
// frequency. Each poll, every process whose wait condition is satisfied
// runs to its next suspension point, in fork order, matching the
// single-threaded cooperative scheduling model: no two processes are
// ever runnable "at once" from the host's point of view.
type ProcessHost struct {
	*asim.TickingComponent

	sim   *Simulation
	now   VTime
	procs []*Process
}

// NewProcessHost creates a host ticking engine at resolution; resolution
// must be at least as fine as the shortest WaitFor duration any forked
// process uses, since wakeups are only checked on a poll.
func NewProcessHost(name string, engine asim.Engine, s *Simulation, resolution asim.Freq) *ProcessHost {
	h := &ProcessHost{sim: s}
	h.TickingComponent = asim.NewTickingComponent(name, engine, resolution, h)
	return h
}

// Fork launches fn as a new cooperative process, returning immediately;
// fn begins running on the host's next poll.
func (h *ProcessHost) Fork(fn func(*Process)) *Process {
	p := &Process{host: h, fn: fn, resume: make(chan struct{}), done: make(chan struct{})}
	h.procs = append(h.procs, p)
	go func() {
		<-p.resume
		fn(p)
		p.finished = true
		p.done <- struct{}{}
	}()
	return p
}

// Tick runs every ready process to its next suspension point.
func (h *ProcessHost) Tick(now asim.VTimeInSec) (madeProgress bool) {
	h.now = FromSeconds(float64(now))
	progressed := false
	for _, p := range h.procs {
		if !p.ready(h.now, h.sim) {
			continue
		}
		p.resume <- struct{}{}
		<-p.done
		progressed = true
	}
	return progressed
}
