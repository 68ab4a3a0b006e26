package sim

import (
	"fmt"

	"github.com/sarchlab/gatery-go/hlim"
)

// AssertionFailure records a sim_assert that fired.
type AssertionFailure struct {
	Node    hlim.NodeID
	Message string
	At      VTime
}

func (f AssertionFailure) Error() string {
	return fmt.Sprintf("assertion failed at %s: %s", f.At, f.Message)
}

// Recorder receives every output of every node the simulator evaluates,
// whether or not the value changed, so a waveform writer can stay
// lossless without being told about the circuit's internal evaluation
// order.
type Recorder interface {
	Sample(at VTime, id hlim.NodeID, index int, v hlim.BitVector)
}

// Simulation holds the live state of one post-processed circuit and
// drives it cycle by cycle. It is not restartable once Stopped.
type Simulation struct {
	Circuit *hlim.Circuit
	Plan    *Plan
	State   *State

	Recorder Recorder
	now      func() VTime

	Failures []AssertionFailure
	Stopped  bool
	reported map[hlim.NodeID]bool
	edgeAt   map[*hlim.Clock]VTime
}

// NewSimulation builds a Simulation for c, computing its Plan and
// lazily-initializing every memory's backing storage.
func NewSimulation(c *hlim.Circuit) (*Simulation, error) {
	plan, err := BuildPlan(c)
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		Circuit:  c,
		Plan:     plan,
		State:    newState(c),
		now:      func() VTime { return Zero },
		reported: map[hlim.NodeID]bool{},
		edgeAt:   map[*hlim.Clock]VTime{},
	}
	for _, id := range plan.memory {
		s.evaluate(id)
	}
	// Seed every register/memory-port's output to its reset/initial value
	// before the first clock edge: RegisterNode.Evaluate always commits
	// NodeState.Current to its output even when no edge fired, so one
	// edge-less pass is enough to make t=0 observable.
	for _, ids := range plan.onClock {
		for _, id := range ids {
			s.evaluate(id)
		}
	}
	s.Settle()
	return s, nil
}

func (s *Simulation) evaluate(id hlim.NodeID) {
	n := s.Circuit.Node(id)
	n.Evaluate(&evalContext{state: s.State, node: n})
	if s.Recorder != nil {
		for i := range n.OutputPorts() {
			s.Recorder.Sample(s.now(), id, i, s.State.Read(id, i))
		}
	}
	if a, ok := n.(*hlim.AssertionNode); ok && a.Failed && !s.reported[id] {
		s.reported[id] = true
		msg := a.Message
		if a.FailedAtWitness == "undefined" {
			msg = msg + " (condition undefined)"
		}
		s.Failures = append(s.Failures, AssertionFailure{Node: id, Message: msg, At: s.now()})
		s.Stopped = true
	}
}

// Settle re-evaluates every combinational node to a fixed point. It must
// be called after any input-pin drive and after every clock advance,
// since the graph is acyclic post-processing and one topological pass is
// sufficient to converge.
func (s *Simulation) Settle() {
	for _, id := range s.Plan.comb {
		s.evaluate(id)
	}
}

// AdvanceClock runs the evaluate+advance step for every sequential and
// memory-port node clocked by clk, then resettles the combinational
// cone so downstream logic observes the new register values.
func (s *Simulation) AdvanceClock(clk *hlim.Clock) {
	s.State.edges[clk] = true
	for _, id := range s.Plan.onClock[clk] {
		s.evaluate(id)
	}
	s.State.edges[clk] = false
	s.edgeAt[clk] = s.now()
	s.Settle()
}

// TickedAt reports whether clk had an active edge at exactly time t,
// letting a component other than the ClockDriver that drove the edge
// (e.g. a ProcessHost) observe it after State.edges has already been
// cleared back to false.
func (s *Simulation) TickedAt(clk *hlim.Clock, t VTime) bool {
	at, ok := s.edgeAt[clk]
	return ok && !at.Before(t) && !t.Before(at)
}

// SetNow installs the clock used to timestamp Recorder samples and
// assertion failures; a ProcessHost/ClockDriver calls this once before
// driving the Simulation so recorded times match the engine's.
func (s *Simulation) SetNow(now func() VTime) { s.now = now }
