package stream

import "github.com/sarchlab/gatery-go/hlim"

// CheckNoCombinationalReadyValidCycle walks backward from sink's Ready
// input through purely combinational nodes looking for a path back to
// source's Valid output. If one exists, a consumer's Ready and a
// producer's Valid are mutually combinationally dependent — neither
// side can settle first, which is the classic ready/valid handshake
// deadlock. Sequential nodes (registers, memory ports) stop the walk:
// a cycle that crosses a register is a pipeline, not a deadlock, which
// is exactly what Decouple inserts to break a flagged pair.
func CheckNoCombinationalReadyValidCycle(c *hlim.Circuit, sourceValid, sinkReady hlim.PortRef) error {
	visited := make(map[hlim.NodeID]bool)
	var walk func(ref hlim.PortRef) bool
	walk = func(ref hlim.PortRef) bool {
		if !ref.Valid() {
			return false
		}
		if ref == sourceValid {
			return true
		}
		if visited[ref.Node] {
			return false
		}
		visited[ref.Node] = true
		n := c.Node(ref.Node)
		if !n.Combinational() {
			return false
		}
		for _, in := range n.InputPorts() {
			if walk(in.Src) {
				return true
			}
		}
		return false
	}
	if walk(sinkReady) {
		return newDeadlockError(sourceValid, sinkReady)
	}
	return nil
}

type deadlockError struct {
	sourceValid, sinkReady hlim.PortRef
}

func (e *deadlockError) Error() string {
	return "stream: combinational ready/valid cycle between source Valid and sink Ready; insert Decouple"
}

func newDeadlockError(sourceValid, sinkReady hlim.PortRef) error {
	return &deadlockError{sourceValid: sourceValid, sinkReady: sinkReady}
}
