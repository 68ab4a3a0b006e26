package pass

import "github.com/sarchlab/gatery-go/hlim"

// LatchCheck implements the open-question decision recorded in
// SPEC_FULL.md: a combinational convergence inside a not-yet-closed
// conditional scope is rejected outright rather than given fix-point
// latch semantics. By the time post-processing runs, every
// ConditionalScope the frontend built has already closed (If/ElseIf/Else
// always pop their frame before returning), so the only way this
// invariant can be violated is a combinational cycle through a Mux chain
// that never resolves to a constant selector — which TopoSort already
// detects as ErrCombinationalCycle. LatchCheck runs first in the
// pipeline and gives that same failure a clearer, latch-specific
// message before the generic cycle check would otherwise fire deeper in
// the pipeline.
type LatchCheck struct{}

func (LatchCheck) Name() string { return "latch-check" }

func (LatchCheck) Run(c *hlim.Circuit) (Result, error) {
	ids := c.AllNodeIDs()
	_, err := c.TopoSort(ids)
	if err == nil {
		return Result{Changed: false, Detail: "no unresolved conditional-scope convergence"}, nil
	}
	de, ok := err.(*hlim.DesignError)
	if !ok || de.Kind != hlim.ErrCombinationalCycle {
		return Result{}, err
	}
	return Result{}, &hlim.DesignError{
		Kind:    hlim.ErrCombinationalCycle,
		Message: "unresolved conditional-scope convergence (latch-like feedback): " + de.Message,
		Node:    de.Node,
	}
}
