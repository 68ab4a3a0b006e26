package pass

import "github.com/sarchlab/gatery-go/hlim"

// SignalElimination erases every surviving SignalNode by bypassing its
// consumers to whatever drives its input, reusing Circuit's
// bypass_output_to_input helper as the first post-processing step.
// SignalNodes exist purely to carry a debug name through construction;
// nothing downstream needs to see them.
type SignalElimination struct{}

func (SignalElimination) Name() string { return "signal-elimination" }

func (SignalElimination) Run(c *hlim.Circuit) (Result, error) {
	removed := 0
	for _, id := range c.AllNodeIDs() {
		sn, ok := c.Node(id).(*hlim.SignalNode)
		if !ok {
			continue
		}
		if !sn.InputPorts()[0].Src.Valid() {
			continue // dangling signal node (never assigned): leave for DCE
		}
		c.BypassOutputToInput(id, 0, 0)
		c.RemoveNode(id)
		removed++
	}
	return Result{Changed: removed > 0, Detail: countDetail("signal nodes erased", removed)}, nil
}
