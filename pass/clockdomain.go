package pass

import "github.com/sarchlab/gatery-go/hlim"

// ClockDomainCheck enforces that every node's clock list belongs to a
// single pin-source equivalence class, unless the node is explicit
// cross-domain glue (CDCNode). It never rewrites the graph; it only
// reports, since a clock-domain violation has no safe automatic fix.
type ClockDomainCheck struct{}

func (ClockDomainCheck) Name() string { return "clock-domain-check" }

func (ClockDomainCheck) Run(c *hlim.Circuit) (Result, error) {
	var warnings []string
	for _, id := range c.AllNodeIDs() {
		n := c.Node(id)
		if _, ok := n.(*hlim.CDCNode); ok {
			continue // the one permitted multi-domain node
		}
		clocks := n.ClockPorts()
		for i := 1; i < len(clocks); i++ {
			if !hlim.SameDomain(clocks[0], clocks[i]) {
				return Result{}, newClockDomainError(id, clocks[0], clocks[i])
			}
		}
		// also check against input producers directly feeding a clocked
		// node from a different domain's register without CDC glue.
		for _, in := range n.InputPorts() {
			if !in.Src.Valid() {
				continue
			}
			srcN := c.Node(in.Src.Node)
			srcClocks := srcN.ClockPorts()
			if len(srcClocks) == 0 || len(clocks) == 0 {
				continue
			}
			if _, ok := srcN.(*hlim.CDCNode); ok {
				continue
			}
			if !hlim.SameDomain(srcClocks[0], clocks[0]) {
				warnings = append(warnings, "signal crosses clock domains without CDC glue at node "+nodeLabel(id))
			}
		}
	}
	return Result{Changed: false, Detail: countDetail("clock-domain warnings", len(warnings)), Warnings: warnings}, nil
}

func nodeLabel(id hlim.NodeID) string {
	return "#" + itoaPass(int(id))
}

func itoaPass(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func newClockDomainError(id hlim.NodeID, a, b *hlim.Clock) error {
	return &hlim.DesignError{
		Kind:    hlim.ErrClockDomainViolation,
		Message: "node mixes clocks " + a.Name() + " and " + b.Name() + " from different domains without CDC glue",
		Node:    id,
	}
}
