package pass

import "github.com/sarchlab/gatery-go/hlim"

// Technology is an external collaborator that may replace an
// ExternalNode's generic black-box shape with a vendor-specific
// primitive (e.g. a Xilinx DSP48 or an Intel M20K block RAM). Vendor
// technology libraries are treated only as external collaborators:
// this repository defines the seam and a no-op default, not the
// adapters themselves.
type Technology interface {
	// Map is called once per ExternalNode; returning ok=false leaves the
	// node untouched.
	Map(c *hlim.Circuit, id hlim.NodeID, n *hlim.ExternalNode) (ok bool)
}

// TechMapHook runs an optional Technology over every ExternalNode in the
// circuit. With no Technology configured it is a no-op, which is the
// default used by simulation-only flows that never touch real silicon.
type TechMapHook struct {
	Technology Technology
}

func (TechMapHook) Name() string { return "technology-mapping" }

func (h *TechMapHook) Run(c *hlim.Circuit) (Result, error) {
	if h.Technology == nil {
		return Result{Changed: false, Detail: "no technology configured"}, nil
	}
	mapped := 0
	for _, id := range c.AllNodeIDs() {
		en, ok := c.Node(id).(*hlim.ExternalNode)
		if !ok {
			continue
		}
		if h.Technology.Map(c, id, en) {
			mapped++
		}
	}
	return Result{Changed: mapped > 0, Detail: countDetail("nodes mapped to technology primitives", mapped)}, nil
}
