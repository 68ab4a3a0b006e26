package pass

import "github.com/sarchlab/gatery-go/hlim"

// ResetEnablePropagation recognizes the shape produced by assigning to a
// register inside a conditional scope — `reg.Assign` lowers to
// `Mux(cond, reg's own current output, newValue)` per frontend's cond.go
// — and promotes it into an explicit hardware clock-enable rather than
// a combinational self-loop through a multiplexer. The multiplexer is
// left in place for any other consumer; only the register's own data
// path is rewritten.
type ResetEnablePropagation struct{}

func (ResetEnablePropagation) Name() string { return "reset-enable-propagation" }

func (ResetEnablePropagation) Run(c *hlim.Circuit) (Result, error) {
	promoted := 0

	for _, id := range c.AllNodeIDs() {
		reg, ok := c.Node(id).(*hlim.RegisterNode)
		if !ok || reg.HasEnable {
			continue
		}
		dataSrc := reg.InputPorts()[0].Src
		if !dataSrc.Valid() {
			continue
		}
		mux, ok := c.Node(dataSrc.Node).(*hlim.MuxNode)
		if !ok {
			continue
		}
		muxIns := mux.InputPorts()
		selectSrc, whenFalse, whenTrue := muxIns[0].Src, muxIns[1].Src, muxIns[2].Src
		if whenFalse != (hlim.PortRef{Node: id, Index: 0}) {
			continue
		}

		var resetSrc hlim.PortRef
		if reg.HasReset {
			resetSrc = reg.InputPorts()[len(reg.InputPorts())-1].Src
		}

		newReg := hlim.NewRegisterNode(reg.OutputPorts()[0].Type, reg.Clock, true, reg.HasReset, reg.ResetValue)
		newID := c.CreateNode(newReg, c.GroupOf(id))
		must(c.ConnectReplace(whenTrue, hlim.PortRef{Node: newID}, 0))
		must(c.ConnectReplace(selectSrc, hlim.PortRef{Node: newID}, 1))
		if reg.HasReset {
			must(c.ConnectReplace(resetSrc, hlim.PortRef{Node: newID}, 2))
		}

		rewireConsumers(c, id, 0, newID)
		c.RemoveNode(id)
		if len(c.Consumers(dataSrc)) == 0 {
			c.RemoveNode(dataSrc.Node)
		}
		promoted++
	}

	return Result{Changed: promoted > 0, Detail: countDetail("registers promoted to clock-enable form", promoted)}, nil
}
