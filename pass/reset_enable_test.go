package pass_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/pass"
)

var _ = Describe("ResetEnablePropagation", func() {
	It("promotes a self-loop mux into an explicit clock enable", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		reg := c.CreateNode(hlim.NewRegisterNode(hlim.UInt(8), clk, false, false, hlim.BitVector{}), nil)
		cond := c.CreateNode(hlim.NewInputPin("cond", hlim.Bit()), nil)
		newVal := c.CreateNode(hlim.NewInputPin("newVal", hlim.UInt(8)), nil)
		mux := c.CreateNode(hlim.NewMuxNode(hlim.UInt(8)), nil)

		Expect(c.ConnectReplace(hlim.PortRef{Node: cond}, hlim.PortRef{Node: mux}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: reg}, hlim.PortRef{Node: mux}, 1)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: newVal}, hlim.PortRef{Node: mux}, 2)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: mux}, hlim.PortRef{Node: reg}, 0)).To(Succeed())

		r, err := (pass.ResetEnablePropagation{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())

		ids := c.AllNodeIDs()
		Expect(ids).NotTo(ContainElement(reg))
		var newReg *hlim.RegisterNode
		for _, id := range ids {
			if rn, ok := c.Node(id).(*hlim.RegisterNode); ok {
				newReg = rn
			}
		}
		Expect(newReg).NotTo(BeNil())
		Expect(newReg.HasEnable).To(BeTrue())
	})
})
