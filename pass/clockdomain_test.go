package pass_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/pass"
)

var _ = Describe("ClockDomainCheck", func() {
	It("reports no warnings when every register shares one clock", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		in := c.CreateNode(hlim.NewInputPin("in", hlim.UInt(8)), nil)
		reg := c.CreateNode(hlim.NewRegisterNode(hlim.UInt(8), clk, false, false, hlim.BitVector{}), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: in}, hlim.PortRef{Node: reg}, 0)).To(Succeed())

		r, err := (pass.ClockDomainCheck{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Warnings).To(BeEmpty())
	})

	It("warns when a register samples another domain's register without CDC glue", func() {
		c := hlim.NewCircuit("Top")
		clkA := c.CreateClock(hlim.NewRootClock("a", nil))
		clkB := c.CreateClock(hlim.NewRootClock("b", nil))

		srcReg := c.CreateNode(hlim.NewRegisterNode(hlim.UInt(8), clkA, false, false, hlim.BitVector{}), nil)
		dstReg := c.CreateNode(hlim.NewRegisterNode(hlim.UInt(8), clkB, false, false, hlim.BitVector{}), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: srcReg}, hlim.PortRef{Node: dstReg}, 0)).To(Succeed())

		r, err := (pass.ClockDomainCheck{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Warnings).NotTo(BeEmpty())
	})

	It("stays silent when the crossing goes through an explicit CDCNode", func() {
		c := hlim.NewCircuit("Top")
		clkA := c.CreateClock(hlim.NewRootClock("a", nil))
		clkB := c.CreateClock(hlim.NewRootClock("b", nil))

		srcReg := c.CreateNode(hlim.NewRegisterNode(hlim.Bit(), clkA, false, false, hlim.BitVector{}), nil)
		cdc := c.CreateNode(hlim.NewCDCNode(hlim.CDCTwoFlopSync, hlim.Bit(), clkA, clkB), nil)
		dstReg := c.CreateNode(hlim.NewRegisterNode(hlim.Bit(), clkB, false, false, hlim.BitVector{}), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: srcReg}, hlim.PortRef{Node: cdc}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: cdc}, hlim.PortRef{Node: dstReg}, 0)).To(Succeed())

		r, err := (pass.ClockDomainCheck{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Warnings).To(BeEmpty())
	})
})
