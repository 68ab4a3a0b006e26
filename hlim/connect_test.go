package hlim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
)

var _ = Describe("Circuit wiring", func() {
	var c *hlim.Circuit

	BeforeEach(func() {
		c = hlim.NewCircuit("Top")
	})

	It("connects matching types", func() {
		a := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 5)), nil)
		b := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(8), false), nil)

		err := c.Connect(hlim.PortRef{Node: a, Index: 0}, hlim.PortRef{Node: b}, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a width mismatch", func() {
		a := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 5)), nil)
		b := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(16), false), nil)

		err := c.Connect(hlim.PortRef{Node: a, Index: 0}, hlim.PortRef{Node: b}, 0)
		Expect(err).To(HaveOccurred())
	})

	It("rejects connecting to an already-bound input", func() {
		a := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 1)), nil)
		a2 := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 2)), nil)
		b := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(8), false), nil)

		Expect(c.Connect(hlim.PortRef{Node: a, Index: 0}, hlim.PortRef{Node: b}, 0)).To(Succeed())
		err := c.Connect(hlim.PortRef{Node: a2, Index: 0}, hlim.PortRef{Node: b}, 0)
		Expect(err).To(HaveOccurred())

		Expect(c.ConnectReplace(hlim.PortRef{Node: a2, Index: 0}, hlim.PortRef{Node: b}, 0)).To(Succeed())
	})

	It("bypasses a signal node without changing semantics", func() {
		a := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 9)), nil)
		sig := c.CreateNode(hlim.NewSignalNode(hlim.UInt(8)), nil)
		consumer := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(8), false), nil)

		Expect(c.Connect(hlim.PortRef{Node: a, Index: 0}, hlim.PortRef{Node: sig}, 0)).To(Succeed())
		Expect(c.Connect(hlim.PortRef{Node: sig, Index: 0}, hlim.PortRef{Node: consumer}, 0)).To(Succeed())

		c.BypassOutputToInput(sig, 0, 0)

		Expect(c.Node(consumer).InputPorts()[0].Src).To(Equal(hlim.PortRef{Node: a, Index: 0}))
	})
})

var _ = Describe("TopoSort", func() {
	It("detects a combinational cycle", func() {
		c := hlim.NewCircuit("Top")
		a := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(4), false), nil)
		b := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(4), false), nil)

		Expect(c.ConnectReplace(hlim.PortRef{Node: a, Index: 0}, hlim.PortRef{Node: b}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: b, Index: 0}, hlim.PortRef{Node: a}, 0)).To(Succeed())

		_, err := c.TopoSort([]hlim.NodeID{a, b})
		Expect(err).To(HaveOccurred())
	})

	It("orders an acyclic chain", func() {
		c := hlim.NewCircuit("Top")
		a := c.CreateNode(hlim.NewConstantNode(hlim.UInt(4), hlim.NewDefinedBitVector(4, 1)), nil)
		b := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(4), false), nil)
		d := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(4), false), nil)

		Expect(c.ConnectReplace(hlim.PortRef{Node: a, Index: 0}, hlim.PortRef{Node: b}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: b, Index: 0}, hlim.PortRef{Node: d}, 0)).To(Succeed())

		order, err := c.TopoSort([]hlim.NodeID{a, b, d})
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(Equal([]hlim.NodeID{a, b, d}))
	})

	It("treats registers as barriers, allowing feedback", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		reg := c.CreateNode(hlim.NewRegisterNode(hlim.UInt(4), clk, false, false, hlim.BitVector{}), nil)
		inc := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(4), false), nil)

		Expect(c.ConnectReplace(hlim.PortRef{Node: reg, Index: 0}, hlim.PortRef{Node: inc}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: inc, Index: 0}, hlim.PortRef{Node: reg}, 0)).To(Succeed())

		_, err := c.TopoSort([]hlim.NodeID{reg, inc})
		Expect(err).NotTo(HaveOccurred())
	})
})
