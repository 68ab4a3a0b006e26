package pass_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/pass"
)

var _ = Describe("DeadCodeElimination", func() {
	It("removes a node with no path to any anchor", func() {
		c := hlim.NewCircuit("Top")
		live := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 1)), nil)
		out := c.CreateNode(hlim.NewOutputPin("out", hlim.UInt(8)), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: live}, hlim.PortRef{Node: out}, 0)).To(Succeed())

		dead := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 2)), nil)

		r, err := (pass.DeadCodeElimination{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())

		ids := c.AllNodeIDs()
		Expect(ids).NotTo(ContainElement(dead))
		Expect(ids).To(ContainElement(live))
	})

	It("keeps a write-port reachable chain alive even with no readers", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		mem := c.CreateNode(hlim.NewMemoryNode(8, 16, hlim.InitZero), nil)
		addr := c.CreateNode(hlim.NewConstantNode(hlim.UInt(4), hlim.NewDefinedBitVector(4, 0)), nil)
		data := c.CreateNode(hlim.NewConstantNode(hlim.BVec(8), hlim.NewDefinedBitVector(8, 7)), nil)
		we := c.CreateNode(hlim.NewConstantNode(hlim.Bit(), hlim.NewDefinedBitVector(1, 1)), nil)
		wp := c.CreateNode(hlim.NewWritePortNode(c.Node(mem).(*hlim.MemoryNode), 4, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addr}, hlim.PortRef{Node: wp}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: data}, hlim.PortRef{Node: wp}, 1)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: we}, hlim.PortRef{Node: wp}, 2)).To(Succeed())

		_, err := (pass.DeadCodeElimination{}).Run(c)
		Expect(err).NotTo(HaveOccurred())

		ids := c.AllNodeIDs()
		Expect(ids).To(ContainElement(mem))
		Expect(ids).To(ContainElement(wp))
		Expect(ids).To(ContainElement(addr))
	})
})
