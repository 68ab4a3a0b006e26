package pass_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/pass"
)

var _ = Describe("MemoryPortInference", func() {
	It("fuses a registered read port and a write port sharing an address into one RMW port", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		mem := c.CreateNode(hlim.NewMemoryNode(8, 16, hlim.InitZero), nil)
		memNode := c.Node(mem).(*hlim.MemoryNode)

		addr := c.CreateNode(hlim.NewInputPin("addr", hlim.UInt(4)), nil)
		data := c.CreateNode(hlim.NewInputPin("data", hlim.BVec(8)), nil)
		we := c.CreateNode(hlim.NewInputPin("we", hlim.Bit()), nil)

		rp := c.CreateNode(hlim.NewReadPortNode(memNode, 4, true, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addr}, hlim.PortRef{Node: rp}, 0)).To(Succeed())

		wp := c.CreateNode(hlim.NewWritePortNode(memNode, 4, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addr}, hlim.PortRef{Node: wp}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: data}, hlim.PortRef{Node: wp}, 1)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: we}, hlim.PortRef{Node: wp}, 2)).To(Succeed())

		out := c.CreateNode(hlim.NewOutputPin("out", hlim.BVec(8)), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: rp}, hlim.PortRef{Node: out}, 0)).To(Succeed())

		r, err := (pass.MemoryPortInference{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())

		ids := c.AllNodeIDs()
		Expect(ids).NotTo(ContainElement(rp))
		Expect(ids).NotTo(ContainElement(wp))

		var rmw *hlim.RMWPortNode
		for _, id := range ids {
			if n, ok := c.Node(id).(*hlim.RMWPortNode); ok {
				rmw = n
			}
		}
		Expect(rmw).NotTo(BeNil())
		Expect(rmw.Memory).To(Equal(memNode))

		outSrc := c.Node(out).InputPorts()[0].Src
		Expect(outSrc.Node).To(Equal(rmw.ID()))
	})

	It("leaves unrelated ports alone when addresses don't match", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		mem := c.CreateNode(hlim.NewMemoryNode(8, 16, hlim.InitZero), nil)
		memNode := c.Node(mem).(*hlim.MemoryNode)

		addrA := c.CreateNode(hlim.NewInputPin("addrA", hlim.UInt(4)), nil)
		addrB := c.CreateNode(hlim.NewInputPin("addrB", hlim.UInt(4)), nil)
		data := c.CreateNode(hlim.NewInputPin("data", hlim.BVec(8)), nil)
		we := c.CreateNode(hlim.NewInputPin("we", hlim.Bit()), nil)

		rp := c.CreateNode(hlim.NewReadPortNode(memNode, 4, true, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addrA}, hlim.PortRef{Node: rp}, 0)).To(Succeed())

		wp := c.CreateNode(hlim.NewWritePortNode(memNode, 4, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addrB}, hlim.PortRef{Node: wp}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: data}, hlim.PortRef{Node: wp}, 1)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: we}, hlim.PortRef{Node: wp}, 2)).To(Succeed())

		r, err := (pass.MemoryPortInference{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeFalse())
		ids := c.AllNodeIDs()
		Expect(ids).To(ContainElement(rp))
		Expect(ids).To(ContainElement(wp))
	})

	It("derives WriteBeforeRead when the write data sits right on a register", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		mem := c.CreateNode(hlim.NewMemoryNode(8, 16, hlim.InitZero), nil)
		memNode := c.Node(mem).(*hlim.MemoryNode)

		addr := c.CreateNode(hlim.NewInputPin("addr", hlim.UInt(4)), nil)
		we := c.CreateNode(hlim.NewInputPin("we", hlim.Bit()), nil)

		dataReg := c.CreateNode(hlim.NewRegisterNode(hlim.BVec(8), clk, false, false, hlim.BitVector{}), nil)
		dataIn := c.CreateNode(hlim.NewInputPin("data_in", hlim.BVec(8)), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: dataIn}, hlim.PortRef{Node: dataReg}, 0)).To(Succeed())

		rp := c.CreateNode(hlim.NewReadPortNode(memNode, 4, true, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addr}, hlim.PortRef{Node: rp}, 0)).To(Succeed())

		notOut := c.CreateNode(hlim.NewUnaryNode(hlim.BVec(8), false), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: rp}, hlim.PortRef{Node: notOut}, 0)).To(Succeed())
		readDelay := c.CreateNode(hlim.NewRegisterNode(hlim.BVec(8), clk, false, false, hlim.BitVector{}), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: notOut}, hlim.PortRef{Node: readDelay}, 0)).To(Succeed())

		wp := c.CreateNode(hlim.NewWritePortNode(memNode, 4, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addr}, hlim.PortRef{Node: wp}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: dataReg}, hlim.PortRef{Node: wp}, 1)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: we}, hlim.PortRef{Node: wp}, 2)).To(Succeed())

		r, err := (pass.MemoryPortInference{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())

		var rmw *hlim.RMWPortNode
		for _, id := range c.AllNodeIDs() {
			if n, ok := c.Node(id).(*hlim.RMWPortNode); ok {
				rmw = n
			}
		}
		Expect(rmw).NotTo(BeNil())
		Expect(rmw.Policy).To(Equal(hlim.WriteBeforeRead))
	})

	It("derives ReadBeforeWrite when the read output sits right on a register", func() {
		c := hlim.NewCircuit("Top")
		clk := c.CreateClock(hlim.NewRootClock("clk", nil))
		mem := c.CreateNode(hlim.NewMemoryNode(8, 16, hlim.InitZero), nil)
		memNode := c.Node(mem).(*hlim.MemoryNode)

		addr := c.CreateNode(hlim.NewInputPin("addr", hlim.UInt(4)), nil)
		we := c.CreateNode(hlim.NewInputPin("we", hlim.Bit()), nil)

		dataIn := c.CreateNode(hlim.NewInputPin("data_in", hlim.BVec(8)), nil)
		writeDelay := c.CreateNode(hlim.NewRegisterNode(hlim.BVec(8), clk, false, false, hlim.BitVector{}), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: dataIn}, hlim.PortRef{Node: writeDelay}, 0)).To(Succeed())
		notIn := c.CreateNode(hlim.NewUnaryNode(hlim.BVec(8), false), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: writeDelay}, hlim.PortRef{Node: notIn}, 0)).To(Succeed())

		rp := c.CreateNode(hlim.NewReadPortNode(memNode, 4, true, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addr}, hlim.PortRef{Node: rp}, 0)).To(Succeed())
		readReg := c.CreateNode(hlim.NewRegisterNode(hlim.BVec(8), clk, false, false, hlim.BitVector{}), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: rp}, hlim.PortRef{Node: readReg}, 0)).To(Succeed())

		wp := c.CreateNode(hlim.NewWritePortNode(memNode, 4, clk), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: addr}, hlim.PortRef{Node: wp}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: notIn}, hlim.PortRef{Node: wp}, 1)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: we}, hlim.PortRef{Node: wp}, 2)).To(Succeed())

		r, err := (pass.MemoryPortInference{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())

		var rmw *hlim.RMWPortNode
		for _, id := range c.AllNodeIDs() {
			if n, ok := c.Node(id).(*hlim.RMWPortNode); ok {
				rmw = n
			}
		}
		Expect(rmw).NotTo(BeNil())
		Expect(rmw.Policy).To(Equal(hlim.ReadBeforeWrite))
	})
})
