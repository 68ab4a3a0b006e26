package pass_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/pass"
)

var _ = Describe("ConstantFold", func() {
	It("folds two constant operands into one constant", func() {
		c := hlim.NewCircuit("Top")
		a := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 3)), nil)
		b := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 5)), nil)
		sum := c.CreateNode(hlim.NewBinaryNode(hlim.OpAdd, hlim.UInt(8), hlim.UInt(8)), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: a}, hlim.PortRef{Node: sum}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: b}, hlim.PortRef{Node: sum}, 1)).To(Succeed())

		consumer := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(8), false), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: sum}, hlim.PortRef{Node: consumer}, 0)).To(Succeed())

		r, err := (pass.ConstantFold{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())

		newSrc := c.Node(consumer).InputPorts()[0].Src
		cn, ok := c.Node(newSrc.Node).(*hlim.ConstantNode)
		Expect(ok).To(BeTrue())
		Expect(cn.Value.Uint64()).To(Equal(uint64(8)))
	})

	It("applies the x & 0 = 0 identity without requiring the other operand constant", func() {
		c := hlim.NewCircuit("Top")
		zero := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 0)), nil)
		x := c.CreateNode(hlim.NewInputPin("x", hlim.UInt(8)), nil)
		and := c.CreateNode(hlim.NewBinaryNode(hlim.OpAnd, hlim.UInt(8), hlim.UInt(8)), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: x}, hlim.PortRef{Node: and}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: zero}, hlim.PortRef{Node: and}, 1)).To(Succeed())

		consumer := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(8), false), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: and}, hlim.PortRef{Node: consumer}, 0)).To(Succeed())

		r, err := (pass.ConstantFold{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())
		Expect(c.Node(consumer).InputPorts()[0].Src).To(Equal(hlim.PortRef{Node: zero, Index: 0}))
	})

	It("applies mux(c, a, a) = a", func() {
		c := hlim.NewCircuit("Top")
		sel := c.CreateNode(hlim.NewInputPin("sel", hlim.Bit()), nil)
		a := c.CreateNode(hlim.NewInputPin("a", hlim.UInt(8)), nil)
		mux := c.CreateNode(hlim.NewMuxNode(hlim.UInt(8)), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: sel}, hlim.PortRef{Node: mux}, 0)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: a}, hlim.PortRef{Node: mux}, 1)).To(Succeed())
		Expect(c.ConnectReplace(hlim.PortRef{Node: a}, hlim.PortRef{Node: mux}, 2)).To(Succeed())

		consumer := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(8), false), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: mux}, hlim.PortRef{Node: consumer}, 0)).To(Succeed())

		r, err := (pass.ConstantFold{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())
		Expect(c.Node(consumer).InputPorts()[0].Src).To(Equal(hlim.PortRef{Node: a, Index: 0}))
	})
})
