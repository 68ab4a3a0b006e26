package pass_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/pass"
)

var _ = Describe("SignalElimination", func() {
	It("erases a signal node and rewires its consumer", func() {
		c := hlim.NewCircuit("Top")
		a := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 9)), nil)
		sig := c.CreateNode(hlim.NewSignalNode(hlim.UInt(8)), nil)
		consumer := c.CreateNode(hlim.NewUnaryNode(hlim.UInt(8), false), nil)
		Expect(c.Connect(hlim.PortRef{Node: a}, hlim.PortRef{Node: sig}, 0)).To(Succeed())
		Expect(c.Connect(hlim.PortRef{Node: sig}, hlim.PortRef{Node: consumer}, 0)).To(Succeed())

		r, err := (pass.SignalElimination{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeTrue())
		Expect(c.AllNodeIDs()).NotTo(ContainElement(sig))
		Expect(c.Node(consumer).InputPorts()[0].Src).To(Equal(hlim.PortRef{Node: a}))
	})
})
