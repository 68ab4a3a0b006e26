package pass_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/pass"
)

var _ = Describe("LatchCheck", func() {
	It("passes a design with no combinational feedback", func() {
		c := hlim.NewCircuit("Top")
		a := c.CreateNode(hlim.NewInputPin("a", hlim.Bit()), nil)
		not1 := c.CreateNode(hlim.NewUnaryNode(hlim.Bit(), false), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: a}, hlim.PortRef{Node: not1}, 0)).To(Succeed())

		r, err := (pass.LatchCheck{}).Run(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Changed).To(BeFalse())
	})

	It("rejects an unresolved combinational self-loop with a latch-specific message", func() {
		c := hlim.NewCircuit("Top")
		not1 := c.CreateNode(hlim.NewUnaryNode(hlim.Bit(), false), nil)
		Expect(c.ConnectReplace(hlim.PortRef{Node: not1}, hlim.PortRef{Node: not1}, 0)).To(Succeed())

		_, err := (pass.LatchCheck{}).Run(c)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("latch-like feedback"))
	})
})
