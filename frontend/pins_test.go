package frontend_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

var _ = Describe("Pins", func() {
	BeforeEach(func() {
		frontend.NewBuilder("test")
	})

	It("declares an input pin of the requested width", func() {
		in := frontend.PinIn[frontend.UInt]("data_in", hlim.UInt(8))
		Expect(in.Width()).To(Equal(8))

		n := frontend.C().Circuit.Node(in.Ref().Node).(*hlim.PinNode)
		Expect(n.Direction).To(Equal(hlim.PinIn))
	})

	It("connects a signal to an output pin", func() {
		v := frontend.UIntLit(8, 42)
		frontend.PinOut("data_out", v)
		// the most recently created node is the output pin
		ids := frontend.C().Circuit.AllNodeIDs()
		last := ids[len(ids)-1]
		n := frontend.C().Circuit.Node(last).(*hlim.PinNode)
		Expect(n.Direction).To(Equal(hlim.PinOut))
		Expect(n.InputPorts()[0].Src).To(Equal(v.Ref()))
	})
})
