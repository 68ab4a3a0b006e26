package frontend_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

var _ = Describe("Bit", func() {
	BeforeEach(func() {
		frontend.NewBuilder("test")
	})

	It("lowers And to a BinaryNode with OpAnd", func() {
		a := frontend.ConstBit(true)
		b := frontend.ConstBit(false)
		out := a.And(b)

		n := frontend.C().Circuit.Node(out.Ref().Node).(*hlim.BinaryNode)
		Expect(n.Op).To(Equal(hlim.OpAnd))
		Expect(n.InputPorts()[0].Src).To(Equal(a.Ref()))
		Expect(n.InputPorts()[1].Src).To(Equal(b.Ref()))
	})

	It("rebinds on Assign outside any conditional scope", func() {
		x := frontend.NewBit()
		before := x.Ref()
		x.Assign(frontend.ConstBit(true))
		Expect(x.Ref()).NotTo(Equal(before))
	})

	It("lowers an assignment inside If to a Mux guarded by the condition", func() {
		x := frontend.NewBit()
		x.Assign(frontend.ConstBit(false))
		prior := x.Ref()
		cond := frontend.ConstBit(true)

		frontend.If(cond, func() {
			x.Assign(frontend.ConstBit(true))
		})

		n := frontend.C().Circuit.Node(x.Ref().Node).(*hlim.MuxNode)
		Expect(n.InputPorts()[0].Src).To(Equal(cond.Ref()))
		Expect(n.InputPorts()[1].Src).To(Equal(prior))
	})

	It("conjoins nested If predicates", func() {
		x := frontend.NewBit()
		x.Assign(frontend.ConstBit(false))
		outer := frontend.ConstBit(true)
		inner := frontend.ConstBit(false)

		frontend.If(outer, func() {
			frontend.If(inner, func() {
				x.Assign(frontend.ConstBit(true))
			})
		})

		mux := frontend.C().Circuit.Node(x.Ref().Node).(*hlim.MuxNode)
		sel := frontend.C().Circuit.Node(mux.InputPorts()[0].Src.Node).(*hlim.BinaryNode)
		Expect(sel.Op).To(Equal(hlim.OpAnd))
	})
})
