package frontend_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

var _ = Describe("CDC", func() {
	BeforeEach(func() {
		frontend.NewBuilder("test")
	})

	It("wires a two-flop synchroniser between distinct clock domains", func() {
		src := frontend.NewClock("src", 100_000_000)
		dst := frontend.NewClock("dst", 133_000_000)

		var out frontend.UInt
		frontend.ClockScope(src, func() {
			x := frontend.UIntLit(4, 5)
			out = frontend.CDC[frontend.UInt](x, src, dst, hlim.CDCTwoFlopSync)
		})

		n := frontend.C().Circuit.Node(out.Ref().Node).(*hlim.CDCNode)
		Expect(n.Kind).To(Equal(hlim.CDCTwoFlopSync))
		Expect(n.SrcClock).To(Equal(src))
		Expect(n.DstClock).To(Equal(dst))
	})
})
