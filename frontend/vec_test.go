package frontend_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

var _ = Describe("UInt", func() {
	BeforeEach(func() {
		frontend.NewBuilder("test")
	})

	It("requires matching operand widths", func() {
		a := frontend.UIntLit(8, 3)
		b := frontend.UIntLit(4, 1)
		Expect(func() { a.Add(b) }).To(Panic())
	})

	It("lowers Add to a BinaryNode of the operand width", func() {
		a := frontend.UIntLit(8, 3)
		b := frontend.UIntLit(8, 5)
		sum := a.Add(b)

		n := frontend.C().Circuit.Node(sum.Ref().Node).(*hlim.BinaryNode)
		Expect(n.Op).To(Equal(hlim.OpAdd))
		Expect(sum.Width()).To(Equal(8))
	})

	It("infers the minimal literal width", func() {
		v := frontend.UIntLitInferred(5)
		Expect(v.Width()).To(Equal(3))
	})

	It("parses string literals", func() {
		v, err := frontend.UIntFromString("0xFF")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Width()).To(Equal(8))
	})

	It("widens with zero fill on Zext", func() {
		a := frontend.UIntLit(4, 3)
		z := a.Zext(8)
		Expect(z.Width()).To(Equal(8))
		n := frontend.C().Circuit.Node(z.Ref().Node).(*hlim.ExtendNode)
		Expect(n.Kind).To(Equal(hlim.ExtendZero))
	})

	It("slices a constant range", func() {
		a := frontend.UIntLit(8, 0xAB)
		lo := a.Slice(0, 4)
		Expect(lo.Width()).To(Equal(4))
	})
})

var _ = Describe("Cat and Pack", func() {
	BeforeEach(func() {
		frontend.NewBuilder("test")
	})

	It("cat puts the first operand in the most-significant bits", func() {
		a := frontend.UIntLit(4, 0xA).AsBVec().Slice(0, 4)
		b := frontend.UIntLit(4, 0xB).AsBVec().Slice(0, 4)
		c := frontend.Cat(a, b)
		Expect(c.Width()).To(Equal(8))

		n := frontend.C().Circuit.Node(c.Ref().Node).(*hlim.ConcatNode)
		Expect(n.FirstIsLSB).To(BeFalse())
	})

	It("pack puts the first operand in the least-significant bits", func() {
		a := frontend.UIntLit(4, 0xA).AsBVec().Slice(0, 4)
		b := frontend.UIntLit(4, 0xB).AsBVec().Slice(0, 4)
		p := frontend.Pack(a, b)

		n := frontend.C().Circuit.Node(p.Ref().Node).(*hlim.ConcatNode)
		Expect(n.FirstIsLSB).To(BeTrue())
	})
})
