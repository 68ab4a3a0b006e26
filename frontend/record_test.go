package frontend_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
)

type header struct {
	Valid frontend.Bit
	Tag   frontend.UInt
}

var _ = Describe("Record adapter", func() {
	BeforeEach(func() {
		frontend.NewBuilder("test")
	})

	It("sums leaf widths", func() {
		h := header{Valid: frontend.NewBit(), Tag: frontend.NewUInt(7)}
		Expect(frontend.RecordWidth(h)).To(Equal(8))
	})

	It("packs with the first field in the least-significant bits", func() {
		h := header{Valid: frontend.ConstBit(true), Tag: frontend.UIntLit(7, 0)}
		packed := frontend.RecordPack(h)
		Expect(packed.Width()).To(Equal(8))
		n := frontend.C().Circuit.Node(packed.Ref().Node).(*hlim.ConcatNode)
		Expect(n.FirstIsLSB).To(BeTrue())
	})

	It("round-trips shape through unpack", func() {
		tmpl := header{Valid: frontend.NewBit(), Tag: frontend.NewUInt(7)}
		packed := frontend.RecordPack(header{Valid: frontend.ConstBit(true), Tag: frontend.UIntLit(7, 5)})
		out := frontend.RecordUnpack(tmpl, packed)
		Expect(out.Tag.Width()).To(Equal(7))
	})

	It("constructs a fresh record with matching field widths", func() {
		tmpl := header{Valid: frontend.NewBit(), Tag: frontend.NewUInt(7)}
		fresh := frontend.RecordConstruct(tmpl)
		Expect(fresh.Tag.Width()).To(Equal(7))
		Expect(fresh.Tag.Ref()).NotTo(Equal(tmpl.Tag.Ref()))
	})
})
