package stream_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/sim"
	"github.com/sarchlab/gatery-go/stream"
)

var _ = Describe("Decouple", func() {
	It("passes data through when downstream is always ready", func() {
		b := frontend.NewBuilder("decouple")
		clk := frontend.NewClock("clk", 100_000_000)

		srcValid := frontend.PinIn[frontend.Bit]("src_valid", hlim.Bit())
		srcData := frontend.PinIn[frontend.BVec]("src_data", hlim.BVec(8))
		outReady := frontend.PinIn[frontend.Bit]("out_ready", hlim.Bit())

		var out stream.Stream[frontend.BVec]
		var myReady frontend.Bit
		frontend.ClockScope(clk, func() {
			out, myReady = stream.Decouple[frontend.BVec](clk, stream.New(srcData).WithValid(srcValid), outReady)
		})

		frontend.PinOut("out_valid", out.ValidSignal())
		frontend.PinOut("out_data", out.Payload)
		frontend.PinOut("my_ready", myReady)

		s, err := sim.NewSimulation(b.Circuit)
		Expect(err).NotTo(HaveOccurred())

		s.State.Drive(outReady.Ref().Node, 0, hlim.NewDefinedBitVector(1, 1))
		s.State.Drive(srcValid.Ref().Node, 0, hlim.NewDefinedBitVector(1, 1))
		s.State.Drive(srcData.Ref().Node, 0, hlim.NewDefinedBitVector(8, 0x42))
		s.Settle()

		ov, defined := s.State.Read(out.ValidSignal().Ref().Node, 0).Bit(0)
		Expect(defined).To(BeTrue())
		Expect(ov).To(BeTrue())
		Expect(s.State.Read(out.Payload.Ref().Node, 0).Uint64()).To(Equal(uint64(0x42)))
		ready, _ := s.State.Read(myReady.Ref().Node, 0).Bit(0)
		Expect(ready).To(BeTrue())
	})
})
