package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/sim"
)

var _ = Describe("VTime", func() {
	It("rounds an exact picosecond count to itself", func() {
		Expect(sim.Picoseconds(1500).RoundPicoseconds()).To(Equal(int64(1500)))
	})

	It("rounds a fractional picosecond count to the nearest integer", func() {
		third := sim.FromSeconds(1e-12 / 3) // 1/3 ps
		Expect(third.RoundPicoseconds()).To(Equal(int64(0)))
	})
})
