package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	asim "github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/sim"
)

var _ = Describe("ProcessHost", func() {
	It("resumes a waiting process once its clock edge ticks", func() {
		c, clk, reg, _ := buildCounter()
		s, err := sim.NewSimulation(c)
		Expect(err).NotTo(HaveOccurred())

		engine := asim.NewSerialEngine()
		host := sim.NewProcessHost("host", engine, s, 1*asim.GHz)

		seen := []uint64{}
		host.Fork(func(p *sim.Process) {
			for i := 0; i < 3; i++ {
				p.OnClk(clk)
				seen = append(seen, p.Simu(hlim.PortRef{Node: reg}).Uint64())
			}
		})

		// The freshly forked process runs to its first suspension point on
		// the host's very first poll, before any clock has ticked.
		zero := sim.Zero
		s.SetNow(func() sim.VTime { return zero })
		host.Tick(asim.VTimeInSec(0))

		at := sim.Zero
		for i := 0; i < 3; i++ {
			at = at.Add(sim.Picoseconds(1000))
			s.SetNow(func() sim.VTime { return at })
			s.AdvanceClock(clk)
			host.Tick(asim.VTimeInSec(at.Seconds()))
		}

		Expect(seen).To(Equal([]uint64{1, 2, 3}))
	})

	It("resumes a waiting process once its wait duration elapses", func() {
		c, clk, _, _ := buildCounter()
		s, err := sim.NewSimulation(c)
		Expect(err).NotTo(HaveOccurred())
		_ = clk

		engine := asim.NewSerialEngine()
		host := sim.NewProcessHost("host", engine, s, 1*asim.GHz)

		woke := false
		host.Fork(func(p *sim.Process) {
			p.WaitFor(sim.Picoseconds(5000))
			woke = true
		})

		for _, ps := range []int64{0, 2000, 5000} {
			at := sim.Picoseconds(ps)
			s.SetNow(func() sim.VTime { return at })
			host.Tick(asim.VTimeInSec(at.Seconds()))
		}

		Expect(woke).To(BeTrue())
	})
})
