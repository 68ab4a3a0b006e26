package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/sim"
)

// buildCounter wires an 8-bit free-running counter: reg -> adder(+1) -> reg.
// The register's own output is what test cases observe; an OutputPin has
// no OutputPorts of its own, so it is not a useful observation point here.
func buildCounter() (*hlim.Circuit, *hlim.Clock, hlim.NodeID, hlim.NodeID) {
	c := hlim.NewCircuit("Top")
	clk := c.CreateClock(hlim.NewRootClock("clk", nil))

	reg := c.CreateNode(hlim.NewRegisterNode(hlim.UInt(8), clk, false, true, hlim.NewDefinedBitVector(8, 0)), nil)
	one := c.CreateNode(hlim.NewConstantNode(hlim.UInt(8), hlim.NewDefinedBitVector(8, 1)), nil)
	adder := c.CreateNode(hlim.NewBinaryNode(hlim.OpAdd, hlim.UInt(8), hlim.UInt(8)), nil)
	out := c.CreateNode(hlim.NewOutputPin("out", hlim.UInt(8)), nil)

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(c.Connect(hlim.PortRef{Node: reg}, hlim.PortRef{Node: adder}, 0))
	must(c.Connect(hlim.PortRef{Node: one}, hlim.PortRef{Node: adder}, 1))
	must(c.Connect(hlim.PortRef{Node: adder}, hlim.PortRef{Node: reg}, 0))
	must(c.Connect(hlim.PortRef{Node: reg}, hlim.PortRef{Node: out}, 0))

	return c, clk, reg, out
}

var _ = Describe("Simulation", func() {
	It("seeds every register's output to its reset value before any clock edge", func() {
		c, _, reg, _ := buildCounter()
		s, err := sim.NewSimulation(c)
		Expect(err).NotTo(HaveOccurred())

		v := s.State.Read(reg, 0)
		Expect(v.AllDefined()).To(BeTrue())
		Expect(v.Uint64()).To(Equal(uint64(0)))
	})

	It("increments the counter by one on every active edge", func() {
		c, clk, reg, _ := buildCounter()
		s, err := sim.NewSimulation(c)
		Expect(err).NotTo(HaveOccurred())

		for i := uint64(1); i <= 3; i++ {
			s.AdvanceClock(clk)
			Expect(s.State.Read(reg, 0).Uint64()).To(Equal(i))
		}
	})

	It("records an assertion failure exactly once and stops", func() {
		c := hlim.NewCircuit("Top")
		zero := c.CreateNode(hlim.NewConstantNode(hlim.Bit(), hlim.NewDefinedBitVector(1, 0)), nil)
		assertNode := c.CreateNode(hlim.NewAssertionNode("never true"), nil)
		Expect(c.Connect(hlim.PortRef{Node: zero}, hlim.PortRef{Node: assertNode}, 0)).To(Succeed())

		s, err := sim.NewSimulation(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Stopped).To(BeTrue())
		Expect(s.Failures).To(HaveLen(1))
		Expect(s.Failures[0].Message).To(ContainSubstring("never true"))

		s.Settle()
		Expect(s.Failures).To(HaveLen(1))
	})

	It("reports no failure once the asserted condition holds", func() {
		c := hlim.NewCircuit("Top")
		one := c.CreateNode(hlim.NewConstantNode(hlim.Bit(), hlim.NewDefinedBitVector(1, 1)), nil)
		assertNode := c.CreateNode(hlim.NewAssertionNode("always true"), nil)
		Expect(c.Connect(hlim.PortRef{Node: one}, hlim.PortRef{Node: assertNode}, 0)).To(Succeed())

		s, err := sim.NewSimulation(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Stopped).To(BeFalse())
		Expect(s.Failures).To(BeEmpty())
	})
})

var _ = Describe("Simulation.TickedAt", func() {
	It("reports an edge only at the exact time it fired", func() {
		c, clk, _, _ := buildCounter()
		s, err := sim.NewSimulation(c)
		Expect(err).NotTo(HaveOccurred())

		s.SetNow(func() sim.VTime { return sim.Picoseconds(1000) })
		s.AdvanceClock(clk)

		Expect(s.TickedAt(clk, sim.Picoseconds(1000))).To(BeTrue())
		Expect(s.TickedAt(clk, sim.Picoseconds(999))).To(BeFalse())
	})
})
