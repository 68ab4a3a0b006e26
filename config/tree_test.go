package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/config"
)

var _ = Describe("Tree", func() {
	It("flattens nested YAML into dotted-path keys", func() {
		t, err := config.Load([]byte(`
passes:
  retiming:
    enabled: true
  cdc:
    allow: false
`))
		Expect(err).NotTo(HaveOccurred())

		Expect(t.Bool("passes.retiming.enabled", false)).To(BeTrue())
		Expect(t.Bool("passes.cdc.allow", true)).To(BeFalse())
	})

	It("defaults a missing key rather than erroring", func() {
		t := config.NewTree()
		Expect(t.Bool("passes.retiming.enabled", true)).To(BeTrue())
		Expect(t.String("report.sink", "stderr")).To(Equal("stderr"))
	})

	It("With returns an independent copy", func() {
		base := config.NewTree().With("passes.retiming.enabled", true)
		override := base.With("passes.retiming.enabled", false)

		Expect(base.Bool("passes.retiming.enabled", false)).To(BeTrue())
		Expect(override.Bool("passes.retiming.enabled", true)).To(BeFalse())
	})

	It("Query matches a single wildcard segment", func() {
		t, err := config.Load([]byte(`
passes:
  retiming:
    enabled: true
  cdc:
    enabled: false
`))
		Expect(err).NotTo(HaveOccurred())

		matches := t.Query("passes.*.enabled")
		Expect(matches).To(HaveLen(2))
		Expect(matches["passes.retiming.enabled"]).To(Equal(true))
		Expect(matches["passes.cdc.enabled"]).To(Equal(false))
	})
})
