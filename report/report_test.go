package report_test

import (
	"bytes"
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatery-go/frontend"
	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/report"
)

var _ = Describe("Reporter", func() {
	var buf *bytes.Buffer
	var r *report.Reporter

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: report.LevelWaveform})
		r = report.New(slog.New(handler))
	})

	It("scopes a design warning to a node reference", func() {
		frontend.NewBuilder("test")
		x := frontend.UIntLit(4, 5)

		r.DesignWarning(context.Background(), frontend.C().Circuit, x.Ref().Node, "retiming refused: reset mismatch")

		out := buf.String()
		Expect(out).To(ContainSubstring("retiming refused: reset mismatch"))
		Expect(out).To(ContainSubstring("Constant"))
	})

	It("scopes a group event to its qualified name", func() {
		b := frontend.NewBuilder("top")
		group := b.Circuit.Root().NewChild(hlim.GroupEntity, "core0")

		r.GroupEvent(context.Background(), group, "entity elaborated")

		out := buf.String()
		Expect(out).To(ContainSubstring("entity elaborated"))
		Expect(out).To(ContainSubstring("top.core0"))
	})

	It("scopes an event to an arbitrary node subset", func() {
		frontend.NewBuilder("test")
		x := frontend.UIntLit(4, 5)
		y := frontend.UIntLit(4, 6)
		subnet := hlim.NewSubnet(x.Ref().Node, y.Ref().Node)

		r.SubnetEvent(context.Background(), subnet, "rewrite touched subnet")

		out := buf.String()
		Expect(out).To(ContainSubstring("rewrite touched subnet"))
		Expect(out).To(ContainSubstring("Size:2"))
	})

	It("drops waveform samples below the handler level", func() {
		handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
		quiet := report.New(slog.New(handler))

		quiet.WaveformSample(context.Background(), hlim.NodeID(1), 1500, "1")

		Expect(buf.String()).To(BeEmpty())
	})
})
