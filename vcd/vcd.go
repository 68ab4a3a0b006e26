// Package vcd emits a textual Value Change Dump, the format waveform
// viewers (gtkwave and similar) read. A run opens a file, streams
// value changes to it for the run's duration, and defers Close, wired
// directly against sim.Recorder so a Simulation can be pointed at a
// Writer with no adapter in between.
package vcd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/gatery-go/hlim"
	"github.com/sarchlab/gatery-go/sim"
)

type signalKey struct {
	node  hlim.NodeID
	index int
}

type signal struct {
	id    string
	name  string
	width int
}

// Writer accumulates a set of tracked signals, then streams value
// changes as a Simulation drives it. It implements sim.Recorder.
type Writer struct {
	w       *bufio.Writer
	signals map[signalKey]*signal
	order   []signalKey
	nextID  int
	started bool

	havePending bool
	pendingTime int64
	pending     []string
}

// NewWriter wraps w; the caller owns opening and eventually closing the
// underlying file or buffer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), signals: map[signalKey]*signal{}}
}

// DefineSignal registers one node output for tracking under name, with
// the given bit width. Must be called before WriteHeader; defining the
// same (node, index) pair twice is a no-op.
func (w *Writer) DefineSignal(node hlim.NodeID, index int, name string, width int) {
	if w.started {
		panic("vcd: DefineSignal called after WriteHeader")
	}
	key := signalKey{node, index}
	if _, ok := w.signals[key]; ok {
		return
	}
	s := &signal{id: w.allocID(), name: name, width: width}
	w.signals[key] = s
	w.order = append(w.order, key)
}

// allocID hands out the next VCD identifier code: a base-94 digit
// string over the printable, non-whitespace ASCII range 33..126, which
// every VCD reader accepts as an opaque signal handle.
func (w *Writer) allocID() string {
	const first, last = 33, 126
	const base = last - first + 1
	n := w.nextID
	w.nextID++
	if n == 0 {
		return string(rune(first))
	}
	var digits []byte
	for n > 0 {
		digits = append(digits, byte(first+n%base))
		n /= base
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// WriteHeader emits the $version/$timescale/$scope/$var/$enddefinitions
// preamble, with every tracked signal starting undefined, then marks
// the Writer closed to further DefineSignal calls.
func (w *Writer) WriteHeader(scopeName string) {
	w.started = true
	fmt.Fprintf(w.w, "$version gatery-go vcd writer $end\n")
	fmt.Fprintf(w.w, "$timescale 1ps $end\n")
	fmt.Fprintf(w.w, "$scope module %s $end\n", scopeName)
	for _, key := range w.order {
		s := w.signals[key]
		fmt.Fprintf(w.w, "$var wire %d %s %s $end\n", s.width, s.id, s.name)
	}
	fmt.Fprintf(w.w, "$upscope $end\n")
	fmt.Fprintf(w.w, "$enddefinitions $end\n")
	fmt.Fprintf(w.w, "$dumpvars\n")
	for _, key := range w.order {
		s := w.signals[key]
		io.WriteString(w.w, formatValue(hlim.NewBitVector(s.width), s.id))
	}
	fmt.Fprintf(w.w, "$end\n")
}

// Sample implements sim.Recorder: it buffers v under node/index's
// signal until a sample at a later timestamp arrives, at which point
// the buffered block is flushed as one "#<ps>" section. Node/index
// pairs that were never registered via DefineSignal are ignored.
func (w *Writer) Sample(at sim.VTime, node hlim.NodeID, index int, v hlim.BitVector) {
	s, ok := w.signals[signalKey{node, index}]
	if !ok {
		return
	}
	ps := at.RoundPicoseconds()
	if w.havePending && ps != w.pendingTime {
		w.flush()
	}
	w.pendingTime = ps
	w.havePending = true
	w.pending = append(w.pending, formatValue(v, s.id))
}

func (w *Writer) flush() {
	if w.havePending && len(w.pending) > 0 {
		fmt.Fprintf(w.w, "#%d\n", w.pendingTime)
		for _, line := range w.pending {
			io.WriteString(w.w, line)
		}
	}
	w.havePending = false
	w.pending = nil
}

// Close flushes any buffered value changes and the underlying buffered
// writer. It does not close an io.Writer that also implements io.Closer
// — the caller that opened it is responsible for that.
func (w *Writer) Close() error {
	w.flush()
	return w.w.Flush()
}

// RegisterAtExit flushes w whenever the process terminates through
// atexit.Exit rather than returning normally from main, so a command
// that shuts down via atexit.Exit instead of a bare return still gets
// its waveform dump flushed. A run that panics or calls os.Exit
// directly bypasses this, the same as it bypasses a defer.
func (w *Writer) RegisterAtExit() {
	atexit.Register(func() { _ = w.Close() })
}

func formatValue(v hlim.BitVector, id string) string {
	if v.Width == 1 {
		return bitChar(v, 0) + id + "\n"
	}
	buf := make([]byte, v.Width)
	for i := 0; i < v.Width; i++ {
		buf[v.Width-1-i] = bitChar(v, i)[0]
	}
	return "b" + string(buf) + " " + id + "\n"
}

func bitChar(v hlim.BitVector, i int) string {
	value, defined := v.Bit(i)
	if !defined {
		return "x"
	}
	if value {
		return "1"
	}
	return "0"
}
