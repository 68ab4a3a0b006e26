// Package pass implements the post-processing pipeline: an ordered
// sequence of graph rewrites that run after elaboration and before
// simulation-plan construction or export. Each pass follows the
// structural/timing static-check shape of verify.Linter, generalized
// from "report a problem" into "rewrite the graph, then optionally
// report what changed."
package pass

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/gatery-go/hlim"
)

// LevelDesignWarning sits between Info and Warn for post-processing
// advisories that are not fatal but worth surfacing ("retiming
// refused: reset mismatch"), following the same custom-level pattern as
// core's LevelTrace/LevelWaveform.
const LevelDesignWarning slog.Level = slog.LevelInfo + 1

// Result carries what a single pass changed, for reporting and for the
// pipeline's fixed-point loop: a pass that reports Changed keeps the
// pipeline iterating.
type Result struct {
	Pass     string
	Changed  bool
	Detail   string
	Warnings []string
}

// Pass is one post-processing rewrite or check over a circuit.
type Pass interface {
	Name() string
	Run(c *hlim.Circuit) (Result, error)
}

// Pipeline runs an ordered list of passes, optionally iterating passes
// that report changes back to a fixed point before moving on — matching
// the description of constant-folding/DCE running until no further
// simplification is possible before retiming runs once.
type Pipeline struct {
	Passes []Pass
	Logger *slog.Logger
}

// NewPipeline builds the default pass ordering: the latch check, signal
// elimination, then a constprop/DCE fixed point, then memory-port
// inference, reset/enable propagation, retiming, the clock-domain
// check, and finally the technology-mapping hook.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Logger: logger,
		Passes: []Pass{
			&LatchCheck{},
			&SignalElimination{},
			&ConstantFold{},
			&DeadCodeElimination{},
			&MemoryPortInference{},
			&ResetEnablePropagation{},
			&Retiming{},
			&ClockDomainCheck{},
			&TechMapHook{},
		},
	}
}

// Run executes every pass in order, re-running SignalElimination,
// ConstantFold and DeadCodeElimination each until it reports no change,
// and returns the per-pass results for reporting.
func (p *Pipeline) Run(c *hlim.Circuit) ([]Result, error) {
	var results []Result
	for _, ps := range p.Passes {
		for {
			r, err := ps.Run(c)
			r.Pass = ps.Name()
			if err != nil {
				return results, fmt.Errorf("pass %s: %w", ps.Name(), err)
			}
			for _, w := range r.Warnings {
				p.Logger.Log(context.Background(), LevelDesignWarning, w, "pass", ps.Name())
			}
			results = append(results, r)
			if !r.Changed || !fixedPointPass(ps) {
				break
			}
		}
	}
	return results, nil
}

func fixedPointPass(p Pass) bool {
	switch p.(type) {
	case *ConstantFold, *DeadCodeElimination, *SignalElimination:
		return true
	default:
		return false
	}
}

// Report renders pipeline results as a table, the same go-pretty/table
// rendering core uses for its structured per-cycle dumps.
func Report(results []Result) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Pass", "Changed", "Detail"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Pass, r.Changed, r.Detail})
	}
	return t.Render()
}
