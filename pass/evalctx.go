package pass

import "github.com/sarchlab/gatery-go/hlim"

// foldCtx is a minimal hlim.EvalContext over fixed input values, used to
// run a combinational node's own Evaluate method at post-processing
// time instead of re-deriving its truth table — constant folding and
// retiming's reset-value recomputation both need "what would this node
// output given these inputs," and the node already knows how to compute
// that.
type foldCtx struct {
	inputs  []hlim.BitVector
	outputs []hlim.BitVector
	state   hlim.NodeState
}

func (f *foldCtx) ReadInput(i int) hlim.BitVector { return f.inputs[i] }

func (f *foldCtx) WriteOutput(i int, v hlim.BitVector) {
	for len(f.outputs) <= i {
		f.outputs = append(f.outputs, hlim.BitVector{})
	}
	f.outputs[i] = v
}

func (f *foldCtx) ClockEdge(*hlim.Clock) bool { return false }
func (f *foldCtx) State() *hlim.NodeState     { return &f.state }

// evalWith runs n's Evaluate with the given input values and returns its
// first output.
func evalWith(n hlim.Node, inputs ...hlim.BitVector) hlim.BitVector {
	ctx := &foldCtx{inputs: inputs}
	n.Evaluate(ctx)
	return ctx.outputs[0]
}

// constSourceOf reports the defined bit vector driving ref if its source
// node is a Constant, and ok=false otherwise.
func constSourceOf(c *hlim.Circuit, ref hlim.PortRef) (hlim.BitVector, bool) {
	if !ref.Valid() {
		return hlim.BitVector{}, false
	}
	cn, ok := c.Node(ref.Node).(*hlim.ConstantNode)
	if !ok {
		return hlim.BitVector{}, false
	}
	return cn.Value, true
}
