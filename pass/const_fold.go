package pass

import "github.com/sarchlab/gatery-go/hlim"

// ConstantFold rewrites any combinational node whose operands are all
// Constant nodes into a single Constant carrying the computed result,
// and additionally recognizes the operand-independent identities named
// in the constant-propagation step: `x & 0 = 0`, `x | 1s = 1s`,
// `x ^ 0 = x`, and `mux(c, a, a) = a`. The pipeline re-runs this pass to
// a fixed point alongside DeadCodeElimination so each fold can expose
// further folding opportunities.
type ConstantFold struct{}

func (ConstantFold) Name() string { return "constant-fold" }

func (ConstantFold) Run(c *hlim.Circuit) (Result, error) {
	folded := 0
	identities := 0

	for _, id := range c.AllNodeIDs() {
		n := c.Node(id)
		if _, ok := n.(*hlim.ConstantNode); ok {
			continue
		}
		if !hlim.IsCombinational(n) {
			continue
		}
		if len(n.OutputPorts()) != 1 {
			continue
		}

		if len(c.Consumers(hlim.PortRef{Node: id})) > 0 && bypassByIdentity(c, id, n) {
			identities++
			continue
		}

		ins := n.InputPorts()
		if len(ins) == 0 {
			continue
		}
		values := make([]hlim.BitVector, len(ins))
		allConst := true
		for i, in := range ins {
			v, ok := constSourceOf(c, in.Src)
			if !ok {
				allConst = false
				break
			}
			values[i] = v
		}
		if !allConst {
			continue
		}

		result := evalWith(n, values...)
		newID := c.CreateNode(hlim.NewConstantNode(n.OutputPorts()[0].Type, result), c.GroupOf(id))
		rewireConsumers(c, id, 0, newID)
		c.RemoveNode(id)
		folded++
	}

	changed := folded > 0 || identities > 0
	return Result{
		Changed: changed,
		Detail:  countDetail("nodes folded", folded) + ", " + countDetail("identities applied", identities),
	}, nil
}

// rewireConsumers redirects every consumer of oldID's output outIdx to
// instead read output 0 of newID.
func rewireConsumers(c *hlim.Circuit, oldID hlim.NodeID, outIdx int, newID hlim.NodeID) {
	for _, consumer := range c.Consumers(hlim.PortRef{Node: oldID, Index: outIdx}) {
		must(c.ConnectReplace(hlim.PortRef{Node: newID}, consumer, consumer.Index))
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// bypassByIdentity recognizes algebraic identities that hold regardless
// of whether the non-trivial operand is itself constant, and rewires
// node's consumers directly to the identity's result without evaluating
// anything.
func bypassByIdentity(c *hlim.Circuit, id hlim.NodeID, n hlim.Node) bool {
	switch bn := n.(type) {
	case *hlim.BinaryNode:
		ins := bn.InputPorts()
		a, b := ins[0].Src, ins[1].Src
		av, aConst := constSourceOf(c, a)
		bv, bConst := constSourceOf(c, b)
		switch bn.Op {
		case hlim.OpAnd:
			if aConst && av.AllDefined() && av.Uint64() == 0 {
				rewireConsumers(c, id, 0, a.Node)
				return true
			}
			if bConst && bv.AllDefined() && bv.Uint64() == 0 {
				rewireConsumers(c, id, 0, b.Node)
				return true
			}
		case hlim.OpOr:
			if aConst && av.AllDefined() && allOnes(av) {
				rewireConsumers(c, id, 0, a.Node)
				return true
			}
			if bConst && bv.AllDefined() && allOnes(bv) {
				rewireConsumers(c, id, 0, b.Node)
				return true
			}
		case hlim.OpXor:
			if aConst && av.AllDefined() && av.Uint64() == 0 {
				rewireConsumers(c, id, 0, b.Node)
				return true
			}
			if bConst && bv.AllDefined() && bv.Uint64() == 0 {
				rewireConsumers(c, id, 0, a.Node)
				return true
			}
		}
	case *hlim.MuxNode:
		ins := bn.InputPorts()
		whenFalse, whenTrue := ins[1].Src, ins[2].Src
		if whenFalse.Valid() && whenFalse == whenTrue {
			rewireConsumers(c, id, 0, whenFalse.Node)
			return true
		}
	}
	return false
}

func allOnes(v hlim.BitVector) bool {
	if v.Width >= 64 {
		return v.Uint64() == ^uint64(0)
	}
	return v.Uint64() == (uint64(1)<<uint(v.Width))-1
}
