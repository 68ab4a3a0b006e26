package frontend

import "github.com/sarchlab/gatery-go/hlim"

// condFrame is one entry of the conditional-scope stack described in
// ConditionalScope: a predicate plus whether it is negated
// (the ELSE branch of an IF shares the same predicate with negation).
type condFrame struct {
	predicate hlim.PortRef
	negate    bool
}

func (b *Builder) pushFrame(f condFrame) { b.conds = append(b.conds, f) }
func (b *Builder) popFrame()             { b.conds = b.conds[:len(b.conds)-1] }

// condition returns the PortRef of a Bit signal equal to the conjunction
// of every active conditional-scope frame (with per-frame negation
// applied), or the zero PortRef if no conditional scope is active.
func (b *Builder) condition() hlim.PortRef {
	if len(b.conds) == 0 {
		return hlim.PortRef{}
	}
	var acc hlim.PortRef
	for _, f := range b.conds {
		term := f.predicate
		if f.negate {
			term = b.notBit(term)
		}
		if !acc.Valid() {
			acc = term
			continue
		}
		acc = b.andBit(acc, term)
	}
	return acc
}

func (b *Builder) notBit(a hlim.PortRef) hlim.PortRef {
	id := b.create(hlim.NewUnaryNode(hlim.Bit(), false))
	must(b.Circuit.ConnectReplace(a, hlim.PortRef{Node: id}, 0))
	return hlim.PortRef{Node: id}
}

func (b *Builder) andBit(a, c hlim.PortRef) hlim.PortRef {
	id := b.create(hlim.NewBinaryNode(hlim.OpAnd, hlim.Bit(), hlim.Bit()))
	must(b.Circuit.ConnectReplace(a, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(c, hlim.PortRef{Node: id}, 1))
	return hlim.PortRef{Node: id}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// assign implements the assignment semantics: outside any conditional
// scope, the binding simply becomes newVal; inside one, the result is a
// multiplexer selecting newVal when the enclosing condition holds and
// prior otherwise. It is the single primitive every typed Signal's
// Assign method funnels through.
func (b *Builder) assign(t hlim.ConnectionType, prior, newVal hlim.PortRef) hlim.PortRef {
	cond := b.condition()
	if !cond.Valid() {
		return newVal
	}
	if !prior.Valid() {
		// No prior value to preserve (first write inside a scope, e.g. a
		// fresh wire): the mux's false branch is simply undefined.
		prior = b.undefinedOf(t)
	}
	id := b.create(hlim.NewMuxNode(t))
	must(b.Circuit.ConnectReplace(cond, hlim.PortRef{Node: id}, 0))
	must(b.Circuit.ConnectReplace(prior, hlim.PortRef{Node: id}, 1))
	must(b.Circuit.ConnectReplace(newVal, hlim.PortRef{Node: id}, 2))
	return hlim.PortRef{Node: id}
}

func (b *Builder) undefinedOf(t hlim.ConnectionType) hlim.PortRef {
	id := b.create(hlim.NewConstantNode(t, hlim.NewBitVector(t.Width)))
	return hlim.PortRef{Node: id}
}

// Scope is the builder returned by If, supporting chained ElseIf/Else
// branches. Every branch's body runs under the conjunction of its own
// predicate (or the chain's accumulated negations, for ElseIf/Else) and
// whatever conditional scope was already active when If was called —
// nested IFs therefore compose into a longer conjunction, lowering to
// the mux chain.
type Scope struct {
	b            *Builder
	priorNegated []condFrame
	last         hlim.PortRef
}

// If opens a conditional scope guarded by cond, runs body, and closes
// the scope before returning.
func If(cond Bit, body func()) *Scope {
	b := C()
	s := &Scope{b: b}
	s.runBranch(cond.ref, false, body)
	s.last = cond.ref
	return s
}

func (s *Scope) runBranch(cond hlim.PortRef, negate bool, body func()) {
	for _, f := range s.priorNegated {
		s.b.pushFrame(f)
	}
	s.b.pushFrame(condFrame{predicate: cond, negate: negate})
	body()
	s.b.popFrame()
	for range s.priorNegated {
		s.b.popFrame()
	}
}

// ElseIf adds another guarded branch to the chain.
func (s *Scope) ElseIf(cond Bit, body func()) *Scope {
	s.priorNegated = append(s.priorNegated, condFrame{predicate: s.last, negate: true})
	s.runBranch(cond.ref, false, body)
	s.last = cond.ref
	return s
}

// Else runs body under the negation of every predicate in the chain —
// the final catch-all branch.
func (s *Scope) Else(body func()) {
	negated := append(append([]condFrame{}, s.priorNegated...), condFrame{predicate: s.last, negate: true})
	for _, f := range negated {
		s.b.pushFrame(f)
	}
	body()
	for range negated {
		s.b.popFrame()
	}
}
