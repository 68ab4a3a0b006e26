// Package frontend presents the imperative, strongly-typed surface:
// signal declarations, operators, IF/ELSE conditional scopes, clock
// scopes, registers, and pins, all of which lower to hlim graph
// construction.
package frontend

import (
	"github.com/sarchlab/gatery-go/hlim"
)

// Builder is the per-elaboration construction context: every signal
// method and every package-level helper (IF, Reg, PinIn, ...) operates
// against the current Builder, set with Use.
type Builder struct {
	Circuit *hlim.Circuit
	group   *hlim.NodeGroup

	conds   []condFrame
	clocks  []*hlim.Clock
}

// NewBuilder creates a Builder over a fresh circuit named name and makes
// it current.
func NewBuilder(name string) *Builder {
	b := &Builder{Circuit: hlim.NewCircuit(name)}
	b.group = b.Circuit.Root()
	current = b
	return b
}

// current is the implicit active Builder. Elaboration is
// single-threaded, so a single package-level pointer (rather than real
// thread-local storage) is sufficient.
var current *Builder

// Use makes b the current Builder; callers running multiple independent
// elaborations in sequence (e.g. one circuit per test) call this to
// switch between them.
func Use(b *Builder) { current = b }

// C returns the current Builder, panicking if none has been created —
// fail-fast for what is always a programmer error.
func C() *Builder {
	if current == nil {
		panic("frontend: no active Builder; call NewBuilder or Use first")
	}
	return current
}

// Group returns the node-group new nodes are currently attached to.
func (b *Builder) Group() *hlim.NodeGroup { return b.group }

// Area opens a named hierarchical scope for the duration of fn, then
// restores the previous scope — the frontend surface for the
// NodeGroup tree.
func (b *Builder) Area(name string, fn func()) {
	b.inGroup(hlim.GroupArea, name, fn)
}

// Entity opens a named scope that becomes a module/entity boundary in
// exported RTL.
func (b *Builder) Entity(name string, fn func()) {
	b.inGroup(hlim.GroupEntity, name, fn)
}

func (b *Builder) inGroup(kind hlim.GroupKind, name string, fn func()) {
	prev := b.group
	b.group = prev.NewChild(kind, name)
	defer func() { b.group = prev }()
	fn()
}

func (b *Builder) create(n hlim.Node) hlim.NodeID {
	return b.Circuit.CreateNode(n, b.group)
}
