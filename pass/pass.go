package pass

import (
	"go.uber.org/zap"

	pkgerrors "github.com/wippyai/wasm-blockmerge/errors"

	"github.com/wippyai/wasm-blockmerge/effects"
	"github.com/wippyai/wasm-blockmerge/ir"
)

// Pass holds the collaborators a single run of the block merger needs.
// It carries no per-run mutable state, so one Pass can run many functions
// concurrently (see RunModule).
type Pass struct {
	analyzer effects.Analyzer
	logger   *zap.Logger
}

// New constructs a Pass from Options, defaulting unset fields.
func New(opts Options) *Pass {
	return &Pass{analyzer: opts.analyzer(), logger: opts.logger()}
}

// Run rewrites body in place.
func (p *Pass) Run(body *ir.Block) error {
	if body == nil {
		return pkgerrors.NilPointer(pkgerrors.PhaseValidate, []string{"body"}, "function body must not be nil")
	}
	v := &visitor{analyzer: p.analyzer, logger: p.logger}
	var root ir.Node = body
	v.walk(&root)
	return nil
}

// visitor carries the per-function recursion. It is not shared across
// functions, but is stateless beyond the collaborators, so callers may
// construct it fresh for every Run without cost.
type visitor struct {
	analyzer effects.Analyzer
	logger   *zap.Logger
}

var builder ir.Builder

// walk recurses post-order through slot and its descendants, rewriting
// bottom-up: a node's children are fully transformed before the node
// itself is visited.
func (v *visitor) walk(slot *ir.Node) {
	if slot == nil || *slot == nil {
		return
	}
	for _, c := range ir.ChildSlots(*slot) {
		v.walk(c)
	}
	v.visit(slot)
}

// visit dispatches to the per-kind hoisting rule for the node currently in
// slot. self is captured once and stays stable across every optimize call
// made while visiting this node, even after the first successful hoist
// has overwritten *slot with the wrapping block — optimize needs self's
// original identity to place it as a block's tail and to recognize it as
// outer's last element on a later call. Leaves and kinds with no operand
// worth hoisting do nothing.
func (v *visitor) visit(slot *ir.Node) {
	self := *slot
	switch n := self.(type) {
	case *ir.Block:
		v.optimizeBlock(n)
	case *ir.Drop:
		v.optimize(self, slot, &n.Value, nil)
	case *ir.Unary:
		v.optimize(self, slot, &n.Value, nil)
	case *ir.SetLocal:
		v.optimize(self, slot, &n.Value, nil)
	case *ir.Load:
		v.optimize(self, slot, &n.Ptr, nil)
	case *ir.Return:
		v.optimize(self, slot, &n.Value, nil)
	case *ir.Binary:
		outer := v.optimize(self, slot, &n.Left, nil)
		v.optimize(self, slot, &n.Right, outer, &n.Left)
	case *ir.Store:
		outer := v.optimize(self, slot, &n.Ptr, nil)
		v.optimize(self, slot, &n.Value, outer, &n.Ptr)
	case *ir.AtomicRMW:
		outer := v.optimize(self, slot, &n.Ptr, nil)
		v.optimize(self, slot, &n.Value, outer, &n.Ptr)
	case *ir.Break:
		outer := v.optimize(self, slot, &n.Value, nil)
		v.optimize(self, slot, &n.Condition, outer, &n.Value)
	case *ir.Switch:
		outer := v.optimize(self, slot, &n.Value, nil)
		v.optimize(self, slot, &n.Condition, outer, &n.Value)
	case *ir.Select:
		v.optimizeTernary(self, slot, &n.IfTrue, &n.IfFalse, &n.Condition)
	case *ir.AtomicCmpxchg:
		v.optimizeTernary(self, slot, &n.Ptr, &n.Expected, &n.Replacement)
	case *ir.Call:
		v.handleVariadic(self, slot, n.Operands)
	case *ir.CallImport:
		v.handleVariadic(self, slot, n.Operands)
	case *ir.CallIndirect:
		v.handleCallIndirect(self, slot, n)
	}
}

// optimize tries to hoist the block-valued expression in child so that it
// wraps self instead of sitting inside it. self is the expression being
// visited (Store, Binary, ...), stable across every call made for the same
// visit. selfSlot is where self's own parent references it; it is only
// written to on the call that performs the very first hoist for self
// (outer == nil going in), since that is the only point at which self's
// parent needs to be told "this now points at a block instead". deps are
// earlier operands of self (already fixed in place, possibly already
// themselves hoisted into outer) that must not be reordered across
// child's effects.
//
// outer is the accumulated wrapping block from a prior call against the
// same self (nil on the first operand); its return value threads into the
// next call so multiple operands can each contribute their hoisted
// sequencing to one shared wrapper.
func (v *visitor) optimize(self ir.Node, selfSlot *ir.Node, child *ir.Node, outer *ir.Block, deps ...*ir.Node) *ir.Block {
	if *child == nil {
		return outer
	}

	if len(deps) > 0 {
		childFx := v.analyzer.Analyze(*child)
		for _, d := range deps {
			if *d == nil {
				continue
			}
			if v.analyzer.Analyze(*d).Invalidates(childFx) {
				return outer
			}
		}
	}

	block, ok := (*child).(*ir.Block)
	if !ok || block.Label != "" || len(block.List) < 2 {
		return outer
	}

	parentType := self.Type()
	if parentType == ir.ValNone && hasUnreachableChild(block) {
		// moving the block to the outside would turn a none-typed parent
		// into an unreachable one.
		return outer
	}

	tail := block.List[len(block.List)-1]
	if tail.Type() == ir.ValUnreachable {
		return outer
	}
	if block.Type() != tail.Type() {
		return outer
	}

	*child = tail

	if outer == nil {
		block.List[len(block.List)-1] = self
		block.FinalizeAs(parentType)
		*selfSlot = block
		return block
	}

	last := len(outer.List) - 1
	assertf(last >= 0 && outer.List[last] == self, "optimize: outer.list.back() must equal self before chaining")
	outer.List = outer.List[:last]
	outer.List = append(outer.List, block.List[:len(block.List)-1]...)
	outer.List = append(outer.List, self)
	return outer
}

func hasUnreachableChild(b *ir.Block) bool {
	for _, item := range b.List {
		if item.Type() == ir.ValUnreachable {
			return true
		}
	}
	return false
}

// optimizeTernary handles the three-operand and Select shapes, where any
// operand with a side effect blocks hoisting of every operand from it
// onward (but operands strictly before the first side-effecting one may
// still have already been hoisted).
func (v *visitor) optimizeTernary(self ir.Node, selfSlot *ir.Node, a, b, c *ir.Node) {
	var outer *ir.Block
	if v.analyzer.Analyze(*a).HasSideEffects() {
		return
	}
	outer = v.optimize(self, selfSlot, a, outer)
	if v.analyzer.Analyze(*b).HasSideEffects() {
		return
	}
	outer = v.optimize(self, selfSlot, b, outer)
	if v.analyzer.Analyze(*c).HasSideEffects() {
		return
	}
	v.optimize(self, selfSlot, c, outer)
}

// handleVariadic is optimizeTernary's counterpart for Call/CallImport's
// operand list: operands are inspected left to right, stopping at the
// first side-effecting one.
func (v *visitor) handleVariadic(self ir.Node, selfSlot *ir.Node, operands []ir.Node) {
	var outer *ir.Block
	for i := range operands {
		if v.analyzer.Analyze(operands[i]).HasSideEffects() {
			return
		}
		outer = v.optimize(self, selfSlot, &operands[i], outer)
	}
}

func (v *visitor) handleCallIndirect(self ir.Node, selfSlot *ir.Node, n *ir.CallIndirect) {
	var outer *ir.Block
	for i := range n.Operands {
		if v.analyzer.Analyze(n.Operands[i]).HasSideEffects() {
			return
		}
		outer = v.optimize(self, selfSlot, &n.Operands[i], outer)
	}
	if v.analyzer.Analyze(n.Target).HasSideEffects() {
		return
	}
	v.optimize(self, selfSlot, &n.Target, outer)
}
