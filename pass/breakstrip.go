package pass

import (
	"github.com/wippyai/wasm-blockmerge/effects"
	"github.com/wippyai/wasm-blockmerge/ir"
)

// problemFinder walks the subtree of a labeled block and decides whether
// every break to that label can safely have its value stripped. It must
// run before breakValueStripper touches anything, since once a value is
// gone there is no way to tell whether removing it changed behavior.
type problemFinder struct {
	origin       string
	analyzer     effects.Analyzer
	problem      bool
	brIfs        int
	droppedBrIfs int
}

func (f *problemFinder) walk(n ir.Node) {
	if n == nil {
		return
	}
	for _, slot := range ir.ChildSlots(n) {
		f.walk(*slot)
	}
	switch t := n.(type) {
	case *ir.Break:
		if t.Target == f.origin {
			if t.Condition != nil {
				f.brIfs++
			}
			if t.Value != nil && f.analyzer.Analyze(t.Value).HasSideEffects() {
				f.problem = true
			}
		}
	case *ir.Drop:
		if br, ok := t.Value.(*ir.Break); ok && br.Target == f.origin && br.Condition != nil {
			f.droppedBrIfs++
		}
	case *ir.Switch:
		if t.Default == f.origin {
			f.problem = true
			return
		}
		for _, target := range t.Targets {
			if target == f.origin {
				f.problem = true
				return
			}
		}
	}
}

// found reports whether stripping break values targeting origin would be
// unsafe: either a side-effecting value would be dropped, a switch can
// reach origin (so some paths can't have their value stripped), or more
// conditional breaks (br_if) target origin than appear directly inside a
// Drop (so some br_if's flowed-through value may be used, not just
// discarded).
func (f *problemFinder) found() bool {
	assertf(f.brIfs >= f.droppedBrIfs, "problemFinder: brIfs (%d) < droppedBrIfs (%d)", f.brIfs, f.droppedBrIfs)
	return f.problem || f.brIfs > f.droppedBrIfs
}

// breakValueStripper rewrites every break to origin that carries a value:
// the value is split off into a drop that runs before a value-less break.
// It also re-runs the block flattener on every block it passes through,
// since splitting off a drop creates new two-element sequences that are
// themselves candidates for splicing into their surrounding block.
type breakValueStripper struct {
	origin string
	v      *visitor
}

func (s *breakValueStripper) walk(slot *ir.Node) {
	if slot == nil || *slot == nil {
		return
	}
	for _, c := range ir.ChildSlots(*slot) {
		s.walk(c)
	}

	switch n := (*slot).(type) {
	case *ir.Block:
		s.v.optimizeBlock(n)
	case *ir.Break:
		if n.Value != nil && n.Target == s.origin {
			value := n.Value
			if value.Type() == ir.ValUnreachable {
				*slot = value
				return
			}
			n.Value = nil
			n.Finalize()
			*slot = builder.MakeSequence(builder.MakeDrop(value), n)
		}
	case *ir.Drop:
		if !n.Value.Type().IsConcrete() {
			*slot = n.Value
		}
	}
}
