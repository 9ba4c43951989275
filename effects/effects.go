package effects

import "github.com/wippyai/wasm-blockmerge/ir"

// Effects summarizes what an expression subtree might do to the outside
// world, as computed by an Analyzer.
type Effects interface {
	// HasSideEffects reports whether evaluating the subtree does anything
	// observable beyond producing its result: a call, a trap, a branch out,
	// or a write to memory or a local.
	HasSideEffects() bool

	// Invalidates reports whether this subtree and other cannot be safely
	// reordered relative to each other.
	Invalidates(other Effects) bool
}

// Analyzer computes Effects for an expression subtree.
type Analyzer interface {
	Analyze(n ir.Node) Effects
}
