// Package blockmerge implements a block-merging optimization pass over a
// tree-structured WebAssembly-like intermediate representation.
//
// # Architecture Overview
//
// The module is organized into small, single-purpose packages:
//
//	blockmerge/        Root package: this overview only, no exported API
//	├── ir/            Expression node kinds, child-slot traversal, builders
//	├── effects/        Conservative side-effect and dependency analysis
//	├── pass/           The block-merging rewrite and its function-parallel driver
//	├── wasm/           Core WebAssembly binary encode/decode primitives
//	├── errors/         Structured error types shared across packages
//	└── cmd/
//	    └── blockmerge-demo/  Builds toy bodies, runs the pass, prints dumps
//
// # Quick Start
//
// Rewrite a single function body in place:
//
//	p := pass.New(pass.Options{})
//	if err := p.Run(body); err != nil {
//	    log.Fatal(err)
//	}
//
// Rewrite every function in a module, fanning out across goroutines:
//
//	if err := pass.RunModule(mod, pass.Options{}); err != nil {
//	    log.Fatal(err)
//	}
//
// # What the pass does
//
// Three related rewrites, run to a fixed point per block:
//
//   - Splicing an anonymous child block's contents directly into its parent.
//   - Sinking a dropped block's value into that block's own tail, stripping
//     break values where doing so is safe to flatten the block further.
//   - Hoisting a block-valued operand so the block wraps the expression that
//     held it, when no intervening operand's effects would be reordered.
//
// None of these change what a function computes; they only change how its
// tree is shaped, trading nesting for straight-line sequencing.
//
// # Thread Safety
//
// effects.Analyzer implementations must hold no mutable state and be safe
// for concurrent use, since pass.RunModule shares one analyzer across every
// in-flight function. Pass.Run itself operates on a single function body and
// is not safe to call concurrently on the same tree.
package blockmerge
