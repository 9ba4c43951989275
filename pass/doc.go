// Package pass implements a block-merging optimization over the ir tree:
// it flattens anonymous child blocks into their parent, hoists block-typed
// operands out so they wrap the expression that uses them, and strips
// now-unnecessary break values, all without changing observable behavior.
//
// Reference implementation this is modeled on: Binaryen's MergeBlocks pass.
package pass
