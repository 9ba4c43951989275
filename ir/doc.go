// Package ir provides the tree-shaped intermediate representation operated
// on by the block-merging pass: a closed set of expression node kinds
// (Block, Break, Switch, Drop, and the usual operand-bearing expressions),
// each carrying a type drawn from {none, unreachable, a concrete value type}.
//
// Nodes are owned by an Arena handed out by a Module. The pass mutates
// child slices and child pointers in place; a node dropped from the tree
// simply becomes unreachable and is reclaimed by the garbage collector,
// matching the "arena/allocator supplied by the module" ownership model
// without needing an explicit free list.
//
// Construction and binary/textual parsing of the tree are out of this
// package's scope — callers (or a parser built on top of this package)
// build trees directly via the node constructors and Builder.
package ir
