// Package effects answers two questions the block-merging pass needs about
// an expression subtree: does it have a side effect (so it can't be
// skipped or reordered across), and would executing it invalidate the
// result of evaluating some other expression first (so the two can't be
// reordered relative to each other).
//
// Reference is a conservative, table-driven implementation keyed on node
// kind, in the spirit of a handler registry: each kind contributes whatever
// memory/local footprint it has, and those footprints are compared
// pairwise to decide invalidation.
package effects
