package effects

import "github.com/wippyai/wasm-blockmerge/ir"

// Reference is a conservative Analyzer that inspects every node kind
// directly rather than deferring to per-opcode metadata. It is the default
// Analyzer used when none is supplied to the pass.
type Reference struct{}

// footprint is Reference's concrete Effects value.
type footprint struct {
	callsOrTraps  bool
	branchesOut   bool
	readsMemory   bool
	writesMemory  bool
	localsRead    map[uint32]bool
	localsWritten map[uint32]bool
}

func newFootprint() *footprint {
	return &footprint{localsRead: map[uint32]bool{}, localsWritten: map[uint32]bool{}}
}

func (f *footprint) HasSideEffects() bool {
	return f.callsOrTraps || f.branchesOut || f.writesMemory || len(f.localsWritten) > 0
}

func (f *footprint) Invalidates(other Effects) bool {
	o, ok := other.(*footprint)
	if !ok {
		// An Effects value from a different implementation: no shared
		// vocabulary to compare against, so assume the worst.
		return true
	}

	// A subtree that touches nothing observable can move past anything.
	empty := func(x *footprint) bool {
		return !x.callsOrTraps && !x.branchesOut && !x.readsMemory && !x.writesMemory &&
			len(x.localsRead) == 0 && len(x.localsWritten) == 0
	}
	if empty(f) || empty(o) {
		return false
	}

	if f.callsOrTraps || o.callsOrTraps {
		return true
	}
	if f.branchesOut || o.branchesOut {
		return true
	}
	if (f.writesMemory && (o.readsMemory || o.writesMemory)) || (o.writesMemory && f.readsMemory) {
		return true
	}
	for l := range f.localsWritten {
		if o.localsRead[l] || o.localsWritten[l] {
			return true
		}
	}
	for l := range o.localsWritten {
		if f.localsRead[l] {
			return true
		}
	}
	return false
}

// Analyze walks n's whole subtree and accumulates a footprint. Side effects
// nest: a Call buried three levels deep in a Binary still makes the Binary
// as a whole unsafe to skip or reorder.
func (Reference) Analyze(n ir.Node) Effects {
	f := newFootprint()
	collect(f, n)
	return f
}

func collect(f *footprint, n ir.Node) {
	if n == nil {
		return
	}

	switch t := n.(type) {
	case *ir.Call:
		f.callsOrTraps = true
	case *ir.CallImport:
		f.callsOrTraps = true
	case *ir.CallIndirect:
		f.callsOrTraps = true
	case *ir.Unreachable:
		f.callsOrTraps = true
	case *ir.Break:
		f.branchesOut = true
	case *ir.Switch:
		f.branchesOut = true
	case *ir.Return:
		f.branchesOut = true
	case *ir.Load:
		f.readsMemory = true
		if t.Atomic {
			f.callsOrTraps = true // atomic ordering, don't let it move
		}
	case *ir.Store:
		f.writesMemory = true
		if t.Atomic {
			f.callsOrTraps = true
		}
	case *ir.AtomicRMW:
		f.readsMemory = true
		f.writesMemory = true
		f.callsOrTraps = true
	case *ir.AtomicCmpxchg:
		f.readsMemory = true
		f.writesMemory = true
		f.callsOrTraps = true
	case *ir.SetLocal:
		f.localsWritten[t.Local] = true
	case *ir.GetLocal:
		f.localsRead[t.Local] = true
	}

	for _, slot := range ir.ChildSlots(n) {
		collect(f, *slot)
	}
}
