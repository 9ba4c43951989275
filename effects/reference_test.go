package effects

import (
	"testing"

	"github.com/wippyai/wasm-blockmerge/ir"
)

func TestHasSideEffects(t *testing.T) {
	tests := []struct {
		name string
		n    ir.Node
		want bool
	}{
		{"const", &ir.Const{ValType: ir.ValI32}, false},
		{"get_local", &ir.GetLocal{Local: 0, ValType: ir.ValI32}, false},
		{"set_local", &ir.SetLocal{Local: 0, Value: &ir.Const{ValType: ir.ValI32}}, true},
		{"call", &ir.Call{Target: "f"}, true},
		{"unreachable", &ir.Unreachable{}, true},
		{"break", &ir.Break{Target: "L"}, true},
		{
			"binary with nested call",
			&ir.Binary{Op: "i32.add", Left: &ir.Const{ValType: ir.ValI32}, Right: &ir.Call{Target: "f", RetType: ir.ValI32}},
			true,
		},
		{
			"binary without side effects",
			&ir.Binary{Op: "i32.add", Left: &ir.Const{ValType: ir.ValI32}, Right: &ir.Const{ValType: ir.ValI32}},
			false,
		},
		{"load", &ir.Load{Ptr: &ir.Const{ValType: ir.ValI32}, ValType: ir.ValI32}, false},
		{"store", &ir.Store{Ptr: &ir.Const{ValType: ir.ValI32}, Value: &ir.Const{ValType: ir.ValI32}, ValType: ir.ValI32}, true},
	}

	r := Reference{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Analyze(tt.n).HasSideEffects(); got != tt.want {
				t.Errorf("HasSideEffects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvalidatesMemory(t *testing.T) {
	r := Reference{}
	store := r.Analyze(&ir.Store{Ptr: &ir.Const{ValType: ir.ValI32}, Value: &ir.Const{ValType: ir.ValI32}, ValType: ir.ValI32})
	load := r.Analyze(&ir.Load{Ptr: &ir.Const{ValType: ir.ValI32}, ValType: ir.ValI32})
	constant := r.Analyze(&ir.Const{ValType: ir.ValI32})

	if !store.Invalidates(load) {
		t.Error("a store should invalidate a later load")
	}
	if store.Invalidates(constant) {
		t.Error("a store should not invalidate an unrelated constant")
	}
}

func TestInvalidatesLocals(t *testing.T) {
	r := Reference{}
	set0 := r.Analyze(&ir.SetLocal{Local: 0, Value: &ir.Const{ValType: ir.ValI32}})
	get0 := r.Analyze(&ir.GetLocal{Local: 0, ValType: ir.ValI32})
	get1 := r.Analyze(&ir.GetLocal{Local: 1, ValType: ir.ValI32})

	if !set0.Invalidates(get0) {
		t.Error("a write to local 0 should invalidate a read of local 0")
	}
	if set0.Invalidates(get1) {
		t.Error("a write to local 0 should not invalidate a read of local 1")
	}
}

func TestInvalidatesUnknownEffectsIsConservative(t *testing.T) {
	r := Reference{}
	c := r.Analyze(&ir.Const{ValType: ir.ValI32})
	if !c.Invalidates(fakeEffects{}) {
		t.Error("an unrecognized Effects implementation should be treated as invalidating")
	}
}

type fakeEffects struct{}

func (fakeEffects) HasSideEffects() bool          { return false }
func (fakeEffects) Invalidates(Effects) bool      { return false }
