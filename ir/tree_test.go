package ir

import "testing"

func TestBlockType(t *testing.T) {
	empty := &Block{}
	empty.Finalize()
	if empty.Type() != ValNone {
		t.Errorf("empty block type = %v, want none", empty.Type())
	}

	b := &Block{List: []Node{&Nop{}, &Const{ValType: ValI32}}}
	b.Finalize()
	if b.Type() != ValI32 {
		t.Errorf("block type = %v, want i32", b.Type())
	}
}

func TestBreakType(t *testing.T) {
	tests := []struct {
		name string
		b    *Break
		want ValType
	}{
		{"unconditional no value", &Break{Target: "L"}, ValUnreachable},
		{"unconditional with value", &Break{Target: "L", Value: &Const{ValType: ValI32}}, ValUnreachable},
		{"conditional no value", &Break{Target: "L", Condition: &Const{ValType: ValI32}}, ValNone},
		{
			"conditional with value",
			&Break{Target: "L", Condition: &Const{ValType: ValI32}, Value: &Const{ValType: ValI64}},
			ValI64,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Type(); got != tt.want {
				t.Errorf("Type() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSwitchAlwaysUnreachable(t *testing.T) {
	s := &Switch{Targets: []string{"a", "b"}, Default: "c"}
	if s.Type() != ValUnreachable {
		t.Errorf("switch type = %v, want unreachable", s.Type())
	}
}

func TestDropPropagatesUnreachable(t *testing.T) {
	d := &Drop{Value: &Unreachable{}}
	d.Finalize()
	if d.Type() != ValUnreachable {
		t.Errorf("drop of unreachable: type = %v, want unreachable", d.Type())
	}

	d2 := &Drop{Value: &Const{ValType: ValI32}}
	d2.Finalize()
	if d2.Type() != ValNone {
		t.Errorf("drop of i32: type = %v, want none", d2.Type())
	}
}

func TestStorePropagatesUnreachable(t *testing.T) {
	s := &Store{Ptr: &Unreachable{}, Value: &Const{ValType: ValI32}, ValType: ValI32}
	s.Finalize()
	if s.Type() != ValUnreachable {
		t.Errorf("store with unreachable ptr: type = %v, want unreachable", s.Type())
	}

	s2 := &Store{Ptr: &Const{ValType: ValI32}, Value: &Const{ValType: ValI32}, ValType: ValI32}
	s2.Finalize()
	if s2.Type() != ValNone {
		t.Errorf("well-typed store: type = %v, want none", s2.Type())
	}
}

func TestFinalizeAsAssertsMatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FinalizeAs should panic on mismatch")
		}
	}()
	b := &Block{List: []Node{&Const{ValType: ValI32}}}
	b.FinalizeAs(ValI64)
}

func TestFinalizeAsAcceptsMatch(t *testing.T) {
	b := &Block{List: []Node{&Const{ValType: ValI32}}}
	b.FinalizeAs(ValI32)
	if b.Type() != ValI32 {
		t.Errorf("Type() = %v, want i32", b.Type())
	}
}

func TestChildSlotsMutatesInPlace(t *testing.T) {
	b := &Block{List: []Node{&Const{ValType: ValI32}, &Const{ValType: ValI64}}}
	slots := ChildSlots(b)
	if len(slots) != 2 {
		t.Fatalf("len(slots) = %d, want 2", len(slots))
	}
	*slots[0] = &Const{ValType: ValF32}
	if b.List[0].(*Const).ValType != ValF32 {
		t.Error("mutating through slot did not update the block's list")
	}
}

func TestChildSlotsLeaf(t *testing.T) {
	if slots := ChildSlots(&Const{ValType: ValI32}); slots != nil {
		t.Errorf("ChildSlots(Const) = %v, want nil", slots)
	}
	if slots := ChildSlots(&Nop{}); slots != nil {
		t.Errorf("ChildSlots(Nop) = %v, want nil", slots)
	}
}

func TestBuilderMakeDrop(t *testing.T) {
	d := Builder{}.MakeDrop(&Const{ValType: ValI32})
	if d.Type() != ValNone {
		t.Errorf("MakeDrop type = %v, want none", d.Type())
	}
}

func TestBuilderMakeDropPanicsOnNonConcrete(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MakeDrop should panic on a none-typed operand")
		}
	}()
	Builder{}.MakeDrop(&Nop{})
}

func TestBuilderMakeSequence(t *testing.T) {
	seq := Builder{}.MakeSequence(&Nop{}, &Const{ValType: ValI32})
	if seq.Type() != ValI32 {
		t.Errorf("MakeSequence type = %v, want i32", seq.Type())
	}
	if len(seq.List) != 2 {
		t.Errorf("len(List) = %d, want 2", len(seq.List))
	}
}

func TestDump(t *testing.T) {
	b := &Block{List: []Node{
		&SetLocal{Local: 0, Value: &Const{ValType: ValI32}},
		&GetLocal{Local: 0, ValType: ValI32},
	}}
	b.Finalize()
	out := Dump(b)
	if out == "" {
		t.Error("Dump returned empty string")
	}
}
