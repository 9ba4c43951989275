package pass

import (
	"testing"

	"github.com/wippyai/wasm-blockmerge/ir"
)

// buildSamples returns a handful of function bodies exercising every shape
// the rewrite touches, used by the property tests below.
func buildSamples() []*ir.Block {
	sample1 := &ir.Block{List: []ir.Node{
		&ir.SetLocal{Local: 0, Value: i32(1)},
		&ir.Block{List: []ir.Node{
			&ir.SetLocal{Local: 1, Value: i32(2)},
			&ir.SetLocal{Local: 2, Value: i32(3)},
		}},
		&ir.SetLocal{Local: 3, Value: i32(4)},
	}}
	sample1.Finalize()
	sample1.List[1].(*ir.Block).Finalize()

	sample2 := &ir.Block{List: []ir.Node{
		builder.MakeDrop(func() *ir.Block {
			b := &ir.Block{List: []ir.Node{call("f"), load(4)}}
			b.Finalize()
			return b
		}()),
	}}
	sample2.Finalize()

	sample3 := &ir.Block{List: []ir.Node{
		func() *ir.Store {
			vb := &ir.Block{List: []ir.Node{call("g"), i32(9)}}
			vb.Finalize()
			s := &ir.Store{Ptr: i32(0), Value: vb, ValType: ir.ValI32}
			s.Finalize()
			return s
		}(),
	}}
	sample3.Finalize()

	sample4 := &ir.Block{Label: "L", List: []ir.Node{
		&ir.SetLocal{Local: 0, Value: i32(1)},
		&ir.Break{Target: "L", Condition: i32(1), Value: i32(2)},
		i32(3),
	}}
	sample4.Finalize()
	wrapped4 := &ir.Block{List: []ir.Node{builder.MakeDrop(sample4)}}
	wrapped4.Finalize()

	return []*ir.Block{sample1, sample2, sample3, wrapped4}
}

func maxBlockDepth(n ir.Node) int {
	if n == nil {
		return 0
	}
	depth := 0
	if _, ok := n.(*ir.Block); ok {
		depth = 1
	}
	best := depth
	for _, slot := range ir.ChildSlots(n) {
		if d := maxBlockDepth(*slot); depth+d > best {
			best = depth + d
		}
	}
	return best
}


func TestPropertyTypePreservation(t *testing.T) {
	for i, sample := range buildSamples() {
		wantType := sample.Type()
		if err := newPass().Run(sample); err != nil {
			t.Fatalf("sample %d: Run: %v", i, err)
		}
		if sample.Type() != wantType {
			t.Errorf("sample %d: type changed from %v to %v", i, wantType, sample.Type())
		}
	}
}

func TestPropertyIdempotence(t *testing.T) {
	for i, sample := range buildSamples() {
		if err := newPass().Run(sample); err != nil {
			t.Fatalf("sample %d: first Run: %v", i, err)
		}
		once := ir.Dump(sample)
		if err := newPass().Run(sample); err != nil {
			t.Fatalf("sample %d: second Run: %v", i, err)
		}
		twice := ir.Dump(sample)
		if once != twice {
			t.Errorf("sample %d: not idempotent:\nfirst:\n%s\nsecond:\n%s", i, once, twice)
		}
	}
}

func TestPropertyNoGrowthOfBlockDepth(t *testing.T) {
	for i, sample := range buildSamples() {
		before := maxBlockDepth(sample)
		if err := newPass().Run(sample); err != nil {
			t.Fatalf("sample %d: Run: %v", i, err)
		}
		after := maxBlockDepth(sample)
		if after > before {
			t.Errorf("sample %d: block depth grew from %d to %d", i, before, after)
		}
	}
}

// TestPropertyUnreachableNeutralityDropPath: a Drop of a block that
// contains an unreachable element anywhere in its list is never sunk into
// that block's tail, since moving code around a block with unreachable
// content risks changing its type.
func TestPropertyUnreachableNeutralityDropPath(t *testing.T) {
	inner := &ir.Block{List: []ir.Node{
		&ir.Unreachable{},
		load(0),
	}}
	inner.Finalize()
	drop := builder.MakeDrop(inner)

	root := &ir.Block{List: []ir.Node{drop}}
	root.Finalize()

	if err := newPass().Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, ok := root.List[0].(*ir.Drop)
	if !ok {
		t.Fatalf("List[0] = %T, want *ir.Drop unchanged", root.List[0])
	}
	if _, ok := got.Value.(*ir.Block); !ok {
		t.Error("drop of a block containing unreachable content should not be sunk")
	}
}

// TestPropertyUnreachableNeutralityHoistPath: a none-typed parent's
// block-valued operand is never hoisted out if the block contains
// unreachable content elsewhere in its list, since doing so would turn the
// parent's declared type from none into unreachable.
func TestPropertyUnreachableNeutralityHoistPath(t *testing.T) {
	blockVal := &ir.Block{List: []ir.Node{
		&ir.Unreachable{},
		i32(1),
	}}
	blockVal.Finalize()

	set := &ir.SetLocal{Local: 0, Value: blockVal}
	set.Finalize()

	root := &ir.Block{List: []ir.Node{set}}
	root.Finalize()

	if err := newPass().Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, ok := root.List[0].(*ir.SetLocal)
	if !ok {
		t.Fatalf("List[0] = %T, want *ir.SetLocal unchanged", root.List[0])
	}
	if _, ok := got.Value.(*ir.Block); !ok {
		t.Error("hoist should not occur across unreachable content into a none-typed parent")
	}
}
