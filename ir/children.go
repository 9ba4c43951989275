package ir

// ChildSlots returns pointers to n's immediate child fields, in evaluation
// order. Callers that recurse through a tree via slot pointers (rather than
// by value) can rewrite a child in place by assigning through the returned
// pointer. Leaf kinds (Const, GetLocal, Nop, Unreachable) return nil.
//
// A returned slot may point at a nil Node (e.g. a Break with no value or
// no condition); recursing into it is safe and a no-op.
func ChildSlots(n Node) []*Node {
	switch t := n.(type) {
	case *Block:
		slots := make([]*Node, len(t.List))
		for i := range t.List {
			slots[i] = &t.List[i]
		}
		return slots
	case *Break:
		return []*Node{&t.Value, &t.Condition}
	case *Switch:
		return []*Node{&t.Value, &t.Condition}
	case *Drop:
		return []*Node{&t.Value}
	case *Unary:
		return []*Node{&t.Value}
	case *Binary:
		return []*Node{&t.Left, &t.Right}
	case *Select:
		return []*Node{&t.IfTrue, &t.IfFalse, &t.Condition}
	case *Load:
		return []*Node{&t.Ptr}
	case *Store:
		return []*Node{&t.Ptr, &t.Value}
	case *AtomicRMW:
		return []*Node{&t.Ptr, &t.Value}
	case *AtomicCmpxchg:
		return []*Node{&t.Ptr, &t.Expected, &t.Replacement}
	case *SetLocal:
		return []*Node{&t.Value}
	case *Return:
		return []*Node{&t.Value}
	case *Call:
		slots := make([]*Node, len(t.Operands))
		for i := range t.Operands {
			slots[i] = &t.Operands[i]
		}
		return slots
	case *CallImport:
		slots := make([]*Node, len(t.Operands))
		for i := range t.Operands {
			slots[i] = &t.Operands[i]
		}
		return slots
	case *CallIndirect:
		slots := make([]*Node, 0, len(t.Operands)+1)
		for i := range t.Operands {
			slots = append(slots, &t.Operands[i])
		}
		return append(slots, &t.Target)
	default:
		return nil
	}
}
