package ir

// ValType is the type attached to every node: none, unreachable, or one of
// the concrete value types. It mirrors the value types of the wasm package
// rather than importing it, since the ir tree is deliberately decoupled
// from any particular binary encoding.
type ValType byte

const (
	ValNone ValType = iota
	ValUnreachable
	ValI32
	ValI64
	ValF32
	ValF64
	ValV128
	ValFuncRef
	ValExternRef
)

func (v ValType) String() string {
	switch v {
	case ValNone:
		return "none"
	case ValUnreachable:
		return "unreachable"
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValV128:
		return "v128"
	case ValFuncRef:
		return "funcref"
	case ValExternRef:
		return "externref"
	default:
		return "invalid"
	}
}

// IsConcrete reports whether v is a real value type, i.e. neither none nor
// unreachable. Only concrete-typed expressions may legally sit in a Drop.
func (v ValType) IsConcrete() bool {
	return v != ValNone && v != ValUnreachable
}

// typeFromChildren implements the general result-type rule shared by most
// operand-bearing expressions: if any child has unreachable type, the
// expression itself becomes unreachable (control never falls through it),
// otherwise it keeps its declared type.
func typeFromChildren(declared ValType, children ...Node) ValType {
	for _, c := range children {
		if c != nil && c.Type() == ValUnreachable {
			return ValUnreachable
		}
	}
	return declared
}
