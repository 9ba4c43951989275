package ir

import "fmt"

// Node is the common interface implemented by every expression kind.
//
// Type returns the node's current value type. Finalize recomputes it from
// the node's children (the node is expected to already have its children
// wired up). FinalizeAs recomputes it the same way and then asserts the
// result equals want, panicking via assertf on mismatch; it is used after a
// rewrite that is expected to preserve a specific, already-known type.
type Node interface {
	Type() ValType
	Finalize()
	FinalizeAs(want ValType)
}

// assertf panics on a violated invariant. The ir tree has no recoverable
// error path once a node has been miswired; callers are expected never to
// hit this in a well-formed tree.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("ir: "+format, args...))
	}
}

// Block sequences its List and takes the type of its last element, or none
// if the list is empty. A non-empty Label makes the block a branch target;
// an empty Label means anonymous, which is what makes a block eligible for
// splicing into its parent.
type Block struct {
	Label string
	List  []Node
	typ   ValType
}

func (b *Block) Type() ValType { return b.typ }

func (b *Block) Finalize() {
	if len(b.List) == 0 {
		b.typ = ValNone
		return
	}
	b.typ = b.List[len(b.List)-1].Type()
}

func (b *Block) FinalizeAs(want ValType) {
	b.Finalize()
	assertf(b.typ == want, "block: finalized type %v, want %v", b.typ, want)
}

// Break represents both unconditional (br) and conditional (br_if) branches.
// Condition nil means unconditional, in which case the break always has
// type unreachable regardless of Value. A conditional break's type is none
// when it carries no value, or the value's type when it does.
type Break struct {
	Target    string
	Condition Node
	Value     Node
}

func (b *Break) Type() ValType {
	if b.Condition == nil {
		return ValUnreachable
	}
	if b.Value == nil {
		return ValNone
	}
	return b.Value.Type()
}

func (b *Break) Finalize()                {}
func (b *Break) FinalizeAs(want ValType) { assertf(b.Type() == want, "break: type %v, want %v", b.Type(), want) }

// Switch represents br_table: a multi-way unconditional branch. It never
// falls through, so its type is always unreachable.
type Switch struct {
	Targets   []string
	Default   string
	Condition Node
	Value     Node
}

func (s *Switch) Type() ValType              { return ValUnreachable }
func (s *Switch) Finalize()                  {}
func (s *Switch) FinalizeAs(want ValType) {
	assertf(want == ValUnreachable, "switch: type is always unreachable, want %v", want)
}

// Drop discards the value produced by its operand. Its own type is none,
// unless the operand is unreachable, in which case it propagates.
type Drop struct {
	Value Node
	typ   ValType
}

func (d *Drop) Type() ValType { return d.typ }
func (d *Drop) Finalize()     { d.typ = typeFromChildren(ValNone, d.Value) }
func (d *Drop) FinalizeAs(want ValType) {
	d.Finalize()
	assertf(d.typ == want, "drop: finalized type %v, want %v", d.typ, want)
}

// Unary applies a named unary operator to Value. RetType is the operator's
// declared result type when reachable.
type Unary struct {
	Op      string
	Value   Node
	RetType ValType
	typ     ValType
}

func (u *Unary) Type() ValType { return u.typ }
func (u *Unary) Finalize()     { u.typ = typeFromChildren(u.RetType, u.Value) }
func (u *Unary) FinalizeAs(want ValType) {
	u.Finalize()
	assertf(u.typ == want, "unary %s: finalized type %v, want %v", u.Op, u.typ, want)
}

// Binary applies a named binary operator to Left and Right.
type Binary struct {
	Op      string
	Left    Node
	Right   Node
	RetType ValType
	typ     ValType
}

func (b *Binary) Type() ValType { return b.typ }
func (b *Binary) Finalize()     { b.typ = typeFromChildren(b.RetType, b.Left, b.Right) }
func (b *Binary) FinalizeAs(want ValType) {
	b.Finalize()
	assertf(b.typ == want, "binary %s: finalized type %v, want %v", b.Op, b.typ, want)
}

// Select picks IfTrue or IfFalse based on Condition, wasm's ternary.
type Select struct {
	IfTrue    Node
	IfFalse   Node
	Condition Node
	RetType   ValType
	typ       ValType
}

func (s *Select) Type() ValType { return s.typ }
func (s *Select) Finalize()     { s.typ = typeFromChildren(s.RetType, s.IfTrue, s.IfFalse, s.Condition) }
func (s *Select) FinalizeAs(want ValType) {
	s.Finalize()
	assertf(s.typ == want, "select: finalized type %v, want %v", s.typ, want)
}

// Load reads a value of ValType from memory at Ptr (plus Offset).
type Load struct {
	Ptr     Node
	ValType ValType
	Offset  uint32
	Align   uint32
	Atomic  bool
	typ     ValType
}

func (l *Load) Type() ValType { return l.typ }
func (l *Load) Finalize()     { l.typ = typeFromChildren(l.ValType, l.Ptr) }
func (l *Load) FinalizeAs(want ValType) {
	l.Finalize()
	assertf(l.typ == want, "load: finalized type %v, want %v", l.typ, want)
}

// Store writes Value to memory at Ptr (plus Offset). Always none-typed
// unless one of its operands is unreachable.
type Store struct {
	Ptr     Node
	Value   Node
	ValType ValType
	Offset  uint32
	Align   uint32
	Atomic  bool
	typ     ValType
}

func (s *Store) Type() ValType { return s.typ }
func (s *Store) Finalize()     { s.typ = typeFromChildren(ValNone, s.Ptr, s.Value) }
func (s *Store) FinalizeAs(want ValType) {
	s.Finalize()
	assertf(s.typ == want, "store: finalized type %v, want %v", s.typ, want)
}

// AtomicRMW performs an atomic read-modify-write at Ptr with Value.
type AtomicRMW struct {
	Op      string
	Ptr     Node
	Value   Node
	ValType ValType
	Offset  uint32
	typ     ValType
}

func (a *AtomicRMW) Type() ValType { return a.typ }
func (a *AtomicRMW) Finalize()     { a.typ = typeFromChildren(a.ValType, a.Ptr, a.Value) }
func (a *AtomicRMW) FinalizeAs(want ValType) {
	a.Finalize()
	assertf(a.typ == want, "atomic.rmw.%s: finalized type %v, want %v", a.Op, a.typ, want)
}

// AtomicCmpxchg performs an atomic compare-and-exchange at Ptr.
type AtomicCmpxchg struct {
	Ptr         Node
	Expected    Node
	Replacement Node
	ValType     ValType
	Offset      uint32
	typ         ValType
}

func (a *AtomicCmpxchg) Type() ValType { return a.typ }
func (a *AtomicCmpxchg) Finalize() {
	a.typ = typeFromChildren(a.ValType, a.Ptr, a.Expected, a.Replacement)
}
func (a *AtomicCmpxchg) FinalizeAs(want ValType) {
	a.Finalize()
	assertf(a.typ == want, "atomic.cmpxchg: finalized type %v, want %v", a.typ, want)
}

// SetLocal assigns Value into local slot Local. None-typed unless Value is
// unreachable.
type SetLocal struct {
	Local uint32
	Value Node
	typ   ValType
}

func (s *SetLocal) Type() ValType { return s.typ }
func (s *SetLocal) Finalize()     { s.typ = typeFromChildren(ValNone, s.Value) }
func (s *SetLocal) FinalizeAs(want ValType) {
	s.Finalize()
	assertf(s.typ == want, "set_local: finalized type %v, want %v", s.typ, want)
}

// GetLocal reads local slot Local, a leaf.
type GetLocal struct {
	Local   uint32
	ValType ValType
}

func (g *GetLocal) Type() ValType          { return g.ValType }
func (g *GetLocal) Finalize()              {}
func (g *GetLocal) FinalizeAs(want ValType) {
	assertf(g.ValType == want, "get_local: type %v, want %v", g.ValType, want)
}

// Return exits the function, optionally carrying Value. Always unreachable.
type Return struct {
	Value Node
}

func (r *Return) Type() ValType { return ValUnreachable }
func (r *Return) Finalize()     {}
func (r *Return) FinalizeAs(want ValType) {
	assertf(want == ValUnreachable, "return: type is always unreachable, want %v", want)
}

// Call invokes a function defined in the same module.
type Call struct {
	Target   string
	Operands []Node
	RetType  ValType
	typ      ValType
}

func (c *Call) Type() ValType { return c.typ }
func (c *Call) Finalize()     { c.typ = typeFromChildren(c.RetType, c.Operands...) }
func (c *Call) FinalizeAs(want ValType) {
	c.Finalize()
	assertf(c.typ == want, "call %s: finalized type %v, want %v", c.Target, c.typ, want)
}

// CallImport invokes a function imported from outside the module.
type CallImport struct {
	Target   string
	Operands []Node
	RetType  ValType
	typ      ValType
}

func (c *CallImport) Type() ValType { return c.typ }
func (c *CallImport) Finalize()     { c.typ = typeFromChildren(c.RetType, c.Operands...) }
func (c *CallImport) FinalizeAs(want ValType) {
	c.Finalize()
	assertf(c.typ == want, "call_import %s: finalized type %v, want %v", c.Target, c.typ, want)
}

// CallIndirect invokes a function referenced by Target, a table-index
// expression, validated against TypeIndex.
type CallIndirect struct {
	Target    Node
	TypeIndex uint32
	Operands  []Node
	RetType   ValType
	typ       ValType
}

func (c *CallIndirect) Type() ValType { return c.typ }
func (c *CallIndirect) Finalize() {
	children := append(append([]Node{}, c.Operands...), c.Target)
	c.typ = typeFromChildren(c.RetType, children...)
}
func (c *CallIndirect) FinalizeAs(want ValType) {
	c.Finalize()
	assertf(c.typ == want, "call_indirect: finalized type %v, want %v", c.typ, want)
}

// Const is a literal value, a leaf.
type Const struct {
	ValType ValType
	I32     int32
	I64     int64
	F32     float32
	F64     float64
}

func (c *Const) Type() ValType          { return c.ValType }
func (c *Const) Finalize()              {}
func (c *Const) FinalizeAs(want ValType) {
	assertf(c.ValType == want, "const: type %v, want %v", c.ValType, want)
}

// Nop does nothing and has type none, a leaf.
type Nop struct{}

func (n *Nop) Type() ValType           { return ValNone }
func (n *Nop) Finalize()               {}
func (n *Nop) FinalizeAs(want ValType) { assertf(want == ValNone, "nop: type is always none, want %v", want) }

// Unreachable is the literal `unreachable` trap instruction, a leaf.
type Unreachable struct{}

func (u *Unreachable) Type() ValType { return ValUnreachable }
func (u *Unreachable) Finalize()     {}
func (u *Unreachable) FinalizeAs(want ValType) {
	assertf(want == ValUnreachable, "unreachable: type is always unreachable, want %v", want)
}
