package ir

// Builder constructs small idiomatic node shapes used by the pass itself
// (as opposed to whatever builds the original tree). It holds no state; it
// exists so call sites read as intent ("make a drop of x") rather than
// struct literals with a stray Finalize call tacked on.
type Builder struct{}

// MakeDrop wraps value in a Drop and finalizes it. value must have a
// concrete type; wrapping a none or unreachable value is never necessary
// and would violate Drop's invariant.
func (Builder) MakeDrop(value Node) *Drop {
	assertf(value.Type().IsConcrete(), "MakeDrop: operand type %v is not concrete", value.Type())
	d := &Drop{Value: value}
	d.Finalize()
	return d
}

// MakeSequence produces an anonymous two-element block equivalent to
// "do first, then second", typed as second's type.
func (Builder) MakeSequence(first, second Node) *Block {
	b := &Block{List: []Node{first, second}}
	b.Finalize()
	return b
}
