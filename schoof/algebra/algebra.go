// Package algebra defines the capability contracts shared by all algebraic structures of this module
// and the laws derived from them.
//
// Every element type E of some structure implements a subset of the interfaces [Element], [EuclideanElement] and [FieldElement],
// where the type parameter is E itself. The structure (ring, field) that creates the elements implements [Ring].
// Elements are immutable values: all operations return new elements and never modify the receiver or the arguments.
//
// Elements know their parent structure. Combining elements with different (incompatible) parents is a programming error
// and causes a panic with an error wrapping [ErrIncompatibleOperand]. Mixing element types is done explicitly
// via the coercion functions [Coerce], [AddAny], [MulAny], ... which use the fallible conversion Ring.Element.
package algebra

// Element is the capability set of an element of a commutative ring.
//
// All methods take the other operand of the same type. The zero value of an element type is not a valid element;
// elements must be obtained from their structure.
type Element[E any] interface {
	IsZero() bool         // x.IsZero() checks whether x is the additive neutral element
	IsEqual(other E) bool // x.IsEqual(y) checks whether x == y as elements of their structure.
	Add(other E) E        // x.Add(y) returns x + y
	Neg() E               // x.Neg() returns -x
	Mul(other E) E        // x.Mul(y) returns x * y
	String() string
}

// EuclideanElement is the capability set of rings with a division algorithm.
//
// x.DivMod(y) returns (q, r) with x == q * y + r and r "smaller" than y in the sense of the concrete ring.
// For y == 0, returns an error wrapping [ErrDivisionByZero].
type EuclideanElement[E any] interface {
	Element[E]
	DivMod(divisor E) (quotient E, remainder E, err error)
}

// FieldElement is the capability set of elements that may have a multiplicative inverse.
//
// x.Inv() returns 1/x. For x == 0, it returns an error wrapping [ErrDivisionByZero].
// Structures that are not fields (such as quotient rings modulo composites) may return an error wrapping
// [ErrNotInvertible] for non-units.
type FieldElement[E any] interface {
	Element[E]
	Inv() (E, error)
}

// Ring is the interface satisfied by algebraic structures creating elements of type E.
//
// Element(value) is the fallible "construct-from" conversion. It accepts at least elements of type E that belong to this structure
// and typically Go integers and anything that an underlying structure accepts. On failure, it returns an error wrapping [ErrIncompatibleOperand].
type Ring[E any] interface {
	Zero() E
	One() E
	Element(value any) (E, error)
	String() string
}
