// Package quotients implements quotient rings R/(m) of a Euclidean ring R modulo an element m.
//
// Elements of a [QuotientRing] are congruence classes, represented by their remainder modulo m.
// Inverses are computed with the extended Euclidean algorithm; they exist for representatives coprime to the modulus.
package quotients

import (
	"fmt"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / quotients: "

var (
	ErrZeroModulus          = fmt.Errorf(ErrorPrefix+"modulus must not be zero: %w", algebra.ErrDivisionByZero)
	ErrUnsupportedModulus   = fmt.Errorf(ErrorPrefix+"the representative ring cannot divide by the modulus: %w", algebra.ErrConstruction)
	ErrIncompatibleClasses  = fmt.Errorf(ErrorPrefix+"congruence classes with different moduli: %w", algebra.ErrIncompatibleOperand)
	ErrCannotConvertToClass = fmt.Errorf(ErrorPrefix+"cannot convert to congruence class: %w", algebra.ErrIncompatibleOperand)
)

const callCounterInverse callcounters.Id = "QuotientInverse"

var _ = callcounters.CreateHierarchicalCallCounter(callCounterInverse, "Inversion in quotient rings", algebra.CallCounterArithmetic)

// QuotientRing is the ring R/(modulus), where R is a Euclidean ring with elements of type R.
type QuotientRing[R algebra.EuclideanElement[R]] struct {
	ring    algebra.Ring[R]
	modulus R
}

// QuotientClass is an element of a [QuotientRing], that is, the congruence class of an element of the representative ring.
type QuotientClass[R algebra.EuclideanElement[R]] struct {
	quotientRing *QuotientRing[R]
	remainder    R // always reduced modulo the modulus
}

// NewQuotientRing creates the quotient ring of ring modulo modulus.
//
// modulus must be non-zero (otherwise we return an error wrapping [ErrZeroModulus]) and the representative ring
// must be able to divide by it (otherwise, e.g. for unsupported bivariate divisions, we return an error wrapping [ErrUnsupportedModulus]).
func NewQuotientRing[R algebra.EuclideanElement[R]](ring algebra.Ring[R], modulus R) (*QuotientRing[R], error) {
	if modulus.IsZero() {
		return nil, fmt.Errorf("%w: quotient of %v", ErrZeroModulus, ring)
	}
	if _, _, err := ring.One().DivMod(modulus); err != nil {
		return nil, fmt.Errorf("%w: %v modulo %v (%v)", ErrUnsupportedModulus, ring, modulus, err)
	}
	return &QuotientRing[R]{ring: ring, modulus: modulus}, nil
}

// Modulus returns the modulus.
func (q *QuotientRing[R]) Modulus() R {
	return q.modulus
}

// RepresentativeRing returns the ring the representatives come from.
func (q *QuotientRing[R]) RepresentativeRing() algebra.Ring[R] {
	return q.ring
}

func (q *QuotientRing[R]) String() string {
	return fmt.Sprintf("%v/(%v)", q.ring, q.modulus)
}

// IsCompatible checks whether classes of q and other can be combined, i.e. whether the moduli agree.
func (q *QuotientRing[R]) IsCompatible(other *QuotientRing[R]) bool {
	return q == other || (other != nil && q.modulus.IsEqual(other.modulus))
}

// Class returns the congruence class of representative.
func (q *QuotientRing[R]) Class(representative R) QuotientClass[R] {
	_, remainder, err := representative.DivMod(q.modulus)
	if err != nil {
		// NewQuotientRing checked that we can divide by the modulus.
		panic(fmt.Errorf(ErrorPrefix+"cannot reduce %v modulo %v: %v: %w", representative, q.modulus, err, algebra.ErrInternal))
	}
	return QuotientClass[R]{quotientRing: q, remainder: remainder}
}

func (q *QuotientRing[R]) Zero() QuotientClass[R] {
	return QuotientClass[R]{quotientRing: q, remainder: q.ring.Zero()}
}

func (q *QuotientRing[R]) One() QuotientClass[R] {
	return q.Class(q.ring.One())
}

// Element converts value into a congruence class. Accepted are classes with the same modulus and everything the representative ring accepts.
func (q *QuotientRing[R]) Element(value any) (QuotientClass[R], error) {
	if class, ok := value.(QuotientClass[R]); ok {
		if !q.IsCompatible(class.quotientRing) {
			return QuotientClass[R]{}, fmt.Errorf("%w: %v is not in %v", ErrIncompatibleClasses, class, q)
		}
		return QuotientClass[R]{quotientRing: q, remainder: class.remainder}, nil
	}
	representative, err := q.ring.Element(value)
	if err != nil {
		return QuotientClass[R]{}, fmt.Errorf("%w: %v", ErrCannotConvertToClass, err)
	}
	return q.Class(representative), nil
}

// Remainder returns the canonical representative of the class.
func (c QuotientClass[R]) Remainder() R {
	return c.remainder
}

// Modulus returns the modulus of the quotient ring the class belongs to.
func (c QuotientClass[R]) Modulus() R {
	return c.quotientRing.modulus
}

// QuotientRing returns the ring the class belongs to.
func (c QuotientClass[R]) QuotientRing() *QuotientRing[R] {
	return c.quotientRing
}

func (c QuotientClass[R]) checkCompatible(other QuotientClass[R]) {
	if c.quotientRing == nil || !c.quotientRing.IsCompatible(other.quotientRing) {
		panic(fmt.Errorf("%w: %v and %v", ErrIncompatibleClasses, c, other))
	}
}

func (c QuotientClass[R]) IsZero() bool {
	return c.remainder.IsZero()
}

// IsEqual checks whether both classes have the same moduli and the same remainders.
func (c QuotientClass[R]) IsEqual(other QuotientClass[R]) bool {
	return c.quotientRing.IsCompatible(other.quotientRing) && c.remainder.IsEqual(other.remainder)
}

func (c QuotientClass[R]) Add(other QuotientClass[R]) QuotientClass[R] {
	c.checkCompatible(other)
	return c.quotientRing.Class(c.remainder.Add(other.remainder))
}

func (c QuotientClass[R]) Neg() QuotientClass[R] {
	return c.quotientRing.Class(c.remainder.Neg())
}

func (c QuotientClass[R]) Mul(other QuotientClass[R]) QuotientClass[R] {
	c.checkCompatible(other)
	return c.quotientRing.Class(c.remainder.Mul(other.remainder))
}

// Inv returns the inverse of the class, using the extended Euclidean algorithm on (modulus, remainder).
//
// For the zero class, returns an error wrapping [algebra.ErrDivisionByZero].
// If the remainder is not coprime to the modulus, returns an error wrapping [algebra.ErrNotInvertible].
func (c QuotientClass[R]) Inv() (QuotientClass[R], error) {
	if c.remainder.IsZero() {
		return QuotientClass[R]{}, fmt.Errorf(ErrorPrefix+"inverse of zero modulo %v: %w", c.quotientRing.modulus, algebra.ErrDivisionByZero)
	}
	callCounterInverse.Increment()
	ring := c.quotientRing.ring

	// We maintain scalar * remainder == divisor modulo the modulus, where divisor runs through the remainder sequence.
	scalar, previousScalar := ring.One(), ring.Zero()
	dividend, divisor := c.quotientRing.modulus, c.remainder
	quotient, rest, err := dividend.DivMod(divisor)
	for err == nil && !rest.IsZero() {
		dividend, divisor = divisor, rest
		scalar, previousScalar = algebra.Sub(previousScalar, quotient.Mul(scalar)), scalar
		quotient, rest, err = dividend.DivMod(divisor)
	}
	if err != nil {
		panic(fmt.Errorf(ErrorPrefix+"division failed in extended Euclidean algorithm: %v: %w", err, algebra.ErrInternal))
	}

	// divisor is now a gcd of modulus and remainder. It needs to be a unit; it may differ from one,
	// e.g. for polynomials, where the gcd is only determined up to a constant.
	unitInverse, unitRest, err := ring.One().DivMod(divisor)
	if err != nil || !unitRest.IsZero() {
		return QuotientClass[R]{}, fmt.Errorf(ErrorPrefix+"%v is not coprime to the modulus, gcd is %v: %w", c.remainder, divisor, algebra.ErrNotInvertible)
	}
	return c.quotientRing.Class(scalar.Mul(unitInverse)), nil
}

// String returns a representation of the form [remainder mod modulus]
func (c QuotientClass[R]) String() string {
	return fmt.Sprintf("[%v mod %v]", c.remainder, c.quotientRing.modulus)
}
