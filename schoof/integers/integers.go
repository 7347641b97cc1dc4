// Package integers provides the ring of rational integers as an algebraic structure of this module.
//
// [Integer] is an immutable wrapper around *big.Int; division with remainder rounds towards negative infinity,
// so the remainder has the sign of the divisor (or is zero).
package integers

import (
	"fmt"
	"math/big"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / integers: "

var (
	ErrNotAnInteger = fmt.Errorf(ErrorPrefix+"value cannot be interpreted as an integer: %w", algebra.ErrIncompatibleOperand)
	ErrNotInt64     = fmt.Errorf(ErrorPrefix+"integer does not fit into int64: %w", algebra.ErrValue)
)

// Integer is an element of the ring of integers.
//
// The zero value is a valid Integer equal to 0. Integers are immutable; the internal *big.Int is never modified after construction.
type Integer struct {
	value *big.Int // nil means 0
}

// IntegerRing is the type of the ring of integers. There is only one meaningful value, given by [Integers].
type IntegerRing struct{}

// Integers is the ring of integers.
var Integers = IntegerRing{}

var bigZero = big.NewInt(0)

// NewInteger returns the Integer with value x.
func NewInteger(x int64) Integer {
	return Integer{value: big.NewInt(x)}
}

// FromBigInt returns an integer with the value of x. x is copied and may be modified by the caller afterwards.
func FromBigInt(x *big.Int) Integer {
	return Integer{value: new(big.Int).Set(x)}
}

func (z Integer) big() *big.Int {
	if z.value == nil {
		return bigZero
	}
	return z.value
}

// BigInt returns a copy of the value as a *big.Int
func (z Integer) BigInt() *big.Int {
	return new(big.Int).Set(z.big())
}

// Int64 returns z as an int64. If this is not possible, returns an error wrapping [ErrNotInt64].
func (z Integer) Int64() (int64, error) {
	if !z.big().IsInt64() {
		return 0, fmt.Errorf("%w: %v", ErrNotInt64, z)
	}
	return z.big().Int64(), nil
}

// Cmp compares z and other, returning -1, 0, +1
func (z Integer) Cmp(other Integer) int {
	return z.big().Cmp(other.big())
}

// Sign returns the sign of z in {-1, 0, +1}
func (z Integer) Sign() int {
	return z.big().Sign()
}

func (z Integer) IsZero() bool {
	return z.big().Sign() == 0
}

// IsOne checks whether z == 1
func (z Integer) IsOne() bool {
	return z.big().IsInt64() && z.big().Int64() == 1
}

func (z Integer) IsEqual(other Integer) bool {
	return z.big().Cmp(other.big()) == 0
}

func (z Integer) Add(other Integer) Integer {
	return Integer{value: new(big.Int).Add(z.big(), other.big())}
}

func (z Integer) Neg() Integer {
	return Integer{value: new(big.Int).Neg(z.big())}
}

func (z Integer) Mul(other Integer) Integer {
	return Integer{value: new(big.Int).Mul(z.big(), other.big())}
}

// Abs returns |z|
func (z Integer) Abs() Integer {
	return Integer{value: new(big.Int).Abs(z.big())}
}

// DivMod returns quotient and remainder of floor division: z = quotient * divisor + remainder,
// where remainder is zero or has the sign of the divisor and |remainder| < |divisor|.
func (z Integer) DivMod(divisor Integer) (quotient Integer, remainder Integer, err error) {
	if divisor.IsZero() {
		err = fmt.Errorf(ErrorPrefix+"integer division of %v by zero: %w", z, algebra.ErrDivisionByZero)
		return
	}
	q, r := new(big.Int).QuoRem(z.big(), divisor.big(), new(big.Int))
	// QuoRem truncates towards zero; move to floor division if the signs of r and divisor differ.
	if r.Sign() != 0 && r.Sign() != divisor.big().Sign() {
		q.Sub(q, big.NewInt(1))
		r.Add(r, divisor.big())
	}
	return Integer{value: q}, Integer{value: r}, nil
}

// Mod returns the remainder of z.DivMod(modulus). It panics for modulus == 0.
func (z Integer) Mod(modulus Integer) Integer {
	_, r, err := z.DivMod(modulus)
	if err != nil {
		panic(err)
	}
	return r
}

// Inv returns the multiplicative inverse of z within the integers. This only exists for z == +/-1.
func (z Integer) Inv() (Integer, error) {
	if z.IsZero() {
		return Integer{}, fmt.Errorf(ErrorPrefix+"inverse of 0: %w", algebra.ErrDivisionByZero)
	}
	if z.Abs().IsOne() {
		return z, nil
	}
	return Integer{}, fmt.Errorf(ErrorPrefix+"%v has no inverse in the integers: %w", z, algebra.ErrNotInvertible)
}

func (z Integer) String() string {
	return z.big().String()
}

func (IntegerRing) Zero() Integer {
	return Integer{}
}

func (IntegerRing) One() Integer {
	return NewInteger(1)
}

func (IntegerRing) String() string {
	return "Z"
}

// Element converts value to an Integer. Accepted are Integer, all built-in integer types, *big.Int and decimal strings.
func (IntegerRing) Element(value any) (Integer, error) {
	switch value := value.(type) {
	case Integer:
		return value, nil
	case int:
		return NewInteger(int64(value)), nil
	case int8:
		return NewInteger(int64(value)), nil
	case int16:
		return NewInteger(int64(value)), nil
	case int32:
		return NewInteger(int64(value)), nil
	case int64:
		return NewInteger(value), nil
	case uint:
		return Integer{value: new(big.Int).SetUint64(uint64(value))}, nil
	case uint8:
		return NewInteger(int64(value)), nil
	case uint16:
		return NewInteger(int64(value)), nil
	case uint32:
		return NewInteger(int64(value)), nil
	case uint64:
		return Integer{value: new(big.Int).SetUint64(value)}, nil
	case *big.Int:
		if value == nil {
			return Integer{}, fmt.Errorf("%w: nil *big.Int", ErrNotAnInteger)
		}
		return FromBigInt(value), nil
	case string:
		parsed, ok := new(big.Int).SetString(value, 10)
		if !ok {
			return Integer{}, fmt.Errorf("%w: %q", ErrNotAnInteger, value)
		}
		return Integer{value: parsed}, nil
	default:
		return Integer{}, fmt.Errorf("%w: %v of type %T", ErrNotAnInteger, value, value)
	}
}

// Parse is shorthand for Integers.Element(s) for decimal strings.
func Parse(s string) (Integer, error) {
	return Integers.Element(s)
}

// IsProbablyPrime checks whether z is a prime, using [big.Int.ProbablyPrime].
func (z Integer) IsProbablyPrime() bool {
	return z.Sign() > 0 && z.big().ProbablyPrime(20)
}
