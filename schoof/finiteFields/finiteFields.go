// Package finiteFields provides prime fields GF(p) as quotient rings of the integers.
//
// Field extensions (sizes p^k with k > 1) are not implemented; requesting them fails with [ErrExtensionFieldsUnsupported].
package finiteFields

import (
	"fmt"
	"math/big"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/integers"
	"github.com/GottfriedHerold/Schoof/schoof/quotients"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / finite fields: "

var (
	ErrExtensionFieldsUnsupported = fmt.Errorf(ErrorPrefix+"extension fields of prime power size are not implemented: %w", algebra.ErrValue)
	ErrInvalidFieldSize           = fmt.Errorf(ErrorPrefix+"there is no finite field of the given size: %w", algebra.ErrValue)
)

// Element is the type of elements of prime fields. These are congruence classes of integers modulo the characteristic.
type Element = quotients.QuotientClass[integers.Integer]

// FiniteField is a field GF(p) with p elements for a prime p.
//
// Elements of different FiniteField instances with the same characteristic interoperate.
type FiniteField struct {
	*quotients.QuotientRing[integers.Integer]
}

// NewFiniteField creates the finite field of the given size, which must be prime. size can be anything [integers.Integers] accepts.
func NewFiniteField(size any) (*FiniteField, error) {
	n, err := integers.Integers.Element(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFieldSize, err)
	}
	if !n.IsProbablyPrime() {
		if isPrimePower(n) {
			return nil, fmt.Errorf("%w: size %v", ErrExtensionFieldsUnsupported, n)
		}
		return nil, fmt.Errorf("%w: size %v", ErrInvalidFieldSize, n)
	}
	quotientRing, err := quotients.NewQuotientRing[integers.Integer](integers.Integers, n)
	if err != nil {
		// cannot happen for prime n.
		panic(err)
	}
	return &FiniteField{QuotientRing: quotientRing}, nil
}

// MustFiniteField is like NewFiniteField, but panics on error. It is intended for constants such as fields of small known primes.
func MustFiniteField(size any) *FiniteField {
	field, err := NewFiniteField(size)
	if err != nil {
		panic(err)
	}
	return field
}

// Characteristic returns the characteristic p of the field.
func (field *FiniteField) Characteristic() integers.Integer {
	return field.Modulus()
}

// Size returns the number of elements of the field, which is the characteristic (to the first power).
func (field *FiniteField) Size() integers.Integer {
	return field.Modulus()
}

// ElementFromInt64 returns the class of x.
func (field *FiniteField) ElementFromInt64(x int64) Element {
	return field.Class(integers.NewInteger(x))
}

// Elements returns all elements 0, 1, ..., p-1 of the field. This is only sensible for small fields.
func (field *FiniteField) Elements() []Element {
	size, err := field.Size().Int64()
	if err != nil {
		panic(fmt.Errorf(ErrorPrefix+"cannot enumerate elements of %v: %w", field, err))
	}
	ret := make([]Element, size)
	for i := range ret {
		ret[i] = field.ElementFromInt64(int64(i))
	}
	return ret
}

func (field *FiniteField) String() string {
	return fmt.Sprintf("GF<%v>", field.Characteristic())
}

// isPrimePower checks whether n == p^k for a prime p and k > 1.
func isPrimePower(n integers.Integer) bool {
	if n.Sign() <= 0 {
		return false
	}
	value := n.BigInt()
	for k := 2; k <= value.BitLen(); k++ {
		root := integerRoot(value, k)
		if new(big.Int).Exp(root, big.NewInt(int64(k)), nil).Cmp(value) == 0 && root.ProbablyPrime(20) {
			return true
		}
	}
	return false
}

// integerRoot returns floor(n^(1/k)) for n >= 0, k >= 1, found by binary search.
func integerRoot(n *big.Int, k int) *big.Int {
	exponent := big.NewInt(int64(k))
	low, high := big.NewInt(0), new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/k+1))
	one := big.NewInt(1)
	for low.Cmp(high) < 0 {
		// mid = ceil((low+high)/2) to make progress when high == low+1
		mid := new(big.Int).Add(low, high)
		mid.Add(mid, one).Rsh(mid, 1)
		if new(big.Int).Exp(mid, exponent, nil).Cmp(n) <= 0 {
			low = mid
		} else {
			high = mid.Sub(mid, one)
		}
	}
	return low
}
