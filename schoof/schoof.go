// Package schoof counts the points of elliptic curves y^2 = x^3 + Ax + B over prime fields GF(p) with Schoof's algorithm.
//
// The number of points is q + 1 - t, where q is the field size and t is the trace of the Frobenius endomorphism.
// The algorithm determines t modulo a number of small primes l by checking the characteristic equation
// phi^2 - t*phi + q = 0 on the l-torsion subgroup, then assembles t with the Chinese Remainder Theorem.
//
// Two variants are provided. The naive variant uses all odd primes up to the inverse primorial of the naive range [-q, q]
// and tests every candidate by evaluating the whole characteristic equation. The reduced variant uses the Hasse bound
// |t| <= 2*sqrt(q), a greedily chosen set of primes and compares phi^2 + q with multiples of phi incrementally.
//
// This is a toolkit for studying the algorithm, it is not optimized for performance. In particular, all exponentiations
// use repeated multiplication, so only small fields are feasible.
package schoof

import (
	"fmt"
	"io"
	"math/big"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/ellipticCurves"
	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
	"github.com/GottfriedHerold/Schoof/schoof/integers"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof: "

var (
	ErrUnsupportedCharacteristic = fmt.Errorf(ErrorPrefix+"only prime fields of characteristic larger than 3 are supported: %w", algebra.ErrValue)
	ErrSingularCurve             = fmt.Errorf(ErrorPrefix+"curve is singular: %w", algebra.ErrConstruction)
	ErrNotAPrimeField            = fmt.Errorf(ErrorPrefix+"curve is not defined over a prime field: %w", algebra.ErrIncompatibleOperand)
	ErrUnknownAlgorithm          = fmt.Errorf(ErrorPrefix+"unknown algorithm: %w", algebra.ErrValue)
	ErrNoTraceCandidate          = fmt.Errorf(ErrorPrefix+"no candidate satisfies the characteristic equation of Frobenius: %w", algebra.ErrInternal)
)

// Curve is an elliptic curve in short Weierstrass form over a prime field.
type Curve = ellipticCurves.EllipticCurve[finiteFields.Element]

// NewCurve returns the curve y^2 = x^3 + Ax + B over GF(p).
//
// p must be a prime larger than 3 and the curve must be non-singular.
func NewCurve(p, A, B int64) (*Curve, error) {
	if p <= 3 {
		return nil, fmt.Errorf("%w: p = %v", ErrUnsupportedCharacteristic, p)
	}
	field, err := finiteFields.NewFiniteField(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCharacteristic, err)
	}
	curve, err := ellipticCurves.NewEllipticCurve[finiteFields.Element](field, A, B)
	if err != nil {
		return nil, err
	}
	if curve.IsSingular() {
		return nil, fmt.Errorf("%w: %v", ErrSingularCurve, curve)
	}
	return curve, nil
}

// fieldOf returns the prime field the curve is defined over.
func fieldOf(curve *Curve) (*finiteFields.FiniteField, error) {
	field, ok := curve.Field().(*finiteFields.FiniteField)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotAPrimeField, curve)
	}
	return field, nil
}

// fieldSize returns the size q of the field as an int. Fields too large for int are far outside of what is feasible anyway.
func fieldSize(field *finiteFields.FiniteField) (int, error) {
	q, err := field.Size().Int64()
	if err != nil {
		return 0, err
	}
	return int(q), nil
}

// TraceAlgorithm computes the trace of Frobenius of a curve.
type TraceAlgorithm func(curve *Curve) (*big.Int, error)

// Algorithms maps the names of the available variants to their trace algorithms.
var Algorithms = map[string]TraceAlgorithm{
	"naive":   NaiveFrobeniusTrace,
	"reduced": ReducedFrobeniusTrace,
}

// LookupAlgorithm returns the trace algorithm registered under name.
func LookupAlgorithm(name string) (TraceAlgorithm, error) {
	algorithm, ok := Algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return algorithm, nil
}

// NaiveSchoofAlgorithm counts the points of y^2 = x^3 + Ax + B over GF(p) with the naive variant.
// It writes a progress line to output, which may be nil.
func NaiveSchoofAlgorithm(p, A, B int64, output io.Writer) (*big.Int, error) {
	return CountPoints(NaiveFrobeniusTrace, p, A, B, output)
}

// ReducedComputationSchoofAlgorithm counts the points of y^2 = x^3 + Ax + B over GF(p) with the reduced variant.
// It writes a progress line to output, which may be nil.
func ReducedComputationSchoofAlgorithm(p, A, B int64, output io.Writer) (*big.Int, error) {
	return CountPoints(ReducedFrobeniusTrace, p, A, B, output)
}

// CountPoints returns the number of points of y^2 = x^3 + Ax + B over GF(p), including the point at infinity,
// using the given trace algorithm.
//
// On success, the line
//
//	Counting points on y^2 = x^3 + Ax + B over GF<p>: order
//
// is written to output (unless output is nil). Nothing is written on failure.
func CountPoints(trace TraceAlgorithm, p, A, B int64, output io.Writer) (order *big.Int, err error) {
	curve, err := NewCurve(p, A, B)
	if err != nil {
		return nil, err
	}
	t, err := trace(curve)
	if err != nil {
		return nil, err
	}
	order = OrderFromTrace(integers.NewInteger(p), t)
	if output != nil {
		if _, err = fmt.Fprintf(output, "Counting points on y^2 = x^3 + %vx + %v over GF<%v>: %v\n", A, B, p, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// OrderFromTrace returns q + 1 - t.
func OrderFromTrace(q integers.Integer, t *big.Int) *big.Int {
	order := new(big.Int).Add(q.BigInt(), big.NewInt(1))
	return order.Sub(order, t)
}
