package schoof

import (
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/curvePolynomials"
	"github.com/GottfriedHerold/Schoof/schoof/ellipticCurves"
	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
	"github.com/GottfriedHerold/Schoof/schoof/fractionFields"
	"github.com/GottfriedHerold/Schoof/schoof/numberTheory"
	"github.com/GottfriedHerold/Schoof/schoof/quotients"
)

// torsionPoint is a point on the lift of a [Curve] to Frac(R / (psi_l)).
type torsionPoint = ellipticCurves.Point[fractionFields.Fraction[quotients.QuotientClass[curvePolynomials.CurvePolynomial[finiteFields.Element]]]]

// groupFieldSize returns the size of the base field of the curve group is a torsion subgroup of.
func groupFieldSize(group *TorsionGroup) (int, error) {
	field, err := fieldOf(group.Curve())
	if err != nil {
		return 0, err
	}
	return fieldSize(field)
}

// NaiveFrobeniusTraceModL returns the trace of Frobenius modulo the torsion l of group.
//
// Each candidate c = 0, ..., l-1 is tested by evaluating phi^2(P) - c * phi(P) + q * P for the generic l-torsion point P.
// The trace is the (unique) candidate for which this is the point at infinity.
func NaiveFrobeniusTraceModL(group *TorsionGroup) (trace numberTheory.Congruence, err error) {
	defer algebra.RecoverArithmeticPanic(&err)
	q, err := groupFieldSize(group)
	if err != nil {
		return
	}
	points, err := group.Elements()
	if err != nil {
		return
	}
	l := group.Torsion()
	for candidate := 0; candidate < l; candidate++ {
		satisfied := true
		for _, point := range points {
			satisfied, err = satisfiesCharacteristicEquation(point, candidate, q%l, q)
			if err != nil {
				return
			}
			if !satisfied {
				break
			}
		}
		if satisfied {
			return numberTheory.NewCongruence(int64(candidate), int64(l))
		}
	}
	err = fmt.Errorf("%w: torsion %v of %v", ErrNoTraceCandidate, l, group.Curve())
	return
}

// satisfiesCharacteristicEquation checks whether phi^2(point) - candidate * phi(point) + qModL * point is infinite.
func satisfiesCharacteristicEquation(point torsionPoint, candidate int, qModL int, q int) (bool, error) {
	phi, err := Frobenius(point, q)
	if err != nil {
		return false, err
	}
	phiSquared, err := Frobenius(phi, q)
	if err != nil {
		return false, err
	}
	candidateTimesPhi, err := phi.ScalarMul(candidate)
	if err != nil {
		return false, err
	}
	determinantTimesPoint, err := point.ScalarMul(qModL)
	if err != nil {
		return false, err
	}
	result, err := phiSquared.Sub(candidateTimesPhi)
	if err != nil {
		return false, err
	}
	result, err = result.Add(determinantTimesPoint)
	if err != nil {
		return false, err
	}
	return result.IsInfinite(), nil
}

// ReducedFrobeniusTraceModL returns the trace of Frobenius modulo the torsion l of group.
//
// With S = phi^2(P) + q * P for the generic l-torsion point P, the trace t satisfies S = t * phi(P).
// If S is infinite, t is 0 modulo l. Otherwise, the multiples c * phi(P) for 1 <= c < (l+1)/2 are compared with S
// by their x-coordinates, which identifies t up to sign; the y-coordinate then determines the sign.
func ReducedFrobeniusTraceModL(group *TorsionGroup) (trace numberTheory.Congruence, err error) {
	defer algebra.RecoverArithmeticPanic(&err)
	q, err := groupFieldSize(group)
	if err != nil {
		return
	}
	points, err := group.Elements()
	if err != nil {
		return
	}
	l := group.Torsion()
	// the generic point stands for all of E[l], so one point suffices
	point := points[0]

	phi, err := Frobenius(point, q)
	if err != nil {
		return
	}
	phiSquared, err := Frobenius(phi, q)
	if err != nil {
		return
	}
	determinantTimesPoint, err := point.ScalarMul(q % l)
	if err != nil {
		return
	}
	target, err := phiSquared.Add(determinantTimesPoint)
	if err != nil {
		return
	}
	if target.IsInfinite() {
		return numberTheory.NewCongruence(0, int64(l))
	}

	multiple := phi
	for candidate := 1; candidate < (l+1)/2; candidate++ {
		if target.X().IsEqual(multiple.X()) {
			if target.Y().IsEqual(multiple.Y()) {
				return numberTheory.NewCongruence(int64(candidate), int64(l))
			}
			return numberTheory.NewCongruence(int64(-candidate), int64(l))
		}
		multiple, err = multiple.Add(phi)
		if err != nil {
			return
		}
	}
	err = fmt.Errorf("%w: torsion %v of %v", ErrNoTraceCandidate, l, group.Curve())
	return
}

// NaiveFrobeniusTrace computes the trace of Frobenius of curve with the naive variant of Schoof's algorithm.
func NaiveFrobeniusTrace(curve *Curve) (trace *big.Int, err error) {
	defer algebra.RecoverArithmeticPanic(&err)
	field, err := fieldOf(curve)
	if err != nil {
		return
	}
	primes, err := NaiveTorsionPrimes(field)
	if err != nil {
		return
	}
	return assembleTrace(curve, NaiveTraceRange(field), true, primes, NaiveFrobeniusTraceModL)
}

// ReducedFrobeniusTrace computes the trace of Frobenius of curve with the reduced variant of Schoof's algorithm.
func ReducedFrobeniusTrace(curve *Curve) (trace *big.Int, err error) {
	defer algebra.RecoverArithmeticPanic(&err)
	field, err := fieldOf(curve)
	if err != nil {
		return
	}
	primes, err := ReducedTorsionPrimes(field)
	if err != nil {
		return
	}
	// 2 is handled by FrobeniusTraceMod2.
	withMod2 := false
	oddPrimes := make([]int, 0, len(primes))
	for _, prime := range primes {
		if prime == 2 {
			withMod2 = true
		} else {
			oddPrimes = append(oddPrimes, prime)
		}
	}
	return assembleTrace(curve, HasseTraceRange(field), withMod2, oddPrimes, ReducedFrobeniusTraceModL)
}

// assembleTrace computes the trace modulo each of the given odd primes with traceModL (and modulo 2 if withMod2 is set) and
// returns the unique trace in traceRange that is compatible with all those congruences.
func assembleTrace(curve *Curve, traceRange numberTheory.Range, withMod2 bool, primes []int, traceModL func(*TorsionGroup) (numberTheory.Congruence, error)) (*big.Int, error) {
	log.WithFields(log.Fields{"curve": curve.String(), "primes": primes, "mod2": withMod2, "range": traceRange.String()}).Debug("computing trace of Frobenius")

	congruences := []numberTheory.Congruence{}
	if withMod2 {
		congruence, err := FrobeniusTraceMod2(curve)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"curve": curve.String(), "torsion": 2, "trace": congruence.String()}).Debug("trace modulo torsion")
		congruences = append(congruences, congruence)
	}

	family := FamilyOf(curve)
	for _, prime := range primes {
		group, err := family.Group(prime)
		if err != nil {
			return nil, err
		}
		congruence, err := traceModL(group)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"curve": curve.String(), "torsion": prime, "trace": congruence.String()}).Debug("trace modulo torsion")
		congruences = append(congruences, congruence)
	}

	combined, err := numberTheory.SolveCongruenceEquations(congruences)
	if err != nil {
		return nil, err
	}
	trace, err := numberTheory.RepresentativeInRange(combined, traceRange)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"curve": curve.String(), "congruence": combined.String(), "trace": trace.String()}).Debug("computed trace of Frobenius")
	return trace.BigInt(), nil
}
