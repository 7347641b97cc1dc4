package schoof

import (
	"math/big"

	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
	"github.com/GottfriedHerold/Schoof/schoof/integers"
	"github.com/GottfriedHerold/Schoof/schoof/numberTheory"
)

// NaiveTraceRange returns [-q, q], the range of traces obtained from the trivial bound 0 <= #E <= 2q + 1.
func NaiveTraceRange(field *finiteFields.FiniteField) numberTheory.Range {
	q := field.Size()
	return numberTheory.Range{Lower: q.Neg(), Upper: q.Add(integers.Integers.One())}
}

// HasseTraceRange returns [-l, l] for l = 2 * ceil(sqrt(q)), which contains all traces by Hasse's theorem |t| <= 2 * sqrt(q).
func HasseTraceRange(field *finiteFields.FiniteField) numberTheory.Range {
	q := field.Size().BigInt()
	root := new(big.Int).Sqrt(q)
	if new(big.Int).Mul(root, root).Cmp(q) < 0 {
		root.Add(root, big.NewInt(1))
	}
	bound := integers.FromBigInt(root.Lsh(root, 1))
	return numberTheory.Range{Lower: bound.Neg(), Upper: bound.Add(integers.Integers.One())}
}

// rangeLengthAndCharacteristic returns the length of traceRange and the characteristic of field as ints.
func rangeLengthAndCharacteristic(traceRange numberTheory.Range, field *finiteFields.FiniteField) (length int, characteristic int, err error) {
	length64, err := traceRange.Len().Int64()
	if err != nil {
		return
	}
	characteristic64, err := field.Characteristic().Int64()
	if err != nil {
		return
	}
	return int(length64), int(characteristic64), nil
}

// NaiveTorsionPrimes returns the odd primes l other than the characteristic up to the inverse primorial of the length of
// the naive trace range. Together with 2, their product exceeds the length of the range.
func NaiveTorsionPrimes(field *finiteFields.FiniteField) ([]int, error) {
	length, characteristic, err := rangeLengthAndCharacteristic(NaiveTraceRange(field), field)
	if err != nil {
		return nil, err
	}
	bound := numberTheory.InversePrimorial(length, characteristic)
	primes := []int{}
	for _, prime := range numberTheory.PrimesRange(3, bound+1) {
		if prime != characteristic {
			primes = append(primes, prime)
		}
	}
	return primes, nil
}

// ReducedTorsionPrimes returns a small set of primes other than the characteristic whose product is at least the length of
// the Hasse range. The set may contain 2.
func ReducedTorsionPrimes(field *finiteFields.FiniteField) ([]int, error) {
	length, characteristic, err := rangeLengthAndCharacteristic(HasseTraceRange(field), field)
	if err != nil {
		return nil, err
	}
	return numberTheory.GreedyPrimeFactors(length, characteristic), nil
}
