// Package paramgen generates parameters of random non-singular elliptic curves over prime fields GF(p),
// where the primes are given as p = 2^n - k. The output is a batch file that the runner can process.
package paramgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrSmallCharacteristic = errors.New("paramgen: the discriminant test requires characteristic > 3")
	ErrExponentTooLarge    = errors.New("paramgen: prime does not fit into int64")
	ErrMalformedLine       = errors.New("paramgen: malformed line, expected \"n, k\"")
)

// Pair holds the parameters A and B of the curve y^2 = x^3 + Ax + B.
type Pair struct {
	A int64
	B int64
}

// PrimeForm describes the number 2^N - K.
type PrimeForm struct {
	N int
	K int64
}

// NonSingular checks whether y^2 = x^3 + Ax + B is non-singular over GF(p), i.e. 4A^3 + 27B^2 != 0 mod p.
func NonSingular(p, A, B int64) (bool, error) {
	if p <= 3 {
		return false, fmt.Errorf("%w: p = %v", ErrSmallCharacteristic, p)
	}
	a, b := big.NewInt(A), big.NewInt(B)
	discriminant := new(big.Int).Exp(a, big.NewInt(3), nil)
	discriminant.Mul(discriminant, big.NewInt(4))
	bSquared := new(big.Int).Mul(b, b)
	discriminant.Add(discriminant, bSquared.Mul(bSquared, big.NewInt(27)))
	return discriminant.Mod(discriminant, big.NewInt(p)).Sign() != 0, nil
}

// Generate returns n distinct pairs (A, B) with 0 <= A, B < p of non-singular curves over GF(p).
//
// If n is close to the total number of pairs, the pairs are drawn without replacement from all pairs.
// Should there be fewer than n non-singular pairs, the result is shorter and a warning is logged.
// Otherwise, random pairs are drawn until n distinct non-singular ones are found.
func Generate(rng *rand.Rand, p int64, n int) ([]Pair, error) {
	if p <= 3 {
		return nil, fmt.Errorf("%w: p = %v", ErrSmallCharacteristic, p)
	}
	result := make([]Pair, 0, n)
	seen := make(map[Pair]bool, n)

	if float64(n) > 0.8*(float64(p)*float64(p)-1) {
		pairs := make([]Pair, 0, p*p)
		for A := int64(0); A < p; A++ {
			for B := int64(0); B < p; B++ {
				pairs = append(pairs, Pair{A: A, B: B})
			}
		}
		for len(pairs) > 0 && len(result) < n {
			index := rng.Intn(len(pairs))
			pair := pairs[index]
			pairs[index] = pairs[len(pairs)-1]
			pairs = pairs[:len(pairs)-1]
			if ok, _ := NonSingular(p, pair.A, pair.B); ok {
				result = append(result, pair)
			}
		}
		if len(result) < n {
			log.WithFields(log.Fields{"p": p, "found": len(result), "requested": n}).Warn("could not find enough parameter pairs")
		}
		return result, nil
	}

	for len(result) < n {
		pair := Pair{A: rng.Int63n(p), B: rng.Int63n(p)}
		if seen[pair] {
			continue
		}
		if ok, _ := NonSingular(p, pair.A, pair.B); ok {
			seen[pair] = true
			result = append(result, pair)
		}
	}
	return result, nil
}

// PrimeFromExponent returns 2^n - k.
func PrimeFromExponent(n int, k int64) (int64, error) {
	if n < 0 || n > 62 {
		return 0, fmt.Errorf("%w: 2^%v - %v", ErrExponentTooLarge, n, k)
	}
	return (int64(1) << n) - k, nil
}

// ParsePrimeForms reads lines "n, k" from r. Blank lines and lines starting with # are skipped.
func ParsePrimeForms(r io.Reader) ([]PrimeForm, error) {
	var forms []PrimeForm
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %v: %q", ErrMalformedLine, lineNumber, line)
		}
		n, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %v: %v", ErrMalformedLine, lineNumber, err)
		}
		k, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %v: %v", ErrMalformedLine, lineNumber, err)
		}
		forms = append(forms, PrimeForm{N: n, K: k})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return forms, nil
}

// WriteBatch generates curvesPerPrime curves for each of the given primes and writes them to w,
// one block per prime: a comment line, one "p A B" line per curve and an empty line.
func WriteBatch(w io.Writer, rng *rand.Rand, forms []PrimeForm, curvesPerPrime int) error {
	for _, form := range forms {
		p, err := PrimeFromExponent(form.N, form.K)
		if err != nil {
			return err
		}
		pairs, err := Generate(rng, p, curvesPerPrime)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "# %v-bit prime %v = 2^%v - %v\n", form.N, p, form.N, form.K); err != nil {
			return err
		}
		for _, pair := range pairs {
			if _, err := fmt.Fprintf(w, "%v %v %v\n", p, pair.A, pair.B); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
