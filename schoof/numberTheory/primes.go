package numberTheory

// PrimesRange returns all primes p with lower <= p < upper in increasing order, using the sieve of Eratosthenes.
//
// The sieve always starts at 2 and uses memory proportional to upper, so this is only intended for small bounds.
func PrimesRange(lower, upper int) []int {
	if upper <= 2 {
		return []int{}
	}
	composite := make([]bool, upper)
	for i := 2; i*i < upper; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j < upper; j += i {
			composite[j] = true
		}
	}
	if lower < 2 {
		lower = 2
	}
	ret := []int{}
	for i := lower; i < upper; i++ {
		if !composite[i] {
			ret = append(ret, i)
		}
	}
	return ret
}

// primesUpToProduct returns the primes other than shunned in increasing order, up to the smallest one at which their
// product is at least n. The list always contains at least one prime.
func primesUpToProduct(n int, shunned int) (primes []int, product int) {
	upper := n + 2
	if upper < 4 {
		upper = 4
	}
	// the primes up to n+1 do not suffice if shunned is among them, so the sieve grows until they do
	for ; ; upper *= 2 {
		primes = primes[:0]
		product = 1
		for _, prime := range PrimesRange(2, upper) {
			if prime == shunned {
				continue
			}
			primes = append(primes, prime)
			product *= prime
			if product >= n {
				return
			}
		}
	}
}

// InversePrimorial returns the smallest prime p such that the product of all primes up to p (inclusive) other than shunned
// is at least n. For example, InversePrimorial(30, 0) is 5 and InversePrimorial(31, 0) is 7.
//
// For n < 2, the result is the smallest prime other than shunned. Set shunned to 0 if no prime is to be excluded.
func InversePrimorial(n int, shunned int) int {
	primes, _ := primesUpToProduct(n, shunned)
	return primes[len(primes)-1]
}

// GreedyPrimeFactors returns a list of small primes other than shunned whose product is at least n.
//
// The list starts as the primes up to InversePrimorial(n, shunned). Then, going from the largest to the smallest prime,
// each prime that is not needed to keep the product at least n is removed. This greedy choice may be suboptimal;
// finding the optimal set is a knapsack problem. The result is in increasing order.
func GreedyPrimeFactors(n int, shunned int) []int {
	candidates, product := primesUpToProduct(n, shunned)
	keep := make([]bool, len(candidates))
	for i := range keep {
		keep[i] = true
	}
	for i := len(candidates) - 1; i >= 0; i-- {
		if cancelled := product / candidates[i]; cancelled >= n {
			product = cancelled
			keep[i] = false
		}
	}
	ret := []int{}
	for i, prime := range candidates {
		if keep[i] {
			ret = append(ret, prime)
		}
	}
	return ret
}
