package schoof

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
	"github.com/GottfriedHerold/Schoof/schoof/torsionGroups"
)

// Family is the family of torsion groups of a [Curve].
type Family = torsionGroups.Family[finiteFields.Element]

// TorsionGroup is an l-torsion group of a [Curve].
type TorsionGroup = torsionGroups.LTorsionGroup[finiteFields.Element]

// familyCache holds the torsion group families (and with them the division polynomials) of recently used curves.
// Entries expire so that long batch runs over many curves do not keep every division polynomial list alive.
var familyCache = cache.New(10*time.Minute, time.Minute)

// FamilyOf returns the torsion group family of curve. Families are shared between all callers asking about
// curves with the same string representation, i.e. the same parameters over the same field.
func FamilyOf(curve *Curve) *Family {
	key := curve.String()
	if cached, found := familyCache.Get(key); found {
		return cached.(*Family)
	}
	family := torsionGroups.NewFamily(curve)
	if err := familyCache.Add(key, family, cache.DefaultExpiration); err != nil {
		// someone else was faster
		if cached, found := familyCache.Get(key); found {
			return cached.(*Family)
		}
	}
	return family
}

// FlushFamilyCache drops all cached torsion group families.
func FlushFamilyCache() {
	familyCache.Flush()
}
