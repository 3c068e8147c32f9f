package finance

import "github.com/dealforge/dealdesk/pkg/constants"

// RateForTerm resolves the rate for a term inside a sparse rate table.
// A missing entry returns the fallback rate rather than failing so an
// incomplete program never blocks a quote; callers must not treat the
// fallback as a real offer.
func RateForTerm(table RateTable, term int) float64 {
	if rate, ok := table[term]; ok {
		return rate
	}
	return constants.FallbackFinanceRate
}
