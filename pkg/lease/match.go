package lease

import "strings"

// Matching is string-based and deliberately loose: the residual and
// lease-rate tables come from a different upstream than the programs, so
// brand must match exactly but model and trim only need containment. The
// first matching record in input order wins; no match means leasing is
// simply not offered for the vehicle this period.

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsEither(a, b string) bool {
	fa, fb := fold(a), fold(b)
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}

// trimCompatible reports whether two trim strings agree, treating an
// empty trim on either side as a wildcard.
func trimCompatible(a, b string) bool {
	if fold(a) == "" || fold(b) == "" {
		return true
	}
	return containsEither(a, b)
}

// trimTokenMatch checks a trim against a candidate trim field that may
// carry several comma-separated trims.
func trimTokenMatch(trim, candidate string) bool {
	if containsEither(trim, candidate) {
		return true
	}
	for _, token := range strings.Split(candidate, ",") {
		if fold(token) == "" {
			continue
		}
		if containsEither(trim, token) {
			return true
		}
	}
	return false
}

// MatchResidual finds the residual entry for a vehicle. Brand matches
// exactly (case-insensitive), model by mutual containment, trim by mutual
// containment with empty treated as a wildcard.
func MatchResidual(brand, model, trim string, entries []ResidualEntry) *ResidualEntry {
	for i := range entries {
		entry := &entries[i]
		if fold(entry.Brand) != fold(brand) {
			continue
		}
		if !containsEither(entry.Model, model) {
			continue
		}
		if !trimCompatible(entry.Trim, trim) {
			continue
		}
		return entry
	}
	return nil
}

// MatchLeaseRate finds the lease-rate entry for a vehicle. A trim-aware
// pass runs first: when the vehicle has a trim, the candidate's trim field
// must agree with it (including comma-split tokens). If nothing matches,
// a model-only pass ignores trim entirely.
func MatchLeaseRate(brand, model, trim string, entries []LeaseRateEntry) *LeaseRateEntry {
	if fold(trim) != "" {
		for i := range entries {
			entry := &entries[i]
			if fold(entry.Brand) != fold(brand) {
				continue
			}
			if !containsEither(entry.Model, model) {
				continue
			}
			if !trimTokenMatch(trim, entry.Trim) {
				continue
			}
			return entry
		}
	}

	for i := range entries {
		entry := &entries[i]
		if fold(entry.Brand) != fold(brand) {
			continue
		}
		if !containsEither(entry.Model, model) {
			continue
		}
		return entry
	}
	return nil
}
