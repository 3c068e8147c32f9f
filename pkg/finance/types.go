// Package finance computes financing option comparisons for a vehicle
// program: taxable base and principal derivation, amortized payments, and
// best-option selection. Everything here is a pure function of its inputs.
package finance

// RateTable maps a term length in months to a nominal annual percentage
// rate. Tables are sparse; a missing term resolves to the documented
// fallback rate.
type RateTable map[int]float64

// VehicleProgram is a manufacturer financing program as supplied by the
// upstream data provider. Read-only to the engine.
type VehicleProgram struct {
	Brand     string
	Model     string
	Trim      string
	ModelYear int

	// ConsumerCash is a pre-tax rebate; it reduces the taxable base of
	// financing option 1 only.
	ConsumerCash float64

	// BonusCash is a post-tax incentive; it reduces the amount financed
	// under option 1 only.
	BonusCash float64

	Option1Rates RateTable

	// Option2Rates is nil when the program offers no second option; a nil
	// table is categorical absence, never approximated from option 1.
	Option2Rates RateTable
}

// TaxBreakdown itemizes the sales tax applied to a taxable base. GST and
// QST always sum to the combined rate times the base.
type TaxBreakdown struct {
	Base  float64
	GST   float64
	QST   float64
	Total float64
}

// Option holds the computed figures for one financing option.
type Option struct {
	Number    int
	Rate      float64
	Tax       TaxBreakdown
	Principal float64
	Monthly   float64
	Biweekly  float64
	Weekly    float64
	TotalCost float64
}

// Result is the financing comparison for one (program, deal, term)
// triple. It is a derived snapshot: recomputed on any input change, never
// mutated in place.
type Result struct {
	Term    int
	Option1 *Option
	Option2 *Option

	// BestOption is 1 or 2, or 0 when option 2 is unavailable and there
	// is nothing to compare against.
	BestOption int
	Savings    float64
}
