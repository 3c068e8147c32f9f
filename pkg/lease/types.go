// Package lease computes lease scenarios: capitalized cost accounting,
// residual lookup with mileage adjustment, tax-inclusive payments, and the
// exhaustive term-by-mileage grid search. Like the financing engine, it is
// pure and stateless.
package lease

// Plan identifies which rate plan a scenario was computed under.
type Plan string

// Rate plans offered per program.
const (
	// PlanStandard pairs the standard rate with the program's lease cash.
	PlanStandard Plan = "standard"

	// PlanAlternative pairs the alternative rate with no lease cash.
	PlanAlternative Plan = "alternative"
)

// ResidualEntry is one row of the externally supplied residual table,
// keyed loosely by brand/model/trim strings.
type ResidualEntry struct {
	Brand string
	Model string
	Trim  string
	Body  string

	// Residuals maps term to residual percentage of MSRP. A value of
	// exactly 0 means the term is not offered.
	Residuals map[int]float64
}

// KmAdjustmentTable maps a mileage tier to per-term percentage-point
// adjustments relative to the 24000 km/year baseline (always 0).
type KmAdjustmentTable map[int]map[int]float64

// LeaseRateEntry is one row of the externally supplied lease-rate table.
type LeaseRateEntry struct {
	Brand string
	Model string
	Trim  string

	// StandardRates and AlternativeRates map term to rate; a missing term
	// means that plan is not offered for the term.
	StandardRates    map[int]float64
	AlternativeRates map[int]float64

	// LeaseCash applies only with the standard rate plan.
	LeaseCash float64
}

// Scenario holds the computed figures for one (rate, lease cash) pair.
type Scenario struct {
	Plan      Plan
	Rate      float64
	LeaseCash float64

	CapCost       float64
	NetCapCost    float64 // raw value used in the arithmetic; may be negative
	ResidualValue float64
	MoneyFactor   float64

	Depreciation  float64
	FinanceCharge float64

	PreTaxMonthly  float64
	PreTaxBiweekly float64
	PreTaxWeekly   float64

	GST   float64
	QST   float64
	Taxes float64

	// TradeCredit is the applied portion of the trade-in tax credit;
	// TradeCreditLost is the uncredited remainder, surfaced so the caller
	// can warn rather than silently dropping it.
	TradeCredit     float64
	TradeCreditLost float64

	Monthly  float64
	Biweekly float64
	Weekly   float64

	TotalCost       float64
	CostOfBorrowing float64
}

// DisplayNetCapCost clamps the net capitalized cost at zero for display.
// The raw value stays in the arithmetic.
func (s *Scenario) DisplayNetCapCost() float64 {
	if s.NetCapCost < 0 {
		return 0
	}
	return s.NetCapCost
}

// Result is the lease computation for one (vehicle, term, mileage)
// selection: the standard and/or alternative scenario plus the residual
// figures they share.
type Result struct {
	Term      int
	KmPerYear int

	ResidualPct   float64 // adjusted percentage actually applied
	KmAdjustment  float64 // percentage points added on top of the baseline
	ResidualValue float64

	Standard    *Scenario
	Alternative *Scenario

	// BestPlan is empty unless both scenarios are present; it picks the
	// lower total cost.
	BestPlan Plan
	Savings  float64
}

// GridRow is one evaluated (term, mileage, plan) combination.
type GridRow struct {
	Term        int
	KmPerYear   int
	Plan        Plan
	Rate        float64
	ResidualPct float64
	Monthly     float64
	TotalCost   float64
}

// BestOption is the globally cheapest grid row by periodic payment. This
// optimizes affordability, deliberately a different objective than
// Result.BestPlan's total-cost comparison; both are exposed separately.
type BestOption struct {
	GridRow
	Scenario Scenario
}
