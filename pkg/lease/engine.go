package lease

import (
	"fmt"
	"math"

	"github.com/dealforge/dealdesk/pkg/amort"
	"github.com/dealforge/dealdesk/pkg/constants"
	"github.com/dealforge/dealdesk/pkg/deal"
	"github.com/dealforge/dealdesk/pkg/mathutil"
	"go.uber.org/zap"
)

// Engine computes lease scenarios and grid searches.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a lease engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// adjustedResidualPct resolves the residual percentage for a term and
// mileage tier. ok is false when the base percentage is 0 or absent,
// meaning the term is not offered.
func adjustedResidualPct(entry *ResidualEntry, kmTable KmAdjustmentTable, term, kmPerYear int) (pct, adjustment float64, ok bool) {
	base := entry.Residuals[term]
	if base == 0 {
		return 0, 0, false
	}
	if kmPerYear != constants.BaselineKm {
		adjustment = kmTable[kmPerYear][term]
	}
	return base + adjustment, adjustment, true
}

// soldeNet normalizes a carried balance rolled into the lease. A debt
// (negative balance) is grossed up by the combined tax rate; a credit
// passes through unchanged.
func soldeNet(balance float64) float64 {
	if balance < 0 {
		return math.Abs(balance) * (1 + constants.CombinedTaxRate)
	}
	return balance
}

// scenario computes one (rate, lease cash) pair. residualValue is already
// mileage-adjusted. Tire tax and RDPRM stay out of capitalization: they
// are payable at delivery, not financed.
func (e *Engine) scenario(plan Plan, rate, leaseCash, residualValue float64, in deal.Inputs, term int) *Scenario {
	sellingPrice := in.VehiclePrice + in.AccessoriesTotal() - in.DealerDiscount
	capCost := sellingPrice + in.AdminFee - leaseCash

	netCapCost := capCost + soldeNet(in.CarriedBalance) + in.TradeInOwed -
		in.TradeInValue - in.DownPayment - effectiveBonusCash(in)

	depreciation := (netCapCost - residualValue) / float64(term)
	moneyFactor := rate / constants.MoneyFactorDivisor
	financeCharge := (netCapCost + residualValue) * moneyFactor
	preTax := depreciation + financeCharge

	gst := preTax * constants.GSTRate
	qst := preTax * constants.QSTRate
	taxes := gst + qst

	var credit, creditLost float64
	if in.TradeInValue > 0 {
		potential := (in.TradeInValue / float64(term)) * constants.CombinedTaxRate
		credit = mathutil.Min(potential, taxes)
		creditLost = mathutil.Max(0, potential-taxes)
	}

	postTax := mathutil.ClampNonNegative(preTax + taxes - credit)

	return &Scenario{
		Plan:            plan,
		Rate:            rate,
		LeaseCash:       leaseCash,
		CapCost:         capCost,
		NetCapCost:      netCapCost,
		ResidualValue:   residualValue,
		MoneyFactor:     moneyFactor,
		Depreciation:    depreciation,
		FinanceCharge:   financeCharge,
		PreTaxMonthly:   preTax,
		PreTaxBiweekly:  amort.ToBiweekly(preTax),
		PreTaxWeekly:    amort.ToWeekly(preTax),
		GST:             gst,
		QST:             qst,
		Taxes:           taxes,
		TradeCredit:     credit,
		TradeCreditLost: creditLost,
		Monthly:         postTax,
		Biweekly:        amort.ToBiweekly(postTax),
		Weekly:          amort.ToWeekly(postTax),
		TotalCost:       postTax * float64(term),
		CostOfBorrowing: financeCharge * float64(term),
	}
}

// effectiveBonusCash resolves the bonus cash rolled into the net cap cost.
func effectiveBonusCash(in deal.Inputs) float64 {
	if in.CustomBonusCash != nil {
		return *in.CustomBonusCash
	}
	return 0
}

func validKmTier(kmPerYear int) bool {
	for _, tier := range constants.MileageTiers {
		if kmPerYear == tier {
			return true
		}
	}
	return false
}

// ComputeLease produces the lease result for one (vehicle, term, mileage)
/// selection: the standard scenario (standard rate plus lease cash) and the
// alternative scenario (alternative rate, no cash), either of which may be
// absent when its rate table has no entry for the term.
//
/// A nil result with nil error means leasing is not offered: no matched
// entries, or a residual percentage of 0 for the term. A malformed term
// or mileage tier is a caller error and fails fast.
func (e *Engine) ComputeLease(residual *ResidualEntry, rates *LeaseRateEntry, kmTable KmAdjustmentTable,
	in deal.Inputs, term, kmPerYear int) (*Result, error) {

	if term <= 0 {
		return nil, fmt.Errorf("lease term must be positive, got %d", term)
	}
	if !validKmTier(kmPerYear) {
		return nil, fmt.Errorf("unsupported mileage tier %d, expected one of %v", kmPerYear, constants.MileageTiers)
	}
	if residual == nil || rates == nil {
		return nil, nil
	}

	pct, adjustment, ok := adjustedResidualPct(residual, kmTable, term, kmPerYear)
	if !ok {
		e.logger.Debug(fmt.Sprintf("term %d not offered for %s %s (residual 0)", term, residual.Brand, residual.Model),
			zap.String("op", "lease.ComputeLease"),
		)
		return nil, nil
	}

	residualValue := mathutil.ApplyPercentage(in.ResidualBasis(), pct)

	result := &Result{
		Term:          term,
		KmPerYear:     kmPerYear,
		ResidualPct:   pct,
		KmAdjustment:  adjustment,
		ResidualValue: residualValue,
	}

	if rate, offered := rates.StandardRates[term]; offered {
		result.Standard = e.scenario(PlanStandard, rate, rates.LeaseCash, residualValue, in, term)
	}
	if rate, offered := rates.AlternativeRates[term]; offered {
		result.Alternative = e.scenario(PlanAlternative, rate, 0, residualValue, in, term)
	}

	if result.Standard != nil && result.Alternative != nil {
		if result.Alternative.TotalCost < result.Standard.TotalCost {
			result.BestPlan = PlanAlternative
		} else {
			result.BestPlan = PlanStandard
		}
		result.Savings = math.Abs(result.Standard.TotalCost - result.Alternative.TotalCost)
	}

	return result, nil
}
