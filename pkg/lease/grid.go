package lease

import (
	"fmt"

	"github.com/dealforge/dealdesk/pkg/constants"
	"github.com/dealforge/dealdesk/pkg/deal"
	"github.com/dealforge/dealdesk/pkg/mathutil"
	"go.uber.org/zap"
)

// SearchBestLease enumerates every (mileage tier, term, plan) combination
// for which a rate is defined and the residual percentage is nonzero, and
// returns the combination with the globally minimum periodic payment plus
// the full grid for display.
//
// The objective here is periodic affordability (minimum monthly payment),
// not minimum total cost; a longer term can win here while losing the
// single-scenario total-cost comparison. Ties go to the first row in
// enumeration order: mileage tier outermost, then term, then standard
// before alternative.
func (e *Engine) SearchBestLease(residual *ResidualEntry, rates *LeaseRateEntry, kmTable KmAdjustmentTable,
	in deal.Inputs) (*BestOption, []GridRow) {

	if residual == nil || rates == nil {
		return nil, nil
	}

	var best *BestOption
	var grid []GridRow

	consider := func(term, kmPerYear int, pct float64, scenario *Scenario) {
		row := GridRow{
			Term:        term,
			KmPerYear:   kmPerYear,
			Plan:        scenario.Plan,
			Rate:        scenario.Rate,
			ResidualPct: pct,
			Monthly:     scenario.Monthly,
			TotalCost:   scenario.TotalCost,
		}
		grid = append(grid, row)

		if best == nil || row.Monthly < best.Monthly {
			best = &BestOption{GridRow: row, Scenario: *scenario}
		}
	}

	for _, kmPerYear := range constants.MileageTiers {
		for _, term := range constants.LeaseTerms {
			pct, _, ok := adjustedResidualPct(residual, kmTable, term, kmPerYear)
			if !ok {
				continue
			}
			residualValue := mathutil.ApplyPercentage(in.ResidualBasis(), pct)

			if rate, offered := rates.StandardRates[term]; offered {
				consider(term, kmPerYear, pct, e.scenario(PlanStandard, rate, rates.LeaseCash, residualValue, in, term))
			}
			if rate, offered := rates.AlternativeRates[term]; offered {
				consider(term, kmPerYear, pct, e.scenario(PlanAlternative, rate, 0, residualValue, in, term))
			}
		}
	}

	if best != nil {
		e.logger.Debug(fmt.Sprintf("best lease across %d combinations: %d months at %d km/year (%s) for %.2f/month",
			len(grid), best.Term, best.KmPerYear, best.Plan, best.Monthly),
			zap.String("op", "lease.SearchBestLease"),
		)
	}

	return best, grid
}
