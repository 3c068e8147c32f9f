// Package quote orchestrates one full quote computation: financing
// comparison, lease scenarios for the selected term and mileage, and the
// exhaustive lease grid search. Both the CLI and the HTTP server call
// Compute; everything below it is pure.
package quote

import (
	"fmt"

	"github.com/dealforge/dealdesk/internal/config"
	"github.com/dealforge/dealdesk/pkg/adapters"
	"github.com/dealforge/dealdesk/pkg/constants"
	"github.com/dealforge/dealdesk/pkg/deal"
	"github.com/dealforge/dealdesk/pkg/finance"
	"github.com/dealforge/dealdesk/pkg/lease"
	"go.uber.org/zap"
)

// Vehicle identifies the quoted vehicle for display.
type Vehicle struct {
	Brand     string
	Model     string
	Trim      string
	ModelYear int
}

// Result is one complete quote. It is a derived snapshot of its inputs;
// recomputing with the same configuration yields an identical value.
type Result struct {
	Vehicle   Vehicle
	Frequency deal.Frequency

	Financing *finance.Result

	// Lease is nil when leasing is not offered for the vehicle: no
	// matching residual or lease-rate record, or the selected term is not
	// offered. The financing result is unaffected either way.
	Lease     *lease.Result
	BestLease *lease.BestOption
	Grid      []lease.GridRow

	Warnings []string
}

// Compute produces a quote from a loaded configuration. Structurally
// malformed input (negative term, unknown frequency) returns an error;
// incomplete data degrades into warnings and omitted sections.
func Compute(logger *zap.Logger, conf config.Configuration) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	warnings := conf.ValidateConfiguration()

	in, err := adapters.DealToInputs(conf.Deal)
	if err != nil {
		return nil, err
	}
	if in.Term < 0 {
		return nil, fmt.Errorf("term must not be negative, got %d", in.Term)
	}

	result := &Result{Frequency: in.Frequency, Warnings: warnings}

	if conf.Program == nil {
		return result, nil
	}
	program := adapters.ProgramToVehicleProgram(*conf.Program)
	result.Vehicle = Vehicle{
		Brand:     program.Brand,
		Model:     program.Model,
		Trim:      program.Trim,
		ModelYear: program.ModelYear,
	}

	if in.Term > 0 {
		financingResult, err := finance.NewEngine(logger).ComputeFinancing(program, in, in.Term)
		if err != nil {
			return nil, err
		}
		result.Financing = financingResult
	}

	residuals := adapters.ResidualsToEntries(conf.Residuals)
	leaseRates := adapters.LeaseRatesToEntries(conf.LeaseRates)
	kmTable := adapters.KmAdjustmentsToTable(conf.KmAdjustments)

	residual := lease.MatchResidual(program.Brand, program.Model, program.Trim, residuals)
	rates := lease.MatchLeaseRate(program.Brand, program.Model, program.Trim, leaseRates)
	if residual == nil || rates == nil {
		logger.Debug(fmt.Sprintf("no residual or lease-rate match for %s %s, leasing not offered",
			program.Brand, program.Model),
			zap.String("op", "quote.Compute"),
		)
		return result, nil
	}

	kmPerYear := in.KmPerYear
	if kmPerYear == 0 {
		kmPerYear = constants.BaselineKm
	}

	leaseEngine := lease.NewEngine(logger)
	if in.Term > 0 {
		leaseResult, err := leaseEngine.ComputeLease(residual, rates, kmTable, in, in.Term, kmPerYear)
		if err != nil {
			return nil, err
		}
		result.Lease = leaseResult
		if leaseResult != nil && scenarioWithLostCredit(leaseResult) != nil {
			s := scenarioWithLostCredit(leaseResult)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("trade-in tax credit exceeds the taxes on the payment; %.2f per period goes uncredited", s.TradeCreditLost))
		}
	}

	result.BestLease, result.Grid = leaseEngine.SearchBestLease(residual, rates, kmTable, in)

	return result, nil
}

// scenarioWithLostCredit returns a scenario whose trade-in credit could
// not be fully applied, if any.
func scenarioWithLostCredit(r *lease.Result) *lease.Scenario {
	if r.Standard != nil && r.Standard.TradeCreditLost > 0 {
		return r.Standard
	}
	if r.Alternative != nil && r.Alternative.TradeCreditLost > 0 {
		return r.Alternative
	}
	return nil
}
