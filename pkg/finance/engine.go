package finance

import (
	"fmt"
	"math"

	"github.com/dealforge/dealdesk/pkg/amort"
	"github.com/dealforge/dealdesk/pkg/deal"
	"go.uber.org/zap"
)

// Engine computes financing comparisons. It holds no state beyond a
// logger; every computation is a pure function of its arguments.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a financing engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// buildOption amortizes one option's principal at its rate over the term.
func buildOption(number int, rate, principal float64, tax TaxBreakdown, term int) *Option {
	monthly := amort.MonthlyPayment(principal, rate, term)
	return &Option{
		Number:    number,
		Rate:      rate,
		Tax:       tax,
		Principal: principal,
		Monthly:   monthly,
		Biweekly:  amort.ToBiweekly(monthly),
		Weekly:    amort.ToWeekly(monthly),
		TotalCost: monthly * float64(term),
	}
}

// ComputeFinancing produces the financing comparison for the selected
// term. A non-positive term is a caller error and fails fast; every other
// input irregularity degrades gracefully per the zero-default policy.
func (e *Engine) ComputeFinancing(program VehicleProgram, in deal.Inputs, term int) (*Result, error) {
	if term <= 0 {
		return nil, fmt.Errorf("financing term must be positive, got %d", term)
	}

	result := &Result{Term: term}

	principal1, tax1 := option1Principal(program, in)
	result.Option1 = buildOption(1, RateForTerm(program.Option1Rates, term), principal1, tax1, term)

	if program.Option2Rates != nil {
		principal2, tax2 := option2Principal(in)
		result.Option2 = buildOption(2, RateForTerm(program.Option2Rates, term), principal2, tax2, term)
	}

	if result.Option2 == nil {
		e.logger.Debug(fmt.Sprintf("program %s %s has no option 2 rates, skipping comparison", program.Brand, program.Model),
			zap.String("op", "finance.ComputeFinancing"),
		)
		return result, nil
	}

	// Strictly lower term total wins; an exact tie goes to option 1
	// because it carries the rebate.
	if result.Option2.TotalCost < result.Option1.TotalCost {
		result.BestOption = 2
	} else {
		result.BestOption = 1
	}
	result.Savings = math.Abs(result.Option1.TotalCost - result.Option2.TotalCost)
	if result.Option1.TotalCost == result.Option2.TotalCost {
		result.Savings = 0
	}

	e.logger.Debug(fmt.Sprintf("financing comparison for %s %s: option %d wins, saving %.2f",
		program.Brand, program.Model, result.BestOption, result.Savings),
		zap.String("op", "finance.ComputeFinancing"),
	)

	return result, nil
}
