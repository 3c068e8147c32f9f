// Package output provides utilities for formatting and displaying quote results.
package output

import (
	"fmt"
	"strings"

	"github.com/dealforge/dealdesk/internal/quote"
	"github.com/dealforge/dealdesk/pkg/deal"
	"github.com/dealforge/dealdesk/pkg/finance"
	"github.com/dealforge/dealdesk/pkg/lease"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable quote.
func PrettyFormat(result *quote.Result) {
	if result == nil {
		return
	}
	p := message.NewPrinter(language.English)

	vehicle := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		result.Vehicle.Brand, result.Vehicle.Model, result.Vehicle.Trim))
	if vehicle == "" {
		vehicle = "(no vehicle selected)"
	}
	fmt.Printf("--- Quote for %s ---\n", vehicle)

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}

	if result.Financing != nil {
		printFinancing(p, result.Frequency, result.Financing)
	}
	if result.Lease != nil {
		printLease(p, result.Frequency, result.Lease)
	}
	if result.BestLease != nil {
		_, _ = p.Printf("\nBest lease overall: %d months / %d km at %.2f%% (%s), $%.2f per month\n",
			result.BestLease.Term, result.BestLease.KmPerYear, result.BestLease.Rate,
			result.BestLease.Plan, result.BestLease.Monthly)
	}
	if len(result.Grid) > 0 {
		printGrid(p, result.Grid)
	}
}

func printFinancing(p *message.Printer, frequency deal.Frequency, f *finance.Result) {
	fmt.Printf("\nFinancing over %d months:\n", f.Term)
	fmt.Printf("Option | Rate   | Principal     | Payment       | Total Cost\n")
	fmt.Printf("______ | ____   | _____________ | _____________ | __________\n")
	printFinancingOption(p, frequency, f.Option1)
	printFinancingOption(p, frequency, f.Option2)
	if f.BestOption != 0 {
		_, _ = p.Printf("Option %d wins, saving $%.2f over the term\n", f.BestOption, f.Savings)
	}
}

func printFinancingOption(p *message.Printer, frequency deal.Frequency, option *finance.Option) {
	if option == nil {
		return
	}
	_, _ = p.Printf("%d      | %.2f%% | $%.2f | $%.2f | $%.2f\n",
		option.Number, option.Rate, option.Principal,
		periodicPayment(frequency, option.Monthly, option.Biweekly, option.Weekly),
		option.TotalCost)
}

func printLease(p *message.Printer, frequency deal.Frequency, l *lease.Result) {
	_, _ = p.Printf("\nLease over %d months at %d km/year (residual %.2f%% = $%.2f):\n",
		l.Term, l.KmPerYear, l.ResidualPct, l.ResidualValue)
	fmt.Printf("Plan        | Rate   | Net Cap Cost  | Payment       | Total Cost\n")
	fmt.Printf("____        | ____   | _____________ | _____________ | __________\n")
	printScenario(p, frequency, l.Standard)
	printScenario(p, frequency, l.Alternative)
	if l.BestPlan != "" {
		_, _ = p.Printf("The %s plan wins, saving $%.2f over the term\n", l.BestPlan, l.Savings)
	}
}

func printScenario(p *message.Printer, frequency deal.Frequency, s *lease.Scenario) {
	if s == nil {
		return
	}
	_, _ = p.Printf("%-11s | %.2f%% | $%.2f | $%.2f | $%.2f\n",
		s.Plan, s.Rate, s.DisplayNetCapCost(),
		periodicPayment(frequency, s.Monthly, s.Biweekly, s.Weekly),
		s.TotalCost)
}

func printGrid(p *message.Printer, grid []lease.GridRow) {
	fmt.Printf("\nAll lease combinations:\n")
	fmt.Printf("Term | Km/Year | Plan        | Rate   | Residual | Monthly    | Total Cost\n")
	fmt.Printf("____ | _______ | ____        | ____   | ________ | _______    | __________\n")
	for _, row := range grid {
		_, _ = p.Printf("%d   | %d   | %-11s | %.2f%% | %.2f%%   | $%.2f | $%.2f\n",
			row.Term, row.KmPerYear, row.Plan, row.Rate, row.ResidualPct,
			row.Monthly, row.TotalCost)
	}
}

// CsvFormat outputs the lease grid in comma-separated value format.
func CsvFormat(result *quote.Result) {
	fmt.Print(CsvString(result))
}

// CsvString renders the lease grid as CSV.
func CsvString(result *quote.Result) string {
	var builder strings.Builder
	builder.WriteString(`"term","kmPerYear","plan","rate","residualPct","monthly","totalCost"` + "\n")
	if result == nil {
		return builder.String()
	}
	for _, row := range result.Grid {
		builder.WriteString(fmt.Sprintf(`"%d","%d","%s","%.2f","%.2f","%.2f","%.2f"`+"\n",
			row.Term, row.KmPerYear, row.Plan, row.Rate, row.ResidualPct,
			row.Monthly, row.TotalCost))
	}
	return builder.String()
}

// periodicPayment picks the payment matching the selected frequency.
func periodicPayment(frequency deal.Frequency, monthly, biweekly, weekly float64) float64 {
	switch frequency {
	case deal.Biweekly:
		return biweekly
	case deal.Weekly:
		return weekly
	default:
		return monthly
	}
}
