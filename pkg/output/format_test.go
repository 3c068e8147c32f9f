package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dealforge/dealdesk/internal/quote"
	"github.com/dealforge/dealdesk/pkg/deal"
	"github.com/dealforge/dealdesk/pkg/finance"
	"github.com/dealforge/dealdesk/pkg/lease"
)

func sampleResult() *quote.Result {
	return &quote.Result{
		Vehicle:   quote.Vehicle{Brand: "Alfa Romeo", Model: "Tonale", Trim: "Veloce"},
		Frequency: deal.Monthly,
		Financing: &finance.Result{
			Term: 72,
			Option1: &finance.Option{
				Number:    1,
				Rate:      4.99,
				Principal: 55188.00,
				Monthly:   888.54,
				Biweekly:  410.10,
				Weekly:    205.05,
				TotalCost: 63974.88,
			},
			Option2: &finance.Option{
				Number:    2,
				Rate:      6.99,
				Principal: 51738.00,
				Monthly:   881.42,
				Biweekly:  406.81,
				Weekly:    203.40,
				TotalCost: 63462.24,
			},
			BestOption: 2,
			Savings:    512.64,
		},
		Lease: &lease.Result{
			Term:          48,
			KmPerYear:     18000,
			ResidualPct:   59,
			ResidualValue: 26550.00,
			Standard: &lease.Scenario{
				Plan:       lease.PlanStandard,
				Rate:       6.49,
				NetCapCost: 38298.50,
				Monthly:    753.73,
				Biweekly:   347.87,
				Weekly:     173.94,
				TotalCost:  36179.04,
			},
		},
		BestLease: &lease.BestOption{
			GridRow: lease.GridRow{
				Term:        60,
				KmPerYear:   24000,
				Plan:        lease.PlanStandard,
				Rate:        5.99,
				ResidualPct: 45,
				Monthly:     701.12,
				TotalCost:   42067.20,
			},
		},
		Grid: []lease.GridRow{
			{Term: 48, KmPerYear: 18000, Plan: lease.PlanStandard, Rate: 6.49, ResidualPct: 59, Monthly: 753.73, TotalCost: 36179.04},
			{Term: 60, KmPerYear: 24000, Plan: lease.PlanStandard, Rate: 5.99, ResidualPct: 45, Monthly: 701.12, TotalCost: 42067.20},
		},
		Warnings: []string{"program offers no option 2; no financing comparison will be reported"},
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat(sampleResult())
	})

	if !strings.Contains(output, "--- Quote for Alfa Romeo Tonale Veloce ---") {
		t.Errorf("PrettyFormat missing quote header")
	}
	if !strings.Contains(output, "Financing over 72 months:") {
		t.Errorf("PrettyFormat missing financing section")
	}
	if !strings.Contains(output, "$55,188.00") {
		t.Errorf("PrettyFormat missing grouped principal")
	}
	if !strings.Contains(output, "$888.54") {
		t.Errorf("PrettyFormat missing option 1 payment")
	}
	if !strings.Contains(output, "Option 2 wins, saving $512.64 over the term") {
		t.Errorf("PrettyFormat missing financing comparison line")
	}
	if !strings.Contains(output, "Lease over 48 months at 18,000 km/year") {
		t.Errorf("PrettyFormat missing lease section")
	}
	if !strings.Contains(output, "Best lease overall: 60 months / 24,000 km") {
		t.Errorf("PrettyFormat missing best lease line")
	}
	if !strings.Contains(output, "All lease combinations:") {
		t.Errorf("PrettyFormat missing grid section")
	}
	if !strings.Contains(output, "warning: program offers no option 2") {
		t.Errorf("PrettyFormat missing warning line")
	}
}

func TestPrettyFormatBiweeklyFrequency(t *testing.T) {
	result := sampleResult()
	result.Frequency = deal.Biweekly

	output := captureStdout(t, func() {
		PrettyFormat(result)
	})

	if !strings.Contains(output, "$410.10") {
		t.Errorf("expected biweekly financing payment in output")
	}
	if !strings.Contains(output, "$347.87") {
		t.Errorf("expected biweekly lease payment in output")
	}
	if strings.Contains(output, "$888.54") {
		t.Errorf("monthly financing payment should not appear for biweekly frequency")
	}
}

func TestPrettyFormatNoProgram(t *testing.T) {
	result := &quote.Result{
		Frequency: deal.Monthly,
		Warnings:  []string{"no program selected; financing cannot be computed"},
	}

	output := captureStdout(t, func() {
		PrettyFormat(result)
	})

	if !strings.Contains(output, "(no vehicle selected)") {
		t.Errorf("PrettyFormat missing placeholder vehicle header")
	}
	if strings.Contains(output, "Financing over") {
		t.Errorf("PrettyFormat should omit financing section without a program")
	}
}

func TestPrettyFormatNilResult(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("PrettyFormat panicked with nil result: %v", r)
		}
	}()

	output := captureStdout(t, func() {
		PrettyFormat(nil)
	})
	if output != "" {
		t.Errorf("expected no output for nil result, got %q", output)
	}
}

func TestCsvFormat(t *testing.T) {
	output := captureStdout(t, func() {
		CsvFormat(sampleResult())
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 data lines, got %d", len(lines))
	}

	if lines[0] != `"term","kmPerYear","plan","rate","residualPct","monthly","totalCost"` {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"48","18000","standard","6.49","59.00","753.73","36179.04"`) {
		t.Errorf("unexpected first data line: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"60","24000"`) {
		t.Errorf("unexpected second data line: %s", lines[2])
	}
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	result := sampleResult()
	expected := CsvString(result)

	output := captureStdout(t, func() {
		CsvFormat(result)
	})

	if expected != output {
		t.Fatalf("CsvString and CsvFormat output mismatch\nCsvString:\n%s\nCsvFormat:\n%s", expected, output)
	}
}

func TestCsvStringEmptyGrid(t *testing.T) {
	output := CsvString(&quote.Result{})
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only for empty grid, got %d lines", len(lines))
	}
}
