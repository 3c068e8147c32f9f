package lease

import (
	"math"
	"reflect"
	"testing"

	"github.com/dealforge/dealdesk/pkg/deal"
	"go.uber.org/zap"
)

func residualFixture() *ResidualEntry {
	return &ResidualEntry{
		Brand: "Jeep",
		Model: "Wrangler",
		Trim:  "Sahara",
		Body:  "4-door",
		Residuals: map[int]float64{
			24: 62, 27: 60, 36: 55, 39: 53, 42: 51,
			48: 47, 51: 45, 54: 43, 60: 39,
		},
	}
}

func kmTableFixture() KmAdjustmentTable {
	table := KmAdjustmentTable{12000: {}, 18000: {}, 24000: {}}
	for _, term := range []int{24, 27, 36, 39, 42, 48, 51, 54, 60} {
		table[12000][term] = 4
		table[18000][term] = 2
		table[24000][term] = 0
	}
	return table
}

func ratesFixture() *LeaseRateEntry {
	return &LeaseRateEntry{
		Brand: "Jeep",
		Model: "Wrangler",
		Trim:  "Sport, Sahara, Rubicon",
		StandardRates: map[int]float64{
			24: 5.49, 27: 5.49, 36: 4.0, 39: 4.49,
			42: 4.49, 48: 4.99, 51: 4.99, 54: 5.49, 60: 5.99,
		},
		AlternativeRates: map[int]float64{
			36: 2.49, 48: 3.49, 60: 4.49,
		},
		LeaseCash: 1000,
	}
}

func TestComputeLeaseWorkedExample(t *testing.T) {
	// net cap cost 40000, residual 20000, 36 months at 4% must yield the
	// documented payment chain: MF 0.001667, depreciation 555.56, finance
	// charge 100, pre-tax 655.56, post-tax 753.73.
	engine := NewEngine(zap.NewNop())
	residual := &ResidualEntry{Brand: "B", Model: "M", Residuals: map[int]float64{36: 50}}
	rates := &LeaseRateEntry{Brand: "B", Model: "M", StandardRates: map[int]float64{36: 4.0}}
	in := deal.Inputs{VehiclePrice: 40000, PDSF: 40000}

	result, err := engine.ComputeLease(residual, rates, KmAdjustmentTable{}, in, 36, 24000)
	if err != nil {
		t.Fatalf("ComputeLease() unexpected error: %v", err)
	}
	if result == nil || result.Standard == nil {
		t.Fatal("expected a standard scenario")
	}

	s := result.Standard
	if math.Abs(s.NetCapCost-40000) > 1e-9 {
		t.Fatalf("net cap cost = %v, expected 40000", s.NetCapCost)
	}
	if math.Abs(s.ResidualValue-20000) > 1e-9 {
		t.Fatalf("residual value = %v, expected 20000", s.ResidualValue)
	}
	if math.Abs(s.MoneyFactor-4.0/2400) > 1e-12 {
		t.Errorf("money factor = %v, expected %v", s.MoneyFactor, 4.0/2400)
	}
	if math.Abs(s.Depreciation-555.5555555555555) > 1e-6 {
		t.Errorf("depreciation = %v, expected 555.56", s.Depreciation)
	}
	if math.Abs(s.FinanceCharge-100.0) > 1e-6 {
		t.Errorf("finance charge = %v, expected 100", s.FinanceCharge)
	}
	if math.Abs(s.PreTaxMonthly-655.5555555555555) > 1e-6 {
		t.Errorf("pre-tax payment = %v, expected 655.56", s.PreTaxMonthly)
	}
	if math.Abs(s.GST-32.77777777777778) > 1e-6 {
		t.Errorf("GST = %v, expected 32.78", s.GST)
	}
	if math.Abs(s.QST-65.39166666666667) > 1e-6 {
		t.Errorf("QST = %v, expected 65.39", s.QST)
	}
	if math.Abs(s.Monthly-753.725) > 1e-6 {
		t.Errorf("post-tax payment = %v, expected 753.725", s.Monthly)
	}
}

func TestComputeLeaseFullScenario(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	in := deal.Inputs{
		VehiclePrice:   45000,
		PDSF:           45000,
		Accessories:    []deal.Accessory{{Description: "Tow package", Price: 1500}},
		DealerDiscount: 1000,
		AdminFee:       499,
		TireTax:        15,
		RDPRMFee:       54,
		CarriedBalance: -2000,
		TradeInValue:   10000,
		TradeInOwed:    4000,
		DownPayment:    3000,
	}

	result, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, 36, 18000)
	if err != nil {
		t.Fatalf("ComputeLease() unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a lease result")
	}

	// 55% base + 2 points for 18000 km/year.
	if math.Abs(result.ResidualPct-57) > 1e-9 {
		t.Errorf("residual pct = %v, expected 57", result.ResidualPct)
	}
	if math.Abs(result.KmAdjustment-2) > 1e-9 {
		t.Errorf("km adjustment = %v, expected 2", result.KmAdjustment)
	}
	if math.Abs(result.ResidualValue-25650) > 1e-6 {
		t.Errorf("residual value = %v, expected 25650", result.ResidualValue)
	}

	s := result.Standard
	if s == nil {
		t.Fatal("expected a standard scenario")
	}
	// Tire tax and RDPRM stay out of capitalization.
	if math.Abs(s.CapCost-44999) > 1e-9 {
		t.Errorf("cap cost = %v, expected 44999 (selling 45500 + admin 499 - lease cash 1000)", s.CapCost)
	}
	// Negative carried balance grosses up by the combined tax rate.
	if math.Abs(s.NetCapCost-38298.5) > 1e-6 {
		t.Errorf("net cap cost = %v, expected 38298.5", s.NetCapCost)
	}
	if math.Abs(s.PreTaxMonthly-457.9280555555557) > 1e-6 {
		t.Errorf("pre-tax payment = %v, expected 457.93", s.PreTaxMonthly)
	}
	// Full trade-in credit applies: potential 41.60 < taxes 68.57.
	if math.Abs(s.TradeCredit-41.59722222222222) > 1e-6 {
		t.Errorf("trade credit = %v, expected 41.60", s.TradeCredit)
	}
	if s.TradeCreditLost != 0 {
		t.Errorf("trade credit lost = %v, expected 0", s.TradeCreditLost)
	}
	if math.Abs(s.Monthly-484.905559652778) > 1e-6 {
		t.Errorf("post-tax payment = %v, expected 484.91", s.Monthly)
	}
	if math.Abs(s.TotalCost-s.Monthly*36) > 1e-9 {
		t.Errorf("total cost = %v, expected monthly*36", s.TotalCost)
	}
	if math.Abs(s.CostOfBorrowing-s.FinanceCharge*36) > 1e-9 {
		t.Errorf("cost of borrowing = %v, expected finance charge*36", s.CostOfBorrowing)
	}
	if math.Abs(s.Biweekly-s.Monthly*12/26) > 1e-9 {
		t.Errorf("biweekly = %v, expected monthly*12/26", s.Biweekly)
	}
}

func TestComputeLeasePositiveCarriedBalancePassesThrough(t *testing.T) {
	engine := NewEngine(nil)
	residual := &ResidualEntry{Brand: "B", Model: "M", Residuals: map[int]float64{36: 50}}
	rates := &LeaseRateEntry{Brand: "B", Model: "M", StandardRates: map[int]float64{36: 4.0}}

	base := deal.Inputs{VehiclePrice: 40000}
	withCredit := base
	withCredit.CarriedBalance = 1500

	plain, err := engine.ComputeLease(residual, rates, KmAdjustmentTable{}, base, 36, 24000)
	if err != nil {
		t.Fatalf("ComputeLease() error: %v", err)
	}
	credited, err := engine.ComputeLease(residual, rates, KmAdjustmentTable{}, withCredit, 36, 24000)
	if err != nil {
		t.Fatalf("ComputeLease() error: %v", err)
	}

	diff := credited.Standard.NetCapCost - plain.Standard.NetCapCost
	if math.Abs(diff-1500) > 1e-9 {
		t.Errorf("positive carried balance shifted net cap cost by %v, expected exactly 1500 (no gross-up)", diff)
	}
}

func TestComputeLeaseTradeCreditPartiallyLost(t *testing.T) {
	// A large trade-in against a cheap lease: the per-period credit
	// potential exceeds the taxes on the payment, and the remainder is
	// surfaced as lost rather than reducing the payment below pre-tax.
	engine := NewEngine(nil)
	residual := &ResidualEntry{Brand: "B", Model: "M", Residuals: map[int]float64{36: 55}}
	rates := &LeaseRateEntry{Brand: "B", Model: "M", StandardRates: map[int]float64{36: 0.5}}
	in := deal.Inputs{
		VehiclePrice: 30000,
		TradeInValue: 12000,
	}

	result, err := engine.ComputeLease(residual, rates, KmAdjustmentTable{}, in, 36, 24000)
	if err != nil {
		t.Fatalf("ComputeLease() error: %v", err)
	}
	s := result.Standard

	potential := (12000.0 / 36) * 0.14975
	if math.Abs(s.TradeCredit-s.Taxes) > 1e-9 {
		t.Errorf("credit applied = %v, expected cap at taxes %v", s.TradeCredit, s.Taxes)
	}
	if math.Abs(s.TradeCreditLost-(potential-s.Taxes)) > 1e-9 {
		t.Errorf("credit lost = %v, expected %v", s.TradeCreditLost, potential-s.Taxes)
	}
	// The credit never reduces the payment below its pre-tax amount.
	if s.Monthly < s.PreTaxMonthly-1e-9 {
		t.Errorf("post-tax %v dropped below pre-tax %v", s.Monthly, s.PreTaxMonthly)
	}
}

func TestComputeLeaseScenarioAvailability(t *testing.T) {
	engine := NewEngine(nil)
	in := deal.Inputs{VehiclePrice: 45000}

	t.Run("Both plans present", func(t *testing.T) {
		result, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, 36, 24000)
		if err != nil {
			t.Fatalf("ComputeLease() error: %v", err)
		}
		if result.Standard == nil || result.Alternative == nil {
			t.Fatal("expected both scenarios for term 36")
		}
		if result.BestPlan == "" {
			t.Error("expected a best plan when both scenarios exist")
		}
		if result.Savings < 0 {
			t.Errorf("savings = %v, expected >= 0", result.Savings)
		}
	})

	t.Run("Alternative rate missing", func(t *testing.T) {
		result, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, 39, 24000)
		if err != nil {
			t.Fatalf("ComputeLease() error: %v", err)
		}
		if result.Standard == nil {
			t.Fatal("expected a standard scenario for term 39")
		}
		if result.Alternative != nil {
			t.Error("term 39 has no alternative rate, scenario must be absent")
		}
		if result.BestPlan != "" {
			t.Errorf("BestPlan = %q, expected none with a single scenario", result.BestPlan)
		}
	})

	t.Run("Residual zero means term not offered", func(t *testing.T) {
		residual := residualFixture()
		residual.Residuals[36] = 0
		result, err := engine.ComputeLease(residual, ratesFixture(), kmTableFixture(), in, 36, 24000)
		if err != nil {
			t.Fatalf("ComputeLease() error: %v", err)
		}
		if result != nil {
			t.Errorf("expected nil result for a term with residual 0, got %+v", result)
		}
	})

	t.Run("No matched entries means leasing not offered", func(t *testing.T) {
		result, err := engine.ComputeLease(nil, nil, kmTableFixture(), in, 36, 24000)
		if err != nil {
			t.Fatalf("ComputeLease() error: %v", err)
		}
		if result != nil {
			t.Error("expected nil result without matched entries")
		}
	})
}

func TestComputeLeaseAlternativePlanUsesNoLeaseCash(t *testing.T) {
	engine := NewEngine(nil)
	in := deal.Inputs{VehiclePrice: 45000}

	result, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, 36, 24000)
	if err != nil {
		t.Fatalf("ComputeLease() error: %v", err)
	}
	if result.Standard.LeaseCash != 1000 {
		t.Errorf("standard lease cash = %v, expected 1000", result.Standard.LeaseCash)
	}
	if result.Alternative.LeaseCash != 0 {
		t.Errorf("alternative lease cash = %v, expected 0", result.Alternative.LeaseCash)
	}
	if result.Alternative.CapCost-result.Standard.CapCost != 1000 {
		t.Errorf("cap cost gap = %v, expected the 1000 lease cash",
			result.Alternative.CapCost-result.Standard.CapCost)
	}
}

func TestComputeLeaseStructurallyMalformedInput(t *testing.T) {
	engine := NewEngine(nil)
	in := deal.Inputs{VehiclePrice: 45000}

	if _, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, -36, 24000); err == nil {
		t.Error("negative term expected to fail fast")
	}
	if _, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, 36, 15000); err == nil {
		t.Error("unsupported mileage tier expected to fail fast")
	}
}

func TestComputeLeaseIdempotent(t *testing.T) {
	engine := NewEngine(nil)
	in := deal.Inputs{
		VehiclePrice:   45000,
		TradeInValue:   10000,
		CarriedBalance: -2000,
		DownPayment:    3000,
	}

	first, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, 48, 12000)
	if err != nil {
		t.Fatalf("first ComputeLease() error: %v", err)
	}
	second, err := engine.ComputeLease(residualFixture(), ratesFixture(), kmTableFixture(), in, 48, 12000)
	if err != nil {
		t.Fatalf("second ComputeLease() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce bit-identical results")
	}
}
