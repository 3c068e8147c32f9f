package finance

import (
	"github.com/dealforge/dealdesk/pkg/constants"
	"github.com/dealforge/dealdesk/pkg/deal"
	"github.com/dealforge/dealdesk/pkg/mathutil"
)

// taxOn itemizes GST and QST on a taxable base.
func taxOn(base float64) TaxBreakdown {
	return TaxBreakdown{
		Base:  base,
		GST:   base * constants.GSTRate,
		QST:   base * constants.QSTRate,
		Total: base * constants.CombinedTaxRate,
	}
}

// effectiveBonusCash resolves the bonus cash applied to option 1: the
// deal-level override when present, else the program's amount.
func effectiveBonusCash(program VehicleProgram, in deal.Inputs) float64 {
	if in.CustomBonusCash != nil {
		return *in.CustomBonusCash
	}
	return program.BonusCash
}

// option1Principal derives the financed principal for option 1 (consumer
// cash rebate plus standard rate). Consumer cash and the trade-in reduce
// the taxable base; bonus cash and the down payment are tax-inclusive and
// come off after tax. The result clamps at zero.
func option1Principal(program VehicleProgram, in deal.Inputs) (float64, TaxBreakdown) {
	base := in.VehiclePrice - program.ConsumerCash - in.TradeInValue + in.TaxableFees()
	tax := taxOn(base)
	gross := base + tax.Total + in.TradeInOwed
	net := gross - in.DownPayment - effectiveBonusCash(program, in)
	return mathutil.ClampNonNegative(net), tax
}

// option2Principal derives the financed principal for option 2 (no rebate,
// reduced rate). Bonus cash never applies here.
func option2Principal(in deal.Inputs) (float64, TaxBreakdown) {
	base := in.VehiclePrice - in.TradeInValue + in.TaxableFees()
	tax := taxOn(base)
	gross := base + tax.Total + in.TradeInOwed
	net := gross - in.DownPayment
	return mathutil.ClampNonNegative(net), tax
}
