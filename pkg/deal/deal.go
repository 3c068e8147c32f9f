// Package deal defines the normalized deal sheet inputs shared by the
// financing and lease engines. Values here are already parsed; the
// zero-default policy for user text lives in pkg/parse and the adapters.
package deal

import "fmt"

// Frequency identifies how often a payment is made.
type Frequency string

// Supported payment frequencies.
const (
	Monthly  Frequency = "monthly"
	Biweekly Frequency = "biweekly"
	Weekly   Frequency = "weekly"
)

// ParseFrequency resolves a frequency name, defaulting empty input to
// monthly. An unrecognized name is a caller error, not a zero-default
// case, and fails fast.
func ParseFrequency(name string) (Frequency, error) {
	switch Frequency(name) {
	case "":
		return Monthly, nil
	case Monthly, Biweekly, Weekly:
		return Frequency(name), nil
	default:
		return "", fmt.Errorf("unrecognized payment frequency %q, expected %s, %s, or %s",
			name, Monthly, Biweekly, Weekly)
	}
}

// Accessory is one dealer-installed accessory line item.
type Accessory struct {
	Description string
	Price       float64
}

// Inputs holds the per-deal adjustments entered by the salesperson.
// All monetary values are in dollars.
type Inputs struct {
	VehiclePrice float64
	Accessories  []Accessory

	// Taxable delivery fees.
	AdminFee float64
	TireTax  float64
	RDPRMFee float64

	TradeInValue float64
	TradeInOwed  float64

	// DownPayment is a tax-inclusive amount; it reduces the amount
	// financed, not the taxable base.
	DownPayment float64

	// CustomBonusCash overrides the program's bonus cash when non-nil.
	CustomBonusCash *float64

	// Lease-only adjustments.
	DealerDiscount float64
	PDSF           float64 // MSRP basis override for residuals; 0 means use VehiclePrice
	CarriedBalance float64 // negative = debt rolled into the lease, positive = credit

	Term      int
	Frequency Frequency
	KmPerYear int
}

// AccessoriesTotal sums the accessory line items.
func (in Inputs) AccessoriesTotal() float64 {
	total := 0.0
	for _, accessory := range in.Accessories {
		total += accessory.Price
	}
	return total
}

// TaxableFees sums the delivery fees that always join the taxable base.
func (in Inputs) TaxableFees() float64 {
	return in.AdminFee + in.TireTax + in.RDPRMFee
}

// ResidualBasis returns the MSRP basis used for residual value: the PDSF
// override when supplied, else the vehicle price.
func (in Inputs) ResidualBasis() float64 {
	if in.PDSF > 0 {
		return in.PDSF
	}
	return in.VehiclePrice
}
