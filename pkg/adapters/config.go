// Package adapters converts configuration types (user-entered text,
// string-keyed YAML maps) into the typed inputs the engines consume.
package adapters

import (
	"strconv"

	"github.com/dealforge/dealdesk/internal/config"
	"github.com/dealforge/dealdesk/pkg/deal"
	"github.com/dealforge/dealdesk/pkg/finance"
	"github.com/dealforge/dealdesk/pkg/lease"
	"github.com/dealforge/dealdesk/pkg/parse"
)

// DealToInputs parses the deal sheet text fields into engine inputs.
// Unparsable monetary text becomes zero by policy; an unrecognized
// frequency is a structural error and fails fast.
func DealToInputs(cfg config.DealConfig) (deal.Inputs, error) {
	frequency, err := deal.ParseFrequency(cfg.Frequency)
	if err != nil {
		return deal.Inputs{}, err
	}

	in := deal.Inputs{
		VehiclePrice:   parse.OrZero(cfg.VehiclePrice),
		AdminFee:       parse.OrZero(cfg.AdminFee),
		TireTax:        parse.OrZero(cfg.TireTax),
		RDPRMFee:       parse.OrZero(cfg.RDPRMFee),
		TradeInValue:   parse.OrZero(cfg.TradeInValue),
		TradeInOwed:    parse.OrZero(cfg.TradeInOwed),
		DownPayment:    parse.OrZero(cfg.DownPayment),
		DealerDiscount: parse.OrZero(cfg.DealerDiscount),
		PDSF:           parse.OrZero(cfg.PDSF),
		CarriedBalance: parse.OrZero(cfg.CarriedBalance),
		Term:           cfg.Term,
		Frequency:      frequency,
		KmPerYear:      cfg.KmPerYear,
	}

	// An empty bonus cash box keeps the program's amount; any text,
	// including unparsable text, overrides it (zero-default).
	if cfg.BonusCash != "" {
		bonus := parse.OrZero(cfg.BonusCash)
		in.CustomBonusCash = &bonus
	}

	for _, accessory := range cfg.Accessories {
		in.Accessories = append(in.Accessories, deal.Accessory{
			Description: accessory.Description,
			Price:       parse.OrZero(accessory.Price),
		})
	}

	return in, nil
}

// termRates converts a string-keyed YAML rate map to the int-keyed form
// the engines use. Unparsable term keys are dropped.
func termRates(rates config.RatesByTerm) map[int]float64 {
	if rates == nil {
		return nil
	}
	converted := make(map[int]float64, len(rates))
	for key, value := range rates {
		term, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		converted[term] = value
	}
	return converted
}

// ProgramToVehicleProgram converts a program record. A nil option-2 rate
// map stays nil: option 2 is categorically unavailable, never defaulted.
func ProgramToVehicleProgram(cfg config.ProgramConfig) finance.VehicleProgram {
	return finance.VehicleProgram{
		Brand:        cfg.Brand,
		Model:        cfg.Model,
		Trim:         cfg.Trim,
		ModelYear:    cfg.ModelYear,
		ConsumerCash: cfg.ConsumerCash,
		BonusCash:    cfg.BonusCash,
		Option1Rates: termRates(cfg.Option1Rates),
		Option2Rates: termRates(cfg.Option2Rates),
	}
}

// ResidualsToEntries converts the residual reference table.
func ResidualsToEntries(rows []config.ResidualConfig) []lease.ResidualEntry {
	entries := make([]lease.ResidualEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, lease.ResidualEntry{
			Brand:     row.Brand,
			Model:     row.Model,
			Trim:      row.Trim,
			Body:      row.Body,
			Residuals: termRates(row.Residuals),
		})
	}
	return entries
}

// LeaseRatesToEntries converts the lease-rate reference table.
func LeaseRatesToEntries(rows []config.LeaseRateConfig) []lease.LeaseRateEntry {
	entries := make([]lease.LeaseRateEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, lease.LeaseRateEntry{
			Brand:            row.Brand,
			Model:            row.Model,
			Trim:             row.Trim,
			StandardRates:    termRates(row.StandardRates),
			AlternativeRates: termRates(row.AlternativeRates),
			LeaseCash:        row.LeaseCash,
		})
	}
	return entries
}

// KmAdjustmentsToTable converts the mileage adjustment table.
func KmAdjustmentsToTable(rows map[string]config.RatesByTerm) lease.KmAdjustmentTable {
	table := make(lease.KmAdjustmentTable, len(rows))
	for key, byTerm := range rows {
		kmPerYear, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		table[kmPerYear] = termRates(byTerm)
	}
	return table
}
