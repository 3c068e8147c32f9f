// Package config defines the data structures related to a deal sheet and
// includes functions for loading and validating the configuration.
//
// Numeric deal fields are carried as user-entered text; parsing them (with
// the zero-default policy) happens in pkg/adapters, so the engines only
// ever see valid numbers.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// Configuration holds a full quote request: the deal sheet, the selected
// manufacturer program, and the residual/lease-rate reference tables.
type Configuration struct {
	Deal          DealConfig             `yaml:"deal"`
	Program       *ProgramConfig         `yaml:"program,omitempty"`
	Residuals     []ResidualConfig       `yaml:"residuals,omitempty"`
	LeaseRates    []LeaseRateConfig      `yaml:"leaseRates,omitempty"`
	KmAdjustments map[string]RatesByTerm `yaml:"kmAdjustments,omitempty"`
	Logging       LoggingConfig          `yaml:"logging,omitempty"`
	Output        OutputConfig           `yaml:"output,omitempty"`
}

// RatesByTerm maps a term (as YAML string key) to a numeric value.
type RatesByTerm map[string]float64

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// AccessoryConfig is one accessory line item as entered.
type AccessoryConfig struct {
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

// DealConfig carries the salesperson's per-deal entries. Monetary fields
// stay as text until the adapter layer parses them.
type DealConfig struct {
	VehiclePrice   string            `yaml:"vehiclePrice"`
	Accessories    []AccessoryConfig `yaml:"accessories,omitempty"`
	AdminFee       string            `yaml:"adminFee,omitempty"`
	TireTax        string            `yaml:"tireTax,omitempty"`
	RDPRMFee       string            `yaml:"rdprmFee,omitempty"`
	TradeInValue   string            `yaml:"tradeInValue,omitempty"`
	TradeInOwed    string            `yaml:"tradeInOwed,omitempty"`
	DownPayment    string            `yaml:"downPayment,omitempty"`
	BonusCash      string            `yaml:"bonusCash,omitempty"` // custom override; empty keeps the program amount
	DealerDiscount string            `yaml:"dealerDiscount,omitempty"`
	PDSF           string            `yaml:"pdsf,omitempty"`
	CarriedBalance string            `yaml:"carriedBalance,omitempty"`
	Term           int               `yaml:"term"`
	Frequency      string            `yaml:"frequency,omitempty"`
	KmPerYear      int               `yaml:"kmPerYear,omitempty"`
}

// ProgramConfig is a manufacturer program as supplied upstream.
type ProgramConfig struct {
	Brand        string      `yaml:"brand"`
	Model        string      `yaml:"model"`
	Trim         string      `yaml:"trim,omitempty"`
	ModelYear    int         `yaml:"modelYear,omitempty"`
	ConsumerCash float64     `yaml:"consumerCash,omitempty"`
	BonusCash    float64     `yaml:"bonusCash,omitempty"`
	Option1Rates RatesByTerm `yaml:"option1Rates"`
	Option2Rates RatesByTerm `yaml:"option2Rates,omitempty"` // nil means option 2 is unavailable
}

// ResidualConfig is one residual table row.
type ResidualConfig struct {
	Brand     string      `yaml:"brand"`
	Model     string      `yaml:"model"`
	Trim      string      `yaml:"trim,omitempty"`
	Body      string      `yaml:"body,omitempty"`
	Residuals RatesByTerm `yaml:"residuals"`
}

// LeaseRateConfig is one lease-rate table row.
type LeaseRateConfig struct {
	Brand            string      `yaml:"brand"`
	Model            string      `yaml:"model"`
	Trim             string      `yaml:"trim,omitempty"`
	StandardRates    RatesByTerm `yaml:"standardRates,omitempty"`
	AlternativeRates RatesByTerm `yaml:"alternativeRates,omitempty"`
	LeaseCash        float64     `yaml:"leaseCash,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. an HTTP request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the deal sheet and
// returns human-readable warnings. Warnings never block a quote; genuinely
// malformed structural input surfaces later as engine errors.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Program == nil {
		warnings = append(warnings, "no program selected; financing cannot be computed")
		return warnings
	}

	if c.Deal.Term == 0 {
		warnings = append(warnings, "no term selected")
	} else if c.Program.Option1Rates != nil {
		if _, ok := c.Program.Option1Rates[fmt.Sprintf("%d", c.Deal.Term)]; !ok {
			warnings = append(warnings,
				fmt.Sprintf("program has no option 1 rate for term %d; the fallback rate will be used", c.Deal.Term))
		}
	}

	if c.Program.Option2Rates == nil {
		warnings = append(warnings, "program offers no option 2; no financing comparison will be reported")
	}

	if c.Deal.TradeInOwed != "" && c.Deal.TradeInValue == "" {
		warnings = append(warnings, "trade-in amount owed is set without a trade-in value")
	}

	if len(c.Residuals) == 0 || len(c.LeaseRates) == 0 {
		warnings = append(warnings, "residual or lease-rate tables are empty; leasing will not be quoted")
	}

	return warnings
}
