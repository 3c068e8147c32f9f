// Package constants provides shared constants for the dealdesk engine.
package constants

// Tax rates for the Quebec jurisdiction. The combined rate is derived so
// that itemized GST+QST always equals the single multiplier used on a
// taxable base.
const (
	// GSTRate is the federal goods and services tax rate
	GSTRate = 0.05

	// QSTRate is the Quebec provincial sales tax rate
	QSTRate = 0.09975

	// CombinedTaxRate is the single multiplier applied to a taxable base
	CombinedTaxRate = GSTRate + QSTRate
)

// Financing constants
const (
	// FallbackFinanceRate is used when a program's rate table has no entry
	// for the requested term. It does not reflect a real offer; it keeps
	// the quote flowing instead of blocking on incomplete program data.
	FallbackFinanceRate = 4.99

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// BiweeklyPeriodsPerYear is the assumed number of biweekly periods per year
	BiweeklyPeriodsPerYear = 26

	// WeeklyPeriodsPerYear is the assumed number of weekly periods per year
	WeeklyPeriodsPerYear = 52

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Lease constants
const (
	// MoneyFactorDivisor converts an APR-like lease rate to a per-period
	// finance-charge multiplier (industry convention).
	MoneyFactorDivisor = 2400.0

	// BaselineKm is the mileage tier whose residual adjustment is always zero
	BaselineKm = 24000
)

// FinancingTerms lists the term lengths a program rate table may carry,
// in months.
var FinancingTerms = []int{36, 48, 60, 72, 84, 96}

// LeaseTerms lists the term lengths evaluated by the lease grid search,
// in months.
var LeaseTerms = []int{24, 27, 36, 39, 42, 48, 51, 54, 60}

// MileageTiers lists the annual mileage allowances evaluated by the lease
// grid search, in km/year.
var MileageTiers = []int{12000, 18000, 24000}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default deal sheet file name
	DefaultConfigFile = "deal.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum request body size for
	// quote submissions (256 KB)
	DefaultMaxRequestBytes int64 = 256 * 1024
)
