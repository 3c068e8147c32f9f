// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/dealforge/dealdesk/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateFinancingTerm checks that a selected financing term is one the
// rate tables can carry. This is a structural check on caller input, not
// part of the zero-default policy for text fields.
func ValidateFinancingTerm(term int) error {
	for _, supported := range constants.FinancingTerms {
		if term == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported financing term %d, expected one of %v", term, constants.FinancingTerms)
}

// ValidateLeaseTerm checks that a selected lease term is one the residual
// tables can carry.
func ValidateLeaseTerm(term int) error {
	for _, supported := range constants.LeaseTerms {
		if term == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported lease term %d, expected one of %v", term, constants.LeaseTerms)
}

// ValidateMileageTier checks that a mileage tier is one of the supported
// annual allowances.
func ValidateMileageTier(kmPerYear int) error {
	for _, tier := range constants.MileageTiers {
		if kmPerYear == tier {
			return nil
		}
	}
	return fmt.Errorf("unsupported mileage tier %d, expected one of %v", kmPerYear, constants.MileageTiers)
}
