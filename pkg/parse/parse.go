// Package parse provides the numeric parsing boundary between user-entered
// deal sheet text and the calculation engines. The engines only ever see
// valid numbers; anything unparsable becomes zero here.
package parse

import (
	"strconv"
	"strings"
)

// OrZero parses a user-entered numeric string into a float64, returning 0
// for empty or unparsable input. Zero-defaulting is deliberate policy for
// deal sheet fields, not an error condition: an empty trade-in box means
// no trade-in.
//
// Currency decoration is tolerated: leading dollar signs, thousands
// separators (commas or spaces), and a comma used as the decimal separator
// (common in French-language entry).
func OrZero(text string) float64 {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return 0
	}

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimSpace(cleaned)

	// A single comma with no period is a decimal separator; otherwise
	// commas are thousands separators.
	if strings.Count(cleaned, ",") == 1 && !strings.Contains(cleaned, ".") {
		if i := strings.Index(cleaned, ","); len(cleaned)-i-1 <= 2 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if negative {
		return -value
	}
	return value
}

// IntOrZero parses a user-entered integer string, returning 0 for empty or
// unparsable input. Fractional text truncates toward zero.
func IntOrZero(text string) int {
	return int(OrZero(text))
}
