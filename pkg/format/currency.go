// Package format provides display formatting for monetary and rate values.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands
// separators (e.g., "-$1,234.56"). Rounding happens here, at the display
// boundary; callers must not feed the result back into arithmetic.
func Currency(amount float64) string {
	formatted := groupThousands(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent returns a rate string with two decimals and a percent sign
// (e.g., "4.99%").
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

func groupThousands(value float64) string {
	parts := strings.SplitN(fmt.Sprintf("%.2f", value), ".", 2)
	intPart, decPart := parts[0], parts[1]

	if len(intPart) <= 3 {
		return intPart + "." + decPart
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String() + "." + decPart
}
