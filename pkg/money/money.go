// Package money formats centavo amounts as Philippine peso strings.
package money

import (
	"fmt"
	"strconv"
)

// PesoSign is the currency symbol prepended by Format.
const PesoSign = "₱"

// Format renders a centavo amount as a peso string with comma-separated
// thousands and two decimal places, e.g. 123456 -> "₱1,234.56".
func Format(centavos int64) string {
	negative := centavos < 0
	if negative {
		centavos = -centavos
	}

	whole := centavos / 100
	frac := centavos % 100

	formatted := fmt.Sprintf("%s%s.%02d", PesoSign, groupThousands(whole), frac)
	if negative {
		return "-" + formatted
	}
	return formatted
}

// groupThousands inserts commas into a non-negative integer, e.g. 1234567 -> "1,234,567".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	// Leading group may be shorter than three digits.
	head := len(s) % 3
	if head == 0 {
		head = 3
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	out = append(out, s[:head]...)
	for i := head; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
