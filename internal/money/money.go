package money

import (
	"fmt"
	"math"
	"strings"
)

// FormatINR renders an amount as a rupee string with Indian digit grouping,
// e.g. 1234567.5 -> "₹12,34,567.50". Paise are shown only when non-zero.
// Used for user-facing alert and insight copy.
func FormatINR(amount float64) string {
	if amount < 0 {
		return "-₹" + group(-amount)
	}
	return "₹" + group(amount)
}

func group(amount float64) string {
	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac >= 100 {
		whole++
		frac = 0
	}

	out := groupIndian(fmt.Sprintf("%d", whole))
	if frac > 0 {
		out = fmt.Sprintf("%s.%02d", out, frac)
	}
	return out
}

// groupIndian inserts separators Indian style: the last three digits form a
// group, everything before that is grouped in pairs (12,34,567).
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	head := digits[:n-3]
	tail := digits[n-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	parts = append(parts, tail)
	return strings.Join(parts, ",")
}
