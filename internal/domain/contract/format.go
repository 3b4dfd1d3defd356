package contract

import (
	"strconv"
	"strings"
	"time"
)

// FormatDateBR converts YYYY-MM-DD to DD/MM/YYYY. Unparseable input passes
// through unchanged so the template receives whatever the caller sent.
func FormatDateBR(value string) string {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return parsed.Format("02/01/2006")
}

// FormatCurrencyBR converts a dotted-decimal amount ("10000.5") to the
// Brazilian convention with dot thousands separators and a comma decimal
// ("10.000,50"). Decimals are padded or truncated to two digits.
// Unparseable input passes through unchanged.
func FormatCurrencyBR(value string) string {
	parts := strings.SplitN(value, ".", 2)
	intPart, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return value
	}

	decimals := ""
	if len(parts) > 1 {
		decimals = parts[1]
	}
	for len(decimals) < 2 {
		decimals += "0"
	}
	decimals = decimals[:2]

	return groupThousands(intPart) + "," + decimals
}

func groupThousands(value int64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	digits := strconv.FormatInt(value, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + strings.Join(groups, ".")
}
