package common

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumericRegex = regexp.MustCompile(`[^0-9.]`)

// CleanDecimal parses a string into a decimal.Decimal, removing non-numeric
// characters. Sign markers are ignored; use SignedAmount when they matter.
func CleanDecimal(text string) (decimal.Decimal, error) {
	cleanText := nonNumericRegex.ReplaceAllString(text, "")
	if cleanText == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleanText)
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// SignedAmount parses a monetary string honoring the sign conventions seen in
// statement text: leading or trailing minus, parentheses, and a CR suffix
// (credit on a credit-card statement) all yield a negative value.
func SignedAmount(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)

	negative := false
	switch {
	case strings.HasPrefix(trimmed, "-"):
		negative = true
	case strings.HasSuffix(trimmed, "-"):
		negative = true
	case strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")"):
		negative = true
	case strings.HasSuffix(strings.ToUpper(trimmed), "CR"):
		negative = true
	}

	amount, err := CleanDecimal(trimmed)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
