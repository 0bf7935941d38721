// Package generic is the fallback transaction parser used when no
// issuer-specific grammar applies. It degrades gracefully: any line shaped
// like date + description + amount is taken as a candidate, and everything
// else is skipped silently.
package generic

import (
	"regexp"
	"strings"
	"time"

	"github.com/maplebudget/mapleparse/parser/common"
)

const months = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

var transactionLine = regexp.MustCompile(
	`(?i)^(` +
		// numeric dates: 12/08, 12/08/2025, 2025-08-12
		`\d{1,2}[/\-.]\d{1,2}(?:[/\-.]\d{2,4})?|\d{4}-\d{2}-\d{2}|` +
		// month-name dates, either order, optional year
		`(?:` + months + `)[a-z]*\.?\s+\d{1,2}(?:,?\s+\d{2,4})?|` +
		`\d{1,2}\s+(?:` + months + `)[a-z]*\.?(?:\s+\d{2,4})?` +
		`)\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})(\s?CR|-)?(?:\s+[\d,]+\.\d{2})?$`)

var creditKeyword = regexp.MustCompile(`(?i)deposit|payroll|interest|refund|rebate|credit`)

// Parse extracts best-effort candidates from unrecognized statement text.
func Parse(text string, accountType common.AccountType) []common.RawTransaction {
	now := time.Now()
	var transactions []common.RawTransaction

	for _, raw := range strings.Split(text, "\n") {
		match := transactionLine.FindStringSubmatch(strings.TrimSpace(raw))
		if match == nil {
			continue
		}

		date, ok := common.ParseFlexibleDate(match[1], now)
		if !ok {
			continue
		}

		description := strings.TrimSpace(match[2])
		amountStr := match[3] + strings.TrimSpace(match[4])

		amount, err := common.CleanDecimal(amountStr)
		if err != nil || amount.IsZero() {
			continue
		}

		// Explicit markers win; otherwise direction comes from keywords,
		// defaulting to outflow (most statement lines are charges).
		switch {
		case hasCreditSuffix(amountStr):
			// money in, on any account type
		case strings.HasPrefix(strings.TrimSpace(amountStr), "-"):
			// a leading minus is money in on a card, money out elsewhere
			if accountType != common.AccountCreditCard {
				amount = amount.Neg()
			}
		case creditKeyword.MatchString(description):
			// money in
		default:
			amount = amount.Neg()
		}

		transactions = append(transactions, common.RawTransaction{
			Date:        date,
			Description: description,
			Amount:      amount,
		})
	}

	return transactions
}

func hasCreditSuffix(amountStr string) bool {
	s := strings.ToUpper(strings.TrimSpace(amountStr))
	return strings.HasSuffix(s, "-") || strings.HasSuffix(s, "CR")
}
