// Package tangerine parses Tangerine statements. Tangerine prints full dates
// with the year and explicit signs on outflows, so there is less to infer
// than for the big-five layouts.
package tangerine

import (
	"regexp"
	"strings"
	"time"

	"github.com/maplebudget/mapleparse/parser/common"
)

type config struct {
	// "12 Aug 2025 Description -84.00 1,204.56"
	TransactionLine *regexp.Regexp
	DepositKeyword  *regexp.Regexp
}

func loadConfig() config {
	return config{
		TransactionLine: common.Pattern("statement.TANGERINE.patterns.transaction", `^(\d{1,2}\s[A-Za-z]{3}\s\d{4})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`),
		DepositKeyword:  common.Pattern("statement.TANGERINE.patterns.deposit", `(?i)deposit|payroll|interest|refund|rebate`),
	}
}

// Parse extracts raw transaction candidates from Tangerine statement text.
// The same grammar serves chequing and savings.
func Parse(text string, _ common.AccountType) []common.RawTransaction {
	cfg := loadConfig()
	now := time.Now()
	var transactions []common.RawTransaction

	for _, raw := range strings.Split(text, "\n") {
		match := cfg.TransactionLine.FindStringSubmatch(strings.TrimSpace(raw))
		if match == nil {
			continue
		}

		date, ok := common.ParseFlexibleDate(match[1], now)
		if !ok {
			continue
		}

		amountStr := match[3]
		amount, err := common.SignedAmount(amountStr)
		if err != nil || amount.IsZero() {
			continue
		}
		// Without an explicit sign, fall back to the deposit keyword
		// heuristic: unmarked lines are withdrawals.
		if !strings.HasPrefix(amountStr, "-") && !cfg.DepositKeyword.MatchString(match[2]) {
			amount = amount.Neg()
		}

		transactions = append(transactions, common.RawTransaction{
			Date:        date,
			Description: strings.TrimSpace(match[2]),
			Amount:      amount,
		})
	}

	return transactions
}
