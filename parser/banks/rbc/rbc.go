// Package rbc parses Royal Bank of Canada statements.
package rbc

import (
	"regexp"
	"strings"
	"time"

	"github.com/maplebudget/mapleparse/parser/common"
)

type config struct {
	// Chequing/savings line: "8 Aug e-Transfer - Autodeposit EMMA BROWN
	// 1,500.00 24,989.24": day-month date, description, amount, then the
	// running balance. The balance column may be absent when extraction
	// drops it.
	ChequingLine *regexp.Regexp
	// Continuation rows within the same date group omit the date.
	Continuation *regexp.Regexp
	// Credit card line: "AUG 12 AUG 13 DESCRIPTION $18.39" with the transaction
	// date first, posting date second.
	CardLine       *regexp.Regexp
	DepositKeyword *regexp.Regexp
	PaymentKeyword *regexp.Regexp
	HeaderKeyword  *regexp.Regexp
}

func loadConfig() config {
	return config{
		ChequingLine:   common.Pattern("statement.RBC_CHEQUING.patterns.transaction", `^(\d{1,2}\s[A-Za-z]{3})\s+(.+?)\s+([\d,]+\.\d{2})(?:\s+([\d,]+\.\d{2}))?$`),
		Continuation:   common.Pattern("statement.RBC_CHEQUING.patterns.continuation", `^([A-Za-z].+?)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`),
		CardLine:       common.Pattern("statement.RBC_CC.patterns.transaction", `^([A-Z]{3}\s\d{1,2})\s+([A-Z]{3}\s\d{1,2})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})$`),
		DepositKeyword: common.Pattern("statement.RBC_CHEQUING.patterns.deposit", `(?i)deposit|payroll|interest|refund|rebate`),
		PaymentKeyword: common.Pattern("statement.RBC_CC.patterns.payment", `(?i)PAYMENT|PAIEMENT|THANK\s?YOU|MERCI`),
		HeaderKeyword:  common.Pattern("statement.RBC_CHEQUING.patterns.header", `(?i)opening\s+balance|closing\s+balance|withdrawals\s*\(\$\)|balance\s*\(\$\)`),
	}
}

// Parse extracts raw transaction candidates from RBC statement text.
func Parse(text string, accountType common.AccountType) []common.RawTransaction {
	cfg := loadConfig()
	if accountType == common.AccountCreditCard {
		return parseCard(cfg, text)
	}
	return parseChequing(cfg, text)
}

func parseChequing(cfg config, text string) []common.RawTransaction {
	now := time.Now()
	var transactions []common.RawTransaction
	var lastDate time.Time

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if cfg.HeaderKeyword.MatchString(line) {
			continue
		}

		if match := cfg.ChequingLine.FindStringSubmatch(line); match != nil {
			date, ok := common.ParseFlexibleDate(match[1], now)
			if !ok {
				continue
			}
			lastDate = date

			if tx, ok := buildChequing(cfg, date, match[2], match[3]); ok {
				transactions = append(transactions, tx)
			}
			continue
		}

		// Dateless rows inherit the last seen date.
		if match := cfg.Continuation.FindStringSubmatch(line); match != nil && !lastDate.IsZero() {
			if tx, ok := buildChequing(cfg, lastDate, match[1], match[2]); ok {
				transactions = append(transactions, tx)
			}
		}
	}

	return transactions
}

func buildChequing(cfg config, date time.Time, description, amountStr string) (common.RawTransaction, bool) {
	amount, err := common.CleanDecimal(amountStr)
	if err != nil || amount.IsZero() {
		return common.RawTransaction{}, false
	}
	if !cfg.DepositKeyword.MatchString(description) {
		amount = amount.Neg()
	}
	return common.RawTransaction{
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}, true
}

func parseCard(cfg config, text string) []common.RawTransaction {
	now := time.Now()
	var transactions []common.RawTransaction

	for _, line := range strings.Split(text, "\n") {
		match := cfg.CardLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		// The transaction (earlier) date is authoritative; the posting date
		// is ignored.
		date, ok := common.ParseFlexibleDate(match[1], now)
		if !ok {
			continue
		}

		amount, err := common.CleanDecimal(match[4])
		if err != nil || amount.IsZero() {
			continue
		}

		credit := cfg.PaymentKeyword.MatchString(match[3]) ||
			strings.HasPrefix(strings.TrimSpace(match[4]), "-")
		if !credit {
			amount = amount.Neg()
		}

		transactions = append(transactions, common.RawTransaction{
			Date:        date,
			Description: strings.TrimSpace(match[3]),
			Amount:      amount,
		})
	}

	return transactions
}
