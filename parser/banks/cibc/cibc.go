// Package cibc parses CIBC statements.
package cibc

import (
	"regexp"
	"strings"
	"time"

	"github.com/maplebudget/mapleparse/parser/common"
)

type config struct {
	// Credit card line: "Aug 12 Aug 13 SPOTIFY P22E1 TORONTO 10.99" with a
	// leading minus on credits.
	CardLine *regexp.Regexp
	// Chequing line: "Aug 12 DESCRIPTION 84.00 1,204.56"
	ChequingLine   *regexp.Regexp
	DepositKeyword *regexp.Regexp
	PaymentKeyword *regexp.Regexp
}

func loadConfig() config {
	return config{
		CardLine:       common.Pattern("statement.CIBC_CC.patterns.transaction", `^([A-Za-z]{3}\s\d{1,2})\s+([A-Za-z]{3}\s\d{1,2})\s+(.+?)\s+(-?[\d,]+\.\d{2})$`),
		ChequingLine:   common.Pattern("statement.CIBC_CHEQUING.patterns.transaction", `^([A-Za-z]{3}\s\d{1,2})\s+(.+?)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`),
		DepositKeyword: common.Pattern("statement.CIBC_CHEQUING.patterns.deposit", `(?i)deposit|payroll|interest|refund|rebate`),
		PaymentKeyword: common.Pattern("statement.CIBC_CC.patterns.payment", `(?i)PAYMENT|PAIEMENT|THANK\s?YOU|MERCI`),
	}
}

// Parse extracts raw transaction candidates from CIBC statement text.
func Parse(text string, accountType common.AccountType) []common.RawTransaction {
	cfg := loadConfig()
	if accountType == common.AccountCreditCard {
		return parseCard(cfg, text)
	}
	return parseChequing(cfg, text)
}

func parseCard(cfg config, text string) []common.RawTransaction {
	now := time.Now()
	var transactions []common.RawTransaction

	for _, raw := range strings.Split(text, "\n") {
		match := cfg.CardLine.FindStringSubmatch(strings.TrimSpace(raw))
		if match == nil {
			continue
		}

		date, ok := common.ParseFlexibleDate(match[1], now)
		if !ok {
			continue
		}

		amountStr := match[4]
		amount, err := common.CleanDecimal(amountStr)
		if err != nil || amount.IsZero() {
			continue
		}
		credit := strings.HasPrefix(amountStr, "-") || cfg.PaymentKeyword.MatchString(match[3])
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

func parseChequing(cfg config, text string) []common.RawTransaction {
	now := time.Now()
	var transactions []common.RawTransaction

	for _, raw := range strings.Split(text, "\n") {
		match := cfg.ChequingLine.FindStringSubmatch(strings.TrimSpace(raw))
		if match == nil {
			continue
		}

		date, ok := common.ParseFlexibleDate(match[1], now)
		if !ok {
			continue
		}

		amount, err := common.CleanDecimal(match[3])
		if err != nil || amount.IsZero() {
			continue
		}
		if !cfg.DepositKeyword.MatchString(match[2]) {
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
