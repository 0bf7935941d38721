// Package td parses TD Canada Trust statements. TD's compact credit card
// layout loses inter-token whitespace entirely and places the merchant after
// the amount, unlike every other issuer.
package td

import (
	"regexp"
	"strings"
	"time"

	"github.com/maplebudget/mapleparse/parser/common"
)

type config struct {
	// Compact credit card grammar: AUG12AUG13$18.39METROPLUSWESTMOUNT.
	// Matches the (transaction date)(posting date)(amount) head; the merchant
	// text is whatever sits between one head and the next.
	CompactHead *regexp.Regexp
	// Spaced credit card line: AUG 12 AUG 13 DESCRIPTION $18.39
	CardLine *regexp.Regexp
	// Chequing line: AUG4 DESCRIPTION 50.00 1,234.56 (amount then balance)
	ChequingLine   *regexp.Regexp
	SectionEnd     *regexp.Regexp
	PaymentKeyword *regexp.Regexp
	DepositKeyword *regexp.Regexp
}

func loadConfig() config {
	return config{
		CompactHead:    common.Pattern("statement.TD_CC.patterns.compact_head", `([A-Z]{3}\d{1,2})([A-Z]{3}\d{1,2})(-?\$[\d,]+\.\d{2})`),
		CardLine:       common.Pattern("statement.TD_CC.patterns.transaction", `^([A-Z]{3}\s\d{1,2})\s+([A-Z]{3}\s\d{1,2})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})$`),
		ChequingLine:   common.Pattern("statement.TD_CHEQUING.patterns.transaction", `^([A-Z]{3}\s?\d{1,2})\s+(.+?)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`),
		SectionEnd:     common.Pattern("statement.TD_CC.patterns.section_end", `(?i)TOTALNEWBALANCE|NETAMOUNT|TOTAL\s+NEW\s+BALANCE|CALCULATINGYOURBALANCE`),
		PaymentKeyword: common.Pattern("statement.TD_CC.patterns.payment", `(?i)PAYMENT|THANK\s?YOU|MERCI`),
		DepositKeyword: common.Pattern("statement.TD_CHEQUING.patterns.deposit", `(?i)deposit|payroll|interest|refund|rebate`),
	}
}

// Parse extracts raw transaction candidates from TD statement text.
func Parse(text string, accountType common.AccountType) []common.RawTransaction {
	cfg := loadConfig()
	if accountType == common.AccountCreditCard {
		if txs := parseCompactCard(cfg, text); len(txs) > 0 {
			return txs
		}
		return parseSpacedCard(cfg, text)
	}
	return parseChequing(cfg, text)
}

// parseCompactCard handles extracted text where column whitespace collapsed
// completely. Heads are located first; each merchant is the text between the
// end of one head and the start of the next (or a section-end marker).
func parseCompactCard(cfg config, text string) []common.RawTransaction {
	now := time.Now()
	var transactions []common.RawTransaction

	for _, line := range strings.Split(text, "\n") {
		heads := cfg.CompactHead.FindAllStringSubmatchIndex(line, -1)
		for i, head := range heads {
			txDate := line[head[2]:head[3]]
			amountStr := line[head[6]:head[7]]

			descStart := head[1]
			descEnd := len(line)
			if i+1 < len(heads) {
				descEnd = heads[i+1][0]
			}
			description := line[descStart:descEnd]
			if cut := cfg.SectionEnd.FindStringIndex(description); cut != nil {
				description = description[:cut[0]]
			}
			description = strings.TrimSpace(description)
			if description == "" {
				continue
			}

			date, ok := common.ParseFlexibleDate(txDate, now)
			if !ok {
				continue
			}

			amount, err := common.CleanDecimal(amountStr)
			if err != nil || amount.IsZero() {
				continue
			}
			if !isCardCredit(cfg, description, amountStr) {
				amount = amount.Neg()
			}

			transactions = append(transactions, common.RawTransaction{
				Date:        date,
				Description: description,
				Amount:      amount,
			})
		}
	}

	return transactions
}

func parseSpacedCard(cfg config, text string) []common.RawTransaction {
	now := time.Now()
	var transactions []common.RawTransaction

	for _, line := range strings.Split(text, "\n") {
		match := cfg.CardLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		date, ok := common.ParseFlexibleDate(match[1], now)
		if !ok {
			continue
		}

		amount, err := common.CleanDecimal(match[4])
		if err != nil || amount.IsZero() {
			continue
		}
		if !isCardCredit(cfg, match[3], match[4]) {
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

	for _, line := range strings.Split(text, "\n") {
		match := cfg.ChequingLine.FindStringSubmatch(strings.TrimSpace(line))
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

// isCardCredit reports whether a credit-card line is a payment or credit
// (money in) rather than a purchase.
func isCardCredit(cfg config, description, amountStr string) bool {
	if cfg.PaymentKeyword.MatchString(description) {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(amountStr), "-")
}
