// Package scotiabank parses Scotiabank statements. Transaction data sits
// inside delimited document sections; everything outside them is marketing
// copy and fee schedules that must not be pattern-matched.
package scotiabank

import (
	"regexp"
	"strings"
	"time"

	"github.com/maplebudget/mapleparse/parser/common"
)

// Lookahead window for a transaction split across physical lines: date and
// description on one line, reference on the next, amounts on a third.
const mergeWindow = 2

type config struct {
	SectionStart *regexp.Regexp
	SectionEnd   *regexp.Regexp
	// Complete chequing line: "Aug 12 Description 84.00 24,905.24"
	ChequingLine *regexp.Regexp
	// Partial line: date and description only; amounts follow within the
	// merge window.
	PartialLine *regexp.Regexp
	// Trailing amounts line completing a partial transaction.
	AmountsLine    *regexp.Regexp
	ReferenceLine  *regexp.Regexp
	CardLine       *regexp.Regexp
	DepositKeyword *regexp.Regexp
	PaymentKeyword *regexp.Regexp
}

func loadConfig() config {
	return config{
		SectionStart:   common.Pattern("statement.SCOTIABANK.patterns.section_start", `(?i)ACTIVITY\s+DESCRIPTION|Transactions?\s+Withdrawals|Date\s+Transactions`),
		SectionEnd:     common.Pattern("statement.SCOTIABANK.patterns.section_end", `(?i)TOTAL\s+ACCOUNT\s+BALANCE|CLOSING\s+BALANCE|IMPORTANT\s+INFORMATION`),
		ChequingLine:   common.Pattern("statement.SCOTIABANK_CHEQUING.patterns.transaction", `^([A-Za-z]{3}\s\d{1,2})\s+(.+?)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`),
		PartialLine:    common.Pattern("statement.SCOTIABANK_CHEQUING.patterns.partial", `^([A-Za-z]{3}\s\d{1,2})\s+([A-Za-z].*[A-Za-z])$`),
		AmountsLine:    common.Pattern("statement.SCOTIABANK_CHEQUING.patterns.amounts", `^([\d,]+\.\d{2})\s+([\d,]+\.\d{2})$`),
		ReferenceLine:  common.Pattern("statement.SCOTIABANK_CHEQUING.patterns.reference", `^\d{5,}$`),
		CardLine:       common.Pattern("statement.SCOTIABANK_CC.patterns.transaction", `^(?:\d{3}\s+)?([A-Za-z]{3}\s\d{1,2})\s+([A-Za-z]{3}\s\d{1,2})\s+(.+?)\s+([\d,]+\.\d{2}-?)$`),
		DepositKeyword: common.Pattern("statement.SCOTIABANK_CHEQUING.patterns.deposit", `(?i)deposit|payroll|interest|refund|rebate`),
		PaymentKeyword: common.Pattern("statement.SCOTIABANK_CC.patterns.payment", `(?i)PAYMENT|PAIEMENT|THANK\s?YOU|MERCI`),
	}
}

// Parse extracts raw transaction candidates from Scotiabank statement text.
func Parse(text string, accountType common.AccountType) []common.RawTransaction {
	cfg := loadConfig()
	section := isolateSection(cfg, text)
	if accountType == common.AccountCreditCard {
		return parseCard(cfg, section)
	}
	return parseChequing(cfg, section)
}

// isolateSection trims the text to the activity section when the delimiters
// are present. Without them the whole text is used; the line grammars still
// have to match.
func isolateSection(cfg config, text string) string {
	if loc := cfg.SectionStart.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	if loc := cfg.SectionEnd.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return text
}

func parseChequing(cfg config, text string) []common.RawTransaction {
	now := time.Now()
	lines := strings.Split(text, "\n")
	var transactions []common.RawTransaction

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if match := cfg.ChequingLine.FindStringSubmatch(line); match != nil {
			if tx, ok := buildChequing(cfg, now, match[1], match[2], match[3]); ok {
				transactions = append(transactions, tx)
			}
			continue
		}

		// Multi-line form: date+description now, amounts within the window,
		// possibly with a reference-number row in between.
		match := cfg.PartialLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		description := match[2]

		for j := i + 1; j <= i+mergeWindow && j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if cfg.ReferenceLine.MatchString(next) {
				continue
			}
			amounts := cfg.AmountsLine.FindStringSubmatch(next)
			if amounts == nil {
				break
			}
			if tx, ok := buildChequing(cfg, now, match[1], description, amounts[1]); ok {
				transactions = append(transactions, tx)
			}
			i = j
			break
		}
	}

	return transactions
}

func buildChequing(cfg config, now time.Time, dateStr, description, amountStr string) (common.RawTransaction, bool) {
	date, ok := common.ParseFlexibleDate(dateStr, now)
	if !ok {
		return common.RawTransaction{}, false
	}
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

		date, ok := common.ParseFlexibleDate(match[1], now)
		if !ok {
			continue
		}

		amountStr := match[4]
		amount, err := common.CleanDecimal(amountStr)
		if err != nil || amount.IsZero() {
			continue
		}

		// A trailing minus marks a credit on Scotiabank card statements.
		credit := strings.HasSuffix(amountStr, "-") || cfg.PaymentKeyword.MatchString(match[3])
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
