// Package normalize turns raw parser candidates into clean, classified
// transactions: description scrubbing, merchant derivation, cashflow
// direction, and a coarse keyword category.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/maplebudget/mapleparse/parser/common"
)

var (
	noiseRegex = regexp.MustCompile(`[^a-zA-Z0-9\-&'.\s]`)
	spaceRegex = regexp.MustCompile(`\s+`)

	// Income keywords run before the transfer override: an e-Transfer
	// autodeposit is real income even though it contains "transfer".
	incomePattern = regexp.MustCompile(`(?i)\b(autodeposit|auto-deposit|direct\s+deposit|deposit|payroll|interest|refund|rebate)\b`)

	// Transfer/payment wording overrides the amount sign: a positive-amount
	// credit card payment is a transfer between accounts, not income.
	transferPattern = regexp.MustCompile(`(?i)e-?transfer|\btransfer\b|\btfr\b|\bpayment\b|\bpymt\b|paiement|virement|thank\s+you|merci`)
)

// CleanDescription strips control characters and non-alphanumeric noise
// (keeping -&'.) and collapses whitespace.
func CleanDescription(raw string) string {
	cleaned := noiseRegex.ReplaceAllString(raw, " ")
	cleaned = spaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Merchant derives a merchant token from a cleaned description. It is the
// first whitespace-delimited column, a heuristic rather than authoritative.
func Merchant(description string) string {
	fields := strings.Fields(description)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Classify determines cashflow direction from description and amount.
func Classify(description string, amount decimal.Decimal) common.Cashflow {
	if amount.IsPositive() && incomePattern.MatchString(description) {
		return common.CashflowIncome
	}
	if transferPattern.MatchString(description) {
		return common.CashflowOther
	}
	switch {
	case amount.IsPositive():
		return common.CashflowIncome
	case amount.IsNegative():
		return common.CashflowExpense
	default:
		return common.CashflowOther
	}
}

// Normalize builds the final transaction from a parser candidate.
func Normalize(raw common.RawTransaction, accountType common.AccountType) common.Transaction {
	description := CleanDescription(raw.Description)
	category := Categorize(description)

	label := common.LabelImported
	if category == common.CategoryUncategorised {
		label = common.LabelNeedsReview
	}

	return common.Transaction{
		Date:        raw.Date,
		Description: description,
		Merchant:    Merchant(description),
		Amount:      raw.Amount,
		Cashflow:    Classify(description, raw.Amount),
		Category:    category,
		Account:     string(accountType),
		Label:       label,
	}
}

// NormalizeAll maps Normalize over a candidate slice, preserving order.
func NormalizeAll(raws []common.RawTransaction, accountType common.AccountType) []common.Transaction {
	transactions := make([]common.Transaction, 0, len(raws))
	for _, raw := range raws {
		transactions = append(transactions, Normalize(raw, accountType))
	}
	return transactions
}
