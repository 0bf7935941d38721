// Package detect classifies extracted statement text by issuer and account
// type. Both classifiers return a best-guess default rather than failing;
// an Unknown bank routes to the generic parser downstream.
package detect

import (
	"regexp"

	"github.com/maplebudget/mapleparse/parser/common"
)

type bankSignature struct {
	bank    common.Bank
	pattern *regexp.Regexp
}

// Issuer signatures are checked in order, most specific first. CIBC's full
// name contains "bank" and several issuers share generic vocabulary, so a
// narrow signature must win before a broad one gets a chance. French variants
// are included because statements may be bilingual.
var bankSignatures = []bankSignature{
	{common.BankCIBC, regexp.MustCompile(`(?i)\bCIBC\b|Canadian\s+Imperial\s+Bank\s+of\s+Commerce|Banque\s+CIBC`)},
	{common.BankTangerine, regexp.MustCompile(`(?i)\bTangerine\b`)},
	{common.BankScotia, regexp.MustCompile(`(?i)Scotiabank|Scotia\s?Bank|Bank\s+of\s+Nova\s+Scotia|Banque\s+Scotia`)},
	{common.BankBMO, regexp.MustCompile(`(?i)\bBMO\b|Bank\s+of\s+Montreal|Banque\s+de\s+Montr[ée]al`)},
	{common.BankRBC, regexp.MustCompile(`(?i)\bRBC\b|Royal\s+Bank\s+of\s+Canada|Banque\s+Royale`)},
	{common.BankTD, regexp.MustCompile(`(?i)TD\s+Canada\s+Trust|Toronto-?Dominion|\bTD\b`)},
}

// Bank returns the issuer that produced the statement text, or BankUnknown
// when no signature matches.
func Bank(text string) common.Bank {
	for _, sig := range bankSignatures {
		if sig.pattern.MatchString(text) {
			return sig.bank
		}
	}
	return common.BankUnknown
}
