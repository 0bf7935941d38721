package detect

import (
	"regexp"

	"github.com/maplebudget/mapleparse/parser/common"
)

var (
	// Strong credit-card lexical signals. "available credit" alone is not
	// enough; chequing statements mention it in overdraft blurbs.
	cardBrand        = regexp.MustCompile(`(?i)\b(VISA|MASTERCARD|AMEX|AMERICAN\s+EXPRESS|AEROPLAN|AVION|CASHBACK\s+CARD)\b`)
	compactCardLine  = regexp.MustCompile(`[A-Z]{3}\d{1,2}[A-Z]{3}\d{1,2}-?\$[\d,]+\.\d{2}`)
	creditVocabulary = regexp.MustCompile(`(?i)minimum\s+payment|credit\s+limit|payment\s+due\s+date|annual\s+interest\s+rate`)

	chequingNearStatement = regexp.MustCompile(`(?i)ch[eé]quing\s+(account|statement)|checking\s+(account|statement)`)
	savingsNearStatement  = regexp.MustCompile(`(?i)savings?\s+(account|statement)`)
	cardNearStatement     = regexp.MustCompile(`(?i)credit\s+card\s+(account|statement)`)

	columnarHeaders = regexp.MustCompile(`(?i)Withdrawals\s*\(\$\)|Deposits\s*\(\$\)`)

	savingsKeyword  = regexp.MustCompile(`(?i)\bsavings\b`)
	chequingKeyword = regexp.MustCompile(`(?i)\bch[eé]quing\b|\bchecking\b`)
	cardKeyword     = regexp.MustCompile(`(?i)credit\s+card`)
)

// AccountType decides chequing / savings / credit card from statement text.
// Rules run in priority order: each later rule is lexically broader and more
// prone to false positives, so specific and structural signals win first.
// The terminal default is Checking.
func AccountType(text string) common.AccountType {
	// 1. Card brand combined with either the compact concatenated
	//    date-amount layout or classic credit statement vocabulary.
	if cardBrand.MatchString(text) && (compactCardLine.MatchString(text) || creditVocabulary.MatchString(text)) {
		return common.AccountCreditCard
	}

	// 2. Account-type word adjacent to "statement"/"account".
	if cardNearStatement.MatchString(text) {
		return common.AccountCreditCard
	}
	if savingsNearStatement.MatchString(text) {
		return common.AccountSavings
	}
	if chequingNearStatement.MatchString(text) {
		return common.AccountChecking
	}

	// 3. Columnar withdrawal/deposit headers mean a deposit account.
	if columnarHeaders.MatchString(text) {
		return common.AccountChecking
	}

	// 4. Broad deposit-account keywords.
	if savingsKeyword.MatchString(text) {
		return common.AccountSavings
	}
	if chequingKeyword.MatchString(text) {
		return common.AccountChecking
	}

	// 5. Credit-card keyword checked last; "credit" shows up innocuously in
	//    most statements.
	if cardKeyword.MatchString(text) {
		return common.AccountCreditCard
	}

	return common.AccountChecking
}
