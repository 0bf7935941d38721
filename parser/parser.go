// Package parser is the bank-statement parsing engine: it ingests raw PDF
// bytes from six Canadian issuers (plus a generic fallback) and produces a
// normalized, deduplicated sequence of transactions.
//
// The pipeline is synchronous and pure until the store boundary: extract
// text, classify bank and account type, dispatch to the issuer grammar,
// normalize and categorize, then reconcile against persisted transactions.
package parser

import (
	"context"
	"log"
	"regexp"

	"github.com/maplebudget/mapleparse/parser/banks/bmo"
	"github.com/maplebudget/mapleparse/parser/banks/cibc"
	"github.com/maplebudget/mapleparse/parser/banks/generic"
	"github.com/maplebudget/mapleparse/parser/banks/rbc"
	"github.com/maplebudget/mapleparse/parser/banks/scotiabank"
	"github.com/maplebudget/mapleparse/parser/banks/tangerine"
	"github.com/maplebudget/mapleparse/parser/banks/td"
	"github.com/maplebudget/mapleparse/parser/common"
	"github.com/maplebudget/mapleparse/parser/detect"
	"github.com/maplebudget/mapleparse/parser/normalize"
	"github.com/maplebudget/mapleparse/parser/reconcile"
)

// ParseFunc consumes extracted statement text and produces raw transaction
// candidates. Implementations are pure over their input; segments that do
// not match the grammar are skipped silently.
type ParseFunc func(text string, accountType common.AccountType) []common.RawTransaction

type parserKey struct {
	Bank        common.Bank
	AccountType common.AccountType
}

// registry maps (bank, account type) to an issuer grammar. Lookups that miss
// fall back to the generic parser; so does BankUnknown.
var registry = map[parserKey]ParseFunc{
	{common.BankRBC, common.AccountChecking}:         rbc.Parse,
	{common.BankRBC, common.AccountSavings}:          rbc.Parse,
	{common.BankRBC, common.AccountCreditCard}:       rbc.Parse,
	{common.BankTD, common.AccountChecking}:          td.Parse,
	{common.BankTD, common.AccountSavings}:           td.Parse,
	{common.BankTD, common.AccountCreditCard}:        td.Parse,
	{common.BankScotia, common.AccountChecking}:      scotiabank.Parse,
	{common.BankScotia, common.AccountSavings}:       scotiabank.Parse,
	{common.BankScotia, common.AccountCreditCard}:    scotiabank.Parse,
	{common.BankBMO, common.AccountChecking}:         bmo.Parse,
	{common.BankBMO, common.AccountSavings}:          bmo.Parse,
	{common.BankBMO, common.AccountCreditCard}:       bmo.Parse,
	{common.BankCIBC, common.AccountChecking}:        cibc.Parse,
	{common.BankCIBC, common.AccountSavings}:         cibc.Parse,
	{common.BankCIBC, common.AccountCreditCard}:      cibc.Parse,
	{common.BankTangerine, common.AccountChecking}:   tangerine.Parse,
	{common.BankTangerine, common.AccountSavings}:    tangerine.Parse,
	{common.BankTangerine, common.AccountCreditCard}: tangerine.Parse,
}

func lookup(bank common.Bank, accountType common.AccountType) ParseFunc {
	if fn, ok := registry[parserKey{bank, accountType}]; ok {
		return fn
	}
	return generic.Parse
}

var holderNamePattern = regexp.MustCompile(`(?m)^(?:MR|MRS|MS|MISS|DR)\.?\s+([A-Z][A-Z .'-]{2,40})$`)

// Engine runs the statement pipeline. A nil store is valid: reconciliation
// then reports every candidate as new.
type Engine struct {
	store reconcile.Store
}

func New(store reconcile.Store) *Engine {
	return &Engine{store: store}
}

// ParseBankStatement is the sole entry point for PDF uploads. It returns a
// *common.ExtractionError when the buffer cannot be read as a text PDF;
// every later stage degrades to a best-effort result instead of failing.
func (e *Engine) ParseBankStatement(ctx context.Context, pdf []byte, userID string, filename string) (*common.ParseResult, error) {
	text, err := common.ExtractText(pdf)
	if err != nil {
		return nil, err
	}

	log.Printf("Parsing statement %s (%d chars of text)", filename, len(text))
	return e.ParseStatementText(ctx, text, userID)
}

// ParseStatementText runs the pipeline on already-extracted text. Exposed
// for callers that do their own extraction.
func (e *Engine) ParseStatementText(ctx context.Context, text string, userID string) (*common.ParseResult, error) {
	bank := detect.Bank(text)
	accountType := detect.AccountType(text)
	log.Printf("Detected bank=%s account_type=%s", bank, accountType)

	raws := lookup(bank, accountType)(text, accountType)
	if len(raws) == 0 && bank != common.BankUnknown {
		// The issuer grammar found nothing; the layout may have drifted.
		// Degrade to the generic grammar rather than returning empty.
		raws = generic.Parse(text, accountType)
	}

	transactions := normalize.NormalizeAll(raws, accountType)
	partition := reconcile.Partition(ctx, e.store, userID, transactions)

	return &common.ParseResult{
		Bank:                  bank,
		AccountType:           accountType,
		AccountHolderName:     holderName(text),
		Transactions:          transactions,
		NewTransactions:       partition.New,
		DuplicateTransactions: partition.Duplicate,
	}, nil
}

// holderName extracts the statement holder from a salutation line when one
// survives extraction. Best effort only.
func holderName(text string) string {
	match := holderNamePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}
