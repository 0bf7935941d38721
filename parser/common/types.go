package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bank identifies the issuer of a statement.
type Bank string

const (
	BankRBC       Bank = "RBC"
	BankTD        Bank = "TD"
	BankScotia    Bank = "Scotiabank"
	BankBMO       Bank = "BMO"
	BankCIBC      Bank = "CIBC"
	BankTangerine Bank = "Tangerine"
	BankUnknown   Bank = "Unknown"
)

// AccountType identifies the kind of account a statement covers.
type AccountType string

const (
	AccountChecking   AccountType = "Checking"
	AccountSavings    AccountType = "Savings"
	AccountCreditCard AccountType = "Credit Card"
)

// Cashflow classifies the direction of a transaction. "other" covers
// transfers and payments that are neither true income nor expense.
type Cashflow string

const (
	CashflowIncome  Cashflow = "income"
	CashflowExpense Cashflow = "expense"
	CashflowOther   Cashflow = "other"
)

const (
	LabelImported    = "Imported"
	LabelNeedsReview = "Needs Review"

	CategoryUncategorised = "Uncategorised"
)

// RawTransaction is a parser candidate before normalization. Amount sign
// encodes direction: negative is an outflow.
type RawTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Merchant    string          `json:"merchant"`
	Amount      decimal.Decimal `json:"amount"`
	Cashflow    Cashflow        `json:"cashflow"`
	Category    string          `json:"category"`
	Account     string          `json:"account"`
	Label       string          `json:"label"`
}

// DateString returns the transaction date as a bare YYYY-MM-DD string.
func (t Transaction) DateString() string {
	return t.Date.Format("2006-01-02")
}

// ParseResult is the outcome of one statement parse. Transactions keeps
// source-document order; New/Duplicate partition it against the store.
type ParseResult struct {
	Bank                  Bank          `json:"bank"`
	AccountType           AccountType   `json:"account_type"`
	AccountHolderName     string        `json:"account_holder_name,omitempty"`
	Transactions          []Transaction `json:"transactions"`
	NewTransactions       []Transaction `json:"new_transactions"`
	DuplicateTransactions []Transaction `json:"duplicate_transactions"`
}
