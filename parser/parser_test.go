package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplebudget/mapleparse/parser/common"
)

type memoryStore struct {
	existing map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{existing: map[string]bool{}}
}

func storeKey(userID string, date time.Time, amount decimal.Decimal, merchant string, cashflow common.Cashflow) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", userID, date.Format("2006-01-02"), amount.String(), merchant, cashflow)
}

func (m *memoryStore) TransactionExists(_ context.Context, userID string, date time.Time, amount decimal.Decimal, merchant string, cashflow common.Cashflow) (bool, error) {
	return m.existing[storeKey(userID, date, amount, merchant, cashflow)], nil
}

func (m *memoryStore) add(userID string, tx common.Transaction) {
	m.existing[storeKey(userID, tx.Date, tx.Amount, tx.Merchant, tx.Cashflow)] = true
}

const tdCardText = `TD Canada Trust
TD CASH BACK VISA CARD
STATEMENT PERIOD: AUGUST 1 TO AUGUST 31
AUG12AUG13$18.39METROPLUSWESTMOUNT
TOTALNEWBALANCE$18.39`

const rbcChequingText = `Royal Bank of Canada
RBC Personal Banking
MR EMMA BROWN
Date Description Withdrawals ($) Deposits ($) Balance ($)
8 Aug e-Transfer - Autodeposit EMMA BROWN 1,500.00 24,989.24
9 Aug Monthly fee 16.95 24,972.29`

func TestParseStatementText_TDCompactCard(t *testing.T) {
	engine := New(nil)

	result, err := engine.ParseStatementText(context.Background(), tdCardText, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Bank != common.BankTD {
		t.Errorf("Expected bank TD, got %s", result.Bank)
	}
	if result.AccountType != common.AccountCreditCard {
		t.Errorf("Expected account type %s, got %s", common.AccountCreditCard, result.AccountType)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(result.Transactions))
	}

	tx := result.Transactions[0]
	if tx.Amount.String() != "-18.39" {
		t.Errorf("Expected amount '-18.39', got '%s'", tx.Amount.String())
	}
	if !strings.Contains(tx.Description, "METROPLUSWESTMOUNT") {
		t.Errorf("Expected description to contain merchant, got '%s'", tx.Description)
	}
	if tx.Cashflow != common.CashflowExpense {
		t.Errorf("Expected cashflow %s, got %s", common.CashflowExpense, tx.Cashflow)
	}
	if tx.Date.Month() != time.August || tx.Date.Day() != 12 {
		t.Errorf("Expected Aug 12, got %s", tx.DateString())
	}
}

func TestParseStatementText_RBCAutodepositIsIncome(t *testing.T) {
	engine := New(nil)

	result, err := engine.ParseStatementText(context.Background(), rbcChequingText, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Bank != common.BankRBC {
		t.Errorf("Expected bank RBC, got %s", result.Bank)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(result.Transactions))
	}

	deposit := result.Transactions[0]
	if deposit.Amount.String() != "1500" {
		t.Errorf("Expected amount '1500', got '%s'", deposit.Amount.String())
	}
	if deposit.Cashflow != common.CashflowIncome {
		t.Errorf("Expected cashflow %s, got %s", common.CashflowIncome, deposit.Cashflow)
	}
	if result.AccountHolderName != "EMMA BROWN" {
		t.Errorf("Expected holder 'EMMA BROWN', got '%s'", result.AccountHolderName)
	}
}

func TestParseBankStatement_RejectsNonTextPDF(t *testing.T) {
	engine := New(nil)

	result, err := engine.ParseBankStatement(context.Background(), []byte("not a pdf at all"), "user-1", "scan.pdf")
	if err == nil {
		t.Fatal("Expected an error for a non-text buffer")
	}

	var extractionErr *common.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Errorf("Expected *common.ExtractionError, got %T", err)
	}
	if result != nil {
		t.Errorf("Expected nil result on extraction failure, got %+v", result)
	}
}

func TestParseStatementText_ReimportIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	engine := New(store)

	first, err := engine.ParseStatementText(context.Background(), rbcChequingText, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(first.NewTransactions) != 2 || len(first.DuplicateTransactions) != 0 {
		t.Fatalf("Expected 2 new and 0 duplicates on first import, got %d/%d",
			len(first.NewTransactions), len(first.DuplicateTransactions))
	}

	for _, tx := range first.NewTransactions {
		store.add("user-1", tx)
	}

	second, err := engine.ParseStatementText(context.Background(), rbcChequingText, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(second.NewTransactions) != 0 {
		t.Errorf("Expected 0 new transactions on re-import, got %d", len(second.NewTransactions))
	}
	if len(second.DuplicateTransactions) != 2 {
		t.Errorf("Expected 2 duplicates on re-import, got %d", len(second.DuplicateTransactions))
	}
}

func TestParseStatementText_UnknownBankUsesGenericParser(t *testing.T) {
	text := `Community Credit Union
Member statement
2025-08-12 POS purchase GROCERY MART 42.10
Aug 14 Payroll deposit 1,200.00`

	engine := New(nil)

	result, err := engine.ParseStatementText(context.Background(), text, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Bank != common.BankUnknown {
		t.Errorf("Expected bank Unknown, got %s", result.Bank)
	}
	if len(result.Transactions) == 0 {
		t.Error("Expected generic parser to produce transactions for an unknown format")
	}
}

func TestParseStatementText_GrammarMissFallsBackToGeneric(t *testing.T) {
	// The issuer is recognized but none of its line grammars match, as after
	// a statement redesign. The generic grammar should still find the line.
	text := `TD Canada Trust
2025-08-12 Monthly account fee 16.95`

	engine := New(nil)

	result, err := engine.ParseStatementText(context.Background(), text, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Bank != common.BankTD {
		t.Errorf("Expected bank TD, got %s", result.Bank)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("Expected 1 transaction via fallback, got %d", len(result.Transactions))
	}
	if result.Transactions[0].Amount.String() != "-16.95" {
		t.Errorf("Expected '-16.95', got '%s'", result.Transactions[0].Amount.String())
	}
}
