package rbc

import (
	"testing"

	"github.com/maplebudget/mapleparse/parser/common"
)

func TestParse_ChequingAutodeposit(t *testing.T) {
	// Two trailing amounts: transaction amount then running balance. The
	// deposit keyword overrides the withdrawal-by-default heuristic.
	text := "8 Aug e-Transfer - Autodeposit EMMA BROWN 1,500.00 24,989.24"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}

	tx := transactions[0]
	if tx.Amount.String() != "1500" {
		t.Errorf("Expected amount '1500', got '%s'", tx.Amount.String())
	}
	if tx.Date.Format("01-02") != "08-08" {
		t.Errorf("Expected Aug 8, got %s", tx.Date.Format("2006-01-02"))
	}
	if tx.Description != "e-Transfer - Autodeposit EMMA BROWN" {
		t.Errorf("Unexpected description '%s'", tx.Description)
	}
}

func TestParse_ChequingWithdrawal(t *testing.T) {
	text := "12 Aug Utility bill pmt HYDRO-QUEBEC 84.00 24,905.24"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "-84" {
		t.Errorf("Expected '-84', got '%s'", transactions[0].Amount.String())
	}
}

func TestParse_ChequingContinuationInheritsDate(t *testing.T) {
	text := "8 Aug Contactless Interac purchase - 1234 METRO 23.10 24,966.14\n" +
		"Contactless Interac purchase - 5678 PHARMAPRIX 12.50 24,953.64"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if !transactions[0].Date.Equal(transactions[1].Date) {
		t.Error("Expected continuation row to inherit the previous date")
	}
}

func TestParse_ChequingSkipsHeadersAndBalances(t *testing.T) {
	text := "Details of your account activity\n" +
		"Date Description Withdrawals ($) Deposits ($) Balance ($)\n" +
		"Opening Balance 24,943.04\n" +
		"8 Aug Payroll Deposit ACME LTD 2,000.00 26,943.04\n" +
		"Closing Balance 26,943.04"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "2000" {
		t.Errorf("Expected '2000', got '%s'", transactions[0].Amount.String())
	}
}

func TestParse_CardPurchaseAndPayment(t *testing.T) {
	text := "AUG 12 AUG 13 METRO PLUS WESTMOUNT $18.39\n" +
		"AUG 20 AUG 21 PAYMENT - THANK YOU / PAIEMENT - MERCI $250.00"

	transactions := Parse(text, common.AccountCreditCard)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "-18.39" {
		t.Errorf("Expected '-18.39' for purchase, got '%s'", transactions[0].Amount.String())
	}
	if transactions[1].Amount.String() != "250" {
		t.Errorf("Expected '250' for payment, got '%s'", transactions[1].Amount.String())
	}
}
