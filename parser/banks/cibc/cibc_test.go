package cibc

import (
	"testing"

	"github.com/maplebudget/mapleparse/parser/common"
)

func TestParse_CardPurchaseAndCredit(t *testing.T) {
	text := "CIBC Dividend Visa Card\n" +
		"Aug 12 Aug 13 SPOTIFY P22E1 TORONTO 10.99\n" +
		"Aug 18 Aug 19 RETURN HUDSON'S BAY TORONTO -45.00"

	transactions := Parse(text, common.AccountCreditCard)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "-10.99" {
		t.Errorf("Expected '-10.99', got '%s'", transactions[0].Amount.String())
	}
	// Leading minus on a card line means money back on the card
	if transactions[1].Amount.String() != "45" {
		t.Errorf("Expected '45' for the return, got '%s'", transactions[1].Amount.String())
	}
}

func TestParse_CardPaymentKeyword(t *testing.T) {
	text := "Aug 20 Aug 21 PAYMENT THANK YOU/PAIEMENT MERCI 500.00"

	transactions := Parse(text, common.AccountCreditCard)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "500" {
		t.Errorf("Expected '500' for payment, got '%s'", transactions[0].Amount.String())
	}
}

func TestParse_ChequingLines(t *testing.T) {
	text := "Aug 12 POINT OF SALE PURCHASE METRO 42.10 1,204.56\n" +
		"Aug 15 DEPOSIT ACME PAYROLL 2,100.00 3,304.56"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "-42.1" {
		t.Errorf("Expected '-42.1', got '%s'", transactions[0].Amount.String())
	}
	if transactions[1].Amount.String() != "2100" {
		t.Errorf("Expected '2100' for deposit, got '%s'", transactions[1].Amount.String())
	}
}

func TestParse_BoilerplateYieldsNothing(t *testing.T) {
	transactions := Parse("Canadian Imperial Bank of Commerce\nContact us at cibc.com", common.AccountChecking)
	if len(transactions) != 0 {
		t.Errorf("Expected 0 transactions, got %d", len(transactions))
	}
}
