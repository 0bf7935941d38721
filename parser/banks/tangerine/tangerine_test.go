package tangerine

import (
	"testing"
	"time"

	"github.com/maplebudget/mapleparse/parser/common"
)

func TestParse_SignedOutflowAndDeposit(t *testing.T) {
	text := "Tangerine Chequing Account\n" +
		"12 Aug 2025 INTERAC e-Transfer sent -84.00 1,204.56\n" +
		"15 Aug 2025 Payroll Deposit ACME LTD 2,100.00 3,304.56"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "-84" {
		t.Errorf("Expected '-84', got '%s'", transactions[0].Amount.String())
	}
	if transactions[1].Amount.String() != "2100" {
		t.Errorf("Expected '2100' for deposit, got '%s'", transactions[1].Amount.String())
	}
}

func TestParse_FullDateWithYear(t *testing.T) {
	text := "12 Aug 2024 Monthly fee -5.00 1,199.56"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	want := time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)
	if !transactions[0].Date.Equal(want) {
		t.Errorf("Expected %s, got %s", want, transactions[0].Date)
	}
}

func TestParse_UnmarkedLineIsWithdrawal(t *testing.T) {
	text := "12 Aug 2025 Bill payment HYDRO QUEBEC 96.40 1,108.16"

	transactions := Parse(text, common.AccountChecking)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
	if transactions[0].Amount.String() != "-96.4" {
		t.Errorf("Expected '-96.4', got '%s'", transactions[0].Amount.String())
	}
}

func TestParse_BoilerplateYieldsNothing(t *testing.T) {
	transactions := Parse("Tangerine Bank\nForward Banking", common.AccountChecking)
	if len(transactions) != 0 {
		t.Errorf("Expected 0 transactions, got %d", len(transactions))
	}
}
