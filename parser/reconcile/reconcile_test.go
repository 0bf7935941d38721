package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplebudget/mapleparse/parser/common"
)

type fakeStore struct {
	existing map[string]bool
	err      error
}

func key(userID string, date time.Time, amount decimal.Decimal, merchant string, cashflow common.Cashflow) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", userID, date.Format("2006-01-02"), amount.String(), merchant, cashflow)
}

func (f *fakeStore) TransactionExists(_ context.Context, userID string, date time.Time, amount decimal.Decimal, merchant string, cashflow common.Cashflow) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.existing[key(userID, date, amount, merchant, cashflow)], nil
}

func sampleTx(merchant string, amount float64) common.Transaction {
	return common.Transaction{
		Date:     time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
		Merchant: merchant,
		Amount:   decimal.NewFromFloat(amount),
		Cashflow: common.CashflowExpense,
	}
}

func TestPartition_SplitsNewAndDuplicate(t *testing.T) {
	dup := sampleTx("METRO", -18.39)
	fresh := sampleTx("NETFLIX", -16.49)

	store := &fakeStore{existing: map[string]bool{
		key("user-1", dup.Date, dup.Amount, dup.Merchant, dup.Cashflow): true,
	}}

	result := Partition(context.Background(), store, "user-1", []common.Transaction{dup, fresh})

	if len(result.Duplicate) != 1 || result.Duplicate[0].Merchant != "METRO" {
		t.Errorf("Expected METRO as duplicate, got %+v", result.Duplicate)
	}
	if len(result.New) != 1 || result.New[0].Merchant != "NETFLIX" {
		t.Errorf("Expected NETFLIX as new, got %+v", result.New)
	}
}

func TestPartition_StoreErrorAssumesNew(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}

	result := Partition(context.Background(), store, "user-1", []common.Transaction{sampleTx("METRO", -18.39)})

	if len(result.New) != 1 {
		t.Errorf("Expected candidate treated as new on store error, got %d new", len(result.New))
	}
	if len(result.Duplicate) != 0 {
		t.Errorf("Expected no duplicates, got %d", len(result.Duplicate))
	}
}

func TestPartition_NilStoreAllNew(t *testing.T) {
	result := Partition(context.Background(), nil, "user-1", []common.Transaction{
		sampleTx("METRO", -18.39),
		sampleTx("NETFLIX", -16.49),
	})

	if len(result.New) != 2 {
		t.Errorf("Expected 2 new with nil store, got %d", len(result.New))
	}
}

func TestPartition_DifferentUsersDoNotCollide(t *testing.T) {
	tx := sampleTx("METRO", -18.39)
	store := &fakeStore{existing: map[string]bool{
		key("user-1", tx.Date, tx.Amount, tx.Merchant, tx.Cashflow): true,
	}}

	result := Partition(context.Background(), store, "user-2", []common.Transaction{tx})

	if len(result.New) != 1 {
		t.Errorf("Expected transaction to be new for a different user, got %d new", len(result.New))
	}
}
