// Package reconcile partitions parsed candidates into new and duplicate
// transactions against the persisted store, making statement re-import
// idempotent.
package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplebudget/mapleparse/parser/common"
)

// Store is the persistence surface the reconciler needs. The match tuple is
// (user, date, amount, merchant, cashflow), deliberately not description,
// which is not deterministic across extraction runs.
type Store interface {
	TransactionExists(ctx context.Context, userID string, date time.Time, amount decimal.Decimal, merchant string, cashflow common.Cashflow) (bool, error)
}

// Result partitions candidates. Both slices preserve source-document order.
type Result struct {
	New       []common.Transaction
	Duplicate []common.Transaction
}

// Partition checks each candidate against the store sequentially. A lookup
// failure (store unavailable mid-loop) conservatively counts the candidate as
// new: over-import produces visible, correctable duplicates, whereas dropping
// a candidate loses data silently. A nil store means everything is new.
//
// Known limitation: two genuinely distinct same-day, same-amount,
// same-merchant transactions collide on the match tuple, and the second is
// dropped as a false duplicate.
func Partition(ctx context.Context, store Store, userID string, candidates []common.Transaction) Result {
	result := Result{
		New:       []common.Transaction{},
		Duplicate: []common.Transaction{},
	}

	for _, tx := range candidates {
		if store == nil {
			result.New = append(result.New, tx)
			continue
		}

		exists, err := store.TransactionExists(ctx, userID, tx.Date, tx.Amount, tx.Merchant, tx.Cashflow)
		if err != nil {
			log.Printf("Warning: duplicate check failed for %s %s: %v; treating as new", tx.DateString(), tx.Merchant, err)
			result.New = append(result.New, tx)
			continue
		}

		if exists {
			result.Duplicate = append(result.Duplicate, tx)
		} else {
			result.New = append(result.New, tx)
		}
	}

	return result
}
