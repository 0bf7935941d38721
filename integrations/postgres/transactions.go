package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/maplebudget/mapleparse/parser/common"
)

// TransactionExists reports whether a transaction matching the dedup tuple
// is already stored for the user. Implements reconcile.Store.
func (db *DB) TransactionExists(ctx context.Context, userID string, date time.Time, amount decimal.Decimal, merchant string, cashflow common.Cashflow) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE user_id = $1 AND date = $2 AND amount = $3 AND merchant = $4 AND cashflow = $5
		)
	`, userID, date, amount, merchant, string(cashflow)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}
	return exists, nil
}

// InsertTransaction stores a single transaction and returns its generated id
func (db *DB) InsertTransaction(ctx context.Context, userID string, tx common.Transaction, sourceFile string) (string, error) {
	id := uuid.New().String()
	_, err := db.Pool.Exec(ctx, insertSQL,
		id, userID, tx.Date, tx.Description, tx.Merchant,
		tx.Amount, string(tx.Cashflow), tx.Category, tx.Account, tx.Label, sourceFile,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}
	return id, nil
}

const insertSQL = `
	INSERT INTO transactions (
		id, user_id, date, description, merchant, amount, cashflow, category, account, label, source_file
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// InsertTransactions bulk inserts transactions for a user
func (db *DB) InsertTransactions(ctx context.Context, userID string, transactions []common.Transaction, sourceFile string) error {
	if len(transactions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tx := range transactions {
		batch.Queue(insertSQL,
			uuid.New().String(), userID, tx.Date, tx.Description, tx.Merchant,
			tx.Amount, string(tx.Cashflow), tx.Category, tx.Account, tx.Label, sourceFile,
		)
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for range transactions {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	return nil
}
