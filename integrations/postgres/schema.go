package postgres

import (
	"context"
	"fmt"
)

const ddl = `
-- Transactions table. Rows are scoped per user; the match tuple
-- (user_id, date, amount, merchant, cashflow) powers duplicate detection
-- on re-import.
CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL,
    date DATE NOT NULL,
    description TEXT NOT NULL,
    merchant VARCHAR(255) NOT NULL,
    amount NUMERIC(18,2) NOT NULL,
    cashflow VARCHAR(10) NOT NULL,
    category VARCHAR(100) NOT NULL,
    account VARCHAR(50) NOT NULL,
    label VARCHAR(50) NOT NULL DEFAULT '',
    source_file VARCHAR(255) DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW()
);

-- Indexes for common queries and the duplicate check
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE INDEX IF NOT EXISTS idx_transactions_match
ON transactions(user_id, date, amount, merchant, cashflow);
`

// migrateDDL adds new columns to existing tables
const migrateDDL = `
-- Add source_file column if not exists
DO $$ BEGIN
    IF NOT EXISTS (SELECT 1 FROM information_schema.columns
                   WHERE table_name = 'transactions' AND column_name = 'source_file') THEN
        ALTER TABLE transactions ADD COLUMN source_file VARCHAR(255) DEFAULT '';
    END IF;
END $$;

-- Add label column if not exists
DO $$ BEGIN
    IF NOT EXISTS (SELECT 1 FROM information_schema.columns
                   WHERE table_name = 'transactions' AND column_name = 'label') THEN
        ALTER TABLE transactions ADD COLUMN label VARCHAR(50) NOT NULL DEFAULT '';
    END IF;
END $$;
`

// EnsureSchema creates tables if they don't exist and runs migrations
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, err = db.Pool.Exec(ctx, migrateDDL)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
