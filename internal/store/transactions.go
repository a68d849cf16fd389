package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coinsage/coinsage/internal/model"
)

// TransactionStore reads and writes the transactions table.
type TransactionStore struct {
	db *pgxpool.Pool
}

// NewTransactionStore creates a TransactionStore on the given pool.
func NewTransactionStore(db *pgxpool.Pool) *TransactionStore {
	return &TransactionStore{db: db}
}

// ExternalIDs returns every external id recorded for the portfolio.
func (s *TransactionStore) ExternalIDs(ctx context.Context, portfolioID int64) (map[string]struct{}, error) {
	rows, err := s.db.Query(ctx, `
		SELECT external_id FROM transactions
		WHERE portfolio_id = $1 AND external_id IS NOT NULL
	`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("query external ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan external id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read external ids: %w", err)
	}

	return ids, nil
}

// InsertBatch writes the transactions inside a single database
// transaction: either every row lands or none does. Rows whose
// (portfolio_id, external_id) pair already exists are skipped by the
// unique constraint. Returns the number actually inserted.
func (s *TransactionStore) InsertBatch(ctx context.Context, txs []model.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	dbtx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer dbtx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, tx := range txs {
		batch.Queue(`
			INSERT INTO transactions (portfolio_id, type, date, buy_asset, buy_amount, sell_asset, sell_amount, fee_asset, fee_amount, external_id, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (portfolio_id, external_id) DO NOTHING
		`, tx.PortfolioID, tx.Type, tx.Date,
			nullIfEmpty(tx.BuyAsset), amountFor(tx.BuyAsset, tx.BuyAmount),
			nullIfEmpty(tx.SellAsset), amountFor(tx.SellAsset, tx.SellAmount),
			nullIfEmpty(tx.FeeAsset), amountFor(tx.FeeAsset, tx.FeeAmount),
			tx.ExternalID, nullIfEmpty(tx.Note))
	}

	results := dbtx.SendBatch(ctx, batch)

	inserted := 0
	for range txs {
		ct, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		if ct.RowsAffected() > 0 {
			inserted++
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := dbtx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return inserted, nil
}

// nullIfEmpty maps an absent string to SQL NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// amountFor maps an amount to SQL NULL when its asset is absent, so an
// untouched transaction side is fully NULL rather than zero-valued.
func amountFor(asset string, amount decimal.Decimal) *decimal.Decimal {
	if asset == "" {
		return nil
	}
	return &amount
}
