package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coinsage/coinsage/internal/model"
)

// CredentialStore reads the exchange_credentials table. Key material is
// stored encrypted and returned as-is; decryption happens at the point
// of use.
type CredentialStore struct {
	db *pgxpool.Pool
}

// NewCredentialStore creates a CredentialStore on the given pool.
func NewCredentialStore(db *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{db: db}
}

// ListByType returns every stored credential for the given exchange.
func (s *CredentialStore) ListByType(ctx context.Context, exchange model.ExchangeType) ([]model.Credential, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, portfolio_id, exchange, api_key, secret_key
		FROM exchange_credentials
		WHERE exchange = $1
		ORDER BY id
	`, exchange)
	if err != nil {
		return nil, fmt.Errorf("query credentials: %w", err)
	}
	defer rows.Close()

	var creds []model.Credential
	for rows.Next() {
		var c model.Credential
		if err := rows.Scan(&c.ID, &c.PortfolioID, &c.Exchange, &c.APIKey, &c.SecretKey); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	return creds, nil
}
