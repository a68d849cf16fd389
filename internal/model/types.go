package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a portfolio transaction.
type TransactionType string

const (
	TypeTrade    TransactionType = "trade"
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
)

// ExchangeType identifies the external exchange a credential belongs to.
type ExchangeType string

const (
	ExchangeBinance ExchangeType = "binance"
)

// FiatOrderKind selects the direction of a fiat order query.
type FiatOrderKind uint8

const (
	FiatOrderDeposit FiatOrderKind = iota
	FiatOrderWithdraw
)

// Code returns the integer transactionType the provider expects on the wire.
func (k FiatOrderKind) Code() int {
	if k == FiatOrderWithdraw {
		return 1
	}
	return 0
}

// FiatPaymentSide selects the direction of a fiat payment query.
type FiatPaymentSide uint8

const (
	FiatPaymentBuy FiatPaymentSide = iota
	FiatPaymentSell
)

// Code returns the integer transactionType the provider expects on the wire.
func (s FiatPaymentSide) Code() int {
	if s == FiatPaymentSell {
		return 1
	}
	return 0
}

// Transaction is the canonical record every exchange-native shape is
// normalized into. Absent asset/amount pairs are ("", decimal.Zero); the
// store writes empty assets as NULL.
type Transaction struct {
	ID          int64
	PortfolioID int64

	Type TransactionType
	Date time.Time

	BuyAsset  string
	BuyAmount decimal.Decimal

	SellAsset  string
	SellAmount decimal.Decimal

	FeeAsset  string
	FeeAmount decimal.Decimal

	// ExternalID is the sole deduplication key within a portfolio. Empty
	// for manually entered transactions, "<kind>__<native_id>" for
	// imported ones.
	ExternalID string
	Note       string
}

// Credential links a portfolio to an exchange account. Key material is
// stored encrypted (internal/secrets) and decrypted only transiently when
// constructing an API client.
type Credential struct {
	ID          int64
	PortfolioID int64
	Exchange    ExchangeType
	APIKey      []byte
	SecretKey   []byte
}
