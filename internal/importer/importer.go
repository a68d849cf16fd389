package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coinsage/coinsage/internal/binance"
	"github.com/coinsage/coinsage/internal/model"
)

// API is the slice of the exchange client the importer needs.
type API interface {
	Account(ctx context.Context) (*binance.Account, error)
	ExchangeInfo(ctx context.Context) ([]binance.Symbol, error)
	DepositHistory(ctx context.Context) ([]binance.Deposit, error)
	WithdrawHistory(ctx context.Context) ([]binance.Withdrawal, error)
	AssetDividends(ctx context.Context) ([]binance.Dividend, error)
	AssetDribblets(ctx context.Context) ([]binance.Dribblet, error)
	FiatOrders(ctx context.Context, kind model.FiatOrderKind, begin, end time.Time) ([]binance.FiatOrder, error)
	FiatPayments(ctx context.Context, side model.FiatPaymentSide, begin, end time.Time) ([]binance.FiatPayment, error)
	ConvertTradeFlow(ctx context.Context, start, end time.Time) ([]binance.ConvertTrade, error)
	MyTrades(ctx context.Context, symbol string) ([]binance.SpotTrade, error)
	Close()
}

// TransactionStore persists imported transactions. InsertBatch is the
// per-step commit boundary: one call, one database transaction.
type TransactionStore interface {
	ExternalIDs(ctx context.Context, portfolioID int64) (map[string]struct{}, error)
	InsertBatch(ctx context.Context, txs []model.Transaction) (int, error)
}

// Importer runs one import session for one portfolio against one
// credential's API client.
type Importer struct {
	api    API
	store  TransactionStore
	mapper *Mapper
	logger *slog.Logger

	portfolioID int64
	start, end  time.Time

	// known holds every external id already in the store plus every id
	// staged during this session, so later steps cannot re-insert what an
	// earlier step just wrote.
	known   map[string]struct{}
	pending []model.Transaction
}

// New creates an import session. The complete external-id set for the
// portfolio is loaded once, up front.
func New(ctx context.Context, api API, store TransactionStore, portfolioID int64, start, end time.Time, logger *slog.Logger) (*Importer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	known, err := store.ExternalIDs(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("load external ids: %w", err)
	}

	return &Importer{
		api:         api,
		store:       store,
		mapper:      NewMapper(portfolioID),
		logger:      logger.With("run_id", uuid.New(), "portfolio_id", portfolioID),
		portfolioID: portfolioID,
		start:       start,
		end:         end,
		known:       known,
	}, nil
}

// Run executes every import step in order. The first failing step aborts
// the session; work committed by earlier steps is kept. The API client is
// released on every exit path.
func (im *Importer) Run(ctx context.Context) error {
	defer im.api.Close()

	// Cheap credential probe so a revoked or mistyped key fails here
	// instead of midway through paging.
	if _, err := im.api.Account(ctx); err != nil {
		return fmt.Errorf("credential probe: %w", err)
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"deposit_history", im.importDeposits},
		{"withdraw_history", im.importWithdrawals},
		{"asset_dividends", im.importDividends},
		{"asset_dribblets", im.importDribblets},
		{"fiat_orders", im.importFiatOrders},
		{"fiat_payments", im.importFiatPayments},
		{"trade_flow", im.importTradeFlow},
		{"my_trades", im.importMyTrades},
	}

	for _, step := range steps {
		im.logger.Info("import step started", "step", step.name)
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("import %s: %w", step.name, err)
		}
		im.logger.Info("import step finished", "step", step.name)
	}

	return nil
}

// add stages a transaction unless its external id is already known.
func (im *Importer) add(tx model.Transaction) {
	if _, ok := im.known[tx.ExternalID]; ok {
		return
	}
	im.known[tx.ExternalID] = struct{}{}
	im.pending = append(im.pending, tx)
}

// commit writes all staged transactions and clears the staging buffer.
func (im *Importer) commit(ctx context.Context) error {
	if len(im.pending) == 0 {
		return nil
	}

	inserted, err := im.store.InsertBatch(ctx, im.pending)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	im.logger.Info("committed transactions", "staged", len(im.pending), "inserted", inserted)
	im.pending = im.pending[:0]
	return nil
}

func (im *Importer) importDeposits(ctx context.Context) error {
	deposits, err := im.api.DepositHistory(ctx)
	if err != nil {
		return err
	}
	for _, d := range deposits {
		tx, err := im.mapper.FromDeposit(d)
		if err != nil {
			return err
		}
		im.add(tx)
	}
	return im.commit(ctx)
}

func (im *Importer) importWithdrawals(ctx context.Context) error {
	withdrawals, err := im.api.WithdrawHistory(ctx)
	if err != nil {
		return err
	}
	for _, w := range withdrawals {
		tx, err := im.mapper.FromWithdrawal(w)
		if err != nil {
			return err
		}
		im.add(tx)
	}
	return im.commit(ctx)
}

func (im *Importer) importDividends(ctx context.Context) error {
	dividends, err := im.api.AssetDividends(ctx)
	if err != nil {
		return err
	}
	for _, d := range dividends {
		tx, err := im.mapper.FromDividend(d)
		if err != nil {
			return err
		}
		im.add(tx)
	}
	return im.commit(ctx)
}

func (im *Importer) importDribblets(ctx context.Context) error {
	dribblets, err := im.api.AssetDribblets(ctx)
	if err != nil {
		return err
	}
	for _, d := range dribblets {
		tx, err := im.mapper.FromDribblet(d)
		if err != nil {
			return err
		}
		im.add(tx)
	}
	return im.commit(ctx)
}

func (im *Importer) importFiatOrders(ctx context.Context) error {
	for _, kind := range []model.FiatOrderKind{model.FiatOrderDeposit, model.FiatOrderWithdraw} {
		orders, err := im.api.FiatOrders(ctx, kind, im.start, im.end)
		if err != nil {
			return err
		}
		for _, o := range orders {
			tx, err := im.mapper.FromFiatOrder(o, kind)
			if err != nil {
				return err
			}
			im.add(tx)
		}
	}
	return im.commit(ctx)
}

func (im *Importer) importFiatPayments(ctx context.Context) error {
	for _, side := range []model.FiatPaymentSide{model.FiatPaymentBuy, model.FiatPaymentSell} {
		payments, err := im.api.FiatPayments(ctx, side, im.start, im.end)
		if err != nil {
			return err
		}
		for _, p := range payments {
			tx, err := im.mapper.FromFiatPayment(p, side)
			if err != nil {
				return err
			}
			im.add(tx)
		}
	}
	return im.commit(ctx)
}

// importTradeFlow fetches conversions one calendar day at a time: the
// provider caps the queryable range per request.
func (im *Importer) importTradeFlow(ctx context.Context) error {
	for day := im.start.UTC().Truncate(24 * time.Hour); !day.After(im.end); day = day.AddDate(0, 0, 1) {
		trades, err := im.api.ConvertTradeFlow(ctx, day, day.Add(24*time.Hour-time.Millisecond))
		if err != nil {
			return err
		}
		for _, tr := range trades {
			tx, err := im.mapper.FromConvertTrade(tr)
			if err != nil {
				return err
			}
			im.add(tx)
		}
	}
	return im.commit(ctx)
}

// importMyTrades walks the full symbol list; the trade endpoint is
// per-symbol and does not support date windowing.
func (im *Importer) importMyTrades(ctx context.Context) error {
	symbols, err := im.api.ExchangeInfo(ctx)
	if err != nil {
		return err
	}

	for _, sym := range symbols {
		trades, err := im.api.MyTrades(ctx, sym.Symbol)
		if err != nil {
			return err
		}
		for _, tr := range trades {
			tx, err := im.mapper.FromSpotTrade(sym, tr)
			if err != nil {
				return err
			}
			im.add(tx)
		}
	}
	return im.commit(ctx)
}
