package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/coinsage/coinsage/internal/model"
)

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Account fetches spot account information for the credential.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	var resp Account
	if err := c.get(ctx, "/api/v3/account", nil, true, &resp); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &resp, nil
}

// ExchangeInfo fetches the full tradable symbol list. Unsigned.
func (c *Client) ExchangeInfo(ctx context.Context) ([]Symbol, error) {
	var resp exchangeInfoResponse
	if err := c.get(ctx, "/api/v3/exchangeInfo", nil, false, &resp); err != nil {
		return nil, fmt.Errorf("get exchange info: %w", err)
	}
	return resp.Symbols, nil
}

// TickerPrices fetches the latest price for every symbol. Unsigned.
func (c *Client) TickerPrices(ctx context.Context) ([]TickerPrice, error) {
	var resp []TickerPrice
	if err := c.get(ctx, "/api/v3/ticker/price", nil, false, &resp); err != nil {
		return nil, fmt.Errorf("get ticker prices: %w", err)
	}
	return resp, nil
}

// DepositHistory fetches on-chain deposit history. Not windowed; the
// provider returns its full retention range.
func (c *Client) DepositHistory(ctx context.Context) ([]Deposit, error) {
	var resp []Deposit
	if err := c.get(ctx, "/sapi/v1/capital/deposit/hisrec", nil, true, &resp); err != nil {
		return nil, fmt.Errorf("get deposit history: %w", err)
	}
	return resp, nil
}

// WithdrawHistory fetches on-chain withdrawal history. Not windowed.
func (c *Client) WithdrawHistory(ctx context.Context) ([]Withdrawal, error) {
	var resp []Withdrawal
	if err := c.get(ctx, "/sapi/v1/capital/withdraw/history", nil, true, &resp); err != nil {
		return nil, fmt.Errorf("get withdraw history: %w", err)
	}
	return resp, nil
}

// AssetDividends fetches dividend distribution records.
func (c *Client) AssetDividends(ctx context.Context) ([]Dividend, error) {
	var resp assetDividendResponse
	if err := c.get(ctx, "/sapi/v1/asset/assetDividend", nil, true, &resp); err != nil {
		return nil, fmt.Errorf("get asset dividends: %w", err)
	}
	return resp.Rows, nil
}

// AssetDribblets fetches dust conversion records, flattening the per-day
// envelope into a single list of details.
func (c *Client) AssetDribblets(ctx context.Context) ([]Dribblet, error) {
	var resp dribbletResponse
	if err := c.get(ctx, "/sapi/v1/asset/dribblet", nil, true, &resp); err != nil {
		return nil, fmt.Errorf("get asset dribblets: %w", err)
	}

	var details []Dribblet
	for _, day := range resp.UserAssetDribblets {
		details = append(details, day.Details...)
	}
	return details, nil
}

// ConvertTradeFlow fetches conversion history in [start, end]. The
// provider caps the queryable range, so callers split longer windows into
// daily requests. Paced with the courtesy gap.
func (c *Client) ConvertTradeFlow(ctx context.Context, start, end time.Time) ([]ConvertTrade, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("startTime", millis(start))
	params.Set("endTime", millis(end))
	params.Set("limit", "1000")

	var resp convertTradeFlowResponse
	if err := c.get(ctx, "/sapi/v1/convert/tradeFlow", params, true, &resp); err != nil {
		return nil, fmt.Errorf("get convert trade flow: %w", err)
	}
	return resp.List, nil
}

// FiatOrders fetches fiat deposit or withdraw history in [begin, end],
// requesting page after page until a page comes back short.
func (c *Client) FiatOrders(ctx context.Context, kind model.FiatOrderKind, begin, end time.Time) ([]FiatOrder, error) {
	var orders []FiatOrder

	for page := 1; ; page++ {
		params := c.fiatParams(kind.Code(), page, begin, end)

		var resp fiatOrdersResponse
		if err := c.get(ctx, "/sapi/v1/fiat/orders", params, true, &resp); err != nil {
			return nil, fmt.Errorf("get fiat orders page %d: %w", page, err)
		}

		orders = append(orders, resp.Data...)
		if len(resp.Data) < c.fiatPageSize {
			return orders, nil
		}
	}
}

// FiatPayments fetches fiat buy or sell payment history in [begin, end],
// paged the same way as FiatOrders.
func (c *Client) FiatPayments(ctx context.Context, side model.FiatPaymentSide, begin, end time.Time) ([]FiatPayment, error) {
	var payments []FiatPayment

	for page := 1; ; page++ {
		params := c.fiatParams(side.Code(), page, begin, end)

		var resp fiatPaymentsResponse
		if err := c.get(ctx, "/sapi/v1/fiat/payments", params, true, &resp); err != nil {
			return nil, fmt.Errorf("get fiat payments page %d: %w", page, err)
		}

		payments = append(payments, resp.Data...)
		if len(resp.Data) < c.fiatPageSize {
			return payments, nil
		}
	}
}

func (c *Client) fiatParams(code, page int, begin, end time.Time) url.Values {
	params := url.Values{}
	params.Set("transactionType", strconv.Itoa(code))
	params.Set("page", strconv.Itoa(page))
	params.Set("rows", strconv.Itoa(c.fiatPageSize))
	if !begin.IsZero() {
		params.Set("beginTime", millis(begin))
	}
	if !end.IsZero() {
		params.Set("endTime", millis(end))
	}
	return params
}

// MyTrades fetches spot trade history for one symbol. Paced with the
// courtesy gap.
func (c *Client) MyTrades(ctx context.Context, symbol string) ([]SpotTrade, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("symbol", symbol)

	var resp []SpotTrade
	if err := c.get(ctx, "/api/v3/myTrades", params, true, &resp); err != nil {
		return nil, fmt.Errorf("get trades for %s: %w", symbol, err)
	}
	return resp, nil
}
