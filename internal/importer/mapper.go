package importer

import (
	"fmt"
	"time"

	"github.com/coinsage/coinsage/internal/binance"
	"github.com/coinsage/coinsage/internal/model"
)

// Source kind literals. Each prefixes the native record id to form the
// external id, so ids from different endpoints can never collide.
const (
	kindDepositHistory  = "deposit_history"
	kindWithdrawHistory = "withdraw_history"
	kindAssetDividend   = "asset_dividend"
	kindAssetDribblet   = "asset_dribblet"
	kindFiatOrders      = "fiat_orders"
	kindFiatPayments    = "fiat_payments"
	kindTradeFlow       = "trade_flow"
	kindMyTrades        = "my_trades"
)

// dustAsset is the settlement asset for dust conversions, fixed by the
// provider.
const dustAsset = "BNB"

// withdrawTimeLayout is the applyTime format on withdrawal records.
const withdrawTimeLayout = "2006-01-02 15:04:05"

func externalID(kind string, nativeID any) string {
	return fmt.Sprintf("%s__%v", kind, nativeID)
}

// Mapper translates exchange-native records into canonical transactions
// for one portfolio. Pure; performs no I/O.
type Mapper struct {
	portfolioID int64
}

// NewMapper creates a Mapper for the given portfolio.
func NewMapper(portfolioID int64) *Mapper {
	return &Mapper{portfolioID: portfolioID}
}

// FromDeposit maps an on-chain deposit.
func (m *Mapper) FromDeposit(d binance.Deposit) (model.Transaction, error) {
	if d.ID == "" {
		return model.Transaction{}, fmt.Errorf("deposit record has no id")
	}
	return model.Transaction{
		PortfolioID: m.portfolioID,
		Type:        model.TypeDeposit,
		Date:        time.UnixMilli(d.InsertTime).UTC(),
		BuyAsset:    d.Coin,
		BuyAmount:   d.Amount,
		ExternalID:  externalID(kindDepositHistory, d.ID),
	}, nil
}

// FromWithdrawal maps an on-chain withdrawal. The fee is charged in the
// withdrawn coin.
func (m *Mapper) FromWithdrawal(w binance.Withdrawal) (model.Transaction, error) {
	if w.ID == "" {
		return model.Transaction{}, fmt.Errorf("withdrawal record has no id")
	}
	date, err := time.ParseInLocation(withdrawTimeLayout, w.ApplyTime, time.UTC)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parse applyTime %q: %w", w.ApplyTime, err)
	}
	return model.Transaction{
		PortfolioID: m.portfolioID,
		Type:        model.TypeWithdraw,
		Date:        date,
		SellAsset:   w.Coin,
		SellAmount:  w.Amount,
		FeeAsset:    w.Coin,
		FeeAmount:   w.TransactionFee,
		ExternalID:  externalID(kindWithdrawHistory, w.ID),
	}, nil
}

// FromDividend maps a dividend distribution as an incoming trade.
func (m *Mapper) FromDividend(d binance.Dividend) (model.Transaction, error) {
	if d.ID == 0 {
		return model.Transaction{}, fmt.Errorf("dividend record has no id")
	}
	return model.Transaction{
		PortfolioID: m.portfolioID,
		Type:        model.TypeTrade,
		Date:        time.UnixMilli(d.DivTime).UTC(),
		BuyAsset:    d.Asset,
		BuyAmount:   d.Amount,
		ExternalID:  externalID(kindAssetDividend, d.ID),
	}, nil
}

// FromDribblet maps a dust conversion: the source asset is sold for the
// provider's settlement asset, fee charged in the settlement asset.
func (m *Mapper) FromDribblet(d binance.Dribblet) (model.Transaction, error) {
	if d.TransID == 0 {
		return model.Transaction{}, fmt.Errorf("dribblet record has no transId")
	}
	return model.Transaction{
		PortfolioID: m.portfolioID,
		Type:        model.TypeTrade,
		Date:        time.UnixMilli(d.OperateTime).UTC(),
		BuyAsset:    dustAsset,
		BuyAmount:   d.TransferedAmount,
		SellAsset:   d.FromAsset,
		SellAmount:  d.Amount,
		FeeAsset:    dustAsset,
		FeeAmount:   d.ServiceChargeAmount,
		ExternalID:  externalID(kindAssetDribblet, d.TransID),
	}, nil
}

// FromFiatOrder maps a fiat deposit or withdrawal. The fee is always
// charged in the fiat currency.
func (m *Mapper) FromFiatOrder(o binance.FiatOrder, kind model.FiatOrderKind) (model.Transaction, error) {
	if o.OrderNo == "" {
		return model.Transaction{}, fmt.Errorf("fiat order record has no orderNo")
	}

	tx := model.Transaction{
		PortfolioID: m.portfolioID,
		Date:        time.UnixMilli(o.UpdateTime).UTC(),
		FeeAsset:    o.FiatCurrency,
		FeeAmount:   o.TotalFee,
		ExternalID:  externalID(kindFiatOrders, o.OrderNo),
	}

	switch kind {
	case model.FiatOrderDeposit:
		tx.Type = model.TypeDeposit
		tx.BuyAsset = o.FiatCurrency
		tx.BuyAmount = o.Amount
	case model.FiatOrderWithdraw:
		tx.Type = model.TypeWithdraw
		tx.SellAsset = o.FiatCurrency
		tx.SellAmount = o.Amount
	default:
		return model.Transaction{}, fmt.Errorf("unknown fiat order kind %d", kind)
	}

	return tx, nil
}

// FromFiatPayment maps a fiat buy (fiat -> crypto) or sell (crypto ->
// fiat). The fee is always charged in the fiat currency.
func (m *Mapper) FromFiatPayment(p binance.FiatPayment, side model.FiatPaymentSide) (model.Transaction, error) {
	if p.OrderNo == "" {
		return model.Transaction{}, fmt.Errorf("fiat payment record has no orderNo")
	}

	tx := model.Transaction{
		PortfolioID: m.portfolioID,
		Type:        model.TypeTrade,
		Date:        time.UnixMilli(p.UpdateTime).UTC(),
		BuyAmount:   p.ObtainAmount,
		SellAmount:  p.SourceAmount,
		FeeAsset:    p.FiatCurrency,
		FeeAmount:   p.TotalFee,
		ExternalID:  externalID(kindFiatPayments, p.OrderNo),
	}

	switch side {
	case model.FiatPaymentBuy:
		tx.BuyAsset = p.CryptoCurrency
		tx.SellAsset = p.FiatCurrency
	case model.FiatPaymentSell:
		tx.BuyAsset = p.FiatCurrency
		tx.SellAsset = p.CryptoCurrency
	default:
		return model.Transaction{}, fmt.Errorf("unknown fiat payment side %d", side)
	}

	return tx, nil
}

// FromConvertTrade maps one conversion from the trade-flow history.
func (m *Mapper) FromConvertTrade(t binance.ConvertTrade) (model.Transaction, error) {
	if t.OrderID == 0 {
		return model.Transaction{}, fmt.Errorf("convert trade record has no orderId")
	}
	return model.Transaction{
		PortfolioID: m.portfolioID,
		Type:        model.TypeTrade,
		Date:        time.UnixMilli(t.CreateTime).UTC(),
		BuyAsset:    t.ToAsset,
		BuyAmount:   t.ToAmount,
		SellAsset:   t.FromAsset,
		SellAmount:  t.FromAmount,
		ExternalID:  externalID(kindTradeFlow, t.OrderID),
	}, nil
}

// FromSpotTrade maps a spot trade against its symbol's base/quote pair.
// When the account was the buyer the base asset was bought for the quote
// asset; when the seller, the reverse. The commission fields carry the fee.
func (m *Mapper) FromSpotTrade(sym binance.Symbol, t binance.SpotTrade) (model.Transaction, error) {
	if t.ID == 0 {
		return model.Transaction{}, fmt.Errorf("spot trade record has no id")
	}

	tx := model.Transaction{
		PortfolioID: m.portfolioID,
		Type:        model.TypeTrade,
		Date:        time.UnixMilli(t.Time).UTC(),
		FeeAsset:    t.CommissionAsset,
		FeeAmount:   t.Commission,
		ExternalID:  externalID(kindMyTrades, t.ID),
	}

	if t.IsBuyer {
		tx.BuyAsset = sym.BaseAsset
		tx.BuyAmount = t.Qty
		tx.SellAsset = sym.QuoteAsset
		tx.SellAmount = t.QuoteQty
	} else {
		tx.BuyAsset = sym.QuoteAsset
		tx.BuyAmount = t.QuoteQty
		tx.SellAsset = sym.BaseAsset
		tx.SellAmount = t.Qty
	}

	return tx, nil
}
