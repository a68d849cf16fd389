package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinsage/coinsage/internal/binance"
	"github.com/coinsage/coinsage/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFromDeposit(t *testing.T) {
	m := NewMapper(7)

	tx, err := m.FromDeposit(binance.Deposit{
		ID:         "12345",
		Coin:       "BTC",
		Amount:     dec("0.5"),
		InsertTime: 1624529919000,
	})
	if err != nil {
		t.Fatalf("FromDeposit failed: %v", err)
	}

	if tx.PortfolioID != 7 {
		t.Errorf("PortfolioID = %d, want 7", tx.PortfolioID)
	}
	if tx.Type != model.TypeDeposit {
		t.Errorf("Type = %q, want deposit", tx.Type)
	}
	if want := time.UnixMilli(1624529919000).UTC(); !tx.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", tx.Date, want)
	}
	if tx.BuyAsset != "BTC" || !tx.BuyAmount.Equal(dec("0.5")) {
		t.Errorf("buy side = %s %s, want BTC 0.5", tx.BuyAsset, tx.BuyAmount)
	}
	if tx.SellAsset != "" || !tx.SellAmount.IsZero() {
		t.Errorf("sell side = %s %s, want empty", tx.SellAsset, tx.SellAmount)
	}
	if tx.ExternalID != "deposit_history__12345" {
		t.Errorf("ExternalID = %q, want deposit_history__12345", tx.ExternalID)
	}
}

func TestFromWithdrawal(t *testing.T) {
	m := NewMapper(7)

	tx, err := m.FromWithdrawal(binance.Withdrawal{
		ID:             "w-9",
		Coin:           "ETH",
		Amount:         dec("2"),
		TransactionFee: dec("0.004"),
		ApplyTime:      "2021-06-24 10:18:39",
	})
	if err != nil {
		t.Fatalf("FromWithdrawal failed: %v", err)
	}

	if tx.Type != model.TypeWithdraw {
		t.Errorf("Type = %q, want withdraw", tx.Type)
	}
	want := time.Date(2021, 6, 24, 10, 18, 39, 0, time.UTC)
	if !tx.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", tx.Date, want)
	}
	if tx.SellAsset != "ETH" || !tx.SellAmount.Equal(dec("2")) {
		t.Errorf("sell side = %s %s, want ETH 2", tx.SellAsset, tx.SellAmount)
	}
	if tx.FeeAsset != "ETH" || !tx.FeeAmount.Equal(dec("0.004")) {
		t.Errorf("fee = %s %s, want ETH 0.004", tx.FeeAsset, tx.FeeAmount)
	}
	if tx.ExternalID != "withdraw_history__w-9" {
		t.Errorf("ExternalID = %q, want withdraw_history__w-9", tx.ExternalID)
	}
}

func TestFromWithdrawalBadTime(t *testing.T) {
	m := NewMapper(7)
	_, err := m.FromWithdrawal(binance.Withdrawal{ID: "w-1", ApplyTime: "not-a-time"})
	if err == nil {
		t.Error("FromWithdrawal with malformed applyTime succeeded")
	}
}

func TestFromDividend(t *testing.T) {
	m := NewMapper(7)

	tx, err := m.FromDividend(binance.Dividend{
		ID:      42,
		Asset:   "BNB",
		Amount:  dec("0.01"),
		DivTime: 1624529919000,
	})
	if err != nil {
		t.Fatalf("FromDividend failed: %v", err)
	}

	if tx.Type != model.TypeTrade {
		t.Errorf("Type = %q, want trade", tx.Type)
	}
	if tx.BuyAsset != "BNB" || !tx.BuyAmount.Equal(dec("0.01")) {
		t.Errorf("buy side = %s %s, want BNB 0.01", tx.BuyAsset, tx.BuyAmount)
	}
	if tx.ExternalID != "asset_dividend__42" {
		t.Errorf("ExternalID = %q, want asset_dividend__42", tx.ExternalID)
	}
}

func TestFromDribblet(t *testing.T) {
	m := NewMapper(7)

	tx, err := m.FromDribblet(binance.Dribblet{
		TransID:             99,
		FromAsset:           "DOGE",
		Amount:              dec("12"),
		TransferedAmount:    dec("0.0015"),
		ServiceChargeAmount: dec("0.0001"),
		OperateTime:         1624529919000,
	})
	if err != nil {
		t.Fatalf("FromDribblet failed: %v", err)
	}

	if tx.Type != model.TypeTrade {
		t.Errorf("Type = %q, want trade", tx.Type)
	}
	if tx.BuyAsset != "BNB" || !tx.BuyAmount.Equal(dec("0.0015")) {
		t.Errorf("buy side = %s %s, want BNB 0.0015", tx.BuyAsset, tx.BuyAmount)
	}
	if tx.SellAsset != "DOGE" || !tx.SellAmount.Equal(dec("12")) {
		t.Errorf("sell side = %s %s, want DOGE 12", tx.SellAsset, tx.SellAmount)
	}
	if tx.FeeAsset != "BNB" || !tx.FeeAmount.Equal(dec("0.0001")) {
		t.Errorf("fee = %s %s, want BNB 0.0001", tx.FeeAsset, tx.FeeAmount)
	}
	if tx.ExternalID != "asset_dribblet__99" {
		t.Errorf("ExternalID = %q, want asset_dribblet__99", tx.ExternalID)
	}
}

func TestFromFiatOrder(t *testing.T) {
	m := NewMapper(7)
	order := binance.FiatOrder{
		OrderNo:      "o-1",
		FiatCurrency: "EUR",
		Amount:       dec("100"),
		TotalFee:     dec("1.5"),
		UpdateTime:   1624529919000,
	}

	t.Run("deposit", func(t *testing.T) {
		tx, err := m.FromFiatOrder(order, model.FiatOrderDeposit)
		if err != nil {
			t.Fatalf("FromFiatOrder failed: %v", err)
		}
		if tx.Type != model.TypeDeposit {
			t.Errorf("Type = %q, want deposit", tx.Type)
		}
		if tx.BuyAsset != "EUR" || !tx.BuyAmount.Equal(dec("100")) {
			t.Errorf("buy side = %s %s, want EUR 100", tx.BuyAsset, tx.BuyAmount)
		}
		if tx.SellAsset != "" || !tx.SellAmount.IsZero() {
			t.Errorf("sell side = %s %s, want empty", tx.SellAsset, tx.SellAmount)
		}
		if tx.FeeAsset != "EUR" || !tx.FeeAmount.Equal(dec("1.5")) {
			t.Errorf("fee = %s %s, want EUR 1.5", tx.FeeAsset, tx.FeeAmount)
		}
	})

	t.Run("withdraw", func(t *testing.T) {
		tx, err := m.FromFiatOrder(order, model.FiatOrderWithdraw)
		if err != nil {
			t.Fatalf("FromFiatOrder failed: %v", err)
		}
		if tx.Type != model.TypeWithdraw {
			t.Errorf("Type = %q, want withdraw", tx.Type)
		}
		if tx.SellAsset != "EUR" || !tx.SellAmount.Equal(dec("100")) {
			t.Errorf("sell side = %s %s, want EUR 100", tx.SellAsset, tx.SellAmount)
		}
		if tx.BuyAsset != "" || !tx.BuyAmount.IsZero() {
			t.Errorf("buy side = %s %s, want empty", tx.BuyAsset, tx.BuyAmount)
		}
	})
}

func TestFromFiatPayment(t *testing.T) {
	m := NewMapper(7)
	payment := binance.FiatPayment{
		OrderNo:        "p-1",
		FiatCurrency:   "EUR",
		CryptoCurrency: "BTC",
		SourceAmount:   dec("450"),
		ObtainAmount:   dec("0.01"),
		TotalFee:       dec("2"),
		UpdateTime:     1624529919000,
	}

	t.Run("buy", func(t *testing.T) {
		tx, err := m.FromFiatPayment(payment, model.FiatPaymentBuy)
		if err != nil {
			t.Fatalf("FromFiatPayment failed: %v", err)
		}
		if tx.Type != model.TypeTrade {
			t.Errorf("Type = %q, want trade", tx.Type)
		}
		if tx.BuyAsset != "BTC" || !tx.BuyAmount.Equal(dec("0.01")) {
			t.Errorf("buy side = %s %s, want BTC 0.01", tx.BuyAsset, tx.BuyAmount)
		}
		if tx.SellAsset != "EUR" || !tx.SellAmount.Equal(dec("450")) {
			t.Errorf("sell side = %s %s, want EUR 450", tx.SellAsset, tx.SellAmount)
		}
		if tx.FeeAsset != "EUR" {
			t.Errorf("FeeAsset = %q, want EUR", tx.FeeAsset)
		}
	})

	t.Run("sell", func(t *testing.T) {
		tx, err := m.FromFiatPayment(payment, model.FiatPaymentSell)
		if err != nil {
			t.Fatalf("FromFiatPayment failed: %v", err)
		}
		if tx.BuyAsset != "EUR" || tx.SellAsset != "BTC" {
			t.Errorf("sides = buy %s / sell %s, want buy EUR / sell BTC", tx.BuyAsset, tx.SellAsset)
		}
	})
}

func TestFromConvertTrade(t *testing.T) {
	m := NewMapper(7)

	tx, err := m.FromConvertTrade(binance.ConvertTrade{
		OrderID:    1001,
		FromAsset:  "BTC",
		FromAmount: dec("0.1"),
		ToAsset:    "ETH",
		ToAmount:   dec("1.5"),
		CreateTime: 1624529919000,
	})
	if err != nil {
		t.Fatalf("FromConvertTrade failed: %v", err)
	}

	if tx.BuyAsset != "ETH" || !tx.BuyAmount.Equal(dec("1.5")) {
		t.Errorf("buy side = %s %s, want ETH 1.5", tx.BuyAsset, tx.BuyAmount)
	}
	if tx.SellAsset != "BTC" || !tx.SellAmount.Equal(dec("0.1")) {
		t.Errorf("sell side = %s %s, want BTC 0.1", tx.SellAsset, tx.SellAmount)
	}
	if tx.ExternalID != "trade_flow__1001" {
		t.Errorf("ExternalID = %q, want trade_flow__1001", tx.ExternalID)
	}
}

func TestFromSpotTrade(t *testing.T) {
	m := NewMapper(7)
	sym := binance.Symbol{Symbol: "BTCUSD", BaseAsset: "BTC", QuoteAsset: "USD"}

	t.Run("buyer", func(t *testing.T) {
		tx, err := m.FromSpotTrade(sym, binance.SpotTrade{
			ID:              5,
			Qty:             dec("1"),
			QuoteQty:        dec("100"),
			Commission:      dec("0.001"),
			CommissionAsset: "BNB",
			Time:            1624529919000,
			IsBuyer:         true,
		})
		if err != nil {
			t.Fatalf("FromSpotTrade failed: %v", err)
		}
		if tx.BuyAsset != "BTC" || !tx.BuyAmount.Equal(dec("1")) {
			t.Errorf("buy side = %s %s, want BTC 1", tx.BuyAsset, tx.BuyAmount)
		}
		if tx.SellAsset != "USD" || !tx.SellAmount.Equal(dec("100")) {
			t.Errorf("sell side = %s %s, want USD 100", tx.SellAsset, tx.SellAmount)
		}
		if tx.FeeAsset != "BNB" || !tx.FeeAmount.Equal(dec("0.001")) {
			t.Errorf("fee = %s %s, want BNB 0.001", tx.FeeAsset, tx.FeeAmount)
		}
		if tx.ExternalID != "my_trades__5" {
			t.Errorf("ExternalID = %q, want my_trades__5", tx.ExternalID)
		}
	})

	t.Run("seller swaps sides", func(t *testing.T) {
		tx, err := m.FromSpotTrade(sym, binance.SpotTrade{
			ID:       6,
			Qty:      dec("1"),
			QuoteQty: dec("100"),
			Time:     1624529919000,
			IsBuyer:  false,
		})
		if err != nil {
			t.Fatalf("FromSpotTrade failed: %v", err)
		}
		if tx.BuyAsset != "USD" || !tx.BuyAmount.Equal(dec("100")) {
			t.Errorf("buy side = %s %s, want USD 100", tx.BuyAsset, tx.BuyAmount)
		}
		if tx.SellAsset != "BTC" || !tx.SellAmount.Equal(dec("1")) {
			t.Errorf("sell side = %s %s, want BTC 1", tx.SellAsset, tx.SellAmount)
		}
	})
}

func TestMappersRejectMissingIDs(t *testing.T) {
	m := NewMapper(7)

	cases := []struct {
		name string
		fn   func() error
	}{
		{"deposit", func() error { _, err := m.FromDeposit(binance.Deposit{}); return err }},
		{"withdrawal", func() error { _, err := m.FromWithdrawal(binance.Withdrawal{}); return err }},
		{"dividend", func() error { _, err := m.FromDividend(binance.Dividend{}); return err }},
		{"dribblet", func() error { _, err := m.FromDribblet(binance.Dribblet{}); return err }},
		{"fiat order", func() error { _, err := m.FromFiatOrder(binance.FiatOrder{}, model.FiatOrderDeposit); return err }},
		{"fiat payment", func() error { _, err := m.FromFiatPayment(binance.FiatPayment{}, model.FiatPaymentBuy); return err }},
		{"convert trade", func() error { _, err := m.FromConvertTrade(binance.ConvertTrade{}); return err }},
		{"spot trade", func() error { _, err := m.FromSpotTrade(binance.Symbol{}, binance.SpotTrade{}); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fn() == nil {
				t.Error("mapper accepted a record without a native id")
			}
		})
	}
}
