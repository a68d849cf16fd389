package binance

import "github.com/shopspring/decimal"

// Account from GET /api/v3/account
type Account struct {
	AccountType string `json:"accountType"`
	CanTrade    bool   `json:"canTrade"`
	CanDeposit  bool   `json:"canDeposit"`
	CanWithdraw bool   `json:"canWithdraw"`
}

// Symbol from GET /api/v3/exchangeInfo
type Symbol struct {
	Symbol     string `json:"symbol"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
	Status     string `json:"status"`
}

type exchangeInfoResponse struct {
	Symbols []Symbol `json:"symbols"`
}

// Deposit from GET /sapi/v1/capital/deposit/hisrec
type Deposit struct {
	ID         string          `json:"id"`
	Coin       string          `json:"coin"`
	Amount     decimal.Decimal `json:"amount"`
	InsertTime int64           `json:"insertTime"` // epoch millis
}

// Withdrawal from GET /sapi/v1/capital/withdraw/history
type Withdrawal struct {
	ID             string          `json:"id"`
	Coin           string          `json:"coin"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionFee decimal.Decimal `json:"transactionFee"`
	ApplyTime      string          `json:"applyTime"` // "2006-01-02 15:04:05" UTC
}

// Dividend from GET /sapi/v1/asset/assetDividend
type Dividend struct {
	ID      int64           `json:"id"`
	Asset   string          `json:"asset"`
	Amount  decimal.Decimal `json:"amount"`
	DivTime int64           `json:"divTime"` // epoch millis
}

type assetDividendResponse struct {
	Rows []Dividend `json:"rows"`
}

// Dribblet is one small-balance-to-BNB conversion detail from
// GET /sapi/v1/asset/dribblet.
type Dribblet struct {
	TransID             int64           `json:"transId"`
	FromAsset           string          `json:"fromAsset"`
	Amount              decimal.Decimal `json:"amount"`
	TransferedAmount    decimal.Decimal `json:"transferedAmount"`
	ServiceChargeAmount decimal.Decimal `json:"serviceChargeAmount"`
	OperateTime         int64           `json:"operateTime"` // epoch millis
}

type dribbletResponse struct {
	UserAssetDribblets []struct {
		Details []Dribblet `json:"userAssetDribbletDetails"`
	} `json:"userAssetDribblets"`
}

// FiatOrder from GET /sapi/v1/fiat/orders
type FiatOrder struct {
	OrderNo      string          `json:"orderNo"`
	FiatCurrency string          `json:"fiatCurrency"`
	Amount       decimal.Decimal `json:"amount"`
	TotalFee     decimal.Decimal `json:"totalFee"`
	UpdateTime   int64           `json:"updateTime"` // epoch millis
}

type fiatOrdersResponse struct {
	Data []FiatOrder `json:"data"`
}

// FiatPayment from GET /sapi/v1/fiat/payments
type FiatPayment struct {
	OrderNo        string          `json:"orderNo"`
	FiatCurrency   string          `json:"fiatCurrency"`
	CryptoCurrency string          `json:"cryptoCurrency"`
	SourceAmount   decimal.Decimal `json:"sourceAmount"`
	ObtainAmount   decimal.Decimal `json:"obtainAmount"`
	TotalFee       decimal.Decimal `json:"totalFee"`
	UpdateTime     int64           `json:"updateTime"` // epoch millis
}

type fiatPaymentsResponse struct {
	Data []FiatPayment `json:"data"`
}

// ConvertTrade from GET /sapi/v1/convert/tradeFlow
type ConvertTrade struct {
	OrderID    int64           `json:"orderId"`
	FromAsset  string          `json:"fromAsset"`
	FromAmount decimal.Decimal `json:"fromAmount"`
	ToAsset    string          `json:"toAsset"`
	ToAmount   decimal.Decimal `json:"toAmount"`
	CreateTime int64           `json:"createTime"` // epoch millis
}

type convertTradeFlowResponse struct {
	List []ConvertTrade `json:"list"`
}

// SpotTrade from GET /api/v3/myTrades
type SpotTrade struct {
	ID              int64           `json:"id"`
	Symbol          string          `json:"symbol"`
	Qty             decimal.Decimal `json:"qty"`
	QuoteQty        decimal.Decimal `json:"quoteQty"`
	Commission      decimal.Decimal `json:"commission"`
	CommissionAsset string          `json:"commissionAsset"`
	Time            int64           `json:"time"` // epoch millis
	IsBuyer         bool            `json:"isBuyer"`
}

// TickerPrice from GET /api/v3/ticker/price
type TickerPrice struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}
