// Package binance provides the signed REST client for the Binance API.
//
// Endpoint families used by the importer:
//   - /api/v3/exchangeInfo (unsigned symbol metadata)
//   - /api/v3/account, /api/v3/myTrades, /api/v3/ticker/price
//   - /sapi/v1/capital/{deposit,withdraw}/* (on-chain transfer history)
//   - /sapi/v1/fiat/{orders,payments} (paged fiat history)
//   - /sapi/v1/convert/tradeFlow (windowed conversion history)
//   - /sapi/v1/asset/{dribblet,assetDividend}
//
// Signed requests carry timestamp, recvWindow and an HMAC-SHA256 signature
// over the encoded query string. 429/418 responses are retried after a
// fixed wait; every other non-2xx status is a hard failure.
package binance
