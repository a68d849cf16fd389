package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
)

// encodeParams URL-encodes params with '@' left unescaped. The provider
// expects the raw character in parameter values that carry email addresses.
func encodeParams(params url.Values) string {
	return strings.ReplaceAll(params.Encode(), "%40", "@")
}

// sign computes the hex HMAC-SHA256 of payload using the account secret.
func (c *Client) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// signedQuery attaches timestamp and recvWindow, then appends the
// signature computed over the encoded parameter set.
func (c *Client) signedQuery(params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
	params.Set("recvWindow", strconv.FormatInt(c.recvWindow.Milliseconds(), 10))

	encoded := encodeParams(params)
	if c.secretKey == "" {
		return encoded
	}
	return encoded + "&signature=" + c.sign(encoded)
}
