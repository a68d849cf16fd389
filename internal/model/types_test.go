package model

import "testing"

func TestFiatOrderKindCode(t *testing.T) {
	tests := []struct {
		kind FiatOrderKind
		want int
	}{
		{FiatOrderDeposit, 0},
		{FiatOrderWithdraw, 1},
	}
	for _, tt := range tests {
		if got := tt.kind.Code(); got != tt.want {
			t.Errorf("Code() for kind %d = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestFiatPaymentSideCode(t *testing.T) {
	tests := []struct {
		side FiatPaymentSide
		want int
	}{
		{FiatPaymentBuy, 0},
		{FiatPaymentSell, 1},
	}
	for _, tt := range tests {
		if got := tt.side.Code(); got != tt.want {
			t.Errorf("Code() for side %d = %d, want %d", tt.side, got, tt.want)
		}
	}
}
