package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Sayantang8/TradeBot/internal/domain"
	"github.com/Sayantang8/TradeBot/internal/exchange"
)

func TestNonZeroBalances_FiltersAndSorts(t *testing.T) {
	gw := exchange.NewMockGateway()
	gw.BalancesResponse = domain.BalanceSnapshot{
		{Asset: "ZRX", Free: decimal.Zero, Locked: decimal.Zero}, // 全零，必须过滤
		{Asset: "USDT", Free: decimal.NewFromInt(100), Locked: decimal.Zero},
		{Asset: "BNB", Free: decimal.Zero, Locked: decimal.NewFromFloat(0.5)}, // 只有 locked 也算持有
		{Asset: "BTC", Free: decimal.NewFromInt(1), Locked: decimal.NewFromInt(2)},
	}
	svc := NewAccountService(gw)

	balances, err := svc.NonZeroBalances(context.Background())
	if err != nil {
		t.Fatalf("NonZeroBalances error: %v", err)
	}

	want := []string{"BNB", "BTC", "USDT"}
	if len(balances) != len(want) {
		t.Fatalf("got %d assets, want %d", len(balances), len(want))
	}
	for i, asset := range want {
		if balances[i].Asset != asset {
			t.Fatalf("balances[%d].Asset = %s, want %s (sorted by symbol)", i, balances[i].Asset, asset)
		}
	}
	for _, b := range balances {
		if b.IsZero() {
			t.Fatalf("zero balance %s leaked through the filter", b.Asset)
		}
	}
}

func TestHoldings_Totals(t *testing.T) {
	gw := exchange.NewMockGateway()
	gw.BalancesResponse = domain.BalanceSnapshot{
		{Asset: "BTC", Free: decimal.NewFromInt(1), Locked: decimal.NewFromInt(2)},
	}
	svc := NewAccountService(gw)

	holdings, err := svc.Holdings(context.Background())
	if err != nil {
		t.Fatalf("Holdings error: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	if !holdings[0].Total.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("Total = %s, want 3 (free + locked)", holdings[0].Total)
	}
}

func TestNonZeroBalances_GatewayFailureNoPartialResult(t *testing.T) {
	gw := exchange.NewMockGateway()
	gw.ErrorOnNext["Balances"] = &domain.ExchangeError{Message: "401 unauthorized", Op: "get balances"}
	svc := NewAccountService(gw)

	balances, err := svc.NonZeroBalances(context.Background())
	var exchangeErr *domain.ExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("expected *domain.ExchangeError, got %T: %v", err, err)
	}
	if balances != nil {
		t.Fatalf("expected nil result on failure, got %v", balances)
	}
}
