package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Sayantang8/TradeBot/internal/domain"
	"github.com/Sayantang8/TradeBot/internal/exchange"
	"github.com/Sayantang8/TradeBot/pkg/config"
)

var testLimits = config.TradingLimits{
	PriceBandPct:       0.20,
	MarketBuyBufferPct: 0.01,
}

// 标准测试场景：BTCUSDT 市价 50，账户 100 USDT / 1 BTC 可用
func newTestGateway() *exchange.MockGateway {
	gw := exchange.NewMockGateway()
	gw.SymbolInfoResponse["BTCUSDT"] = &domain.SymbolInfo{
		Symbol:     "BTCUSDT",
		BaseAsset:  "BTC",
		QuoteAsset: "USDT",
	}
	gw.PriceResponse["BTCUSDT"] = decimal.NewFromInt(50)
	gw.BalancesResponse = domain.BalanceSnapshot{
		{Asset: "USDT", Free: decimal.NewFromInt(100), Locked: decimal.Zero},
		{Asset: "BTC", Free: decimal.NewFromInt(1), Locked: decimal.Zero},
	}
	return gw
}

func limitBuy(qty, price int64) *domain.OrderRequest {
	return &domain.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     domain.SideBuy,
		Type:     domain.OrderTypeLimit,
		Quantity: decimal.NewFromInt(qty),
		Price:    decimal.NewFromInt(price),
	}
}

func TestPlaceOrder_LimitBuyWithinBounds(t *testing.T) {
	gw := newTestGateway()
	svc := NewTradingService(gw, testLimits)

	// 需要 50 USDT <= 100 可用，限价 50 在 [40, 60] 内
	result, err := svc.PlaceOrder(context.Background(), limitBuy(1, 50))
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if result.Status != "NEW" {
		t.Fatalf("status = %s, want NEW", result.Status)
	}
	if got := gw.CallCount("SubmitOrder"); got != 1 {
		t.Fatalf("SubmitOrder calls = %d, want 1", got)
	}
}

func TestPlaceOrder_InsufficientQuoteBalance(t *testing.T) {
	gw := newTestGateway()
	svc := NewTradingService(gw, testLimits)

	// 需要 150 USDT > 100 可用
	_, err := svc.PlaceOrder(context.Background(), limitBuy(3, 50))
	var insufficient *domain.InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected *InsufficientBalanceError, got %T: %v", err, err)
	}
	if !insufficient.Required.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("Required = %s, want 150", insufficient.Required)
	}
	if !insufficient.Available.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Available = %s, want 100", insufficient.Available)
	}
	if insufficient.Asset != "USDT" {
		t.Fatalf("Asset = %s, want USDT", insufficient.Asset)
	}
	// 余额不足绝不触达交易所
	if got := gw.CallCount("SubmitOrder"); got != 0 {
		t.Fatalf("SubmitOrder calls = %d, want 0", got)
	}
}

func TestPlaceOrder_PriceOutOfBounds(t *testing.T) {
	gw := newTestGateway()
	// 放大余额，保证先通过余额检查
	gw.BalancesResponse = domain.BalanceSnapshot{
		{Asset: "USDT", Free: decimal.NewFromInt(1000), Locked: decimal.Zero},
	}
	svc := NewTradingService(gw, testLimits)

	// 市价 50，允许区间 [40, 60]，61 越界
	_, err := svc.PlaceOrder(context.Background(), limitBuy(1, 61))
	var oob *domain.PriceOutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected *PriceOutOfBoundsError, got %T: %v", err, err)
	}
	if !oob.MinPrice.Equal(decimal.NewFromInt(40)) || !oob.MaxPrice.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("bounds = [%s, %s], want [40, 60]", oob.MinPrice, oob.MaxPrice)
	}
	if !oob.Price.Equal(decimal.NewFromInt(61)) {
		t.Fatalf("rejected price = %s, want 61", oob.Price)
	}
	if got := gw.CallCount("SubmitOrder"); got != 0 {
		t.Fatalf("SubmitOrder calls = %d, want 0", got)
	}
}

func TestPlaceOrder_PriceBoundsInclusive(t *testing.T) {
	// 区间两端 [0.8P, 1.2P] 必须接受
	for _, price := range []int64{40, 60} {
		gw := newTestGateway()
		svc := NewTradingService(gw, testLimits)

		if _, err := svc.PlaceOrder(context.Background(), limitBuy(1, price)); err != nil {
			t.Fatalf("limit price %d at band edge rejected: %v", price, err)
		}
		if got := gw.CallCount("SubmitOrder"); got != 1 {
			t.Fatalf("price %d: SubmitOrder calls = %d, want 1", price, got)
		}
	}
}

func TestPlaceOrder_MarketBuyUsesBufferedMarketPrice(t *testing.T) {
	marketBuy := &domain.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     domain.SideBuy,
		Type:     domain.OrderTypeMarket,
		Quantity: decimal.NewFromInt(2),
	}

	// 需要 2 × 50 × 1.01 = 101 USDT > 100 可用
	gw := newTestGateway()
	svc := NewTradingService(gw, testLimits)
	_, err := svc.PlaceOrder(context.Background(), marketBuy)
	var insufficient *domain.InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected *InsufficientBalanceError, got %T: %v", err, err)
	}
	if !insufficient.Required.Equal(decimal.NewFromInt(101)) {
		t.Fatalf("Required = %s, want 101", insufficient.Required)
	}

	// 可用提高到 101 后通过
	gw = newTestGateway()
	gw.BalancesResponse = domain.BalanceSnapshot{
		{Asset: "USDT", Free: decimal.NewFromInt(101), Locked: decimal.Zero},
	}
	svc = NewTradingService(gw, testLimits)
	if _, err := svc.PlaceOrder(context.Background(), marketBuy); err != nil {
		t.Fatalf("market buy with exact buffered balance rejected: %v", err)
	}
}

func TestPlaceOrder_SellChecksBaseBalance(t *testing.T) {
	gw := newTestGateway()
	svc := NewTradingService(gw, testLimits)

	sell := &domain.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     domain.SideSell,
		Type:     domain.OrderTypeMarket,
		Quantity: decimal.NewFromInt(2), // 只有 1 BTC 可用
	}
	_, err := svc.PlaceOrder(context.Background(), sell)
	var insufficient *domain.InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected *InsufficientBalanceError, got %T: %v", err, err)
	}
	if insufficient.Asset != "BTC" {
		t.Fatalf("Asset = %s, want BTC", insufficient.Asset)
	}
	if !insufficient.MaxQuantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("MaxQuantity = %s, want 1", insufficient.MaxQuantity)
	}
	if got := gw.CallCount("SubmitOrder"); got != 0 {
		t.Fatalf("SubmitOrder calls = %d, want 0", got)
	}
	// SELL 市价单不需要行情
	if got := gw.CallCount("Price"); got != 0 {
		t.Fatalf("Price calls = %d, want 0", got)
	}
}

func TestPlaceOrder_ExchangeRejectionSurfacesVerbatim(t *testing.T) {
	gw := newTestGateway()
	rejection := &domain.ExchangeError{Code: -1013, Message: "Filter failure: MIN_NOTIONAL", Op: "submit order"}
	gw.ErrorOnNext["SubmitOrder"] = rejection
	svc := NewTradingService(gw, testLimits)

	_, err := svc.PlaceOrder(context.Background(), limitBuy(1, 50))
	var exchangeErr *domain.ExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("expected *domain.ExchangeError, got %T: %v", err, err)
	}
	if exchangeErr.Code != -1013 || exchangeErr.Message != "Filter failure: MIN_NOTIONAL" {
		t.Fatalf("exchange error rewritten: %+v", exchangeErr)
	}
	// 不做任何重试
	if got := gw.CallCount("SubmitOrder"); got != 1 {
		t.Fatalf("SubmitOrder calls = %d, want 1 (no retry)", got)
	}
}

func TestPlaceOrder_InvalidRequestNeverTouchesGateway(t *testing.T) {
	gw := newTestGateway()
	svc := NewTradingService(gw, testLimits)

	_, err := svc.PlaceOrder(context.Background(), &domain.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     domain.SideBuy,
		Type:     domain.OrderTypeLimit,
		Quantity: decimal.NewFromInt(1),
		// 缺限价
	})
	var invalid *domain.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidInputError, got %T: %v", err, err)
	}
	for _, method := range []string{"SymbolInfo", "Balances", "Price", "SubmitOrder"} {
		if got := gw.CallCount(method); got != 0 {
			t.Fatalf("%s calls = %d, want 0", method, got)
		}
	}
}

func TestPlaceOrder_BalanceFetchFailurePropagates(t *testing.T) {
	gw := newTestGateway()
	gw.ErrorOnNext["Balances"] = &domain.ExchangeError{Message: "connection reset", Op: "get balances"}
	svc := NewTradingService(gw, testLimits)

	_, err := svc.PlaceOrder(context.Background(), limitBuy(1, 50))
	var exchangeErr *domain.ExchangeError
	if !errors.As(err, &exchangeErr) {
		t.Fatalf("expected *domain.ExchangeError, got %T: %v", err, err)
	}
	if got := gw.CallCount("SubmitOrder"); got != 0 {
		t.Fatalf("SubmitOrder calls = %d, want 0", got)
	}
}

func TestCancelOrder(t *testing.T) {
	gw := newTestGateway()
	svc := NewTradingService(gw, testLimits)

	if err := svc.CancelOrder(context.Background(), "BTCUSDT", 42); err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if got := gw.CallCount("CancelOrder"); got != 1 {
		t.Fatalf("CancelOrder calls = %d, want 1", got)
	}

	gw.ErrorOnNext["CancelOrder"] = &domain.ExchangeError{Code: -2011, Message: "Unknown order sent.", Op: "cancel order"}
	err := svc.CancelOrder(context.Background(), "BTCUSDT", 43)
	var exchangeErr *domain.ExchangeError
	if !errors.As(err, &exchangeErr) || exchangeErr.Code != -2011 {
		t.Fatalf("expected exchange error -2011, got %v", err)
	}
}
