package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sayantang8/TradeBot/internal/domain"
)

// MockGateway is a Gateway test double with canned responses, per-method
// call counters and one-shot error injection.
type MockGateway struct {
	mu sync.RWMutex

	// Response data
	ServerTimeResponse time.Time
	BalancesResponse   domain.BalanceSnapshot
	PriceResponse      map[string]decimal.Decimal
	SymbolInfoResponse map[string]*domain.SymbolInfo
	SubmitResponse     *domain.OrderResult
	GetOrderResponse   *domain.OrderResult
	OpenOrdersResponse []domain.OpenOrder

	// Call tracking
	Calls map[string]int

	// Error injection: the next call to the named method fails once
	ErrorOnNext map[string]error
}

// NewMockGateway creates a mock gateway with empty canned data.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		PriceResponse:      make(map[string]decimal.Decimal),
		SymbolInfoResponse: make(map[string]*domain.SymbolInfo),
		Calls:              make(map[string]int),
		ErrorOnNext:        make(map[string]error),
	}
}

func (m *MockGateway) trackCall(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name]++
	if err, ok := m.ErrorOnNext[name]; ok {
		delete(m.ErrorOnNext, name)
		return err
	}
	return nil
}

// CallCount returns how many times the named method was invoked.
func (m *MockGateway) CallCount(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Calls[name]
}

func (m *MockGateway) ServerTime(ctx context.Context) (time.Time, error) {
	if err := m.trackCall("ServerTime"); err != nil {
		return time.Time{}, err
	}
	return m.ServerTimeResponse, nil
}

func (m *MockGateway) Balances(ctx context.Context) (domain.BalanceSnapshot, error) {
	if err := m.trackCall("Balances"); err != nil {
		return nil, err
	}
	return m.BalancesResponse, nil
}

func (m *MockGateway) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := m.trackCall("Price"); err != nil {
		return decimal.Zero, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	price, ok := m.PriceResponse[symbol]
	if !ok {
		return decimal.Zero, &domain.ExchangeError{Op: "get price", Message: "no ticker returned for " + symbol}
	}
	return price, nil
}

func (m *MockGateway) SymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, error) {
	if err := m.trackCall("SymbolInfo"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.SymbolInfoResponse[symbol]
	if !ok {
		return nil, &domain.ExchangeError{Op: "get symbol info", Message: "symbol " + symbol + " not found"}
	}
	return info, nil
}

func (m *MockGateway) SubmitOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderResult, error) {
	if err := m.trackCall("SubmitOrder"); err != nil {
		return nil, err
	}
	if m.SubmitResponse != nil {
		return m.SubmitResponse, nil
	}
	// Default: echo the request back as a NEW order
	return &domain.OrderResult{
		OrderID:      1,
		Symbol:       req.Symbol,
		Side:         req.Side,
		Type:         req.Type,
		Status:       "NEW",
		Price:        req.Price,
		OrigQuantity: req.Quantity,
	}, nil
}

func (m *MockGateway) GetOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResult, error) {
	if err := m.trackCall("GetOrder"); err != nil {
		return nil, err
	}
	return m.GetOrderResponse, nil
}

func (m *MockGateway) OpenOrders(ctx context.Context, symbol string) ([]domain.OpenOrder, error) {
	if err := m.trackCall("OpenOrders"); err != nil {
		return nil, err
	}
	return m.OpenOrdersResponse, nil
}

func (m *MockGateway) CancelOrder(ctx context.Context, symbol string, orderID int64) error {
	return m.trackCall("CancelOrder")
}
