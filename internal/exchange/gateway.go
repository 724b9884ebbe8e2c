package exchange

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sayantang8/TradeBot/internal/domain"
)

// Gateway is the narrow interface the trading core talks to the exchange
// through. Every method maps to a single signed (or public) REST call; all
// failures surface as *domain.ExchangeError so callers never see transport
// or library error types.
type Gateway interface {
	// ServerTime checks connectivity and returns the exchange clock.
	ServerTime(ctx context.Context) (time.Time, error)

	// Balances fetches the full account balance set.
	Balances(ctx context.Context) (domain.BalanceSnapshot, error)

	// Price returns the last traded price for a symbol.
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)

	// SymbolInfo returns base/quote assets for a trading pair.
	SymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, error)

	// SubmitOrder forwards a validated order request to the exchange.
	SubmitOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderResult, error)

	// GetOrder fetches the current state of a previously placed order.
	GetOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResult, error)

	// OpenOrders lists open orders; empty symbol means all symbols.
	OpenOrders(ctx context.Context, symbol string) ([]domain.OpenOrder, error)

	// CancelOrder cancels a single open order.
	CancelOrder(ctx context.Context, symbol string, orderID int64) error
}
