package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Sayantang8/TradeBot/internal/domain"
)

// SpotTestnetBaseURL is the Binance Spot Testnet REST endpoint. Simulated
// funds only; the testnet resets periodically.
const SpotTestnetBaseURL = "https://testnet.binance.vision"

// BinanceGateway implements Gateway on top of the go-binance spot client.
// The client owns signing, transport and its own timeouts; no extra retry
// or timeout layer is added here.
type BinanceGateway struct {
	client *binance.Client
	log    *logrus.Entry
}

// NewBinanceGateway creates a gateway for the given credentials. When
// testnet is true the client is pointed at the Spot Testnet base URL.
func NewBinanceGateway(apiKey, apiSecret string, testnet bool) *BinanceGateway {
	client := binance.NewClient(apiKey, apiSecret)
	if testnet {
		client.BaseURL = SpotTestnetBaseURL
	}
	return &BinanceGateway{
		client: client,
		log:    logrus.WithField("component", "binance"),
	}
}

// ServerTime pings the exchange and returns its clock. Used as the startup
// connectivity probe.
func (g *BinanceGateway) ServerTime(ctx context.Context) (time.Time, error) {
	ms, err := g.client.NewServerTimeService().Do(ctx)
	if err != nil {
		return time.Time{}, mapError("get server time", err)
	}
	return time.UnixMilli(ms), nil
}

func (g *BinanceGateway) Balances(ctx context.Context) (domain.BalanceSnapshot, error) {
	account, err := g.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, mapError("get balances", err)
	}
	snapshot := make(domain.BalanceSnapshot, 0, len(account.Balances))
	for _, b := range account.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, &domain.ExchangeError{Op: "get balances", Message: fmt.Sprintf("unparseable free balance %q for %s", b.Free, b.Asset)}
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return nil, &domain.ExchangeError{Op: "get balances", Message: fmt.Sprintf("unparseable locked balance %q for %s", b.Locked, b.Asset)}
		}
		snapshot = append(snapshot, domain.Balance{Asset: b.Asset, Free: free, Locked: locked})
	}
	return snapshot, nil
}

func (g *BinanceGateway) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := g.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, mapError("get price", err)
	}
	if len(prices) == 0 {
		return decimal.Zero, &domain.ExchangeError{Op: "get price", Message: "no ticker returned for " + symbol}
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, &domain.ExchangeError{Op: "get price", Message: fmt.Sprintf("unparseable price %q for %s", prices[0].Price, symbol)}
	}
	g.log.Debugf("current price for %s: %s", symbol, price)
	return price, nil
}

func (g *BinanceGateway) SymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, error) {
	info, err := g.client.NewExchangeInfoService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, mapError("get symbol info", err)
	}
	for _, s := range info.Symbols {
		if s.Symbol == symbol {
			return &domain.SymbolInfo{
				Symbol:     s.Symbol,
				BaseAsset:  s.BaseAsset,
				QuoteAsset: s.QuoteAsset,
			}, nil
		}
	}
	return nil, &domain.ExchangeError{Op: "get symbol info", Message: "symbol " + symbol + " not found"}
}

func (g *BinanceGateway) SubmitOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderResult, error) {
	svc := g.client.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(binance.SideType(req.Side)).
		Type(wireOrderType(req.Type)).
		Quantity(req.Quantity.String()).
		NewClientOrderID("tradebot-" + uuid.NewString())

	if req.Priced() {
		tif := req.TimeInForce
		if tif == "" {
			tif = domain.TimeInForceGTC
		}
		svc = svc.Price(req.Price.String()).TimeInForce(binance.TimeInForceType(tif))
	}
	if req.Stop() {
		svc = svc.StopPrice(req.StopPrice.String())
	}

	resp, err := svc.Do(ctx)
	if err != nil {
		return nil, mapError("submit order", err)
	}

	result := &domain.OrderResult{
		OrderID:          resp.OrderID,
		ClientOrderID:    resp.ClientOrderID,
		Symbol:           resp.Symbol,
		Side:             domain.Side(resp.Side),
		Type:             req.Type,
		Status:           string(resp.Status),
		Price:            parseDecimal(resp.Price),
		OrigQuantity:     parseDecimal(resp.OrigQuantity),
		ExecutedQuantity: parseDecimal(resp.ExecutedQuantity),
		TransactTime:     time.UnixMilli(resp.TransactTime),
	}
	g.log.Infof("order placed: id=%d status=%s", result.OrderID, result.Status)
	return result, nil
}

func (g *BinanceGateway) GetOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResult, error) {
	order, err := g.client.NewGetOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
	if err != nil {
		return nil, mapError("get order", err)
	}
	return &domain.OrderResult{
		OrderID:          order.OrderID,
		ClientOrderID:    order.ClientOrderID,
		Symbol:           order.Symbol,
		Side:             domain.Side(order.Side),
		Type:             localOrderType(order.Type),
		Status:           string(order.Status),
		Price:            parseDecimal(order.Price),
		OrigQuantity:     parseDecimal(order.OrigQuantity),
		ExecutedQuantity: parseDecimal(order.ExecutedQuantity),
		TransactTime:     time.UnixMilli(order.Time),
	}, nil
}

func (g *BinanceGateway) OpenOrders(ctx context.Context, symbol string) ([]domain.OpenOrder, error) {
	svc := g.client.NewListOpenOrdersService()
	if symbol != "" {
		svc = svc.Symbol(symbol)
	}
	orders, err := svc.Do(ctx)
	if err != nil {
		return nil, mapError("list open orders", err)
	}
	out := make([]domain.OpenOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, domain.OpenOrder{
			OrderID:      o.OrderID,
			Symbol:       o.Symbol,
			Side:         domain.Side(o.Side),
			Type:         localOrderType(o.Type),
			Price:        parseDecimal(o.Price),
			OrigQuantity: parseDecimal(o.OrigQuantity),
			Status:       string(o.Status),
		})
	}
	return out, nil
}

func (g *BinanceGateway) CancelOrder(ctx context.Context, symbol string, orderID int64) error {
	_, err := g.client.NewCancelOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
	if err != nil {
		return mapError("cancel order", err)
	}
	g.log.Infof("order %d cancelled", orderID)
	return nil
}

// wireOrderType maps the local order type to the spot API enum. The STOP
// family on spot is STOP_LOSS/STOP_LOSS_LIMIT.
func wireOrderType(t domain.OrderType) binance.OrderType {
	switch t {
	case domain.OrderTypeStopLimit:
		return binance.OrderTypeStopLossLimit
	case domain.OrderTypeStopMarket:
		return binance.OrderTypeStopLoss
	case domain.OrderTypeMarket:
		return binance.OrderTypeMarket
	default:
		return binance.OrderTypeLimit
	}
}

func localOrderType(t binance.OrderType) domain.OrderType {
	switch t {
	case binance.OrderTypeStopLossLimit:
		return domain.OrderTypeStopLimit
	case binance.OrderTypeStopLoss:
		return domain.OrderTypeStopMarket
	case binance.OrderTypeMarket:
		return domain.OrderTypeMarket
	default:
		return domain.OrderTypeLimit
	}
}

// parseDecimal is for exchange-reported numeric strings that are already
// well-formed; a malformed one decodes as zero rather than failing the
// whole response.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
