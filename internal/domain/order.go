package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side 订单方向
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderType 订单类型。STOP_LIMIT/STOP_MARKET 对应现货 API 的
// STOP_LOSS_LIMIT/STOP_LOSS，映射在 exchange 层完成。
type OrderType string

const (
	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeStopLimit  OrderType = "STOP_LIMIT"
	OrderTypeStopMarket OrderType = "STOP_MARKET"
)

// TimeInForce 限价单有效期
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

// ParseSide 解析订单方向（大小写不敏感）
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	}
	return "", &InvalidInputError{Field: "side", Reason: "must be BUY or SELL, got " + s}
}

// ParseOrderType 解析订单类型（大小写不敏感）
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(strings.ToUpper(strings.TrimSpace(s))) {
	case OrderTypeMarket:
		return OrderTypeMarket, nil
	case OrderTypeLimit:
		return OrderTypeLimit, nil
	case OrderTypeStopLimit, "STOP": // STOP 是 STOP_LIMIT 的旧写法
		return OrderTypeStopLimit, nil
	case OrderTypeStopMarket:
		return OrderTypeStopMarket, nil
	}
	return "", &InvalidInputError{Field: "type", Reason: "must be MARKET, LIMIT, STOP_LIMIT or STOP_MARKET, got " + s}
}

// OrderRequest 单次下单请求。每个命令构建一次，不做任何持久化。
type OrderRequest struct {
	Symbol      string
	Side        Side
	Type        OrderType
	Quantity    decimal.Decimal
	Price       decimal.Decimal // 限价（LIMIT / STOP_LIMIT 必填）
	StopPrice   decimal.Decimal // 触发价（STOP_LIMIT / STOP_MARKET 必填）
	TimeInForce TimeInForce     // 为空时 exchange 层默认 GTC
}

// Priced 该类型订单是否携带限价
func (r *OrderRequest) Priced() bool {
	return r.Type == OrderTypeLimit || r.Type == OrderTypeStopLimit
}

// Stop 该类型订单是否携带触发价
func (r *OrderRequest) Stop() bool {
	return r.Type == OrderTypeStopLimit || r.Type == OrderTypeStopMarket
}

// Validate 校验请求参数。违反约束返回 *InvalidInputError。
func (r *OrderRequest) Validate() error {
	if strings.TrimSpace(r.Symbol) == "" {
		return &InvalidInputError{Field: "symbol", Reason: "is required"}
	}
	if r.Side != SideBuy && r.Side != SideSell {
		return &InvalidInputError{Field: "side", Reason: "must be BUY or SELL"}
	}
	switch r.Type {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStopLimit, OrderTypeStopMarket:
	default:
		return &InvalidInputError{Field: "type", Reason: "must be MARKET, LIMIT, STOP_LIMIT or STOP_MARKET"}
	}
	if !r.Quantity.IsPositive() {
		return &InvalidInputError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if r.Priced() {
		if !r.Price.IsPositive() {
			return &InvalidInputError{Field: "price", Reason: "is required for " + string(r.Type) + " orders and must be greater than zero"}
		}
	} else if !r.Price.IsZero() {
		return &InvalidInputError{Field: "price", Reason: "must not be set for " + string(r.Type) + " orders"}
	}
	if r.Stop() {
		if !r.StopPrice.IsPositive() {
			return &InvalidInputError{Field: "stop price", Reason: "is required for " + string(r.Type) + " orders and must be greater than zero"}
		}
	} else if !r.StopPrice.IsZero() {
		return &InvalidInputError{Field: "stop price", Reason: "must not be set for " + string(r.Type) + " orders"}
	}
	return nil
}

// OrderResult 交易所返回的下单结果
type OrderResult struct {
	OrderID          int64
	ClientOrderID    string
	Symbol           string
	Side             Side
	Type             OrderType
	Status           string
	Price            decimal.Decimal
	OrigQuantity     decimal.Decimal
	ExecutedQuantity decimal.Decimal
	TransactTime     time.Time
}

// OpenOrder 挂单列表条目
type OpenOrder struct {
	OrderID      int64
	Symbol       string
	Side         Side
	Type         OrderType
	Price        decimal.Decimal
	OrigQuantity decimal.Decimal
	Status       string
}

// SymbolInfo 交易对信息（来自交易所 exchangeInfo）。
// 余额检查用它拆分 base/quote 资产，避免按后缀猜测。
type SymbolInfo struct {
	Symbol     string
	BaseAsset  string
	QuoteAsset string
}
