package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientBalanceError 余额不足，下单前本地拒绝，不会触达交易所。
type InsufficientBalanceError struct {
	Asset     string          // 不足的资产（BUY 为 quote，SELL 为 base）
	Required  decimal.Decimal // 需要的数量
	Available decimal.Decimal // 当前可用（free）数量
	// MaxQuantity 按当前余额最多可下的数量（换算回 base 资产），用于给用户提示
	MaxQuantity decimal.Decimal
	BaseAsset   string
}

func (e *InsufficientBalanceError) Error() string {
	msg := fmt.Sprintf("insufficient balance: you have %s %s, but need %s %s",
		e.Available, e.Asset, e.Required, e.Asset)
	if e.MaxQuantity.IsPositive() {
		msg += fmt.Sprintf(". Consider lowering quantity to %s %s or less",
			e.MaxQuantity.StringFixed(6), e.BaseAsset)
	}
	return msg
}

// PriceOutOfBoundsError 限价偏离市价超出允许区间，下单前本地拒绝。
type PriceOutOfBoundsError struct {
	Symbol      string
	Price       decimal.Decimal // 被拒绝的限价
	MarketPrice decimal.Decimal
	MinPrice    decimal.Decimal // 允许区间下界（含）
	MaxPrice    decimal.Decimal // 允许区间上界（含）
}

func (e *PriceOutOfBoundsError) Error() string {
	return fmt.Sprintf("price %s is too far from current market price %s for %s: use a price between %s and %s",
		e.Price, e.MarketPrice, e.Symbol, e.MinPrice.StringFixed(8), e.MaxPrice.StringFixed(8))
}

// ExchangeError 交易所侧错误。Code/Message 原样保留网关返回值，不做改写。
type ExchangeError struct {
	Code    int64  // 交易所错误码（如 -1013），传输层错误为 0
	Message string // 交易所返回的原始消息
	Op      string // 失败的操作，如 "submit order"
}

func (e *ExchangeError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("exchange error on %s: %s (code %d)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("exchange error on %s: %s", e.Op, e.Message)
}

// InvalidInputError 命令参数非法，在进入校验流程之前被拦截。
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}
